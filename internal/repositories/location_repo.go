package repositories

import (
	"context"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

type locationRepo struct {
	db DB
}

func NewLocationRepo(db DB) recordstore.LocationStore {
	return &locationRepo{db: db}
}

const locationColumns = `id, latitude, longitude, address, city, state, country, zip_code, created_at`

func (r *locationRepo) ListLocations(ctx context.Context) ([]*models.Location, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM location
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var locations []*models.Location
	for rows.Next() {
		loc := &models.Location{}
		if err := rows.Scan(&loc.ID, &loc.Latitude, &loc.Longitude, &loc.Address, &loc.City,
			&loc.State, &loc.Country, &loc.ZipCode, &loc.CreatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	return locations, rows.Err()
}

func (r *locationRepo) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	loc := &models.Location{}
	query := `
		SELECT ` + locationColumns + `
		FROM location
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&loc.ID, &loc.Latitude, &loc.Longitude, &loc.Address,
		&loc.City, &loc.State, &loc.Country, &loc.ZipCode, &loc.CreatedAt)
	if err != nil {
		return nil, err
	}
	return loc, nil
}

func (r *locationRepo) CreateLocation(ctx context.Context, loc *models.Location) error {
	query := `
		INSERT INTO location (latitude, longitude, address, city, state, country, zip_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, loc.Latitude, loc.Longitude, loc.Address, loc.City,
		loc.State, loc.Country, loc.ZipCode).Scan(&loc.ID)
}

func (r *locationRepo) UpdateLocation(ctx context.Context, loc *models.Location) error {
	query := `
		UPDATE location
		SET latitude = $1, longitude = $2, address = $3, city = $4, state = $5, country = $6, zip_code = $7
		WHERE id = $8
	`
	_, err := r.db.Exec(ctx, query, loc.Latitude, loc.Longitude, loc.Address, loc.City,
		loc.State, loc.Country, loc.ZipCode, loc.ID)
	return err
}

func (r *locationRepo) DeleteLocation(ctx context.Context, id int64) error {
	query := `DELETE FROM location WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
