package repositories

import (
	"context"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

type inventoryRepo struct {
	db DB
}

func NewInventoryRepo(db DB) recordstore.InventoryStore {
	return &inventoryRepo{db: db}
}

const inventoryColumns = `id, name, description, volume_occupied, volume_available, volume_reserved, threshold, location_id, status, created_at, updated_at`

func (r *inventoryRepo) scanInventory(row interface{ Scan(dest ...any) error }) (*models.Inventory, error) {
	inv := &models.Inventory{}
	err := row.Scan(&inv.ID, &inv.Name, &inv.Description, &inv.VolumeOccupied, &inv.VolumeAvailable,
		&inv.VolumeReserved, &inv.Threshold, &inv.LocationID, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func (r *inventoryRepo) ListInventories(ctx context.Context) ([]*models.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventories []*models.Inventory
	for rows.Next() {
		inv, err := r.scanInventory(rows)
		if err != nil {
			return nil, err
		}
		inventories = append(inventories, inv)
	}
	return inventories, rows.Err()
}

func (r *inventoryRepo) GetInventory(ctx context.Context, id int64) (*models.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE id = $1
	`
	return r.scanInventory(r.db.QueryRow(ctx, query, id))
}

func (r *inventoryRepo) GetInventoriesByLocation(ctx context.Context, locationID int64) ([]*models.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory
		WHERE location_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inventories []*models.Inventory
	for rows.Next() {
		inv, err := r.scanInventory(rows)
		if err != nil {
			return nil, err
		}
		inventories = append(inventories, inv)
	}
	return inventories, rows.Err()
}

func (r *inventoryRepo) CreateInventory(ctx context.Context, inv *models.Inventory) error {
	query := `
		INSERT INTO inventory (name, description, volume_occupied, volume_available, volume_reserved, threshold, location_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, inv.Name, inv.Description, inv.VolumeOccupied, inv.VolumeAvailable,
		inv.VolumeReserved, inv.Threshold, inv.LocationID, inv.Status).Scan(&inv.ID)
}

func (r *inventoryRepo) UpdateInventory(ctx context.Context, inv *models.Inventory) error {
	query := `
		UPDATE inventory
		SET name = $1, description = $2, volume_occupied = $3, volume_available = $4,
		    volume_reserved = $5, threshold = $6, location_id = $7, status = $8, updated_at = NOW()
		WHERE id = $9
	`
	_, err := r.db.Exec(ctx, query, inv.Name, inv.Description, inv.VolumeOccupied, inv.VolumeAvailable,
		inv.VolumeReserved, inv.Threshold, inv.LocationID, inv.Status, inv.ID)
	return err
}

func (r *inventoryRepo) UpdateInventoryVolumes(ctx context.Context, id int64, occupied, available float64) error {
	query := `
		UPDATE inventory
		SET volume_occupied = $1, volume_available = $2, updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.Exec(ctx, query, occupied, available, id)
	return err
}

func (r *inventoryRepo) DeleteInventory(ctx context.Context, id int64) error {
	query := `DELETE FROM inventory WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
