package repositories

import (
	"context"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

type relocationRepo struct {
	db DB
}

func NewRelocationRepo(db DB) recordstore.RelocationStore {
	return &relocationRepo{db: db}
}

const relocationColumns = `relocation_message_id, from_inventory_id, to_inventory_id, quantity, priority, status, created_at, updated_at`

func (r *relocationRepo) listRelocations(ctx context.Context, query string, args ...any) ([]*models.RelocationMessage, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var relocations []*models.RelocationMessage
	for rows.Next() {
		rel := &models.RelocationMessage{}
		if err := rows.Scan(&rel.ID, &rel.FromInventoryID, &rel.ToInventoryID, &rel.Quantity,
			&rel.Priority, &rel.Status, &rel.CreatedAt, &rel.UpdatedAt); err != nil {
			return nil, err
		}
		relocations = append(relocations, rel)
	}
	return relocations, rows.Err()
}

func (r *relocationRepo) ListRelocations(ctx context.Context) ([]*models.RelocationMessage, error) {
	query := `
		SELECT ` + relocationColumns + `
		FROM relocation_message
		ORDER BY relocation_message_id
	`
	return r.listRelocations(ctx, query)
}

func (r *relocationRepo) GetRelocation(ctx context.Context, id int64) (*models.RelocationMessage, error) {
	rel := &models.RelocationMessage{}
	query := `
		SELECT ` + relocationColumns + `
		FROM relocation_message
		WHERE relocation_message_id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&rel.ID, &rel.FromInventoryID, &rel.ToInventoryID,
		&rel.Quantity, &rel.Priority, &rel.Status, &rel.CreatedAt, &rel.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rel, nil
}

func (r *relocationRepo) RelocationsByStatus(ctx context.Context, status models.RelocationStatus) ([]*models.RelocationMessage, error) {
	query := `
		SELECT ` + relocationColumns + `
		FROM relocation_message
		WHERE status = $1
		ORDER BY relocation_message_id
	`
	return r.listRelocations(ctx, query, status)
}

func (r *relocationRepo) CreateRelocation(ctx context.Context, rel *models.RelocationMessage) error {
	query := `
		INSERT INTO relocation_message (from_inventory_id, to_inventory_id, quantity, priority, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING relocation_message_id
	`
	return r.db.QueryRow(ctx, query, rel.FromInventoryID, rel.ToInventoryID, rel.Quantity,
		rel.Priority, rel.Status).Scan(&rel.ID)
}

func (r *relocationRepo) UpdateRelocationStatus(ctx context.Context, id int64, status models.RelocationStatus) error {
	query := `
		UPDATE relocation_message
		SET status = $1, updated_at = NOW()
		WHERE relocation_message_id = $2
	`
	_, err := r.db.Exec(ctx, query, status, id)
	return err
}
