package repositories

import (
	"context"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

type demandRepo struct {
	db DB
}

func NewDemandRepo(db DB) recordstore.DemandStore {
	return &demandRepo{db: db}
}

const demandColumns = `id, inventory_id, item_id, demand_quantity, timestamp, source`

func (r *demandRepo) listDemand(ctx context.Context, query string, args ...any) ([]*models.DemandHistoryRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.DemandHistoryRecord
	for rows.Next() {
		rec := &models.DemandHistoryRecord{}
		if err := rows.Scan(&rec.ID, &rec.InventoryID, &rec.ItemID, &rec.DemandQuantity, &rec.Timestamp, &rec.Source); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *demandRepo) ListDemandHistory(ctx context.Context) ([]*models.DemandHistoryRecord, error) {
	query := `
		SELECT ` + demandColumns + `
		FROM demand_history
		ORDER BY timestamp
	`
	return r.listDemand(ctx, query)
}

func (r *demandRepo) DemandHistoryByInventory(ctx context.Context, inventoryID int64) ([]*models.DemandHistoryRecord, error) {
	query := `
		SELECT ` + demandColumns + `
		FROM demand_history
		WHERE inventory_id = $1
		ORDER BY timestamp
	`
	return r.listDemand(ctx, query, inventoryID)
}

func (r *demandRepo) DemandHistoryByItem(ctx context.Context, itemID int64) ([]*models.DemandHistoryRecord, error) {
	query := `
		SELECT ` + demandColumns + `
		FROM demand_history
		WHERE item_id = $1
		ORDER BY timestamp
	`
	return r.listDemand(ctx, query, itemID)
}

func (r *demandRepo) CreateDemandRecord(ctx context.Context, rec *models.DemandHistoryRecord) error {
	query := `
		INSERT INTO demand_history (inventory_id, item_id, demand_quantity, timestamp, source)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, rec.InventoryID, rec.ItemID, rec.DemandQuantity, rec.Timestamp, rec.Source).Scan(&rec.ID)
}
