package repositories

import (
	"context"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

type spikeRepo struct {
	db DB
}

func NewSpikeRepo(db DB) recordstore.SpikeStore {
	return &spikeRepo{db: db}
}

func (r *spikeRepo) ListSpikeRecords(ctx context.Context) ([]*models.SpikeMonitoringRecord, error) {
	query := `
		SELECT spike_monitoring_id, inventory_id, created_at, updated_at
		FROM spike_monitoring
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.SpikeMonitoringRecord
	for rows.Next() {
		rec := &models.SpikeMonitoringRecord{}
		if err := rows.Scan(&rec.ID, &rec.InventoryID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *spikeRepo) CreateSpikeRecord(ctx context.Context, rec *models.SpikeMonitoringRecord) error {
	query := `
		INSERT INTO spike_monitoring (inventory_id, created_at, updated_at)
		VALUES ($1, NOW(), NOW())
		RETURNING spike_monitoring_id
	`
	return r.db.QueryRow(ctx, query, rec.InventoryID).Scan(&rec.ID)
}
