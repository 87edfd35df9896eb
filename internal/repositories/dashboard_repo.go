package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

type dashboardRepo struct {
	db DB
}

func NewDashboardRepo(db DB) recordstore.DashboardStore {
	return &dashboardRepo{db: db}
}

func (r *dashboardRepo) RecordMetric(ctx context.Context, snap *models.DashboardMetricSnapshot) error {
	query := `
		INSERT INTO dashboard_metrics (metric_type, value, recorded_at)
		VALUES ($1, $2, NOW())
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, snap.MetricType, snap.Value).Scan(&snap.ID)
}

func (r *dashboardRepo) PreviousMetric(ctx context.Context, metric models.MetricType) (*models.DashboardMetricSnapshot, error) {
	snap := &models.DashboardMetricSnapshot{}
	query := `
		SELECT id, metric_type, value, recorded_at
		FROM dashboard_metrics
		WHERE metric_type = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, metric).Scan(&snap.ID, &snap.MetricType, &snap.Value, &snap.RecordedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}
