package repositories

import (
	"context"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

type alertRepo struct {
	db DB
}

func NewAlertRepo(db DB) recordstore.AlertStore {
	return &alertRepo{db: db}
}

const alertColumns = `id, inventory_id, severity, message, resolved, created_at, resolved_at`

func (r *alertRepo) listAlerts(ctx context.Context, query string, args ...any) ([]*models.RealtimeAlert, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []*models.RealtimeAlert
	for rows.Next() {
		alert := &models.RealtimeAlert{}
		if err := rows.Scan(&alert.ID, &alert.InventoryID, &alert.Severity, &alert.Message,
			&alert.Resolved, &alert.CreatedAt, &alert.ResolvedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}
	return alerts, rows.Err()
}

func (r *alertRepo) ListAlerts(ctx context.Context) ([]*models.RealtimeAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM real_time_alerts
		ORDER BY created_at DESC
	`
	return r.listAlerts(ctx, query)
}

func (r *alertRepo) UnresolvedAlerts(ctx context.Context) ([]*models.RealtimeAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM real_time_alerts
		WHERE resolved = FALSE
		ORDER BY created_at DESC
	`
	return r.listAlerts(ctx, query)
}

func (r *alertRepo) AlertsBySeverity(ctx context.Context, severity models.AlertSeverity) ([]*models.RealtimeAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM real_time_alerts
		WHERE severity = $1
		ORDER BY created_at DESC
	`
	return r.listAlerts(ctx, query, severity)
}

func (r *alertRepo) AlertsByInventory(ctx context.Context, inventoryID int64) ([]*models.RealtimeAlert, error) {
	query := `
		SELECT ` + alertColumns + `
		FROM real_time_alerts
		WHERE inventory_id = $1
		ORDER BY created_at DESC
	`
	return r.listAlerts(ctx, query, inventoryID)
}

func (r *alertRepo) CreateAlert(ctx context.Context, alert *models.RealtimeAlert) error {
	query := `
		INSERT INTO real_time_alerts (inventory_id, severity, message, resolved, created_at)
		VALUES ($1, $2, $3, FALSE, NOW())
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, alert.InventoryID, alert.Severity, alert.Message).Scan(&alert.ID)
}

func (r *alertRepo) ResolveAlert(ctx context.Context, id int64) error {
	query := `
		UPDATE real_time_alerts
		SET resolved = TRUE, resolved_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
