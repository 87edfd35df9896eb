package repositories

import "glyphor/internal/recordstore"

// PostgresStore bundles the per-entity repositories into the full
// recordstore.Store surface so the services can run directly against the
// engine's own database instead of a remote record-store service.
type PostgresStore struct {
	recordstore.InventoryStore
	recordstore.LocationStore
	recordstore.ItemStore
	recordstore.DemandStore
	recordstore.RelocationStore
	recordstore.AlertStore
	recordstore.SpikeStore
	recordstore.DashboardStore
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{
		InventoryStore:  NewInventoryRepo(db),
		LocationStore:   NewLocationRepo(db),
		ItemStore:       NewItemRepo(db),
		DemandStore:     NewDemandRepo(db),
		RelocationStore: NewRelocationRepo(db),
		AlertStore:      NewAlertRepo(db),
		SpikeStore:      NewSpikeRepo(db),
		DashboardStore:  NewDashboardRepo(db),
	}
}

var _ recordstore.Store = (*PostgresStore)(nil)
