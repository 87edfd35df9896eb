// Package recordstore defines the typed boundary to the record store that
// owns every persistent entity. The engine is a stateless-between-ticks
// consumer of it: nothing returned here is cached across monitor ticks.
package recordstore

import (
	"context"

	"glyphor/internal/models"
)

type InventoryStore interface {
	ListInventories(ctx context.Context) ([]*models.Inventory, error)
	GetInventory(ctx context.Context, id int64) (*models.Inventory, error)
	GetInventoriesByLocation(ctx context.Context, locationID int64) ([]*models.Inventory, error)
	CreateInventory(ctx context.Context, inv *models.Inventory) error
	UpdateInventory(ctx context.Context, inv *models.Inventory) error
	// UpdateInventoryVolumes writes only the occupied/available pair; it is
	// the single mutation the relocation state machine performs.
	UpdateInventoryVolumes(ctx context.Context, id int64, occupied, available float64) error
	DeleteInventory(ctx context.Context, id int64) error
}

type LocationStore interface {
	ListLocations(ctx context.Context) ([]*models.Location, error)
	GetLocation(ctx context.Context, id int64) (*models.Location, error)
	CreateLocation(ctx context.Context, loc *models.Location) error
	UpdateLocation(ctx context.Context, loc *models.Location) error
	DeleteLocation(ctx context.Context, id int64) error
}

type ItemStore interface {
	ListItems(ctx context.Context) ([]*models.Item, error)
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error

	ListInventoryItems(ctx context.Context, inventoryID int64) ([]*models.InventoryItem, error)
	AddInventoryItem(ctx context.Context, link *models.InventoryItem) error
	UpdateInventoryItemQuantity(ctx context.Context, inventoryID, itemID int64, quantity int) error
	RemoveInventoryItem(ctx context.Context, inventoryID, itemID int64) error
}

type DemandStore interface {
	ListDemandHistory(ctx context.Context) ([]*models.DemandHistoryRecord, error)
	DemandHistoryByInventory(ctx context.Context, inventoryID int64) ([]*models.DemandHistoryRecord, error)
	DemandHistoryByItem(ctx context.Context, itemID int64) ([]*models.DemandHistoryRecord, error)
	CreateDemandRecord(ctx context.Context, rec *models.DemandHistoryRecord) error
}

type RelocationStore interface {
	ListRelocations(ctx context.Context) ([]*models.RelocationMessage, error)
	GetRelocation(ctx context.Context, id int64) (*models.RelocationMessage, error)
	RelocationsByStatus(ctx context.Context, status models.RelocationStatus) ([]*models.RelocationMessage, error)
	CreateRelocation(ctx context.Context, rel *models.RelocationMessage) error
	UpdateRelocationStatus(ctx context.Context, id int64, status models.RelocationStatus) error
}

type AlertStore interface {
	ListAlerts(ctx context.Context) ([]*models.RealtimeAlert, error)
	UnresolvedAlerts(ctx context.Context) ([]*models.RealtimeAlert, error)
	AlertsBySeverity(ctx context.Context, severity models.AlertSeverity) ([]*models.RealtimeAlert, error)
	AlertsByInventory(ctx context.Context, inventoryID int64) ([]*models.RealtimeAlert, error)
	CreateAlert(ctx context.Context, alert *models.RealtimeAlert) error
	ResolveAlert(ctx context.Context, id int64) error
}

type SpikeStore interface {
	ListSpikeRecords(ctx context.Context) ([]*models.SpikeMonitoringRecord, error)
	CreateSpikeRecord(ctx context.Context, rec *models.SpikeMonitoringRecord) error
}

type DashboardStore interface {
	RecordMetric(ctx context.Context, snap *models.DashboardMetricSnapshot) error
	// PreviousMetric returns the most recent snapshot for the metric, or nil
	// when none has been recorded yet.
	PreviousMetric(ctx context.Context, metric models.MetricType) (*models.DashboardMetricSnapshot, error)
}

// Store is the full record-store surface the engine depends on.
type Store interface {
	InventoryStore
	LocationStore
	ItemStore
	DemandStore
	RelocationStore
	AlertStore
	SpikeStore
	DashboardStore
}
