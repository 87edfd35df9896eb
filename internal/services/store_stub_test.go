package services

import (
	"context"
	"fmt"
	"sync"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

// stubStore is an in-memory recordstore.Store. The relocation and monitor
// tests need real state transitions (volume conservation, idempotent
// execution), which call-recording mocks cannot express, so the stub keeps
// actual maps and lets tests inject failures per inventory id.
type stubStore struct {
	mu sync.Mutex

	inventories map[int64]*models.Inventory
	locations   map[int64]*models.Location
	demand      map[int64][]*models.DemandHistoryRecord
	relocations map[int64]*models.RelocationMessage
	alerts      []*models.RealtimeAlert
	spikes      []*models.SpikeMonitoringRecord
	metrics     map[models.MetricType][]*models.DashboardMetricSnapshot

	nextRelocationID int64

	// failVolumeUpdateFor makes UpdateInventoryVolumes fail for one inventory.
	failVolumeUpdateFor int64
	// failListInventories makes snapshot fetches fail.
	failListInventories bool

	volumeUpdates []int64
}

var _ recordstore.Store = (*stubStore)(nil)

func newStubStore() *stubStore {
	return &stubStore{
		inventories: make(map[int64]*models.Inventory),
		locations:   make(map[int64]*models.Location),
		demand:      make(map[int64][]*models.DemandHistoryRecord),
		relocations: make(map[int64]*models.RelocationMessage),
		metrics:     make(map[models.MetricType][]*models.DashboardMetricSnapshot),
	}
}

func (s *stubStore) addInventory(inv *models.Inventory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *inv
	s.inventories[inv.ID] = &cp
}

func (s *stubStore) inventory(id int64) *models.Inventory {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *s.inventories[id]
	return &cp
}

func (s *stubStore) ListInventories(ctx context.Context) ([]*models.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failListInventories {
		return nil, fmt.Errorf("snapshot unavailable")
	}
	out := make([]*models.Inventory, 0, len(s.inventories))
	for _, inv := range s.inventories {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubStore) GetInventory(ctx context.Context, id int64) (*models.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.inventories[id]
	if !ok {
		return nil, fmt.Errorf("inventory %d not found", id)
	}
	cp := *inv
	return &cp, nil
}

func (s *stubStore) GetInventoriesByLocation(ctx context.Context, locationID int64) ([]*models.Inventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Inventory
	for _, inv := range s.inventories {
		if inv.LocationID == locationID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubStore) CreateInventory(ctx context.Context, inv *models.Inventory) error {
	s.addInventory(inv)
	return nil
}

func (s *stubStore) UpdateInventory(ctx context.Context, inv *models.Inventory) error {
	s.addInventory(inv)
	return nil
}

func (s *stubStore) UpdateInventoryVolumes(ctx context.Context, id int64, occupied, available float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failVolumeUpdateFor == id {
		return fmt.Errorf("volume update rejected for inventory %d", id)
	}
	inv, ok := s.inventories[id]
	if !ok {
		return fmt.Errorf("inventory %d not found", id)
	}
	inv.VolumeOccupied = occupied
	inv.VolumeAvailable = available
	s.volumeUpdates = append(s.volumeUpdates, id)
	return nil
}

func (s *stubStore) DeleteInventory(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inventories, id)
	return nil
}

func (s *stubStore) ListLocations(ctx context.Context) ([]*models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Location, 0, len(s.locations))
	for _, loc := range s.locations {
		out = append(out, loc)
	}
	return out, nil
}

func (s *stubStore) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc, ok := s.locations[id]
	if !ok {
		return nil, fmt.Errorf("location %d not found", id)
	}
	return loc, nil
}

func (s *stubStore) CreateLocation(ctx context.Context, loc *models.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[loc.ID] = loc
	return nil
}

func (s *stubStore) UpdateLocation(ctx context.Context, loc *models.Location) error {
	return s.CreateLocation(ctx, loc)
}

func (s *stubStore) DeleteLocation(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locations, id)
	return nil
}

func (s *stubStore) ListItems(ctx context.Context) ([]*models.Item, error) { return nil, nil }
func (s *stubStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	return nil, fmt.Errorf("item %d not found", id)
}
func (s *stubStore) CreateItem(ctx context.Context, item *models.Item) error { return nil }
func (s *stubStore) UpdateItem(ctx context.Context, item *models.Item) error { return nil }
func (s *stubStore) DeleteItem(ctx context.Context, id int64) error          { return nil }
func (s *stubStore) ListInventoryItems(ctx context.Context, inventoryID int64) ([]*models.InventoryItem, error) {
	return nil, nil
}
func (s *stubStore) AddInventoryItem(ctx context.Context, link *models.InventoryItem) error {
	return nil
}
func (s *stubStore) UpdateInventoryItemQuantity(ctx context.Context, inventoryID, itemID int64, quantity int) error {
	return nil
}
func (s *stubStore) RemoveInventoryItem(ctx context.Context, inventoryID, itemID int64) error {
	return nil
}

func (s *stubStore) ListDemandHistory(ctx context.Context) ([]*models.DemandHistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.DemandHistoryRecord
	for _, records := range s.demand {
		out = append(out, records...)
	}
	return out, nil
}

func (s *stubStore) DemandHistoryByInventory(ctx context.Context, inventoryID int64) ([]*models.DemandHistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.demand[inventoryID], nil
}

func (s *stubStore) DemandHistoryByItem(ctx context.Context, itemID int64) ([]*models.DemandHistoryRecord, error) {
	return nil, nil
}

func (s *stubStore) CreateDemandRecord(ctx context.Context, rec *models.DemandHistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.demand[rec.InventoryID] = append(s.demand[rec.InventoryID], rec)
	return nil
}

func (s *stubStore) ListRelocations(ctx context.Context) ([]*models.RelocationMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.RelocationMessage, 0, len(s.relocations))
	for _, rel := range s.relocations {
		cp := *rel
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubStore) GetRelocation(ctx context.Context, id int64) (*models.RelocationMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rel, ok := s.relocations[id]
	if !ok {
		return nil, fmt.Errorf("relocation %d not found", id)
	}
	cp := *rel
	return &cp, nil
}

func (s *stubStore) RelocationsByStatus(ctx context.Context, status models.RelocationStatus) ([]*models.RelocationMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.RelocationMessage
	for _, rel := range s.relocations {
		if rel.Status == status {
			cp := *rel
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubStore) CreateRelocation(ctx context.Context, rel *models.RelocationMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRelocationID++
	rel.ID = s.nextRelocationID
	cp := *rel
	s.relocations[rel.ID] = &cp
	return nil
}

func (s *stubStore) UpdateRelocationStatus(ctx context.Context, id int64, status models.RelocationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rel, ok := s.relocations[id]
	if !ok {
		return fmt.Errorf("relocation %d not found", id)
	}
	rel.Status = status
	return nil
}

func (s *stubStore) ListAlerts(ctx context.Context) ([]*models.RealtimeAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.RealtimeAlert{}, s.alerts...), nil
}

func (s *stubStore) UnresolvedAlerts(ctx context.Context) ([]*models.RealtimeAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.RealtimeAlert
	for _, alert := range s.alerts {
		if !alert.Resolved {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (s *stubStore) AlertsBySeverity(ctx context.Context, severity models.AlertSeverity) ([]*models.RealtimeAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.RealtimeAlert
	for _, alert := range s.alerts {
		if alert.Severity == severity {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (s *stubStore) AlertsByInventory(ctx context.Context, inventoryID int64) ([]*models.RealtimeAlert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.RealtimeAlert
	for _, alert := range s.alerts {
		if alert.InventoryID == inventoryID {
			out = append(out, alert)
		}
	}
	return out, nil
}

func (s *stubStore) CreateAlert(ctx context.Context, alert *models.RealtimeAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert.ID = int64(len(s.alerts) + 1)
	s.alerts = append(s.alerts, alert)
	return nil
}

func (s *stubStore) ResolveAlert(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, alert := range s.alerts {
		if alert.ID == id {
			alert.Resolved = true
			return nil
		}
	}
	return fmt.Errorf("alert %d not found", id)
}

func (s *stubStore) ListSpikeRecords(ctx context.Context) ([]*models.SpikeMonitoringRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.SpikeMonitoringRecord{}, s.spikes...), nil
}

func (s *stubStore) CreateSpikeRecord(ctx context.Context, rec *models.SpikeMonitoringRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = int64(len(s.spikes) + 1)
	s.spikes = append(s.spikes, rec)
	return nil
}

func (s *stubStore) RecordMetric(ctx context.Context, snap *models.DashboardMetricSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics[snap.MetricType] = append(s.metrics[snap.MetricType], snap)
	return nil
}

func (s *stubStore) PreviousMetric(ctx context.Context, metric models.MetricType) (*models.DashboardMetricSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snaps := s.metrics[metric]
	if len(snaps) == 0 {
		return nil, nil
	}
	return snaps[len(snaps)-1], nil
}
