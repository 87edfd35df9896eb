package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"glyphor/internal/events"
	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

const (
	// DefaultTickInterval is the breach-detection cadence.
	DefaultTickInterval = 5 * time.Second
	// DefaultCallTimeout bounds the scoring and store calls made by one
	// pipeline run. A timeout skips the unit of work until the next tick.
	DefaultCallTimeout = 30 * time.Second
)

// MonitorService drives breach detection. Each tick reads one consistent
// snapshot of every inventory, flags the ones whose occupied load exceeds
// their safe threshold, and runs the relocation pipeline for each breach.
type MonitorService struct {
	store       recordstore.Store
	builder     *CandidateBuilder
	engine      ScoringEngine
	relocations *RelocationService
	hub         *events.Hub
	callTimeout time.Duration
	now         func() time.Time

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewMonitorService(store recordstore.Store, builder *CandidateBuilder, engine ScoringEngine,
	relocations *RelocationService, hub *events.Hub) *MonitorService {
	return &MonitorService{
		store:       store,
		builder:     builder,
		engine:      engine,
		relocations: relocations,
		hub:         hub,
		callTimeout: DefaultCallTimeout,
		now:         time.Now,
		inFlight:    make(map[int64]struct{}),
	}
}

// Tick runs one monitoring pass. Breaches in the same tick are processed
// concurrently and independently; a failure in one pipeline never aborts the
// others or the loop itself.
func (m *MonitorService) Tick(ctx context.Context) error {
	fetchCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	snapshot, err := m.store.ListInventories(fetchCtx)
	if err != nil {
		log.Printf("monitor: snapshot fetch failed, retrying next tick: %v", err)
		return err
	}

	var wg sync.WaitGroup
	for _, inv := range snapshot {
		if !inv.Breaching() {
			continue
		}
		wg.Add(1)
		go func(source *models.Inventory) {
			defer wg.Done()
			if err := m.handleBreach(ctx, source, snapshot); err != nil {
				log.Printf("monitor: breach pipeline for inventory %d failed: %v", source.ID, err)
			}
		}(inv)
	}
	wg.Wait()
	return nil
}

// handleBreach emits the breach alert unconditionally, then tries to find a
// relocation target. At most one pipeline per source inventory may be in
// flight at a time; a breach re-detected while its pipeline still runs is
// skipped until the next tick.
func (m *MonitorService) handleBreach(ctx context.Context, source *models.Inventory, snapshot []*models.Inventory) error {
	if !m.acquire(source.ID) {
		log.Printf("monitor: relocation pipeline already in flight for inventory %d", source.ID)
		return nil
	}
	defer m.release(source.ID)

	m.hub.Broadcast(events.NewThresholdBreach(source, m.now()))
	m.recordBreachAlert(ctx, source)

	plan, err := m.planRelocation(ctx, source, snapshot)
	if err != nil {
		return err
	}
	if plan.NoCandidate() {
		log.Printf("monitor: no relocation candidate for inventory %d (excess %.1f)", source.ID, plan.ExcessLoad)
		return nil
	}

	rel, err := m.relocations.Propose(ctx, plan)
	if err != nil {
		return fmt.Errorf("propose relocation for inventory %d: %w", source.ID, err)
	}

	m.hub.Broadcast(events.NewRelocationRecommended(plan))
	if plan.Partial {
		log.Printf("monitor: relocation %d covers %d of %.1f excess units, %.1f remain at inventory %d",
			rel.ID, plan.Quantity, plan.ExcessLoad, plan.Remainder, source.ID)
	}
	return nil
}

// planRelocation builds the candidate feature vectors and asks the scoring
// engine for a target, bounded by the external-call timeout.
func (m *MonitorService) planRelocation(ctx context.Context, source *models.Inventory, snapshot []*models.Inventory) (*models.RelocationPlan, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	req, err := m.builder.BuildRequest(callCtx, source, snapshot)
	if err != nil {
		return nil, fmt.Errorf("build scoring request: %w", err)
	}

	targetID, err := m.engine.SelectTarget(callCtx, req)
	if err != nil {
		return nil, fmt.Errorf("scoring engine: %w", err)
	}

	var targetFree float64
	for _, inv := range snapshot {
		if inv.ID == targetID {
			targetFree = inv.VolumeAvailable
			break
		}
	}
	return PlanRelocation(source, targetID, targetFree), nil
}

// CheckInventory is the operator-facing manual trigger. It re-fetches fresh
// state, verifies the breach and returns the recommendation without creating
// a relocation record.
func (m *MonitorService) CheckInventory(ctx context.Context, inventoryID int64) (*models.RelocationPlan, error) {
	callCtx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()

	snapshot, err := m.store.ListInventories(callCtx)
	if err != nil {
		return nil, err
	}

	var source *models.Inventory
	for _, inv := range snapshot {
		if inv.ID == inventoryID {
			source = inv
			break
		}
	}
	if source == nil {
		return nil, fmt.Errorf("inventory %d not found", inventoryID)
	}
	if !source.Breaching() {
		return nil, nil
	}
	return m.planRelocation(ctx, source, snapshot)
}

// recordBreachAlert persists the breach as an unresolved critical alert.
// Alert persistence failing must not stop the relocation pipeline.
func (m *MonitorService) recordBreachAlert(ctx context.Context, source *models.Inventory) {
	alert := &models.RealtimeAlert{
		InventoryID: source.ID,
		Severity:    models.AlertSeverityCritical,
		Message: fmt.Sprintf("Inventory %s occupied load %.1f exceeds safe threshold %.1f",
			source.Name, source.VolumeOccupied, source.SafeThreshold()),
	}
	if err := m.store.CreateAlert(ctx, alert); err != nil {
		log.Printf("monitor: failed to record breach alert for inventory %d: %v", source.ID, err)
	}
}

func (m *MonitorService) acquire(inventoryID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.inFlight[inventoryID]; busy {
		return false
	}
	m.inFlight[inventoryID] = struct{}{}
	return true
}

func (m *MonitorService) release(inventoryID int64) {
	m.mu.Lock()
	delete(m.inFlight, inventoryID)
	m.mu.Unlock()
}
