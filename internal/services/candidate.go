package services

import (
	"context"
	"math"
	"strconv"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

const (
	// DefaultGrowthFactor scales the trailing demand sum into a forecast.
	DefaultGrowthFactor = 1.2
	// DefaultDemandWindow is how many trailing demand samples feed the
	// current-demand feature.
	DefaultDemandWindow = 7
)

// DistanceFunc is a monotonic proxy for the distance between two
// inventories. The scoring quality depends entirely on this metric, so it is
// injectable; the default has no real topology to work from and falls back
// to a scaled id difference.
type DistanceFunc func(from, to *models.Inventory) float64

// IndexDistance is the fallback proxy: |fromID - toID| * 10.
func IndexDistance(from, to *models.Inventory) float64 {
	return math.Abs(float64(from.ID-to.ID)) * 10
}

// CandidateBuilder assembles the per-inventory feature vector the scoring
// engine ranks: current load, free volume, alarm threshold, distance proxy,
// and current plus forecasted demand.
type CandidateBuilder struct {
	demand       recordstore.DemandStore
	distance     DistanceFunc
	growthFactor float64
	window       int
}

func NewCandidateBuilder(demand recordstore.DemandStore, distance DistanceFunc) *CandidateBuilder {
	if distance == nil {
		distance = IndexDistance
	}
	return &CandidateBuilder{
		demand:       demand,
		distance:     distance,
		growthFactor: DefaultGrowthFactor,
		window:       DefaultDemandWindow,
	}
}

// BuildRequest builds the scoring request for one breaching inventory from a
// single tick-consistent snapshot of the network. Every inventory appears in
// the maps, the source included, so the request matches the external scoring
// contract exactly.
func (b *CandidateBuilder) BuildRequest(ctx context.Context, source *models.Inventory, snapshot []*models.Inventory) (*ScoringRequest, error) {
	req := &ScoringRequest{
		FromInventory:     source.ID,
		UpcomingQuantity:  make(map[string]float64, len(snapshot)),
		DistanceFromInv:   make(map[string]float64, len(snapshot)),
		CurrentDemand:     make(map[string]float64, len(snapshot)),
		ForecastedDemand:  make(map[string]float64, len(snapshot)),
		VolumeFree:        make(map[string]float64, len(snapshot)),
		ThresholdForAlert: make(map[string]float64, len(snapshot)),
	}

	for _, inv := range snapshot {
		key := strconv.FormatInt(inv.ID, 10)
		req.UpcomingQuantity[key] = inv.VolumeOccupied
		req.VolumeFree[key] = inv.VolumeAvailable
		req.ThresholdForAlert[key] = inv.SafeThreshold()
		req.DistanceFromInv[key] = b.distance(source, inv)

		history, err := b.demand.DemandHistoryByInventory(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
		current := trailingDemand(history, b.window)
		req.CurrentDemand[key] = current
		req.ForecastedDemand[key] = current * b.growthFactor
	}
	return req, nil
}

// trailingDemand sums the last n demand quantities. History arrives ordered
// by timestamp from the store.
func trailingDemand(history []*models.DemandHistoryRecord, n int) float64 {
	start := len(history) - n
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, rec := range history[start:] {
		sum += rec.DemandQuantity
	}
	return sum
}

// PlanRelocation turns a selected target into a concrete relocation plan:
// how much to move, and whether the target could absorb the whole excess.
// A shortfall is a recoverable condition, not an error; the remainder stays
// at the source and is reconsidered on the next tick.
func PlanRelocation(source *models.Inventory, targetID int64, targetFree float64) *models.RelocationPlan {
	excess := source.ExcessLoad()
	plan := &models.RelocationPlan{
		SourceInventoryID: source.ID,
		TargetInventoryID: targetID,
		ExcessLoad:        excess,
	}
	if targetID == 0 {
		return plan
	}

	quantity := math.Min(excess, targetFree)
	plan.Quantity = int(quantity)
	if quantity < excess {
		plan.Partial = true
		plan.Remainder = excess - quantity
	}
	return plan
}
