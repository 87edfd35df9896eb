package services

import (
	"context"
	"math"
	"sort"
	"strconv"
)

// ScoringRequest is the wire shape handed to the scoring engine. The field
// names mirror the external scoring-process contract, so a serialized request
// stays byte-compatible with it; maps are keyed by decimal inventory id.
type ScoringRequest struct {
	FromInventory     int64              `json:"from inv"`
	UpcomingQuantity  map[string]float64 `json:"upcoming quantity"`
	DistanceFromInv   map[string]float64 `json:"distance from_inv"`
	CurrentDemand     map[string]float64 `json:"current_demand"`
	ForecastedDemand  map[string]float64 `json:"forecasted_demand"`
	VolumeFree        map[string]float64 `json:"volume_free"`
	ThresholdForAlert map[string]float64 `json:"threshold_for_alert"`
}

// ScoringEngine ranks relocation candidates for a breaching inventory and
// returns the best target id, or 0 when no candidate is eligible.
type ScoringEngine interface {
	SelectTarget(ctx context.Context, req *ScoringRequest) (int64, error)
}

// ScoringPolicy holds the tunable weights of the ranking function. Free
// space and headroom under the candidate's own alarm line raise the score;
// distance and forecasted demand lower it, since a candidate trending toward
// its own breach is a poor target.
type ScoringPolicy struct {
	FreeSpaceWeight float64
	HeadroomWeight  float64
	DistanceWeight  float64
	ForecastWeight  float64
}

// DefaultScoringPolicy keeps the weight magnitudes of the original ranking
// constants with the demand terms applied as penalties.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		FreeSpaceWeight: 0.15,
		HeadroomWeight:  0.18,
		DistanceWeight:  0.18,
		ForecastWeight:  0.25,
	}
}

type rankingEngine struct {
	policy ScoringPolicy
}

// NewRankingEngine returns the in-process ScoringEngine. It performs the
// ranking in a single O(N) pass over the candidate set, which is what lets
// the monitor rank tens of thousands of candidates inside one tick.
func NewRankingEngine(policy ScoringPolicy) ScoringEngine {
	return &rankingEngine{policy: policy}
}

func (e *rankingEngine) score(distance, forecast, free, headroom float64) float64 {
	s := e.policy.FreeSpaceWeight * free
	s += e.policy.HeadroomWeight * headroom
	s += e.policy.DistanceWeight / (distance + 1)
	s -= e.policy.ForecastWeight * forecast
	return s
}

// SelectTarget picks the best-scoring candidate. Candidates with no free
// space are never eligible; ties break to the lowest inventory id so the
// result is reproducible for identical input.
func (e *rankingEngine) SelectTarget(_ context.Context, req *ScoringRequest) (int64, error) {
	ids := make([]int64, 0, len(req.UpcomingQuantity))
	for key := range req.UpcomingQuantity {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			continue
		}
		if id == req.FromInventory {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var (
		bestID    int64
		bestScore = math.Inf(-1)
	)
	for _, id := range ids {
		key := strconv.FormatInt(id, 10)
		free := req.VolumeFree[key]
		if free <= 0 {
			continue
		}
		headroom := req.ThresholdForAlert[key] - req.UpcomingQuantity[key]
		score := e.score(req.DistanceFromInv[key], req.ForecastedDemand[key], free, headroom)
		if score > bestScore {
			bestID = id
			bestScore = score
		}
	}
	return bestID, nil
}
