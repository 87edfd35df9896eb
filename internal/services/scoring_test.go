package services

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoringRequest(from int64) *ScoringRequest {
	return &ScoringRequest{
		FromInventory:     from,
		UpcomingQuantity:  map[string]float64{},
		DistanceFromInv:   map[string]float64{},
		CurrentDemand:     map[string]float64{},
		ForecastedDemand:  map[string]float64{},
		VolumeFree:        map[string]float64{},
		ThresholdForAlert: map[string]float64{},
	}
}

func addCandidate(req *ScoringRequest, id int64, occupied, free, threshold, distance, forecast float64) {
	key := strconv.FormatInt(id, 10)
	req.UpcomingQuantity[key] = occupied
	req.VolumeFree[key] = free
	req.ThresholdForAlert[key] = threshold
	req.DistanceFromInv[key] = distance
	req.ForecastedDemand[key] = forecast
}

func TestSelectTargetPrefersFreeSpace(t *testing.T) {
	engine := NewRankingEngine(DefaultScoringPolicy())

	req := scoringRequest(1)
	addCandidate(req, 2, 100, 50, 500, 10, 5)
	addCandidate(req, 3, 100, 400, 500, 10, 5)

	target, err := engine.SelectTarget(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(3), target)
}

func TestSelectTargetPenalizesForecastedDemand(t *testing.T) {
	engine := NewRankingEngine(DefaultScoringPolicy())

	req := scoringRequest(1)
	addCandidate(req, 2, 100, 200, 500, 10, 900)
	addCandidate(req, 3, 100, 200, 500, 10, 5)

	target, err := engine.SelectTarget(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(3), target)
}

func TestSelectTargetSkipsZeroFreeSpace(t *testing.T) {
	engine := NewRankingEngine(DefaultScoringPolicy())

	req := scoringRequest(1)
	addCandidate(req, 2, 100, 0, 500, 1, 0)
	addCandidate(req, 3, 100, -5, 500, 1, 0)
	addCandidate(req, 4, 400, 10, 420, 900, 300)

	target, err := engine.SelectTarget(context.Background(), req)
	require.NoError(t, err)
	// Only candidate 4 has free space, however poorly it scores otherwise.
	assert.Equal(t, int64(4), target)
}

func TestSelectTargetNoEligibleCandidate(t *testing.T) {
	engine := NewRankingEngine(DefaultScoringPolicy())

	req := scoringRequest(1)
	addCandidate(req, 1, 100, 300, 500, 0, 0) // the source itself
	addCandidate(req, 2, 100, 0, 500, 10, 5)

	target, err := engine.SelectTarget(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), target)
}

func TestSelectTargetTieBreaksToLowestID(t *testing.T) {
	engine := NewRankingEngine(DefaultScoringPolicy())

	req := scoringRequest(1)
	addCandidate(req, 9, 100, 200, 500, 10, 5)
	addCandidate(req, 4, 100, 200, 500, 10, 5)
	addCandidate(req, 7, 100, 200, 500, 10, 5)

	target, err := engine.SelectTarget(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(4), target)
}

func TestSelectTargetIsDeterministic(t *testing.T) {
	engine := NewRankingEngine(DefaultScoringPolicy())

	req := scoringRequest(1)
	addCandidate(req, 2, 80, 150, 400, 20, 30)
	addCandidate(req, 3, 90, 150, 410, 30, 25)
	addCandidate(req, 5, 70, 160, 390, 40, 35)

	first, err := engine.SelectTarget(context.Background(), req)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		again, err := engine.SelectTarget(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
