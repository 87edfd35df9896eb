package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"glyphor/internal/models"
)

type RelocationServiceTestSuite struct {
	suite.Suite
	store   *stubStore
	service *RelocationService
	ctx     context.Context
}

func (suite *RelocationServiceTestSuite) SetupTest() {
	suite.store = newStubStore()
	suite.service = NewRelocationService(suite.store)
	suite.ctx = context.Background()

	suite.store.addInventory(&models.Inventory{
		ID: 1, Name: "source", VolumeOccupied: 900, VolumeAvailable: 300, VolumeReserved: 0,
	})
	suite.store.addInventory(&models.Inventory{
		ID: 2, Name: "target", VolumeOccupied: 100, VolumeAvailable: 800, VolumeReserved: 0,
	})
}

func TestRelocationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RelocationServiceTestSuite))
}

func (suite *RelocationServiceTestSuite) propose(quantity int) *models.RelocationMessage {
	rel, err := suite.service.Propose(suite.ctx, &models.RelocationPlan{
		SourceInventoryID: 1,
		TargetInventoryID: 2,
		Quantity:          quantity,
		ExcessLoad:        float64(quantity),
	})
	suite.Require().NoError(err)
	return rel
}

func (suite *RelocationServiceTestSuite) TestProposeCreatesPendingHighPriority() {
	rel := suite.propose(200)

	suite.Equal(models.RelocationStatusPending, rel.Status)
	suite.Equal(models.RelocationPriorityHigh, rel.Priority)
	suite.Equal(200, rel.Quantity)
	suite.NotZero(rel.ID)
}

func (suite *RelocationServiceTestSuite) TestProposeRejectsNoCandidate() {
	_, err := suite.service.Propose(suite.ctx, &models.RelocationPlan{SourceInventoryID: 1})
	suite.Error(err)
}

func (suite *RelocationServiceTestSuite) TestProposeRejectsNonPositiveQuantity() {
	_, err := suite.service.Propose(suite.ctx, &models.RelocationPlan{
		SourceInventoryID: 1, TargetInventoryID: 2, Quantity: 0,
	})
	suite.Error(err)
}

func (suite *RelocationServiceTestSuite) TestExecuteConservesTotalVolume() {
	rel := suite.propose(200)

	before := suite.store.inventory(1).VolumeOccupied + suite.store.inventory(2).VolumeOccupied

	suite.Require().NoError(suite.service.Execute(suite.ctx, rel.ID))

	source := suite.store.inventory(1)
	target := suite.store.inventory(2)
	suite.Equal(700.0, source.VolumeOccupied)
	suite.Equal(500.0, source.VolumeAvailable)
	suite.Equal(300.0, target.VolumeOccupied)
	suite.Equal(600.0, target.VolumeAvailable)
	suite.Equal(before, source.VolumeOccupied+target.VolumeOccupied)

	updated, err := suite.store.GetRelocation(suite.ctx, rel.ID)
	suite.Require().NoError(err)
	suite.Equal(models.RelocationStatusCompleted, updated.Status)
}

func (suite *RelocationServiceTestSuite) TestExecuteTwiceAppliesDeltaOnce() {
	rel := suite.propose(200)

	suite.Require().NoError(suite.service.Execute(suite.ctx, rel.ID))
	suite.Require().NoError(suite.service.Execute(suite.ctx, rel.ID))

	// The second execution is a no-op: volumes move exactly once.
	suite.Equal(700.0, suite.store.inventory(1).VolumeOccupied)
	suite.Equal(300.0, suite.store.inventory(2).VolumeOccupied)
	suite.Len(suite.store.volumeUpdates, 2)
}

func (suite *RelocationServiceTestSuite) TestExecuteRollsBackOnTargetFailure() {
	rel := suite.propose(200)
	suite.store.failVolumeUpdateFor = 2

	err := suite.service.Execute(suite.ctx, rel.ID)
	suite.Error(err)

	// The source mutation was undone and the record stays pending.
	source := suite.store.inventory(1)
	suite.Equal(900.0, source.VolumeOccupied)
	suite.Equal(300.0, source.VolumeAvailable)

	updated, err := suite.store.GetRelocation(suite.ctx, rel.ID)
	suite.Require().NoError(err)
	suite.Equal(models.RelocationStatusPending, updated.Status)
}

func (suite *RelocationServiceTestSuite) TestExecuteRejectsCancelled() {
	rel := suite.propose(200)
	suite.Require().NoError(suite.service.Cancel(suite.ctx, rel.ID))

	suite.Error(suite.service.Execute(suite.ctx, rel.ID))
	suite.Equal(900.0, suite.store.inventory(1).VolumeOccupied)
}

func (suite *RelocationServiceTestSuite) TestCancelPendingOnly() {
	rel := suite.propose(200)
	suite.Require().NoError(suite.service.Execute(suite.ctx, rel.ID))

	suite.Error(suite.service.Cancel(suite.ctx, rel.ID))
}
