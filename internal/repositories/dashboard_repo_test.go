package repositories

import (
	"context"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

type DashboardRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    recordstore.DashboardStore
	context context.Context
}

func (suite *DashboardRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewDashboardRepo(mock)
	suite.context = context.Background()
}

func (suite *DashboardRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestDashboardRepoTestSuite(t *testing.T) {
	suite.Run(t, new(DashboardRepoTestSuite))
}

func (suite *DashboardRepoTestSuite) TestRecordMetricAssignsID() {
	snap := &models.DashboardMetricSnapshot{MetricType: models.MetricCostSavings, Value: 2500}

	suite.mock.ExpectQuery(`INSERT INTO dashboard_metrics (.+) RETURNING id`).
		WithArgs(snap.MetricType, snap.Value).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(8)))

	err := suite.repo.RecordMetric(suite.context, snap)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(8), snap.ID)
}

func (suite *DashboardRepoTestSuite) TestPreviousMetric() {
	recorded := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"id", "metric_type", "value", "recorded_at"}).
		AddRow(int64(3), models.MetricMigrated, 120.0, recorded)

	suite.mock.ExpectQuery(`SELECT id, metric_type, value, recorded_at FROM dashboard_metrics WHERE metric_type = \$1 ORDER BY recorded_at DESC LIMIT 1`).
		WithArgs(models.MetricMigrated).
		WillReturnRows(rows)

	snap, err := suite.repo.PreviousMetric(suite.context, models.MetricMigrated)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 120.0, snap.Value)
	assert.Equal(suite.T(), recorded, snap.RecordedAt)
}

func (suite *DashboardRepoTestSuite) TestPreviousMetricAbsentIsNotAnError() {
	suite.mock.ExpectQuery(`SELECT id, metric_type, value, recorded_at FROM dashboard_metrics WHERE metric_type = \$1 ORDER BY recorded_at DESC LIMIT 1`).
		WithArgs(models.MetricReallocated).
		WillReturnError(pgx.ErrNoRows)

	snap, err := suite.repo.PreviousMetric(suite.context, models.MetricReallocated)
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), snap)
}
