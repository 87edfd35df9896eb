package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphor/internal/models"
)

func seedDashboardStore(t *testing.T) *stubStore {
	t.Helper()
	store := newStubStore()
	ctx := context.Background()

	store.addInventory(&models.Inventory{ID: 1, Status: models.InventoryStatusHealthy})
	store.addInventory(&models.Inventory{ID: 2, Status: models.InventoryStatusOptimal})
	store.addInventory(&models.Inventory{ID: 3, Status: models.InventoryStatusOptimal})

	require.NoError(t, store.CreateRelocation(ctx, &models.RelocationMessage{
		FromInventoryID: 1, ToInventoryID: 2, Quantity: 100, Status: models.RelocationStatusCompleted,
	}))
	require.NoError(t, store.CreateRelocation(ctx, &models.RelocationMessage{
		FromInventoryID: 1, ToInventoryID: 3, Quantity: 40, Status: models.RelocationStatusPending,
	}))

	require.NoError(t, store.CreateAlert(ctx, &models.RealtimeAlert{
		InventoryID: 1, Severity: models.AlertSeverityCritical,
	}))
	require.NoError(t, store.CreateAlert(ctx, &models.RealtimeAlert{
		InventoryID: 1, Severity: models.AlertSeverityWarning,
	}))
	return store
}

func TestOverviewMetrics(t *testing.T) {
	store := seedDashboardStore(t)
	service := NewDashboardService(store)

	overview, err := service.Overview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, overview.TotalInventories)
	// Completed moves only.
	assert.Equal(t, 100.0, overview.ItemsMigrated)
	// All relocations regardless of status.
	assert.Equal(t, 140.0, overview.ReallocatedItems)
	// 100 * 15 per unit + 2 optimal inventories * 500.
	assert.Equal(t, 2500.0, overview.CostSavings)
	// Only the unresolved critical alert counts.
	assert.Equal(t, 1, overview.CriticalAlerts)
}

func TestRecordDailyMetricsSnapshotsAllFour(t *testing.T) {
	store := seedDashboardStore(t)
	service := NewDashboardService(store)
	ctx := context.Background()

	require.NoError(t, service.RecordDailyMetrics(ctx))

	for _, metric := range models.MetricTypes {
		snap, err := store.PreviousMetric(ctx, metric)
		require.NoError(t, err)
		require.NotNil(t, snap, "missing snapshot for %s", metric)
	}

	snap, err := store.PreviousMetric(ctx, models.MetricCostSavings)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, snap.Value)
}

func TestStatsFormatsTilesWithoutHistory(t *testing.T) {
	store := seedDashboardStore(t)
	service := NewDashboardService(store)

	stats, err := service.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "100", stats.Migrated.Value)
	assert.Equal(t, "140", stats.Reallocated.Value)
	assert.Equal(t, "$2.5K", stats.Saved.Value)
	assert.Equal(t, "1", stats.CriticalAlerts.Value)

	// No prior snapshot means no measurable change.
	assert.Equal(t, "+0%", stats.Migrated.Change)
	assert.Equal(t, "+0%", stats.Saved.Change)
}

func TestStatsChangeAgainstPreviousSnapshot(t *testing.T) {
	store := seedDashboardStore(t)
	service := NewDashboardService(store)
	ctx := context.Background()

	require.NoError(t, store.RecordMetric(ctx, &models.DashboardMetricSnapshot{
		MetricType: models.MetricMigrated, Value: 50,
	}))
	require.NoError(t, store.RecordMetric(ctx, &models.DashboardMetricSnapshot{
		MetricType: models.MetricCriticalAlerts, Value: 2,
	}))

	stats, err := service.Stats(ctx)
	require.NoError(t, err)

	// 100 against 50 yesterday.
	assert.Equal(t, "+100%", stats.Migrated.Change)
	// 1 against 2 yesterday.
	assert.Equal(t, "-50%", stats.CriticalAlerts.Change)
}

func TestPercentageChange(t *testing.T) {
	assert.Equal(t, 0.0, PercentageChange(10, 0))
	assert.Equal(t, 100.0, PercentageChange(20, 10))
	assert.Equal(t, -50.0, PercentageChange(5, 10))
}

func TestFormatChangePercentage(t *testing.T) {
	assert.Equal(t, "+25%", FormatChangePercentage(25.4))
	assert.Equal(t, "+0%", FormatChangePercentage(0))
	assert.Equal(t, "-33%", FormatChangePercentage(-33.3))
}
