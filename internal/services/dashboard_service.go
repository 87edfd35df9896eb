package services

import (
	"context"
	"fmt"
	"log"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

const (
	// savingsPerUnit is the per-unit rate credited for completed moves.
	savingsPerUnit = 15.0
	// optimalStatusBonus is credited once per inventory tagged optimal.
	optimalStatusBonus = 500.0
)

// DashboardService aggregates relocation and alert history into the four
// trend metrics and snapshots them once per day.
type DashboardService struct {
	store recordstore.Store
}

func NewDashboardService(store recordstore.Store) *DashboardService {
	return &DashboardService{store: store}
}

// Overview computes the current value of every dashboard metric from fresh
// record-store state.
func (s *DashboardService) Overview(ctx context.Context) (*models.DashboardOverview, error) {
	inventories, err := s.store.ListInventories(ctx)
	if err != nil {
		return nil, err
	}
	relocations, err := s.store.ListRelocations(ctx)
	if err != nil {
		return nil, err
	}
	alerts, err := s.store.UnresolvedAlerts(ctx)
	if err != nil {
		return nil, err
	}

	overview := &models.DashboardOverview{TotalInventories: len(inventories)}

	for _, rel := range relocations {
		overview.ReallocatedItems += float64(rel.Quantity)
		if rel.Status == models.RelocationStatusCompleted {
			overview.ItemsMigrated += float64(rel.Quantity)
		}
	}

	overview.CostSavings = overview.ItemsMigrated * savingsPerUnit
	for _, inv := range inventories {
		if inv.Status == models.InventoryStatusOptimal {
			overview.CostSavings += optimalStatusBonus
		}
	}

	for _, alert := range alerts {
		if alert.Severity == models.AlertSeverityCritical {
			overview.CriticalAlerts++
		}
	}
	return overview, nil
}

// RecordDailyMetrics snapshots all four metrics. It runs on the daily cron
// and is also callable directly so tests can drive it without wall-clock
// waits.
func (s *DashboardService) RecordDailyMetrics(ctx context.Context) error {
	overview, err := s.Overview(ctx)
	if err != nil {
		return fmt.Errorf("compute daily metrics: %w", err)
	}

	snapshots := []*models.DashboardMetricSnapshot{
		{MetricType: models.MetricMigrated, Value: overview.ItemsMigrated},
		{MetricType: models.MetricReallocated, Value: overview.ReallocatedItems},
		{MetricType: models.MetricCostSavings, Value: overview.CostSavings},
		{MetricType: models.MetricCriticalAlerts, Value: float64(overview.CriticalAlerts)},
	}
	for _, snap := range snapshots {
		if err := s.store.RecordMetric(ctx, snap); err != nil {
			return fmt.Errorf("record %s snapshot: %w", snap.MetricType, err)
		}
	}
	log.Printf("dashboard: recorded daily metrics (migrated=%.0f reallocated=%.0f savings=%.0f critical=%d)",
		overview.ItemsMigrated, overview.ReallocatedItems, overview.CostSavings, overview.CriticalAlerts)
	return nil
}

// Stats returns the formatted dashboard tiles: current values with the
// percentage change against the previous daily snapshot of each metric.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		Migrated: models.TrendStat{
			Value:  fmt.Sprintf("%.0f", overview.ItemsMigrated),
			Change: s.changeAgainstPrevious(ctx, models.MetricMigrated, overview.ItemsMigrated),
		},
		Reallocated: models.TrendStat{
			Value:  fmt.Sprintf("%.0f", overview.ReallocatedItems),
			Change: s.changeAgainstPrevious(ctx, models.MetricReallocated, overview.ReallocatedItems),
		},
		Saved: models.TrendStat{
			Value:  fmt.Sprintf("$%.1fK", overview.CostSavings/1000),
			Change: s.changeAgainstPrevious(ctx, models.MetricCostSavings, overview.CostSavings),
		},
		CriticalAlerts: models.TrendStat{
			Value:  fmt.Sprintf("%d", overview.CriticalAlerts),
			Change: s.changeAgainstPrevious(ctx, models.MetricCriticalAlerts, float64(overview.CriticalAlerts)),
		},
	}, nil
}

func (s *DashboardService) changeAgainstPrevious(ctx context.Context, metric models.MetricType, current float64) string {
	previous, err := s.store.PreviousMetric(ctx, metric)
	if err != nil {
		log.Printf("dashboard: previous %s snapshot unavailable: %v", metric, err)
		return FormatChangePercentage(0)
	}
	if previous == nil {
		return FormatChangePercentage(0)
	}
	return FormatChangePercentage(PercentageChange(current, previous.Value))
}

// PercentageChange is 0 when there is no meaningful prior value to compare
// against.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func FormatChangePercentage(change float64) string {
	if change >= 0 {
		return fmt.Sprintf("+%.0f%%", change)
	}
	return fmt.Sprintf("%.0f%%", change)
}
