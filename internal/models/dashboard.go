package models

import "time"

type MetricType string

const (
	MetricMigrated       MetricType = "migrated"
	MetricReallocated    MetricType = "reallocated"
	MetricCostSavings    MetricType = "cost_savings"
	MetricCriticalAlerts MetricType = "critical_alerts"
)

// MetricTypes lists every metric snapshotted by the daily aggregator job.
var MetricTypes = []MetricType{MetricMigrated, MetricReallocated, MetricCostSavings, MetricCriticalAlerts}

// DashboardMetricSnapshot is one daily data point for a metric, immutable
// once written.
type DashboardMetricSnapshot struct {
	ID         int64      `json:"id" db:"id"`
	MetricType MetricType `json:"metricType" db:"metric_type"`
	Value      float64    `json:"value" db:"value"`
	RecordedAt time.Time  `json:"recorded_at" db:"recorded_at"`
}

type DashboardOverview struct {
	TotalInventories int     `json:"total_inventories"`
	CriticalAlerts   int     `json:"critical_alerts"`
	ItemsMigrated    float64 `json:"items_migrated"`
	CostSavings      float64 `json:"cost_savings"`
	ReallocatedItems float64 `json:"reallocated_items"`
}

// TrendStat is a formatted metric value plus its change against the previous
// daily snapshot.
type TrendStat struct {
	Value  string `json:"value"`
	Change string `json:"change"`
}

type DashboardStats struct {
	Migrated       TrendStat `json:"migrated"`
	Reallocated    TrendStat `json:"reallocated"`
	Saved          TrendStat `json:"saved"`
	CriticalAlerts TrendStat `json:"critical_alerts"`
}
