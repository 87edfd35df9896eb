package models

import "time"

// SpikeState is the temporal status of a demand spike, derived from the age
// of its monitoring record.
type SpikeState string

const (
	SpikeStateActive     SpikeState = "active"
	SpikeStateMonitoring SpikeState = "monitoring"
	SpikeStateResolved   SpikeState = "resolved"
)

// SpikeMonitoringRecord marks an inventory as under spike watch. The
// classifier reads it and never mutates it.
type SpikeMonitoringRecord struct {
	ID          int64     `json:"spikeMonitoringId" db:"spike_monitoring_id"`
	InventoryID int64     `json:"inventoryId" db:"inventory_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// SpikeEntry is one classified spike in the monitoring report.
type SpikeEntry struct {
	ID                 int64         `json:"id"`
	Timestamp          time.Time     `json:"timestamp"`
	InventoryName      string        `json:"inventory_name"`
	Severity           AlertSeverity `json:"severity"`
	DemandSpike        string        `json:"demand_spike"`
	CurrentUtilization float64       `json:"current_utilization"`
	Status             SpikeState    `json:"status"`
	RecommendedAction  string        `json:"recommended_action"`
}

type SpikeSummary struct {
	TotalSpikes    int `json:"total_spikes"`
	CriticalSpikes int `json:"critical_spikes"`
	ActiveSpikes   int `json:"active_spikes"`
}

type SpikeMonitoringReport struct {
	Spikes  []SpikeEntry `json:"spikes"`
	Summary SpikeSummary `json:"summary"`
}
