package models

import "time"

type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "low"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

// RealtimeAlert is recorded on breach or spike detection and mutated only by
// explicit resolution.
type RealtimeAlert struct {
	ID          int64         `json:"id" db:"id"`
	InventoryID int64         `json:"inventoryId" db:"inventory_id"`
	Severity    AlertSeverity `json:"severity" db:"severity"`
	Message     string        `json:"message" db:"message"`
	Resolved    bool          `json:"resolved" db:"resolved"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty" db:"resolved_at"`
}
