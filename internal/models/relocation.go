package models

import "time"

type RelocationStatus string

const (
	RelocationStatusPending   RelocationStatus = "pending"
	RelocationStatusCompleted RelocationStatus = "completed"
	RelocationStatusCancelled RelocationStatus = "cancelled"
)

type RelocationPriority string

const (
	RelocationPriorityLow    RelocationPriority = "low"
	RelocationPriorityNormal RelocationPriority = "normal"
	RelocationPriorityHigh   RelocationPriority = "high"
)

// RelocationMessage is a directed, quantified transfer proposal between two
// inventories. Created pending, mutated only by execution or cancellation.
type RelocationMessage struct {
	ID              int64              `json:"id" db:"id"`
	FromInventoryID int64              `json:"fromInventoryId" db:"from_inventory_id"`
	ToInventoryID   int64              `json:"toInventoryId" db:"to_inventory_id"`
	Quantity        int                `json:"quantity" db:"quantity"`
	Priority        RelocationPriority `json:"priority" db:"priority"`
	Status          RelocationStatus   `json:"status" db:"status"`
	CreatedAt       time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" db:"updated_at"`
}

// RelocationPlan is the scoring engine's answer for one breaching inventory.
// A zero TargetInventoryID means no eligible candidate existed.
type RelocationPlan struct {
	SourceInventoryID int64   `json:"source_inventory"`
	TargetInventoryID int64   `json:"target_inventory"`
	Quantity          int     `json:"quantity"`
	ExcessLoad        float64 `json:"excess_load"`
	Partial           bool    `json:"partial"`
	Remainder         float64 `json:"remainder"`
}

// NoCandidate reports whether the plan found no eligible target.
func (p *RelocationPlan) NoCandidate() bool {
	return p.TargetInventoryID == 0
}
