package models

import "time"

// DemandHistoryRecord is an append-only demand sample. The engine reads these
// ordered by timestamp and never mutates them.
type DemandHistoryRecord struct {
	ID             int64     `json:"id" db:"id"`
	InventoryID    int64     `json:"inventoryId" db:"inventory_id"`
	ItemID         int64     `json:"itemId" db:"item_id"`
	DemandQuantity float64   `json:"demandQuantity" db:"demand_quantity"`
	Timestamp      time.Time `json:"timestamp" db:"timestamp"`
	Source         string    `json:"source" db:"source"`
}
