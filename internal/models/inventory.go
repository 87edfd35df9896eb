package models

import (
	"time"
)

// InventoryStatus is an operator-facing tag on an inventory. The engine only
// gives special meaning to "critical" (spike classifier) and "optimal"
// (cost-savings bonus); anything else is carried through untouched.
type InventoryStatus string

const (
	InventoryStatusHealthy  InventoryStatus = "healthy"
	InventoryStatusWarning  InventoryStatus = "warning"
	InventoryStatusCritical InventoryStatus = "critical"
	InventoryStatusOptimal  InventoryStatus = "optimal"
)

type Inventory struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Description     string          `json:"description" db:"description"`
	VolumeOccupied  float64         `json:"volumeOccupied" db:"volume_occupied"`
	VolumeAvailable float64         `json:"volumeAvailable" db:"volume_available"`
	VolumeReserved  float64         `json:"volumeReserved" db:"volume_reserved"`
	Threshold       int             `json:"threshold" db:"threshold"`
	LocationID      int64           `json:"locationId" db:"location_id"`
	Status          InventoryStatus `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// SafeThreshold is the alarm line for this inventory. It must be derived from
// the volumes on every read; callers never cache it across monitor ticks.
func (i *Inventory) SafeThreshold() float64 {
	return i.VolumeAvailable - i.VolumeReserved
}

// ExcessLoad is how far the occupied volume sits above the safe threshold.
// Negative or zero means the inventory is within limits.
func (i *Inventory) ExcessLoad() float64 {
	return i.VolumeOccupied - i.SafeThreshold()
}

// Breaching reports whether occupied load exceeds the safe threshold.
func (i *Inventory) Breaching() bool {
	return i.VolumeOccupied > i.SafeThreshold()
}

// Utilization returns occupied volume as a percentage of total usable
// capacity. An empty inventory (zero capacity) reports 0 rather than NaN.
func (i *Inventory) Utilization() float64 {
	total := i.VolumeOccupied + i.VolumeAvailable
	if total == 0 {
		return 0
	}
	return i.VolumeOccupied / total * 100
}
