package models

import "time"

type Item struct {
	ID          int64     `json:"item_id" db:"item_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Weight      float64   `json:"weight" db:"weight"`
	Dimensions  string    `json:"dimensions" db:"dimensions"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// InventoryItem links an item to the inventory holding it.
type InventoryItem struct {
	ID          int64     `json:"id" db:"id"`
	InventoryID int64     `json:"inventoryId" db:"inventory_id"`
	ItemID      int64     `json:"itemId" db:"item_id"`
	Quantity    int       `json:"quantity" db:"quantity"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
