package models

import "time"

type Location struct {
	ID        int64     `json:"id" db:"id"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Address   string    `json:"address" db:"address"`
	City      string    `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	Country   string    `json:"country" db:"country"`
	ZipCode   string    `json:"zipCode" db:"zip_code"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
