package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airport represents an airport from the reference table.
type Airport struct {
	ID        uint
	IATA      string
	ICAO      string
	Name      string
	City      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
