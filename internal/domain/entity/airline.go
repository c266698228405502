package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline represents an airline from the reference table.
type Airline struct {
	ID        uint
	IATA      string
	ICAO      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
