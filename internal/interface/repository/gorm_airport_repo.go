package repository

import (
	"context"
	"errors"
	"time"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAirportRepository implements the AirportRepository interface
type GormAirportRepository struct {
	db *gorm.DB
}

// NewGormAirportRepository creates a new GORM airport repository
func NewGormAirportRepository(db *gorm.DB) repository.AirportRepository {
	return &GormAirportRepository{
		db: db,
	}
}

// Airports GORM model for database mapping
type Airports struct {
	ID        uint           `gorm:"primaryKey"`
	IATA      string         `gorm:"column:iata;unique"`
	ICAO      string         `gorm:"column:icao;unique"`
	Name      string         `gorm:"column:name"`
	City      string         `gorm:"column:city"`
	Country   string         `gorm:"column:country"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default table name
func (Airports) TableName() string {
	return "m_airports"
}

// GetByIATA finds an airport by its IATA code
func (r *GormAirportRepository) GetByIATA(ctx context.Context, code string) (*entity.Airport, error) {
	var airport Airports
	result := r.db.WithContext(ctx).Where("iata = ?", code).First(&airport)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, result.Error
	}

	// Convert GORM model to domain entity
	return &entity.Airport{
		ID:        airport.ID,
		IATA:      airport.IATA,
		ICAO:      airport.ICAO,
		Name:      airport.Name,
		City:      airport.City,
		Country:   airport.Country,
		CreatedAt: airport.CreatedAt,
		UpdatedAt: airport.UpdatedAt,
		DeletedAt: airport.DeletedAt,
	}, nil
}
