package repository

import (
	"context"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormAircraftRepository implements the AircraftRepository interface
type GormAircraftRepository struct {
	db *gorm.DB
}

// NewGormAircraftRepository creates a new GORM aircraft repository
func NewGormAircraftRepository(db *gorm.DB) repository.AircraftRepository {
	return &GormAircraftRepository{
		db: db,
	}
}

// AircraftTypes GORM model for database mapping
type AircraftTypes struct {
	ID   uint   `gorm:"primaryKey"`
	ICAO string `gorm:"column:icao;unique"`
	Name string `gorm:"column:name"`
}

// TableName overrides the default table name
func (AircraftTypes) TableName() string {
	return "m_aircraft_types"
}

// ListAll returns the full aircraft type table in insertion order.
func (r *GormAircraftRepository) ListAll(ctx context.Context) ([]entity.Aircraft, error) {
	var rows []AircraftTypes
	result := r.db.WithContext(ctx).Order("id").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	aircraft := make([]entity.Aircraft, len(rows))
	for i, row := range rows {
		aircraft[i] = entity.Aircraft{
			ICAO: row.ICAO,
			Name: row.Name,
		}
	}
	return aircraft, nil
}
