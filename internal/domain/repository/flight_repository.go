package repository

import (
	"context"

	"flightlog-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight persistence.
type FlightRepository interface {
	InsertMany(ctx context.Context, flights []*entity.Flight) error
	FindByUser(ctx context.Context, userID string) ([]*entity.Flight, error)
}
