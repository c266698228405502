package repository

import (
	"context"

	"flightlog-service/internal/domain/entity"
)

// AirlineRepository resolves airlines from the reference table.
type AirlineRepository interface {
	GetByIATA(ctx context.Context, code string) (*entity.Airline, error)
}
