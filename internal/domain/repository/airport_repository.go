package repository

import (
	"context"

	"flightlog-service/internal/domain/entity"
)

// AirportRepository resolves airports from the reference table.
type AirportRepository interface {
	GetByIATA(ctx context.Context, code string) (*entity.Airport, error)
}
