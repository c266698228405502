package repository

import (
	"context"

	"flightlog-service/internal/domain/entity"
)

// AircraftRepository supplies the static aircraft type table. The table is
// immutable for the process lifetime; callers load it once at startup.
type AircraftRepository interface {
	ListAll(ctx context.Context) ([]entity.Aircraft, error)
}
