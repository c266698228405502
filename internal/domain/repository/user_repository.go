package repository

import (
	"context"

	"flightlog-service/internal/domain/entity"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Insert(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
