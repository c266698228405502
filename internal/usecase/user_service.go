package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"
	"flightlog-service/pkg/auth"
	"flightlog-service/pkg/logger"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("wrong username or password")
)

// ValidationError aggregates the field violations of one rejected record.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	fields := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		fields[i] = v.Field
	}
	return fmt.Sprintf("validation failed for %s", strings.Join(fields, ", "))
}

// UserService handles account creation and profile edits.
type UserService struct {
	userRepo   repository.UserRepository
	bcryptCost int
	logger     logger.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, bcryptCost int, log logger.Logger) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
		logger:     log,
	}
}

// Register validates the creation variant, hashes the password and stores
// the account. Violations come back as a *ValidationError.
func (s *UserService) Register(ctx context.Context, in NewUserInput) (*entity.User, error) {
	record, violations := ValidateNewUser(in)
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	if _, err := s.userRepo.FindByUsername(ctx, record.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(record.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Username:     record.Username,
		PasswordHash: string(hash),
		DisplayName:  record.DisplayName,
		Unit:         record.Unit,
		Role:         record.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "username", user.Username, "role", user.Role)
	return user, nil
}

// UpdateProfile validates the edit variant and applies it to the
// authenticated caller's account. Password and role are not part of the
// edit variant and therefore cannot change here.
func (s *UserService) UpdateProfile(ctx context.Context, in ProfileEditInput) (*entity.User, error) {
	caller, ok := auth.UserFromContext(ctx)
	if !ok {
		return nil, ErrNoAuthenticatedUser
	}

	record, violations := ValidateProfileEdit(in)
	if len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	user, err := s.userRepo.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	if record.Username != user.Username {
		if _, err := s.userRepo.FindByUsername(ctx, record.Username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	user.Username = record.Username
	user.DisplayName = record.DisplayName
	user.Unit = record.Unit
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user profile updated", "username", user.Username)
	return user, nil
}

// Authenticate checks a username/password pair and returns the account.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
