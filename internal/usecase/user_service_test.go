package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"flightlog-service/internal/domain/entity"
	"flightlog-service/internal/domain/repository"
	"flightlog-service/pkg/auth"
	"flightlog-service/pkg/logger"
)

type fakeUserRepo struct {
	byID       map[string]*entity.User
	byUsername map[string]*entity.User
	inserted   []*entity.User
	updated    []*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[string]*entity.User),
		byUsername: make(map[string]*entity.User),
	}
}

func (f *fakeUserRepo) add(user *entity.User) {
	f.byID[user.ID] = user
	f.byUsername[user.Username] = user
}

func (f *fakeUserRepo) Insert(_ context.Context, user *entity.User) error {
	user.ID = "user-" + user.Username
	f.add(user)
	f.inserted = append(f.inserted, user)
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	if user, ok := f.byID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	if user, ok := f.byUsername[username]; ok {
		return user, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.add(user)
	f.updated = append(f.updated, user)
	return nil
}

func newTestUserService(repo *fakeUserRepo) *UserService {
	return NewUserService(repo, bcrypt.MinCost, logger.NewNop())
}

func TestRegisterHashesPasswordAndDefaults(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	user, err := svc.Register(context.Background(), NewUserInput{
		Username:    "jane_doe",
		Password:    "correcthorse",
		DisplayName: "Jane Doe",
	})
	require.NoError(t, err)
	require.Len(t, repo.inserted, 1)

	assert.Equal(t, entity.UnitMetric, user.Unit)
	assert.Equal(t, entity.RoleUser, user.Role)
	assert.NotEqual(t, "correcthorse", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correcthorse")))
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), NewUserInput{
		Username:    "a!",
		Password:    "short",
		DisplayName: "x",
	})

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Violations, 3)
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&entity.User{ID: "user-1", Username: "jane_doe"})
	svc := newTestUserService(repo)

	_, err := svc.Register(context.Background(), NewUserInput{
		Username:    "jane_doe",
		Password:    "correcthorse",
		DisplayName: "Jane Doe",
	})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestUpdateProfileRequiresAuth(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	_, err := svc.UpdateProfile(context.Background(), ProfileEditInput{
		Username:    "jane_doe",
		DisplayName: "Jane",
	})
	assert.ErrorIs(t, err, ErrNoAuthenticatedUser)
}

func TestUpdateProfileAppliesEdit(t *testing.T) {
	repo := newFakeUserRepo()
	repo.add(&entity.User{
		ID:           "user-1",
		Username:     "jane_doe",
		PasswordHash: "hash",
		DisplayName:  "Jane Doe",
		Unit:         entity.UnitMetric,
		Role:         entity.RoleUser,
	})
	svc := newTestUserService(repo)

	ctx := auth.WithUser(context.Background(), auth.User{ID: "user-1"})
	user, err := svc.UpdateProfile(ctx, ProfileEditInput{
		Username:    "jane_doe",
		DisplayName: "Jane D.",
		Unit:        "imperial",
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane D.", user.DisplayName)
	assert.Equal(t, entity.UnitImperial, user.Unit)
	// Untouchable through this path.
	assert.Equal(t, "hash", user.PasswordHash)
	assert.Equal(t, entity.RoleUser, user.Role)
	require.Len(t, repo.updated, 1)
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	_, err := svc.Register(context.Background(), NewUserInput{
		Username:    "jane_doe",
		Password:    "correcthorse",
		DisplayName: "Jane Doe",
	})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), "jane_doe", "correcthorse")
	require.NoError(t, err)
	assert.Equal(t, "jane_doe", user.Username)

	_, err = svc.Authenticate(context.Background(), "jane_doe", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody", "correcthorse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
