package user

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/socialseed/socialseed/internal/api/auth"
	"github.com/socialseed/socialseed/internal/types"
)

// MockUserRepo is a mock implementation of the UserRepo interface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Save(ctx context.Context, user *types.UserAuth) (*types.UserAuth, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*types.UserAuth, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockUserRepo) GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.UserAuth), args.Error(1)
}

func (m *MockUserRepo) GetAllUsers(ctx context.Context) ([]types.UserAuth, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.UserAuth), args.Error(1)
}

func (m *MockUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUserService_CreateUser(t *testing.T) {
	req := CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
		FullName: "Alice A",
	}

	t.Run("HashesPasswordAndAssignsDefaults", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, auth.NewBcryptHasher(), slog.Default())
		ctx := context.Background()

		mockRepo.On("Save", ctx, mock.MatchedBy(func(u *types.UserAuth) bool {
			return u.ID != uuid.Nil &&
				u.Password != req.Password &&
				auth.NewBcryptHasher().Verify(req.Password, u.Password) &&
				len(u.Roles) == 1 && u.Roles[0] == auth.DefaultRole
		})).Return(&types.UserAuth{
			ID:       uuid.New(),
			Username: req.Username,
			Email:    req.Email,
			Roles:    []string{auth.DefaultRole},
		}, nil).Once()

		created, err := service.CreateUser(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, req.Username, created.Username)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, auth.NewBcryptHasher(), slog.Default())
		ctx := context.Background()

		mockRepo.On("Save", ctx, mock.AnythingOfType("*types.UserAuth")).
			Return(nil, types.ErrConflict).Once()

		created, err := service.CreateUser(ctx, req)

		assert.Nil(t, created)
		assert.ErrorIs(t, err, types.ErrConflict)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_GetUserByID(t *testing.T) {
	t.Run("CacheMissThenHit", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, auth.NewBcryptHasher(), slog.Default())
		ctx := context.Background()
		id := uuid.New()
		user := &types.UserAuth{ID: id, Username: "alice", Email: "alice@example.com"}

		// The repository is hit once; the second read is served from cache.
		mockRepo.On("GetUserByID", ctx, id).Return(user, nil).Once()

		first, err := service.GetUserByID(ctx, id)
		require.NoError(t, err)

		second, err := service.GetUserByID(ctx, id)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, auth.NewBcryptHasher(), slog.Default())
		ctx := context.Background()
		id := uuid.New()

		mockRepo.On("GetUserByID", ctx, id).Return(nil, types.ErrNotFound).Once()

		_, err := service.GetUserByID(ctx, id)

		assert.ErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("InvalidatesCache", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, auth.NewBcryptHasher(), slog.Default())
		ctx := context.Background()
		id := uuid.New()
		user := &types.UserAuth{ID: id, Username: "alice"}

		// Warm the cache, delete, then expect the next read to miss the cache
		// and hit the repository again.
		mockRepo.On("GetUserByID", ctx, id).Return(user, nil).Twice()
		mockRepo.On("DeleteUser", ctx, id).Return(nil).Once()

		_, err := service.GetUserByID(ctx, id)
		require.NoError(t, err)

		require.NoError(t, service.DeleteUser(ctx, id))

		_, err = service.GetUserByID(ctx, id)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, auth.NewBcryptHasher(), slog.Default())
		ctx := context.Background()
		id := uuid.New()

		mockRepo.On("DeleteUser", ctx, id).Return(types.ErrNotFound).Once()

		err := service.DeleteUser(ctx, id)

		assert.ErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_GetAllUsers(t *testing.T) {
	mockRepo := new(MockUserRepo)
	service := NewUserService(mockRepo, auth.NewBcryptHasher(), slog.Default())
	ctx := context.Background()

	users := []types.UserAuth{
		{ID: uuid.New(), Username: "alice"},
		{ID: uuid.New(), Username: "bob"},
	}
	mockRepo.On("GetAllUsers", ctx).Return(users, nil).Once()

	got, err := service.GetAllUsers(ctx)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	mockRepo.AssertExpectations(t)
}
