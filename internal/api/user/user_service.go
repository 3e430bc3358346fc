package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/socialseed/socialseed/internal/api/auth"
	"github.com/socialseed/socialseed/internal/types"
)

var _ UserService = (*UserServiceImpl)(nil)

// UserService defines the application-level user operations.
type UserService interface {
	// CreateUser assigns a fresh id, hashes the password and persists the
	// record. A duplicate email fails with types.ErrConflict.
	CreateUser(ctx context.Context, req CreateUserRequest) (*types.UserAuth, error)

	// GetUserByID returns types.ErrNotFound for an unknown id.
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.UserAuth, error)

	// GetAllUsers lists every user.
	GetAllUsers(ctx context.Context) ([]types.UserAuth, error)

	// DeleteUser removes a user by id.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// UserServiceImpl implements UserService over the persistence port, with a
// short-TTL read cache for by-id lookups.
type UserServiceImpl struct {
	logger *slog.Logger
	repo   UserRepo
	hasher auth.PasswordHasher
	cache  *gocache.Cache
}

func NewUserService(repo UserRepo, hasher auth.PasswordHasher, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger: logger,
		repo:   repo,
		hasher: hasher,
		cache:  gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, req CreateUserRequest) (*types.UserAuth, error) {
	l := s.logger.With(slog.String("method", "CreateUser"), slog.String("username", req.Username))

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := &types.UserAuth{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Roles:    []string{auth.DefaultRole},
	}

	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create user", slog.Any("error", err))
		return nil, err
	}

	s.cache.Set(saved.ID.String(), saved, gocache.DefaultExpiration)
	l.InfoContext(ctx, "User created", slog.String("userID", saved.ID.String()))
	return saved, nil
}

func (s *UserServiceImpl) GetUserByID(ctx context.Context, id uuid.UUID) (*types.UserAuth, error) {
	if cached, found := s.cache.Get(id.String()); found {
		if user, ok := cached.(*types.UserAuth); ok {
			return user, nil
		}
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(id.String(), user, gocache.DefaultExpiration)
	return user, nil
}

func (s *UserServiceImpl) GetAllUsers(ctx context.Context) ([]types.UserAuth, error) {
	return s.repo.GetAllUsers(ctx)
}

func (s *UserServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(id.String())
	return nil
}
