package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/socialseed/socialseed/app/observability/metrics"
	"github.com/socialseed/socialseed/internal/types"
)

// DefaultRole is assigned to every user created through registration.
// AdminRole is never self-assigned; it is provisioned directly in the store.
const (
	DefaultRole = "ROLE_USER"
	AdminRole   = "ROLE_ADMIN"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// AuthService defines the interface for authentication operations.
type AuthService interface {
	// Login authenticates a user by email and password and returns a signed
	// token plus the user's role set.
	Login(ctx context.Context, email, password string) (*AuthResponse, error)

	// Register creates a new user and returns a token identical in shape to
	// the login path's, so the caller is authenticated immediately.
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
}

// UserStore is the persistence the auth core needs from the user module.
// GetUserByEmail doubles as the uniqueness pre-check before registration;
// the store's unique index backstops the check-then-act race.
type UserStore interface {
	Save(ctx context.Context, user *types.UserAuth) (*types.UserAuth, error)
	GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error)
}

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	logger  *slog.Logger
	store   UserStore
	hasher  PasswordHasher
	tokens  *TokenProvider
	metrics *metrics.AppMetrics
}

// NewAuthService assembles the auth core from its three dependencies:
// user store, password hasher and token provider.
func NewAuthService(store UserStore, hasher PasswordHasher, tokens *TokenProvider, m *metrics.AppMetrics, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger:  logger,
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		metrics: m,
	}
}

// Login looks up the user by email, verifies the password and issues a token.
// A missing user and a wrong password both fail with types.ErrUnauthenticated
// so a caller cannot probe which emails are registered.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	l := s.logger.With(slog.String("method", "Login"))
	start := time.Now()
	defer func() {
		s.metrics.LoginDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()
	s.metrics.LoginRequestsTotal.Add(ctx, 1)

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			l.DebugContext(ctx, "Login attempt for unknown email")
			return nil, fmt.Errorf("invalid email or password: %w", types.ErrUnauthenticated)
		}
		l.ErrorContext(ctx, "Failed to look up user for login", slog.Any("error", err))
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.Password) {
		l.DebugContext(ctx, "Password verification failed", slog.String("userID", user.ID.String()))
		return nil, fmt.Errorf("invalid email or password: %w", types.ErrUnauthenticated)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue access token", slog.Any("error", err))
		return nil, fmt.Errorf("login: %w", err)
	}

	l.InfoContext(ctx, "User logged in", slog.String("userID", user.ID.String()))
	return &AuthResponse{Token: token, Roles: user.Roles}, nil
}

// Register hashes the password, persists the new user and issues a token.
// Nothing is persisted if the save fails, and no token is issued without a
// persisted record. A duplicate email fails with types.ErrConflict, whether
// caught by the pre-check or by the store's unique index.
func (s *AuthServiceImpl) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	l := s.logger.With(slog.String("method", "Register"), slog.String("username", req.Username))
	start := time.Now()
	defer func() {
		s.metrics.RegisterDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()
	s.metrics.RegisterRequestsTotal.Add(ctx, 1)

	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, types.ErrNotFound) {
		l.ErrorContext(ctx, "Failed uniqueness pre-check", slog.Any("error", err))
		return nil, fmt.Errorf("register: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email already registered: %w", types.ErrConflict)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	user := &types.UserAuth{
		ID:       uuid.New(),
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Roles:    []string{DefaultRole},
	}

	saved, err := s.store.Save(ctx, user)
	if err != nil {
		if errors.Is(err, types.ErrConflict) {
			// Concurrent registration slipped past the pre-check; the unique
			// index is the authoritative signal.
			return nil, fmt.Errorf("email already registered: %w", types.ErrConflict)
		}
		l.ErrorContext(ctx, "Failed to persist new user", slog.Any("error", err))
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(saved)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue access token", slog.Any("error", err))
		return nil, fmt.Errorf("register: %w", err)
	}

	l.InfoContext(ctx, "User registered", slog.String("userID", saved.ID.String()))
	return &AuthResponse{Token: token, Roles: saved.Roles}, nil
}
