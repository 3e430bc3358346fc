package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/socialseed/socialseed/app/observability/metrics"
	"github.com/socialseed/socialseed/internal/types"
)

var _ UserRepo = (*PostgresUserRepo)(nil)

// UserRepo defines the contract for user persistence, independent of the
// underlying database technology.
type UserRepo interface {
	// Save inserts the user, or overwrites all fields if the id already
	// exists. A duplicate email fails with types.ErrConflict.
	Save(ctx context.Context, user *types.UserAuth) (*types.UserAuth, error)

	// GetUserByID returns types.ErrNotFound if no user has the given id.
	GetUserByID(ctx context.Context, id uuid.UUID) (*types.UserAuth, error)

	// GetUserByEmail returns types.ErrNotFound if no user has the given
	// email. Usable as the uniqueness pre-check before registration.
	GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error)

	// GetAllUsers lists every user record.
	GetAllUsers(ctx context.Context) ([]types.UserAuth, error)

	// DeleteUser removes a user by id. Returns types.ErrNotFound if the id
	// does not exist.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// PgxConn is the slice of pgxpool.Pool the repository uses. pgxmock
// implements it too, which is what the repository tests run against.
type PgxConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresUserRepo struct {
	logger  *slog.Logger
	pgpool  PgxConn
	metrics *metrics.AppMetrics
}

func NewPostgresUserRepo(pgpool PgxConn, m *metrics.AppMetrics, logger *slog.Logger) *PostgresUserRepo {
	return &PostgresUserRepo{
		logger:  logger,
		pgpool:  pgpool,
		metrics: m,
	}
}

const userColumns = "id, username, email, password_hash, full_name, roles, created_at, updated_at"

func scanUser(row pgx.Row, u *types.UserAuth) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.FullName, &u.Roles, &u.CreatedAt, &u.UpdatedAt)
}

// observe records the query duration and, for failures other than an empty
// result, the query error counter.
func (r *PostgresUserRepo) observe(ctx context.Context, operation string, start time.Time, err error) {
	attrs := metric.WithAttributes(
		attribute.String("db.operation", operation),
		attribute.String("db.sql.table", "users"),
	)
	r.metrics.DbQueryDurationSeconds.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		r.metrics.DbQueryErrorsTotal.Add(ctx, 1, attrs)
	}
}

func (r *PostgresUserRepo) Save(ctx context.Context, user *types.UserAuth) (*types.UserAuth, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "Save", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "Save"), slog.String("userID", user.ID.String()))

	query := `
        INSERT INTO users (id, username, email, password_hash, full_name, roles, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        ON CONFLICT (id) DO UPDATE
            SET username = EXCLUDED.username,
                email = EXCLUDED.email,
                password_hash = EXCLUDED.password_hash,
                full_name = EXCLUDED.full_name,
                roles = EXCLUDED.roles,
                updated_at = NOW()
        RETURNING ` + userColumns

	start := time.Now()
	var saved types.UserAuth
	err := scanUser(r.pgpool.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.Password, user.FullName, user.Roles), &saved)
	r.observe(ctx, "INSERT", start, err)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Unique index on email is the authoritative duplicate signal.
			l.DebugContext(ctx, "Unique constraint violation on save", slog.String("constraint", pgErr.ConstraintName))
			span.SetStatus(codes.Error, "unique violation")
			return nil, fmt.Errorf("user already exists: %w", types.ErrConflict)
		}
		l.ErrorContext(ctx, "Failed to save user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return nil, fmt.Errorf("database error saving user: %w", err)
	}

	span.SetStatus(codes.Ok, "User saved")
	return &saved, nil
}

func (r *PostgresUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*types.UserAuth, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUserByID", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", id.String()),
	))
	defer span.End()

	start := time.Now()
	var user types.UserAuth
	err := scanUser(r.pgpool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id), &user)
	r.observe(ctx, "SELECT", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("user not found: %w", types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}

	span.SetStatus(codes.Ok, "User found")
	return &user, nil
}

func (r *PostgresUserRepo) GetUserByEmail(ctx context.Context, email string) (*types.UserAuth, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetUserByEmail", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	start := time.Now()
	var user types.UserAuth
	err := scanUser(r.pgpool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email), &user)
	r.observe(ctx, "SELECT", start, err)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "User not found")
			return nil, fmt.Errorf("user not found: %w", types.ErrNotFound)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error fetching user: %w", err)
	}

	span.SetStatus(codes.Ok, "User found")
	return &user, nil
}

func (r *PostgresUserRepo) GetAllUsers(ctx context.Context) ([]types.UserAuth, error) {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "GetAllUsers", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "users"),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "GetAllUsers"))

	start := time.Now()
	rows, err := r.pgpool.Query(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at")
	r.observe(ctx, "SELECT", start, err)
	if err != nil {
		l.ErrorContext(ctx, "Failed to query users", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB query failed")
		return nil, fmt.Errorf("database error listing users: %w", err)
	}
	defer rows.Close()

	var users []types.UserAuth
	for rows.Next() {
		var u types.UserAuth
		if err := scanUser(rows, &u); err != nil {
			l.ErrorContext(ctx, "Failed to scan user row", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("database error iterating users: %w", err)
	}

	span.SetStatus(codes.Ok, "Users listed")
	span.SetAttributes(attribute.Int("db.rows_returned", len(users)))
	return users, nil
}

func (r *PostgresUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	ctx, span := otel.Tracer("UserRepo").Start(ctx, "DeleteUser", trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "DELETE"),
		attribute.String("db.sql.table", "users"),
		attribute.String("db.user.id", id.String()),
	))
	defer span.End()

	l := r.logger.With(slog.String("method", "DeleteUser"), slog.String("userID", id.String()))

	start := time.Now()
	tag, err := r.pgpool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	r.observe(ctx, "DELETE", start, err)
	if err != nil {
		l.ErrorContext(ctx, "Failed to delete user", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB DELETE failed")
		return fmt.Errorf("database error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		span.SetStatus(codes.Error, "User not found")
		return fmt.Errorf("user not found for delete: %w", types.ErrNotFound)
	}

	l.InfoContext(ctx, "User deleted")
	span.SetStatus(codes.Ok, "User deleted")
	return nil
}
