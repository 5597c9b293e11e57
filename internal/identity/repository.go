package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geotrail/geotrail/internal/apperr"
)

// Repository persists user accounts. Lookups return apperr.ErrNotFound when
// no row matches; Create returns apperr.ErrConflict on a duplicate email.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id int64) (User, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user and returns it with the assigned identifier.
// The unique indexes on email_address and access_token are what make
// concurrent signups safe; a violation surfaces as a conflict.
func (r *PostgresRepository) Create(ctx context.Context, user User) (User, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO users (email_address, phone_number, name, salt, hashed_password, access_token, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING user_id`,
		user.Email, user.Phone, user.Name, user.Salt, user.PasswordHash, user.AccessToken, user.CreatedAt.UTC())
	if err := row.Scan(&user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, apperr.E(apperr.ErrConflict, "user with this email address already exists")
		}
		return User{}, err
	}
	return user, nil
}

// FindByEmail fetches a user by email address, exact match as stored.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, email_address, phone_number, name, salt, hashed_password, access_token, created_at
        FROM users WHERE email_address = $1`, email)
	return scanUser(row)
}

// FindByID fetches a user by numeric identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT user_id, email_address, phone_number, name, salt, hashed_password, access_token, created_at
        FROM users WHERE user_id = $1`, id)
	return scanUser(row)
}

func scanUser(row pgx.Row) (User, error) {
	var (
		user      User
		createdAt time.Time
	)
	if err := row.Scan(&user.ID, &user.Email, &user.Phone, &user.Name, &user.Salt, &user.PasswordHash, &user.AccessToken, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.ErrNotFound
		}
		return User{}, err
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}
