package device

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/geotrail/geotrail/internal/apperr"
)

// Repository persists devices and their ownership links. Lookups return
// apperr.ErrNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, dev Device) error
	FindByID(ctx context.Context, id int64) (Device, error)
	ListByOwner(ctx context.Context, userID int64) ([]Device, error)
	Link(ctx context.Context, userID, deviceID int64) error
	Linked(ctx context.Context, userID, deviceID int64) (bool, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed device repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a device row verbatim. The primary key settles concurrent
// registrations of the same identifier.
func (r *PostgresRepository) Create(ctx context.Context, dev Device) error {
	_, err := r.db.Exec(ctx, `INSERT INTO devices (device_id, access_token, sms_number, created_at, control_1, control_2, control_3, control_4)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		dev.ID, dev.AccessToken, dev.SMSNumber, dev.CreatedAt.UTC(), dev.Control1, dev.Control2, dev.Control3, dev.Control4)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.E(apperr.ErrConflict, "device with this ID already exists")
		}
		return err
	}
	return nil
}

// FindByID fetches a device by its identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (Device, error) {
	row := r.db.QueryRow(ctx, `SELECT device_id, access_token, sms_number, created_at, control_1, control_2, control_3, control_4
        FROM devices WHERE device_id = $1`, id)
	return scanDevice(row)
}

// ListByOwner returns the devices linked to a user.
func (r *PostgresRepository) ListByOwner(ctx context.Context, userID int64) ([]Device, error) {
	rows, err := r.db.Query(ctx, `SELECT d.device_id, d.access_token, d.sms_number, d.created_at, d.control_1, d.control_2, d.control_3, d.control_4
        FROM devices d JOIN users_devices ud ON ud.device_id = d.device_id
        WHERE ud.user_id = $1 ORDER BY d.device_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var devices []Device
	for rows.Next() {
		dev, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, dev)
	}
	return devices, rows.Err()
}

// Link associates a device with a user. Re-linking is a no-op.
func (r *PostgresRepository) Link(ctx context.Context, userID, deviceID int64) error {
	_, err := r.db.Exec(ctx, `INSERT INTO users_devices (user_id, device_id) VALUES ($1, $2)
        ON CONFLICT DO NOTHING`, userID, deviceID)
	return err
}

// Linked reports whether a device belongs to a user.
func (r *PostgresRepository) Linked(ctx context.Context, userID, deviceID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users_devices WHERE user_id = $1 AND device_id = $2)`,
		userID, deviceID).Scan(&exists)
	return exists, err
}

func scanDevice(row pgx.Row) (Device, error) {
	var (
		dev       Device
		createdAt time.Time
	)
	if err := row.Scan(&dev.ID, &dev.AccessToken, &dev.SMSNumber, &createdAt, &dev.Control1, &dev.Control2, &dev.Control3, &dev.Control4); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Device{}, apperr.ErrNotFound
		}
		return Device{}, err
	}
	dev.CreatedAt = createdAt.UTC()
	return dev, nil
}
