package telemetry

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists GPS fixes.
type Repository interface {
	Add(ctx context.Context, p Point) error
	Window(ctx context.Context, deviceID int64, start, end time.Time) ([]Point, error)
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed telemetry repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Add appends a GPS fix.
func (r *PostgresRepository) Add(ctx context.Context, p Point) error {
	_, err := r.db.Exec(ctx, `INSERT INTO gps_data (device_id, time, latitude, longitude) VALUES ($1, $2, $3, $4)`,
		p.DeviceID, p.Time.UTC(), p.Latitude, p.Longitude)
	return err
}

// Window returns the fixes for a device within [start, end), oldest first.
func (r *PostgresRepository) Window(ctx context.Context, deviceID int64, start, end time.Time) ([]Point, error) {
	rows, err := r.db.Query(ctx, `SELECT device_id, time, latitude, longitude FROM gps_data
        WHERE device_id = $1 AND time >= $2 AND time < $3 ORDER BY time`,
		deviceID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []Point
	for rows.Next() {
		var (
			p  Point
			ts time.Time
		)
		if err := rows.Scan(&p.DeviceID, &ts, &p.Latitude, &p.Longitude); err != nil {
			return nil, err
		}
		p.Time = ts.UTC()
		points = append(points, p)
	}
	return points, rows.Err()
}
