package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/geotrail/geotrail/internal/apperr"
	"github.com/geotrail/geotrail/internal/device"
)

const defaultStorageTimeout = 5 * time.Second

// Service records and serves GPS telemetry. Reads are gated on the
// users_devices link so one account cannot pull another account's tracks.
type Service struct {
	repo    Repository
	devices device.Repository
	timeout time.Duration
}

// NewService creates a telemetry service. A zero timeout falls back to the
// default storage timeout.
func NewService(repo Repository, devices device.Repository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultStorageTimeout
	}
	return &Service{repo: repo, devices: devices, timeout: timeout}
}

// Record appends a fix reported by an authorized device.
func (s *Service) Record(ctx context.Context, p Point) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.repo.Add(ctx, p); err != nil {
		return fmt.Errorf("insert gps point: %w", err)
	}
	return nil
}

// Query returns the fixes for a device within [start, end). The device must
// be linked to the requesting user; an unlinked device looks the same as a
// nonexistent one.
func (s *Service) Query(ctx context.Context, userID, deviceID int64, start, end time.Time) ([]Point, error) {
	if !end.After(start) {
		return nil, apperr.E(apperr.ErrBadRequest, "end_time must be greater than start_time")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	linked, err := s.devices.Linked(ctx, userID, deviceID)
	if err != nil {
		return nil, fmt.Errorf("check device link: %w", err)
	}
	if !linked {
		return nil, apperr.E(apperr.ErrNotFound, "device not found")
	}

	points, err := s.repo.Window(ctx, deviceID, start, end)
	if err != nil {
		return nil, fmt.Errorf("query gps window: %w", err)
	}
	return points, nil
}
