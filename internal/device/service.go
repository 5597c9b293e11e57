package device

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geotrail/geotrail/internal/apperr"
)

const defaultStorageTimeout = 5 * time.Second

// Service manages device provisioning. Device tokens are pre-shared secrets
// chosen out-of-band, so unlike user passwords they are stored verbatim.
type Service struct {
	repo    Repository
	timeout time.Duration
}

// NewService creates a device service. A zero timeout falls back to the
// default storage timeout.
func NewService(repo Repository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultStorageTimeout
	}
	return &Service{repo: repo, timeout: timeout}
}

// RegisterInput carries the caller-supplied device row.
type RegisterInput struct {
	DeviceID    int64
	AccessToken string
	SMSNumber   string
	Control1    *bool
	Control2    *bool
	Control3    *bool
	Control4    *bool
}

// Register provisions a new device. A duplicate identifier is a conflict.
func (s *Service) Register(ctx context.Context, in RegisterInput) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.repo.Create(ctx, Device{
		ID:          in.DeviceID,
		AccessToken: in.AccessToken,
		SMSNumber:   in.SMSNumber,
		Control1:    in.Control1,
		Control2:    in.Control2,
		Control3:    in.Control3,
		Control4:    in.Control4,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return err
		}
		return fmt.Errorf("insert device: %w", err)
	}
	return nil
}

// ListByOwner returns the devices linked to a user.
func (s *Service) ListByOwner(ctx context.Context, userID int64) ([]Device, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	devices, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list devices by owner: %w", err)
	}
	return devices, nil
}

// LinkToUser associates a device with a user account. The device must exist.
func (s *Service) LinkToUser(ctx context.Context, userID, deviceID int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.repo.FindByID(ctx, deviceID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.E(apperr.ErrNotFound, "device not found")
		}
		return fmt.Errorf("lookup device: %w", err)
	}
	if err := s.repo.Link(ctx, userID, deviceID); err != nil {
		return fmt.Errorf("link device to user: %w", err)
	}
	return nil
}
