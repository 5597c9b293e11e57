package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geotrail/geotrail/internal/apperr"
	"github.com/geotrail/geotrail/internal/password"
	"github.com/geotrail/geotrail/internal/token"
)

const defaultStorageTimeout = 5 * time.Second

// ErrInvalidCredentials is returned for both unknown accounts and wrong
// passwords so the two cases are indistinguishable to a caller.
var ErrInvalidCredentials = apperr.E(apperr.ErrUnauthorized, "invalid email address or password")

// Service manages account issuance and credential verification.
type Service struct {
	repo    Repository
	timeout time.Duration
}

// NewService creates an identity service. A zero timeout falls back to the
// default storage timeout.
func NewService(repo Repository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultStorageTimeout
	}
	return &Service{repo: repo, timeout: timeout}
}

// Signup creates a new account with a fresh salt, derived password digest
// and issued access token. The token is exposed to the caller exactly once,
// in the returned identity.
func (s *Service) Signup(ctx context.Context, in SignupInput) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Friendly early rejection; the storage unique index settles races.
	_, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return User{}, apperr.E(apperr.ErrConflict, "user with this email address already exists")
	case !errors.Is(err, apperr.ErrNotFound):
		return User{}, fmt.Errorf("lookup user by email: %w", err)
	}

	digest, salt, err := password.Derive(in.Password, "")
	if err != nil {
		return User{}, fmt.Errorf("derive password digest: %w", err)
	}

	accessToken, err := token.Issue()
	if err != nil {
		return User{}, fmt.Errorf("issue access token: %w", err)
	}

	user, err := s.repo.Create(ctx, User{
		Email:        in.Email,
		Phone:        in.Phone,
		Name:         in.Name,
		Salt:         salt,
		PasswordHash: digest,
		AccessToken:  accessToken,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return User{}, err
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// Login verifies the supplied credentials and returns the stored identity.
// The access token on record is returned as-is, never regenerated.
func (s *Service) Login(ctx context.Context, email, plaintext string) (User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("lookup user by email: %w", err)
	}

	if !password.Verify(plaintext, user.Salt, user.PasswordHash) {
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}
