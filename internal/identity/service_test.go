package identity

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/geotrail/geotrail/internal/apperr"
)

func TestSignupAndLogin(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, 0)
	ctx := context.Background()

	user, err := svc.Signup(ctx, SignupInput{Email: "a@x.com", Phone: "555", Name: "A", Password: "pw123"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.AccessToken == "" {
		t.Fatalf("signup returned no access token")
	}
	if user.Salt == "" || user.PasswordHash == "" {
		t.Fatalf("signup stored no credentials")
	}

	logged, err := svc.Login(ctx, "a@x.com", "pw123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("login returned user %d, expected %d", logged.ID, user.ID)
	}
	if logged.AccessToken != user.AccessToken {
		t.Fatalf("login regenerated the access token")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, 0)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Email: "a@x.com", Password: "pw123"}); err != nil {
		t.Fatalf("signup: %v", err)
	}
	_, err := svc.Signup(ctx, SignupInput{Email: "a@x.com", Password: "other"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, 0)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Email: "a@x.com", Password: "pw123"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, wrongPass := svc.Login(ctx, "a@x.com", "wrong")
	_, noAccount := svc.Login(ctx, "nobody@x.com", "pw123")

	if !errors.Is(wrongPass, apperr.ErrUnauthorized) {
		t.Fatalf("wrong password: expected unauthorized, got %v", wrongPass)
	}
	if !errors.Is(noAccount, apperr.ErrUnauthorized) {
		t.Fatalf("unknown email: expected unauthorized, got %v", noAccount)
	}
	if wrongPass.Error() != noAccount.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPass, noAccount)
	}
}

func TestConcurrentSignupSameEmail(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, 0)
	ctx := context.Background()

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Signup(ctx, SignupInput{Email: "race@x.com", Password: "pw123"})
		}(i)
	}
	wg.Wait()

	var conflicts, successes int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, apperr.ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one success and one conflict, got %d/%d", successes, conflicts)
	}

	mem := repo.(*memoryRepository)
	mem.mu.Lock()
	defer mem.mu.Unlock()
	if len(mem.users) != 1 {
		t.Fatalf("expected a single stored record, got %d", len(mem.users))
	}
}
