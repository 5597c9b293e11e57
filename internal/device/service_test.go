package device

import (
	"context"
	"errors"
	"testing"

	"github.com/geotrail/geotrail/internal/apperr"
)

func TestRegisterAndDuplicate(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, 0)
	ctx := context.Background()

	on := true
	if err := svc.Register(ctx, RegisterInput{DeviceID: 42, AccessToken: "preshared", SMSNumber: "555", Control1: &on}); err != nil {
		t.Fatalf("register: %v", err)
	}

	dev, err := repo.FindByID(ctx, 42)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if dev.AccessToken != "preshared" {
		t.Fatalf("token was not stored verbatim: %q", dev.AccessToken)
	}
	if dev.Control1 == nil || !*dev.Control1 {
		t.Fatalf("control flag lost")
	}

	err = svc.Register(ctx, RegisterInput{DeviceID: 42, AccessToken: "other"})
	if !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLinkToUser(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, 0)
	ctx := context.Background()

	if err := svc.Register(ctx, RegisterInput{DeviceID: 7, AccessToken: "tok"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.LinkToUser(ctx, 1, 7); err != nil {
		t.Fatalf("link: %v", err)
	}
	devices, err := svc.ListByOwner(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(devices) != 1 || devices[0].ID != 7 {
		t.Fatalf("expected device 7 linked, got %v", devices)
	}

	err = svc.LinkToUser(ctx, 1, 99)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for unknown device, got %v", err)
	}
}
