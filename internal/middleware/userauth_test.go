package middleware

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/geotrail/geotrail/internal/identity"
)

func setupUserApp(t *testing.T) (*fiber.App, identity.User) {
	t.Helper()
	repo := identity.NewMemoryRepository()
	user, err := repo.Create(context.Background(), identity.User{Email: "a@x.com", AccessToken: "user-secret"})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	app := fiber.New()
	handler := func(c *fiber.Ctx) error {
		id, _ := AuthorizedUserID(c)
		return c.JSON(fiber.Map{"user_id": id})
	}
	app.Get("/info", UserAuth(repo), handler)
	app.Post("/link", UserAuth(repo), handler)
	return app, user
}

func TestUserAuthFromQuery(t *testing.T) {
	app, user := setupUserApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/info?user_id=1", nil)
	req.Header.Set(AccessTokenHeader, user.AccessToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestUserAuthFallsBackToBody(t *testing.T) {
	app, user := setupUserApp(t)

	req := httptest.NewRequest(fiber.MethodPost, "/link", strings.NewReader(`{"user_id":1}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(AccessTokenHeader, user.AccessToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestUserAuthMissingUserID(t *testing.T) {
	app, user := setupUserApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/info", nil)
	req.Header.Set(AccessTokenHeader, user.AccessToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUserAuthWrongToken(t *testing.T) {
	app, _ := setupUserApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/info?user_id=1", nil)
	req.Header.Set(AccessTokenHeader, "wrong")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestUserAuthUnknownUser(t *testing.T) {
	app, user := setupUserApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/info?user_id=99", nil)
	req.Header.Set(AccessTokenHeader, user.AccessToken)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
