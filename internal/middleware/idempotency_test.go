package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/geotrail/geotrail/internal/logging"
)

func setupIdempotencyApp(t *testing.T) (*fiber.App, *atomic.Int64, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := fiber.New()
	app.Use(Idempotency(cache, time.Minute, logging.Discard()))

	var handled atomic.Int64
	app.Post("/ingest", func(c *fiber.Ctx) error {
		handled.Add(1)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
	})

	cleanup := func() {
		cache.Close()
		mr.Close()
	}
	return app, &handled, cleanup
}

func postIngest(t *testing.T, app *fiber.App, key string) string {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/ingest", strings.NewReader(`{"device_id":7}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(idempotencyKeyHeader, key)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestIdempotencyPassesThroughWithoutKey(t *testing.T) {
	app, handled, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	postIngest(t, app, "")
	postIngest(t, app, "")
	if got := handled.Load(); got != 2 {
		t.Fatalf("expected both requests handled, got %d", got)
	}
}

func TestIdempotencyDeduplicatesByKey(t *testing.T) {
	app, handled, cleanup := setupIdempotencyApp(t)
	defer cleanup()

	first := postIngest(t, app, "fix-001")
	second := postIngest(t, app, "fix-001")
	if got := handled.Load(); got != 1 {
		t.Fatalf("expected a single handler invocation, got %d", got)
	}
	if first != second {
		t.Fatalf("replayed response differs: %q vs %q", first, second)
	}
}
