package routes

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/geotrail/geotrail/internal/middleware"
	"github.com/geotrail/geotrail/internal/telemetry"
)

// RegisterDeviceDataRoutes wires the endpoints trackers call. Ingest is
// deduplicated by Idempotency-Key when Redis is available.
func RegisterDeviceDataRoutes(r fiber.Router, guard fiber.Handler, h *telemetry.Handler, cache *redis.Client, dedupeTTL time.Duration, logger *slog.Logger) {
	if cache != nil {
		r.Post("/sendGPSData", guard, middleware.Idempotency(cache, dedupeTTL, logger), h.Record)
	} else {
		r.Post("/sendGPSData", guard, h.Record)
	}
}
