package routes

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/geotrail/geotrail/internal/config"
	"github.com/geotrail/geotrail/internal/device"
	"github.com/geotrail/geotrail/internal/identity"
	"github.com/geotrail/geotrail/internal/middleware"
	"github.com/geotrail/geotrail/internal/telemetry"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var userRepo identity.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
	}
	var deviceRepo device.Repository
	if d.DB != nil {
		deviceRepo = device.NewPostgresRepository(d.DB)
	} else {
		deviceRepo = device.NewMemoryRepository()
	}
	var pointRepo telemetry.Repository
	if d.DB != nil {
		pointRepo = telemetry.NewPostgresRepository(d.DB)
	} else {
		pointRepo = telemetry.NewMemoryRepository()
	}

	identitySvc := identity.NewService(userRepo, d.Cfg.StorageTimeout)
	deviceSvc := device.NewService(deviceRepo, d.Cfg.StorageTimeout)
	telemetrySvc := telemetry.NewService(pointRepo, deviceRepo, d.Cfg.StorageTimeout)

	identityHandler := identity.NewHandler(identitySvc, d.Logger)
	deviceHandler := device.NewHandler(deviceSvc, d.Logger)
	telemetryHandler := telemetry.NewHandler(telemetrySvc, d.Logger)

	api := app.Group("/v1")

	// Public routes: credential issuance and out-of-band device provisioning.
	rateLimiter := middleware.LoginRateLimit(d.Cache, d.Cfg.LoginRatePerMin)
	RegisterAuthRoutes(api, identityHandler, rateLimiter)
	api.Post("/registerDevice", deviceHandler.Register)

	// Device-guarded routes: the tracker pushes telemetry. The guards are
	// attached per route so the device and user gates never overlap.
	RegisterDeviceDataRoutes(api, middleware.DeviceAuth(deviceRepo), telemetryHandler, d.Cache, d.Cfg.IngestDedupeTTL, d.Logger)

	// User-guarded routes: the app reads back account and telemetry data.
	RegisterAppUserRoutes(api, middleware.UserAuth(userRepo), userRepo, deviceHandler, telemetryHandler)

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
