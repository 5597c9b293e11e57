package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName         = "GeoTrail"
	defaultAppEnv          = "development"
	defaultPort            = "8081"
	defaultLogLevel        = "info"
	defaultShutdownDelay   = 10 * time.Second
	defaultIngestDedupeTTL = time.Hour
	defaultStorageTimeout  = 5 * time.Second
	defaultLoginRatePerMin = 5
	ingestTTLSecondsEnvVar = "INGEST_IDEMPOTENCY_TTL_SECONDS"
	ingestTTLDurEnvVar     = "INGEST_IDEMPOTENCY_TTL"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
	storageSecondsEnvVar   = "STORAGE_TIMEOUT_SECONDS"
	storageDurationEnvVar  = "STORAGE_TIMEOUT"
	loginRatePerMinEnvVar  = "LOGIN_RATE_LIMIT_PER_MIN"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName         string
	AppEnv          string
	Port            string
	LogLevel        string
	DatabaseURL     string
	RedisURL        string
	ShutdownPeriod  time.Duration
	IngestDedupeTTL time.Duration
	StorageTimeout  time.Duration
	LoginRatePerMin int
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:         getEnv("APP_NAME", defaultAppName),
		AppEnv:          getEnv("APP_ENV", defaultAppEnv),
		Port:            getEnv("PORT", defaultPort),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		ShutdownPeriod:  defaultShutdownDelay,
		IngestDedupeTTL: defaultIngestDedupeTTL,
		StorageTimeout:  defaultStorageTimeout,
		LoginRatePerMin: defaultLoginRatePerMin,
	}

	var err error
	if cfg.ShutdownPeriod, err = durationEnv(shutdownSecondsEnvVar, shutdownDurationEnvVar, cfg.ShutdownPeriod); err != nil {
		return Config{}, err
	}
	if cfg.IngestDedupeTTL, err = durationEnv(ingestTTLSecondsEnvVar, ingestTTLDurEnvVar, cfg.IngestDedupeTTL); err != nil {
		return Config{}, err
	}
	if cfg.StorageTimeout, err = durationEnv(storageSecondsEnvVar, storageDurationEnvVar, cfg.StorageTimeout); err != nil {
		return Config{}, err
	}

	if v := os.Getenv(loginRatePerMinEnvVar); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", loginRatePerMinEnvVar, err)
		}
		cfg.LoginRatePerMin = n
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}

	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL must be set")
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func durationEnv(secondsVar, durationVar string, fallback time.Duration) (time.Duration, error) {
	if v := os.Getenv(secondsVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", secondsVar, err)
		}
		return time.Duration(seconds) * time.Second, nil
	}
	if v := os.Getenv(durationVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", durationVar, err)
		}
		return d, nil
	}
	return fallback, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
