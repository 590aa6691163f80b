package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultDatabaseURL       = "officecal.db"
	defaultJWTTTL            = "24h"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultNotifRetention    = "720h"
	defaultCleanupSchedule   = "0 3 * * *"
	defaultAllowedOrigins    = "*"
	defaultShutdownGraceTime = "10s"
)

type Config struct {
	AppEnv            string
	HTTPAddr          string
	DatabaseURL       string
	JWTSecret         string
	JWTTTL            time.Duration
	NotifRetention    time.Duration
	CleanupSchedule   string
	AllowedOrigins    []string
	ShutdownGraceTime time.Duration
}

// Load reads configuration from the environment, with a best-effort .env
// file for local development.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		HTTPAddr:        getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseURL:     getEnv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:       getEnv("JWT_SECRET", defaultJWTSecret),
		CleanupSchedule: getEnv("NOTIF_CLEANUP_SCHEDULE", defaultCleanupSchedule),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", defaultAllowedOrigins)),
	}

	var err error
	if cfg.JWTTTL, err = getDuration("JWT_TTL", defaultJWTTTL); err != nil {
		return nil, err
	}
	if cfg.NotifRetention, err = getDuration("NOTIF_RETENTION", defaultNotifRetention); err != nil {
		return nil, err
	}
	if cfg.ShutdownGraceTime, err = getDuration("SHUTDOWN_GRACE_TIME", defaultShutdownGraceTime); err != nil {
		return nil, err
	}

	if cfg.AppEnv == "production" && cfg.JWTSecret == defaultJWTSecret {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
