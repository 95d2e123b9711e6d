package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultStaffJWTTTL    = "12h"
	defaultGuestTokenTTL  = "48h"
	defaultDineInTokenTTL = "3h"
	defaultJWTSecret      = "change-me-jwt-secret"
	defaultDatabaseURL    = "hotelops.db"
	defaultListenAddr     = ":8080"
)

type RuntimeConfig struct {
	AppEnv        string
	ListenAddr    string
	DatabaseURL   string
	JWTSecret     string
	StaffJWTTTL   time.Duration
	GuestTokenTTL time.Duration
	DineInTTL     time.Duration
}

func LoadRuntimeConfig() (*RuntimeConfig, error) {
	cfg := &RuntimeConfig{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	cfg.StaffJWTTTL, err = parseDurationEnv("STAFF_JWT_TTL", defaultStaffJWTTTL)
	if err != nil {
		return nil, err
	}

	cfg.GuestTokenTTL, err = parseDurationEnv("GUEST_TOKEN_TTL", defaultGuestTokenTTL)
	if err != nil {
		return nil, err
	}

	cfg.DineInTTL, err = parseDurationEnv("DINEIN_TOKEN_TTL", defaultDineInTokenTTL)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *RuntimeConfig) error {
	if cfg.StaffJWTTTL <= 0 {
		return fmt.Errorf("STAFF_JWT_TTL must be > 0")
	}
	if cfg.GuestTokenTTL <= 0 {
		return fmt.Errorf("GUEST_TOKEN_TTL must be > 0")
	}
	if cfg.DineInTTL <= 0 {
		return fmt.Errorf("DINEIN_TOKEN_TTL must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
