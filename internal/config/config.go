package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	// TokenTTL and MinPasswordLength are policy choices, not invariants;
	// defaults match the original deployment (7 days, 6 characters).
	TokenTTL          time.Duration
	MinPasswordLength int
	CORSOrigins       []string
}

// Load reads configuration from the environment and performs minimal
// validation.
func Load() (Config, error) {
	cfg := Config{
		Port:        fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:   strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:   fallback(os.Getenv("JWT_ISSUER"), "continuum"),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	cfg.TokenTTL = 168 * time.Hour
	if hours, err := strconv.Atoi(fallback(os.Getenv("TOKEN_TTL_HOURS"), "168")); err == nil && hours > 0 {
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}

	cfg.MinPasswordLength = 6
	if n, err := strconv.Atoi(fallback(os.Getenv("MIN_PASSWORD_LENGTH"), "6")); err == nil && n > 0 {
		cfg.MinPasswordLength = n
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
