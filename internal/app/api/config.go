package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.temporal.io/sdk/client"

	usercrypto "github.com/Apurer/erpflow/internal/domains/users/adapters/crypto"
	"github.com/Apurer/erpflow/internal/platform/sqlite"
)

// localJWTSecret signs tokens when ENVIRONMENT=local and JWT_SECRET is unset.
const localJWTSecret = "erpflow-local-development-secret"

var defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

// Config carries environment-driven settings for the API process.
type Config struct {
	Port                       string
	BasePath                   string
	Environment                string
	PostgresDSN                string
	SQLitePath                 string
	RedisURL                   string
	JWTSecret                  string
	TokenTTL                   time.Duration
	AuthRequired               bool
	CORSAllowedOrigins         []string
	TemporalAddress            string
	TemporalNamespace          string
	TemporalDisabled           bool
	SessionPurgeIntervalMinute int
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:               envDefault("PORT", "8080"),
		BasePath:           envDefault("API_BASE_PATH", "/api"),
		Environment:        envDefault("ENVIRONMENT", "local"),
		PostgresDSN:        strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		SQLitePath:         envDefault("SQLITE_PATH", sqlite.DefaultPath),
		RedisURL:           strings.TrimSpace(os.Getenv("REDIS_URL")),
		JWTSecret:          strings.TrimSpace(os.Getenv("JWT_SECRET")),
		TokenTTL:           usercrypto.DefaultTokenTTL,
		AuthRequired:       isTruthy(os.Getenv("AUTH_REQUIRED")),
		CORSAllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		TemporalAddress:    envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		TemporalNamespace:  envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		TemporalDisabled:   isTruthy(os.Getenv("TEMPORAL_DISABLED")),
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = append([]string(nil), defaultCORSOrigins...)
	}
	if cfg.JWTSecret == "" {
		if !cfg.IsLocal() {
			return Config{}, errors.New("JWT_SECRET is required outside ENVIRONMENT=local")
		}
		cfg.JWTSecret = localJWTSecret
	}
	if raw := strings.TrimSpace(os.Getenv("TOKEN_TTL_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return Config{}, fmt.Errorf("TOKEN_TTL_HOURS must be a positive integer")
		}
		cfg.TokenTTL = time.Duration(hours) * time.Hour
	}
	if raw := strings.TrimSpace(os.Getenv("SESSION_PURGE_INTERVAL_MINUTES")); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes < 0 {
			return Config{}, fmt.Errorf("SESSION_PURGE_INTERVAL_MINUTES must be a non-negative integer")
		}
		cfg.SessionPurgeIntervalMinute = minutes
	}
	return cfg, nil
}

// IsLocal reports whether the process runs in the developer environment.
func (c Config) IsLocal() bool {
	return strings.EqualFold(c.Environment, "local")
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
