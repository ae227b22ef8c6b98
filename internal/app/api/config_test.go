package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/erpflow/internal/platform/sqlite"
)

var configKeys = []string{
	"PORT", "API_BASE_PATH", "ENVIRONMENT", "POSTGRES_DSN", "SQLITE_PATH", "REDIS_URL",
	"JWT_SECRET", "TOKEN_TTL_HOURS", "AUTH_REQUIRED", "CORS_ALLOWED_ORIGINS",
	"TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED", "SESSION_PURGE_INTERVAL_MINUTES",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api", cfg.BasePath)
	assert.True(t, cfg.IsLocal())
	assert.Equal(t, sqlite.DefaultPath, cfg.SQLitePath)
	assert.Equal(t, localJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.AuthRequired)
	assert.Equal(t, defaultCORSOrigins, cfg.CORSAllowedOrigins)
	assert.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	assert.Zero(t, cfg.SessionPurgeIntervalMinute)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL_HOURS", "2")
	t.Setenv("AUTH_REQUIRED", "yes")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://erp.example.com, https://admin.example.com,")
	t.Setenv("TEMPORAL_DISABLED", "1")
	t.Setenv("SESSION_PURGE_INTERVAL_MINUTES", "15")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.IsLocal())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.AuthRequired)
	assert.Equal(t, []string{"https://erp.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.TemporalDisabled)
	assert.Equal(t, 15, cfg.SessionPurgeIntervalMinute)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing secret outside local", env: map[string]string{"ENVIRONMENT": "production"}},
		{name: "bad token ttl", env: map[string]string{"TOKEN_TTL_HOURS": "soon"}},
		{name: "zero token ttl", env: map[string]string{"TOKEN_TTL_HOURS": "0"}},
		{name: "negative purge interval", env: map[string]string{"SESSION_PURGE_INTERVAL_MINUTES": "-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
