package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"DB_DSN", "AUDIT_DB_DSN", "STORAGE", "SERVER_PORT", "LOG_LEVEL",
	"SESSION_SECRET", "JWT_SECRET", "JWT_EXPIRATION",
	"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET", "GOOGLE_REDIRECT_URL",
	"CORS_ALLOWED_ORIGINS", "PROJECT_CACHE_TTL", "ADMIN_EMAIL", "ADMIN_PASSWORD",
}

func clearEnv(t *testing.T) {
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DSN", "host=db user=app")
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("JWT_SECRET", "j")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "host=db user=app", cfg.AuditDBDSN)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, 10*time.Minute, cfg.ProjectCacheTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.GoogleEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE", "Memory")
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("JWT_SECRET", "j")
	t.Setenv("JWT_EXPIRATION", "90m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.io, https://b.io,")
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 90*time.Minute, cfg.JWTExpiration)
	assert.Equal(t, []string{"https://a.io", "https://b.io"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.GoogleEnabled())
}

func TestFromEnvBadDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROJECT_CACHE_TTL", "soon")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "PROJECT_CACHE_TTL")
}

func TestValidateCollectsErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_CLIENT_ID", "only-id")

	cfg, err := FromEnv()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"DB_DSN", "SESSION_SECRET", "JWT_SECRET", "GOOGLE_CLIENT_SECRET"} {
		assert.ErrorContains(t, err, want)
	}
}
