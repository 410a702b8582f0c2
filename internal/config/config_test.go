package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "ticketportal", cfg.Database.DBName)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 3, cfg.Portal.ForgotPasswordLimit)
	assert.True(t, cfg.Portal.AuditEnabled)
	assert.False(t, cfg.NewRelic.Enabled)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, "ADMIN", cfg.Auth.AdminRole)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://api.example.test")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("FORGOT_PASSWORD_LIMIT", "10")
	t.Setenv("AUDIT_ENABLED", "false")
	t.Setenv("JWT_SECRET", "shared-secret")

	cfg := Load()

	assert.Equal(t, "https://api.example.test", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 10, cfg.Portal.ForgotPasswordLimit)
	assert.False(t, cfg.Portal.AuditEnabled)
	assert.Equal(t, "shared-secret", cfg.Auth.JWTSecret)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("ARTIST_CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 5*time.Minute, cfg.Portal.ArtistCacheTTL)
}
