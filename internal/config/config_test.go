package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CATALOG_CACHE_TTL", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("VERIFY_EMAIL_DOMAIN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 60*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.VerifyEmailDomain)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("CATALOG_CACHE_TTL", "5m")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("VERIFY_EMAIL_DOMAIN", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.VerifyEmailDomain)
}

func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, ,https://www.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://www.example.com"}, cfg.CORSAllowedOrigins)
}
