package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-session-secret-that-is-32-bytes"

func TestLoad_DefaultValues(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, time.Second, cfg.PagingDelay)
	assert.InDelta(t, 5.0, cfg.RateLimitRPS, 0.0001)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestLoad_DevelopmentFallsBackToDevSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, devSessionSecret, cfg.SessionSecret)
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, "SESSION_SECRET is required", err.Error())
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("PAGING_DELAY", "250ms")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 250*time.Millisecond, cfg.PagingDelay)
	assert.InDelta(t, 2.5, cfg.RateLimitRPS, 0.0001)
	assert.Equal(t, 3, cfg.RateLimitBurst)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{SessionSecret: testSecret, PagingDelay: time.Second, RateLimitRPS: 1, RateLimitBurst: 1}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"short secret", func(c *Config) { c.SessionSecret = "short" }, "SESSION_SECRET must be at least 32 characters"},
		{"negative delay", func(c *Config) { c.PagingDelay = -time.Second }, "PAGING_DELAY must not be negative"},
		{"zero rate", func(c *Config) { c.RateLimitRPS = 0 }, "RATE_LIMIT_RPS must be positive"},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }, "RATE_LIMIT_BURST must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := validate(&cfg)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}

	cfg := valid()
	assert.NoError(t, validate(&cfg))
}
