package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads default values", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, 100, cfg.Server.RateLimit)
		assert.Equal(t, time.Minute, cfg.Server.RateWindow)
		assert.Equal(t, 1000, cfg.Cache.Size)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
		assert.False(t, cfg.Auth.Enabled)
		assert.Equal(t, 1.5, cfg.Planner.ThresholdFactor)
		assert.Equal(t, 366, cfg.Planner.MaxDays)
		assert.Equal(t, 4, cfg.Planner.DefaultMealsPerDay)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, []string{"http://localhost:3000", "http://127.0.0.1:3000"}, cfg.Server.CORSOrigins)
	})

	t.Run("loads values from environment", func(t *testing.T) {
		t.Setenv("EV_SERVER__PORT", "9090")
		t.Setenv("EV_SERVER__RATE_LIMIT", "50")
		t.Setenv("EV_SERVER__RATE_WINDOW", "30s")
		t.Setenv("EV_CACHE__SIZE", "500")
		t.Setenv("EV_CACHE__TTL", "10m")
		t.Setenv("EV_AUTH__ENABLED", "true")
		t.Setenv("EV_AUTH__API_KEYS", "key1,key2")
		t.Setenv("EV_PLANNER__THRESHOLD_FACTOR", "2")
		t.Setenv("EV_DATABASE__CIRCUIT_BREAKER__TIMEOUT", "1m")

		cfg, err := Load("")
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, 50, cfg.Server.RateLimit)
		assert.Equal(t, 30*time.Second, cfg.Server.RateWindow)
		assert.Equal(t, 500, cfg.Cache.Size)
		assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
		assert.True(t, cfg.Auth.Enabled)
		assert.Equal(t, map[string]bool{"key1": true, "key2": true}, cfg.Auth.APIKeySet())
		assert.Equal(t, 2.0, cfg.Planner.ThresholdFactor)
		assert.Equal(t, time.Minute, cfg.Database.CircuitBreaker.Timeout)
		assert.Equal(t, 2, cfg.Database.CircuitBreaker.SuccessThreshold, "untouched nested defaults survive")
	})

	t.Run("loads yaml file", func(t *testing.T) {
		path := writeFile(t, "config.yaml", `
server:
  port: "7070"
  cors_origins:
    - https://bot.example.com
planner:
  max_days: 30
  default_meals_per_day: 5
log:
  level: debug
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "7070", cfg.Server.Port)
		assert.Equal(t, 30, cfg.Planner.MaxDays)
		assert.Equal(t, 5, cfg.Planner.DefaultMealsPerDay)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Contains(t, cfg.Server.CORSOrigins, "https://bot.example.com")
		assert.Equal(t, 100, cfg.Server.RateLimit)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeFile(t, "config.json", `{"server": {"port": "7070"}, "database": {"enabled": true}}`)
		t.Setenv("EV_SERVER__PORT", "6060")

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, "6060", cfg.Server.Port)
		assert.True(t, cfg.Database.Enabled)
	})

	t.Run("rejects unknown file format", func(t *testing.T) {
		_, err := Load(writeFile(t, "config.toml", "port = 1"))
		assert.Error(t, err)
	})

	t.Run("rejects missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("rejects invalid planner settings", func(t *testing.T) {
		t.Setenv("EV_PLANNER__DEFAULT_MEALS_PER_DAY", "3")

		_, err := Load("")
		assert.ErrorContains(t, err, "default_meals_per_day")
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "server.port"},
		{name: "negative cache", mutate: func(c *Config) { c.Cache.Size = -1 }, wantErr: "cache.size"},
		{name: "zero threshold", mutate: func(c *Config) { c.Planner.ThresholdFactor = 0 }, wantErr: "threshold_factor"},
		{name: "zero max days", mutate: func(c *Config) { c.Planner.MaxDays = 0 }, wantErr: "max_days"},
		{name: "zero density", mutate: func(c *Config) { c.Planner.DefaultDensity = 0 }, wantErr: "default_density"},
		{name: "auth without credentials", mutate: func(c *Config) { c.Auth.Enabled = true }, wantErr: "auth.enabled"},
		{
			name: "auth with secret",
			mutate: func(c *Config) {
				c.Auth.Enabled = true
				c.Auth.JWTSecret = "s3cret"
			},
		},
		{
			name: "database without uri",
			mutate: func(c *Config) {
				c.Database.Enabled = true
				c.Database.URI = ""
			},
			wantErr: "database.uri",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestParseAPIKeys(t *testing.T) {
	assert.Nil(t, parseAPIKeys(nil))
	assert.Nil(t, parseAPIKeys([]string{" ", ""}))
	assert.Equal(t, map[string]bool{"a": true, "b": true}, parseAPIKeys([]string{" a", "b ", ""}))
}

func TestParseCORSOrigins(t *testing.T) {
	got := parseCORSOrigins([]string{"https://bot.example.com", "http://localhost:3000", " "})

	assert.Equal(t, []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"https://bot.example.com",
	}, got)
}
