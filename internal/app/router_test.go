//go:build !integration

package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/config"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/circuitbreaker"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/mocks"
)

func newTestServices(t *testing.T) *ServiceComponents {
	t.Helper()
	services := InitializeServices(config.Default(), nil)
	t.Cleanup(services.Engine.Stop)
	return services
}

func stopRouterComponents(t *testing.T, components *RouterComponents) {
	t.Helper()
	t.Cleanup(func() {
		if components.RateLimiter != nil {
			components.RateLimiter.Stop()
		}
		components.AuditLogger.Stop()
	})
}

func TestInitializeRouter(t *testing.T) {
	tests := []struct {
		name     string
		db       *DatabaseComponents
		cfg      func() config.Config
		validate func(*testing.T, *RouterComponents)
	}{
		{
			name: "without database",
			cfg:  config.Default,
			validate: func(t *testing.T, components *RouterComponents) {
				assert.NotNil(t, components.Handlers.Allocation)
				assert.NotNil(t, components.Handlers.Profile)
				assert.NotNil(t, components.Handlers.Catalog)
				assert.NotNil(t, components.HealthHandler)
				assert.Nil(t, components.AuditLogger)
				assert.Nil(t, components.Config.AuditSink)
				assert.False(t, components.Config.EnableAuth)
				assert.Equal(t, 100, components.Config.RateLimit)
				assert.Equal(t, time.Minute, components.Config.RateWindow)
				assert.Equal(t, 10*time.Second, components.Config.RequestTimeout)
				require.NotNil(t, components.RateLimiter)
				assert.Same(t, components.RateLimiter, components.Config.RateLimiter)
			},
		},
		{
			name: "auth settings are passed through",
			cfg: func() config.Config {
				cfg := config.Default()
				cfg.Auth.Enabled = true
				cfg.Auth.APIKeys = []string{"key-1", "key-2"}
				cfg.Auth.JWTSecret = "bot-secret"
				return cfg
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.True(t, components.Config.EnableAuth)
				assert.Equal(t, map[string]bool{"key-1": true, "key-2": true}, components.Config.APIKeys)
				assert.Equal(t, []byte("bot-secret"), components.Config.JWTSecret)
			},
		},
		{
			name: "rate limiting disabled",
			cfg: func() config.Config {
				cfg := config.Default()
				cfg.Server.RateLimit = 0
				return cfg
			},
			validate: func(t *testing.T, components *RouterComponents) {
				assert.Nil(t, components.RateLimiter)
				assert.Nil(t, components.Config.RateLimiter)
			},
		},
		{
			name: "database adds audit logging",
			db: &DatabaseComponents{
				LoggingService:        new(mocks.MockLoggingService),
				CatalogCircuitBreaker: circuitbreaker.New(circuitbreaker.Config{Name: "mongodb-catalog"}),
				LogsCircuitBreaker:    circuitbreaker.New(circuitbreaker.Config{Name: "mongodb-logs"}),
			},
			cfg: config.Default,
			validate: func(t *testing.T, components *RouterComponents) {
				require.NotNil(t, components.AuditLogger)
				assert.NotNil(t, components.Config.AuditSink)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components := InitializeRouter(newTestServices(t), tt.db, tt.cfg())
			require.NotNil(t, components)
			stopRouterComponents(t, components)

			tt.validate(t, components)
		})
	}
}
