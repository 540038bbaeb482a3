//go:build integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service"
)

func newIntegrationDatabase(t *testing.T, seed bool) *DatabaseComponents {
	t.Helper()
	cfg := integrationConfig(t).Database
	cfg.SeedCatalog = seed

	components := InitializeDatabase(cfg)
	require.NotNil(t, components)
	t.Cleanup(func() {
		_ = components.DB.Database.Drop(context.Background())
		_ = components.Close(context.Background())
	})
	return components
}

func TestInitializeDatabase_Integration(t *testing.T) {
	ctx := context.Background()

	t.Run("builds repositories and breakers", func(t *testing.T) {
		components := newIntegrationDatabase(t, false)

		assert.NotNil(t, components.DB)
		assert.NotNil(t, components.CatalogRepo)
		assert.NotNil(t, components.LoggingService)
		assert.NotNil(t, components.CatalogCircuitBreaker)
		assert.NotNil(t, components.LogsCircuitBreaker)
		assert.NoError(t, components.DB.HealthCheck(ctx))

		active, err := components.CatalogRepo.GetActive(ctx)
		require.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("seeds the built-in catalog once", func(t *testing.T) {
		components := newIntegrationDatabase(t, true)

		active, err := components.CatalogRepo.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, 1, active.Version)
		assert.Equal(t, seedCreatedBy, active.CreatedBy)
		assert.Len(t, active.Entries, len(service.DefaultCatalog))

		require.NoError(t, seedDefaultCatalog(components.CatalogRepo))

		history, err := components.CatalogRepo.List(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("unreachable database", func(t *testing.T) {
		cfg := integrationConfig(t).Database
		cfg.URI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200"

		assert.Nil(t, InitializeDatabase(cfg))
	})
}
