// Package app provides service initialization.
package app

import (
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/config"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Engine  *service.AllocationEngine
	Catalog *service.CatalogServiceImpl
}

// EngineOptions translates planner and cache settings into engine options.
// A cache with more than one shard uses the sharded implementation.
func EngineOptions(planner config.PlannerConfig, cache config.CacheConfig) []service.Option {
	var opts []service.Option

	if planner.MaxDays > 0 {
		opts = append(opts, service.WithPlanner(service.NewCapacityPlanner(service.WithMaxDays(planner.MaxDays))))
	}
	if planner.ThresholdFactor > 0 {
		opts = append(opts, service.WithThresholdPolicy(service.CapFactorPolicy{Factor: planner.ThresholdFactor}))
	}

	switch {
	case cache.Size <= 0:
	case cache.Shards > 1:
		opts = append(opts, service.WithShardedCache(cache.Size, cache.TTL, cache.Shards))
	default:
		opts = append(opts, service.WithCache(cache.Size, cache.TTL))
	}
	return opts
}

// InitializeServices builds the allocation engine and the catalog service.
// db may be nil, in which case only the built-in catalog is served.
func InitializeServices(cfg config.Config, db *DatabaseComponents) *ServiceComponents {
	engine := service.NewAllocationEngine(EngineOptions(cfg.Planner, cfg.Cache)...)

	var catalogOpts []service.CatalogOption
	if cfg.Database.CatalogRefresh > 0 {
		catalogOpts = append(catalogOpts, service.WithSnapshotTTL(cfg.Database.CatalogRefresh))
	}
	if cfg.Planner.DefaultDensity > 0 {
		catalogOpts = append(catalogOpts, service.WithResolverOptions(service.WithDefaultDensity(cfg.Planner.DefaultDensity)))
	}

	var catalog *service.CatalogServiceImpl
	if db != nil && db.CatalogRepo != nil {
		catalog = service.NewCatalogService(db.CatalogRepo, catalogOpts...)
	} else {
		catalog = service.NewCatalogService(nil, catalogOpts...)
	}

	return &ServiceComponents{
		Engine:  engine,
		Catalog: catalog,
	}
}
