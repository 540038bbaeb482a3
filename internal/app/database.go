// Package app provides database initialization and setup.
package app

import (
	"context"
	"time"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/config"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/circuitbreaker"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/repository"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service"
)

// seedCreatedBy marks catalog versions written at startup.
const seedCreatedBy = "system"

// DatabaseComponents holds database-related components.
type DatabaseComponents struct {
	DB                    *repository.MongoDB
	CatalogRepo           repository.CatalogRepositoryInterface
	LoggingService        service.LoggingService
	CatalogCircuitBreaker *circuitbreaker.CircuitBreaker
	LogsCircuitBreaker    *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the repositories behind
// circuit breakers. It returns nil when the database is disabled or
// unreachable; the service then runs on the built-in catalog.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	log := logger.Component("database")

	db, err := repository.NewMongoDB(cfg.URI, cfg.Name)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}
	log.Info().Str("database", cfg.Name).Msg("Connected to MongoDB")

	return newDatabaseComponents(db, cfg)
}

func newDatabaseComponents(db *repository.MongoDB, cfg config.DatabaseConfig) *DatabaseComponents {
	log := logger.Component("database")

	if ttlDays := int(cfg.LogsTTL.Hours() / 24); ttlDays > 0 {
		if err := db.SetLogsTTL(context.Background(), ttlDays); err != nil {
			log.Warn().Err(err).Msg("Failed to set logs TTL index (may already exist)")
		}
	}

	catalogCB := circuitbreaker.New(breakerConfig(cfg.CircuitBreaker, "mongodb-catalog"))
	logsCB := circuitbreaker.New(breakerConfig(cfg.CircuitBreaker, "mongodb-logs"))

	catalogRepo := repository.NewCatalogRepositoryWithCircuitBreaker(repository.NewCatalogRepository(db), catalogCB)
	logsRepo := repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), logsCB)

	if cfg.SeedCatalog {
		if err := seedDefaultCatalog(catalogRepo); err != nil {
			log.Warn().Err(err).Msg("Failed to seed default catalog")
		}
	}

	return &DatabaseComponents{
		DB:                    db,
		CatalogRepo:           catalogRepo,
		LoggingService:        service.NewLoggingService(logsRepo),
		CatalogCircuitBreaker: catalogCB,
		LogsCircuitBreaker:    logsCB,
	}
}

func breakerConfig(cfg config.CircuitBreakerConfig, name string) circuitbreaker.Config {
	return circuitbreaker.Config{
		FailureThreshold: cfg.FailureThreshold,
		SuccessThreshold: cfg.SuccessThreshold,
		Timeout:          cfg.Timeout,
		Name:             name,
	}
}

// seedDefaultCatalog stores the built-in catalog as version 1 when no
// catalog is active yet.
func seedDefaultCatalog(repo repository.CatalogRepositoryInterface) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	active, err := repo.GetActive(ctx)
	if err != nil {
		return err
	}
	if active != nil {
		return nil
	}

	created, err := repo.Create(ctx, service.DefaultCatalog, seedCreatedBy)
	if err != nil {
		return err
	}
	log := logger.Component("database")
	log.Info().Int("version", created.Version).Int("entries", len(created.Entries)).Msg("Seeded default catalog")
	return nil
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
