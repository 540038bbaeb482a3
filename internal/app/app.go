// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/config"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/http"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
)

// App is the wired service plus the resources released by Close.
type App struct {
	Router   *gin.Engine
	Services *ServiceComponents
	Database *DatabaseComponents
	routing  *RouterComponents
}

// InitializeApp creates and wires all application dependencies.
func InitializeApp(cfg config.Config) *App {
	InitializeLogger(cfg.Log)

	dbComponents := InitializeDatabase(cfg.Database)
	serviceComponents := InitializeServices(cfg, dbComponents)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.Handlers, routerComponents.HealthHandler, routerComponents.Config),
		Services: serviceComponents,
		Database: dbComponents,
		routing:  routerComponents,
	}
}

// Close stops background workers, flushes queued audit entries and
// disconnects from MongoDB. Call it after the HTTP server has stopped.
func (a *App) Close(ctx context.Context) error {
	if a.routing != nil {
		if a.routing.RateLimiter != nil {
			a.routing.RateLimiter.Stop()
		}
		a.routing.AuditLogger.Stop()
	}
	if a.Services != nil && a.Services.Engine != nil {
		a.Services.Engine.Stop()
	}

	if err := a.Database.Close(ctx); err != nil {
		log := logger.Component("app")
		log.Error().Err(err).Msg("Failed to close MongoDB connection")
		return err
	}
	return nil
}
