// Package app provides router configuration.
package app

import (
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/config"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/http"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handlers      http.Handlers
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
	AuditLogger   *middleware.AsyncLogger
	RateLimiter   *middleware.ShardedRateLimiter
}

// InitializeRouter builds the HTTP handlers and router configuration. db may
// be nil; audit entries are then only written to the process log.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	healthHandler := http.NewHealthHandler()

	var auditLogger *middleware.AsyncLogger
	var sink middleware.LogSink
	if db != nil {
		if db.DB != nil {
			healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(db.DB.HealthCheck))
		}
		healthHandler.RegisterCircuitBreaker("mongodb_catalog", db.CatalogCircuitBreaker)
		healthHandler.RegisterCircuitBreaker("mongodb_logs", db.LogsCircuitBreaker)

		if db.LoggingService != nil {
			loggerCfg := middleware.DefaultAsyncLoggerConfig()
			if cfg.Log.AsyncWorkers > 0 {
				loggerCfg.NumWorkers = cfg.Log.AsyncWorkers
			}
			if cfg.Log.AsyncBuffer > 0 {
				loggerCfg.BufferSize = cfg.Log.AsyncBuffer
			}
			auditLogger = middleware.NewAsyncLogger(db.LoggingService, loggerCfg)
			sink = auditLogger
		}
	}

	var limiter *middleware.ShardedRateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	handlers := http.Handlers{
		Allocation: http.NewAllocationHandler(services.Engine, services.Catalog,
			http.WithDefaultMealsPerDay(cfg.Planner.DefaultMealsPerDay),
			http.WithAuditSink(sink),
		),
		Profile: http.NewProfileHandler(sink),
		Catalog: http.NewCatalogHandler(services.Catalog, services.Engine, sink),
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		RequestTimeout: cfg.Server.RequestTimeout,
		APIKeys:        cfg.Auth.APIKeySet(),
		JWTSecret:      []byte(cfg.Auth.JWTSecret),
		EnableAuth:     cfg.Auth.Enabled,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		AuditSink:      sink,
		RateLimiter:    limiter,
	}

	return &RouterComponents{
		Handlers:      handlers,
		HealthHandler: healthHandler,
		Config:        routerCfg,
		AuditLogger:   auditLogger,
		RateLimiter:   limiter,
	}
}
