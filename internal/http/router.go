package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/metrics"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/middleware"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	RequestTimeout time.Duration
	APIKeys        map[string]bool
	JWTSecret      []byte
	EnableAuth     bool
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	// AuditSink receives request and audit entries; nil keeps them in the
	// process log only.
	AuditSink middleware.LogSink
	// RateLimiter is used instead of building one from RateLimit and
	// RateWindow so the caller can stop it on shutdown.
	RateLimiter *middleware.ShardedRateLimiter
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultTimeoutConfig().Timeout,
		EnableAuth:     false,
	}
}

// Handlers groups the API handlers mounted under /api.
type Handlers struct {
	Allocation *AllocationHandler
	Profile    *ProfileHandler
	Catalog    *CatalogHandler
}

// NewRouter creates and configures the Gin router for the allocation service.
func NewRouter(handlers Handlers, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	groups := []RouteGroup{
		NewPlanRoutes(handlers.Allocation, handlers.Profile),
		NewCatalogRoutes(handlers.Catalog),
	}
	for _, g := range groups {
		g.RegisterRoutes(api, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "X-API-Key", "X-Request-ID", "X-User-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(cfg.AuditSink),
		middleware.ErrorHandler(),
	)
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler == nil {
		healthHandler = NewHealthHandler()
	}
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up authentication, per-user rate limiting and
// the request deadline for the API group. Rate limiting runs after
// authentication so authenticated users get their own budget.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.EnableAuth && (len(cfg.APIKeys) > 0 || len(cfg.JWTSecret) > 0) {
		api.Use(middleware.Authenticate(cfg.APIKeys, cfg.JWTSecret))
	}

	limiter := cfg.RateLimiter
	if limiter == nil && cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}
	if limiter != nil {
		api.Use(limiter.UserRateLimit())
	}

	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(middleware.TimeoutConfig{Timeout: cfg.RequestTimeout}))
	}
}
