package http

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/circuitbreaker"
)

// readinessTimeout bounds the dependency checks of a single readiness probe.
const readinessTimeout = 3 * time.Second

// HealthChecker reports whether a dependency is usable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthCheckFunc adapts a function such as (*repository.MongoDB).HealthCheck.
type HealthCheckFunc func(ctx context.Context) error

// Check calls f.
func (f HealthCheckFunc) Check(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	mu              sync.RWMutex
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker adds a dependency to the readiness probe.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	if checker == nil {
		return
	}
	h.mu.Lock()
	h.checkers[name] = checker
	h.mu.Unlock()
}

// RegisterCircuitBreaker registers a circuit breaker for health monitoring.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	if cb == nil {
		return
	}
	h.mu.Lock()
	h.circuitBreakers[name] = cb
	h.mu.Unlock()
}

// Register registers health endpoints on the router.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is serving requests.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Returns OK when every registered dependency answers and no circuit breaker is open. Allocation itself needs no dependency, so a service without MongoDB is always ready.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	h.mu.RLock()
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(map[string]interface{}, len(h.checkers)+len(h.circuitBreakers))
	for _, name := range names {
		if err := h.checkers[name].Check(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks[name] = "ok"
		}
	}

	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			status = http.StatusServiceUnavailable
		}
	}
	h.mu.RUnlock()

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	c.JSON(status, gin.H{
		"status": state,
		"checks": checks,
	})
}
