// Package metrics provides Prometheus metrics collection for the allocation service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// AllocationsTotal counts allocations by plan mode and outcome.
	AllocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "allocations_total",
			Help: "Total number of meal plan allocations",
		},
		[]string{"mode", "status"},
	)

	// AllocationDuration tracks allocation duration.
	AllocationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "allocation_duration_seconds",
			Help:    "Allocation duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		},
	)

	// PlannedDays tracks how many days multi-day plans span.
	PlannedDays = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "allocation_planned_days",
			Help:    "Number of days produced by multi-day allocations",
			Buckets: []float64{1, 2, 3, 5, 7, 14, 30, 90, 366},
		},
	)

	// DensityFallbacksTotal counts names resolved to the default density.
	DensityFallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "density_fallbacks_total",
			Help: "Total number of product names resolved to the default density",
		},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
	)

	// CacheCapacity tracks cache capacity.
	CacheCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_capacity",
			Help: "Cache capacity",
		},
	)

	// CircuitBreakerState exposes breaker state per name: 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordAllocation records metrics for one allocation.
func RecordAllocation(duration time.Duration, mode, status string) {
	AllocationDuration.Observe(duration.Seconds())
	AllocationsTotal.WithLabelValues(mode, status).Inc()
}

// RecordPlannedDays records the length of a multi-day plan.
func RecordPlannedDays(days int) {
	PlannedDays.Observe(float64(days))
}

// RecordDensityFallback counts one default-density resolution.
func RecordDensityFallback() {
	DensityFallbacksTotal.Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// UpdateCacheMetrics updates cache size and capacity metrics.
func UpdateCacheMetrics(size, capacity int) {
	CacheSize.Set(float64(size))
	CacheCapacity.Set(float64(capacity))
}

// SetCircuitBreakerState publishes the numeric state of a breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
