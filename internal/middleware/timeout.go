package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/dto"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/i18n"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
)

// TimeoutConfig holds configuration for the timeout middleware.
type TimeoutConfig struct {
	// Timeout is the maximum duration for request processing.
	Timeout time.Duration
	// SkipPaths are exempt, e.g. long-lived metric scrapes.
	SkipPaths []string
}

// DefaultTimeoutConfig returns the defaults for the timeout middleware.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Timeout: 10 * time.Second,
	}
}

// Timeout returns a middleware that answers 504 when the handler chain does
// not finish within cfg.Timeout. The request context carries the deadline so
// repository calls stop early. A panic in the chain is re-raised on the
// serving goroutine so Recovery still sees it.
func Timeout(cfg TimeoutConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok || cfg.Timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		var (
			mu       sync.Mutex
			finished bool
		)
		done := make(chan struct{})
		panicked := make(chan interface{}, 1)

		go func() {
			defer func() {
				if p := recover(); p != nil {
					panicked <- p
				}
				close(done)
			}()
			c.Next()
			mu.Lock()
			finished = true
			mu.Unlock()
		}()

		select {
		case <-done:
			select {
			case p := <-panicked:
				panic(p)
			default:
			}
		case <-ctx.Done():
			mu.Lock()
			defer mu.Unlock()
			if finished || c.Writer.Written() {
				return
			}

			requestID := GetRequestID(c)
			log := logger.Component("http")
			log.Warn().
				Str("request_id", requestID).
				Str("path", c.Request.URL.Path).
				Dur("timeout", cfg.Timeout).
				Msg("Request timed out")

			message := i18n.GetTranslator().Translate(i18n.ErrKeyTimeout, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusGatewayTimeout,
				dto.NewError(dto.ErrCodeTimeout, message).WithRequestID(requestID))
		}
	}
}

// TimeoutWithDuration creates a timeout middleware with the given duration.
func TimeoutWithDuration(timeout time.Duration) gin.HandlerFunc {
	cfg := DefaultTimeoutConfig()
	cfg.Timeout = timeout
	return Timeout(cfg)
}
