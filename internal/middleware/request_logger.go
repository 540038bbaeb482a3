package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
)

// LogSink accepts log entries for persistence. *AsyncLogger implements it.
type LogSink interface {
	Log(entry *model.LogEntry) bool
}

// probePaths are logged to the console but not persisted.
var probePaths = map[string]struct{}{
	"/healthz": {},
	"/readyz":  {},
	"/metrics": {},
}

// RequestLogger returns a middleware that logs every request as structured
// JSON and forwards an entry to sink when one is given.
func RequestLogger(sink LogSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		requestID := GetRequestID(c)
		userID := GetUserID(c)
		method := c.Request.Method
		path := c.Request.URL.Path

		log := logger.Logger().With().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", c.ClientIP()).
			Str("user_agent", c.Request.UserAgent()).
			Logger()
		if userID != "" {
			log = log.With().Str("user_id", userID).Logger()
		}
		log.WithLevel(zerologLevel(statusCode)).Msg("HTTP request")

		if sink == nil {
			return
		}
		if _, skip := probePaths[path]; skip {
			return
		}

		entry := &model.LogEntry{
			Timestamp:  time.Now(),
			Level:      getLogLevel(statusCode),
			Message:    "HTTP request",
			RequestID:  requestID,
			Method:     method,
			Path:       path,
			StatusCode: statusCode,
			Duration:   latency.Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			UserID:     userID,
		}
		if len(c.Errors) > 0 {
			entry.Error = c.Errors.Last().Error()
		}
		sink.Log(entry)
	}
}

func getLogLevel(statusCode int) string {
	return zerologLevel(statusCode).String()
}

func zerologLevel(statusCode int) zerolog.Level {
	switch {
	case statusCode >= 500:
		return zerolog.ErrorLevel
	case statusCode >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
