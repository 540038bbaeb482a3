package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/dto"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/i18n"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
)

// Recovery returns a middleware that turns a handler panic into a translated
// 500 response and logs the panic value with its stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)
				log := logger.Component("http")
				log.Error().
					Str("request_id", requestID).
					Str("path", c.Request.URL.Path).
					Interface("panic", err).
					Bytes("stack", debug.Stack()).
					Msg("PANIC recovered")

				message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID))
			}
		}()
		c.Next()
	}
}
