package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/dto"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/i18n"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/logger"
)

// ErrorHandler returns a middleware that logs errors attached to the gin
// context and, if the handler wrote nothing, answers with a translated error.
// Bind errors become 400, everything else 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestID := GetRequestID(c)

		log := logger.Component("http")
		log.Error().
			Str("request_id", requestID).
			Str("error", err.Error()).
			Int("errors", len(c.Errors)).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}

		status, code, key := http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError
		if err.IsType(gin.ErrorTypeBind) {
			status, code, key = http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequestBody
		}

		message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
		c.JSON(status, dto.NewError(code, message).WithRequestID(requestID))
	}
}
