package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/dto"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
	// UserIDHeader lets an API key holder name the Telegram user it acts for.
	UserIDHeader = "X-User-ID"
)

// APIKeyAuth returns a middleware that validates API keys from the X-API-Key
// header or the api_key query parameter. With no keys configured every
// request passes. An accepted request may carry X-User-ID, which is stored
// under UserIDKey.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(validKeys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		if key == "" {
			abortUnauthorized(c, i18n.ErrKeyAPIKeyRequired)
			return
		}
		if !matchKey(validKeys, key) {
			abortUnauthorized(c, i18n.ErrKeyInvalidAPIKey)
			return
		}

		if userID := strings.TrimSpace(c.GetHeader(UserIDHeader)); userID != "" {
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}

// Authenticate accepts either a bearer token signed with jwtSecret or one of
// apiKeys. A request with an Authorization header is judged by the token
// alone. With neither mechanism configured every request passes.
func Authenticate(apiKeys map[string]bool, jwtSecret []byte) gin.HandlerFunc {
	bearer := JWTAuth(jwtSecret)
	apiKey := APIKeyAuth(apiKeys)

	return func(c *gin.Context) {
		switch {
		case len(jwtSecret) > 0 && (c.GetHeader("Authorization") != "" || len(apiKeys) == 0):
			bearer(c)
		default:
			apiKey(c)
		}
	}
}

func matchKey(validKeys map[string]bool, key string) bool {
	found := 0
	for k := range validKeys {
		found |= subtle.ConstantTimeCompare([]byte(k), []byte(key))
	}
	return found == 1
}

func abortUnauthorized(c *gin.Context, key string) {
	message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
}
