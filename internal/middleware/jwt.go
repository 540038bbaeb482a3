// Package middleware provides HTTP middleware components for the allocation service.
package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/i18n"
)

// UserIDKey is the gin context key holding the authenticated user ID.
const UserIDKey = "user_id"

// tokenIssuer is set on every bot token and required on verification.
const tokenIssuer = "energyvalue"

var (
	// ErrInvalidToken is returned for malformed, expired or forged tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmptySubject is returned when a token would carry no user.
	ErrEmptySubject = errors.New("token subject is required")
)

// BotClaims are signed by the bot layer for the Telegram user it acts for.
// Subject is the Telegram user ID.
type BotClaims struct {
	jwt.RegisteredClaims
}

// NewBotToken signs an HS256 token for subject that expires after ttl.
func NewBotToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", ErrEmptySubject
	}

	now := time.Now()
	claims := BotClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseBotToken verifies signature, issuer and expiry and returns the claims.
func ParseBotToken(secret []byte, tokenString string) (*BotClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &BotClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*BotClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// JWTAuth returns a middleware that validates bearer tokens signed with secret
// and stores the token subject under UserIDKey.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if tokenString == "" {
			abortUnauthorized(c, i18n.ErrKeyTokenRequired)
			return
		}

		claims, err := ParseBotToken(secret, tokenString)
		if err != nil {
			abortUnauthorized(c, i18n.ErrKeyInvalidToken)
			return
		}

		c.Set(UserIDKey, claims.Subject)
		c.Next()
	}
}

// GetUserID returns the authenticated user ID, or "" for anonymous requests.
func GetUserID(c *gin.Context) string {
	if v, exists := c.Get(UserIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
