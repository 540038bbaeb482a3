package dto

import (
	"net/http"
	"time"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeUnprocessable indicates a valid request the engine could not plan.
	ErrCodeUnprocessable = "unprocessable"
	// ErrCodeUnavailable indicates a feature whose backing store is not configured.
	ErrCodeUnavailable = "unavailable"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data interface{} `json:"data" swaggertype:"object"`
	// Message is a translated confirmation the bot can show as is
	Message string `json:"message,omitempty" example:"Meal plan created"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2025-01-28T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"Meals per day must be 4 or 5"`
	// Details contains additional error details (optional)
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2025-01-28T10:00:00Z"`
	TraceID   string            `json:"trace_id,omitempty" example:"trace-123"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusUnprocessableEntity:
		return ErrCodeUnprocessable
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusServiceUnavailable:
		return ErrCodeUnavailable
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}

// ResolveResponse lists how each requested name was resolved.
// @Description Density lookups against the active catalog
type ResolveResponse struct {
	CatalogVersion int                `json:"catalog_version" example:"0"`
	Results        []model.Resolution `json:"results"`
} // @name ResolveResponse

// CatalogResponse describes the catalog in effect.
// @Description Active density catalog
type CatalogResponse struct {
	Version int                  `json:"version" example:"3"`
	Source  string               `json:"source" example:"mongodb"`
	Entries []model.CatalogEntry `json:"entries"`
} // @name CatalogResponse

// CatalogVersionResponse summarizes one stored catalog version.
type CatalogVersionResponse struct {
	Version   int       `json:"version" example:"3"`
	Active    bool      `json:"active" example:"true"`
	Entries   int       `json:"entries" example:"13"`
	CreatedBy string    `json:"created_by,omitempty" example:"1001"`
	CreatedAt time.Time `json:"created_at" example:"2025-01-28T10:00:00Z"`
} // @name CatalogVersionResponse

// ProfileTargetsResponse carries targets plus the engine inputs derived from them.
type ProfileTargetsResponse struct {
	model.Targets
	// DailyCap is DailyCalories as the allocation engine's daily cap.
	DailyCap float64 `json:"daily_cap" example:"2483"`
} // @name ProfileTargetsResponse
