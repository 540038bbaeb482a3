package http

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/domain/dto"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/i18n"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/middleware"
	"github.com/egorTorshin/EnergyValue-Telegram-Bot/internal/service"
)

// Response DTO pools for reducing allocations.
var (
	successResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.SuccessResponse{}
		},
	}

	errorResponsePool = sync.Pool{
		New: func() interface{} {
			return &dto.ErrorResponse{}
		},
	}
)

func getSuccessResponse() *dto.SuccessResponse {
	if resp, ok := successResponsePool.Get().(*dto.SuccessResponse); ok {
		return resp
	}
	return &dto.SuccessResponse{}
}

func putSuccessResponse(resp *dto.SuccessResponse) {
	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

func getErrorResponse() *dto.ErrorResponse {
	if resp, ok := errorResponsePool.Get().(*dto.ErrorResponse); ok {
		return resp
	}
	return &dto.ErrorResponse{}
}

func putErrorResponse(resp *dto.ErrorResponse) {
	*resp = dto.ErrorResponse{}
	errorResponsePool.Put(resp)
}

// errorMapping ties a domain error to a status code and message key.
type errorMapping struct {
	target error
	status int
	key    string
}

// domainErrors is checked in order with errors.Is.
var domainErrors = []errorMapping{
	{target: service.ErrInvalidCapacity, status: http.StatusBadRequest, key: i18n.ErrKeyInvalidCapacity},
	{target: service.ErrInvalidMass, status: http.StatusBadRequest, key: i18n.ErrKeyInvalidMass},
	{target: service.ErrInvalidSlotCount, status: http.StatusBadRequest, key: i18n.ErrKeyInvalidSlotCount},
	{target: service.ErrInvalidProfile, status: http.StatusBadRequest, key: i18n.ErrKeyInvalidProfile},
	{target: service.ErrInvalidCatalog, status: http.StatusBadRequest, key: i18n.ErrKeyInvalidCatalog},
	{target: dto.ErrEmptyPool, status: http.StatusBadRequest, key: i18n.ErrKeyEmptyPool},
	{target: service.ErrAllocationDidNotConverge, status: http.StatusUnprocessableEntity, key: i18n.ErrKeyNotConverged},
	{target: service.ErrPlanTooLong, status: http.StatusUnprocessableEntity, key: i18n.ErrKeyPlanTooLong},
	{target: service.ErrRepositoryNotConfigured, status: http.StatusServiceUnavailable, key: i18n.ErrKeyUnavailable},
}

// classifyError returns the status code and message key for err.
// Validation errors are 400; anything unknown is 500.
func classifyError(err error) (int, string) {
	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			return m.status, m.key
		}
	}
	var validationErr *dto.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequest
	}
	return http.StatusInternalServerError, i18n.ErrKeyInternalError
}

// ResponseBuilder writes the JSON envelopes of the API.
// Envelopes come from sync.Pool since gin serializes synchronously.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

// Success sends data wrapped in a SuccessResponse.
func (b *ResponseBuilder) Success(statusCode int, data interface{}) {
	b.success(statusCode, data, "")
}

// SuccessWithMessage is Success plus the message for messageKey in the
// caller's locale.
func (b *ResponseBuilder) SuccessWithMessage(statusCode int, data interface{}, messageKey string) {
	b.success(statusCode, data, i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c)))
}

func (b *ResponseBuilder) success(statusCode int, data interface{}, message string) {
	resp := getSuccessResponse()
	resp.Data = data
	resp.Message = message
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	b.c.JSON(statusCode, resp)
	putSuccessResponse(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.Success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.Success(http.StatusCreated, data)
}

// Error aborts with statusCode and the message for messageKey in the
// caller's locale. err, if any, is attached for the error handler to log.
func (b *ResponseBuilder) Error(statusCode int, messageKey string, err error) {
	resp := getErrorResponse()
	resp.Error = dto.ErrCodeFromStatus(statusCode)
	resp.Message = i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c))
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()
	if statusCode < http.StatusInternalServerError {
		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			resp.Details = map[string]string{"field": validationErr.Field, "reason": validationErr.Message}
		}
	}

	if err != nil {
		_ = b.c.Error(err)
	}

	b.c.AbortWithStatusJSON(statusCode, resp)
	putErrorResponse(resp)
}

// RequestError answers a bind or validation failure with 400.
func (b *ResponseBuilder) RequestError(err error) {
	status, key := classifyError(err)
	if status == http.StatusInternalServerError {
		status, key = http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody
	}
	b.Error(status, key, err)
}

// ServiceError maps a service or validation error to its response.
func (b *ResponseBuilder) ServiceError(err error) {
	status, key := classifyError(err)
	b.Error(status, key, err)
}

// BuildRequest binds the JSON body into a new T.
func BuildRequest[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validator interface for types that can validate themselves.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the body and runs Validate when T has one.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	req, err := BuildRequest[T](c)
	if err != nil {
		return nil, err
	}
	if validator, ok := any(req).(Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, err
		}
	}
	return req, nil
}
