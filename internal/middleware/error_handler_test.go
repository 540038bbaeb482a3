package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		handler        gin.HandlerFunc
		expectedStatus int
		expectedBody   string
		mustContain    []string
	}{
		{
			name: "handles gin context errors",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("catalog lookup failed"))
			},
			expectedStatus: http.StatusInternalServerError,
			mustContain:    []string{"internal_error", "An unexpected error occurred"},
		},
		{
			name: "bind errors become bad request",
			handler: func(c *gin.Context) {
				_ = c.Error(errors.New("bad json")).SetType(gin.ErrorTypeBind)
			},
			expectedStatus: http.StatusBadRequest,
			mustContain:    []string{"invalid_request", "Invalid request body"},
		},
		{
			name: "keeps response already written",
			handler: func(c *gin.Context) {
				c.String(http.StatusConflict, "written")
				_ = c.Error(errors.New("late error"))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   "written",
		},
		{
			name: "does nothing when no errors",
			handler: func(c *gin.Context) {
				c.String(http.StatusOK, "ok")
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RequestID(), ErrorHandler())
			router.GET("/test", tt.handler)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
			for _, substr := range tt.mustContain {
				assert.Contains(t, w.Body.String(), substr)
			}
		})
	}
}
