//go:build !integration

package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetTranslator_Shared(t *testing.T) {
	assert.Same(t, GetTranslator(), GetTranslator())
}

func TestTranslator_Translate(t *testing.T) {
	translator := NewTranslator()

	tests := []struct {
		name   string
		key    string
		locale string
		want   string
	}{
		{name: "english slot count", key: ErrKeyInvalidSlotCount, locale: "en", want: "Meals per day must be 4 or 5"},
		{name: "russian slot count", key: ErrKeyInvalidSlotCount, locale: "ru", want: "Количество приёмов пищи должно быть 4 или 5"},
		{name: "portuguese request", key: ErrKeyInvalidRequest, locale: "pt", want: "Requisição inválida"},
		{name: "russian success", key: SuccessKeyPlanAllocated, locale: "ru", want: "План питания составлен"},
		{name: "empty locale is english", key: ErrKeyEmptyPool, locale: "", want: "Add at least one product"},
		{name: "unsupported locale is english", key: ErrKeyEmptyPool, locale: "de", want: "Add at least one product"},
		{name: "unknown key echoes", key: "error.nope", locale: "ru", want: "error.nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translator.Translate(tt.key, tt.locale))
		})
	}
}

func TestGetLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: DefaultLocale},
		{header: "ru", want: "ru"},
		{header: "ru-RU,ru;q=0.9,en;q=0.8", want: "ru"},
		{header: "PT-br", want: "pt"},
		{header: "en-GB;q=0.7", want: "en"},
		{header: "de-DE,ru;q=0.5", want: DefaultLocale},
		{header: " ru ", want: "ru"},
	}

	for _, tt := range tests {
		t.Run("header "+tt.header, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set(AcceptLanguageHeader, tt.header)
			}
			assert.Equal(t, tt.want, GetLocale(c))
		})
	}
}

func TestDefaultMessages_LocalesShareKeys(t *testing.T) {
	base := defaultMessages[DefaultLocale]
	for locale, messages := range defaultMessages {
		assert.Len(t, messages, len(base), "locale %s", locale)
		for key := range base {
			assert.NotEmpty(t, messages[key], "locale %s misses %s", locale, key)
		}
	}
}
