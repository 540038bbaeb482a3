// Package i18n translates user-facing API messages.
package i18n

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	// DefaultLocale is the default language locale (English).
	DefaultLocale = "en"
	// AcceptLanguageHeader is the HTTP header name for language preference.
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator handles message translation for different locales.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a new translator with the default messages.
func NewTranslator() *Translator {
	return &Translator{
		messages: defaultMessages,
	}
}

// GetTranslator returns the default singleton translator instance.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to
// DefaultLocale and finally to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}

	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Supports reports whether locale has its own messages.
func (t *Translator) Supports(locale string) bool {
	_, ok := t.messages[locale]
	return ok
}

// GetLocale picks the first language of the Accept-Language header when it
// is supported, otherwise DefaultLocale.
func GetLocale(c *gin.Context) string {
	acceptLang := c.GetHeader(AcceptLanguageHeader)
	if acceptLang == "" {
		return DefaultLocale
	}

	// e.g. "ru-RU,ru;q=0.9,en;q=0.8"
	lang := strings.TrimSpace(strings.Split(strings.Split(acceptLang, ",")[0], ";")[0])
	if idx := strings.Index(lang, "-"); idx > 0 {
		lang = lang[:idx]
	}
	lang = strings.ToLower(lang)

	if GetTranslator().Supports(lang) {
		return lang
	}
	return DefaultLocale
}

var defaultMessages = map[string]map[string]string{
	"en": {
		"error.invalid_request":               "Invalid request",
		"error.invalid_request_body":          "Invalid request body",
		"error.internal_error":                "An unexpected error occurred",
		"error.unauthorized":                  "Unauthorized",
		"error.api_key_required":              "API key is required",
		"error.invalid_api_key":               "Invalid API key",
		"error.not_found":                     "Not found",
		"error.rate_limit_exceeded":           "Too many requests, please try again later",
		"error.invalid_token":                 "Invalid or expired token",
		"error.token_required":                "Authentication token is required",
		"error.timeout":                       "Request timed out",
		"error.unavailable":                   "This feature needs the database, which is not configured",
		"error.allocation.invalid_capacity":   "Daily calorie limit must be positive",
		"error.allocation.invalid_mass":       "Product weight must be a non-negative number",
		"error.allocation.invalid_slot_count": "Meals per day must be 4 or 5",
		"error.allocation.not_converged":      "The products could not be spread over a reasonable number of days",
		"error.allocation.plan_too_long":      "The products would last longer than the longest allowed plan; raise the daily limit or plan fewer products",
		"error.profile.invalid":               "Profile values are out of range",
		"error.catalog.invalid":               "Catalog entries need a unique name and a positive calorie value",
		"error.validation.empty_pool":         "Add at least one product",

		"success.plan_allocated":  "Meal plan created",
		"success.catalog_updated": "Calorie catalog updated",
	},
	"ru": {
		"error.invalid_request":               "Некорректный запрос",
		"error.invalid_request_body":          "Некорректное тело запроса",
		"error.internal_error":                "Произошла непредвиденная ошибка",
		"error.unauthorized":                  "Требуется авторизация",
		"error.api_key_required":              "Требуется API-ключ",
		"error.invalid_api_key":               "Неверный API-ключ",
		"error.not_found":                     "Не найдено",
		"error.rate_limit_exceeded":           "Слишком много запросов, попробуйте позже",
		"error.invalid_token":                 "Токен недействителен или истёк",
		"error.token_required":                "Требуется токен авторизации",
		"error.timeout":                       "Время ожидания запроса истекло",
		"error.unavailable":                   "Для этой функции нужна база данных, она не настроена",
		"error.allocation.invalid_capacity":   "Дневная норма калорий должна быть положительной",
		"error.allocation.invalid_mass":       "Вес продукта должен быть неотрицательным числом",
		"error.allocation.invalid_slot_count": "Количество приёмов пищи должно быть 4 или 5",
		"error.allocation.not_converged":      "Не удалось распределить продукты на разумное число дней",
		"error.allocation.plan_too_long":      "Продуктов хватит на срок дольше максимального плана; увеличьте дневную норму или уменьшите количество продуктов",
		"error.profile.invalid":               "Параметры профиля вне допустимого диапазона",
		"error.catalog.invalid":               "У каждого продукта должно быть уникальное название и положительная калорийность",
		"error.validation.empty_pool":         "Добавьте хотя бы один продукт",

		"success.plan_allocated":  "План питания составлен",
		"success.catalog_updated": "Справочник калорийности обновлён",
	},
	"pt": {
		"error.invalid_request":               "Requisição inválida",
		"error.invalid_request_body":          "Corpo da requisição inválido",
		"error.internal_error":                "Ocorreu um erro inesperado",
		"error.unauthorized":                  "Não autorizado",
		"error.api_key_required":              "Chave de API é obrigatória",
		"error.invalid_api_key":               "Chave de API inválida",
		"error.not_found":                     "Não encontrado",
		"error.rate_limit_exceeded":           "Muitas requisições, tente novamente mais tarde",
		"error.invalid_token":                 "Token inválido ou expirado",
		"error.token_required":                "Token de autenticação é obrigatório",
		"error.timeout":                       "Tempo da requisição esgotado",
		"error.unavailable":                   "Este recurso precisa do banco de dados, que não está configurado",
		"error.allocation.invalid_capacity":   "O limite diário de calorias deve ser positivo",
		"error.allocation.invalid_mass":       "O peso do produto deve ser um número não negativo",
		"error.allocation.invalid_slot_count": "Refeições por dia devem ser 4 ou 5",
		"error.allocation.not_converged":      "Não foi possível distribuir os produtos em um número razoável de dias",
		"error.allocation.plan_too_long":      "Os produtos durariam mais que o plano máximo permitido; aumente o limite diário ou planeje menos produtos",
		"error.profile.invalid":               "Valores do perfil fora do intervalo permitido",
		"error.catalog.invalid":               "Cada produto precisa de um nome único e calorias positivas",
		"error.validation.empty_pool":         "Adicione pelo menos um produto",

		"success.plan_allocated":  "Plano de refeições criado",
		"success.catalog_updated": "Catálogo de calorias atualizado",
	},
}
