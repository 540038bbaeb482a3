package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyAPIKeyRequired     = "error.api_key_required"
	ErrKeyInvalidAPIKey      = "error.invalid_api_key"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyInvalidToken       = "error.invalid_token"
	ErrKeyTokenRequired      = "error.token_required"
	ErrKeyTimeout            = "error.timeout"
	// ErrKeyUnavailable is used when a feature needs MongoDB and it is disabled.
	ErrKeyUnavailable = "error.unavailable"
)

// Allocation error keys, one per engine error.
const (
	ErrKeyInvalidCapacity  = "error.allocation.invalid_capacity"
	ErrKeyInvalidMass      = "error.allocation.invalid_mass"
	ErrKeyInvalidSlotCount = "error.allocation.invalid_slot_count"
	ErrKeyNotConverged     = "error.allocation.not_converged"
	ErrKeyPlanTooLong      = "error.allocation.plan_too_long"
	ErrKeyInvalidProfile   = "error.profile.invalid"
	ErrKeyInvalidCatalog   = "error.catalog.invalid"
	ErrKeyEmptyPool        = "error.validation.empty_pool"
)

// Success message translation keys.
const (
	SuccessKeyPlanAllocated  = "success.plan_allocated"
	SuccessKeyCatalogUpdated = "success.catalog_updated"
)
