package dto

import (
	"errors"
	"net/http"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used when a record is missing required identifiers
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeNotFound is used when a local resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
)

// Sync-specific error codes
const (
	// ErrCodeStoreNotConfigured is used when platform credentials are absent
	ErrCodeStoreNotConfigured = "ERR_STORE_NOT_CONFIGURED"
	// ErrCodePlatformAuth is used when the external platform rejects our credential
	ErrCodePlatformAuth = "ERR_PLATFORM_AUTH"
	// ErrCodePlatformUnavailable is used when the external platform keeps failing
	ErrCodePlatformUnavailable = "ERR_PLATFORM_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeNotFound:   http.StatusNotFound,

	ErrCodeStoreNotConfigured:  http.StatusUnprocessableEntity,
	ErrCodePlatformAuth:        http.StatusBadGateway,
	ErrCodePlatformUnavailable: http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// MapDomainError maps a commerce error to an API error code.
func MapDomainError(err error) string {
	var maxRetries *commerce.MaxRetriesError
	switch {
	case errors.Is(err, commerce.ErrStoreNotFound),
		errors.Is(err, commerce.ErrOrderNotFound),
		errors.Is(err, commerce.ErrReturnNotFound),
		errors.Is(err, commerce.ErrProductNotFound):
		return ErrCodeNotFound
	case errors.Is(err, commerce.ErrValidation):
		return ErrCodeValidation
	case errors.Is(err, commerce.ErrStoreNotConfigured):
		return ErrCodeStoreNotConfigured
	case errors.Is(err, commerce.ErrAuth):
		return ErrCodePlatformAuth
	case errors.As(err, &maxRetries),
		errors.Is(err, commerce.ErrRateLimited),
		errors.Is(err, commerce.ErrServerError),
		errors.Is(err, commerce.ErrTransport):
		return ErrCodePlatformUnavailable
	default:
		return ErrCodeInternal
	}
}
