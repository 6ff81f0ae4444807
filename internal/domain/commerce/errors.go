package commerce

import (
	"errors"
	"fmt"
)

// ---------------------------------------------------------------------------
// Error Taxonomy
// ---------------------------------------------------------------------------

var (
	// ErrRateLimited indicates the platform rejected the request with HTTP 429.
	// Retryable; the server-supplied delay takes precedence over backoff.
	ErrRateLimited = errors.New("commerce: platform rate limited")
	// ErrAuth indicates an invalid or expired credential. Never retried.
	ErrAuth = errors.New("commerce: platform authentication failed")
	// ErrNotFound indicates the requested resource does not exist on the platform.
	// Terminal for that resource, non-fatal for a sync run.
	ErrNotFound = errors.New("commerce: resource not found")
	// ErrServerError indicates an HTTP 5xx from the platform. Retryable.
	ErrServerError = errors.New("commerce: platform server error")
	// ErrTransport indicates a network-level failure or request timeout. Retryable.
	ErrTransport = errors.New("commerce: transport failure")
	// ErrGraphQL indicates a request-level error payload embedded in a 200
	// response (malformed query, business-rule rejection). Terminal.
	ErrGraphQL = errors.New("commerce: graphql request error")
	// ErrInvalidResponse indicates a payload that could not be decoded.
	ErrInvalidResponse = errors.New("commerce: invalid platform response")

	// ErrValidation indicates a record is missing a required identifier and
	// must not be persisted.
	ErrValidation = errors.New("commerce: record validation failed")
	// ErrStoreNotConfigured indicates required store credentials are absent.
	ErrStoreNotConfigured = errors.New("commerce: store not configured")
	// ErrStoreNotFound indicates the referenced store does not exist locally.
	ErrStoreNotFound = errors.New("commerce: store not found")
	// ErrOrderNotFound indicates no local order matches the given identifier.
	ErrOrderNotFound = errors.New("commerce: order not found")
	// ErrReturnNotFound indicates no local return matches the given identifier.
	ErrReturnNotFound = errors.New("commerce: return not found")
	// ErrProductNotFound indicates no local product matches the given identifier.
	ErrProductNotFound = errors.New("commerce: product not found")
)

// MaxRetriesError wraps the last underlying error after the retry budget is
// exhausted. Terminal for the current page fetch and propagated as a run-level
// failure.
type MaxRetriesError struct {
	Attempts int
	Last     error
}

// Error implements the error interface.
func (e *MaxRetriesError) Error() string {
	return fmt.Sprintf("commerce: max retries exceeded after %d attempts: %v", e.Attempts, e.Last)
}

// Unwrap exposes the last underlying error for errors.Is/As.
func (e *MaxRetriesError) Unwrap() error {
	return e.Last
}

// IsRetryable reports whether another attempt against the platform may
// succeed. Auth, not-found, and application-level errors are terminal.
func IsRetryable(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrRateLimited),
		errors.Is(err, ErrServerError),
		errors.Is(err, ErrTransport):
		return true
	default:
		return false
	}
}

// IsRunFatal reports whether an error aborts the remaining pages of a sync
// run. Per-record errors are recovered locally and never reach this check.
func IsRunFatal(err error) bool {
	if err == nil {
		return false
	}
	var maxRetries *MaxRetriesError
	return errors.Is(err, ErrAuth) || errors.Is(err, ErrGraphQL) || errors.As(err, &maxRetries)
}
