package swap

import (
	"fmt"
	"time"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

const (
	// DefaultBaseURL is the production Swap API endpoint.
	DefaultBaseURL = "https://api.swapcommerce.com"
	// DefaultAPIVersion is sent as the version query parameter.
	DefaultAPIVersion = "v1"
	// MaxItemsPerPage is the API's hard page-size ceiling.
	MaxItemsPerPage = 50
)

// Config holds Swap API client configuration.
type Config struct {
	// Store is the Swap store identifier sent with every request.
	Store string
	// APIKey authenticates requests via the x-api-key header.
	APIKey string
	// BaseURL overrides DefaultBaseURL. Tests only.
	BaseURL string
	// APIVersion selects the API version (default DefaultAPIVersion).
	APIVersion string
	// MaxRetries is the retry ceiling per call (default 3, so 4 attempts).
	MaxRetries int
	// Timeout bounds each individual attempt (default 30s).
	Timeout time.Duration
	// BaseDelay seeds the exponential backoff (default 500ms).
	BaseDelay time.Duration
	// MaxDelay caps the backoff delay (default 30s).
	MaxDelay time.Duration
}

// Validate checks required credentials. Missing credentials are a
// startup-fatal misconfiguration.
func (c *Config) Validate() error {
	if c.Store == "" {
		return fmt.Errorf("%w: swap store is required", commerce.ErrStoreNotConfigured)
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w: swap api key is required", commerce.ErrStoreNotConfigured)
	}
	return nil
}

// withDefaults fills zero values with defaults.
func (c *Config) withDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 500 * time.Millisecond
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
}
