package shopify

import (
	"fmt"
	"time"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

// DefaultAPIVersion is the Shopify Admin API version requests are pinned to.
const DefaultAPIVersion = "2024-01"

// Config holds Shopify Admin API client configuration.
type Config struct {
	// StoreDomain is the myshopify domain, e.g. "example.myshopify.com".
	StoreDomain string
	// AccessToken is the Admin API access token sent per request.
	AccessToken string
	// APIVersion selects the Admin API version (default DefaultAPIVersion).
	APIVersion string
	// BaseURL overrides the endpoint derived from StoreDomain. Tests only.
	BaseURL string
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
	if c.StoreDomain == "" {
		return fmt.Errorf("%w: shopify store domain is required", commerce.ErrStoreNotConfigured)
	}
	if c.AccessToken == "" {
		return fmt.Errorf("%w: shopify access token is required", commerce.ErrStoreNotConfigured)
	}
	return nil
}

// withDefaults fills zero values with defaults.
func (c *Config) withDefaults() {
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

// endpoint returns the GraphQL endpoint URL.
func (c *Config) endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.StoreDomain, c.APIVersion)
}
