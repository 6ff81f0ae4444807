package commerce

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Platform identifies which external system a store record belongs to.
type Platform string

const (
	// PlatformShopify is the storefront platform (GraphQL Admin API).
	PlatformShopify Platform = "SHOPIFY"
	// PlatformSwap is the returns-management platform (REST API).
	PlatformSwap Platform = "SWAP"
)

// IsValid returns true if the platform is a known value.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformShopify, PlatformSwap:
		return true
	default:
		return false
	}
}

// String returns the string representation of Platform.
func (p Platform) String() string {
	return string(p)
}

// Store represents one connected external account. It is created lazily on
// the first sync attempt for its domain and mutated only to bump the
// last-successful-sync timestamp.
type Store struct {
	ID uuid.UUID
	// Platform identifies the owning external system.
	Platform Platform
	// ExternalDomain is the platform-side account identifier (e.g.
	// "example.myshopify.com") and the lazy-upsert key.
	ExternalDomain string
	// AccessToken is the per-store API credential.
	AccessToken string
	// LastSyncedAt is the end of the last run that completed without a
	// run-level failure. Nil until the first successful sync.
	LastSyncedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewStore creates a store for an external account.
func NewStore(platform Platform, externalDomain, accessToken string) *Store {
	now := time.Now()
	return &Store{
		ID:             uuid.New(),
		Platform:       platform,
		ExternalDomain: externalDomain,
		AccessToken:    accessToken,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Validate checks the store's required identifiers.
func (s *Store) Validate() error {
	if !s.Platform.IsValid() {
		return ErrValidation
	}
	if s.ExternalDomain == "" {
		return ErrValidation
	}
	return nil
}

// SyncWindowStart returns the start of the default sync window: the store's
// last successful sync, falling back to the given lookback when the store has
// never synced.
func (s *Store) SyncWindowStart(now time.Time, lookback time.Duration) time.Time {
	if s.LastSyncedAt != nil {
		return *s.LastSyncedAt
	}
	return now.Add(-lookback)
}

// StoreRepository persists connected external accounts.
type StoreRepository interface {
	// FindByDomain finds a store by platform and external domain.
	FindByDomain(ctx context.Context, platform Platform, externalDomain string) (*Store, error)

	// UpsertByDomain finds the store for the domain or creates it when absent.
	UpsertByDomain(ctx context.Context, store *Store) (*Store, error)

	// TouchLastSynced sets the last-successful-sync timestamp.
	TouchLastSynced(ctx context.Context, id uuid.UUID, at time.Time) error
}
