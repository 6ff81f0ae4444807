package sync

import (
	"context"
	"time"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
)

const (
	// maxPageSize is the largest page either platform serves.
	maxPageSize = 50

	defaultInterPageDelay = time.Second
	defaultLookback       = 30 * 24 * time.Hour
)

// SyncOptions controls one sync run. The zero value syncs the configured
// store over its default window without a record limit.
type SyncOptions struct {
	// StoreDomain selects the store; empty means the configured default.
	StoreDomain string
	// FromDate overrides the start of the sync window.
	FromDate *time.Time
	// Limit caps the number of records fetched; 0 means unbounded.
	Limit int
}

// Settings carries the sync tuning shared by all orchestrators.
type Settings struct {
	// PageSize is the number of records requested per page, capped at 50.
	PageSize int
	// InterPageDelay is the fixed pause between consecutive page fetches.
	InterPageDelay time.Duration
	// Lookback is the default window for a store that has never synced.
	Lookback time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.PageSize <= 0 || s.PageSize > maxPageSize {
		s.PageSize = maxPageSize
	}
	if s.InterPageDelay <= 0 {
		s.InterPageDelay = defaultInterPageDelay
	}
	if s.Lookback <= 0 {
		s.Lookback = defaultLookback
	}
	return s
}

// pageSize returns the size of the next page, bounded by the remaining record
// budget. remaining < 0 means unbounded.
func (s Settings) pageSize(remaining int) int {
	if remaining >= 0 && remaining < s.PageSize {
		return remaining
	}
	return s.PageSize
}

// storeResolver lazily upserts the configured store on first use and looks up
// explicitly requested domains.
type storeResolver struct {
	stores   commerce.StoreRepository
	platform commerce.Platform
	domain   string
	token    string
}

func (r *storeResolver) resolve(ctx context.Context, requested string) (*commerce.Store, error) {
	if requested == "" || requested == r.domain {
		if r.domain == "" || r.token == "" {
			return nil, commerce.ErrStoreNotConfigured
		}
		return r.stores.UpsertByDomain(ctx, commerce.NewStore(r.platform, r.domain, r.token))
	}
	return r.stores.FindByDomain(ctx, r.platform, requested)
}
