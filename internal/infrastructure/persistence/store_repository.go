package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/blakespencer/debute-backend/internal/domain/commerce"
	"github.com/blakespencer/debute-backend/internal/infrastructure/persistence/models"
)

// GormStoreRepository implements StoreRepository using GORM
type GormStoreRepository struct {
	db *gorm.DB
}

// NewGormStoreRepository creates a new GormStoreRepository
func NewGormStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// FindByDomain finds a store by platform and external domain
func (r *GormStoreRepository) FindByDomain(ctx context.Context, platform commerce.Platform, externalDomain string) (*commerce.Store, error) {
	var model models.StoreModel
	if err := r.db.WithContext(ctx).
		Where("platform = ? AND external_domain = ?", platform, externalDomain).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commerce.ErrStoreNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// UpsertByDomain creates the store on first sight of its platform/domain pair
// or refreshes the credential on an existing row, returning the persisted
// store either way.
func (r *GormStoreRepository) UpsertByDomain(ctx context.Context, store *commerce.Store) (*commerce.Store, error) {
	if err := store.Validate(); err != nil {
		return nil, err
	}

	var existing models.StoreModel
	err := r.db.WithContext(ctx).
		Where("platform = ? AND external_domain = ?", store.Platform, store.ExternalDomain).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if store.ID == uuid.Nil {
			store.ID = uuid.New()
		}
		now := time.Now()
		store.CreatedAt = now
		store.UpdatedAt = now
		if err := r.db.WithContext(ctx).Create(models.StoreModelFromDomain(store)).Error; err != nil {
			return nil, err
		}
		return store, nil
	}
	if err != nil {
		return nil, err
	}

	persisted := existing.ToDomain()
	persisted.AccessToken = store.AccessToken
	persisted.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Model(&models.StoreModel{}).
		Where("id = ?", existing.ID).
		Updates(map[string]any{
			"access_token": persisted.AccessToken,
			"updated_at":   persisted.UpdatedAt,
		}).Error; err != nil {
		return nil, err
	}
	return persisted, nil
}

// TouchLastSynced records a successful sync completion time
func (r *GormStoreRepository) TouchLastSynced(ctx context.Context, id uuid.UUID, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.StoreModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"last_synced_at": at,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commerce.ErrStoreNotFound
	}
	return nil
}

// Ensure GormStoreRepository implements the StoreRepository port.
var _ commerce.StoreRepository = (*GormStoreRepository)(nil)
