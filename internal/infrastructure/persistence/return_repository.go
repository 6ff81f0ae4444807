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

// GormReturnRepository implements ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindBySwapReturnID finds a return by canonical external ID, products included
func (r *GormReturnRepository) FindBySwapReturnID(ctx context.Context, storeID uuid.UUID, swapReturnID string) (*commerce.ReturnRecord, error) {
	var model models.ReturnModel
	if err := r.db.WithContext(ctx).
		Preload("Products").
		Where("store_id = ? AND swap_return_id = ?", storeID, swapReturnID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commerce.ErrReturnNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Upsert creates the return or updates it in place by canonical external ID,
// cascade-replacing its products in the same transaction
func (r *GormReturnRepository) Upsert(ctx context.Context, record *commerce.ReturnRecord) (bool, error) {
	if err := record.Validate(); err != nil {
		return false, err
	}

	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ReturnModel
		err := tx.
			Where("store_id = ? AND swap_return_id = ?", record.StoreID, record.SwapReturnID).
			First(&existing).Error

		now := time.Now()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			if record.ID == uuid.Nil {
				record.ID = uuid.New()
			}
			record.CreatedAt = now
			record.UpdatedAt = now
			return tx.Create(models.ReturnModelFromDomain(record)).Error
		}
		if err != nil {
			return err
		}

		// Merge through the domain rules so local identity and reconciliation
		// state stay stable across resyncs.
		merged := existing.ToDomain()
		merged.ApplyResync(record)
		*record = *merged

		if err := tx.Where("return_id = ?", existing.ID).
			Delete(&models.ReturnProductModel{}).Error; err != nil {
			return err
		}

		model := models.ReturnModelFromDomain(record)
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// FindUnmatchedBatch fetches up to limit returns with is_matched=false and a
// non-empty foreign order reference, oldest first for deterministic batching
func (r *GormReturnRepository) FindUnmatchedBatch(ctx context.Context, limit int, storeID *uuid.UUID) ([]commerce.ReturnRecord, error) {
	query := r.db.WithContext(ctx).Model(&models.ReturnModel{}).
		Preload("Products").
		Where("is_matched = ? AND swap_order_id <> ''", false).
		Order("date_created ASC, swap_return_id ASC").
		Limit(limit)
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	var rows []models.ReturnModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]commerce.ReturnRecord, 0, len(rows))
	for i := range rows {
		records = append(records, *rows[i].ToDomain())
	}
	return records, nil
}

// MarkMatched sets is_matched and the resolved order identifier
func (r *GormReturnRepository) MarkMatched(ctx context.Context, id uuid.UUID, shopifyOrderID string) error {
	result := r.db.WithContext(ctx).Model(&models.ReturnModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"is_matched":       true,
			"shopify_order_id": shopifyOrderID,
			"updated_at":       time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return commerce.ErrReturnNotFound
	}
	return nil
}

// FindUnmatchable lists returns carrying an order reference, resolved or raw,
// whose order is confirmed absent from the local order table
func (r *GormReturnRepository) FindUnmatchable(ctx context.Context, limit int, storeID *uuid.UUID) ([]commerce.UnmatchedReturn, error) {
	query := r.db.WithContext(ctx).Model(&models.ReturnModel{}).
		Select("returns.swap_return_id, COALESCE(returns.shopify_order_id, returns.swap_order_id) AS shopify_order_id, returns.order_name, returns.rma").
		Joins("LEFT JOIN orders ON orders.store_id = returns.store_id AND orders.shopify_order_id = COALESCE(returns.shopify_order_id, NULLIF(returns.swap_order_id, ''))").
		Where("returns.is_matched = ? AND (returns.shopify_order_id IS NOT NULL OR returns.swap_order_id <> '') AND orders.id IS NULL", false).
		Order("returns.date_created ASC, returns.swap_return_id ASC").
		Limit(limit)
	if storeID != nil {
		query = query.Where("returns.store_id = ?", *storeID)
	}

	var results []commerce.UnmatchedReturn
	if err := query.Scan(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// CountByStore counts returns for a store created within [from, to)
func (r *GormReturnRepository) CountByStore(ctx context.Context, storeID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ReturnModel{}).
		Where("store_id = ? AND date_created >= ? AND date_created < ?", storeID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormReturnRepository implements the ReturnRepository port.
var _ commerce.ReturnRepository = (*GormReturnRepository)(nil)
