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

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByShopifyOrderID finds an order by its canonical external ID, line
// items included
func (r *GormOrderRepository) FindByShopifyOrderID(ctx context.Context, storeID uuid.UUID, shopifyOrderID string) (*commerce.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("store_id = ? AND shopify_order_id = ?", storeID, shopifyOrderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commerce.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByShopifyOrderID reports whether the canonical external ID is already
// present for the store
func (r *GormOrderRepository) ExistsByShopifyOrderID(ctx context.Context, storeID uuid.UUID, shopifyOrderID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("store_id = ? AND shopify_order_id = ?", storeID, shopifyOrderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Upsert creates the order or updates it in place by canonical external ID,
// cascade-replacing its line items in the same transaction
func (r *GormOrderRepository) Upsert(ctx context.Context, order *commerce.Order) (bool, error) {
	if err := order.Validate(); err != nil {
		return false, err
	}

	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.OrderModel
		err := tx.
			Where("store_id = ? AND shopify_order_id = ?", order.StoreID, order.ShopifyOrderID).
			First(&existing).Error

		now := time.Now()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			if order.ID == uuid.Nil {
				order.ID = uuid.New()
			}
			order.CreatedAt = now
			order.UpdatedAt = now
			return tx.Create(models.OrderModelFromDomain(order)).Error
		}
		if err != nil {
			return err
		}

		// Merge through the domain rules so local identity stays stable across
		// resyncs.
		merged := existing.ToDomain()
		merged.ApplyResync(order)
		*order = *merged

		if err := tx.Where("order_id = ?", existing.ID).
			Delete(&models.OrderLineItemModel{}).Error; err != nil {
			return err
		}

		model := models.OrderModelFromDomain(order)
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// CountByStore counts orders for a store processed within [from, to)
func (r *GormOrderRepository) CountByStore(ctx context.Context, storeID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Where("store_id = ? AND processed_at >= ? AND processed_at < ?", storeID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormOrderRepository implements the OrderRepository port.
var _ commerce.OrderRepository = (*GormOrderRepository)(nil)
