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

// GormCatalogRepository implements CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// FindProductByShopifyID finds a product by canonical external ID, variants
// and collection memberships included
func (r *GormCatalogRepository) FindProductByShopifyID(ctx context.Context, storeID uuid.UUID, shopifyProductID string) (*commerce.Product, error) {
	var model models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("store_id = ? AND shopify_product_id = ?", storeID, shopifyProductID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commerce.ErrProductNotFound
		}
		return nil, err
	}

	var memberships []models.ProductCollectionModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", model.ID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	collectionIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		collectionIDs = append(collectionIDs, m.ShopifyCollectionID)
	}

	return model.ToDomain(collectionIDs), nil
}

// UpsertProduct creates or updates a product by canonical external ID,
// recreating its variant set and replacing its collection memberships in the
// same transaction
func (r *GormCatalogRepository) UpsertProduct(ctx context.Context, product *commerce.Product) (bool, error) {
	if err := product.Validate(); err != nil {
		return false, err
	}

	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.ProductModel
		err := tx.
			Where("store_id = ? AND shopify_product_id = ?", product.StoreID, product.ShopifyProductID).
			First(&existing).Error

		now := time.Now()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			if product.ID == uuid.Nil {
				product.ID = uuid.New()
			}
			product.CreatedAt = now
			product.UpdatedAt = now
			if err := tx.Create(models.ProductModelFromDomain(product)).Error; err != nil {
				return err
			}
			return replaceMemberships(tx, product.ID, product.CollectionIDs)
		}
		if err != nil {
			return err
		}

		product.ID = existing.ID
		product.CreatedAt = existing.CreatedAt
		product.UpdatedAt = now

		if err := tx.Where("product_id = ?", existing.ID).
			Delete(&models.ProductVariantModel{}).Error; err != nil {
			return err
		}

		model := models.ProductModelFromDomain(product)
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(model).Error; err != nil {
			return err
		}
		return replaceMemberships(tx, product.ID, product.CollectionIDs)
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

// replaceMemberships fully replaces a product's collection memberships
func replaceMemberships(tx *gorm.DB, productID uuid.UUID, collectionIDs []string) error {
	if err := tx.Where("product_id = ?", productID).
		Delete(&models.ProductCollectionModel{}).Error; err != nil {
		return err
	}
	if len(collectionIDs) == 0 {
		return nil
	}
	rows := make([]models.ProductCollectionModel, 0, len(collectionIDs))
	for _, id := range collectionIDs {
		rows = append(rows, models.ProductCollectionModel{
			ProductID:           productID,
			ShopifyCollectionID: id,
		})
	}
	return tx.Create(&rows).Error
}

// UpsertCollection creates or updates a collection by canonical external ID
func (r *GormCatalogRepository) UpsertCollection(ctx context.Context, collection *commerce.Collection) (bool, error) {
	if err := collection.Validate(); err != nil {
		return false, err
	}

	var existing models.CollectionModel
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND shopify_collection_id = ?", collection.StoreID, collection.ShopifyCollectionID).
		First(&existing).Error

	now := time.Now()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if collection.ID == uuid.Nil {
			collection.ID = uuid.New()
		}
		collection.CreatedAt = now
		collection.UpdatedAt = now
		model := &models.CollectionModel{}
		model.FromDomain(collection)
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			return false, err
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	collection.ID = existing.ID
	collection.CreatedAt = existing.CreatedAt
	collection.UpdatedAt = now
	model := &models.CollectionModel{}
	model.FromDomain(collection)
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return false, err
	}
	return false, nil
}

// Ensure GormCatalogRepository implements the CatalogRepository port.
var _ commerce.CatalogRepository = (*GormCatalogRepository)(nil)
