package product

import (
	"context"

	"github.com/pantry-guardian/backend/entities"
	"gorm.io/gorm"
)

type (
	ProductRepository interface {
		GetProduct(ctx context.Context, id string) (*entities.Product, error)
		GetHouseholdProducts(ctx context.Context, householdID string) ([]*entities.Product, error)
		SaveProduct(ctx context.Context, product *entities.Product) error
		DeleteProduct(ctx context.Context, id string) error
	}

	productRepository struct {
		db *gorm.DB
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetProduct(ctx context.Context, id string) (*entities.Product, error) {
	var product entities.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetHouseholdProducts(ctx context.Context, householdID string) ([]*entities.Product, error) {
	var products []*entities.Product
	if err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// SaveProduct is the single write path: creation, edits and the waste
// transition all go through this full-document upsert. Concurrent edits are
// last-write-wins.
func (r *productRepository) SaveProduct(ctx context.Context, product *entities.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Product{}).Error
}
