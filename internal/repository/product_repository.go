package repository

import (
	"context"

	"github.com/salesdesk/crm-api/internal/domain"
	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) CreateFamily(ctx context.Context, family *domain.ProductFamily) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *ProductRepository) GetFamilyByID(ctx context.Context, id string) (*domain.ProductFamily, error) {
	var family domain.ProductFamily
	err := r.db.WithContext(ctx).
		Preload("Products").
		Preload("Products.CustomerPrices").
		First(&family, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &family, nil
}

func (r *ProductRepository) UpdateFamily(ctx context.Context, family *domain.ProductFamily) error {
	return r.db.WithContext(ctx).Save(family).Error
}

func (r *ProductRepository) DeleteFamily(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var productIDs []string
		if err := tx.Model(&domain.Product{}).Where("family_id = ?", id).Pluck("id", &productIDs).Error; err != nil {
			return err
		}
		if len(productIDs) > 0 {
			if err := tx.Where("product_id IN ?", productIDs).Delete(&domain.CustomerPrice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("family_id = ?", id).Delete(&domain.Product{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&domain.ProductFamily{}, "id = ?", id).Error
	})
}

// ListFamilies loads every family with its products and price overrides
func (r *ProductRepository) ListFamilies(ctx context.Context) ([]domain.ProductFamily, error) {
	var families []domain.ProductFamily
	err := r.db.WithContext(ctx).
		Preload("Products").
		Preload("Products.CustomerPrices").
		Order("created_at, id").
		Find(&families).Error
	return families, err
}

func (r *ProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).
		Preload("CustomerPrices").
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Select("CustomerPrices").
		Delete(&domain.Product{BaseModel: domain.BaseModel{ID: id}}).Error
}

// UpsertCustomerPrice sets or replaces the price a customer pays for a
// product. One row per (product, customer) pair.
func (r *ProductRepository) UpsertCustomerPrice(ctx context.Context, price *domain.CustomerPrice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.CustomerPrice
		err := tx.First(&existing, "product_id = ? AND customer_id = ?", price.ProductID, price.CustomerID).Error
		if err == nil {
			existing.Price = price.Price
			existing.DiscountedPrice = price.DiscountedPrice
			*price = existing
			return tx.Save(&existing).Error
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		return tx.Create(price).Error
	})
}

func (r *ProductRepository) DeleteCustomerPrice(ctx context.Context, productID, customerID string) error {
	return r.db.WithContext(ctx).
		Where("product_id = ? AND customer_id = ?", productID, customerID).
		Delete(&domain.CustomerPrice{}).Error
}

// ReplaceAllFamilies atomically swaps the whole catalogue for the
// imported one
func (r *ProductRepository) ReplaceAllFamilies(ctx context.Context, families []domain.ProductFamily) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&domain.CustomerPrice{}, &domain.Product{}, &domain.ProductFamily{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if len(families) == 0 {
			return nil
		}
		return tx.Create(&families).Error
	})
}
