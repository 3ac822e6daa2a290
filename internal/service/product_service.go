package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/mapper"
	"github.com/salesdesk/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProductService struct {
	productRepo  *repository.ProductRepository
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewProductService(
	productRepo *repository.ProductRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (s *ProductService) CreateFamily(ctx context.Context, req *domain.FamilyRequest) (*domain.ProductFamily, error) {
	family := &domain.ProductFamily{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.productRepo.CreateFamily(ctx, family); err != nil {
		return nil, fmt.Errorf("failed to create product family: %w", err)
	}

	s.logger.Info("product family created",
		zap.String("family_id", family.ID),
		zap.String("name", family.Name))

	return family, nil
}

func (s *ProductService) GetFamilyByID(ctx context.Context, id string) (*domain.ProductFamily, error) {
	family, err := s.productRepo.GetFamilyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product family: %w", err)
	}
	return family, nil
}

func (s *ProductService) UpdateFamily(ctx context.Context, id string, req *domain.FamilyRequest) (*domain.ProductFamily, error) {
	family, err := s.productRepo.GetFamilyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product family: %w", err)
	}

	family.Name = req.Name
	family.Description = req.Description
	if err := s.productRepo.UpdateFamily(ctx, family); err != nil {
		return nil, fmt.Errorf("failed to update product family: %w", err)
	}
	return family, nil
}

func (s *ProductService) DeleteFamily(ctx context.Context, id string) error {
	if _, err := s.productRepo.GetFamilyByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get product family: %w", err)
	}
	if err := s.productRepo.DeleteFamily(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product family: %w", err)
	}
	return nil
}

func (s *ProductService) ListFamilies(ctx context.Context) ([]domain.ProductFamily, error) {
	families, err := s.productRepo.ListFamilies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list product families: %w", err)
	}
	return families, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, familyID string, req *domain.ProductRequest) (*domain.Product, error) {
	if _, err := s.productRepo.GetFamilyByID(ctx, familyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product family: %w", err)
	}

	product := &domain.Product{
		FamilyID:    familyID,
		Name:        req.Name,
		SKU:         req.SKU,
		Description: req.Description,
		BasePrice:   req.BasePrice,
	}
	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, req *domain.ProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	product.Name = req.Name
	product.SKU = req.SKU
	product.Description = req.Description
	product.BasePrice = req.BasePrice
	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := s.productRepo.GetProductByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}
	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return nil
}

// SetCustomerPrice upserts a per-customer price. The customer must exist
// when the price is set; it becoming a dangling reference later is fine.
func (s *ProductService) SetCustomerPrice(ctx context.Context, productID string, req *domain.CustomerPriceRequest) (*domain.CustomerPriceDTO, error) {
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	customer, err := s.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	price := &domain.CustomerPrice{
		ProductID:       productID,
		CustomerID:      req.CustomerID,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
	}
	if err := s.productRepo.UpsertCustomerPrice(ctx, price); err != nil {
		return nil, fmt.Errorf("failed to set customer price: %w", err)
	}

	dto := mapper.ToCustomerPriceDTO(price, map[string]string{customer.ID: customer.Name})
	return &dto, nil
}

func (s *ProductService) DeleteCustomerPrice(ctx context.Context, productID, customerID string) error {
	if _, err := s.productRepo.GetProductByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get product: %w", err)
	}
	if err := s.productRepo.DeleteCustomerPrice(ctx, productID, customerID); err != nil {
		return fmt.Errorf("failed to delete customer price: %w", err)
	}
	return nil
}

// ListCustomerPrices resolves customer names for the price rows of a
// product. Prices pointing at deleted customers render as "Unknown".
func (s *ProductService) ListCustomerPrices(ctx context.Context, productID string) ([]domain.CustomerPriceDTO, error) {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	names, err := s.customerRepo.NameMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer names: %w", err)
	}

	dtos := make([]domain.CustomerPriceDTO, len(product.CustomerPrices))
	for i := range product.CustomerPrices {
		dtos[i] = mapper.ToCustomerPriceDTO(&product.CustomerPrices[i], names)
	}
	return dtos, nil
}
