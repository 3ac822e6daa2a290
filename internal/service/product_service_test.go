package service_test

import (
	"context"
	"testing"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/repository"
	"github.com/salesdesk/crm-api/internal/service"
	"github.com/salesdesk/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) (*service.ProductService, *repository.CustomerRepository) {
	customerRepo := repository.NewCustomerRepository(db)
	svc := service.NewProductService(repository.NewProductRepository(db), customerRepo, zap.NewNop())
	return svc, customerRepo
}

func TestProductService_FamilyAndProductLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newProductService(db)
	ctx := context.Background()

	family, err := svc.CreateFamily(ctx, &domain.FamilyRequest{Name: "Valves"})
	require.NoError(t, err)
	require.NotEmpty(t, family.ID)

	product, err := svc.CreateProduct(ctx, family.ID, &domain.ProductRequest{
		Name:      "Gate Valve",
		SKU:       "GV-100",
		BasePrice: 150,
	})
	require.NoError(t, err)

	reloaded, err := svc.GetFamilyByID(ctx, family.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Products, 1)
	assert.Equal(t, "Gate Valve", reloaded.Products[0].Name)

	updated, err := svc.UpdateProduct(ctx, product.ID, &domain.ProductRequest{
		Name:      "Gate Valve II",
		SKU:       "GV-200",
		BasePrice: 175,
	})
	require.NoError(t, err)
	assert.Equal(t, "GV-200", updated.SKU)

	require.NoError(t, svc.DeleteFamily(ctx, family.ID))
	_, err = svc.GetProductByID(ctx, product.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestProductService_CreateProductRequiresFamily(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newProductService(db)

	_, err := svc.CreateProduct(context.Background(), "missing", &domain.ProductRequest{Name: "Orphan"})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestProductService_SetCustomerPriceUpserts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo := newProductService(db)
	ctx := context.Background()

	customer := &domain.Customer{Name: "Acme"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	family, err := svc.CreateFamily(ctx, &domain.FamilyRequest{Name: "Valves"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, family.ID, &domain.ProductRequest{Name: "Gate Valve"})
	require.NoError(t, err)

	first, err := svc.SetCustomerPrice(ctx, product.ID, &domain.CustomerPriceRequest{
		CustomerID: customer.ID,
		Price:      100,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", first.CustomerName)

	// A second set for the same customer overwrites instead of adding a row.
	_, err = svc.SetCustomerPrice(ctx, product.ID, &domain.CustomerPriceRequest{
		CustomerID: customer.ID,
		Price:      90,
	})
	require.NoError(t, err)

	prices, err := svc.ListCustomerPrices(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, 90.0, prices[0].Price)
}

func TestProductService_SetCustomerPriceRequiresCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newProductService(db)
	ctx := context.Background()

	family, err := svc.CreateFamily(ctx, &domain.FamilyRequest{Name: "Valves"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, family.ID, &domain.ProductRequest{Name: "Gate Valve"})
	require.NoError(t, err)

	_, err = svc.SetCustomerPrice(ctx, product.ID, &domain.CustomerPriceRequest{
		CustomerID: "missing",
		Price:      100,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestProductService_DanglingPriceRendersUnknown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo := newProductService(db)
	ctx := context.Background()

	customer := &domain.Customer{Name: "Acme"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	family, err := svc.CreateFamily(ctx, &domain.FamilyRequest{Name: "Valves"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, family.ID, &domain.ProductRequest{Name: "Gate Valve"})
	require.NoError(t, err)

	_, err = svc.SetCustomerPrice(ctx, product.ID, &domain.CustomerPriceRequest{
		CustomerID: customer.ID,
		Price:      100,
	})
	require.NoError(t, err)

	// The price row outlives the customer it points at.
	require.NoError(t, customerRepo.Delete(ctx, customer.ID))

	prices, err := svc.ListCustomerPrices(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, "Unknown", prices[0].CustomerName)
	assert.Equal(t, customer.ID, prices[0].CustomerID)
}

func TestProductService_DeleteCustomerPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo := newProductService(db)
	ctx := context.Background()

	customer := &domain.Customer{Name: "Acme"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	family, err := svc.CreateFamily(ctx, &domain.FamilyRequest{Name: "Valves"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, family.ID, &domain.ProductRequest{Name: "Gate Valve"})
	require.NoError(t, err)

	_, err = svc.SetCustomerPrice(ctx, product.ID, &domain.CustomerPriceRequest{
		CustomerID: customer.ID,
		Price:      100,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomerPrice(ctx, product.ID, customer.ID))

	prices, err := svc.ListCustomerPrices(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, prices)
}
