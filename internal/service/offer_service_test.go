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

func newOfferService(db *gorm.DB) (*service.OfferService, *repository.CustomerRepository) {
	customerRepo := repository.NewCustomerRepository(db)
	svc := service.NewOfferService(repository.NewOfferRepository(db), customerRepo, zap.NewNop())
	return svc, customerRepo
}

func TestOfferService_CreateAndMarkOrdered(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo := newOfferService(db)
	ctx := context.Background()

	customer := &domain.Customer{Name: "Acme"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	offer, err := svc.Create(ctx, customer.ID, &domain.OfferRequest{
		Date:        "2025-06-01",
		FinalUser:   "End User Co",
		ProjectName: "Pipeline Expansion",
		Amount:      125000,
	})
	require.NoError(t, err)
	assert.False(t, offer.MarkedAsOrdered)

	marked, err := svc.SetOrdered(ctx, customer.ID, offer.ID, true)
	require.NoError(t, err)
	assert.True(t, marked.MarkedAsOrdered)

	unmarked, err := svc.SetOrdered(ctx, customer.ID, offer.ID, false)
	require.NoError(t, err)
	assert.False(t, unmarked.MarkedAsOrdered)
}

func TestOfferService_GetScopedToCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo := newOfferService(db)
	ctx := context.Background()

	a := &domain.Customer{Name: "Alpha"}
	b := &domain.Customer{Name: "Beta"}
	require.NoError(t, customerRepo.Create(ctx, a))
	require.NoError(t, customerRepo.Create(ctx, b))

	offer, err := svc.Create(ctx, a.ID, &domain.OfferRequest{
		Date:        "2025-06-01",
		FinalUser:   "User",
		ProjectName: "Project",
		Amount:      100,
	})
	require.NoError(t, err)

	// The offer is not reachable through another customer's id.
	_, err = svc.GetByID(ctx, b.ID, offer.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	found, err := svc.GetByID(ctx, a.ID, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Project", found.ProjectName)
}

func TestOfferService_ListByCustomerNewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo := newOfferService(db)
	ctx := context.Background()

	customer := &domain.Customer{Name: "Acme"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	for _, date := range []string{"2025-01-10", "2025-03-05", "2025-02-01"} {
		_, err := svc.Create(ctx, customer.ID, &domain.OfferRequest{
			Date:        date,
			FinalUser:   "User",
			ProjectName: "P " + date,
			Amount:      10,
		})
		require.NoError(t, err)
	}

	offers, err := svc.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, offers, 3)
	assert.Equal(t, "2025-03-05", offers[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2025-01-10", offers[2].Date.Format("2006-01-02"))
}

func TestOfferService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo := newOfferService(db)
	ctx := context.Background()

	customer := &domain.Customer{Name: "Acme"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	offer, err := svc.Create(ctx, customer.ID, &domain.OfferRequest{
		Date:        "2025-06-01",
		FinalUser:   "User",
		ProjectName: "Project",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, customer.ID, offer.ID))
	assert.ErrorIs(t, svc.Delete(ctx, customer.ID, offer.ID), service.ErrNotFound)
}
