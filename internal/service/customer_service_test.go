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

func newCustomerService(db *gorm.DB) *service.CustomerService {
	return service.NewCustomerService(repository.NewCustomerRepository(db), zap.NewNop())
}

func TestCustomerService_CreateAppliesDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCustomerService(db)

	customer, err := svc.Create(context.Background(), &domain.CreateCustomerRequest{
		Name: "Acme Corp",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, customer.ID)
	assert.Equal(t, domain.CustomerTypeCustomer, customer.Type)
	assert.Equal(t, domain.CustomerStatusActive, customer.Status)
	assert.False(t, customer.LastContact.IsZero())
}

func TestCustomerService_GetByIDNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCustomerService(db)

	_, err := svc.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCustomerService_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	customer, err := svc.Create(ctx, &domain.CreateCustomerRequest{Name: "Before"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, customer.ID, &domain.UpdateCustomerRequest{
		Name:        "After",
		Type:        string(domain.CustomerTypeOEM),
		Status:      string(domain.CustomerStatusProspect),
		Country:     string(domain.CountryUAE),
		LastContact: "2025-02-01",
	})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, domain.CustomerTypeOEM, updated.Type)
	assert.Equal(t, domain.CustomerStatusProspect, updated.Status)
	assert.Equal(t, "2025-02-01", updated.LastContact.Format("2006-01-02"))
}

func TestCustomerService_AddContactBumpsLastContact(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	customer, err := svc.Create(ctx, &domain.CreateCustomerRequest{Name: "Acme"})
	require.NoError(t, err)

	before := customer.LastContact

	contact, err := svc.AddContact(ctx, customer.ID, &domain.CreateContactRequest{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", contact.Name)
	assert.Equal(t, customer.ID, contact.CustomerID)

	reloaded, err := svc.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Contacts, 1)
	assert.False(t, reloaded.LastContact.Before(before))
}

func TestCustomerService_ListSummaryCounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	customer, err := svc.Create(ctx, &domain.CreateCustomerRequest{Name: "Counted"})
	require.NoError(t, err)

	_, err = svc.AddContact(ctx, customer.ID, &domain.CreateContactRequest{Name: "C1"})
	require.NoError(t, err)
	_, err = svc.AddNote(ctx, customer.ID, &domain.CreateNoteRequest{Title: "N1"})
	require.NoError(t, err)

	summaries, total, err := svc.List(ctx, 1, 20, "", "", "")
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].ContactCount)
}

func TestCustomerService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newCustomerService(db)
	ctx := context.Background()

	customer, err := svc.Create(ctx, &domain.CreateCustomerRequest{Name: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, customer.ID))
	assert.ErrorIs(t, svc.Delete(ctx, customer.ID), service.ErrNotFound)
}
