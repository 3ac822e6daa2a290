package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/repository"
	"github.com/salesdesk/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_CreateAndGetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)

	customer := &domain.Customer{
		Name:    "Test Company",
		Type:    domain.CustomerTypeCustomer,
		Status:  domain.CustomerStatusActive,
		Email:   "test@example.com",
		City:    "Riyadh",
		Country: domain.CountryKSA,
		Contacts: []domain.Contact{
			{Name: "Jane Doe", Email: "jane@example.com"},
		},
		Offers: []domain.Offer{
			{Date: time.Now(), FinalUser: "End User", ProjectName: "Project X", Amount: 1000},
		},
	}

	err := repo.Create(context.Background(), customer)
	require.NoError(t, err)
	assert.NotEmpty(t, customer.ID)

	found, err := repo.GetByID(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Company", found.Name)
	require.Len(t, found.Contacts, 1)
	assert.Equal(t, "Jane Doe", found.Contacts[0].Name)
	require.Len(t, found.Offers, 1)
	assert.Equal(t, 1000.0, found.Offers[0].Amount)
}

func TestCustomerRepository_GeneratedAndExplicitIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)

	generated := &domain.Customer{Name: "Generated"}
	require.NoError(t, repo.Create(context.Background(), generated))
	assert.NotEmpty(t, generated.ID)

	// Imported customers keep their synthetic ids.
	imported := &domain.Customer{
		BaseModel: domain.BaseModel{ID: "customer-1"},
		Name:      "Imported",
	}
	require.NoError(t, repo.Create(context.Background(), imported))
	assert.Equal(t, "customer-1", imported.ID)
}

func TestCustomerRepository_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Customer{Name: "Acme Corp", Type: domain.CustomerTypeCustomer, Status: domain.CustomerStatusActive}))
	require.NoError(t, repo.Create(ctx, &domain.Customer{Name: "Beta OEM", Type: domain.CustomerTypeOEM, Status: domain.CustomerStatusActive}))
	require.NoError(t, repo.Create(ctx, &domain.Customer{Name: "Acme Prospect", Type: domain.CustomerTypeCustomer, Status: domain.CustomerStatusProspect}))

	t.Run("search is case-insensitive", func(t *testing.T) {
		customers, total, err := repo.List(ctx, 1, 20, "acme", "", "")
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Len(t, customers, 2)
	})

	t.Run("type filter", func(t *testing.T) {
		customers, total, err := repo.List(ctx, 1, 20, "", string(domain.CustomerTypeOEM), "")
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, customers, 1)
		assert.Equal(t, "Beta OEM", customers[0].Name)
	})

	t.Run("status filter", func(t *testing.T) {
		_, total, err := repo.List(ctx, 1, 20, "", "", string(domain.CustomerStatusProspect))
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
	})

	t.Run("pagination", func(t *testing.T) {
		customers, total, err := repo.List(ctx, 2, 2, "", "", "")
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		assert.Len(t, customers, 1)
	})
}

func TestCustomerRepository_ReplaceAllPreservesGlobalTasks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	old := &domain.Customer{
		Name: "Old Customer",
		Tasks: []domain.Task{
			{Title: "Customer task", ExpiryDate: time.Now()},
		},
	}
	require.NoError(t, repo.Create(ctx, old))

	globalTask := &domain.Task{Title: "Global task", ExpiryDate: time.Now()}
	require.NoError(t, db.Create(globalTask).Error)

	replacement := []domain.Customer{
		{BaseModel: domain.BaseModel{ID: "customer-1"}, Name: "Imported"},
	}
	require.NoError(t, repo.ReplaceAll(ctx, replacement))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	_, err = repo.GetByID(ctx, old.ID)
	assert.Error(t, err)

	var tasks []domain.Task
	require.NoError(t, db.Find(&tasks).Error)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Global task", tasks[0].Title)
	assert.Nil(t, tasks[0].CustomerID)
}

func TestCustomerRepository_ReplaceAllWithEmptySet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Customer{Name: "Doomed"}))
	require.NoError(t, repo.ReplaceAll(ctx, nil))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestCustomerRepository_NameMap(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	a := &domain.Customer{Name: "Alpha"}
	b := &domain.Customer{Name: "Beta"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	names, err := repo.NameMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", names[a.ID])
	assert.Equal(t, "Beta", names[b.ID])
}

func TestCustomerRepository_DeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCustomerRepository(db)
	ctx := context.Background()

	customer := &domain.Customer{
		Name: "Cascade",
		Notes: []domain.Note{
			{Title: "Note", Date: time.Now()},
		},
	}
	require.NoError(t, repo.Create(ctx, customer))
	require.NoError(t, repo.Delete(ctx, customer.ID))

	var notes []domain.Note
	require.NoError(t, db.Find(&notes).Error)
	assert.Empty(t, notes)
}
