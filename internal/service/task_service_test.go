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

func newTaskService(db *gorm.DB) (*service.TaskService, *repository.CustomerRepository) {
	customerRepo := repository.NewCustomerRepository(db)
	svc := service.NewTaskService(repository.NewTaskRepository(db), customerRepo, zap.NewNop())
	return svc, customerRepo
}

func TestTaskService_GlobalAndCustomerTasks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo := newTaskService(db)
	ctx := context.Background()

	customer := &domain.Customer{Name: "Acme"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	global, err := svc.Create(ctx, nil, &domain.TaskRequest{
		Title:      "Renew trade license",
		ExpiryDate: "2025-12-31",
	})
	require.NoError(t, err)
	assert.Nil(t, global.CustomerID)

	owned, err := svc.Create(ctx, &customer.ID, &domain.TaskRequest{
		Title:      "Follow up on offer",
		ExpiryDate: "2025-07-01",
		Urgent:     true,
	})
	require.NoError(t, err)
	require.NotNil(t, owned.CustomerID)
	assert.Equal(t, customer.ID, *owned.CustomerID)

	globals, err := svc.ListGlobal(ctx)
	require.NoError(t, err)
	require.Len(t, globals, 1)
	assert.Equal(t, "Renew trade license", globals[0].Title)

	ownedList, err := svc.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, ownedList, 1)
	assert.True(t, ownedList[0].Urgent)
}

func TestTaskService_CreateForMissingCustomer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newTaskService(db)

	missing := "missing"
	_, err := svc.Create(context.Background(), &missing, &domain.TaskRequest{
		Title:      "Orphan",
		ExpiryDate: "2025-12-31",
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestTaskService_RegistrationDefaultsToNow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newTaskService(db)

	task, err := svc.Create(context.Background(), nil, &domain.TaskRequest{
		Title:      "No registration date",
		ExpiryDate: "2025-12-31",
	})
	require.NoError(t, err)
	assert.False(t, task.RegistrationDate.IsZero())
}

func TestTaskService_SetCompletedRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, _ := newTaskService(db)
	ctx := context.Background()

	task, err := svc.Create(ctx, nil, &domain.TaskRequest{
		Title:      "Toggle me",
		ExpiryDate: "2025-12-31",
	})
	require.NoError(t, err)

	done, err := svc.SetCompleted(ctx, task.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	reopened, err := svc.SetCompleted(ctx, task.ID, false)
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
}

func TestTaskService_UpdatePreservesOwnerAndCompletion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc, customerRepo := newTaskService(db)
	ctx := context.Background()

	customer := &domain.Customer{Name: "Acme"}
	require.NoError(t, customerRepo.Create(ctx, customer))

	task, err := svc.Create(ctx, &customer.ID, &domain.TaskRequest{
		Title:      "Original",
		ExpiryDate: "2025-07-01",
	})
	require.NoError(t, err)
	_, err = svc.SetCompleted(ctx, task.ID, true)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, task.ID, &domain.TaskRequest{
		Title:      "Renamed",
		ExpiryDate: "2025-08-01",
		VeryUrgent: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.VeryUrgent)
	assert.True(t, updated.Completed)
	require.NotNil(t, updated.CustomerID)
	assert.Equal(t, customer.ID, *updated.CustomerID)
}
