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

func newTripService(db *gorm.DB) *service.TripService {
	return service.NewTripService(repository.NewTripRepository(db), zap.NewNop())
}

func TestTripService_CreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTripService(db)
	ctx := context.Background()

	trip, err := svc.Create(ctx, &domain.TripRequest{
		StartDate:        "2025-03-10",
		EndDate:          "2025-03-14",
		CountriesVisited: []string{"UAE", "Qatar"},
		CustomersVisited: []string{"customer-1"},
		Details:          "Spring tour",
		TodoList: []domain.TripTodoRequest{
			{Task: "Book flights"},
			{Task: "Print brochures", Completed: true},
		},
	})
	require.NoError(t, err)

	found, err := svc.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", found.StartDate.Format("2006-01-02"))
	assert.Equal(t, []string{"UAE", "Qatar"}, found.CountriesVisited)
	require.Len(t, found.TodoList, 2)
	assert.True(t, found.TodoList[1].Completed)
}

func TestTripService_EndBeforeStartRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTripService(db)

	_, err := svc.Create(context.Background(), &domain.TripRequest{
		StartDate: "2025-03-14",
		EndDate:   "2025-03-10",
	})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestTripService_UpdateReplacesTodoList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTripService(db)
	ctx := context.Background()

	trip, err := svc.Create(ctx, &domain.TripRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-14",
		TodoList: []domain.TripTodoRequest{
			{Task: "Old item"},
		},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, trip.ID, &domain.TripRequest{
		StartDate: "2025-03-11",
		EndDate:   "2025-03-15",
		TodoList: []domain.TripTodoRequest{
			{Task: "New item one"},
			{Task: "New item two"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, trip.ID, updated.ID)

	found, err := svc.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, found.TodoList, 2)
	assert.Equal(t, "New item one", found.TodoList[0].Task)

	// No orphaned rows from the replaced list.
	var count int64
	require.NoError(t, db.Model(&domain.TripTodo{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestTripService_ListFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTripService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.TripRequest{
		StartDate:        "2025-01-05",
		EndDate:          "2025-01-10",
		CountriesVisited: []string{"UAE"},
		CustomersVisited: []string{"customer-1"},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.TripRequest{
		StartDate:        "2025-02-20",
		EndDate:          "2025-02-25",
		CountriesVisited: []string{"Qatar"},
		CustomersVisited: []string{"customer-2"},
	})
	require.NoError(t, err)

	t.Run("no filter returns newest first", func(t *testing.T) {
		trips, err := svc.List(ctx, &domain.TripFilter{})
		require.NoError(t, err)
		require.Len(t, trips, 2)
		assert.Equal(t, "2025-02-20", trips[0].StartDate.Format("2006-01-02"))
	})

	t.Run("country match is case-insensitive", func(t *testing.T) {
		trips, err := svc.List(ctx, &domain.TripFilter{Country: "uae"})
		require.NoError(t, err)
		require.Len(t, trips, 1)
		assert.Equal(t, []string{"UAE"}, trips[0].CountriesVisited)
	})

	t.Run("customer filter", func(t *testing.T) {
		trips, err := svc.List(ctx, &domain.TripFilter{CustomerID: "customer-2"})
		require.NoError(t, err)
		require.Len(t, trips, 1)
	})

	t.Run("date upper bound is inclusive", func(t *testing.T) {
		trips, err := svc.List(ctx, &domain.TripFilter{DateFrom: "2025-01-01", DateTo: "2025-01-05"})
		require.NoError(t, err)
		require.Len(t, trips, 1)
		assert.Equal(t, "2025-01-05", trips[0].StartDate.Format("2006-01-02"))
	})

	t.Run("invalid date rejected", func(t *testing.T) {
		_, err := svc.List(ctx, &domain.TripFilter{DateFrom: "05/01/2025"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestTripService_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := newTripService(db)
	ctx := context.Background()

	trip, err := svc.Create(ctx, &domain.TripRequest{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-14",
		TodoList: []domain.TripTodoRequest{
			{Task: "Item"},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, trip.ID))
	_, err = svc.GetByID(ctx, trip.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&domain.TripTodo{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}
