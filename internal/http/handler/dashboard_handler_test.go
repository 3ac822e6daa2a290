package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/salesdesk/crm-api/internal/dashboard"
	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/http/handler"
	"github.com/salesdesk/crm-api/internal/repository"
	"github.com/salesdesk/crm-api/internal/service"
	"github.com/salesdesk/crm-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newDashboardHandler(t *testing.T) (*handler.DashboardHandler, *repository.CustomerRepository) {
	db := testutil.SetupTestDB(t)
	customerRepo := repository.NewCustomerRepository(db)
	svc := service.NewDashboardService(customerRepo, repository.NewTaskRepository(db), zap.NewNop())
	return handler.NewDashboardHandler(svc, zap.NewNop()), customerRepo
}

func TestDashboardHandler_GetSnapshot(t *testing.T) {
	h, customerRepo := newDashboardHandler(t)

	require.NoError(t, customerRepo.Create(context.Background(), &domain.Customer{
		Name: "Acme",
		Orders: []domain.Order{
			{Date: time.Now(), FinalUser: "User", ProjectName: "P", Amount: 500},
		},
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	h.GetSnapshot(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var snap dashboard.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, 1, snap.OrdersThisMonth)
	assert.Equal(t, 500.0, snap.OrderAmountThisMonth)
	require.Len(t, snap.LastOrders, 1)
	assert.Equal(t, "Acme", snap.LastOrders[0].CustomerName)
}

func TestDashboardHandler_GetOrdersRejectsBadParams(t *testing.T) {
	h, _ := newDashboardHandler(t)

	cases := []struct {
		name  string
		query string
	}{
		{"bad sortBy", "?sortBy=name"},
		{"bad direction", "?direction=up"},
		{"bad paid filter", "?paid=maybe"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard/orders"+tc.query, nil)
			rec := httptest.NewRecorder()
			h.GetOrders(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestDashboardHandler_GetOrdersDefaults(t *testing.T) {
	h, customerRepo := newDashboardHandler(t)

	require.NoError(t, customerRepo.Create(context.Background(), &domain.Customer{
		Name: "Acme",
		Orders: []domain.Order{
			{Date: time.Now().AddDate(0, 0, -1), FinalUser: "User", ProjectName: "Old", Amount: 100},
			{Date: time.Now(), FinalUser: "User", ProjectName: "New", Amount: 200},
		},
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard/orders", nil)
	rec := httptest.NewRecorder()
	h.GetOrders(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var table dashboard.OrderTable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	require.Len(t, table.Orders, 2)
	assert.Equal(t, "New", table.Orders[0].ProjectName)
	assert.Equal(t, 300.0, table.TotalAmount)
}
