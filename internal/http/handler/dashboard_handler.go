package handler

import (
	"net/http"

	"github.com/salesdesk/crm-api/internal/dashboard"
	"github.com/salesdesk/crm-api/internal/service"
	"go.uber.org/zap"
)

// DashboardHandler serves the aggregated dashboard views
type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetSnapshot godoc
// @Summary Dashboard snapshot
// @Description Monthly counters, the ten most recent offers and orders, and the upcoming task queue
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dashboard.Snapshot
// @Failure 500 {object} domain.APIError
// @Router /dashboard [get]
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.dashboardService.Snapshot(r.Context())
	if err != nil {
		h.logger.Error("failed to build dashboard snapshot", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build dashboard")
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// GetOrders godoc
// @Summary Order table
// @Description Merged view of orders and offers flagged as ordered, filterable by payment status
// @Tags Dashboard
// @Produce json
// @Param sortBy query string false "Sort column" Enums(date, amount, customer) default(date)
// @Param direction query string false "Sort direction" Enums(asc, desc) default(desc)
// @Param paid query string false "Payment filter" Enums(all, paid, unpaid) default(all)
// @Success 200 {object} dashboard.OrderTable
// @Failure 400 {object} domain.APIError
// @Router /dashboard/orders [get]
func (h *DashboardHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	sortBy := dashboard.SortByDate
	if s := r.URL.Query().Get("sortBy"); s != "" {
		switch dashboard.OrderSortKey(s) {
		case dashboard.SortByDate, dashboard.SortByAmount, dashboard.SortByCustomer:
			sortBy = dashboard.OrderSortKey(s)
		default:
			respondWithError(w, http.StatusBadRequest, "Invalid sortBy: must be one of date, amount, customer")
			return
		}
	}

	direction := dashboard.SortDesc
	if s := r.URL.Query().Get("direction"); s != "" {
		switch dashboard.SortDirection(s) {
		case dashboard.SortAsc, dashboard.SortDesc:
			direction = dashboard.SortDirection(s)
		default:
			respondWithError(w, http.StatusBadRequest, "Invalid direction: must be asc or desc")
			return
		}
	}

	filter := dashboard.PaidAll
	if s := r.URL.Query().Get("paid"); s != "" {
		switch dashboard.PaidFilter(s) {
		case dashboard.PaidAll, dashboard.PaidOnly, dashboard.UnpaidOnly:
			filter = dashboard.PaidFilter(s)
		default:
			respondWithError(w, http.StatusBadRequest, "Invalid paid: must be one of all, paid, unpaid")
			return
		}
	}

	table, err := h.dashboardService.Orders(r.Context(), sortBy, direction, filter)
	if err != nil {
		h.logger.Error("failed to build order table", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to build order table")
		return
	}
	respondJSON(w, http.StatusOK, table)
}
