package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/service"
	"go.uber.org/zap"
)

// OrderHandler handles HTTP requests for customer orders
type OrderHandler struct {
	orderService *service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// ListOrders godoc
// @Summary List orders of a customer
// @Tags Orders
// @Produce json
// @Param customerId path string true "Customer ID"
// @Success 200 {array} domain.Order
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/orders [get]
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	orders, err := h.orderService.ListByCustomer(r.Context(), customerID)
	if err != nil {
		respondServiceError(w, err, "Failed to list orders")
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// GetOrder godoc
// @Summary Get an order
// @Tags Orders
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/orders/{id} [get]
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	id := chi.URLParam(r, "id")

	order, err := h.orderService.GetByID(r.Context(), customerID, id)
	if err != nil {
		respondServiceError(w, err, "Failed to get order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// CreateOrder godoc
// @Summary Create an order for a customer
// @Tags Orders
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param order body domain.OrderRequest true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/orders [post]
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Create(r.Context(), customerID, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create order")
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// UpdateOrder godoc
// @Summary Update an order
// @Tags Orders
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param id path string true "Order ID"
// @Param order body domain.OrderRequest true "Order"
// @Success 200 {object} domain.Order
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/orders/{id} [put]
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	id := chi.URLParam(r, "id")

	var req domain.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Update(r.Context(), customerID, id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update order")
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// DeleteOrder godoc
// @Summary Delete an order
// @Tags Orders
// @Param customerId path string true "Customer ID"
// @Param id path string true "Order ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	id := chi.URLParam(r, "id")

	if err := h.orderService.Delete(r.Context(), customerID, id); err != nil {
		respondServiceError(w, err, "Failed to delete order")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
