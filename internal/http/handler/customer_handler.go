package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/service"
	"go.uber.org/zap"
)

// CustomerHandler handles HTTP requests for customers
type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// ListCustomers godoc
// @Summary List customers
// @Description Get paginated list of customers with optional search and filters
// @Tags Customers
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Items per page" default(20)
// @Param search query string false "Search by name"
// @Param type query string false "Filter by type" Enums(Customer, OEM, Agent)
// @Param status query string false "Filter by status" Enums(Active, Prospect)
// @Success 200 {object} domain.PaginatedResponse
// @Failure 400 {object} domain.APIError
// @Failure 500 {object} domain.APIError
// @Router /customers [get]
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}

	custType := r.URL.Query().Get("type")
	if !domain.CustomerType(custType).Valid() {
		respondWithError(w, http.StatusBadRequest, "Invalid type: must be one of Customer, OEM, Agent")
		return
	}
	status := r.URL.Query().Get("status")
	if !domain.CustomerStatus(status).Valid() {
		respondWithError(w, http.StatusBadRequest, "Invalid status: must be one of Active, Prospect")
		return
	}

	customers, total, err := h.customerService.List(r.Context(), page, pageSize, r.URL.Query().Get("search"), custType, status)
	if err != nil {
		h.logger.Error("failed to list customers", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list customers")
		return
	}

	respondJSON(w, http.StatusOK, domain.PaginatedResponse{
		Data:       customers,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

// GetCustomer godoc
// @Summary Get a customer
// @Description Get a customer with all nested collections
// @Tags Customers
// @Produce json
// @Param customerId path string true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId} [get]
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "customerId")

	customer, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get customer")
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// CreateCustomer godoc
// @Summary Create a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customer body domain.CreateCustomerRequest true "Customer"
// @Success 201 {object} domain.Customer
// @Failure 400 {object} domain.APIError
// @Router /customers [post]
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	customer, err := h.customerService.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create customer", zap.Error(err))
		respondServiceError(w, err, "Failed to create customer")
		return
	}
	respondJSON(w, http.StatusCreated, customer)
}

// UpdateCustomer godoc
// @Summary Update a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param customer body domain.UpdateCustomerRequest true "Customer"
// @Success 200 {object} domain.Customer
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId} [put]
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "customerId")

	var req domain.UpdateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	customer, err := h.customerService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update customer")
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

// DeleteCustomer godoc
// @Summary Delete a customer
// @Description Delete a customer and everything it owns
// @Tags Customers
// @Param customerId path string true "Customer ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId} [delete]
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "customerId")

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete customer")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// AddContact godoc
// @Summary Add a contact to a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param contact body domain.CreateContactRequest true "Contact"
// @Success 201 {object} domain.Contact
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/contacts [post]
func (h *CustomerHandler) AddContact(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "customerId")

	var req domain.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	contact, err := h.customerService.AddContact(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to add contact")
		return
	}
	respondJSON(w, http.StatusCreated, contact)
}

// AddNote godoc
// @Summary Add a note to a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param note body domain.CreateNoteRequest true "Note"
// @Success 201 {object} domain.Note
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/notes [post]
func (h *CustomerHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "customerId")

	var req domain.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	note, err := h.customerService.AddNote(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to add note")
		return
	}
	respondJSON(w, http.StatusCreated, note)
}
