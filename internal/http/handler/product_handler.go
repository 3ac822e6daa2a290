package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/service"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for product families, products
// and per-customer prices
type ProductHandler struct {
	productService *service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// ListFamilies godoc
// @Summary List product families
// @Tags Products
// @Produce json
// @Success 200 {array} domain.ProductFamily
// @Router /product-families [get]
func (h *ProductHandler) ListFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := h.productService.ListFamilies(r.Context())
	if err != nil {
		h.logger.Error("failed to list product families", zap.Error(err))
		respondWithError(w, http.StatusInternalServerError, "Failed to list product families")
		return
	}
	respondJSON(w, http.StatusOK, families)
}

// GetFamily godoc
// @Summary Get a product family
// @Tags Products
// @Produce json
// @Param id path string true "Family ID"
// @Success 200 {object} domain.ProductFamily
// @Failure 404 {object} domain.APIError
// @Router /product-families/{id} [get]
func (h *ProductHandler) GetFamily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	family, err := h.productService.GetFamilyByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get product family")
		return
	}
	respondJSON(w, http.StatusOK, family)
}

// CreateFamily godoc
// @Summary Create a product family
// @Tags Products
// @Accept json
// @Produce json
// @Param family body domain.FamilyRequest true "Family"
// @Success 201 {object} domain.ProductFamily
// @Failure 400 {object} domain.APIError
// @Router /product-families [post]
func (h *ProductHandler) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req domain.FamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	family, err := h.productService.CreateFamily(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create product family")
		return
	}
	respondJSON(w, http.StatusCreated, family)
}

// UpdateFamily godoc
// @Summary Update a product family
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Family ID"
// @Param family body domain.FamilyRequest true "Family"
// @Success 200 {object} domain.ProductFamily
// @Failure 404 {object} domain.APIError
// @Router /product-families/{id} [put]
func (h *ProductHandler) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.FamilyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	family, err := h.productService.UpdateFamily(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update product family")
		return
	}
	respondJSON(w, http.StatusOK, family)
}

// DeleteFamily godoc
// @Summary Delete a product family and its products
// @Tags Products
// @Param id path string true "Family ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /product-families/{id} [delete]
func (h *ProductHandler) DeleteFamily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.productService.DeleteFamily(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete product family")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// CreateProduct godoc
// @Summary Add a product to a family
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Family ID"
// @Param product body domain.ProductRequest true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /product-families/{id}/products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "id")

	var req domain.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), familyID, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create product")
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

// GetProduct godoc
// @Summary Get a product
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.APIError
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.productService.GetProductByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// UpdateProduct godoc
// @Summary Update a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body domain.ProductRequest true "Product"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.APIError
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags Products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete product")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ListCustomerPrices godoc
// @Summary List per-customer prices of a product
// @Description Prices referencing deleted customers carry the name "Unknown"
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} domain.CustomerPriceDTO
// @Failure 404 {object} domain.APIError
// @Router /products/{id}/prices [get]
func (h *ProductHandler) ListCustomerPrices(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	prices, err := h.productService.ListCustomerPrices(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to list customer prices")
		return
	}
	respondJSON(w, http.StatusOK, prices)
}

// SetCustomerPrice godoc
// @Summary Set the price a customer pays for a product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param price body domain.CustomerPriceRequest true "Price"
// @Success 200 {object} domain.CustomerPriceDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /products/{id}/prices [put]
func (h *ProductHandler) SetCustomerPrice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.CustomerPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	price, err := h.productService.SetCustomerPrice(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to set customer price")
		return
	}
	respondJSON(w, http.StatusOK, price)
}

// DeleteCustomerPrice godoc
// @Summary Remove a customer's price for a product
// @Tags Products
// @Param id path string true "Product ID"
// @Param customerId path string true "Customer ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /products/{id}/prices/{customerId} [delete]
func (h *ProductHandler) DeleteCustomerPrice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	customerID := chi.URLParam(r, "customerId")

	if err := h.productService.DeleteCustomerPrice(r.Context(), id, customerID); err != nil {
		respondServiceError(w, err, "Failed to delete customer price")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
