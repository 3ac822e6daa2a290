package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/service"
	"go.uber.org/zap"
)

// OfferHandler handles HTTP requests for customer offers
type OfferHandler struct {
	offerService *service.OfferService
	logger       *zap.Logger
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService *service.OfferService, logger *zap.Logger) *OfferHandler {
	return &OfferHandler{
		offerService: offerService,
		logger:       logger,
	}
}

// ListOffers godoc
// @Summary List offers of a customer
// @Tags Offers
// @Produce json
// @Param customerId path string true "Customer ID"
// @Success 200 {array} domain.Offer
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/offers [get]
func (h *OfferHandler) ListOffers(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	offers, err := h.offerService.ListByCustomer(r.Context(), customerID)
	if err != nil {
		respondServiceError(w, err, "Failed to list offers")
		return
	}
	respondJSON(w, http.StatusOK, offers)
}

// GetOffer godoc
// @Summary Get an offer
// @Tags Offers
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param id path string true "Offer ID"
// @Success 200 {object} domain.Offer
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/offers/{id} [get]
func (h *OfferHandler) GetOffer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	id := chi.URLParam(r, "id")

	offer, err := h.offerService.GetByID(r.Context(), customerID, id)
	if err != nil {
		respondServiceError(w, err, "Failed to get offer")
		return
	}
	respondJSON(w, http.StatusOK, offer)
}

// CreateOffer godoc
// @Summary Create an offer for a customer
// @Tags Offers
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param offer body domain.OfferRequest true "Offer"
// @Success 201 {object} domain.Offer
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/offers [post]
func (h *OfferHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	var req domain.OfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	offer, err := h.offerService.Create(r.Context(), customerID, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create offer")
		return
	}
	respondJSON(w, http.StatusCreated, offer)
}

// UpdateOffer godoc
// @Summary Update an offer
// @Tags Offers
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param id path string true "Offer ID"
// @Param offer body domain.OfferRequest true "Offer"
// @Success 200 {object} domain.Offer
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/offers/{id} [put]
func (h *OfferHandler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	id := chi.URLParam(r, "id")

	var req domain.OfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	offer, err := h.offerService.Update(r.Context(), customerID, id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update offer")
		return
	}
	respondJSON(w, http.StatusOK, offer)
}

// DeleteOffer godoc
// @Summary Delete an offer
// @Tags Offers
// @Param customerId path string true "Customer ID"
// @Param id path string true "Offer ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/offers/{id} [delete]
func (h *OfferHandler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	id := chi.URLParam(r, "id")

	if err := h.offerService.Delete(r.Context(), customerID, id); err != nil {
		respondServiceError(w, err, "Failed to delete offer")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// MarkOrdered godoc
// @Summary Flip the marked-as-ordered flag of an offer
// @Description The offer stays in place; the dashboard shows it as an order while the flag is set
// @Tags Offers
// @Accept json
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param id path string true "Offer ID"
// @Param body body object true "Flag" SchemaExample({\"markedAsOrdered\": true})
// @Success 200 {object} domain.Offer
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/offers/{id}/mark-ordered [put]
func (h *OfferHandler) MarkOrdered(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	id := chi.URLParam(r, "id")

	var req struct {
		MarkedAsOrdered bool `json:"markedAsOrdered"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	offer, err := h.offerService.SetOrdered(r.Context(), customerID, id, req.MarkedAsOrdered)
	if err != nil {
		respondServiceError(w, err, "Failed to update offer")
		return
	}
	respondJSON(w, http.StatusOK, offer)
}
