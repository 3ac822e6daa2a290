package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/service"
	"go.uber.org/zap"
)

// TripHandler handles HTTP requests for business trips
type TripHandler struct {
	tripService *service.TripService
	logger      *zap.Logger
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(tripService *service.TripService, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripService: tripService,
		logger:      logger,
	}
}

// ListTrips godoc
// @Summary List business trips
// @Description Trips newest first, optionally filtered by country, customer or date range
// @Tags Trips
// @Produce json
// @Param country query string false "Filter by visited country"
// @Param customerId query string false "Filter by visited customer"
// @Param from query string false "Trips starting on or after this date (YYYY-MM-DD)"
// @Param to query string false "Trips starting on or before this date (YYYY-MM-DD)"
// @Success 200 {array} domain.BusinessTrip
// @Failure 400 {object} domain.APIError
// @Router /trips [get]
func (h *TripHandler) ListTrips(w http.ResponseWriter, r *http.Request) {
	filter := &domain.TripFilter{
		Country:    r.URL.Query().Get("country"),
		CustomerID: r.URL.Query().Get("customerId"),
		DateFrom:   r.URL.Query().Get("from"),
		DateTo:     r.URL.Query().Get("to"),
	}

	trips, err := h.tripService.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err, "Failed to list trips")
		return
	}
	respondJSON(w, http.StatusOK, trips)
}

// GetTrip godoc
// @Summary Get a business trip
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} domain.BusinessTrip
// @Failure 404 {object} domain.APIError
// @Router /trips/{id} [get]
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trip, err := h.tripService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get trip")
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// CreateTrip godoc
// @Summary Create a business trip
// @Tags Trips
// @Accept json
// @Produce json
// @Param trip body domain.TripRequest true "Trip"
// @Success 201 {object} domain.BusinessTrip
// @Failure 400 {object} domain.APIError
// @Router /trips [post]
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req domain.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	trip, err := h.tripService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create trip")
		return
	}
	respondJSON(w, http.StatusCreated, trip)
}

// UpdateTrip godoc
// @Summary Update a business trip
// @Tags Trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param trip body domain.TripRequest true "Trip"
// @Success 200 {object} domain.BusinessTrip
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /trips/{id} [put]
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	trip, err := h.tripService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update trip")
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// DeleteTrip godoc
// @Summary Delete a business trip
// @Tags Trips
// @Param id path string true "Trip ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /trips/{id} [delete]
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.tripService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete trip")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
