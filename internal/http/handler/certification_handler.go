package handler

import (
	"net/http"
	"strconv"

	"github.com/salesdesk/crm-api/internal/service"
	"go.uber.org/zap"
)

// CertificationHandler serves the certificate-of-origin price calculator
type CertificationHandler struct {
	certService *service.CertificationService
	logger      *zap.Logger
}

// NewCertificationHandler creates a new CertificationHandler
func NewCertificationHandler(certService *service.CertificationService, logger *zap.Logger) *CertificationHandler {
	return &CertificationHandler{
		certService: certService,
		logger:      logger,
	}
}

// GetPrice godoc
// @Summary Price a certificate of origin
// @Tags Certification
// @Produce json
// @Param invoiceValue query number true "Invoice value"
// @Success 200 {object} domain.CertificationPriceDTO
// @Failure 400 {object} domain.APIError
// @Router /certification/price [get]
func (h *CertificationHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("invoiceValue")
	if raw == "" {
		respondWithError(w, http.StatusBadRequest, "invoiceValue is required")
		return
	}
	invoiceValue, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invoiceValue must be a number")
		return
	}

	price, err := h.certService.Price(invoiceValue)
	if err != nil {
		respondServiceError(w, err, "Failed to price certification")
		return
	}
	respondJSON(w, http.StatusOK, price)
}
