package handler

import (
	"net/http"

	"github.com/salesdesk/crm-api/internal/service"
	"go.uber.org/zap"
)

// ImportHandler accepts price-list workbook uploads
type ImportHandler struct {
	importService *service.ImportService
	maxUploadSize int64
	logger        *zap.Logger
}

// NewImportHandler creates a new ImportHandler. maxUploadSize is in bytes.
func NewImportHandler(importService *service.ImportService, maxUploadSize int64, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

// Import godoc
// @Summary Import a price-list workbook
// @Description Replaces the customer and product collections with the workbook contents. Global tasks and trips are untouched. Parse errors are advisory; recovered data is still imported.
// @Tags Import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Excel workbook (.xlsx or .xls)"
// @Success 200 {object} domain.ImportResultDTO
// @Failure 400 {object} domain.APIError
// @Router /import [post]
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "File too large or invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	result, err := h.importService.Import(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.Error("import failed", zap.String("filename", header.Filename), zap.Error(err))
		respondServiceError(w, err, "Import failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}
