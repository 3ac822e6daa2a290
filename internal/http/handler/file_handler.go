package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/salesdesk/crm-api/internal/service"
	"go.uber.org/zap"
)

// FileHandler handles document and attachment uploads
type FileHandler struct {
	fileService   *service.FileService
	maxUploadSize int64
	logger        *zap.Logger
}

// NewFileHandler creates a new FileHandler. maxUploadSize is in bytes.
func NewFileHandler(fileService *service.FileService, maxUploadSize int64, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService:   fileService,
		maxUploadSize: maxUploadSize,
		logger:        logger,
	}
}

func (h *FileHandler) formFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		respondWithError(w, http.StatusBadRequest, "File too large or invalid multipart form")
		return nil, "", "", false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Missing file field")
		return nil, "", "", false
	}
	contentType := header.Header.Get("Content-Type")
	return file, header.Filename, contentType, true
}

// UploadDocument godoc
// @Summary Upload a document for a customer
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param file formData file true "Document"
// @Success 201 {object} domain.Document
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/documents [post]
func (h *FileHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	file, filename, contentType, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	doc, err := h.fileService.UploadCustomerDocument(r.Context(), customerID, filename, contentType, file)
	if err != nil {
		respondServiceError(w, err, "Failed to upload document")
		return
	}
	respondJSON(w, http.StatusCreated, doc)
}

// ListDocuments godoc
// @Summary List a customer's documents
// @Tags Files
// @Produce json
// @Param customerId path string true "Customer ID"
// @Success 200 {array} domain.Document
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/documents [get]
func (h *FileHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")

	docs, err := h.fileService.ListDocuments(r.Context(), customerID)
	if err != nil {
		respondServiceError(w, err, "Failed to list documents")
		return
	}
	respondJSON(w, http.StatusOK, docs)
}

// DownloadDocument godoc
// @Summary Download a customer document
// @Tags Files
// @Produce octet-stream
// @Param customerId path string true "Customer ID"
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/documents/{id} [get]
func (h *FileHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	id := chi.URLParam(r, "id")

	doc, reader, err := h.fileService.DownloadDocument(r.Context(), customerID, id)
	if err != nil {
		respondServiceError(w, err, "Failed to download document")
		return
	}
	defer reader.Close()

	if doc.ContentType != "" {
		w.Header().Set("Content-Type", doc.ContentType)
	} else {
		w.Header().Set("Content-Type", "application/octet-stream")
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Name))
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("failed to stream document", zap.String("document_id", id), zap.Error(err))
	}
}

// DeleteDocument godoc
// @Summary Delete a customer document
// @Tags Files
// @Param customerId path string true "Customer ID"
// @Param id path string true "Document ID"
// @Success 204
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/documents/{id} [delete]
func (h *FileHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	id := chi.URLParam(r, "id")

	if err := h.fileService.DeleteDocument(r.Context(), customerID, id); err != nil {
		respondServiceError(w, err, "Failed to delete document")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// UploadOfferAttachment godoc
// @Summary Attach a file to an offer
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param id path string true "Offer ID"
// @Param file formData file true "Attachment"
// @Success 201 {object} domain.Attachment
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/offers/{id}/documents [post]
func (h *FileHandler) UploadOfferAttachment(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	offerID := chi.URLParam(r, "id")

	file, filename, contentType, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	att, err := h.fileService.UploadOfferAttachment(r.Context(), customerID, offerID, filename, contentType, file)
	if err != nil {
		respondServiceError(w, err, "Failed to upload attachment")
		return
	}
	respondJSON(w, http.StatusCreated, att)
}

// UploadOrderAttachment godoc
// @Summary Attach a file to an order
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param customerId path string true "Customer ID"
// @Param id path string true "Order ID"
// @Param file formData file true "Attachment"
// @Success 201 {object} domain.Attachment
// @Failure 404 {object} domain.APIError
// @Router /customers/{customerId}/orders/{id}/documents [post]
func (h *FileHandler) UploadOrderAttachment(w http.ResponseWriter, r *http.Request) {
	customerID := chi.URLParam(r, "customerId")
	orderID := chi.URLParam(r, "id")

	file, filename, contentType, ok := h.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	att, err := h.fileService.UploadOrderAttachment(r.Context(), customerID, orderID, filename, contentType, file)
	if err != nil {
		respondServiceError(w, err, "Failed to upload attachment")
		return
	}
	respondJSON(w, http.StatusCreated, att)
}
