package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/repository"
	"github.com/salesdesk/crm-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileService stores uploaded files and records them against customers,
// offers and orders.
type FileService struct {
	store        storage.Storage
	customerRepo *repository.CustomerRepository
	offerRepo    *repository.OfferRepository
	orderRepo    *repository.OrderRepository
	db           *gorm.DB
	logger       *zap.Logger
}

func NewFileService(
	store storage.Storage,
	customerRepo *repository.CustomerRepository,
	offerRepo *repository.OfferRepository,
	orderRepo *repository.OrderRepository,
	db *gorm.DB,
	logger *zap.Logger,
) *FileService {
	return &FileService{
		store:        store,
		customerRepo: customerRepo,
		offerRepo:    offerRepo,
		orderRepo:    orderRepo,
		db:           db,
		logger:       logger,
	}
}

// UploadCustomerDocument stores a file and records it as a document of
// the customer
func (s *FileService) UploadCustomerDocument(ctx context.Context, customerID, filename, contentType string, data io.Reader) (*domain.Document, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	path, size, err := s.store.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	doc := &domain.Document{
		CustomerID:  customerID,
		Name:        filename,
		ContentType: contentType,
		Size:        size,
		URL:         path,
		UploadedAt:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(doc).Error; err != nil {
		s.store.Delete(ctx, path)
		return nil, fmt.Errorf("failed to record document: %w", err)
	}

	s.logger.Info("document uploaded",
		zap.String("customer_id", customerID),
		zap.String("document_id", doc.ID),
		zap.Int64("size", size))

	return doc, nil
}

// ListDocuments returns a customer's documents, newest upload first
func (s *FileService) ListDocuments(ctx context.Context, customerID string) ([]domain.Document, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	var docs []domain.Document
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("uploaded_at DESC, id").
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

// DownloadDocument streams a stored customer document
func (s *FileService) DownloadDocument(ctx context.Context, customerID, documentID string) (*domain.Document, io.ReadCloser, error) {
	var doc domain.Document
	err := s.db.WithContext(ctx).
		First(&doc, "id = ? AND customer_id = ?", documentID, customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get document: %w", err)
	}

	reader, err := s.store.Download(ctx, doc.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return &doc, reader, nil
}

// DeleteDocument removes a customer document and its stored file
func (s *FileService) DeleteDocument(ctx context.Context, customerID, documentID string) error {
	var doc domain.Document
	err := s.db.WithContext(ctx).
		First(&doc, "id = ? AND customer_id = ?", documentID, customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get document: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&doc).Error; err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if err := s.store.Delete(ctx, doc.URL); err != nil {
		s.logger.Warn("failed to delete stored file",
			zap.String("path", doc.URL),
			zap.Error(err))
	}
	return nil
}

// UploadOfferAttachment stores a file and records it against an offer
func (s *FileService) UploadOfferAttachment(ctx context.Context, customerID, offerID, filename, contentType string, data io.Reader) (*domain.Attachment, error) {
	if _, err := s.offerRepo.GetByID(ctx, customerID, offerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return s.uploadAttachment(ctx, offerID, filename, contentType, data)
}

// UploadOrderAttachment stores a file and records it against an order
func (s *FileService) UploadOrderAttachment(ctx context.Context, customerID, orderID, filename, contentType string, data io.Reader) (*domain.Attachment, error) {
	if _, err := s.orderRepo.GetByID(ctx, customerID, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return s.uploadAttachment(ctx, orderID, filename, contentType, data)
}

func (s *FileService) uploadAttachment(ctx context.Context, ownerID, filename, contentType string, data io.Reader) (*domain.Attachment, error) {
	path, size, err := s.store.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	att := &domain.Attachment{
		OwnerID:     ownerID,
		Name:        filename,
		ContentType: contentType,
		Size:        size,
		URL:         path,
	}
	if err := s.db.WithContext(ctx).Create(att).Error; err != nil {
		s.store.Delete(ctx, path)
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}
	return att, nil
}
