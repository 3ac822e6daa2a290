package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/importer"
	"github.com/salesdesk/crm-api/internal/mapper"
	"github.com/salesdesk/crm-api/internal/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ImportService runs the spreadsheet import. An import is a full replace
// of the customer and product collections, not a merge; global tasks and
// business trips are untouched.
type ImportService struct {
	customerRepo *repository.CustomerRepository
	productRepo  *repository.ProductRepository
	logger       *zap.Logger
}

func NewImportService(
	customerRepo *repository.CustomerRepository,
	productRepo *repository.ProductRepository,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// Import parses the uploaded workbook and swaps the stored collections
// for its contents. Parse errors are advisory and come back in the
// result; whatever was recovered is still persisted.
func (s *ImportService) Import(ctx context.Context, filename string, r io.Reader) (*domain.ImportResultDTO, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, ErrUnsupportedFile
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		s.logger.Warn("failed to open workbook",
			zap.String("filename", filename),
			zap.Error(err))
		dto := mapper.ToImportResultDTO(0, 0, 0,
			[]string{"Failed to read the file. Please make sure it is a valid Excel file."})
		return &dto, nil
	}
	defer f.Close()

	result := importer.Parse(f, time.Now())

	if err := s.customerRepo.ReplaceAll(ctx, result.Customers); err != nil {
		return nil, fmt.Errorf("failed to store imported customers: %w", err)
	}
	if err := s.productRepo.ReplaceAllFamilies(ctx, result.ProductFamilies); err != nil {
		return nil, fmt.Errorf("failed to store imported products: %w", err)
	}

	productCount := 0
	for _, family := range result.ProductFamilies {
		productCount += len(family.Products)
	}

	s.logger.Info("spreadsheet import completed",
		zap.String("filename", filename),
		zap.Int("customers", len(result.Customers)),
		zap.Int("families", len(result.ProductFamilies)),
		zap.Int("products", productCount),
		zap.Int("errors", len(result.Errors)))

	dto := mapper.ToImportResultDTO(len(result.Customers), len(result.ProductFamilies), productCount, result.Errors)
	return &dto, nil
}
