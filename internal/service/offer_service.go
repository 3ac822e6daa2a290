package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OfferService struct {
	offerRepo    *repository.OfferRepository
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewOfferService(
	offerRepo *repository.OfferRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *OfferService {
	return &OfferService{
		offerRepo:    offerRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (s *OfferService) Create(ctx context.Context, customerID string, req *domain.OfferRequest) (*domain.Offer, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidInput
	}

	offer := &domain.Offer{
		CustomerID:  customerID,
		Date:        date,
		FinalUser:   req.FinalUser,
		ProjectName: req.ProjectName,
		OfferName:   req.OfferName,
		Amount:      req.Amount,
		OCName:      req.OCName,
		Paid:        req.Paid,
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	s.logger.Info("offer created",
		zap.String("offer_id", offer.ID),
		zap.String("customer_id", customerID))

	return offer, nil
}

func (s *OfferService) GetByID(ctx context.Context, customerID, id string) (*domain.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, customerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}
	return offer, nil
}

func (s *OfferService) Update(ctx context.Context, customerID, id string, req *domain.OfferRequest) (*domain.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, customerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidInput
	}

	offer.Date = date
	offer.FinalUser = req.FinalUser
	offer.ProjectName = req.ProjectName
	offer.OfferName = req.OfferName
	offer.Amount = req.Amount
	offer.OCName = req.OCName
	offer.Paid = req.Paid

	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}
	return offer, nil
}

func (s *OfferService) Delete(ctx context.Context, customerID, id string) error {
	if _, err := s.offerRepo.GetByID(ctx, customerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get offer: %w", err)
	}
	if err := s.offerRepo.Delete(ctx, customerID, id); err != nil {
		return fmt.Errorf("failed to delete offer: %w", err)
	}
	return nil
}

func (s *OfferService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Offer, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	offers, err := s.offerRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

// SetOrdered flips the marked-as-ordered flag. The offer record stays in
// place; the dashboard reclassifies it into the orders view while the
// flag is set.
func (s *OfferService) SetOrdered(ctx context.Context, customerID, id string, ordered bool) (*domain.Offer, error) {
	offer, err := s.offerRepo.GetByID(ctx, customerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get offer: %w", err)
	}

	offer.MarkedAsOrdered = ordered
	if err := s.offerRepo.Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}

	s.logger.Info("offer ordered flag changed",
		zap.String("offer_id", offer.ID),
		zap.Bool("marked_as_ordered", ordered))

	return offer, nil
}
