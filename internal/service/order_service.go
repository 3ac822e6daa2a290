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

type OrderService struct {
	orderRepo    *repository.OrderRepository
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (s *OrderService) Create(ctx context.Context, customerID string, req *domain.OrderRequest) (*domain.Order, error) {
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

	order := &domain.Order{
		CustomerID:  customerID,
		Date:        date,
		FinalUser:   req.FinalUser,
		ProjectName: req.ProjectName,
		OfferName:   req.OfferName,
		Amount:      req.Amount,
		OCName:      req.OCName,
		Paid:        req.Paid,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("customer_id", customerID))

	return order, nil
}

func (s *OrderService) GetByID(ctx context.Context, customerID, id string) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, customerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Update(ctx context.Context, customerID, id string, req *domain.OrderRequest) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, customerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidInput
	}

	order.Date = date
	order.FinalUser = req.FinalUser
	order.ProjectName = req.ProjectName
	order.OfferName = req.OfferName
	order.Amount = req.Amount
	order.OCName = req.OCName
	order.Paid = req.Paid

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, customerID, id string) error {
	if _, err := s.orderRepo.GetByID(ctx, customerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get order: %w", err)
	}
	if err := s.orderRepo.Delete(ctx, customerID, id); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	orders, err := s.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}
