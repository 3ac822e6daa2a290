package service

import (
	"context"
	"fmt"
	"time"

	"github.com/salesdesk/crm-api/internal/dashboard"
	"github.com/salesdesk/crm-api/internal/repository"
	"go.uber.org/zap"
)

type DashboardService struct {
	customerRepo *repository.CustomerRepository
	taskRepo     *repository.TaskRepository
	logger       *zap.Logger
}

func NewDashboardService(
	customerRepo *repository.CustomerRepository,
	taskRepo *repository.TaskRepository,
	logger *zap.Logger,
) *DashboardService {
	return &DashboardService{
		customerRepo: customerRepo,
		taskRepo:     taskRepo,
		logger:       logger,
	}
}

// Snapshot builds the dashboard view for the current wall-clock time
func (s *DashboardService) Snapshot(ctx context.Context) (*dashboard.Snapshot, error) {
	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	globalTasks, err := s.taskRepo.ListGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load global tasks: %w", err)
	}
	return dashboard.Aggregate(customers, globalTasks, time.Now()), nil
}

// Orders builds the filtered, sortable order table
func (s *DashboardService) Orders(ctx context.Context, sortBy dashboard.OrderSortKey, direction dashboard.SortDirection, filter dashboard.PaidFilter) (*dashboard.OrderTable, error) {
	customers, err := s.customerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	return dashboard.Orders(customers, sortBy, direction, filter), nil
}
