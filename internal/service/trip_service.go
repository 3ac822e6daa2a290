package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TripService struct {
	tripRepo *repository.TripRepository
	logger   *zap.Logger
}

func NewTripService(tripRepo *repository.TripRepository, logger *zap.Logger) *TripService {
	return &TripService{
		tripRepo: tripRepo,
		logger:   logger,
	}
}

func (s *TripService) Create(ctx context.Context, req *domain.TripRequest) (*domain.BusinessTrip, error) {
	trip, err := tripFromRequest(req)
	if err != nil {
		return nil, err
	}

	if err := s.tripRepo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	s.logger.Info("business trip created",
		zap.String("trip_id", trip.ID),
		zap.Int("countries", len(trip.CountriesVisited)))

	return trip, nil
}

func (s *TripService) GetByID(ctx context.Context, id string) (*domain.BusinessTrip, error) {
	trip, err := s.tripRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return trip, nil
}

func (s *TripService) Update(ctx context.Context, id string, req *domain.TripRequest) (*domain.BusinessTrip, error) {
	existing, err := s.tripRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	trip, err := tripFromRequest(req)
	if err != nil {
		return nil, err
	}
	trip.BaseModel = existing.BaseModel
	for i := range trip.TodoList {
		trip.TodoList[i].TripID = trip.ID
	}

	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}
	return trip, nil
}

func (s *TripService) Delete(ctx context.Context, id string) error {
	if _, err := s.tripRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get trip: %w", err)
	}
	if err := s.tripRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}

// List returns trips matching the filter. Date bounds are pushed to the
// database; country and customer matching happens here because those
// fields are stored as serialized arrays.
func (s *TripService) List(ctx context.Context, filter *domain.TripFilter) ([]domain.BusinessTrip, error) {
	var from, to *time.Time
	if filter.DateFrom != "" {
		d, err := parseDate(filter.DateFrom)
		if err != nil {
			return nil, ErrInvalidInput
		}
		from = &d
	}
	if filter.DateTo != "" {
		d, err := parseDate(filter.DateTo)
		if err != nil {
			return nil, ErrInvalidInput
		}
		// Inclusive upper bound: trips starting on DateTo still match.
		end := d.AddDate(0, 0, 1)
		to = &end
	}

	trips, err := s.tripRepo.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	if filter.Country == "" && filter.CustomerID == "" {
		return trips, nil
	}

	filtered := make([]domain.BusinessTrip, 0, len(trips))
	for _, trip := range trips {
		if filter.Country != "" && !containsFold(trip.CountriesVisited, filter.Country) {
			continue
		}
		if filter.CustomerID != "" && !contains(trip.CustomersVisited, filter.CustomerID) {
			continue
		}
		filtered = append(filtered, trip)
	}
	return filtered, nil
}

func tripFromRequest(req *domain.TripRequest) (*domain.BusinessTrip, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if end.Before(start) {
		return nil, ErrInvalidInput
	}

	todos := make([]domain.TripTodo, len(req.TodoList))
	for i, todo := range req.TodoList {
		todos[i] = domain.TripTodo{
			Task:      todo.Task,
			Completed: todo.Completed,
		}
	}

	return &domain.BusinessTrip{
		StartDate:        start,
		EndDate:          end,
		CustomersVisited: req.CustomersVisited,
		CountriesVisited: req.CountriesVisited,
		Details:          req.Details,
		TodoList:         todos,
	}, nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
