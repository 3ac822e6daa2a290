package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TaskService struct {
	taskRepo     *repository.TaskRepository
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewTaskService(
	taskRepo *repository.TaskRepository,
	customerRepo *repository.CustomerRepository,
	logger *zap.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create adds a task. A nil customerID creates a global task owned by the
// application.
func (s *TaskService) Create(ctx context.Context, customerID *string, req *domain.TaskRequest) (*domain.Task, error) {
	if customerID != nil {
		if _, err := s.customerRepo.GetByID(ctx, *customerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to get customer: %w", err)
		}
	}

	task, err := taskFromRequest(req)
	if err != nil {
		return nil, err
	}
	task.CustomerID = customerID

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		zap.String("task_id", task.ID),
		zap.Bool("global", customerID == nil))

	return task, nil
}

func (s *TaskService) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id string, req *domain.TaskRequest) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	updated, err := taskFromRequest(req)
	if err != nil {
		return nil, err
	}
	task.Title = updated.Title
	task.Description = updated.Description
	task.RegistrationDate = updated.RegistrationDate
	task.ExpiryDate = updated.ExpiryDate
	task.Urgent = updated.Urgent
	task.VeryUrgent = updated.VeryUrgent

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// SetCompleted marks a task done or reopens it
func (s *TaskService) SetCompleted(ctx context.Context, id string, completed bool) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	task.Completed = completed
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) error {
	if _, err := s.taskRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get task: %w", err)
	}
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskService) ListGlobal(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.taskRepo.ListGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list global tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Task, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	tasks, err := s.taskRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func taskFromRequest(req *domain.TaskRequest) (*domain.Task, error) {
	registration, err := parseDate(req.RegistrationDate)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if registration.IsZero() {
		registration = time.Now()
	}
	expiry, err := parseDate(req.ExpiryDate)
	if err != nil {
		return nil, ErrInvalidInput
	}

	return &domain.Task{
		Title:            req.Title,
		Description:      req.Description,
		RegistrationDate: registration,
		ExpiryDate:       expiry,
		Urgent:           req.Urgent,
		VeryUrgent:       req.VeryUrgent,
	}, nil
}
