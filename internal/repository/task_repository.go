package repository

import (
	"context"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error
}

// ListGlobal returns tasks owned by the application rather than a customer
func (r *TaskRepository) ListGlobal(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("customer_id IS NULL").
		Order("created_at DESC, id").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("expiry_date, id").
		Find(&tasks).Error
	return tasks, err
}

// ListOverdue returns incomplete tasks, global and customer-owned, whose
// expiry date has passed
func (r *TaskRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("completed = ? AND expiry_date < ?", false, now).
		Order("expiry_date, id").
		Find(&tasks).Error
	return tasks, err
}
