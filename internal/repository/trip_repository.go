package repository

import (
	"context"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
	"gorm.io/gorm"
)

type TripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) *TripRepository {
	return &TripRepository{db: db}
}

func (r *TripRepository) Create(ctx context.Context, trip *domain.BusinessTrip) error {
	return r.db.WithContext(ctx).Create(trip).Error
}

func (r *TripRepository) GetByID(ctx context.Context, id string) (*domain.BusinessTrip, error) {
	var trip domain.BusinessTrip
	err := r.db.WithContext(ctx).
		Preload("TodoList").
		First(&trip, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (r *TripRepository) Update(ctx context.Context, trip *domain.BusinessTrip) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Replace the checklist wholesale; entries carry no state worth
		// diffing.
		if err := tx.Where("trip_id = ?", trip.ID).Delete(&domain.TripTodo{}).Error; err != nil {
			return err
		}
		return tx.Save(trip).Error
	})
}

func (r *TripRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Select("TodoList").
		Delete(&domain.BusinessTrip{BaseModel: domain.BaseModel{ID: id}}).Error
}

// List returns trips newest first. Country and customer filters match
// against the serialized arrays, so they are applied in memory after the
// date filters narrow the set.
func (r *TripRepository) List(ctx context.Context, from, to *time.Time) ([]domain.BusinessTrip, error) {
	query := r.db.WithContext(ctx).Preload("TodoList")
	if from != nil {
		query = query.Where("start_date >= ?", *from)
	}
	if to != nil {
		query = query.Where("start_date < ?", *to)
	}

	var trips []domain.BusinessTrip
	err := query.Order("start_date DESC, id").Find(&trips).Error
	return trips, err
}
