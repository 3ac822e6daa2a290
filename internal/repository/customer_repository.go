package repository

import (
	"context"
	"strings"

	"github.com/salesdesk/crm-api/internal/domain"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByID loads a customer with every nested collection
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).
		Preload("Contacts").
		Preload("Notes").
		Preload("Offers").
		Preload("Offers.Documents").
		Preload("Orders").
		Preload("Orders.Documents").
		Preload("Documents").
		Preload("Tasks").
		First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *CustomerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Select(
		"Contacts", "Notes", "Offers", "Orders", "Documents", "Tasks",
	).Delete(&domain.Customer{BaseModel: domain.BaseModel{ID: id}}).Error
}

// List returns a page of customers with optional name search and
// type/status filters
func (r *CustomerRepository) List(ctx context.Context, page, pageSize int, search string, custType, status string) ([]domain.Customer, int64, error) {
	var customers []domain.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Customer{})

	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}
	if custType != "" {
		query = query.Where("type = ?", custType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Contacts").
		Preload("Offers").
		Preload("Orders").
		Preload("Tasks").
		Offset(offset).Limit(pageSize).Order("created_at DESC, id").Find(&customers).Error

	return customers, total, err
}

// ListAll loads every customer with the collections the dashboard reads
func (r *CustomerRepository) ListAll(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := r.db.WithContext(ctx).
		Preload("Offers").
		Preload("Orders").
		Preload("Tasks").
		Order("created_at, id").
		Find(&customers).Error
	return customers, err
}

// NameMap returns an id-to-name index used to resolve weak references
func (r *CustomerRepository) NameMap(ctx context.Context) (map[string]string, error) {
	var rows []struct {
		ID   string
		Name string
	}
	if err := r.db.WithContext(ctx).Model(&domain.Customer{}).Select("id", "name").Scan(&rows).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// ReplaceAll atomically swaps the whole customer collection for the
// imported one. Used by the spreadsheet import, which is a full replace,
// not a merge.
func (r *CustomerRepository) ReplaceAll(ctx context.Context, customers []domain.Customer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&domain.Contact{}, &domain.Note{}, &domain.Attachment{}, &domain.Offer{},
			&domain.Order{}, &domain.Document{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		// Global tasks survive an import; only customer-owned ones go.
		if err := tx.Where("customer_id IS NOT NULL").Delete(&domain.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&domain.Customer{}).Error; err != nil {
			return err
		}
		if len(customers) == 0 {
			return nil
		}
		return tx.Create(&customers).Error
	})
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).Count(&count).Error
	return count, err
}
