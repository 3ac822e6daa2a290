package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salesdesk/crm-api/internal/domain"
	"github.com/salesdesk/crm-api/internal/mapper"
	"github.com/salesdesk/crm-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CustomerService struct {
	customerRepo *repository.CustomerRepository
	logger       *zap.Logger
}

func NewCustomerService(customerRepo *repository.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

func (s *CustomerService) Create(ctx context.Context, req *domain.CreateCustomerRequest) (*domain.Customer, error) {
	now := time.Now()
	customer := &domain.Customer{
		Name:         req.Name,
		Type:         domain.CustomerType(req.Type),
		Status:       domain.CustomerStatus(req.Status),
		Email:        req.Email,
		Phone:        req.Phone,
		Street:       req.Street,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Country:      domain.Country(req.Country),
		PaymentTerms: req.PaymentTerms,
		LastContact:  now,
	}

	if customer.Type == domain.CustomerTypeUnspecified {
		customer.Type = domain.CustomerTypeCustomer
	}
	if customer.Status == domain.CustomerStatusUnspecified {
		customer.Status = domain.CustomerStatusActive
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	s.logger.Info("customer created",
		zap.String("customer_id", customer.ID),
		zap.String("name", customer.Name))

	return customer, nil
}

func (s *CustomerService) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id string, req *domain.UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	customer.Name = req.Name
	customer.Type = domain.CustomerType(req.Type)
	customer.Status = domain.CustomerStatus(req.Status)
	customer.Email = req.Email
	customer.Phone = req.Phone
	customer.Street = req.Street
	customer.City = req.City
	customer.State = req.State
	customer.ZipCode = req.ZipCode
	customer.Country = domain.Country(req.Country)
	customer.PaymentTerms = req.PaymentTerms

	if req.LastContact != "" {
		lastContact, err := parseDate(req.LastContact)
		if err != nil {
			return nil, ErrInvalidInput
		}
		customer.LastContact = lastContact
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get customer: %w", err)
	}
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	s.logger.Info("customer deleted", zap.String("customer_id", id))
	return nil
}

func (s *CustomerService) List(ctx context.Context, page, pageSize int, search, custType, status string) ([]domain.CustomerSummaryDTO, int64, error) {
	customers, total, err := s.customerRepo.List(ctx, page, pageSize, search, custType, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}

	dtos := make([]domain.CustomerSummaryDTO, len(customers))
	for i := range customers {
		dtos[i] = mapper.ToCustomerSummaryDTO(&customers[i])
	}
	return dtos, total, nil
}

// AddContact appends a contact and bumps the customer's last-contact date
func (s *CustomerService) AddContact(ctx context.Context, customerID string, req *domain.CreateContactRequest) (*domain.Contact, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	contact := &domain.Contact{
		CustomerID: customer.ID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Role:       req.Role,
	}
	customer.Contacts = append(customer.Contacts, *contact)
	customer.LastContact = time.Now()

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to add contact: %w", err)
	}
	return &customer.Contacts[len(customer.Contacts)-1], nil
}

func (s *CustomerService) AddNote(ctx context.Context, customerID string, req *domain.CreateNoteRequest) (*domain.Note, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidInput
	}
	if date.IsZero() {
		date = time.Now()
	}

	note := &domain.Note{
		CustomerID: customer.ID,
		Title:      req.Title,
		Content:    req.Content,
		Date:       date,
	}
	customer.Notes = append(customer.Notes, *note)
	customer.LastContact = time.Now()

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}
	return &customer.Notes[len(customer.Notes)-1], nil
}
