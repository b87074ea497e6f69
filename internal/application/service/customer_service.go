package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vivahgalaxy/pos-api/internal/domain/entity"
	"github.com/vivahgalaxy/pos-api/internal/domain/repository"
	"github.com/vivahgalaxy/pos-api/pkg/apperror"
	"github.com/vivahgalaxy/pos-api/pkg/pagination"
)

// CustomerService handles customer business logic
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput carries the fields for a new customer
type CreateCustomerInput struct {
	Name    string
	Phone   string
	Address string
}

// CreateCustomer creates a new customer. Phone numbers are unique.
func (s *CustomerService) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*entity.Customer, error) {
	existing, err := s.customerRepo.GetByPhone(ctx, input.Phone)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Customer with this phone already exists")
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// ListCustomers returns customers newest first
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams) ([]*entity.Customer, error) {
	customers, err := s.customerRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []*entity.Customer{}
	}
	return customers, nil
}
