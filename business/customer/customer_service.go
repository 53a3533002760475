package customer

import (
	"context"
	"errors"
	"fmt"
	"myStorefront/domain"
	"myStorefront/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	FindByID(ctx context.Context, id uint) (domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
}

type customerService struct {
	customerRepo CustomerRepository
	validate     *validator.Validate
}

func NewCustomerService(customerRepo CustomerRepository, validate *validator.Validate) *customerService {
	return &customerService{
		customerRepo: customerRepo,
		validate:     validate,
	}
}

func (s *customerService) GetAllCustomers(ctx context.Context) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all customers")
		return nil, fmt.Errorf("context error: %w", err)
	}

	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all customers", err)
		return nil, err
	}

	return customers, nil
}

func (s *customerService) GetCustomerByID(ctx context.Context, id uint) (*domain.Customer, error) {
	if id == 0 {
		logger.Error("invalid customer id")
		return nil, errors.New("invalid customer id")
	}

	if err := ctx.Err(); err != nil {
		logger.Error("context error when get customer")
		return nil, fmt.Errorf("context error: %w", err)
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find customer by id", err)
		return nil, err
	}

	return &customer, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create customer")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// Validation
	if customer.Name == "" {
		logger.Error("Invalid customer data: name is required")
		return nil, errors.New("customer name is required")
	}

	if err := s.validate.Var(customer.Email, "required,email"); err != nil {
		logger.Error("Invalid customer data: email format", err)
		return nil, errors.New("invalid email format")
	}

	// Check if email already exists
	existing, err := s.customerRepo.FindByEmail(ctx, customer.Email)
	if err == nil && existing.ID > 0 {
		logger.Error("Customer email already exists")
		return nil, errors.New("email already exists")
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		logger.Error("failed to create new customer", err)
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	logger.Info("customer created successfully")

	return customer, nil
}
