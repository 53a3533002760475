package orders

import (
	"context"
	"errors"
	"fmt"
	"myStorefront/domain"
	"myStorefront/pkg/logger"
	"time"
)

// OrdersRepository contract interface
type OrdersRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindByCustomerWithProducts(ctx context.Context, customerID uint) ([]domain.OrderWithProduct, error)
}

// CustomerRepository contract interface
type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Customer, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

type OrdersService struct {
	ordersRepo   OrdersRepository
	customerRepo CustomerRepository
	productRepo  ProductRepository
}

func NewOrdersService(ordersRepo OrdersRepository, customerRepo CustomerRepository, productRepo ProductRepository) *OrdersService {
	return &OrdersService{
		ordersRepo:   ordersRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

func (s *OrdersService) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when create order")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if order.Quantity <= 0 {
		logger.Error("Invalid order data: quantity must be greater than 0")
		return nil, errors.New("quantity must be greater than 0")
	}

	// Verify customer and product exist
	if _, err := s.customerRepo.FindByID(ctx, order.CustomerID); err != nil {
		logger.Error("customer not found for order", err)
		return nil, err
	}

	if _, err := s.productRepo.FindByID(ctx, order.ProductID); err != nil {
		logger.Error("product not found for order", err)
		return nil, err
	}

	if order.PurchaseDate.IsZero() {
		order.PurchaseDate = time.Now()
	}

	if err := s.ordersRepo.Create(ctx, order); err != nil {
		logger.Error("failed to create new order", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logger.Info("order created successfully")

	return order, nil
}

func (s *OrdersService) GetOrderByID(ctx context.Context, id uint) (*domain.Order, error) {
	if id == 0 {
		logger.Error("invalid order id")
		return nil, errors.New("invalid order id")
	}

	order, err := s.ordersRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find order by id", err)
		return nil, err
	}

	return &order, nil
}

// GetOrdersByCustomer returns a customer's order history joined with product
// details, newest first.
func (s *OrdersService) GetOrdersByCustomer(ctx context.Context, customerID uint) ([]domain.OrderWithProduct, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get orders by customer")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		logger.Error("customer not found", err)
		return nil, err
	}

	orders, err := s.ordersRepo.FindByCustomerWithProducts(ctx, customerID)
	if err != nil {
		logger.Error("failed to find orders for customer", err)
		return nil, err
	}

	return orders, nil
}
