package postgres

import (
	"context"
	"errors"
	"fmt"
	"myStorefront/domain"

	"gorm.io/gorm"
)

const orderProductColumns = "orders.id AS order_id, orders.customer_id, orders.product_id, " +
	"orders.quantity, orders.purchase_date, products.name AS product_name, " +
	"products.category, products.price, products.description"

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrdersRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Order
	err := r.DB.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

// FindByCustomerWithProducts returns a customer's full order history joined with
// product details, newest purchase first. Id breaks purchase-date ties so the
// ordering is stable within a run.
func (r *OrdersRepository) FindByCustomerWithProducts(ctx context.Context, customerID uint) ([]domain.OrderWithProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var rows []domain.OrderWithProduct
	err := r.DB.WithContext(ctx).
		Table("orders").
		Select(orderProductColumns).
		Joins("JOIN products ON products.id = orders.product_id").
		Where("orders.customer_id = ?", customerID).
		Order("orders.purchase_date DESC, orders.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders for customer: %w", err)
	}

	return rows, nil
}

// FindByCustomersWithProducts returns all orders placed by the given customers,
// joined with product details, skipping excluded products.
func (r *OrdersRepository) FindByCustomersWithProducts(ctx context.Context, customerIDs []uint, excludeProductIDs []uint) ([]domain.OrderWithProduct, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(customerIDs) == 0 {
		return []domain.OrderWithProduct{}, nil
	}

	query := r.DB.WithContext(ctx).
		Table("orders").
		Select(orderProductColumns).
		Joins("JOIN products ON products.id = orders.product_id").
		Where("orders.customer_id IN ?", customerIDs)

	if len(excludeProductIDs) > 0 {
		query = query.Where("orders.product_id NOT IN ?", excludeProductIDs)
	}

	var rows []domain.OrderWithProduct
	err := query.
		Order("orders.purchase_date DESC, orders.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find orders for customers: %w", err)
	}

	return rows, nil
}

// FindSimilarCustomersByCategory groups other customers' orders in the given
// categories and ranks them by matching order count. Ties break on ascending
// customer id so results are deterministic.
func (r *OrdersRepository) FindSimilarCustomersByCategory(ctx context.Context, categories []string, excludeCustomerID uint, limit int) ([]domain.SimilarCustomer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(categories) == 0 {
		return []domain.SimilarCustomer{}, nil
	}

	type similarCustomerRow struct {
		CustomerID      uint
		SharedPurchases int
	}

	var rows []similarCustomerRow
	err := r.DB.WithContext(ctx).
		Table("orders").
		Select("orders.customer_id AS customer_id, COUNT(orders.id) AS shared_purchases").
		Joins("JOIN products ON products.id = orders.product_id").
		Where("orders.customer_id <> ?", excludeCustomerID).
		Where("products.category IN ?", categories).
		Group("orders.customer_id").
		Order("COUNT(orders.id) DESC, orders.customer_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find similar customers: %w", err)
	}

	if len(rows) == 0 {
		return []domain.SimilarCustomer{}, nil
	}

	customerIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		customerIDs = append(customerIDs, row.CustomerID)
	}

	type customerCategoryRow struct {
		CustomerID uint
		Category   string
	}

	var categoryRows []customerCategoryRow
	err = r.DB.WithContext(ctx).
		Table("orders").
		Select("DISTINCT orders.customer_id AS customer_id, products.category AS category").
		Joins("JOIN products ON products.id = orders.product_id").
		Where("orders.customer_id IN ?", customerIDs).
		Where("products.category IN ?", categories).
		Order("orders.customer_id ASC, products.category ASC").
		Scan(&categoryRows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find customer categories: %w", err)
	}

	categoriesByCustomer := make(map[uint][]string, len(customerIDs))
	for _, row := range categoryRows {
		categoriesByCustomer[row.CustomerID] = append(categoriesByCustomer[row.CustomerID], row.Category)
	}

	similar := make([]domain.SimilarCustomer, 0, len(rows))
	for _, row := range rows {
		similar = append(similar, domain.SimilarCustomer{
			CustomerID:      row.CustomerID,
			SharedPurchases: row.SharedPurchases,
			Categories:      categoriesByCustomer[row.CustomerID],
		})
	}

	return similar, nil
}
