package recommend

import (
	"context"
	"fmt"
	"myStorefront/domain"
	"sort"
)

const (
	recentPurchasesLimit  = 5
	favoriteCategoryLimit = 3
)

// BuildProfile turns a customer's raw order history into a purchase profile.
// Returns domain.ErrCustomerNotFound when the customer does not exist and
// domain.ErrNoPurchaseHistory when there are no orders to profile.
func (s *Service) BuildProfile(ctx context.Context, customerID uint) (*domain.PurchaseProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	orders, err := s.ordersRepo.FindByCustomerWithProducts(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load order history: %w", err)
	}

	if len(orders) == 0 {
		return nil, domain.ErrNoPurchaseHistory
	}

	categoryCounts := make(map[string]int)
	categoryOrder := make([]string, 0)
	totalSpent := 0.0

	for _, order := range orders {
		if _, seen := categoryCounts[order.Category]; !seen {
			categoryOrder = append(categoryOrder, order.Category)
		}
		categoryCounts[order.Category]++
		totalSpent += order.Price * float64(order.Quantity)
	}

	// orders arrive purchase-date descending, so the head is the recent slice
	recentCount := len(orders)
	if recentCount > recentPurchasesLimit {
		recentCount = recentPurchasesLimit
	}

	recentPurchases := make([]domain.RecentPurchase, 0, recentCount)
	for _, order := range orders[:recentCount] {
		recentPurchases = append(recentPurchases, domain.RecentPurchase{
			ProductID:    order.ProductID,
			ProductName:  order.ProductName,
			Category:     order.Category,
			PurchaseDate: order.PurchaseDate,
		})
	}

	return &domain.PurchaseProfile{
		CustomerID:         customer.ID,
		CustomerName:       customer.Name,
		TotalOrders:        len(orders),
		TotalSpent:         totalSpent,
		CategoryCounts:     categoryCounts,
		RecentPurchases:    recentPurchases,
		FavoriteCategories: topCategories(categoryCounts, categoryOrder, favoriteCategoryLimit),
	}, nil
}

// topCategories picks the highest-count categories. The stable sort preserves
// first-purchase order between equal counts.
func topCategories(counts map[string]int, insertionOrder []string, limit int) []domain.CategoryCount {
	ranked := make([]domain.CategoryCount, 0, len(insertionOrder))
	for _, category := range insertionOrder {
		ranked = append(ranked, domain.CategoryCount{
			Category: category,
			Count:    counts[category],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
