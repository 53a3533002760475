package recommend

import (
	"context"
	"fmt"
	"myStorefront/domain"
	"sort"
)

// findSimilarCustomers locates other customers who bought in the target's
// categories, ranked by shared-purchase volume. Without at least one purchased
// category no similarity is defined and the result is empty.
func (s *Service) findSimilarCustomers(ctx context.Context, profile *domain.PurchaseProfile) ([]domain.SimilarCustomer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories := make([]string, 0, len(profile.CategoryCounts))
	for category := range profile.CategoryCounts {
		categories = append(categories, category)
	}
	if len(categories) == 0 {
		return []domain.SimilarCustomer{}, nil
	}
	sort.Strings(categories)

	similar, err := s.ordersRepo.FindSimilarCustomersByCategory(ctx, categories, profile.CustomerID, similarCustomersLimit)
	if err != nil {
		return nil, fmt.Errorf("find similar customers: %w", err)
	}

	return similar, nil
}
