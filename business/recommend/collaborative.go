package recommend

import (
	"context"
	"fmt"
	"myStorefront/domain"
	"sort"
)

const collaborativeLimit = 10

// aggregatePurchases groups what the similar customers bought, skipping the
// target's own recent products, into scored collaborative candidates. An empty
// similar-customer list yields an empty result.
func (s *Service) aggregatePurchases(ctx context.Context, similar []domain.SimilarCustomer, excludeProductIDs []uint) ([]domain.CollaborativeCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if len(similar) == 0 {
		return []domain.CollaborativeCandidate{}, nil
	}

	customerIDs := make([]uint, 0, len(similar))
	for _, c := range similar {
		customerIDs = append(customerIDs, c.CustomerID)
	}

	orders, err := s.ordersRepo.FindByCustomersWithProducts(ctx, customerIDs, excludeProductIDs)
	if err != nil {
		return nil, fmt.Errorf("load similar customers' orders: %w", err)
	}

	type productStats struct {
		candidate domain.CollaborativeCandidate
		buyers    map[uint]struct{}
	}

	stats := make(map[uint]*productStats)
	productOrder := make([]uint, 0)

	for _, order := range orders {
		st, ok := stats[order.ProductID]
		if !ok {
			st = &productStats{
				candidate: domain.CollaborativeCandidate{
					ProductID:   order.ProductID,
					ProductName: order.ProductName,
					Category:    order.Category,
					Price:       order.Price,
					Description: order.Description,
				},
				buyers: make(map[uint]struct{}),
			}
			stats[order.ProductID] = st
			productOrder = append(productOrder, order.ProductID)
		}

		st.candidate.PurchaseCount++
		st.buyers[order.CustomerID] = struct{}{}
	}

	candidates := make([]domain.CollaborativeCandidate, 0, len(productOrder))
	for _, productID := range productOrder {
		st := stats[productID]
		st.candidate.CustomerCount = len(st.buyers)
		candidates = append(candidates, st.candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].PurchaseCount != candidates[j].PurchaseCount {
			return candidates[i].PurchaseCount > candidates[j].PurchaseCount
		}
		if candidates[i].CustomerCount != candidates[j].CustomerCount {
			return candidates[i].CustomerCount > candidates[j].CustomerCount
		}
		return candidates[i].ProductID < candidates[j].ProductID
	})

	if len(candidates) > collaborativeLimit {
		candidates = candidates[:collaborativeLimit]
	}

	return candidates, nil
}
