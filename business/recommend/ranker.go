package recommend

import (
	"fmt"
	"myStorefront/domain"
	"sort"
)

// rankResults merges collaborative, generative and fallback candidates into a
// single ranked list: sort by confidence descending (stable), keep the first
// occurrence per product identity, truncate to limit. Generative candidates
// whose product id does not resolve in the available-products lookup are
// dropped silently.
func rankResults(
	collaborative []domain.CollaborativeCandidate,
	generative []domain.GenerativeCandidate,
	fallback []domain.FallbackItem,
	productsByID map[uint]domain.Product,
	limit int,
) []domain.RecommendationResult {
	merged := make([]domain.RecommendationResult, 0, len(collaborative)+len(generative)+len(fallback))

	for i, candidate := range collaborative {
		if i >= limit {
			break
		}
		merged = append(merged, domain.RecommendationResult{
			ProductID:   candidate.ProductID,
			ProductName: candidate.ProductName,
			Category:    candidate.Category,
			Price:       candidate.Price,
			Reason:      fmt.Sprintf("Popular among customers with similar tastes (%d customers)", candidate.CustomerCount),
			Confidence:  clampConfidence(candidate.PurchaseCount*10 + candidate.CustomerCount*5),
			Source:      domain.SourceCollaborative,
		})
	}

	added := 0
	for _, candidate := range generative {
		if added >= limit {
			break
		}
		product, ok := productsByID[candidate.ProductID]
		if !ok {
			continue
		}
		merged = append(merged, domain.RecommendationResult{
			ProductID:   product.ID,
			ProductName: product.Name,
			Category:    product.Category,
			Price:       product.Price,
			Reason:      candidate.Reason,
			Confidence:  clampConfidence(candidate.Confidence),
			Source:      domain.SourceLLM,
		})
		added++
	}

	for _, item := range fallback {
		merged = append(merged, domain.RecommendationResult{
			ProductName: item.Item,
			Reason:      item.Reason,
			Confidence:  clampConfidence(item.Confidence),
			Source:      domain.SourceFallback,
		})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})

	results := make([]domain.RecommendationResult, 0, limit)
	seen := make(map[string]struct{}, len(merged))
	for _, result := range merged {
		key := resultKey(result)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		results = append(results, result)
		if len(results) == limit {
			break
		}
	}

	return results
}

// resultKey is the dedup identity: the product id, or the label for fallback
// items that have no catalog product.
func resultKey(result domain.RecommendationResult) string {
	if result.ProductID != 0 {
		return fmt.Sprintf("product:%d", result.ProductID)
	}
	return "label:" + result.ProductName
}
