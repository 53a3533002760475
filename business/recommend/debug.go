package recommend

import (
	"context"
	"errors"
	"fmt"
	"myStorefront/domain"
	"myStorefront/pkg/logger"
)

// Debug assembles every data source behind a recommendation for one customer:
// the purchase profile, the candidate catalog size, similar customers, the
// collaborative and generative candidate lists, and the final ranked merge.
// Generation failures are reported as an empty candidate list rather than an
// error, so the view stays usable when the upstream service is down.
func (s *Service) Debug(ctx context.Context, customerID uint) (*domain.RecommendationDebug, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	profile, err := s.BuildProfile(ctx, customerID)
	if err != nil {
		return nil, err
	}

	excludeIDs := recentProductIDs(profile)

	available, err := s.availableProducts(ctx, excludeIDs)
	if err != nil {
		return nil, err
	}

	similar, err := s.findSimilarCustomers(ctx, profile)
	if err != nil {
		return nil, err
	}

	collaborative, err := s.aggregatePurchases(ctx, similar, excludeIDs)
	if err != nil {
		return nil, err
	}

	var generative []domain.GenerativeCandidate
	if s.IsGenerationConfigured() {
		generative, err = s.generateCandidates(ctx, profile, available, collaborative)
		if err != nil {
			logger.Warn("generative candidates unavailable for debug view",
				"customer_id", customerID, "error", err)
			generative = nil
		}
	}

	final, err := s.Recommend(ctx, customerID, defaultLimit)
	if err != nil && !errors.Is(err, domain.ErrNoRecommendations) {
		return nil, err
	}

	return &domain.RecommendationDebug{
		CustomerContext:         profile,
		AvailableProductsCount:  len(available),
		SimilarCustomersFound:   len(similar),
		CollaborativeCandidates: collaborative,
		GenerativeCandidates:    generative,
		LLMConfigured:           s.IsGenerationConfigured(),
		FinalRecommendations:    final,
	}, nil
}
