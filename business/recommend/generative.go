package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"myStorefront/domain"
	"myStorefront/pkg/metrics"
	"strings"
)

const (
	generationTemperature = 0.7
	generationMaxTokens   = 1000

	promptProductLimit       = 20
	promptCollaborativeLimit = 5
	promptRecentLimit        = 3

	defaultConfidence = 50

	generationSystemPrompt = "You are a product recommendation expert. Analyze customer purchase history " +
		"and provide personalized product recommendations. Return recommendations in JSON format " +
		"with product_id, reason, and confidence_score (0-100)."
)

// generateCandidates asks the text-generation service for recommendations
// grounded in the profile, the catalog and the collaborative candidates. It
// returns an error for unconfigured or failed calls and an empty slice for
// unusable output; it never falls back by itself — the caller owns that policy.
func (s *Service) generateCandidates(
	ctx context.Context,
	profile *domain.PurchaseProfile,
	available []domain.Product,
	collaborative []domain.CollaborativeCandidate,
) ([]domain.GenerativeCandidate, error) {
	if !s.IsGenerationConfigured() {
		return nil, domain.ErrGenerationUnavailable
	}

	prompt := buildRecommendationPrompt(profile, available, collaborative)

	metrics.GenerationCalls.Inc()

	content, err := s.generator.GenerateText(ctx, generationSystemPrompt, prompt, generationTemperature, generationMaxTokens)
	if err != nil {
		metrics.GenerationFailures.Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrGenerationUnavailable, err)
	}

	candidates := parseGenerativeResponse(content)
	if len(candidates) == 0 {
		metrics.GenerationFailures.Inc()
	}

	return candidates, nil
}

func buildRecommendationPrompt(
	profile *domain.PurchaseProfile,
	available []domain.Product,
	collaborative []domain.CollaborativeCandidate,
) string {
	favorites := make([]string, 0, len(profile.FavoriteCategories))
	for _, category := range profile.FavoriteCategories {
		favorites = append(favorites, category.Category)
	}

	recent := make([]string, 0, promptRecentLimit)
	for i, purchase := range profile.RecentPurchases {
		if i >= promptRecentLimit {
			break
		}
		recent = append(recent, purchase.ProductName)
	}

	var collabInfo strings.Builder
	for i, candidate := range collaborative {
		if i >= promptCollaborativeLimit {
			break
		}
		if i > 0 {
			collabInfo.WriteString("\n")
		}
		fmt.Fprintf(&collabInfo, "- %s (Category: %s, Price: $%.2f) - Bought by %d similar customers",
			candidate.ProductName, candidate.Category, candidate.Price, candidate.CustomerCount)
	}
	collabBlock := collabInfo.String()
	if collabBlock == "" {
		collabBlock = "None"
	}

	var productsInfo strings.Builder
	for i, product := range available {
		// cap the catalog block to bound the payload
		if i >= promptProductLimit {
			break
		}
		if i > 0 {
			productsInfo.WriteString("\n")
		}
		fmt.Fprintf(&productsInfo, "- ID: %d, Name: %s, Category: %s, Price: $%.2f",
			product.ID, product.Name, product.Category, product.Price)
	}

	return fmt.Sprintf(`Based on the following customer context, provide personalized product recommendations:

Customer: %s
Total Orders: %d
Total Spent: $%.2f
Favorite Categories: %s
Recent Purchases: %s

Products bought by similar customers:
%s

Available products to recommend:
%s

Please provide 3-5 product recommendations with reasons and confidence scores (0-100).
Return your response as JSON with fields: product_id, reason, confidence_score.`,
		profile.CustomerName,
		profile.TotalOrders,
		profile.TotalSpent,
		strings.Join(favorites, ", "),
		strings.Join(recent, ", "),
		collabBlock,
		productsInfo.String(),
	)
}

type generativeItem struct {
	ProductID  *uint    `json:"product_id"`
	Reason     string   `json:"reason"`
	Confidence *float64 `json:"confidence_score"`
}

// parseGenerativeResponse extracts structured candidates from raw model output.
// The output may wrap JSON in a fenced code block and may be a single object
// instead of an array. Parse failures yield an empty list, never an error;
// items without a product id are dropped.
func parseGenerativeResponse(content string) []domain.GenerativeCandidate {
	jsonContent := strings.TrimSpace(stripCodeFence(content))

	var items []generativeItem
	if err := json.Unmarshal([]byte(jsonContent), &items); err != nil {
		var single generativeItem
		if err := json.Unmarshal([]byte(jsonContent), &single); err != nil {
			return []domain.GenerativeCandidate{}
		}
		items = []generativeItem{single}
	}

	candidates := make([]domain.GenerativeCandidate, 0, len(items))
	for _, item := range items {
		if item.ProductID == nil || *item.ProductID == 0 {
			continue
		}

		confidence := defaultConfidence
		if item.Confidence != nil {
			confidence = clampConfidence(int(*item.Confidence))
		}

		candidates = append(candidates, domain.GenerativeCandidate{
			ProductID:  *item.ProductID,
			Reason:     item.Reason,
			Confidence: confidence,
		})
	}

	return candidates
}

// stripCodeFence unwraps a fenced code block, preferring a json-tagged fence,
// then any fence, then the raw text.
func stripCodeFence(content string) string {
	if strings.Contains(content, "```json") {
		after := strings.SplitN(content, "```json", 2)[1]
		return strings.SplitN(after, "```", 2)[0]
	}

	if strings.Contains(content, "```") {
		parts := strings.SplitN(content, "```", 3)
		if len(parts) >= 2 {
			return parts[1]
		}
	}

	return content
}

func clampConfidence(confidence int) int {
	if confidence < 0 {
		return 0
	}
	if confidence > 100 {
		return 100
	}
	return confidence
}
