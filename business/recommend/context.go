package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"myStorefront/domain"
	"myStorefront/pkg/logger"
	"myStorefront/pkg/metrics"
	"strings"
)

const (
	assistantSystemPrompt = "You are a helpful shopping assistant. Return pure JSON."
	assistantMaxTokens    = 500
)

// Context summarizes the data sources available for a customer, for the
// debugging endpoint.
func (s *Service) Context(ctx context.Context, customerID uint) (*domain.RecommendationContext, error) {
	profile, err := s.BuildProfile(ctx, customerID)
	if err != nil {
		return nil, err
	}

	similar, err := s.findSimilarCustomers(ctx, profile)
	if err != nil {
		return nil, err
	}

	favorites := make([]string, 0, len(profile.FavoriteCategories))
	for _, category := range profile.FavoriteCategories {
		favorites = append(favorites, category.Category)
	}

	llmUsed := s.IsGenerationConfigured()
	sources := []string{domain.SourceCollaborative}
	if llmUsed {
		sources = append(sources, domain.SourceLLM)
	}

	return &domain.RecommendationContext{
		CustomerName:          profile.CustomerName,
		TotalOrders:           profile.TotalOrders,
		TotalSpent:            profile.TotalSpent,
		FavoriteCategories:    favorites,
		SimilarCustomersFound: len(similar),
		LLMUsed:               llmUsed,
		SourcesUsed:           sources,
	}, nil
}

// AssistantRecommendations is the purchase-history-text variant: it feeds the
// customer's full history to the generation service as plain text and expects
// free-form item suggestions back. When the service is unconfigured, fails or
// returns nothing usable, the rule fallback engine answers instead, so this
// always yields 1-3 items for customers with history.
func (s *Service) AssistantRecommendations(ctx context.Context, customerID uint) ([]domain.FallbackItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := s.customerRepo.FindByID(ctx, customerID); err != nil {
		return nil, err
	}

	orders, err := s.ordersRepo.FindByCustomerWithProducts(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("load order history: %w", err)
	}
	if len(orders) == 0 {
		return nil, domain.ErrNoPurchaseHistory
	}

	history := make([]string, 0, len(orders))
	for _, order := range orders {
		history = append(history, fmt.Sprintf("%s (Category: %s)", order.ProductName, order.Category))
	}

	items := s.generateAssistantItems(ctx, history)
	if len(items) == 0 {
		items = FallbackRecommendations(history)
		metrics.FallbackServed.Inc()
	}

	return items, nil
}

func (s *Service) generateAssistantItems(ctx context.Context, history []string) []domain.FallbackItem {
	if !s.IsGenerationConfigured() {
		return nil
	}

	var historyText strings.Builder
	for i, line := range history {
		if i > 0 {
			historyText.WriteString("\n")
		}
		historyText.WriteString("- " + line)
	}

	userPrompt := fmt.Sprintf("Given these past purchases:\n%s\n\nRecommend 3 items.", historyText.String())

	metrics.GenerationCalls.Inc()

	content, err := s.generator.GenerateText(ctx, assistantSystemPrompt, userPrompt, generationTemperature, assistantMaxTokens)
	if err != nil {
		metrics.GenerationFailures.Inc()
		logger.Warn("assistant recommendations unavailable, using rule fallback", err)
		return nil
	}

	items := parseAssistantResponse(content)
	if len(items) == 0 {
		metrics.GenerationFailures.Inc()
	}

	return items
}

type assistantItem struct {
	Item       string   `json:"item"`
	Reason     string   `json:"reason"`
	Confidence *float64 `json:"confidence"`
}

// parseAssistantResponse accepts a JSON array or object after fence stripping;
// if the payload is not JSON at all it falls back to scraping numbered or
// bulleted lines. Items without a label are dropped.
func parseAssistantResponse(content string) []domain.FallbackItem {
	jsonContent := strings.TrimSpace(stripCodeFence(content))

	var parsed []assistantItem
	if err := json.Unmarshal([]byte(jsonContent), &parsed); err != nil {
		var single assistantItem
		if err := json.Unmarshal([]byte(jsonContent), &single); err != nil {
			return extractItemsFromText(content)
		}
		parsed = []assistantItem{single}
	}

	items := make([]domain.FallbackItem, 0, len(parsed))
	for _, item := range parsed {
		if item.Item == "" {
			continue
		}

		confidence := defaultConfidence
		if item.Confidence != nil {
			confidence = clampConfidence(int(*item.Confidence))
		}

		items = append(items, domain.FallbackItem{
			Item:       item.Item,
			Reason:     item.Reason,
			Confidence: confidence,
		})
	}

	return items
}

// extractItemsFromText scrapes plain-text model output for numbered or
// bulleted suggestions.
func extractItemsFromText(content string) []domain.FallbackItem {
	items := make([]domain.FallbackItem, 0, fallbackLimit)

	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var label string
		switch {
		case strings.HasPrefix(line, "- "):
			label = strings.TrimSpace(line[2:])
		case lineStartsNumbered(line):
			_, after, _ := strings.Cut(line, ".")
			label = strings.TrimSpace(after)
		default:
			continue
		}
		if label == "" {
			continue
		}

		items = append(items, domain.FallbackItem{
			Item:       label,
			Reason:     "Based on your purchase history",
			Confidence: defaultConfidence,
		})
		if len(items) == fallbackLimit {
			break
		}
	}

	return items
}

func lineStartsNumbered(line string) bool {
	for _, prefix := range []string{"1.", "2.", "3.", "4.", "5."} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
