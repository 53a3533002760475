package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"myStorefront/domain"
	"myStorefront/pkg/logger"
	"myStorefront/pkg/metrics"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	defaultLimit = 5
	maxLimit     = 20

	similarCustomersLimit = 5
)

// ---- Repository interfaces ----

type CustomerRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Customer, error)
}

type OrdersRepository interface {
	FindByCustomerWithProducts(ctx context.Context, customerID uint) ([]domain.OrderWithProduct, error)
	FindByCustomersWithProducts(ctx context.Context, customerIDs []uint, excludeProductIDs []uint) ([]domain.OrderWithProduct, error)
	FindSimilarCustomersByCategory(ctx context.Context, categories []string, excludeCustomerID uint, limit int) ([]domain.SimilarCustomer, error)
}

type ProductRepository interface {
	FindAllExcluding(ctx context.Context, excludeIDs []uint) ([]domain.Product, error)
}

// CatalogCache serves the full product catalog from cache so the hot
// recommendation path can skip postgres. A nil cache disables it.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
}

// TextGenerator is the sole network boundary of the engine.
type TextGenerator interface {
	IsConfigured() bool
	GenerateText(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error)
}

type EventRepository interface {
	Save(ctx context.Context, event domain.RecommendationEvent) error
}

type Service struct {
	customerRepo CustomerRepository
	ordersRepo   OrdersRepository
	productRepo  ProductRepository
	catalog      CatalogCache
	generator    TextGenerator
	eventRepo    EventRepository
}

// NewService wires the recommendation engine. catalog and eventRepo may be nil
// to disable the catalog cache and the served-recommendation audit log.
func NewService(
	customerRepo CustomerRepository,
	ordersRepo OrdersRepository,
	productRepo ProductRepository,
	catalog CatalogCache,
	generator TextGenerator,
	eventRepo EventRepository,
) *Service {
	return &Service{
		customerRepo: customerRepo,
		ordersRepo:   ordersRepo,
		productRepo:  productRepo,
		catalog:      catalog,
		generator:    generator,
		eventRepo:    eventRepo,
	}
}

// IsGenerationConfigured reports whether the text-generation service can be
// called at all.
func (s *Service) IsGenerationConfigured() bool {
	return s.generator != nil && s.generator.IsConfigured()
}

// Recommend produces up to limit ranked recommendations for a customer,
// merging collaborative-filtering and generative candidates. Whenever the
// generative step fails or yields zero usable candidates, the rule fallback
// engine contributes instead; a generation failure therefore never propagates
// to the caller.
func (s *Service) Recommend(ctx context.Context, customerID uint, limit int) ([]domain.RecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	metrics.RecommendRequests.Inc()

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

	generative, genErr := s.generateCandidates(ctx, profile, available, collaborative)

	var fallback []domain.FallbackItem
	if genErr != nil || len(generative) == 0 {
		if genErr != nil {
			logger.Warn("generative recommendations unavailable, using rule fallback",
				"customer_id", customerID, "error", genErr)
		}
		fallback = FallbackRecommendations(purchaseHistoryLines(profile))
		metrics.FallbackServed.Inc()
	}

	productsByID := make(map[uint]domain.Product, len(available))
	for _, p := range available {
		productsByID[p.ID] = p
	}

	results := rankResults(collaborative, generative, fallback, productsByID, limit)
	if len(results) == 0 {
		return nil, domain.ErrNoRecommendations
	}

	for _, result := range results {
		metrics.ResultsBySource.WithLabelValues(result.Source).Inc()
	}

	s.logEvent(ctx, customerID, limit, results)

	return results, nil
}

// availableProducts loads the candidate catalog minus the customer's recent
// purchases. The cached catalog is preferred; a miss, a cache error or a nil
// cache falls through to a postgres read.
func (s *Service) availableProducts(ctx context.Context, excludeIDs []uint) ([]domain.Product, error) {
	if s.catalog != nil {
		if catalog, err := s.catalog.Get(ctx); err == nil {
			excluded := make(map[uint]struct{}, len(excludeIDs))
			for _, id := range excludeIDs {
				excluded[id] = struct{}{}
			}

			available := make([]domain.Product, 0, len(catalog))
			for _, p := range catalog {
				if _, skip := excluded[p.ID]; skip {
					continue
				}
				available = append(available, p)
			}
			return available, nil
		}
	}

	available, err := s.productRepo.FindAllExcluding(ctx, excludeIDs)
	if err != nil {
		return nil, fmt.Errorf("load available products: %w", err)
	}
	return available, nil
}

// recentProductIDs lists the profile's recent purchases, the products a new
// recommendation must exclude.
func recentProductIDs(profile *domain.PurchaseProfile) []uint {
	ids := make([]uint, 0, len(profile.RecentPurchases))
	for _, purchase := range profile.RecentPurchases {
		ids = append(ids, purchase.ProductID)
	}
	return ids
}

// purchaseHistoryLines renders recent purchases as "Name (Category: X)" lines
// for the generative prompt and the rule fallback engine.
func purchaseHistoryLines(profile *domain.PurchaseProfile) []string {
	lines := make([]string, 0, len(profile.RecentPurchases))
	for _, purchase := range profile.RecentPurchases {
		lines = append(lines, fmt.Sprintf("%s (Category: %s)", purchase.ProductName, purchase.Category))
	}
	return lines
}

func (s *Service) logEvent(ctx context.Context, customerID uint, limit int, results []domain.RecommendationResult) {
	if s.eventRepo == nil {
		return
	}

	sources := make(map[string]int, 3)
	for _, result := range results {
		sources[result.Source]++
	}

	contextJSON, err := json.Marshal(map[string]interface{}{
		"sources":    sources,
		"event_time": time.Now().Format(time.RFC3339),
	})
	if err != nil {
		logger.Warn("failed to marshal recommendation event context", err)
		return
	}

	event := domain.RecommendationEvent{
		RequestID:   uuid.NewString(),
		CustomerID:  customerID,
		Limit:       limit,
		ResultCount: len(results),
		Context:     datatypes.JSON(contextJSON),
	}

	if err := s.eventRepo.Save(ctx, event); err != nil {
		logger.Warn("failed to save recommendation event", err)
	}
}
