package domain

import "time"

// Source tags carried by RecommendationResult.
const (
	SourceCollaborative = "collaborative"
	SourceLLM           = "llm"
	SourceFallback      = "fallback"
)

// RecentPurchase is one of the latest orders inside a purchase profile.
type RecentPurchase struct {
	ProductID    uint      `json:"product_id"`
	ProductName  string    `json:"product_name"`
	Category     string    `json:"category"`
	PurchaseDate time.Time `json:"purchase_date"`
}

// CategoryCount pairs a product category with how often the customer bought in it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PurchaseProfile summarizes one customer's order history. It is built fresh per
// request and never persisted.
type PurchaseProfile struct {
	CustomerID         uint             `json:"customer_id"`
	CustomerName       string           `json:"customer_name"`
	TotalOrders        int              `json:"total_orders"`
	TotalSpent         float64          `json:"total_spent"`
	CategoryCounts     map[string]int   `json:"category_preferences"`
	RecentPurchases    []RecentPurchase `json:"recent_purchases"`
	FavoriteCategories []CategoryCount  `json:"favorite_categories"`
}

// SimilarCustomer is another customer who bought in the target's categories.
type SimilarCustomer struct {
	CustomerID      uint     `json:"customer_id"`
	SharedPurchases int      `json:"shared_purchases"`
	Categories      []string `json:"categories"`
}

// CollaborativeCandidate is a product aggregated from similar customers' orders.
// CustomerCount counts distinct buyers, so CustomerCount <= PurchaseCount.
type CollaborativeCandidate struct {
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	Description   string  `json:"description"`
	PurchaseCount int     `json:"purchase_count"`
	CustomerCount int     `json:"customer_count"`
}

// GenerativeCandidate is one parsed item from the text-generation service.
type GenerativeCandidate struct {
	ProductID  uint   `json:"product_id"`
	Reason     string `json:"reason"`
	Confidence int    `json:"confidence_score"`
}

// FallbackItem is a rule-engine recommendation. Item is a free-text label, not
// necessarily a catalog product.
type FallbackItem struct {
	Item       string `json:"item"`
	Reason     string `json:"reason"`
	Confidence int    `json:"confidence"`
}

// RecommendationResult is a final ranked recommendation returned to the caller.
// Identity is the product id; fallback items carry ProductID 0 and are identified
// by their label instead.
type RecommendationResult struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Reason      string  `json:"reason"`
	Confidence  int     `json:"confidence_score"`
	Source      string  `json:"source"`
}

// RecommendationDebug exposes every data source behind a recommendation in one
// response: the profile, each candidate list, and the final merge.
type RecommendationDebug struct {
	CustomerContext         *PurchaseProfile         `json:"customer_context"`
	AvailableProductsCount  int                      `json:"available_products_count"`
	SimilarCustomersFound   int                      `json:"similar_customers_found"`
	CollaborativeCandidates []CollaborativeCandidate `json:"collaborative_recommendations"`
	GenerativeCandidates    []GenerativeCandidate    `json:"llm_recommendations"`
	LLMConfigured           bool                     `json:"llm_configured"`
	FinalRecommendations    []RecommendationResult   `json:"final_recommendations"`
}

// RecommendationContext is the debugging summary served by the context endpoint.
type RecommendationContext struct {
	CustomerName          string   `json:"customer_name"`
	TotalOrders           int      `json:"total_orders"`
	TotalSpent            float64  `json:"total_spent"`
	FavoriteCategories    []string `json:"favorite_categories"`
	SimilarCustomersFound int      `json:"similar_customers_found"`
	LLMUsed               bool     `json:"llm_used"`
	SourcesUsed           []string `json:"sources_used"`
}
