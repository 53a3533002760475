package recommend

import (
	"myStorefront/domain"
	"strings"
)

const fallbackLimit = 3

// fallbackRule maps purchase-history keywords to up to three canned
// recommendation stubs. Rules are identified by their first two keywords so a
// rule never contributes twice.
type fallbackRule struct {
	keywords []string
	items    []domain.FallbackItem
}

var fallbackRules = []fallbackRule{
	{
		keywords: []string{"electronics", "laptop", "phone", "headphone", "computer"},
		items: []domain.FallbackItem{
			{Item: "Wireless Mouse", Reason: "Popular accessory among electronics buyers", Confidence: 80},
			{Item: "USB-C Charging Cable", Reason: "Commonly purchased alongside electronic devices", Confidence: 70},
			{Item: "Bluetooth Speaker", Reason: "Complements your recent electronics purchases", Confidence: 65},
		},
	},
	{
		keywords: []string{"book", "novel", "reading"},
		items: []domain.FallbackItem{
			{Item: "Reading Lamp", Reason: "A favorite among frequent readers", Confidence: 75},
			{Item: "Bookmark Set", Reason: "Handy addition to any book collection", Confidence: 60},
			{Item: "Bookshelf Organizer", Reason: "Keeps a growing library in order", Confidence: 55},
		},
	},
	{
		keywords: []string{"clothing", "shirt", "jacket", "fashion"},
		items: []domain.FallbackItem{
			{Item: "Garment Care Kit", Reason: "Keeps clothing like yours looking new", Confidence: 70},
			{Item: "Travel Clothes Steamer", Reason: "Popular with fashion-focused shoppers", Confidence: 60},
			{Item: "Seasonal Scarf", Reason: "Pairs well with your recent wardrobe picks", Confidence: 55},
		},
	},
	{
		keywords: []string{"kitchen", "home", "cookware", "furniture"},
		items: []domain.FallbackItem{
			{Item: "Chef's Knife", Reason: "Staple upgrade for home cooks", Confidence: 75},
			{Item: "Cutting Board Set", Reason: "Frequently bought with kitchen essentials", Confidence: 65},
			{Item: "Spice Rack", Reason: "Rounds out a well-stocked kitchen", Confidence: 55},
		},
	},
	{
		keywords: []string{"sports", "fitness", "running", "outdoor"},
		items: []domain.FallbackItem{
			{Item: "Water Bottle", Reason: "Essential for active customers", Confidence: 75},
			{Item: "Fitness Towel", Reason: "Commonly purchased with sports gear", Confidence: 60},
			{Item: "Resistance Bands", Reason: "Versatile addition to any workout", Confidence: 55},
		},
	},
}

var genericFallbackItems = []domain.FallbackItem{
	{Item: "Gift Card", Reason: "A safe choice for any shopper", Confidence: 60},
	{Item: "Bestseller Bundle", Reason: "Our most popular products in one pick", Confidence: 55},
	{Item: "Store Membership", Reason: "Savings on future purchases", Confidence: 50},
}

// FallbackRecommendations derives 1-3 deterministic recommendations from the
// customer's recent purchase descriptions. It never touches the catalog or the
// similarity graph and always terminates with at least one item.
func FallbackRecommendations(purchaseHistory []string) []domain.FallbackItem {
	text := strings.ToLower(strings.Join(purchaseHistory, " "))

	matched := make([]domain.FallbackItem, 0, fallbackLimit)
	seenRules := make(map[string]struct{})

	for _, rule := range fallbackRules {
		for _, keyword := range rule.keywords {
			if !strings.Contains(text, keyword) {
				continue
			}

			ruleID := rule.keywords[0] + "|" + rule.keywords[1]
			if _, seen := seenRules[ruleID]; !seen {
				seenRules[ruleID] = struct{}{}
				matched = append(matched, rule.items...)
			}
			break
		}
	}

	if len(matched) == 0 {
		matched = append(matched, genericFallbackItems...)
	}

	// dedupe by label, first occurrence wins
	unique := make([]domain.FallbackItem, 0, fallbackLimit)
	seenLabels := make(map[string]struct{})
	for _, item := range matched {
		if item.Item == "" {
			continue
		}
		if _, seen := seenLabels[item.Item]; seen {
			continue
		}
		seenLabels[item.Item] = struct{}{}

		unique = append(unique, item)
		if len(unique) == fallbackLimit {
			break
		}
	}

	return unique
}
