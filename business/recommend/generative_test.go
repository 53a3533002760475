package recommend

import (
	"context"
	"myStorefront/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGenerativeResponseArray(t *testing.T) {
	content := `[{"product_id": 5, "reason": "complements prior purchases", "confidence_score": 82}]`

	candidates := parseGenerativeResponse(content)
	require.Len(t, candidates, 1)
	assert.Equal(t, uint(5), candidates[0].ProductID)
	assert.Equal(t, "complements prior purchases", candidates[0].Reason)
	assert.Equal(t, 82, candidates[0].Confidence)
}

func TestParseGenerativeResponseFencedJSON(t *testing.T) {
	content := "Here you go:\n```json\n[{\"product_id\": 7, \"reason\": \"r\", \"confidence_score\": 60}]\n```\nEnjoy!"

	candidates := parseGenerativeResponse(content)
	require.Len(t, candidates, 1)
	assert.Equal(t, uint(7), candidates[0].ProductID)
}

func TestParseGenerativeResponsePlainFence(t *testing.T) {
	content := "```\n[{\"product_id\": 8, \"reason\": \"r\", \"confidence_score\": 55}]\n```"

	candidates := parseGenerativeResponse(content)
	require.Len(t, candidates, 1)
	assert.Equal(t, uint(8), candidates[0].ProductID)
}

func TestParseGenerativeResponseSingleObject(t *testing.T) {
	content := `{"product_id": 3, "reason": "only one", "confidence_score": 44}`

	candidates := parseGenerativeResponse(content)
	require.Len(t, candidates, 1)
	assert.Equal(t, uint(3), candidates[0].ProductID)
}

func TestParseGenerativeResponseClampsConfidence(t *testing.T) {
	content := `[
		{"product_id": 1, "reason": "a", "confidence_score": 150},
		{"product_id": 2, "reason": "b", "confidence_score": -10},
		{"product_id": 3, "reason": "c"}
	]`

	candidates := parseGenerativeResponse(content)
	require.Len(t, candidates, 3)
	assert.Equal(t, 100, candidates[0].Confidence)
	assert.Equal(t, 0, candidates[1].Confidence)
	assert.Equal(t, defaultConfidence, candidates[2].Confidence)
}

func TestParseGenerativeResponseDropsMissingProductID(t *testing.T) {
	content := `[
		{"reason": "no product id", "confidence_score": 90},
		{"product_id": 0, "reason": "zero id", "confidence_score": 90},
		{"product_id": 4, "reason": "ok", "confidence_score": 90}
	]`

	candidates := parseGenerativeResponse(content)
	require.Len(t, candidates, 1)
	assert.Equal(t, uint(4), candidates[0].ProductID)
}

func TestParseGenerativeResponseGarbage(t *testing.T) {
	assert.Empty(t, parseGenerativeResponse("I cannot produce JSON today."))
	assert.Empty(t, parseGenerativeResponse(""))
}

func TestStripCodeFencePrefersJSONFence(t *testing.T) {
	content := "```\nnot this\n```\n```json\n[1]\n```"
	assert.Equal(t, "[1]", strings.TrimSpace(stripCodeFence(content)))
}

func TestBuildRecommendationPrompt(t *testing.T) {
	profile := &domain.PurchaseProfile{
		CustomerName: "Alice",
		TotalOrders:  4,
		TotalSpent:   123.45,
		FavoriteCategories: []domain.CategoryCount{
			{Category: "Electronics", Count: 3},
		},
		RecentPurchases: []domain.RecentPurchase{
			{ProductID: 1, ProductName: "Laptop Pro"},
			{ProductID: 2, ProductName: "Headphones"},
			{ProductID: 3, ProductName: "Mouse"},
			{ProductID: 4, ProductName: "Webcam"},
		},
	}
	available := []domain.Product{
		{ID: 9, Name: "Monitor", Category: "Electronics", Price: 300},
	}
	collaborative := []domain.CollaborativeCandidate{
		{ProductID: 9, ProductName: "Monitor", Category: "Electronics", Price: 300, CustomerCount: 2},
	}

	prompt := buildRecommendationPrompt(profile, available, collaborative)

	assert.Contains(t, prompt, "Customer: Alice")
	assert.Contains(t, prompt, "Total Orders: 4")
	assert.Contains(t, prompt, "Total Spent: $123.45")
	assert.Contains(t, prompt, "Favorite Categories: Electronics")
	assert.Contains(t, prompt, "- Monitor (Category: Electronics, Price: $300.00) - Bought by 2 similar customers")
	assert.Contains(t, prompt, "- ID: 9, Name: Monitor, Category: Electronics, Price: $300.00")

	// recent purchases in the prompt are capped at three
	assert.Contains(t, prompt, "Recent Purchases: Laptop Pro, Headphones, Mouse")
	assert.NotContains(t, prompt, "Webcam,")
}

func TestBuildRecommendationPromptNoCollaborative(t *testing.T) {
	profile := &domain.PurchaseProfile{CustomerName: "Bob"}

	prompt := buildRecommendationPrompt(profile, nil, nil)
	assert.Contains(t, prompt, "Products bought by similar customers:\nNone")
}

func TestGenerateCandidatesUnconfigured(t *testing.T) {
	svc := NewService(&fakeCustomerRepo{}, &fakeOrdersRepo{}, &fakeProductRepo{}, nil, &fakeGenerator{configured: false}, nil)

	_, err := svc.generateCandidates(context.Background(), &domain.PurchaseProfile{}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}

func TestGenerateCandidatesUnusableOutputIsNotAnError(t *testing.T) {
	gen := &fakeGenerator{configured: true, response: "no json here"}
	svc := NewService(&fakeCustomerRepo{}, &fakeOrdersRepo{}, &fakeProductRepo{}, nil, gen, nil)

	candidates, err := svc.generateCandidates(context.Background(), &domain.PurchaseProfile{}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
