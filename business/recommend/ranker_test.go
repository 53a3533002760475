package recommend

import (
	"myStorefront/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankResultsCollaborativeConfidence(t *testing.T) {
	collaborative := []domain.CollaborativeCandidate{
		{ProductID: 1, ProductName: "Keyboard", PurchaseCount: 3, CustomerCount: 2},
	}
	products := map[uint]domain.Product{}

	results := rankResults(collaborative, nil, nil, products, 5)
	require.Len(t, results, 1)

	// 3 purchases * 10 + 2 customers * 5
	assert.Equal(t, 40, results[0].Confidence)
	assert.Equal(t, domain.SourceCollaborative, results[0].Source)
	assert.Equal(t, "Popular among customers with similar tastes (2 customers)", results[0].Reason)
}

func TestRankResultsCollaborativeConfidenceCapped(t *testing.T) {
	collaborative := []domain.CollaborativeCandidate{
		{ProductID: 1, ProductName: "Keyboard", PurchaseCount: 50, CustomerCount: 10},
	}

	results := rankResults(collaborative, nil, nil, map[uint]domain.Product{}, 5)
	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Confidence)
}

func TestRankResultsGenerativeResolvesProducts(t *testing.T) {
	generative := []domain.GenerativeCandidate{
		{ProductID: 2, Reason: "fits your setup", Confidence: 75},
		{ProductID: 99, Reason: "hallucinated", Confidence: 90},
	}
	products := map[uint]domain.Product{
		2: {ID: 2, Name: "Monitor", Category: "Electronics", Price: 300},
	}

	results := rankResults(nil, generative, nil, products, 5)
	require.Len(t, results, 1)
	assert.Equal(t, uint(2), results[0].ProductID)
	assert.Equal(t, "Monitor", results[0].ProductName)
	assert.Equal(t, 300.0, results[0].Price)
	assert.Equal(t, domain.SourceLLM, results[0].Source)
}

func TestRankResultsSortsByConfidenceDesc(t *testing.T) {
	collaborative := []domain.CollaborativeCandidate{
		{ProductID: 1, ProductName: "A", PurchaseCount: 1, CustomerCount: 1}, // 15
	}
	generative := []domain.GenerativeCandidate{
		{ProductID: 2, Reason: "r", Confidence: 60},
	}
	fallback := []domain.FallbackItem{
		{Item: "Gift Card", Reason: "safe", Confidence: 90},
	}
	products := map[uint]domain.Product{2: {ID: 2, Name: "B"}}

	results := rankResults(collaborative, generative, fallback, products, 5)
	require.Len(t, results, 3)
	assert.Equal(t, "Gift Card", results[0].ProductName)
	assert.Equal(t, uint(2), results[1].ProductID)
	assert.Equal(t, uint(1), results[2].ProductID)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Confidence, results[i].Confidence)
	}
}

func TestRankResultsDeduplicatesByProduct(t *testing.T) {
	collaborative := []domain.CollaborativeCandidate{
		{ProductID: 1, ProductName: "Keyboard", PurchaseCount: 1, CustomerCount: 1},
	}
	generative := []domain.GenerativeCandidate{
		{ProductID: 1, Reason: "also this", Confidence: 90},
	}
	products := map[uint]domain.Product{1: {ID: 1, Name: "Keyboard"}}

	results := rankResults(collaborative, generative, nil, products, 5)
	require.Len(t, results, 1)
	assert.Equal(t, domain.SourceLLM, results[0].Source)
	assert.Equal(t, 90, results[0].Confidence)
}

func TestRankResultsDeduplicatesFallbackByLabel(t *testing.T) {
	fallback := []domain.FallbackItem{
		{Item: "Gift Card", Reason: "a", Confidence: 60},
		{Item: "Gift Card", Reason: "b", Confidence: 50},
	}

	results := rankResults(nil, nil, fallback, map[uint]domain.Product{}, 5)
	require.Len(t, results, 1)
	assert.Equal(t, "Gift Card", results[0].ProductName)
	assert.Zero(t, results[0].ProductID)
	assert.Equal(t, domain.SourceFallback, results[0].Source)
}

func TestRankResultsTruncatesToLimit(t *testing.T) {
	collaborative := []domain.CollaborativeCandidate{
		{ProductID: 1, PurchaseCount: 5, CustomerCount: 2},
		{ProductID: 2, PurchaseCount: 4, CustomerCount: 2},
		{ProductID: 3, PurchaseCount: 3, CustomerCount: 1},
	}

	results := rankResults(collaborative, nil, nil, map[uint]domain.Product{}, 2)
	assert.Len(t, results, 2)
	assert.Equal(t, uint(1), results[0].ProductID)
	assert.Equal(t, uint(2), results[1].ProductID)
}

func TestRankResultsStableOnEqualConfidence(t *testing.T) {
	collaborative := []domain.CollaborativeCandidate{
		{ProductID: 1, PurchaseCount: 1, CustomerCount: 1},
		{ProductID: 2, PurchaseCount: 1, CustomerCount: 1},
	}

	results := rankResults(collaborative, nil, nil, map[uint]domain.Product{}, 5)
	require.Len(t, results, 2)
	assert.Equal(t, uint(1), results[0].ProductID)
	assert.Equal(t, uint(2), results[1].ProductID)
}
