package recommend

import (
	"context"
	"errors"
	"myStorefront/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebugCollectsAllSources(t *testing.T) {
	gen := &fakeGenerator{
		configured: true,
		response:   `[{"product_id": 14, "reason": "Useful for calls", "confidence_score": 70}]`,
	}
	svc, _, _ := newTestService(gen)

	debug, err := svc.Debug(context.Background(), 1)
	require.NoError(t, err)

	require.NotNil(t, debug.CustomerContext)
	assert.Equal(t, "Alice", debug.CustomerContext.CustomerName)
	assert.Equal(t, 2, debug.CustomerContext.TotalOrders)

	// catalog minus the two recent purchases
	assert.Equal(t, 3, debug.AvailableProductsCount)
	assert.Equal(t, 2, debug.SimilarCustomersFound)

	collaborativeIDs := make([]uint, 0, len(debug.CollaborativeCandidates))
	for _, candidate := range debug.CollaborativeCandidates {
		collaborativeIDs = append(collaborativeIDs, candidate.ProductID)
	}
	assert.Contains(t, collaborativeIDs, uint(12))
	assert.Contains(t, collaborativeIDs, uint(13))

	require.Len(t, debug.GenerativeCandidates, 1)
	assert.Equal(t, uint(14), debug.GenerativeCandidates[0].ProductID)

	assert.True(t, debug.LLMConfigured)
	assert.NotEmpty(t, debug.FinalRecommendations)
}

func TestDebugUnknownCustomer(t *testing.T) {
	svc, _, _ := newTestService(&fakeGenerator{})

	_, err := svc.Debug(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestDebugUnconfiguredGenerator(t *testing.T) {
	gen := &fakeGenerator{configured: false}
	svc, _, _ := newTestService(gen)

	debug, err := svc.Debug(context.Background(), 1)
	require.NoError(t, err)

	assert.False(t, debug.LLMConfigured)
	assert.Empty(t, debug.GenerativeCandidates)
	assert.Zero(t, gen.calls)
	assert.NotEmpty(t, debug.FinalRecommendations)
}

func TestDebugToleratesGenerationFailure(t *testing.T) {
	gen := &fakeGenerator{configured: true, err: errors.New("upstream timeout")}
	svc, _, _ := newTestService(gen)

	debug, err := svc.Debug(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, debug.LLMConfigured)
	assert.Empty(t, debug.GenerativeCandidates)
	assert.NotEmpty(t, debug.FinalRecommendations, "final merge still serves collaborative and fallback items")
}
