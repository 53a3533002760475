package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackRecommendationsElectronics(t *testing.T) {
	items := FallbackRecommendations([]string{"Laptop Pro (Category: Electronics)"})

	require.Len(t, items, 3)
	assert.Equal(t, "Wireless Mouse", items[0].Item)
	assert.Equal(t, 80, items[0].Confidence)
	assert.Equal(t, "USB-C Charging Cable", items[1].Item)
	assert.Equal(t, "Bluetooth Speaker", items[2].Item)
}

func TestFallbackRecommendationsCaseInsensitive(t *testing.T) {
	lower := FallbackRecommendations([]string{"wireless HEADPHONE set"})
	upper := FallbackRecommendations([]string{"WIRELESS headphone SET"})
	assert.Equal(t, lower, upper)
	assert.NotEmpty(t, lower)
}

func TestFallbackRecommendationsGenericWhenNoMatch(t *testing.T) {
	items := FallbackRecommendations([]string{"Garden Gnome (Category: Lawn Ornaments)"})

	require.Len(t, items, 3)
	assert.Equal(t, "Gift Card", items[0].Item)
	assert.Equal(t, "Bestseller Bundle", items[1].Item)
	assert.Equal(t, "Store Membership", items[2].Item)
}

func TestFallbackRecommendationsEmptyHistory(t *testing.T) {
	items := FallbackRecommendations(nil)
	require.NotEmpty(t, items)
	assert.LessOrEqual(t, len(items), 3)
}

func TestFallbackRecommendationsRuleFiresOnce(t *testing.T) {
	// two keywords of the same rule must not duplicate its items
	items := FallbackRecommendations([]string{"laptop", "phone", "computer"})

	seen := make(map[string]int)
	for _, item := range items {
		seen[item.Item]++
	}
	for label, count := range seen {
		assert.Equal(t, 1, count, "item %q returned more than once", label)
	}
	assert.Len(t, items, 3)
}

func TestFallbackRecommendationsCapsAtThree(t *testing.T) {
	// matching multiple rules still yields at most three items
	items := FallbackRecommendations([]string{"laptop and novel and running shoes from the kitchen"})
	assert.Len(t, items, 3)
}

func TestFallbackRecommendationsConfidenceRange(t *testing.T) {
	for _, history := range [][]string{
		{"laptop"}, {"novel"}, {"jacket"}, {"cookware"}, {"fitness"}, {"nothing matching"},
	} {
		for _, item := range FallbackRecommendations(history) {
			assert.GreaterOrEqual(t, item.Confidence, 0)
			assert.LessOrEqual(t, item.Confidence, 100)
			assert.NotEmpty(t, item.Item)
			assert.NotEmpty(t, item.Reason)
		}
	}
}
