//go:build unit

package collector_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-hunter/internal/domain/listing"
	"rental-hunter/internal/infra/collector"
)

func TestMockCollector_DeterministicPerCity(t *testing.T) {
	m := collector.NewMockCollector()

	first, err := m.Collect(context.Background(), "Lyon", testCriteria())
	require.NoError(t, err)
	second, err := m.Collect(context.Background(), "Lyon", testCriteria())
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := m.Collect(context.Background(), "Marseille", testCriteria())
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestMockCollector_OutputIsIngestable(t *testing.T) {
	m := collector.NewMockCollector()
	raws, err := m.Collect(context.Background(), "Paris", testCriteria())
	require.NoError(t, err)
	require.NotEmpty(t, raws)

	seenURLs := make(map[string]bool)
	for _, raw := range raws {
		assert.Equal(t, "mock", raw.SourceSite)
		assert.Equal(t, "Paris", raw.City)
		assert.False(t, seenURLs[raw.URL], "urls must be unique: %s", raw.URL)
		seenURLs[raw.URL] = true

		price, ok := listing.ParsePrice(raw.PriceText)
		assert.True(t, ok)
		assert.GreaterOrEqual(t, price, float64(testCriteria().MinPrice))
	}
}

func TestMockCollector_EmitsCrossPostedTwins(t *testing.T) {
	m := collector.NewMockCollector()
	raws, err := m.Collect(context.Background(), "Toulouse", testCriteria())
	require.NoError(t, err)

	var twins int
	for _, raw := range raws {
		if len(raw.SourceID) > 4 && raw.SourceID[len(raw.SourceID)-4:] == "-bis" {
			twins++
		}
	}
	assert.Equal(t, 3, twins)
}
