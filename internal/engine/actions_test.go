package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domainPtr(d Domain) *Domain { return &d }

func TestRecommendActions(t *testing.T) {
	t.Run("distinct primary and secondary", func(t *testing.T) {
		tiles := RecommendActions(domainPtr(DomainSafety), domainPtr(DomainWorkload))

		assert.Equal(t, DomainSafety, tiles[0].DomainKey)
		assert.Equal(t, DomainWorkload, tiles[1].DomainKey)
		assert.NotEqual(t, tiles[0].DomainKey, tiles[1].DomainKey)
	})

	t.Run("nil primary falls back to general friction", func(t *testing.T) {
		tiles := RecommendActions(nil, nil)
		assert.Equal(t, DomainSentiment, tiles[0].DomainKey)
		assert.Equal(t, DomainSentiment, tiles[1].DomainKey)
	})

	t.Run("duplicate secondary falls back", func(t *testing.T) {
		tiles := RecommendActions(domainPtr(DomainClarity), domainPtr(DomainClarity))
		assert.Equal(t, DomainClarity, tiles[0].DomainKey)
		assert.Equal(t, DomainSentiment, tiles[1].DomainKey)
	})

	t.Run("nil secondary falls back", func(t *testing.T) {
		tiles := RecommendActions(domainPtr(DomainLeadership), nil)
		assert.Equal(t, DomainLeadership, tiles[0].DomainKey)
		assert.Equal(t, DomainSentiment, tiles[1].DomainKey)
	})

	t.Run("every template is complete", func(t *testing.T) {
		for _, d := range Domains {
			tiles := RecommendActions(domainPtr(d), nil)
			tile := tiles[0]

			require.Equal(t, d, tile.DomainKey)
			assert.NotEmpty(t, tile.Title)
			assert.NotEmpty(t, tile.Steps[0])
			assert.NotEmpty(t, tile.Steps[1])
			assert.NotEmpty(t, tile.SuccessCue)
			assert.Equal(t, actionTimeframe, tile.Timeframe)
		}
	})
}
