package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankDomains(t *testing.T) {
	th := DefaultThresholds()

	t.Run("ranking is deterministic", func(t *testing.T) {
		current := map[Domain]float64{
			DomainSentiment:  3.2,
			DomainClarity:    2.8,
			DomainWorkload:   2.8,
			DomainSafety:     4.1,
			DomainLeadership: 3.9,
		}
		previous := map[Domain]float64{
			DomainSentiment:  3.5,
			DomainClarity:    2.8,
			DomainWorkload:   3.1,
			DomainSafety:     4.0,
			DomainLeadership: 3.9,
		}

		first := RankDomains(current, previous, nil, th)
		second := RankDomains(current, previous, nil, th)

		require.Equal(t, len(first.Items), len(second.Items))
		for i := range first.Items {
			assert.Equal(t, first.Items[i].Domain, second.Items[i].Domain)
			assert.Equal(t, first.Items[i].PriorityScore, second.Items[i].PriorityScore)
		}
	})

	t.Run("equal priority ties keep declared domain order", func(t *testing.T) {
		got := RankDomains(allDomains(2), nil, nil, th)
		require.Len(t, got.Items, 5)
		for i, d := range Domains {
			assert.Equal(t, d, got.Items[i].Domain)
		}
	})

	t.Run("severity trend and spread combine", func(t *testing.T) {
		current := map[Domain]float64{DomainWorkload: 2.5} // 50 on the display scale
		previous := map[Domain]float64{DomainWorkload: 3.0} // 60, so delta -10
		spread := map[Domain]float64{DomainWorkload: 15}

		got := RankDomains(current, previous, spread, th)
		require.Len(t, got.Items, 1)

		item := got.Items[0]
		assert.Equal(t, 50.0, item.Score)
		assert.Equal(t, -10.0, item.Delta)
		// severity (70-50)/70, trend 10/20, spread 15/30
		want := 0.55*(20.0/70.0) + 0.35*0.5 + 0.10*0.5
		assert.InDelta(t, want, item.PriorityScore, 1e-9)
		assert.Equal(t, RationaleBelowAndDeclining, item.Rationale)
	})

	t.Run("delta is zero when previous side missing", func(t *testing.T) {
		got := RankDomains(map[Domain]float64{DomainClarity: 3}, nil, nil, th)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 0.0, got.Items[0].Delta)
	})

	t.Run("primary falls back when nothing is below tolerance", func(t *testing.T) {
		current := allDomains(4.5) // 90 everywhere
		previous := allDomains(4.5)
		previous[DomainLeadership] = 5 // leadership declined 100 → 90

		got := RankDomains(current, previous, nil, th)
		require.NotNil(t, got.Primary)
		assert.Equal(t, DomainLeadership, got.Primary.Domain)
		assert.Equal(t, got.Items[0].Domain, got.Primary.Domain)
		assert.Equal(t, RationaleDeclining, got.Primary.Rationale)

		require.NotNil(t, got.Secondary)
		assert.Equal(t, got.Items[1].Domain, got.Secondary.Domain)
		assert.NotEqual(t, got.Primary.Domain, got.Secondary.Domain)
	})

	t.Run("primary prefers below-tolerance domains", func(t *testing.T) {
		current := allDomains(4.5)
		current[DomainSafety] = 3.0 // 60, below tolerance

		got := RankDomains(current, nil, nil, th)
		require.NotNil(t, got.Primary)
		assert.Equal(t, DomainSafety, got.Primary.Domain)
		assert.Equal(t, RationaleBelowTolerance, got.Primary.Rationale)
	})

	t.Run("secondary picks next below-tolerance domain", func(t *testing.T) {
		current := allDomains(4.5)
		current[DomainSafety] = 2.0   // 40
		current[DomainWorkload] = 3.0 // 60

		got := RankDomains(current, nil, nil, th)
		require.NotNil(t, got.Primary)
		require.NotNil(t, got.Secondary)
		assert.Equal(t, DomainSafety, got.Primary.Domain)
		assert.Equal(t, DomainWorkload, got.Secondary.Domain)
	})

	t.Run("healthy domains read monitor", func(t *testing.T) {
		got := RankDomains(allDomains(4.5), allDomains(4.0), nil, th)
		for _, item := range got.Items {
			assert.Equal(t, RationaleMonitor, item.Rationale)
		}
	})

	t.Run("no data yields empty ranking", func(t *testing.T) {
		got := RankDomains(nil, nil, nil, th)
		assert.Empty(t, got.Items)
		assert.Nil(t, got.Primary)
		assert.Nil(t, got.Secondary)
	})
}
