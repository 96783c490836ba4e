package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankTeams(t *testing.T) {
	th := DefaultThresholds()

	t.Run("hand-computed fixture", func(t *testing.T) {
		teams := []TeamScore{
			{TeamID: "t1", Name: "Assembly", Score: 80, PrevScore: ptr(80)},
			{TeamID: "t2", Name: "Dispatch", Score: 55, PrevScore: ptr(60)},
			{TeamID: "t3", Name: "Night Shift", Score: 30, PrevScore: ptr(20)},
		}

		got := RankTeams(teams, th)
		require.Len(t, got, 2, "teams at or above the threshold never appear")

		// severity 0.5, improving so trend 0
		assert.Equal(t, "t3", got[0].TeamID)
		assert.Equal(t, 10.0, got[0].Delta)
		assert.InDelta(t, 0.3, got[0].PriorityScore, 1e-9)

		// severity 5/60, trend 5/20
		assert.Equal(t, "t2", got[1].TeamID)
		assert.Equal(t, -5.0, got[1].Delta)
		assert.InDelta(t, 0.6*(5.0/60.0)+0.4*0.25, got[1].PriorityScore, 1e-9)
		assert.InDelta(t, 0.15, got[1].PriorityScore, 1e-9)
	})

	t.Run("threshold is exclusive", func(t *testing.T) {
		got := RankTeams([]TeamScore{{TeamID: "t1", Score: 60}}, th)
		assert.Empty(t, got)
	})

	t.Run("at most five teams returned", func(t *testing.T) {
		teams := make([]TeamScore, 0, 50)
		for i := 0; i < 50; i++ {
			teams = append(teams, TeamScore{
				TeamID: fmt.Sprintf("t%02d", i),
				Score:  float64(i), // all below 60 except none
			})
		}

		got := RankTeams(teams, th)
		require.Len(t, got, maxAttentionTeams)
		for _, tp := range got {
			assert.Less(t, tp.Score, th.TeamAttention)
		}
		// lowest scores are most severe
		assert.Equal(t, "t00", got[0].TeamID)
	})

	t.Run("missing previous score means zero delta", func(t *testing.T) {
		got := RankTeams([]TeamScore{{TeamID: "t1", Score: 45}}, th)
		require.Len(t, got, 1)
		assert.Equal(t, 0.0, got[0].Delta)
		assert.InDelta(t, 0.6*(15.0/60.0), got[0].PriorityScore, 1e-9)
	})

	t.Run("participation carried through", func(t *testing.T) {
		got := RankTeams([]TeamScore{{TeamID: "t1", Score: 45, Participation: ptr(62)}}, th)
		require.Len(t, got, 1)
		require.NotNil(t, got[0].Participation)
		assert.Equal(t, 62.0, *got[0].Participation)
	})
}
