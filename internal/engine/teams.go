package engine

import "sort"

// maxAttentionTeams caps the needs-attention list.
const maxAttentionTeams = 5

// TeamScore is one team's current standing on the 0–100 scale. PrevScore and
// Participation are nil when the team has no prior period or no headcount.
type TeamScore struct {
	TeamID        string
	Name          string
	Score         float64
	PrevScore     *float64
	Participation *float64
}

// TeamPriority is one entry of the needs-attention list.
type TeamPriority struct {
	TeamID        string
	Name          string
	Score         float64
	Delta         float64
	Participation *float64
	PriorityScore float64
}

// RankTeams returns the most urgent teams below the attention threshold,
// ordered by severity and decline, at most five entries. Teams at or above
// the threshold never appear: this is a needs-attention list, not a full
// ranking. Ties keep the caller's input order.
func RankTeams(teams []TeamScore, th Thresholds) []TeamPriority {
	out := make([]TeamPriority, 0, len(teams))
	for _, t := range teams {
		if t.Score >= th.TeamAttention {
			continue
		}

		var delta float64
		if t.PrevScore != nil {
			delta = round10(t.Score - *t.PrevScore)
		}

		severity := (th.TeamAttention - t.Score) / th.TeamAttention
		trend := trendComponent(delta)

		out = append(out, TeamPriority{
			TeamID:        t.TeamID,
			Name:          t.Name,
			Score:         t.Score,
			Delta:         delta,
			Participation: t.Participation,
			PriorityScore: 0.6*severity + 0.4*trend,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})

	if len(out) > maxAttentionTeams {
		out = out[:maxAttentionTeams]
	}
	return out
}
