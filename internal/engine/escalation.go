package engine

// EscalationLevel is the trajectory flag shown to executives.
type EscalationLevel string

const (
	EscalationLow      EscalationLevel = "Low"
	EscalationModerate EscalationLevel = "Moderate"
	EscalationHigh     EscalationLevel = "High"
)

// Reason strings emitted by the detector, fixed copy.
const (
	ReasonDeclineStreak = "Several periods of decline in a row."
	ReasonSafetyLow     = "Psychological safety below critical level."
	ReasonTeamSpread    = "Wide spread between team scores."
)

// EscalationDisclaimer accompanies every escalation signal in user-facing
// copy. The signal describes trajectory, not predicted incidents or claims.
const EscalationDisclaimer = "Escalation signals reflect trajectory, not predictions of incidents."

const maxEscalationReasons = 3

// Escalation is the detector output. Reasons holds at most three entries in
// detection order.
type Escalation struct {
	Level   EscalationLevel
	Score   float64
	Reasons []string
}

// DetectEscalation scores three independent trajectory conditions and maps
// the sum to a level. trend is the chronological composite series, safety the
// current psychological-safety score on 0–100 (nil when unknown), teamScores
// the current team composites.
func DetectEscalation(trend []float64, safety *float64, teamScores []float64, th Thresholds) Escalation {
	var score float64
	var reasons []string

	if declineStreak(trend) >= th.DeclineStreak {
		score += 45
		reasons = append(reasons, ReasonDeclineStreak)
	}
	if safety != nil && *safety < th.SafetyCritical {
		score += 40
		reasons = append(reasons, ReasonSafetyLow)
	}
	if len(teamScores) >= 2 && teamRange(teamScores) > th.TeamRange {
		score += 25
		reasons = append(reasons, ReasonTeamSpread)
	}

	score = clamp(score, 0, 100)
	if len(reasons) > maxEscalationReasons {
		reasons = reasons[:maxEscalationReasons]
	}

	level := EscalationLow
	switch {
	case score >= 60:
		level = EscalationHigh
	case score >= 30:
		level = EscalationModerate
	}

	return Escalation{Level: level, Score: score, Reasons: reasons}
}

// declineStreak counts consecutive period-over-period declines ending at the
// most recent point.
func declineStreak(series []float64) int {
	streak := 0
	for i := len(series) - 1; i > 0; i-- {
		if series[i] < series[i-1] {
			streak++
		} else {
			break
		}
	}
	return streak
}

func teamRange(scores []float64) float64 {
	min, max := scores[0], scores[0]
	for _, s := range scores[1:] {
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	return max - min
}
