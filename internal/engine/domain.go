// Package engine implements the wellbeing scoring core: period aggregation,
// the composite index, domain and team priority ranking, participation
// confidence, escalation signals, and action recommendations. Everything in
// this package is a pure transform over already-fetched data; callers own all
// I/O, timeouts, and logging.
package engine

import "math"

// Domain is one of the five psychosocial measurement dimensions.
type Domain string

const (
	DomainSentiment  Domain = "sentiment"
	DomainClarity    Domain = "clarity"
	DomainWorkload   Domain = "workload"
	DomainSafety     Domain = "safety"
	DomainLeadership Domain = "leadership"
)

// Domains lists every domain in its declared order. Ranking uses this order
// to break ties, so it must stay stable.
var Domains = []Domain{
	DomainSentiment,
	DomainClarity,
	DomainWorkload,
	DomainSafety,
	DomainLeadership,
}

// Thresholds holds every tunable constant of the engine. Values are fixed at
// startup and passed explicitly into each function; core domain weighting
// remains fixed and is not runtime-editable.
type Thresholds struct {
	// CompositeWeights maps each domain to its share of the composite index.
	// The shares sum to 1.
	CompositeWeights map[Domain]float64

	TeamAttention   float64 // teams scoring below this need attention
	DomainTolerance float64 // domains scoring below this are flagged
	SafetyCritical  float64 // psychological-safety floor for escalation
	DeclineStreak   int     // consecutive declines that trigger escalation
	TeamRange       float64 // max-min team spread that triggers escalation

	ParticipationHigh     float64
	ParticipationModerate float64
}

// DefaultThresholds returns the production constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CompositeWeights: map[Domain]float64{
			DomainSentiment:  0.25,
			DomainWorkload:   0.25,
			DomainSafety:     0.20,
			DomainLeadership: 0.20,
			DomainClarity:    0.10,
		},
		TeamAttention:         60,
		DomainTolerance:       70,
		SafetyCritical:        50,
		DeclineStreak:         3,
		TeamRange:             30,
		ParticipationHigh:     70,
		ParticipationModerate: 50,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// round10 rounds to one decimal place, the precision used for all displayed
// deltas.
func round10(v float64) float64 {
	return math.Round(v*10) / 10
}

// trendComponent converts a period-over-period delta into a [0,1] urgency
// contribution. Only declines contribute; a 20-point drop saturates it.
func trendComponent(delta float64) float64 {
	if delta >= 0 {
		return 0
	}
	return clamp(-delta/20, 0, 1)
}

func ptr(v float64) *float64 { return &v }
