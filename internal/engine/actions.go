package engine

// ActionTile is a concrete, time-boxed intervention suggestion mapped from a
// priority domain.
type ActionTile struct {
	DomainKey  Domain
	Title      string
	Steps      [2]string
	SuccessCue string
	Timeframe  string
}

const actionTimeframe = "Next 7 days"

// actionTemplates is a closed static map; the sentiment entry doubles as the
// general-friction fallback.
var actionTemplates = map[Domain]ActionTile{
	DomainSentiment: {
		DomainKey: DomainSentiment,
		Title:     "Reduce everyday friction",
		Steps: [2]string{
			"Ask each team to name its two biggest daily blockers.",
			"Remove or visibly escalate the most common blocker.",
		},
		SuccessCue: "People mention one concrete thing that got easier this week.",
		Timeframe:  actionTimeframe,
	},
	DomainClarity: {
		DomainKey: DomainClarity,
		Title:     "Reset priorities and ownership",
		Steps: [2]string{
			"Publish each team's top three priorities for the next fortnight.",
			"Confirm a single named owner for every in-flight piece of work.",
		},
		SuccessCue: "Anyone asked can say what their team's top priority is.",
		Timeframe:  actionTimeframe,
	},
	DomainWorkload: {
		DomainKey: DomainWorkload,
		Title:     "Rebalance load hotspots",
		Steps: [2]string{
			"Review after-hours activity and meeting load with each team lead.",
			"Pause or reassign one low-value commitment per overloaded team.",
		},
		SuccessCue: "At least one team reports a lighter week than the last.",
		Timeframe:  actionTimeframe,
	},
	DomainSafety: {
		DomainKey: DomainSafety,
		Title:     "Rebuild speak-up safety",
		Steps: [2]string{
			"Have leaders open the next team meeting by naming a recent mistake of their own.",
			"Close the loop publicly on one previously raised concern.",
		},
		SuccessCue: "A concern is raised in a group setting without being routed around the manager.",
		Timeframe:  actionTimeframe,
	},
	DomainLeadership: {
		DomainKey: DomainLeadership,
		Title:     "Increase leader visibility",
		Steps: [2]string{
			"Schedule a short skip-level conversation for each senior leader.",
			"Share one decision this week with its reasoning attached.",
		},
		SuccessCue: "Teams can repeat back why a recent decision was made.",
		Timeframe:  actionTimeframe,
	},
}

// RecommendActions maps the primary and secondary priority domains to exactly
// two action tiles. A nil primary falls back to the general-friction template;
// a nil or duplicate secondary does the same so the caller never renders an
// empty or repeated slot.
func RecommendActions(primary, secondary *Domain) [2]ActionTile {
	first := actionTemplates[DomainSentiment]
	if primary != nil {
		if t, ok := actionTemplates[*primary]; ok {
			first = t
		}
	}

	second := actionTemplates[DomainSentiment]
	if secondary != nil && *secondary != first.DomainKey {
		if t, ok := actionTemplates[*secondary]; ok {
			second = t
		}
	}

	return [2]ActionTile{first, second}
}
