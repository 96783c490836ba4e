package engine

import "sort"

// Rationale strings come from a fixed decision table; presentation shows them
// verbatim.
const (
	RationaleBelowAndDeclining = "Below tolerance and declining"
	RationaleBelowTolerance    = "Below tolerance"
	RationaleDeclining         = "Declining"
	RationaleMonitor           = "Monitor"
)

// DomainPriority is one ranked domain. Score and Delta are on the 0–100
// display scale; PriorityScore is the internal [0,1] ordering value and is
// never shown to end users.
type DomainPriority struct {
	Domain        Domain
	Score         float64
	Delta         float64
	PriorityScore float64
	Rationale     string
}

// DomainRanking orders the domains by urgency and names the focus picks.
// Primary is always non-nil when at least one domain has data.
type DomainRanking struct {
	Items     []DomainPriority
	Primary   *DomainPriority
	Secondary *DomainPriority
}

// RankDomains scores each domain by severity, trend, and cross-team spread,
// then orders them by urgency. current and previous are 1–5 domain averages;
// a domain absent from current is left out of the ranking, and a domain
// absent from previous gets a zero delta. spread carries an optional per-
// domain dispersion (cross-team standard deviation on the 0–100 scale); nil
// means spread contributes nothing.
func RankDomains(current, previous map[Domain]float64, spread map[Domain]float64, th Thresholds) DomainRanking {
	items := make([]DomainPriority, 0, len(Domains))
	for _, d := range Domains {
		avg, ok := current[d]
		if !ok {
			continue
		}
		score := clamp(avg*20, 0, 100)

		var delta float64
		if prev, ok := previous[d]; ok {
			delta = round10(score - clamp(prev*20, 0, 100))
		}

		var severity float64
		if score < th.DomainTolerance {
			severity = clamp((th.DomainTolerance-score)/th.DomainTolerance, 0, 1)
		}
		trend := trendComponent(delta)

		var disp float64
		if spread != nil {
			disp = clamp(spread[d]/30, 0, 1)
		}

		items = append(items, DomainPriority{
			Domain:        d,
			Score:         score,
			Delta:         delta,
			PriorityScore: 0.55*severity + 0.35*trend + 0.10*disp,
			Rationale:     domainRationale(score < th.DomainTolerance, delta < 0),
		})
	}

	// Items start in declared domain order, so the stable sort breaks
	// priority ties deterministically.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PriorityScore > items[j].PriorityScore
	})

	ranking := DomainRanking{Items: items}
	if len(items) == 0 {
		return ranking
	}

	primaryIdx := 0
	for i := range items {
		if items[i].Score < th.DomainTolerance {
			primaryIdx = i
			break
		}
	}
	ranking.Primary = &items[primaryIdx]

	for i := primaryIdx + 1; i < len(items); i++ {
		if items[i].Score < th.DomainTolerance {
			ranking.Secondary = &items[i]
			break
		}
	}
	if ranking.Secondary == nil {
		for i := range items {
			if i != primaryIdx {
				ranking.Secondary = &items[i]
				break
			}
		}
	}
	return ranking
}

func domainRationale(belowTolerance, declining bool) string {
	switch {
	case belowTolerance && declining:
		return RationaleBelowAndDeclining
	case belowTolerance:
		return RationaleBelowTolerance
	case declining:
		return RationaleDeclining
	default:
		return RationaleMonitor
	}
}
