package engine

// Confidence labels and cautions are fixed copy; boundaries sit on the
// absolute rate only, inclusive on the high side.
const (
	ConfidenceHigh     = "High confidence"
	ConfidenceModerate = "Moderate confidence"
	ConfidenceLow      = "Low confidence"

	CautionModerate = "Participation below target may mask underlying strain."
	CautionLow      = "Low participation — interpret results with caution."
)

// ParticipationSummary is the classified participation picture. Delta is
// carried through for display and never moves the band boundaries.
type ParticipationSummary struct {
	Rate    *float64
	Delta   float64
	Label   string
	Caution string
}

// ClassifyParticipation maps a participation rate to its confidence band. A
// nil rate (no eligible employees) classifies as low confidence so the reader
// is warned rather than shown a fabricated number.
func ClassifyParticipation(rate *float64, delta float64, th Thresholds) ParticipationSummary {
	s := ParticipationSummary{Rate: rate, Delta: delta}
	switch {
	case rate == nil:
		s.Label = ConfidenceLow
		s.Caution = CautionLow
	case *rate >= th.ParticipationHigh:
		s.Label = ConfidenceHigh
	case *rate >= th.ParticipationModerate:
		s.Label = ConfidenceModerate
		s.Caution = CautionModerate
	default:
		s.Label = ConfidenceLow
		s.Caution = CautionLow
	}
	return s
}
