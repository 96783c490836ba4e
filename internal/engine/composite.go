package engine

// CompositeIndex folds five domain averages (1–5 scale) into the 0–100
// composite using the fixed weights. The result is nil when any domain has no
// data: a partial average would silently misstate the weighting, so missing
// input propagates as missing output.
func CompositeIndex(avgs map[Domain]float64, th Thresholds) *float64 {
	var weighted float64
	for _, d := range Domains {
		v, ok := avgs[d]
		if !ok {
			return nil
		}
		weighted += v * th.CompositeWeights[d]
	}
	return ptr(clamp(weighted*20, 0, 100))
}

// DomainScores100 converts 1–5 domain averages to the 0–100 display scale,
// preserving absence.
func DomainScores100(avgs map[Domain]float64) map[Domain]float64 {
	out := make(map[Domain]float64, len(avgs))
	for d, v := range avgs {
		out[d] = clamp(v*20, 0, 100)
	}
	return out
}
