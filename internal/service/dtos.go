package service

// DomainScore is one ranked domain on the 0–100 display scale. Score is nil
// when the domain has no responses in the period.
type DomainScore struct {
	Domain    string   `json:"domain"`
	Score     *float64 `json:"score"`
	Delta     float64  `json:"delta"`
	Rationale string   `json:"rationale"`
}

// TeamAttentionItem is one entry of the needs-attention list.
type TeamAttentionItem struct {
	TeamID        string   `json:"teamId"`
	Name          string   `json:"name"`
	Score         float64  `json:"score"`
	Delta         float64  `json:"delta"`
	Participation *float64 `json:"participation,omitempty"`
}

// Participation is the classified response-rate picture.
type Participation struct {
	Rate    *float64 `json:"rate"`
	Delta   float64  `json:"delta"`
	Label   string   `json:"label"`
	Caution string   `json:"caution,omitempty"`
}

// EscalationSignal is the trajectory flag plus its reasons. Note always
// carries the trajectory disclaimer.
type EscalationSignal struct {
	Level   string   `json:"level"`
	Reasons []string `json:"reasons"`
	Note    string   `json:"note"`
}

// ActionTile is one suggested intervention.
type ActionTile struct {
	DomainKey  string   `json:"domainKey"`
	Title      string   `json:"title"`
	Steps      []string `json:"steps"`
	SuccessCue string   `json:"successCue"`
	Timeframe  string   `json:"timeframe"`
}

// Dashboard is the full executive risk picture for one scope and period.
type Dashboard struct {
	CompositeIndex  *float64            `json:"compositeIndex"`
	CompositeDelta  float64             `json:"compositeDelta"`
	DomainScores    []DomainScore       `json:"domainScores"`
	PrimaryDomain   *string             `json:"primaryDomain"`
	SecondaryDomain *string             `json:"secondaryDomain"`
	Teams           []TeamAttentionItem `json:"teamsNeedingAttention"`
	Participation   Participation       `json:"participation"`
	Escalation      EscalationSignal    `json:"escalation"`
	Actions         []ActionTile        `json:"actions"`
	Responders      int                 `json:"responders"`
}

// TrendPoint is one calendar week of the trend series.
type TrendPoint struct {
	WeekStart      string   `json:"weekStart"`
	CompositeIndex *float64 `json:"compositeIndex"`
	Responses      int      `json:"responses"`
	Participation  *float64 `json:"participation"`
}

// TeamBreakdownItem is one team's current standing, nil-scored when the team
// has insufficient data for a composite.
type TeamBreakdownItem struct {
	TeamID        string   `json:"teamId"`
	Name          string   `json:"name"`
	Score         *float64 `json:"score"`
	PrevScore     *float64 `json:"prevScore"`
	Delta         float64  `json:"delta"`
	Participation *float64 `json:"participation"`
	Responders    int      `json:"responders"`
}
