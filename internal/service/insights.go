package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/beaconhq/beacon-server/internal/engine"
	"github.com/beaconhq/beacon-server/internal/repository/models"
)

const (
	dbTimeout  = 2 * time.Second
	trendWeeks = 12
)

var (
	ErrNoResponses    = errors.New("no responses found")
	ErrStorageFailure = errors.New("storage failure")
)

// InsightsService turns raw survey responses into the executive risk picture.
// All scoring happens in the engine package; this layer fetches a complete
// period snapshot and wires the engine's outputs together.
type InsightsService struct {
	storage    SurveyRepository
	thresholds engine.Thresholds
	logger     *zap.Logger
}

// NewInsightsService creates a new InsightsService instance.
func NewInsightsService(storage SurveyRepository, th engine.Thresholds, logger *zap.Logger) *InsightsService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &InsightsService{
		storage:    storage,
		thresholds: th,
		logger:     logger,
	}
}

// snapshot is the fully materialized input set for one dashboard request.
// Every ranking function downstream assumes all of it is present, so the
// fetches run concurrently but all complete before any computation starts.
type snapshot struct {
	current   []engine.Response
	previous  []engine.Response
	trailing  []engine.Response
	eligible  int
	teamSizes map[string]int
	teams     []models.OrgNode
}

func (s *InsightsService) fetchSnapshot(ctx context.Context, scope models.Scope, start, end time.Time) (*snapshot, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	duration := end.Sub(start)
	prevStart := start.Add(-duration)
	trailingStart := engine.WeekStart(end).AddDate(0, 0, -7*(trendWeeks-1))

	snap := &snapshot{}
	g, gctx := errgroup.WithContext(dbCtx)

	g.Go(func() error {
		rows, err := s.storage.GetResponses(gctx, scope, start, end)
		if err != nil {
			return fmt.Errorf("current responses: %w", err)
		}
		snap.current = toEngineResponses(rows)
		return nil
	})
	g.Go(func() error {
		rows, err := s.storage.GetResponses(gctx, scope, prevStart, start)
		if err != nil {
			return fmt.Errorf("previous responses: %w", err)
		}
		snap.previous = toEngineResponses(rows)
		return nil
	})
	g.Go(func() error {
		rows, err := s.storage.GetResponses(gctx, scope, trailingStart, end)
		if err != nil {
			return fmt.Errorf("trailing responses: %w", err)
		}
		snap.trailing = toEngineResponses(rows)
		return nil
	})
	g.Go(func() error {
		count, err := s.storage.GetEligibleHeadcount(gctx, scope)
		if err != nil {
			return fmt.Errorf("eligible headcount: %w", err)
		}
		snap.eligible = count
		return nil
	})
	g.Go(func() error {
		sizes, err := s.storage.GetTeamHeadcounts(gctx, scope)
		if err != nil {
			return fmt.Errorf("team headcounts: %w", err)
		}
		snap.teamSizes = sizes
		return nil
	})
	g.Go(func() error {
		teams, err := s.storage.GetTeams(gctx, scope)
		if err != nil {
			return fmt.Errorf("teams: %w", err)
		}
		snap.teams = teams
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return snap, nil
}

// GetDashboard computes the full risk picture for the requested scope and
// period. An empty period is not an error: the dashboard degrades to nil
// index, empty rankings, and a low-confidence participation label.
func (s *InsightsService) GetDashboard(ctx context.Context, scope models.Scope, start, end time.Time) (Dashboard, error) {
	snap, err := s.fetchSnapshot(ctx, scope, start, end)
	if err != nil {
		return Dashboard{}, err
	}
	th := s.thresholds

	curOrg := orgAggregate(snap.current)
	prevOrg := orgAggregate(snap.previous)

	composite := engine.CompositeIndex(curOrg.DomainAverages, th)
	prevComposite := engine.CompositeIndex(prevOrg.DomainAverages, th)

	var compositeDelta float64
	if composite != nil && prevComposite != nil {
		compositeDelta = round10(*composite - *prevComposite)
	}

	teamScores, spread := s.buildTeamScores(snap, th)
	ranking := engine.RankDomains(curOrg.DomainAverages, prevOrg.DomainAverages, spread, th)

	dashboard := Dashboard{
		CompositeIndex: composite,
		CompositeDelta: compositeDelta,
		DomainScores:   toDomainScores(ranking.Items),
		Teams:          toAttentionItems(engine.RankTeams(teamScores, th)),
		Participation:  s.classifyParticipation(curOrg, prevOrg, snap.eligible, th),
		Escalation:     s.detectEscalation(snap, curOrg, teamScores, th),
		Actions:        toActionTiles(ranking),
		Responders:     curOrg.Responders,
	}
	if ranking.Primary != nil {
		d := string(ranking.Primary.Domain)
		dashboard.PrimaryDomain = &d
	}
	if ranking.Secondary != nil {
		d := string(ranking.Secondary.Domain)
		dashboard.SecondaryDomain = &d
	}

	s.logger.Info("dashboard computed",
		zap.Int("responses", curOrg.ResponseCount),
		zap.Int("teams", len(snap.teams)),
		zap.String("escalation", dashboard.Escalation.Level),
		zap.Time("start", start),
		zap.Time("end", end))

	return dashboard, nil
}

// GetTrend returns the weekly composite/participation series for the window.
func (s *InsightsService) GetTrend(ctx context.Context, scope models.Scope, start, end time.Time) ([]TrendPoint, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var rows []models.SurveyResponse
	var eligible int

	g, gctx := errgroup.WithContext(dbCtx)
	g.Go(func() error {
		var err error
		rows, err = s.storage.GetResponses(gctx, scope, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		eligible, err = s.storage.GetEligibleHeadcount(gctx, scope)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	buckets := engine.WeeklySeries(toEngineResponses(rows), engine.Filter{})
	if len(buckets) == 0 {
		return nil, ErrNoResponses
	}

	points := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, TrendPoint{
			WeekStart:      b.Start.Format("2006-01-02"),
			CompositeIndex: engine.CompositeIndex(b.DomainAverages, s.thresholds),
			Responses:      b.ResponseCount,
			Participation:  engine.ParticipationRate(b.Responders, eligible),
		})
	}
	return points, nil
}

// GetTeamBreakdown returns every team in scope with current and previous
// composite scores. Teams with no data keep nil scores rather than zeros.
func (s *InsightsService) GetTeamBreakdown(ctx context.Context, scope models.Scope, start, end time.Time) ([]TeamBreakdownItem, error) {
	snap, err := s.fetchSnapshot(ctx, scope, start, end)
	if err != nil {
		return nil, err
	}
	if len(snap.teams) == 0 {
		return nil, ErrNoResponses
	}
	th := s.thresholds

	curByTeam := teamAggregates(snap.current)
	prevByTeam := teamAggregates(snap.previous)

	items := make([]TeamBreakdownItem, 0, len(snap.teams))
	for _, team := range snap.teams {
		item := TeamBreakdownItem{TeamID: team.ID, Name: team.Name}

		if agg, ok := curByTeam[team.ID]; ok {
			item.Score = engine.CompositeIndex(agg.DomainAverages, th)
			item.Responders = agg.Responders
			item.Participation = engine.ParticipationRate(agg.Responders, snap.teamSizes[team.ID])
		}
		if agg, ok := prevByTeam[team.ID]; ok {
			item.PrevScore = engine.CompositeIndex(agg.DomainAverages, th)
		}
		if item.Score != nil && item.PrevScore != nil {
			item.Delta = round10(*item.Score - *item.PrevScore)
		}
		items = append(items, item)
	}
	return items, nil
}

// buildTeamScores assembles the ranker input and the per-domain cross-team
// dispersion. Teams without a full composite are left out of ranking and
// spread; dispersion is the population standard deviation of team scores per
// domain, zero below two teams.
func (s *InsightsService) buildTeamScores(snap *snapshot, th engine.Thresholds) ([]engine.TeamScore, map[engine.Domain]float64) {
	names := make(map[string]string, len(snap.teams))
	for _, t := range snap.teams {
		names[t.ID] = t.Name
	}

	curByTeam := teamAggregates(snap.current)
	prevByTeam := teamAggregates(snap.previous)

	var scores []engine.TeamScore
	domainValues := make(map[engine.Domain][]float64)

	for _, team := range snap.teams {
		agg, ok := curByTeam[team.ID]
		if !ok {
			continue
		}
		for d, v := range engine.DomainScores100(agg.DomainAverages) {
			domainValues[d] = append(domainValues[d], v)
		}

		composite := engine.CompositeIndex(agg.DomainAverages, th)
		if composite == nil {
			continue
		}
		ts := engine.TeamScore{
			TeamID:        team.ID,
			Name:          names[team.ID],
			Score:         *composite,
			Participation: engine.ParticipationRate(agg.Responders, snap.teamSizes[team.ID]),
		}
		if prevAgg, ok := prevByTeam[team.ID]; ok {
			ts.PrevScore = engine.CompositeIndex(prevAgg.DomainAverages, th)
		}
		scores = append(scores, ts)
	}

	spread := make(map[engine.Domain]float64, len(domainValues))
	for d, vals := range domainValues {
		spread[d] = engine.StdDev(vals)
	}
	return scores, spread
}

func (s *InsightsService) classifyParticipation(cur, prev engine.GroupAggregate, eligible int, th engine.Thresholds) Participation {
	rate := engine.ParticipationRate(cur.Responders, eligible)
	prevRate := engine.ParticipationRate(prev.Responders, eligible)

	var delta float64
	if rate != nil && prevRate != nil {
		delta = round10(*rate - *prevRate)
	}

	summary := engine.ClassifyParticipation(rate, delta, th)
	return Participation{
		Rate:    summary.Rate,
		Delta:   summary.Delta,
		Label:   summary.Label,
		Caution: summary.Caution,
	}
}

func (s *InsightsService) detectEscalation(snap *snapshot, curOrg engine.GroupAggregate, teamScores []engine.TeamScore, th engine.Thresholds) EscalationSignal {
	var series []float64
	for _, b := range engine.WeeklySeries(snap.trailing, engine.Filter{}) {
		if c := engine.CompositeIndex(b.DomainAverages, th); c != nil {
			series = append(series, *c)
		}
	}

	var safety *float64
	if v, ok := engine.DomainScores100(curOrg.DomainAverages)[engine.DomainSafety]; ok {
		safety = &v
	}

	scores := make([]float64, 0, len(teamScores))
	for _, t := range teamScores {
		scores = append(scores, t.Score)
	}

	esc := engine.DetectEscalation(series, safety, scores, th)
	return EscalationSignal{
		Level:   string(esc.Level),
		Reasons: esc.Reasons,
		Note:    engine.EscalationDisclaimer,
	}
}

func orgAggregate(responses []engine.Response) engine.GroupAggregate {
	aggs := engine.Aggregate(responses, engine.GroupOrg, engine.Filter{})
	if len(aggs) == 1 {
		return aggs[0]
	}
	return engine.GroupAggregate{DomainAverages: map[engine.Domain]float64{}}
}

func teamAggregates(responses []engine.Response) map[string]engine.GroupAggregate {
	out := make(map[string]engine.GroupAggregate)
	for _, agg := range engine.Aggregate(responses, engine.GroupTeam, engine.Filter{}) {
		out[agg.Key] = agg
	}
	return out
}

func toEngineResponses(rows []models.SurveyResponse) []engine.Response {
	out := make([]engine.Response, 0, len(rows))
	for _, r := range rows {
		scores := make(map[engine.Domain]int, 5)
		for d, v := range map[engine.Domain]*int{
			engine.DomainSentiment:  r.Sentiment,
			engine.DomainClarity:    r.Clarity,
			engine.DomainWorkload:   r.Workload,
			engine.DomainSafety:     r.Safety,
			engine.DomainLeadership: r.Leadership,
		} {
			if v != nil {
				scores[d] = *v
			}
		}
		out = append(out, engine.Response{
			SubmittedAt:  r.SubmittedAt,
			EmployeeRef:  r.EmployeeRef,
			TeamID:       r.TeamID,
			DepartmentID: r.DepartmentID,
			DivisionID:   r.DivisionID,
			Scores:       scores,
		})
	}
	return out
}

func toDomainScores(items []engine.DomainPriority) []DomainScore {
	out := make([]DomainScore, 0, len(items))
	for _, item := range items {
		score := item.Score
		out = append(out, DomainScore{
			Domain:    string(item.Domain),
			Score:     &score,
			Delta:     item.Delta,
			Rationale: item.Rationale,
		})
	}
	return out
}

func toAttentionItems(ranked []engine.TeamPriority) []TeamAttentionItem {
	out := make([]TeamAttentionItem, 0, len(ranked))
	for _, t := range ranked {
		out = append(out, TeamAttentionItem{
			TeamID:        t.TeamID,
			Name:          t.Name,
			Score:         t.Score,
			Delta:         t.Delta,
			Participation: t.Participation,
		})
	}
	return out
}

func toActionTiles(ranking engine.DomainRanking) []ActionTile {
	var primary, secondary *engine.Domain
	if ranking.Primary != nil {
		primary = &ranking.Primary.Domain
	}
	if ranking.Secondary != nil {
		secondary = &ranking.Secondary.Domain
	}

	tiles := engine.RecommendActions(primary, secondary)
	out := make([]ActionTile, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, ActionTile{
			DomainKey:  string(t.DomainKey),
			Title:      t.Title,
			Steps:      t.Steps[:],
			SuccessCue: t.SuccessCue,
			Timeframe:  t.Timeframe,
		})
	}
	return out
}

func round10(v float64) float64 {
	return math.Round(v*10) / 10
}
