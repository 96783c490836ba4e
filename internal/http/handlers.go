package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/beaconhq/beacon-server/internal/repository/models"
	"github.com/beaconhq/beacon-server/internal/service"
)

const (
	defaultCacheDuration  = 10 * time.Minute
	defaultRequestTimeout = 10 * time.Second

	dateLayout = "2006-01-02"
)

type CacheKeyType string

const (
	cacheKeyDashboard CacheKeyType = "http:insights_dashboard"
	cacheKeyTrend     CacheKeyType = "http:insights_trend"
	cacheKeyTeams     CacheKeyType = "http:insights_teams"
)

// InsightsHandlers serves the read-only dashboard API with read-through
// caching in front of the insights service.
type InsightsHandlers struct {
	insights InsightsService
	cache    Cacher
	logger   *zap.Logger
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

// NewInsightsHandlers initializes the HTTP handlers.
func NewInsightsHandlers(insights InsightsService, cache Cacher, logger *zap.Logger, ttl time.Duration) *InsightsHandlers {
	if insights == nil {
		panic("nil InsightsService provided to NewInsightsHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &InsightsHandlers{
		insights: insights,
		cache:    cache,
		logger:   logger.Named("http-handler"),
		cacheTTL: ttl,
	}
}

// parseAndValidate extracts the scope and period from query parameters.
// start and end are required dates; end must fall after start.
func (h *InsightsHandlers) parseAndValidate(r *http.Request) (scope models.Scope, start, end time.Time, err error) {
	q := r.URL.Query()
	scope = models.Scope{
		DivisionID:   q.Get("division"),
		DepartmentID: q.Get("department"),
		TeamID:       q.Get("team"),
	}

	startStr, endStr := q.Get("start"), q.Get("end")
	if startStr == "" || endStr == "" {
		err = errors.New("start and end dates are required")
		return
	}
	start, err = time.ParseInLocation(dateLayout, startStr, time.UTC)
	if err != nil {
		err = fmt.Errorf("invalid start date %q", startStr)
		return
	}
	end, err = time.ParseInLocation(dateLayout, endStr, time.UTC)
	if err != nil {
		err = fmt.Errorf("invalid end date %q", endStr)
		return
	}
	if !end.After(start) {
		err = errors.New("end date must be after start date")
		return
	}
	return
}

func normalizeKey(prefix CacheKeyType, scope models.Scope, start, end time.Time) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s:%s",
		prefix,
		scope.DivisionID, scope.DepartmentID, scope.TeamID,
		start.Format(dateLayout), end.Format(dateLayout))
}

func (h *InsightsHandlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *InsightsHandlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *InsightsHandlers) handleError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	switch ctx.Err() {
	case context.Canceled:
		h.logger.Warn("request canceled", zap.String("op", op))
		h.writeError(w, http.StatusRequestTimeout, "request canceled")
		return
	case context.DeadlineExceeded:
		h.logger.Warn("request timeout", zap.String("op", op))
		h.writeError(w, http.StatusGatewayTimeout, "request timed out")
		return
	}

	switch {
	case errors.Is(err, service.ErrNoResponses):
		h.logger.Info("no responses found", zap.String("op", op))
		h.writeError(w, http.StatusNotFound, "no responses found for the given period")
	case errors.Is(err, service.ErrStorageFailure):
		h.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "database error")
	default:
		h.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, op+" failed")
	}
}

// GetDashboard serves the full executive risk picture for one scope/period.
func (h *InsightsHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	scope, start, end, err := h.parseAndValidate(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyDashboard, scope, start, end)

	dashboard, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey, h.cacheTTL, h.logger, func(fetchCtx context.Context) (service.Dashboard, error) {
		return h.insights.GetDashboard(fetchCtx, scope, start, end)
	})
	if err != nil {
		h.handleError(ctx, w, "GetDashboard", err)
		return
	}

	h.writeJSON(w, http.StatusOK, dashboard)
}

// GetTrend serves the weekly composite/participation series.
func (h *InsightsHandlers) GetTrend(w http.ResponseWriter, r *http.Request) {
	scope, start, end, err := h.parseAndValidate(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyTrend, scope, start, end)

	points, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey, h.cacheTTL, h.logger, func(fetchCtx context.Context) ([]service.TrendPoint, error) {
		return h.insights.GetTrend(fetchCtx, scope, start, end)
	})
	if err != nil {
		h.handleError(ctx, w, "GetTrend", err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"points": points})
}

// GetTeamBreakdown serves per-team scores for the scope/period.
func (h *InsightsHandlers) GetTeamBreakdown(w http.ResponseWriter, r *http.Request) {
	scope, start, end, err := h.parseAndValidate(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaultRequestTimeout)
	defer cancel()

	cacheKey := normalizeKey(cacheKeyTeams, scope, start, end)

	teams, err := FindAndCache(ctx, h.cache, &h.sfGroup, cacheKey, h.cacheTTL, h.logger, func(fetchCtx context.Context) ([]service.TeamBreakdownItem, error) {
		return h.insights.GetTeamBreakdown(fetchCtx, scope, start, end)
	})
	if err != nil {
		h.handleError(ctx, w, "GetTeamBreakdown", err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}
