//go:build e2e

package e2e

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/beaconhq/beacon-server/internal/engine"
	httpapi "github.com/beaconhq/beacon-server/internal/http"
	"github.com/beaconhq/beacon-server/internal/repository"
	"github.com/beaconhq/beacon-server/internal/service"
	"github.com/beaconhq/beacon-server/tests/e2e/mocks"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)

	_, err = db.Exec(repository.Schema)
	require.NoError(t, err)

	// One division > one department > two teams, four active employees plus
	// one inactive who must not count toward participation.
	_, err = db.Exec(`
	INSERT INTO org_nodes (id, name, kind, parent_id) VALUES
	('div1', 'Field Ops', 'division', NULL),
	('dep1', 'Logistics', 'department', 'div1'),
	('t1', 'Dispatch', 'team', 'dep1'),
	('t2', 'Warehouse', 'team', 'dep1');

	INSERT INTO employees (id, team_id, active) VALUES
	('e1', 't1', 1),
	('e2', 't1', 1),
	('e3', 't2', 1),
	('e4', 't2', 1),
	('e5', 't2', 0);

	INSERT INTO responses (id, submitted_at, employee_ref, team_id, department_id, division_id,
	                       sentiment, clarity, workload, safety, leadership) VALUES
	-- current week (2025-06-02 Monday)
	('r1', '2025-06-03T09:00:00Z', 'e1', 't1', 'dep1', 'div1', 4, 4, 4, 4, 4),
	('r2', '2025-06-04T10:00:00Z', 'e2', 't1', 'dep1', 'div1', 4, 4, 4, 4, 4),
	('r3', '2025-06-05T11:00:00Z', 'e3', 't2', 'dep1', 'div1', 2, 2, 2, 2, 2),
	-- previous week
	('r4', '2025-05-28T09:00:00Z', 'e1', 't1', 'dep1', 'div1', 5, 5, 5, 5, 5);
	`)
	require.NoError(t, err)

	return db
}

func setupRouter(t *testing.T, db *sql.DB, cache httpapi.Cacher) *httpapi.Router {
	logger := zap.NewNop()

	repo := repository.NewSurveyRepository(db)
	svc := service.NewInsightsService(repo, engine.DefaultThresholds(), logger)
	handlers := httpapi.NewInsightsHandlers(svc, cache, logger, time.Minute)

	router := httpapi.NewRouter(logger)
	router.RegisterInsightRoutes(handlers)
	return router
}

func TestE2E_GetDashboard(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	router := setupRouter(t, db, &mocks.InMemoryCache{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/insights/dashboard?start=2025-06-02&end=2025-06-09", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var dashboard service.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))

	// Org average sub-score is 10/3 per domain, so the composite lands at 66.7.
	require.NotNil(t, dashboard.CompositeIndex)
	assert.InDelta(t, 66.7, *dashboard.CompositeIndex, 0.05)
	assert.InDelta(t, -33.3, dashboard.CompositeDelta, 0.05)

	require.NotNil(t, dashboard.PrimaryDomain)
	assert.Equal(t, "sentiment", *dashboard.PrimaryDomain)
	require.Len(t, dashboard.DomainScores, 5)

	require.Len(t, dashboard.Teams, 1, "only Warehouse is below the attention threshold")
	assert.Equal(t, "t2", dashboard.Teams[0].TeamID)
	assert.Equal(t, "Warehouse", dashboard.Teams[0].Name)
	assert.InDelta(t, 40.0, dashboard.Teams[0].Score, 0.05)

	require.NotNil(t, dashboard.Participation.Rate)
	assert.InDelta(t, 75.0, *dashboard.Participation.Rate, 0.05)
	assert.Equal(t, engine.ConfidenceHigh, dashboard.Participation.Label)
	assert.Equal(t, 3, dashboard.Responders)

	// 40-point spread between Dispatch and Warehouse flags wide team spread,
	// but alone it stays below the moderate escalation threshold.
	assert.Equal(t, string(engine.EscalationLow), dashboard.Escalation.Level)
	assert.Contains(t, dashboard.Escalation.Reasons, engine.ReasonTeamSpread)
	assert.NotEmpty(t, dashboard.Escalation.Note)

	require.Len(t, dashboard.Actions, 2)
	assert.Equal(t, "sentiment", dashboard.Actions[0].DomainKey)
	assert.NotEqual(t, dashboard.Actions[0].DomainKey, dashboard.Actions[1].DomainKey)
}

func TestE2E_GetDashboardScoped(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	router := setupRouter(t, db, &mocks.InMemoryCache{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/insights/dashboard?start=2025-06-02&end=2025-06-09&team=t1", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var dashboard service.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dashboard))

	require.NotNil(t, dashboard.CompositeIndex)
	assert.InDelta(t, 80.0, *dashboard.CompositeIndex, 0.05)
	assert.Equal(t, 2, dashboard.Responders)
	assert.Empty(t, dashboard.Teams, "Dispatch alone is above the attention threshold")

	require.NotNil(t, dashboard.Participation.Rate)
	assert.InDelta(t, 100.0, *dashboard.Participation.Rate, 0.05)
}

func TestE2E_GetTrend(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	router := setupRouter(t, db, &mocks.InMemoryCache{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/insights/trend?start=2025-05-26&end=2025-06-09", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Points []service.TrendPoint `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Points, 2)

	first, second := envelope.Points[0], envelope.Points[1]

	assert.Equal(t, "2025-05-26", first.WeekStart)
	require.NotNil(t, first.CompositeIndex)
	assert.InDelta(t, 100.0, *first.CompositeIndex, 0.05)
	assert.Equal(t, 1, first.Responses)

	assert.Equal(t, "2025-06-02", second.WeekStart)
	require.NotNil(t, second.CompositeIndex)
	assert.InDelta(t, 66.7, *second.CompositeIndex, 0.05)
	assert.Equal(t, 3, second.Responses)
}

func TestE2E_GetTeamBreakdown(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	router := setupRouter(t, db, &mocks.InMemoryCache{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/insights/teams?start=2025-06-02&end=2025-06-09", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Teams []service.TeamBreakdownItem `json:"teams"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Teams, 2)

	// GetTeams orders by name: Dispatch before Warehouse.
	dispatch, warehouse := envelope.Teams[0], envelope.Teams[1]

	assert.Equal(t, "t1", dispatch.TeamID)
	require.NotNil(t, dispatch.Score)
	assert.InDelta(t, 80.0, *dispatch.Score, 0.05)
	require.NotNil(t, dispatch.Participation)
	assert.InDelta(t, 100.0, *dispatch.Participation, 0.05)
	assert.Equal(t, 2, dispatch.Responders)

	assert.Equal(t, "t2", warehouse.TeamID)
	require.NotNil(t, warehouse.Score)
	assert.InDelta(t, 40.0, *warehouse.Score, 0.05)
	require.NotNil(t, warehouse.Participation)
	assert.InDelta(t, 50.0, *warehouse.Participation, 0.05)
}

func TestE2E_CacheBehavior(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cache := mocks.NewTrackingCache()
	router := setupRouter(t, db, cache)

	url := "/api/v1/insights/dashboard?start=2025-06-02&end=2025-06-09"

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, first.Code)

	// The miss path populates the cache asynchronously.
	require.Eventually(t, func() bool {
		_, sets := cache.Counts()
		return sets >= 1
	}, 2*time.Second, 10*time.Millisecond)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, second.Code)

	gets, _ := cache.Counts()
	assert.Equal(t, 2, gets)
	assert.JSONEq(t, first.Body.String(), second.Body.String())
}
