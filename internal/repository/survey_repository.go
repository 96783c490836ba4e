package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/beaconhq/beacon-server/internal/repository/models"
)

// SurveyRepository reads survey responses and the org hierarchy from the
// relational store. It validates sub-score ranges on the way out: a score
// outside 1–5 is an upstream contract violation and fails the read instead of
// being clamped into the aggregates.
type SurveyRepository struct {
	db *sql.DB
}

func NewSurveyRepository(db *sql.DB) *SurveyRepository {
	return &SurveyRepository{db: db}
}

// scopeConditions appends WHERE fragments for the hierarchy scope. prefix is
// the table alias owning the division/department/team columns.
func scopeConditions(scope models.Scope, prefix string, conds []string, args []any) ([]string, []any) {
	if scope.DivisionID != "" {
		conds = append(conds, prefix+".division_id = ?")
		args = append(args, scope.DivisionID)
	}
	if scope.DepartmentID != "" {
		conds = append(conds, prefix+".department_id = ?")
		args = append(args, scope.DepartmentID)
	}
	if scope.TeamID != "" {
		conds = append(conds, prefix+".team_id = ?")
		args = append(args, scope.TeamID)
	}
	return conds, args
}

func joinConditions(conds []string) string {
	return strings.Join(conds, " AND ")
}

// GetResponses returns every response in scope with submitted_at in
// [start, end), ordered by submission time.
func (r *SurveyRepository) GetResponses(ctx context.Context, scope models.Scope, start, end time.Time) ([]models.SurveyResponse, error) {
	conds := []string{"r.submitted_at >= ?", "r.submitted_at < ?"}
	args := []any{start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)}
	conds, args = scopeConditions(scope, "r", conds, args)

	query := `
		SELECT r.id, r.submitted_at, COALESCE(r.employee_ref, ''),
		       r.team_id, r.department_id, r.division_id,
		       r.sentiment, r.clarity, r.workload, r.safety, r.leadership
		FROM responses AS r
		WHERE ` + joinConditions(conds) + `
		ORDER BY r.submitted_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query GetResponses: %w", err)
	}
	defer rows.Close()

	var results []models.SurveyResponse
	for rows.Next() {
		resp, err := scanResponse(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetResponses: %w", err)
	}
	return results, nil
}

func scanResponse(rows *sql.Rows) (models.SurveyResponse, error) {
	var resp models.SurveyResponse
	var submittedAt string
	var subs [5]sql.NullInt64

	if err := rows.Scan(&resp.ID, &submittedAt, &resp.EmployeeRef,
		&resp.TeamID, &resp.DepartmentID, &resp.DivisionID,
		&subs[0], &subs[1], &subs[2], &subs[3], &subs[4]); err != nil {
		return models.SurveyResponse{}, fmt.Errorf("scan GetResponses row: %w", err)
	}

	ts, err := time.Parse(time.RFC3339, submittedAt)
	if err != nil {
		return models.SurveyResponse{}, fmt.Errorf("parse submitted_at for response %s: %w", resp.ID, err)
	}
	resp.SubmittedAt = ts

	dests := []**int{&resp.Sentiment, &resp.Clarity, &resp.Workload, &resp.Safety, &resp.Leadership}
	for i, s := range subs {
		if !s.Valid {
			continue
		}
		v := int(s.Int64)
		if v < 1 || v > 5 {
			return models.SurveyResponse{}, fmt.Errorf("response %s: sub-score %d out of range", resp.ID, v)
		}
		*dests[i] = &v
	}
	return resp, nil
}

// GetEligibleHeadcount counts active employees in scope. Inactive employees
// never count toward participation.
func (r *SurveyRepository) GetEligibleHeadcount(ctx context.Context, scope models.Scope) (int, error) {
	conds := []string{"e.active = 1"}
	var args []any
	if scope.TeamID != "" {
		conds = append(conds, "e.team_id = ?")
		args = append(args, scope.TeamID)
	}
	if scope.DepartmentID != "" {
		conds = append(conds, "t.parent_id = ?")
		args = append(args, scope.DepartmentID)
	}
	if scope.DivisionID != "" {
		conds = append(conds, "dpt.parent_id = ?")
		args = append(args, scope.DivisionID)
	}

	query := `
		SELECT COUNT(e.id)
		FROM employees AS e
		JOIN org_nodes AS t ON e.team_id = t.id
		LEFT JOIN org_nodes AS dpt ON t.parent_id = dpt.id
		WHERE ` + joinConditions(conds)

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("query GetEligibleHeadcount: %w", err)
	}
	return count, nil
}

// GetTeamHeadcounts returns the active headcount per team in scope, keyed by
// team id.
func (r *SurveyRepository) GetTeamHeadcounts(ctx context.Context, scope models.Scope) (map[string]int, error) {
	conds := []string{"e.active = 1"}
	var args []any
	if scope.TeamID != "" {
		conds = append(conds, "e.team_id = ?")
		args = append(args, scope.TeamID)
	}
	if scope.DepartmentID != "" {
		conds = append(conds, "t.parent_id = ?")
		args = append(args, scope.DepartmentID)
	}
	if scope.DivisionID != "" {
		conds = append(conds, "dpt.parent_id = ?")
		args = append(args, scope.DivisionID)
	}

	query := `
		SELECT e.team_id, COUNT(e.id)
		FROM employees AS e
		JOIN org_nodes AS t ON e.team_id = t.id
		LEFT JOIN org_nodes AS dpt ON t.parent_id = dpt.id
		WHERE ` + joinConditions(conds) + `
		GROUP BY e.team_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query GetTeamHeadcounts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var teamID string
		var count int
		if err := rows.Scan(&teamID, &count); err != nil {
			return nil, fmt.Errorf("scan GetTeamHeadcounts row: %w", err)
		}
		counts[teamID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetTeamHeadcounts: %w", err)
	}
	return counts, nil
}

// GetTeams lists the team nodes in scope, ordered by name.
func (r *SurveyRepository) GetTeams(ctx context.Context, scope models.Scope) ([]models.OrgNode, error) {
	conds := []string{"t.kind = 'team'"}
	var args []any
	if scope.TeamID != "" {
		conds = append(conds, "t.id = ?")
		args = append(args, scope.TeamID)
	}
	if scope.DepartmentID != "" {
		conds = append(conds, "t.parent_id = ?")
		args = append(args, scope.DepartmentID)
	}
	if scope.DivisionID != "" {
		conds = append(conds, "dpt.parent_id = ?")
		args = append(args, scope.DivisionID)
	}

	query := `
		SELECT t.id, t.name, t.kind, COALESCE(t.parent_id, '')
		FROM org_nodes AS t
		LEFT JOIN org_nodes AS dpt ON t.parent_id = dpt.id
		WHERE ` + joinConditions(conds) + `
		ORDER BY t.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query GetTeams: %w", err)
	}
	defer rows.Close()

	var teams []models.OrgNode
	for rows.Next() {
		var n models.OrgNode
		if err := rows.Scan(&n.ID, &n.Name, &n.Kind, &n.ParentID); err != nil {
			return nil, fmt.Errorf("scan GetTeams row: %w", err)
		}
		teams = append(teams, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate GetTeams: %w", err)
	}
	return teams, nil
}
