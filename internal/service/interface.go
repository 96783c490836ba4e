package service

import (
	"context"
	"time"

	"github.com/beaconhq/beacon-server/internal/repository/models"
)

// SurveyRepository defines the data-store operations the insights service
// depends on. All queries are scoped reads; the engine never writes.
type SurveyRepository interface {
	GetResponses(ctx context.Context, scope models.Scope, start, end time.Time) ([]models.SurveyResponse, error)
	GetEligibleHeadcount(ctx context.Context, scope models.Scope) (int, error)
	GetTeamHeadcounts(ctx context.Context, scope models.Scope) (map[string]int, error)
	GetTeams(ctx context.Context, scope models.Scope) ([]models.OrgNode, error)
}
