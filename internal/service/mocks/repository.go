package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/beaconhq/beacon-server/internal/repository/models"
)

// MockSurveyRepository is a mock implementation of the SurveyRepository
// interface for testing the service layer.
type MockSurveyRepository struct {
	GetResponsesFunc         func(ctx context.Context, scope models.Scope, start, end time.Time) ([]models.SurveyResponse, error)
	GetEligibleHeadcountFunc func(ctx context.Context, scope models.Scope) (int, error)
	GetTeamHeadcountsFunc    func(ctx context.Context, scope models.Scope) (map[string]int, error)
	GetTeamsFunc             func(ctx context.Context, scope models.Scope) ([]models.OrgNode, error)
}

// GetResponses implements the SurveyRepository interface
func (m *MockSurveyRepository) GetResponses(ctx context.Context, scope models.Scope, start, end time.Time) ([]models.SurveyResponse, error) {
	if m.GetResponsesFunc != nil {
		return m.GetResponsesFunc(ctx, scope, start, end)
	}
	return nil, errors.New("GetResponsesFunc not implemented")
}

// GetEligibleHeadcount implements the SurveyRepository interface
func (m *MockSurveyRepository) GetEligibleHeadcount(ctx context.Context, scope models.Scope) (int, error) {
	if m.GetEligibleHeadcountFunc != nil {
		return m.GetEligibleHeadcountFunc(ctx, scope)
	}
	return 0, errors.New("GetEligibleHeadcountFunc not implemented")
}

// GetTeamHeadcounts implements the SurveyRepository interface
func (m *MockSurveyRepository) GetTeamHeadcounts(ctx context.Context, scope models.Scope) (map[string]int, error) {
	if m.GetTeamHeadcountsFunc != nil {
		return m.GetTeamHeadcountsFunc(ctx, scope)
	}
	return nil, errors.New("GetTeamHeadcountsFunc not implemented")
}

// GetTeams implements the SurveyRepository interface
func (m *MockSurveyRepository) GetTeams(ctx context.Context, scope models.Scope) ([]models.OrgNode, error) {
	if m.GetTeamsFunc != nil {
		return m.GetTeamsFunc(ctx, scope)
	}
	return nil, errors.New("GetTeamsFunc not implemented")
}
