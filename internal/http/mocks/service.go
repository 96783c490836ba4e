package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/beaconhq/beacon-server/internal/repository/models"
	"github.com/beaconhq/beacon-server/internal/service"
)

// MockInsightsService is a mock implementation of the InsightsService
// interface for testing the handler layer.
type MockInsightsService struct {
	GetDashboardFunc     func(ctx context.Context, scope models.Scope, start, end time.Time) (service.Dashboard, error)
	GetTrendFunc         func(ctx context.Context, scope models.Scope, start, end time.Time) ([]service.TrendPoint, error)
	GetTeamBreakdownFunc func(ctx context.Context, scope models.Scope, start, end time.Time) ([]service.TeamBreakdownItem, error)
}

// GetDashboard implements the InsightsService interface
func (m *MockInsightsService) GetDashboard(ctx context.Context, scope models.Scope, start, end time.Time) (service.Dashboard, error) {
	if m.GetDashboardFunc != nil {
		return m.GetDashboardFunc(ctx, scope, start, end)
	}
	return service.Dashboard{}, errors.New("GetDashboardFunc not implemented")
}

// GetTrend implements the InsightsService interface
func (m *MockInsightsService) GetTrend(ctx context.Context, scope models.Scope, start, end time.Time) ([]service.TrendPoint, error) {
	if m.GetTrendFunc != nil {
		return m.GetTrendFunc(ctx, scope, start, end)
	}
	return nil, errors.New("GetTrendFunc not implemented")
}

// GetTeamBreakdown implements the InsightsService interface
func (m *MockInsightsService) GetTeamBreakdown(ctx context.Context, scope models.Scope, start, end time.Time) ([]service.TeamBreakdownItem, error) {
	if m.GetTeamBreakdownFunc != nil {
		return m.GetTeamBreakdownFunc(ctx, scope, start, end)
	}
	return nil, errors.New("GetTeamBreakdownFunc not implemented")
}
