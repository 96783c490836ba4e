package httpapi

import (
	"context"
	"time"

	"github.com/beaconhq/beacon-server/internal/repository/models"
	"github.com/beaconhq/beacon-server/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// InsightsService is the read API the handlers serve.
type InsightsService interface {
	GetDashboard(ctx context.Context, scope models.Scope, start, end time.Time) (service.Dashboard, error)
	GetTrend(ctx context.Context, scope models.Scope, start, end time.Time) ([]service.TrendPoint, error)
	GetTeamBreakdown(ctx context.Context, scope models.Scope, start, end time.Time) ([]service.TeamBreakdownItem, error)
}
