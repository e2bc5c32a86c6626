package apiclient

import (
	"context"

	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/mapping"
	"github.com/hochfrequenz/automation-portal/internal/wire"
)

// DefaultActivityLimit is the feed length requested when none is given
const DefaultActivityLimit = 10

// DashboardService reads the dashboard endpoints
type DashboardService struct {
	c *Client
}

// Dashboard returns the dashboard endpoints
func (c *Client) Dashboard() *DashboardService {
	return &DashboardService{c: c}
}

// Stats fetches the dashboard counters
func (s *DashboardService) Stats(ctx context.Context) (domain.DashboardStats, error) {
	resp, err := s.c.Get(ctx, "/dashboard/stats", nil)
	if err != nil {
		return domain.DashboardStats{}, err
	}
	body, err := decode[wire.DashboardStatsResponse](resp, "dashboard stats")
	if err != nil {
		return domain.DashboardStats{}, err
	}
	return mapping.DashboardStats(body.Stats), nil
}

// Activities fetches the most recent activity feed entries
func (s *DashboardService) Activities(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	resp, err := s.c.Get(ctx, "/dashboard/activities", Params{"limit": limit})
	if err != nil {
		return nil, err
	}
	body, err := decode[wire.ActivitiesResponse](resp, "activities")
	if err != nil {
		return nil, err
	}
	return mapping.Activities(body.Activities), nil
}
