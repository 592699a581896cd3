package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/api"
)

const dashboardBasePath = "/api/v1/dashboard"

// DashboardService is the typed facade over /api/v1/dashboard.
type DashboardService struct {
	api *api.Client
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(client *api.Client) *DashboardService {
	return &DashboardService{api: client}
}

// Summary returns the aggregated dashboard view.
func (s *DashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	var out domain.DashboardSummary
	if err := s.api.Get(ctx, dashboardBasePath+"/summary", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Metrics returns the headline dashboard numbers.
func (s *DashboardService) Metrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	var out domain.DashboardMetrics
	if err := s.api.Get(ctx, dashboardBasePath+"/metrics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChartData returns one chart series. chartType is one of "revenue",
// "pipeline", "activities", "leads"; period defaults to "month".
func (s *DashboardService) ChartData(ctx context.Context, chartType, period string) ([]domain.ChartPoint, error) {
	if period == "" {
		period = "month"
	}
	q := url.Values{}
	q.Set("period", period)

	var out []domain.ChartPoint
	if err := s.api.Get(ctx, fmt.Sprintf("%s/charts/%s", dashboardBasePath, chartType), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecentActivities returns the most recent activity entries.
func (s *DashboardService) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var out []domain.Activity
	if err := s.api.Get(ctx, dashboardBasePath+"/recent-activities", q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TopPerformers returns the leaderboard view.
func (s *DashboardService) TopPerformers(ctx context.Context) (*domain.TopPerformers, error) {
	var out domain.TopPerformers
	if err := s.api.Get(ctx, dashboardBasePath+"/top-performers", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
