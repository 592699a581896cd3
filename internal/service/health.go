package service

import (
	"context"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/api"
)

// HealthService probes the backend's health endpoints. Pass-through,
// no interpretation.
type HealthService struct {
	api *api.Client
}

// NewHealthService creates a HealthService.
func NewHealthService(client *api.Client) *HealthService {
	return &HealthService{api: client}
}

// Check calls GET /health.
func (s *HealthService) Check(ctx context.Context) (*domain.HealthStatus, error) {
	var out domain.HealthStatus
	if err := s.api.Get(ctx, "/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Services calls GET /health/services.
func (s *HealthService) Services(ctx context.Context) (*domain.ServicesHealth, error) {
	var out domain.ServicesHealth
	if err := s.api.Get(ctx, "/health/services", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
