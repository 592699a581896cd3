package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/api"
)

const opportunitiesBasePath = "/api/v1/opportunities"

// OpportunityService is the typed facade over /api/v1/opportunities.
type OpportunityService struct {
	api *api.Client
}

// NewOpportunityService creates an OpportunityService.
func NewOpportunityService(client *api.Client) *OpportunityService {
	return &OpportunityService{api: client}
}

// List returns one page of opportunities matching the filter parameters.
func (s *OpportunityService) List(ctx context.Context, p domain.OpportunityListParams) (*domain.Paginated[domain.Opportunity], error) {
	q := url.Values{}
	pagination(q, p.Page, p.Limit)
	setString(q, "search", p.Search)
	setString(q, "stage", string(p.Stage))
	setInt(q, "assigned_to", p.AssignedTo)
	setString(q, "company", p.Company)
	setFloatPtr(q, "amount_min", p.AmountMin)
	setFloatPtr(q, "amount_max", p.AmountMax)
	setIntPtr(q, "probability_min", p.ProbabilityMin)
	setIntPtr(q, "probability_max", p.ProbabilityMax)

	var out domain.Paginated[domain.Opportunity]
	if err := s.api.Get(ctx, opportunitiesBasePath, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single opportunity by id.
func (s *OpportunityService) Get(ctx context.Context, id int) (*domain.Opportunity, error) {
	var out domain.Opportunity
	if err := s.api.Get(ctx, fmt.Sprintf("%s/%d", opportunitiesBasePath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create validates the form and submits a new opportunity.
func (s *OpportunityService) Create(ctx context.Context, form *domain.OpportunityFormData) (*domain.Opportunity, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &domain.ErrValidation{Fields: errs}
	}

	var out domain.Opportunity
	if err := s.api.Post(ctx, opportunitiesBasePath, nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update submits a partial update. Zero-valued fields are omitted from
// the payload and left unchanged by the server.
func (s *OpportunityService) Update(ctx context.Context, id int, form *domain.OpportunityFormData) (*domain.Opportunity, error) {
	var errs []domain.FieldError
	if form.Amount < 0 {
		errs = append(errs, domain.FieldError{Field: "amount", Message: "amount must not be negative"})
	}
	if form.Probability < 0 || form.Probability > 100 {
		errs = append(errs, domain.FieldError{Field: "probability", Message: "probability must be between 0 and 100"})
	}
	if len(errs) > 0 {
		return nil, &domain.ErrValidation{Fields: errs}
	}

	var out domain.Opportunity
	if err := s.api.Put(ctx, fmt.Sprintf("%s/%d", opportunitiesBasePath, id), nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an opportunity.
func (s *OpportunityService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("%s/%d", opportunitiesBasePath, id), nil)
}

// UpdateStage moves an opportunity to a new pipeline stage.
func (s *OpportunityService) UpdateStage(ctx context.Context, id int, stage domain.OpportunityStage) (*domain.Opportunity, error) {
	body := struct {
		Stage domain.OpportunityStage `json:"stage"`
	}{Stage: stage}

	var out domain.Opportunity
	if err := s.api.Patch(ctx, fmt.Sprintf("%s/%d", opportunitiesBasePath, id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByStage returns up to 100 opportunities in the given stage.
func (s *OpportunityService) ByStage(ctx context.Context, stage domain.OpportunityStage) ([]domain.Opportunity, error) {
	page, err := s.List(ctx, domain.OpportunityListParams{Stage: stage, Limit: 100})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Pipeline fetches the opportunities for every stage, one sequential
// list call per stage. Callers that need a consistent snapshot must not
// mutate concurrently.
func (s *OpportunityService) Pipeline(ctx context.Context) (map[domain.OpportunityStage][]domain.Opportunity, error) {
	pipeline := make(map[domain.OpportunityStage][]domain.Opportunity, len(domain.AllStages))
	for _, stage := range domain.AllStages {
		opps, err := s.ByStage(ctx, stage)
		if err != nil {
			return nil, fmt.Errorf("pipeline stage %s: %w", stage, err)
		}
		pipeline[stage] = opps
	}
	return pipeline, nil
}

// Stats returns aggregate pipeline statistics.
func (s *OpportunityService) Stats(ctx context.Context) (*domain.OpportunityStats, error) {
	var out domain.OpportunityStats
	if err := s.api.Get(ctx, opportunitiesBasePath+"/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Forecast returns the revenue forecast for a period
// ("month", "quarter" or "year"; defaults to quarter).
func (s *OpportunityService) Forecast(ctx context.Context, period string) (*domain.Forecast, error) {
	if period == "" {
		period = "quarter"
	}
	q := url.Values{}
	q.Set("period", period)

	var out domain.Forecast
	if err := s.api.Get(ctx, opportunitiesBasePath+"/forecast", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
