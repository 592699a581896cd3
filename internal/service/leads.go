package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/api"
)

const leadsBasePath = "/api/v1/leads"

// LeadService is the typed facade over /api/v1/leads.
type LeadService struct {
	api *api.Client
}

// NewLeadService creates a LeadService.
func NewLeadService(client *api.Client) *LeadService {
	return &LeadService{api: client}
}

// List returns one page of leads matching the filter parameters.
func (s *LeadService) List(ctx context.Context, p domain.LeadListParams) (*domain.Paginated[domain.Lead], error) {
	q := url.Values{}
	pagination(q, p.Page, p.Limit)
	setString(q, "search", p.Search)
	setString(q, "status", string(p.Status))
	setString(q, "source", string(p.Source))
	setInt(q, "assigned_to", p.AssignedTo)
	setString(q, "priority", p.Priority)
	setIntPtr(q, "score_min", p.ScoreMin)
	setIntPtr(q, "score_max", p.ScoreMax)

	var out domain.Paginated[domain.Lead]
	if err := s.api.Get(ctx, leadsBasePath, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single lead by id.
func (s *LeadService) Get(ctx context.Context, id int) (*domain.Lead, error) {
	var out domain.Lead
	if err := s.api.Get(ctx, fmt.Sprintf("%s/%d", leadsBasePath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create validates the form and submits a new lead.
func (s *LeadService) Create(ctx context.Context, form *domain.LeadFormData) (*domain.Lead, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &domain.ErrValidation{Fields: errs}
	}

	var out domain.Lead
	if err := s.api.Post(ctx, leadsBasePath, nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update submits a partial update. Zero-valued fields are omitted from
// the payload and left unchanged by the server.
func (s *LeadService) Update(ctx context.Context, id int, form *domain.LeadFormData) (*domain.Lead, error) {
	var errs []domain.FieldError
	if form.Email != "" && !domain.ValidEmail(form.Email) {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email address"})
	}
	if form.EstimatedValue < 0 {
		errs = append(errs, domain.FieldError{Field: "estimated_value", Message: "estimated value must not be negative"})
	}
	if len(errs) > 0 {
		return nil, &domain.ErrValidation{Fields: errs}
	}

	var out domain.Lead
	if err := s.api.Put(ctx, fmt.Sprintf("%s/%d", leadsBasePath, id), nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a lead.
func (s *LeadService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("%s/%d", leadsBasePath, id), nil)
}

// UpdateStatus moves a lead to a new lifecycle status.
func (s *LeadService) UpdateStatus(ctx context.Context, id int, status domain.LeadStatus) (*domain.Lead, error) {
	body := struct {
		Status domain.LeadStatus `json:"status"`
	}{Status: status}

	var out domain.Lead
	if err := s.api.Patch(ctx, fmt.Sprintf("%s/%d", leadsBasePath, id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Score asks the server to re-score all leads.
func (s *LeadService) Score(ctx context.Context) error {
	return s.api.Post(ctx, leadsBasePath+"/score", nil, nil, nil)
}

// Convert converts a qualified lead into a contact and an opportunity.
func (s *LeadService) Convert(ctx context.Context, id int) (*domain.LeadConversion, error) {
	var out domain.LeadConversion
	if err := s.api.Post(ctx, fmt.Sprintf("%s/%d/convert", leadsBasePath, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ByStatus returns up to 100 leads in the given status.
func (s *LeadService) ByStatus(ctx context.Context, status domain.LeadStatus) ([]domain.Lead, error) {
	page, err := s.List(ctx, domain.LeadListParams{Status: status, Limit: 100})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// HighScore returns leads scoring at or above minScore.
func (s *LeadService) HighScore(ctx context.Context, minScore int) ([]domain.Lead, error) {
	if minScore <= 0 {
		minScore = 70
	}
	page, err := s.List(ctx, domain.LeadListParams{ScoreMin: &minScore, Limit: 50})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}
