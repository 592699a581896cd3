package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/api"
)

const activitiesBasePath = "/api/v1/activities"

// ActivityService is the typed facade over /api/v1/activities.
type ActivityService struct {
	api *api.Client

	// now is injectable for the date-relative convenience queries.
	now func() time.Time
}

// NewActivityService creates an ActivityService.
func NewActivityService(client *api.Client) *ActivityService {
	return &ActivityService{api: client, now: time.Now}
}

// List returns one page of activities matching the filter parameters.
func (s *ActivityService) List(ctx context.Context, p domain.ActivityListParams) (*domain.Paginated[domain.Activity], error) {
	q := url.Values{}
	pagination(q, p.Page, p.Limit)
	setString(q, "search", p.Search)
	setString(q, "type", string(p.Type))
	setString(q, "status", string(p.Status))
	setInt(q, "assigned_to", p.AssignedTo)
	setInt(q, "contact_id", p.ContactID)
	setInt(q, "opportunity_id", p.OpportunityID)
	setString(q, "priority", p.Priority)
	setString(q, "due_date", p.DueDate)
	setString(q, "due_date_start", p.DueDateStart)
	setString(q, "due_date_end", p.DueDateEnd)
	setBool(q, "overdue", p.Overdue)

	var out domain.Paginated[domain.Activity]
	if err := s.api.Get(ctx, activitiesBasePath, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single activity by id.
func (s *ActivityService) Get(ctx context.Context, id int) (*domain.Activity, error) {
	var out domain.Activity
	if err := s.api.Get(ctx, fmt.Sprintf("%s/%d", activitiesBasePath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create validates the form and submits a new activity.
func (s *ActivityService) Create(ctx context.Context, form *domain.ActivityFormData) (*domain.Activity, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &domain.ErrValidation{Fields: errs}
	}

	var out domain.Activity
	if err := s.api.Post(ctx, activitiesBasePath, nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update submits a partial update. Zero-valued fields are omitted from
// the payload and left unchanged by the server.
func (s *ActivityService) Update(ctx context.Context, id int, form *domain.ActivityFormData) (*domain.Activity, error) {
	if form.DurationMinutes < 0 {
		return nil, &domain.ErrValidation{Fields: []domain.FieldError{
			{Field: "duration_minutes", Message: "duration must not be negative"},
		}}
	}

	var out domain.Activity
	if err := s.api.Put(ctx, fmt.Sprintf("%s/%d", activitiesBasePath, id), nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an activity.
func (s *ActivityService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("%s/%d", activitiesBasePath, id), nil)
}

// UpdateStatus moves an activity to a new status.
func (s *ActivityService) UpdateStatus(ctx context.Context, id int, status domain.ActivityStatus) (*domain.Activity, error) {
	body := struct {
		Status domain.ActivityStatus `json:"status"`
	}{Status: status}

	var out domain.Activity
	if err := s.api.Patch(ctx, fmt.Sprintf("%s/%d", activitiesBasePath, id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Complete marks an activity as completed, with optional closing notes.
func (s *ActivityService) Complete(ctx context.Context, id int, notes string) (*domain.Activity, error) {
	body := struct {
		Notes string `json:"notes,omitempty"`
	}{Notes: notes}

	var out domain.Activity
	if err := s.api.Patch(ctx, fmt.Sprintf("%s/%d/complete", activitiesBasePath, id), nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Today returns activities due today.
func (s *ActivityService) Today(ctx context.Context) ([]domain.Activity, error) {
	today := s.now().Format("2006-01-02")
	page, err := s.List(ctx, domain.ActivityListParams{DueDate: today, Limit: 100})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Overdue returns activities past their due date.
func (s *ActivityService) Overdue(ctx context.Context) ([]domain.Activity, error) {
	page, err := s.List(ctx, domain.ActivityListParams{Overdue: true, Limit: 100})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Upcoming returns activities due within the next days (default 7).
func (s *ActivityService) Upcoming(ctx context.Context, days int) ([]domain.Activity, error) {
	if days <= 0 {
		days = 7
	}
	start := s.now()
	end := start.AddDate(0, 0, days)

	page, err := s.List(ctx, domain.ActivityListParams{
		DueDateStart: start.Format("2006-01-02"),
		DueDateEnd:   end.Format("2006-01-02"),
		Limit:        100,
	})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Stats returns aggregate activity statistics.
func (s *ActivityService) Stats(ctx context.Context) (*domain.ActivityStats, error) {
	var out domain.ActivityStats
	if err := s.api.Get(ctx, activitiesBasePath+"/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ForContact returns the activities linked to a contact.
func (s *ActivityService) ForContact(ctx context.Context, contactID int) ([]domain.Activity, error) {
	page, err := s.List(ctx, domain.ActivityListParams{ContactID: contactID, Limit: 100})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// ForOpportunity returns the activities linked to an opportunity.
func (s *ActivityService) ForOpportunity(ctx context.Context, opportunityID int) ([]domain.Activity, error) {
	page, err := s.List(ctx, domain.ActivityListParams{OpportunityID: opportunityID, Limit: 100})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}
