package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/api"
)

const contactsBasePath = "/api/v1/contacts"

// ContactService is the typed facade over /api/v1/contacts.
type ContactService struct {
	api *api.Client
}

// NewContactService creates a ContactService.
func NewContactService(client *api.Client) *ContactService {
	return &ContactService{api: client}
}

// List returns one page of contacts matching the filter parameters.
func (s *ContactService) List(ctx context.Context, p domain.ContactListParams) (*domain.Paginated[domain.Contact], error) {
	q := url.Values{}
	pagination(q, p.Page, p.Limit)
	setString(q, "search", p.Search)
	setString(q, "company", p.Company)
	setString(q, "lead_source", p.LeadSource)
	setBoolPtr(q, "is_active", p.IsActive)

	var out domain.Paginated[domain.Contact]
	if err := s.api.Get(ctx, contactsBasePath, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a single contact by id.
func (s *ContactService) Get(ctx context.Context, id int) (*domain.Contact, error) {
	var out domain.Contact
	if err := s.api.Get(ctx, fmt.Sprintf("%s/%d", contactsBasePath, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create validates the form and submits a new contact.
func (s *ContactService) Create(ctx context.Context, form *domain.ContactFormData) (*domain.Contact, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, &domain.ErrValidation{Fields: errs}
	}

	var out domain.Contact
	if err := s.api.Post(ctx, contactsBasePath, nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update submits a partial update. Zero-valued fields are omitted from
// the payload and left unchanged by the server.
func (s *ContactService) Update(ctx context.Context, id int, form *domain.ContactFormData) (*domain.Contact, error) {
	if form.Email != "" && !domain.ValidEmail(form.Email) {
		return nil, &domain.ErrValidation{Fields: []domain.FieldError{
			{Field: "email", Message: "invalid email address"},
		}}
	}

	var out domain.Contact
	if err := s.api.Put(ctx, fmt.Sprintf("%s/%d", contactsBasePath, id), nil, form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a contact.
func (s *ContactService) Delete(ctx context.Context, id int) error {
	return s.api.Delete(ctx, fmt.Sprintf("%s/%d", contactsBasePath, id), nil)
}

// Recent returns the most recently created contacts.
func (s *ContactService) Recent(ctx context.Context, limit int) ([]domain.Contact, error) {
	if limit <= 0 {
		limit = 5
	}
	page, err := s.List(ctx, domain.ContactListParams{Page: 1, Limit: limit})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// Search returns contacts matching a free-text query.
func (s *ContactService) Search(ctx context.Context, query string) ([]domain.Contact, error) {
	page, err := s.List(ctx, domain.ContactListParams{Search: query, Limit: 50})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}
