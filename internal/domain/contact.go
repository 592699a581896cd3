package domain

import "strings"

// Contact is a CRM contact record as returned by /api/v1/contacts.
type Contact struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	Company      string `json:"company,omitempty"`
	Title        string `json:"title,omitempty"`
	Department   string `json:"department,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	Website      string `json:"website,omitempty"`
	IsActive     bool   `json:"is_active"`
	LeadSource   string `json:"lead_source,omitempty"`
	Notes        string `json:"notes,omitempty"`
	TenantID     int    `json:"tenant_id"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// ContactFormData mirrors Contact minus the server-assigned fields
// (id, timestamps, tenant_id, full_name).
type ContactFormData struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	Company      string `json:"company,omitempty"`
	Title        string `json:"title,omitempty"`
	Department   string `json:"department,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	Website      string `json:"website,omitempty"`
	LeadSource   string `json:"lead_source,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Validate checks the form before submission. Returns nil when clean.
func (f *ContactFormData) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(f.FirstName) == "" {
		errs = append(errs, FieldError{Field: "first_name", Message: "first name is required"})
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs = append(errs, FieldError{Field: "last_name", Message: "last name is required"})
	}
	if f.Email != "" && !ValidEmail(f.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "invalid email address"})
	}
	return errs
}

// ValidEmail applies the same lenient shape check the original forms
// used: one '@' with a dot somewhere after it.
func ValidEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}

// ContactListParams are the query parameters accepted by the contacts
// list endpoint.
type ContactListParams struct {
	Page       int
	Limit      int
	Search     string
	Company    string
	LeadSource string
	IsActive   *bool
}
