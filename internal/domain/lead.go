package domain

import "strings"

// LeadStatus is the lifecycle stage of a lead.
type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "new"
	LeadStatusContacted   LeadStatus = "contacted"
	LeadStatusQualified   LeadStatus = "qualified"
	LeadStatusUnqualified LeadStatus = "unqualified"
	LeadStatusConverted   LeadStatus = "converted"
	LeadStatusLost        LeadStatus = "lost"
)

// LeadSource records where a lead came from.
type LeadSource string

const (
	LeadSourceWebsite         LeadSource = "website"
	LeadSourceEmailMarketing  LeadSource = "email_marketing"
	LeadSourceSocialMedia     LeadSource = "social_media"
	LeadSourceReferral        LeadSource = "referral"
	LeadSourceColdCall        LeadSource = "cold_call"
	LeadSourceTradeShow       LeadSource = "trade_show"
	LeadSourceWebinar         LeadSource = "webinar"
	LeadSourceContentDownload LeadSource = "content_download"
	LeadSourceOther           LeadSource = "other"
)

// Priority levels shared by leads and activities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Lead is a sales lead as returned by /api/v1/leads.
type Lead struct {
	ID                       int        `json:"id"`
	FirstName                string     `json:"first_name"`
	LastName                 string     `json:"last_name"`
	FullName                 string     `json:"full_name"`
	Email                    string     `json:"email"`
	Phone                    string     `json:"phone,omitempty"`
	Company                  string     `json:"company"`
	Title                    string     `json:"title,omitempty"`
	Industry                 string     `json:"industry,omitempty"`
	CompanySize              string     `json:"company_size,omitempty"`
	AnnualRevenue            string     `json:"annual_revenue,omitempty"`
	Status                   LeadStatus `json:"status"`
	Source                   LeadSource `json:"source"`
	Score                    int        `json:"score"`
	Priority                 string     `json:"priority"`
	EstimatedValue           float64    `json:"estimated_value,omitempty"`
	ExpectedCloseDate        string     `json:"expected_close_date,omitempty"`
	AssignedTo               int        `json:"assigned_to,omitempty"`
	BudgetQualified          bool       `json:"budget_qualified"`
	AuthorityQualified       bool       `json:"authority_qualified"`
	NeedQualified            bool       `json:"need_qualified"`
	TimelineQualified        bool       `json:"timeline_qualified"`
	IsQualified              bool       `json:"is_qualified"`
	Notes                    string     `json:"notes,omitempty"`
	Campaign                 string     `json:"campaign,omitempty"`
	UTMSource                string     `json:"utm_source,omitempty"`
	UTMMedium                string     `json:"utm_medium,omitempty"`
	UTMCampaign              string     `json:"utm_campaign,omitempty"`
	IsActive                 bool       `json:"is_active"`
	ConvertedToContactID     int        `json:"converted_to_contact_id,omitempty"`
	ConvertedToOpportunityID int        `json:"converted_to_opportunity_id,omitempty"`
	TenantID                 int        `json:"tenant_id"`
	CreatedAt                string     `json:"created_at"`
	UpdatedAt                string     `json:"updated_at"`
}

// LeadFormData mirrors Lead minus server-assigned and derived fields
// (id, timestamps, tenant_id, score, qualification flags).
type LeadFormData struct {
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone,omitempty"`
	Company           string     `json:"company"`
	Title             string     `json:"title,omitempty"`
	Industry          string     `json:"industry,omitempty"`
	CompanySize       string     `json:"company_size,omitempty"`
	AnnualRevenue     string     `json:"annual_revenue,omitempty"`
	Source            LeadSource `json:"source"`
	EstimatedValue    float64    `json:"estimated_value,omitempty"`
	ExpectedCloseDate string     `json:"expected_close_date,omitempty"`
	AssignedTo        int        `json:"assigned_to,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	Campaign          string     `json:"campaign,omitempty"`
}

// Validate checks the form before submission. Returns nil when clean.
func (f *LeadFormData) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(f.FirstName) == "" {
		errs = append(errs, FieldError{Field: "first_name", Message: "first name is required"})
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs = append(errs, FieldError{Field: "last_name", Message: "last name is required"})
	}
	if strings.TrimSpace(f.Email) == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if !ValidEmail(f.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "invalid email address"})
	}
	if strings.TrimSpace(f.Company) == "" {
		errs = append(errs, FieldError{Field: "company", Message: "company is required"})
	}
	if f.Source == "" {
		errs = append(errs, FieldError{Field: "source", Message: "source is required"})
	}
	if f.EstimatedValue < 0 {
		errs = append(errs, FieldError{Field: "estimated_value", Message: "estimated value must not be negative"})
	}
	return errs
}

// LeadListParams are the query parameters accepted by the leads list
// endpoint.
type LeadListParams struct {
	Page       int
	Limit      int
	Search     string
	Status     LeadStatus
	Source     LeadSource
	AssignedTo int
	Priority   string
	ScoreMin   *int
	ScoreMax   *int
}

// LeadConversion is the result of converting a qualified lead.
type LeadConversion struct {
	ContactID     int `json:"contact_id"`
	OpportunityID int `json:"opportunity_id"`
}
