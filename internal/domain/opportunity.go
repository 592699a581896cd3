package domain

import "strings"

// OpportunityStage is the pipeline stage of an opportunity.
type OpportunityStage string

const (
	StageProspecting   OpportunityStage = "prospecting"
	StageQualification OpportunityStage = "qualification"
	StageProposal      OpportunityStage = "proposal"
	StageNegotiation   OpportunityStage = "negotiation"
	StageClosedWon     OpportunityStage = "closed_won"
	StageClosedLost    OpportunityStage = "closed_lost"
)

// AllStages lists the pipeline stages in board order.
var AllStages = []OpportunityStage{
	StageProspecting,
	StageQualification,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

// Opportunity is a sales opportunity as returned by /api/v1/opportunities.
type Opportunity struct {
	ID                int              `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	Stage             OpportunityStage `json:"stage"`
	Amount            float64          `json:"amount"`
	Probability       int              `json:"probability"`
	ExpectedCloseDate string           `json:"expected_close_date,omitempty"`
	ActualCloseDate   string           `json:"actual_close_date,omitempty"`
	ContactID         int              `json:"contact_id,omitempty"`
	Company           string           `json:"company"`
	AssignedTo        int              `json:"assigned_to,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	TenantID          int              `json:"tenant_id"`
	CreatedAt         string           `json:"created_at"`
	UpdatedAt         string           `json:"updated_at"`
	Contact           *Contact         `json:"contact,omitempty"`
}

// OpportunityFormData mirrors Opportunity minus server-assigned fields.
type OpportunityFormData struct {
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	Stage             OpportunityStage `json:"stage"`
	Amount            float64          `json:"amount"`
	Probability       int              `json:"probability"`
	ExpectedCloseDate string           `json:"expected_close_date,omitempty"`
	ContactID         int              `json:"contact_id,omitempty"`
	Company           string           `json:"company"`
	AssignedTo        int              `json:"assigned_to,omitempty"`
	Notes             string           `json:"notes,omitempty"`
}

// Validate checks the form before submission. Returns nil when clean.
func (f *OpportunityFormData) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(f.Company) == "" {
		errs = append(errs, FieldError{Field: "company", Message: "company is required"})
	}
	if f.Stage == "" {
		errs = append(errs, FieldError{Field: "stage", Message: "stage is required"})
	}
	if f.Amount < 0 {
		errs = append(errs, FieldError{Field: "amount", Message: "amount must not be negative"})
	}
	if f.Probability < 0 || f.Probability > 100 {
		errs = append(errs, FieldError{Field: "probability", Message: "probability must be between 0 and 100"})
	}
	return errs
}

// OpportunityListParams are the query parameters accepted by the
// opportunities list endpoint.
type OpportunityListParams struct {
	Page           int
	Limit          int
	Search         string
	Stage          OpportunityStage
	AssignedTo     int
	Company        string
	AmountMin      *float64
	AmountMax      *float64
	ProbabilityMin *int
	ProbabilityMax *int
}

// OpportunityStats is returned by GET /api/v1/opportunities/stats.
type OpportunityStats struct {
	TotalCount    int     `json:"total_count"`
	TotalValue    float64 `json:"total_value"`
	WonCount      int     `json:"won_count"`
	WonValue      float64 `json:"won_value"`
	LostCount     int     `json:"lost_count"`
	LostValue     float64 `json:"lost_value"`
	PipelineValue float64 `json:"pipeline_value"`
}

// Forecast is returned by GET /api/v1/opportunities/forecast.
type Forecast struct {
	Period             string  `json:"period"`
	TotalForecast      float64 `json:"total_forecast"`
	WeightedForecast   float64 `json:"weighted_forecast"`
	OpportunitiesCount int     `json:"opportunities_count"`
}
