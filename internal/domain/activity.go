package domain

import "strings"

// ActivityType classifies an activity.
type ActivityType string

const (
	ActivityCall    ActivityType = "call"
	ActivityEmail   ActivityType = "email"
	ActivityMeeting ActivityType = "meeting"
	ActivityTask    ActivityType = "task"
	ActivityNote    ActivityType = "note"
)

// ActivityStatus is the completion state of an activity.
type ActivityStatus string

const (
	ActivityPending    ActivityStatus = "pending"
	ActivityInProgress ActivityStatus = "in_progress"
	ActivityCompleted  ActivityStatus = "completed"
	ActivityCancelled  ActivityStatus = "cancelled"
)

// Activity is a CRM activity as returned by /api/v1/activities.
type Activity struct {
	ID              int            `json:"id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Type            ActivityType   `json:"type"`
	Status          ActivityStatus `json:"status"`
	Priority        string         `json:"priority"`
	DueDate         string         `json:"due_date,omitempty"`
	DueTime         string         `json:"due_time,omitempty"`
	DurationMinutes int            `json:"duration_minutes,omitempty"`
	ContactID       int            `json:"contact_id,omitempty"`
	OpportunityID   int            `json:"opportunity_id,omitempty"`
	AssignedTo      int            `json:"assigned_to,omitempty"`
	CompletedAt     string         `json:"completed_at,omitempty"`
	Notes           string         `json:"notes,omitempty"`
	TenantID        int            `json:"tenant_id"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`
	Contact         *Contact       `json:"contact,omitempty"`
	Opportunity     *Opportunity   `json:"opportunity,omitempty"`
}

// ActivityFormData mirrors Activity minus server-assigned fields.
type ActivityFormData struct {
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	Type            ActivityType `json:"type"`
	Priority        string       `json:"priority"`
	DueDate         string       `json:"due_date,omitempty"`
	DueTime         string       `json:"due_time,omitempty"`
	DurationMinutes int          `json:"duration_minutes,omitempty"`
	ContactID       int          `json:"contact_id,omitempty"`
	OpportunityID   int          `json:"opportunity_id,omitempty"`
	AssignedTo      int          `json:"assigned_to,omitempty"`
	Notes           string       `json:"notes,omitempty"`
}

// Validate checks the form before submission. Returns nil when clean.
func (f *ActivityFormData) Validate() []FieldError {
	var errs []FieldError
	if strings.TrimSpace(f.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	}
	if f.Type == "" {
		errs = append(errs, FieldError{Field: "type", Message: "type is required"})
	}
	switch f.Priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
	default:
		errs = append(errs, FieldError{Field: "priority", Message: "priority must be low, medium or high"})
	}
	if f.DurationMinutes < 0 {
		errs = append(errs, FieldError{Field: "duration_minutes", Message: "duration must not be negative"})
	}
	return errs
}

// ActivityListParams are the query parameters accepted by the activities
// list endpoint.
type ActivityListParams struct {
	Page          int
	Limit         int
	Search        string
	Type          ActivityType
	Status        ActivityStatus
	AssignedTo    int
	ContactID     int
	OpportunityID int
	Priority      string
	DueDate       string
	DueDateStart  string
	DueDateEnd    string
	Overdue       bool
}

// ActivityStats is returned by GET /api/v1/activities/stats.
type ActivityStats struct {
	TotalCount     int `json:"total_count"`
	CompletedCount int `json:"completed_count"`
	OverdueCount   int `json:"overdue_count"`
	DueTodayCount  int `json:"due_today_count"`
	PendingCount   int `json:"pending_count"`
}
