// Package mockapi implements an in-memory mock of the CRM REST API for
// local development and integration tests. It serves the same surface
// the production gateway exposes: /auth/token, /api/v1/* CRUD with
// pagination and filters, dashboard aggregates and health probes.
package mockapi

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vantagecrm/crm-client-go/internal/domain"
)

// demoTenantID partitions all seeded data; the mock serves one tenant.
const demoTenantID = 1

// Store holds all mock CRM data in memory. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	nextID int

	contacts      map[int]*domain.Contact
	leads         map[int]*domain.Lead
	opportunities map[int]*domain.Opportunity
	activities    map[int]*domain.Activity

	now func() time.Time
}

// NewStore creates an empty store. Call Seed for demo data.
func NewStore() *Store {
	return &Store{
		nextID:        1,
		contacts:      make(map[int]*domain.Contact),
		leads:         make(map[int]*domain.Lead),
		opportunities: make(map[int]*domain.Opportunity),
		activities:    make(map[int]*domain.Activity),
		now:           time.Now,
	}
}

func (s *Store) allocID() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// paginate slices items into the standard envelope.
func paginate[T any](items []T, page, limit int) domain.Paginated[T] {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	total := len(items)
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	data := items[start:end]
	if data == nil {
		data = []T{}
	}
	return domain.Paginated[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: domain.TotalPagesFor(total, limit),
	}
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ---- Contacts ----

// ContactFilter selects contacts in ListContacts.
type ContactFilter struct {
	Search     string
	Company    string
	LeadSource string
	IsActive   *bool
}

// ListContacts returns one page of contacts, newest first.
func (s *Store) ListContacts(f ContactFilter, page, limit int) domain.Paginated[domain.Contact] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Contact
	for _, c := range s.contacts {
		if f.Search != "" && !containsFold(c.FullName+" "+c.Email+" "+c.Company, f.Search) {
			continue
		}
		if f.Company != "" && !containsFold(c.Company, f.Company) {
			continue
		}
		if f.LeadSource != "" && c.LeadSource != f.LeadSource {
			continue
		}
		if f.IsActive != nil && c.IsActive != *f.IsActive {
			continue
		}
		matched = append(matched, *c)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, page, limit)
}

// GetContact returns a contact by id, or nil.
func (s *Store) GetContact(id int) *domain.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.contacts[id]; ok {
		copied := *c
		return &copied
	}
	return nil
}

// CreateContact assigns the server-owned fields and stores the contact.
func (s *Store) CreateContact(form *domain.ContactFormData) *domain.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	c := &domain.Contact{
		ID:           s.allocID(),
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		FullName:     strings.TrimSpace(form.FirstName + " " + form.LastName),
		Email:        form.Email,
		Phone:        form.Phone,
		Mobile:       form.Mobile,
		Company:      form.Company,
		Title:        form.Title,
		Department:   form.Department,
		AddressLine1: form.AddressLine1,
		AddressLine2: form.AddressLine2,
		City:         form.City,
		State:        form.State,
		PostalCode:   form.PostalCode,
		Country:      form.Country,
		LinkedinURL:  form.LinkedinURL,
		Website:      form.Website,
		IsActive:     true,
		LeadSource:   form.LeadSource,
		Notes:        form.Notes,
		TenantID:     demoTenantID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.contacts[c.ID] = c
	copied := *c
	return &copied
}

// UpdateContact applies non-zero form fields. Returns nil when absent.
func (s *Store) UpdateContact(id int, form *domain.ContactFormData) *domain.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[id]
	if !ok {
		return nil
	}
	if form.FirstName != "" {
		c.FirstName = form.FirstName
	}
	if form.LastName != "" {
		c.LastName = form.LastName
	}
	c.FullName = strings.TrimSpace(c.FirstName + " " + c.LastName)
	if form.Email != "" {
		c.Email = form.Email
	}
	if form.Phone != "" {
		c.Phone = form.Phone
	}
	if form.Company != "" {
		c.Company = form.Company
	}
	if form.Title != "" {
		c.Title = form.Title
	}
	if form.LeadSource != "" {
		c.LeadSource = form.LeadSource
	}
	if form.Notes != "" {
		c.Notes = form.Notes
	}
	c.UpdatedAt = s.timestamp()
	copied := *c
	return &copied
}

// DeleteContact removes a contact. Returns false when absent.
func (s *Store) DeleteContact(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contacts[id]; !ok {
		return false
	}
	delete(s.contacts, id)
	return true
}

// ---- Leads ----

// LeadFilter selects leads in ListLeads.
type LeadFilter struct {
	Search     string
	Status     domain.LeadStatus
	Source     domain.LeadSource
	Priority   string
	AssignedTo int
	ScoreMin   *int
	ScoreMax   *int
}

// ListLeads returns one page of leads, newest first.
func (s *Store) ListLeads(f LeadFilter, page, limit int) domain.Paginated[domain.Lead] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Lead
	for _, l := range s.leads {
		if f.Search != "" && !containsFold(l.FullName+" "+l.Email+" "+l.Company, f.Search) {
			continue
		}
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		if f.Source != "" && l.Source != f.Source {
			continue
		}
		if f.Priority != "" && l.Priority != f.Priority {
			continue
		}
		if f.AssignedTo != 0 && l.AssignedTo != f.AssignedTo {
			continue
		}
		if f.ScoreMin != nil && l.Score < *f.ScoreMin {
			continue
		}
		if f.ScoreMax != nil && l.Score > *f.ScoreMax {
			continue
		}
		matched = append(matched, *l)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, page, limit)
}

// GetLead returns a lead by id, or nil.
func (s *Store) GetLead(id int) *domain.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if l, ok := s.leads[id]; ok {
		copied := *l
		return &copied
	}
	return nil
}

// CreateLead assigns the server-owned fields and stores the lead.
// New leads start in status "new" with a heuristic score.
func (s *Store) CreateLead(form *domain.LeadFormData) *domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	l := &domain.Lead{
		ID:                s.allocID(),
		FirstName:         form.FirstName,
		LastName:          form.LastName,
		FullName:          strings.TrimSpace(form.FirstName + " " + form.LastName),
		Email:             form.Email,
		Phone:             form.Phone,
		Company:           form.Company,
		Title:             form.Title,
		Industry:          form.Industry,
		CompanySize:       form.CompanySize,
		AnnualRevenue:     form.AnnualRevenue,
		Status:            domain.LeadStatusNew,
		Source:            form.Source,
		Score:             scoreFor(form),
		Priority:          domain.PriorityMedium,
		EstimatedValue:    form.EstimatedValue,
		ExpectedCloseDate: form.ExpectedCloseDate,
		AssignedTo:        form.AssignedTo,
		Notes:             form.Notes,
		Campaign:          form.Campaign,
		IsActive:          true,
		TenantID:          demoTenantID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.leads[l.ID] = l
	copied := *l
	return &copied
}

// scoreFor is the mock's stand-in for the backend scoring job.
func scoreFor(form *domain.LeadFormData) int {
	score := 30
	if form.EstimatedValue >= 50000 {
		score += 30
	} else if form.EstimatedValue >= 10000 {
		score += 15
	}
	if form.Source == domain.LeadSourceReferral {
		score += 20
	}
	if form.Industry != "" {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

// UpdateLead applies non-zero form fields. Returns nil when absent.
func (s *Store) UpdateLead(id int, form *domain.LeadFormData) *domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leads[id]
	if !ok {
		return nil
	}
	if form.FirstName != "" {
		l.FirstName = form.FirstName
	}
	if form.LastName != "" {
		l.LastName = form.LastName
	}
	l.FullName = strings.TrimSpace(l.FirstName + " " + l.LastName)
	if form.Email != "" {
		l.Email = form.Email
	}
	if form.Company != "" {
		l.Company = form.Company
	}
	if form.Source != "" {
		l.Source = form.Source
	}
	if form.EstimatedValue != 0 {
		l.EstimatedValue = form.EstimatedValue
	}
	if form.Notes != "" {
		l.Notes = form.Notes
	}
	l.UpdatedAt = s.timestamp()
	copied := *l
	return &copied
}

// UpdateLeadStatus moves a lead through its lifecycle.
func (s *Store) UpdateLeadStatus(id int, status domain.LeadStatus) *domain.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leads[id]
	if !ok {
		return nil
	}
	l.Status = status
	l.IsQualified = status == domain.LeadStatusQualified || status == domain.LeadStatusConverted
	l.UpdatedAt = s.timestamp()
	copied := *l
	return &copied
}

// DeleteLead removes a lead. Returns false when absent.
func (s *Store) DeleteLead(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leads[id]; !ok {
		return false
	}
	delete(s.leads, id)
	return true
}

// RescoreLeads recomputes every lead's score.
func (s *Store) RescoreLeads() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.leads {
		form := domain.LeadFormData{
			EstimatedValue: l.EstimatedValue,
			Source:         l.Source,
			Industry:       l.Industry,
		}
		l.Score = scoreFor(&form)
		l.UpdatedAt = s.timestamp()
	}
}

// ConvertLead turns a lead into a contact plus an opportunity, marking
// the lead converted. Returns nil when the lead is absent.
func (s *Store) ConvertLead(id int) *domain.LeadConversion {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.leads[id]
	if !ok {
		return nil
	}

	now := s.timestamp()
	contact := &domain.Contact{
		ID:         s.allocID(),
		FirstName:  l.FirstName,
		LastName:   l.LastName,
		FullName:   l.FullName,
		Email:      l.Email,
		Phone:      l.Phone,
		Company:    l.Company,
		Title:      l.Title,
		IsActive:   true,
		LeadSource: string(l.Source),
		TenantID:   demoTenantID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.contacts[contact.ID] = contact

	opp := &domain.Opportunity{
		ID:          s.allocID(),
		Name:        l.Company + " - " + l.FullName,
		Stage:       domain.StageProspecting,
		Amount:      l.EstimatedValue,
		Probability: 10,
		ContactID:   contact.ID,
		Company:     l.Company,
		AssignedTo:  l.AssignedTo,
		TenantID:    demoTenantID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.opportunities[opp.ID] = opp

	l.Status = domain.LeadStatusConverted
	l.IsQualified = true
	l.ConvertedToContactID = contact.ID
	l.ConvertedToOpportunityID = opp.ID
	l.UpdatedAt = now

	return &domain.LeadConversion{ContactID: contact.ID, OpportunityID: opp.ID}
}

// ---- Opportunities ----

// OpportunityFilter selects opportunities in ListOpportunities.
type OpportunityFilter struct {
	Search         string
	Stage          domain.OpportunityStage
	Company        string
	AssignedTo     int
	AmountMin      *float64
	AmountMax      *float64
	ProbabilityMin *int
	ProbabilityMax *int
}

// ListOpportunities returns one page of opportunities, newest first.
func (s *Store) ListOpportunities(f OpportunityFilter, page, limit int) domain.Paginated[domain.Opportunity] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Opportunity
	for _, o := range s.opportunities {
		if f.Search != "" && !containsFold(o.Name+" "+o.Company, f.Search) {
			continue
		}
		if f.Stage != "" && o.Stage != f.Stage {
			continue
		}
		if f.Company != "" && !containsFold(o.Company, f.Company) {
			continue
		}
		if f.AssignedTo != 0 && o.AssignedTo != f.AssignedTo {
			continue
		}
		if f.AmountMin != nil && o.Amount < *f.AmountMin {
			continue
		}
		if f.AmountMax != nil && o.Amount > *f.AmountMax {
			continue
		}
		if f.ProbabilityMin != nil && o.Probability < *f.ProbabilityMin {
			continue
		}
		if f.ProbabilityMax != nil && o.Probability > *f.ProbabilityMax {
			continue
		}
		matched = append(matched, *o)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, page, limit)
}

// GetOpportunity returns an opportunity by id, or nil.
func (s *Store) GetOpportunity(id int) *domain.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if o, ok := s.opportunities[id]; ok {
		copied := *o
		return &copied
	}
	return nil
}

// CreateOpportunity assigns the server-owned fields and stores it.
func (s *Store) CreateOpportunity(form *domain.OpportunityFormData) *domain.Opportunity {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	o := &domain.Opportunity{
		ID:                s.allocID(),
		Name:              form.Name,
		Description:       form.Description,
		Stage:             form.Stage,
		Amount:            form.Amount,
		Probability:       form.Probability,
		ExpectedCloseDate: form.ExpectedCloseDate,
		ContactID:         form.ContactID,
		Company:           form.Company,
		AssignedTo:        form.AssignedTo,
		Notes:             form.Notes,
		TenantID:          demoTenantID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.opportunities[o.ID] = o
	copied := *o
	return &copied
}

// UpdateOpportunity applies non-zero form fields. Returns nil when absent.
func (s *Store) UpdateOpportunity(id int, form *domain.OpportunityFormData) *domain.Opportunity {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.opportunities[id]
	if !ok {
		return nil
	}
	if form.Name != "" {
		o.Name = form.Name
	}
	if form.Description != "" {
		o.Description = form.Description
	}
	if form.Stage != "" {
		o.Stage = form.Stage
	}
	if form.Amount != 0 {
		o.Amount = form.Amount
	}
	if form.Probability != 0 {
		o.Probability = form.Probability
	}
	if form.Company != "" {
		o.Company = form.Company
	}
	if form.Notes != "" {
		o.Notes = form.Notes
	}
	o.UpdatedAt = s.timestamp()
	copied := *o
	return &copied
}

// UpdateOpportunityStage moves an opportunity along the pipeline,
// stamping the close date on terminal stages.
func (s *Store) UpdateOpportunityStage(id int, stage domain.OpportunityStage) *domain.Opportunity {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.opportunities[id]
	if !ok {
		return nil
	}
	o.Stage = stage
	if stage == domain.StageClosedWon || stage == domain.StageClosedLost {
		o.ActualCloseDate = s.now().UTC().Format("2006-01-02")
	}
	o.UpdatedAt = s.timestamp()
	copied := *o
	return &copied
}

// DeleteOpportunity removes an opportunity. Returns false when absent.
func (s *Store) DeleteOpportunity(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.opportunities[id]; !ok {
		return false
	}
	delete(s.opportunities, id)
	return true
}

// OpportunityStats aggregates the pipeline.
func (s *Store) OpportunityStats() domain.OpportunityStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.OpportunityStats
	for _, o := range s.opportunities {
		stats.TotalCount++
		stats.TotalValue += o.Amount
		switch o.Stage {
		case domain.StageClosedWon:
			stats.WonCount++
			stats.WonValue += o.Amount
		case domain.StageClosedLost:
			stats.LostCount++
			stats.LostValue += o.Amount
		default:
			stats.PipelineValue += o.Amount
		}
	}
	return stats
}

// ForecastFor computes the open-pipeline forecast for a period.
func (s *Store) ForecastFor(period string) domain.Forecast {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f := domain.Forecast{Period: period}
	for _, o := range s.opportunities {
		if o.Stage == domain.StageClosedWon || o.Stage == domain.StageClosedLost {
			continue
		}
		f.OpportunitiesCount++
		f.TotalForecast += o.Amount
		f.WeightedForecast += o.Amount * float64(o.Probability) / 100
	}
	return f
}

// ---- Activities ----

// ActivityFilter selects activities in ListActivities.
type ActivityFilter struct {
	Search        string
	Type          domain.ActivityType
	Status        domain.ActivityStatus
	Priority      string
	AssignedTo    int
	ContactID     int
	OpportunityID int
	DueDate       string
	DueDateStart  string
	DueDateEnd    string
	Overdue       bool
}

// ListActivities returns one page of activities, newest first.
func (s *Store) ListActivities(f ActivityFilter, page, limit int) domain.Paginated[domain.Activity] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.now().UTC().Format("2006-01-02")

	var matched []domain.Activity
	for _, a := range s.activities {
		if f.Search != "" && !containsFold(a.Title+" "+a.Description, f.Search) {
			continue
		}
		if f.Type != "" && a.Type != f.Type {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Priority != "" && a.Priority != f.Priority {
			continue
		}
		if f.AssignedTo != 0 && a.AssignedTo != f.AssignedTo {
			continue
		}
		if f.ContactID != 0 && a.ContactID != f.ContactID {
			continue
		}
		if f.OpportunityID != 0 && a.OpportunityID != f.OpportunityID {
			continue
		}
		if f.DueDate != "" && a.DueDate != f.DueDate {
			continue
		}
		if f.DueDateStart != "" && a.DueDate < f.DueDateStart {
			continue
		}
		if f.DueDateEnd != "" && a.DueDate > f.DueDateEnd {
			continue
		}
		if f.Overdue && !isOverdue(a, today) {
			continue
		}
		matched = append(matched, *a)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })
	return paginate(matched, page, limit)
}

func isOverdue(a *domain.Activity, today string) bool {
	return a.DueDate != "" && a.DueDate < today &&
		a.Status != domain.ActivityCompleted && a.Status != domain.ActivityCancelled
}

// GetActivity returns an activity by id, or nil.
func (s *Store) GetActivity(id int) *domain.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if a, ok := s.activities[id]; ok {
		copied := *a
		return &copied
	}
	return nil
}

// CreateActivity assigns the server-owned fields and stores it.
func (s *Store) CreateActivity(form *domain.ActivityFormData) *domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	a := &domain.Activity{
		ID:              s.allocID(),
		Title:           form.Title,
		Description:     form.Description,
		Type:            form.Type,
		Status:          domain.ActivityPending,
		Priority:        form.Priority,
		DueDate:         form.DueDate,
		DueTime:         form.DueTime,
		DurationMinutes: form.DurationMinutes,
		ContactID:       form.ContactID,
		OpportunityID:   form.OpportunityID,
		AssignedTo:      form.AssignedTo,
		Notes:           form.Notes,
		TenantID:        demoTenantID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.activities[a.ID] = a
	copied := *a
	return &copied
}

// UpdateActivity applies non-zero form fields. Returns nil when absent.
func (s *Store) UpdateActivity(id int, form *domain.ActivityFormData) *domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[id]
	if !ok {
		return nil
	}
	if form.Title != "" {
		a.Title = form.Title
	}
	if form.Description != "" {
		a.Description = form.Description
	}
	if form.Type != "" {
		a.Type = form.Type
	}
	if form.Priority != "" {
		a.Priority = form.Priority
	}
	if form.DueDate != "" {
		a.DueDate = form.DueDate
	}
	if form.Notes != "" {
		a.Notes = form.Notes
	}
	a.UpdatedAt = s.timestamp()
	copied := *a
	return &copied
}

// UpdateActivityStatus moves an activity to a new status.
func (s *Store) UpdateActivityStatus(id int, status domain.ActivityStatus) *domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[id]
	if !ok {
		return nil
	}
	a.Status = status
	if status == domain.ActivityCompleted {
		a.CompletedAt = s.timestamp()
	}
	a.UpdatedAt = s.timestamp()
	copied := *a
	return &copied
}

// CompleteActivity marks an activity completed with optional notes.
func (s *Store) CompleteActivity(id int, notes string) *domain.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[id]
	if !ok {
		return nil
	}
	a.Status = domain.ActivityCompleted
	a.CompletedAt = s.timestamp()
	if notes != "" {
		a.Notes = notes
	}
	a.UpdatedAt = s.timestamp()
	copied := *a
	return &copied
}

// DeleteActivity removes an activity. Returns false when absent.
func (s *Store) DeleteActivity(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.activities[id]; !ok {
		return false
	}
	delete(s.activities, id)
	return true
}

// ActivityStats aggregates activity counts.
func (s *Store) ActivityStats() domain.ActivityStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	today := s.now().UTC().Format("2006-01-02")

	var stats domain.ActivityStats
	for _, a := range s.activities {
		stats.TotalCount++
		switch a.Status {
		case domain.ActivityCompleted:
			stats.CompletedCount++
		case domain.ActivityPending, domain.ActivityInProgress:
			stats.PendingCount++
		}
		if isOverdue(a, today) {
			stats.OverdueCount++
		}
		if a.DueDate == today && a.Status != domain.ActivityCompleted {
			stats.DueTodayCount++
		}
	}
	return stats
}

// ---- Dashboard ----

// DashboardSummary builds the aggregated dashboard view.
func (s *Store) DashboardSummary() domain.DashboardSummary {
	recent := s.ListContacts(ContactFilter{}, 1, 5)
	oppStats := s.OpportunityStats()
	actStats := s.ActivityStats()

	s.mu.RLock()
	leadCount := len(s.leads)
	s.mu.RUnlock()

	var summary domain.DashboardSummary
	summary.Contacts.Status = "ok"
	summary.Contacts.Recent = recent.Data
	summary.Leads.Status = "ok"
	summary.Leads.Count = leadCount
	summary.Opportunities.Status = "ok"
	summary.Opportunities.Count = oppStats.TotalCount
	summary.Opportunities.TotalValue = oppStats.TotalValue
	summary.Activities.Status = "ok"
	summary.Activities.Overdue = actStats.OverdueCount
	summary.Activities.DueToday = actStats.DueTodayCount
	summary.Timestamp = s.now().Unix()
	return summary
}

// DashboardMetrics builds the headline numbers.
func (s *Store) DashboardMetrics() domain.DashboardMetrics {
	oppStats := s.OpportunityStats()

	s.mu.RLock()
	contacts := len(s.contacts)
	leads := len(s.leads)
	activities := len(s.activities)
	converted := 0
	for _, l := range s.leads {
		if l.Status == domain.LeadStatusConverted {
			converted++
		}
	}
	s.mu.RUnlock()

	m := domain.DashboardMetrics{
		ContactsCount:      contacts,
		LeadsCount:         leads,
		OpportunitiesCount: oppStats.TotalCount,
		ActivitiesCount:    activities,
		RevenueThisMonth:   oppStats.WonValue,
		RevenueThisQuarter: oppStats.WonValue,
		PipelineValue:      oppStats.PipelineValue,
	}
	if leads > 0 {
		m.ConversionRate = float64(converted) / float64(leads)
	}
	return m
}

// ChartSeries synthesizes a deterministic chart series for a type and
// period. Values derive from live aggregates so the chart moves with
// the data.
func (s *Store) ChartSeries(chartType, period string) []domain.ChartPoint {
	points := 4
	if period == "week" {
		points = 7
	} else if period == "year" {
		points = 12
	}

	var base float64
	switch chartType {
	case "revenue":
		base = s.OpportunityStats().WonValue
	case "pipeline":
		base = s.OpportunityStats().PipelineValue
	case "activities":
		base = float64(s.ActivityStats().TotalCount)
	case "leads":
		s.mu.RLock()
		base = float64(len(s.leads))
		s.mu.RUnlock()
	}

	series := make([]domain.ChartPoint, points)
	day := s.now().UTC()
	for i := points - 1; i >= 0; i-- {
		series[i] = domain.ChartPoint{
			Date:  day.Format("2006-01-02"),
			Value: base * float64(i+1) / float64(points),
		}
		day = day.AddDate(0, 0, -7)
	}
	return series
}

// RecentActivities returns the newest activities for the dashboard feed.
func (s *Store) RecentActivities(limit int) []domain.Activity {
	if limit <= 0 {
		limit = 10
	}
	page := s.ListActivities(ActivityFilter{}, 1, limit)
	return page.Data
}

// TopPerformers builds the leaderboard from live data.
func (s *Store) TopPerformers() domain.TopPerformers {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tp domain.TopPerformers

	sourceCounts := map[domain.LeadSource]int{}
	sourceConverted := map[domain.LeadSource]int{}
	for _, l := range s.leads {
		sourceCounts[l.Source]++
		if l.Status == domain.LeadStatusConverted {
			sourceConverted[l.Source]++
		}
	}
	for source, count := range sourceCounts {
		entry := struct {
			Source         string  `json:"source"`
			Count          int     `json:"count"`
			ConversionRate float64 `json:"conversion_rate"`
		}{Source: string(source), Count: count}
		if count > 0 {
			entry.ConversionRate = float64(sourceConverted[source]) / float64(count)
		}
		tp.TopLeadSources = append(tp.TopLeadSources, entry)
	}
	sort.Slice(tp.TopLeadSources, func(i, j int) bool {
		return tp.TopLeadSources[i].Count > tp.TopLeadSources[j].Count
	})

	companyRevenue := map[string]float64{}
	companyOpps := map[string]int{}
	for _, o := range s.opportunities {
		companyOpps[o.Company]++
		if o.Stage == domain.StageClosedWon {
			companyRevenue[o.Company] += o.Amount
		}
	}
	for company, opps := range companyOpps {
		tp.TopCompanies = append(tp.TopCompanies, struct {
			Company       string  `json:"company"`
			Revenue       float64 `json:"revenue"`
			Opportunities int     `json:"opportunities"`
		}{Company: company, Revenue: companyRevenue[company], Opportunities: opps})
	}
	sort.Slice(tp.TopCompanies, func(i, j int) bool {
		return tp.TopCompanies[i].Revenue > tp.TopCompanies[j].Revenue
	})

	return tp
}
