package mockapi

import (
	"time"

	"github.com/vantagecrm/crm-client-go/internal/domain"
)

// Seed loads a small demo dataset: contacts, leads across the funnel,
// an open pipeline plus a won and a lost deal, and activities spanning
// overdue, due today and upcoming.
func (s *Store) Seed() {
	s.CreateContact(&domain.ContactFormData{
		FirstName: "Alice", LastName: "Nguyen",
		Email: "alice.nguyen@acme.io", Phone: "+1-555-0101",
		Company: "Acme Corp", Title: "VP Engineering",
		City: "Austin", State: "TX", Country: "US",
		LeadSource: "referral",
	})
	s.CreateContact(&domain.ContactFormData{
		FirstName: "Bruno", LastName: "Silva",
		Email: "bruno.silva@globex.com", Phone: "+1-555-0102",
		Company: "Globex", Title: "Head of Procurement",
		City: "Denver", State: "CO", Country: "US",
		LeadSource: "website",
	})
	s.CreateContact(&domain.ContactFormData{
		FirstName: "Carla", LastName: "Mendes",
		Email: "carla.mendes@initech.com",
		Company: "Initech", Title: "CTO",
		LeadSource: "trade_show",
	})

	s.CreateLead(&domain.LeadFormData{
		FirstName: "Diego", LastName: "Torres",
		Email: "diego.torres@umbrella.io", Company: "Umbrella Labs",
		Title: "Founder", Industry: "Biotech",
		Source: domain.LeadSourceWebsite, EstimatedValue: 25000,
	})
	qualified := s.CreateLead(&domain.LeadFormData{
		FirstName: "Elena", LastName: "Popescu",
		Email: "elena.popescu@soylent.co", Company: "Soylent Co",
		Industry: "Food", Source: domain.LeadSourceReferral,
		EstimatedValue: 80000,
	})
	s.UpdateLeadStatus(qualified.ID, domain.LeadStatusQualified)
	contacted := s.CreateLead(&domain.LeadFormData{
		FirstName: "Farid", LastName: "Haddad",
		Email: "farid.haddad@hooli.xyz", Company: "Hooli",
		Source: domain.LeadSourceColdCall, EstimatedValue: 5000,
	})
	s.UpdateLeadStatus(contacted.ID, domain.LeadStatusContacted)

	acmeOpp := s.CreateOpportunity(&domain.OpportunityFormData{
		Name: "Acme Corp - Platform License", Stage: domain.StageProposal,
		Amount: 120000, Probability: 60,
		ExpectedCloseDate: nextMonth(), ContactID: 1, Company: "Acme Corp",
	})
	globexOpp := s.CreateOpportunity(&domain.OpportunityFormData{
		Name: "Globex - Onboarding Package", Stage: domain.StageNegotiation,
		Amount: 45000, Probability: 80,
		ExpectedCloseDate: nextMonth(), ContactID: 2, Company: "Globex",
	})
	initechOpp := s.CreateOpportunity(&domain.OpportunityFormData{
		Name: "Initech - Pilot", Stage: domain.StageProspecting,
		Amount: 15000, Probability: 20,
		ContactID: 3, Company: "Initech",
	})
	s.CreateOpportunity(&domain.OpportunityFormData{
		Name: "Acme Corp - Renewal", Stage: domain.StageClosedWon,
		Amount: 90000, Probability: 100, ContactID: 1, Company: "Acme Corp",
	})
	s.CreateOpportunity(&domain.OpportunityFormData{
		Name: "Hooli - Trial Expansion", Stage: domain.StageClosedLost,
		Amount: 30000, Probability: 0, Company: "Hooli",
	})

	today := s.now().UTC()
	s.CreateActivity(&domain.ActivityFormData{
		Title: "Follow up on proposal", Type: domain.ActivityCall,
		Priority: domain.PriorityHigh,
		DueDate:  today.AddDate(0, 0, -2).Format("2006-01-02"),
		ContactID: 1, OpportunityID: acmeOpp.ID,
	})
	s.CreateActivity(&domain.ActivityFormData{
		Title: "Contract review meeting", Type: domain.ActivityMeeting,
		Priority: domain.PriorityHigh,
		DueDate:  today.Format("2006-01-02"), DueTime: "14:00",
		DurationMinutes: 60, ContactID: 2, OpportunityID: globexOpp.ID,
	})
	s.CreateActivity(&domain.ActivityFormData{
		Title: "Send pilot scoping doc", Type: domain.ActivityEmail,
		Priority: domain.PriorityMedium,
		DueDate:  today.AddDate(0, 0, 3).Format("2006-01-02"),
		ContactID: 3, OpportunityID: initechOpp.ID,
	})
	logNote := s.CreateActivity(&domain.ActivityFormData{
		Title: "Log renewal outcome", Type: domain.ActivityNote,
		Priority: domain.PriorityLow,
		DueDate:  today.AddDate(0, 0, -10).Format("2006-01-02"),
		ContactID: 1,
	})
	s.CompleteActivity(logNote.ID, "renewal signed")
}

func nextMonth() string {
	return time.Now().UTC().AddDate(0, 1, 0).Format("2006-01-02")
}
