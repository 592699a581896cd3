package mockapi

import (
	"net/http"

	"github.com/vantagecrm/crm-client-go/internal/domain"

	"go.uber.org/zap"
)

func listLeadsHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePagination(r)
		filter := LeadFilter{
			Search:     r.URL.Query().Get("search"),
			Status:     domain.LeadStatus(r.URL.Query().Get("status")),
			Source:     domain.LeadSource(r.URL.Query().Get("source")),
			Priority:   r.URL.Query().Get("priority"),
			AssignedTo: queryInt(r, "assigned_to"),
			ScoreMin:   queryIntPtr(r, "score_min"),
			ScoreMax:   queryIntPtr(r, "score_max"),
		}
		writeJSON(w, http.StatusOK, store.ListLeads(filter, page, limit))
	}
}

func getLeadHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid lead id")
			return
		}
		l := store.GetLead(id)
		if l == nil {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		writeJSON(w, http.StatusOK, l)
	}
}

func createLeadHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form domain.LeadFormData
		if !decodeBody(w, r, &form) {
			return
		}
		if errs := form.Validate(); errs != nil {
			writeError(w, http.StatusUnprocessableEntity, errs[0].Message)
			return
		}
		l := store.CreateLead(&form)
		logger.Info("lead created", zap.Int("id", l.ID), zap.Int("score", l.Score))
		writeJSON(w, http.StatusCreated, l)
	}
}

func updateLeadHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid lead id")
			return
		}
		var form domain.LeadFormData
		if !decodeBody(w, r, &form) {
			return
		}
		l := store.UpdateLead(id, &form)
		if l == nil {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		writeJSON(w, http.StatusOK, l)
	}
}

// patchLeadHandler handles PATCH /{id}, which carries a status change.
func patchLeadHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid lead id")
			return
		}
		var body struct {
			Status domain.LeadStatus `json:"status"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		if body.Status == "" {
			writeError(w, http.StatusUnprocessableEntity, "status is required")
			return
		}
		l := store.UpdateLeadStatus(id, body.Status)
		if l == nil {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		logger.Info("lead status updated", zap.Int("id", id), zap.String("status", string(body.Status)))
		writeJSON(w, http.StatusOK, l)
	}
}

func deleteLeadHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid lead id")
			return
		}
		if !store.DeleteLead(id) {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func scoreLeadsHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store.RescoreLeads()
		logger.Info("leads rescored")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func convertLeadHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid lead id")
			return
		}
		conv := store.ConvertLead(id)
		if conv == nil {
			writeError(w, http.StatusNotFound, "lead not found")
			return
		}
		logger.Info("lead converted",
			zap.Int("lead_id", id),
			zap.Int("contact_id", conv.ContactID),
			zap.Int("opportunity_id", conv.OpportunityID),
		)
		writeJSON(w, http.StatusOK, conv)
	}
}
