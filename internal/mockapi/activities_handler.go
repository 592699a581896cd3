package mockapi

import (
	"net/http"

	"github.com/vantagecrm/crm-client-go/internal/domain"

	"go.uber.org/zap"
)

func listActivitiesHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePagination(r)
		filter := ActivityFilter{
			Search:        r.URL.Query().Get("search"),
			Type:          domain.ActivityType(r.URL.Query().Get("type")),
			Status:        domain.ActivityStatus(r.URL.Query().Get("status")),
			Priority:      r.URL.Query().Get("priority"),
			AssignedTo:    queryInt(r, "assigned_to"),
			ContactID:     queryInt(r, "contact_id"),
			OpportunityID: queryInt(r, "opportunity_id"),
			DueDate:       r.URL.Query().Get("due_date"),
			DueDateStart:  r.URL.Query().Get("due_date_start"),
			DueDateEnd:    r.URL.Query().Get("due_date_end"),
			Overdue:       queryBool(r, "overdue"),
		}
		writeJSON(w, http.StatusOK, store.ListActivities(filter, page, limit))
	}
}

func getActivityHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid activity id")
			return
		}
		a := store.GetActivity(id)
		if a == nil {
			writeError(w, http.StatusNotFound, "activity not found")
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func createActivityHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form domain.ActivityFormData
		if !decodeBody(w, r, &form) {
			return
		}
		if errs := form.Validate(); errs != nil {
			writeError(w, http.StatusUnprocessableEntity, errs[0].Message)
			return
		}
		a := store.CreateActivity(&form)
		logger.Info("activity created", zap.Int("id", a.ID), zap.String("type", string(a.Type)))
		writeJSON(w, http.StatusCreated, a)
	}
}

func updateActivityHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid activity id")
			return
		}
		var form domain.ActivityFormData
		if !decodeBody(w, r, &form) {
			return
		}
		a := store.UpdateActivity(id, &form)
		if a == nil {
			writeError(w, http.StatusNotFound, "activity not found")
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

// patchActivityHandler handles PATCH /{id}, which carries a status
// change.
func patchActivityHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid activity id")
			return
		}
		var body struct {
			Status domain.ActivityStatus `json:"status"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		if body.Status == "" {
			writeError(w, http.StatusUnprocessableEntity, "status is required")
			return
		}
		a := store.UpdateActivityStatus(id, body.Status)
		if a == nil {
			writeError(w, http.StatusNotFound, "activity not found")
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func completeActivityHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid activity id")
			return
		}
		var body struct {
			Notes string `json:"notes"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		a := store.CompleteActivity(id, body.Notes)
		if a == nil {
			writeError(w, http.StatusNotFound, "activity not found")
			return
		}
		logger.Info("activity completed", zap.Int("id", id))
		writeJSON(w, http.StatusOK, a)
	}
}

func deleteActivityHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid activity id")
			return
		}
		if !store.DeleteActivity(id) {
			writeError(w, http.StatusNotFound, "activity not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func activityStatsHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.ActivityStats())
	}
}
