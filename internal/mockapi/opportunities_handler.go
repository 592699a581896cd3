package mockapi

import (
	"net/http"

	"github.com/vantagecrm/crm-client-go/internal/domain"

	"go.uber.org/zap"
)

func listOpportunitiesHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePagination(r)
		filter := OpportunityFilter{
			Search:         r.URL.Query().Get("search"),
			Stage:          domain.OpportunityStage(r.URL.Query().Get("stage")),
			Company:        r.URL.Query().Get("company"),
			AssignedTo:     queryInt(r, "assigned_to"),
			AmountMin:      queryFloatPtr(r, "amount_min"),
			AmountMax:      queryFloatPtr(r, "amount_max"),
			ProbabilityMin: queryIntPtr(r, "probability_min"),
			ProbabilityMax: queryIntPtr(r, "probability_max"),
		}
		writeJSON(w, http.StatusOK, store.ListOpportunities(filter, page, limit))
	}
}

func getOpportunityHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid opportunity id")
			return
		}
		o := store.GetOpportunity(id)
		if o == nil {
			writeError(w, http.StatusNotFound, "opportunity not found")
			return
		}
		writeJSON(w, http.StatusOK, o)
	}
}

func createOpportunityHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form domain.OpportunityFormData
		if !decodeBody(w, r, &form) {
			return
		}
		if errs := form.Validate(); errs != nil {
			writeError(w, http.StatusUnprocessableEntity, errs[0].Message)
			return
		}
		o := store.CreateOpportunity(&form)
		logger.Info("opportunity created", zap.Int("id", o.ID), zap.Float64("amount", o.Amount))
		writeJSON(w, http.StatusCreated, o)
	}
}

func updateOpportunityHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid opportunity id")
			return
		}
		var form domain.OpportunityFormData
		if !decodeBody(w, r, &form) {
			return
		}
		o := store.UpdateOpportunity(id, &form)
		if o == nil {
			writeError(w, http.StatusNotFound, "opportunity not found")
			return
		}
		writeJSON(w, http.StatusOK, o)
	}
}

// patchOpportunityHandler handles PATCH /{id}, which carries a stage
// change.
func patchOpportunityHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid opportunity id")
			return
		}
		var body struct {
			Stage domain.OpportunityStage `json:"stage"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		if body.Stage == "" {
			writeError(w, http.StatusUnprocessableEntity, "stage is required")
			return
		}
		o := store.UpdateOpportunityStage(id, body.Stage)
		if o == nil {
			writeError(w, http.StatusNotFound, "opportunity not found")
			return
		}
		logger.Info("opportunity stage updated", zap.Int("id", id), zap.String("stage", string(body.Stage)))
		writeJSON(w, http.StatusOK, o)
	}
}

func deleteOpportunityHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid opportunity id")
			return
		}
		if !store.DeleteOpportunity(id) {
			writeError(w, http.StatusNotFound, "opportunity not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func opportunityStatsHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.OpportunityStats())
	}
}

func opportunityForecastHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		period := r.URL.Query().Get("period")
		if period == "" {
			period = "quarter"
		}
		writeJSON(w, http.StatusOK, store.ForecastFor(period))
	}
}
