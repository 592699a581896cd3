package mockapi

import (
	"net/http"

	"github.com/vantagecrm/crm-client-go/internal/domain"

	"go.uber.org/zap"
)

func listContactsHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, limit := parsePagination(r)
		filter := ContactFilter{
			Search:     r.URL.Query().Get("search"),
			Company:    r.URL.Query().Get("company"),
			LeadSource: r.URL.Query().Get("lead_source"),
			IsActive:   queryBoolPtr(r, "is_active"),
		}
		writeJSON(w, http.StatusOK, store.ListContacts(filter, page, limit))
	}
}

func getContactHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid contact id")
			return
		}
		c := store.GetContact(id)
		if c == nil {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func createContactHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form domain.ContactFormData
		if !decodeBody(w, r, &form) {
			return
		}
		if errs := form.Validate(); errs != nil {
			writeError(w, http.StatusUnprocessableEntity, errs[0].Message)
			return
		}
		c := store.CreateContact(&form)
		logger.Info("contact created", zap.Int("id", c.ID))
		writeJSON(w, http.StatusCreated, c)
	}
}

func updateContactHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid contact id")
			return
		}
		var form domain.ContactFormData
		if !decodeBody(w, r, &form) {
			return
		}
		c := store.UpdateContact(id, &form)
		if c == nil {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		writeJSON(w, http.StatusOK, c)
	}
}

func deleteContactHandler(store *Store, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := urlParamID(r)
		if id == 0 {
			writeError(w, http.StatusBadRequest, "invalid contact id")
			return
		}
		if !store.DeleteContact(id) {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		logger.Info("contact deleted", zap.Int("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
