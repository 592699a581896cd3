package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/api"
	"github.com/vantagecrm/crm-client-go/internal/infra/observability"
	"github.com/vantagecrm/crm-client-go/internal/infra/tokenstore"
	"github.com/vantagecrm/crm-client-go/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, baseURL string) (*api.Client, *tokenstore.FileStore) {
	t.Helper()
	store := tokenstore.New(filepath.Join(t.TempDir(), "creds.json"), zap.NewNop())
	client := api.New(api.Options{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Tokens:  store,
		Metrics: observability.NewMetrics(),
		Logger:  zap.NewNop(),
	})
	return client, store
}

func TestContactService_ListPagination(t *testing.T) {
	// Server returning 120 total contacts, 50 per page.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/contacts", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		contacts := make([]domain.Contact, 50)
		for i := range contacts {
			contacts[i] = domain.Contact{ID: i + 1, FirstName: "C", LastName: "N", TenantID: 1}
		}
		resp := domain.Paginated[domain.Contact]{
			Data:       contacts,
			Total:      120,
			Page:       1,
			Limit:      50,
			TotalPages: 3,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)
	svc := service.NewContactService(client)

	page, err := svc.List(context.Background(), domain.ContactListParams{Page: 1, Limit: 50})
	require.NoError(t, err)

	assert.Equal(t, 120, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Data, 50)
	assert.LessOrEqual(t, len(page.Data), page.Limit)
	assert.Equal(t, domain.TotalPagesFor(page.Total, page.Limit), page.TotalPages)
}

func TestContactService_CreateValidatesBeforeSubmission(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)
	svc := service.NewContactService(client)

	_, err := svc.Create(context.Background(), &domain.ContactFormData{
		FirstName: "",
		LastName:  "Doe",
		Email:     "not-an-email",
	})

	var verr *domain.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 2)
	assert.False(t, called, "invalid form data must never reach the network layer")
}

func TestContactService_CreateSubmitsForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var form domain.ContactFormData
		require.NoError(t, json.NewDecoder(r.Body).Decode(&form))
		assert.Equal(t, "Ada", form.FirstName)

		created := domain.Contact{
			ID: 7, FirstName: form.FirstName, LastName: form.LastName,
			FullName: form.FirstName + " " + form.LastName,
			TenantID: 1, IsActive: true,
			CreatedAt: "2026-08-28T10:00:00Z", UpdatedAt: "2026-08-28T10:00:00Z",
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)
	svc := service.NewContactService(client)

	contact, err := svc.Create(context.Background(), &domain.ContactFormData{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, contact.ID)
	assert.Equal(t, "Ada Lovelace", contact.FullName)
}

func TestContactService_SearchBuildsParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "acme", r.URL.Query().Get("search"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.Paginated[domain.Contact]{
			Data: []domain.Contact{{ID: 1}}, Total: 1, Page: 1, Limit: 50, TotalPages: 1,
		})
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)
	svc := service.NewContactService(client)

	contacts, err := svc.Search(context.Background(), "acme")
	require.NoError(t, err)
	assert.Len(t, contacts, 1)
}
