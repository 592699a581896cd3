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

func TestLeadService_MidSession401TearsDownSession(t *testing.T) {
	// The backend starts accepting the token, then revokes it.
	revoked := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if revoked {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Token expired"})
			return
		}
		json.NewEncoder(w).Encode(domain.Paginated[domain.Lead]{
			Data: []domain.Lead{{ID: 1, Status: domain.LeadStatusNew}},
			Total: 1, Page: 1, Limit: 20, TotalPages: 1,
		})
	}))
	defer srv.Close()

	store := tokenstore.New(filepath.Join(t.TempDir(), "creds.json"), zap.NewNop())
	require.NoError(t, store.Set(&domain.Credential{AccessToken: "valid-for-now", TokenType: "bearer"}))

	redirected := false
	client := api.New(api.Options{
		BaseURL:       srv.URL,
		Timeout:       5 * time.Second,
		Tokens:        store,
		OnAuthFailure: func() { redirected = true },
		Metrics:       observability.NewMetrics(),
		Logger:        zap.NewNop(),
	})
	svc := service.NewLeadService(client)

	_, err := svc.List(context.Background(), domain.LeadListParams{})
	require.NoError(t, err)

	revoked = true
	_, err = svc.List(context.Background(), domain.LeadListParams{})
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Nil(t, store.Get(), "401 must clear the token store regardless of call site")
	assert.True(t, redirected, "401 must trigger the global redirect")
}

func TestLeadService_UpdateStatusPatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/v1/leads/3", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "qualified", body["status"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.Lead{ID: 3, Status: domain.LeadStatusQualified})
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)
	svc := service.NewLeadService(client)

	lead, err := svc.UpdateStatus(context.Background(), 3, domain.LeadStatusQualified)
	require.NoError(t, err)
	assert.Equal(t, domain.LeadStatusQualified, lead.Status)
}

func TestLeadService_HighScoreBuildsParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "70", r.URL.Query().Get("score_min"))
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.Paginated[domain.Lead]{
			Data: []domain.Lead{{ID: 9, Score: 85}}, Total: 1, Page: 1, Limit: 50, TotalPages: 1,
		})
	}))
	defer srv.Close()

	client, _ := newTestClient(t, srv.URL)
	svc := service.NewLeadService(client)

	leads, err := svc.HighScore(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, 85, leads[0].Score)
}

func TestLeadService_CreateRequiresCompany(t *testing.T) {
	client, _ := newTestClient(t, "http://localhost:0")
	svc := service.NewLeadService(client)

	_, err := svc.Create(context.Background(), &domain.LeadFormData{
		FirstName: "Jo",
		LastName:  "Smith",
		Email:     "jo@example.com",
		Source:    domain.LeadSourceWebsite,
	})

	var verr *domain.ErrValidation
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "company", verr.Fields[0].Field)
}
