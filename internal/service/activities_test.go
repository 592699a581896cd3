package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivitiesTodayFiltersByDueDate(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(domain.Paginated[domain.Activity]{Data: []domain.Activity{}})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	svc := service.NewActivityService(client)

	_, err := svc.Today(context.Background())
	require.NoError(t, err)

	today := time.Now().Format("2006-01-02")
	assert.Equal(t, []string{today}, gotQuery["due_date"])
	assert.Equal(t, []string{"100"}, gotQuery["limit"])
}

func TestActivitiesOverdueSetsFlag(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(domain.Paginated[domain.Activity]{})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	svc := service.NewActivityService(client)

	_, err := svc.Overdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"true"}, gotQuery["overdue"])
}

func TestActivitiesUpcomingDefaultsToSevenDays(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(domain.Paginated[domain.Activity]{})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	svc := service.NewActivityService(client)

	_, err := svc.Upcoming(context.Background(), 0)
	require.NoError(t, err)

	start := time.Now().Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	assert.Equal(t, []string{start}, gotQuery["due_date_start"])
	assert.Equal(t, []string{end}, gotQuery["due_date_end"])
}

func TestActivityCompleteSendsNotes(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(domain.Activity{ID: 4, Status: domain.ActivityCompleted})
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	svc := service.NewActivityService(client)

	act, err := svc.Complete(context.Background(), 4, "call went well")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, gotMethod)
	assert.Equal(t, "/api/v1/activities/4/complete", gotPath)
	assert.Equal(t, "call went well", gotBody["notes"])
	assert.Equal(t, domain.ActivityCompleted, act.Status)
}

func TestActivityCreateRejectsBadPriority(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client, _ := newTestClient(t, server.URL)
	svc := service.NewActivityService(client)

	_, err := svc.Create(context.Background(), &domain.ActivityFormData{
		Title:    "Call back",
		Type:     domain.ActivityCall,
		Priority: "urgent",
	})

	var verr *domain.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.False(t, called, "invalid form must not reach the network")
}
