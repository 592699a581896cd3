package mockapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/mockapi"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	store := mockapi.NewStore()
	store.Seed()

	auth, err := mockapi.NewAuth("test-secret", time.Hour)
	require.NoError(t, err)

	return mockapi.NewRouter(store, auth, zap.NewNop())
}

func login(t *testing.T, router http.Handler) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/auth/token?username=demo&password=demo123", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	require.Equal(t, "bearer", body.TokenType)
	return body.AccessToken
}

func TestHealth(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var status domain.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.Equal(t, "healthy", status.Status)
}

func TestServicesHealth(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/services", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var health domain.ServicesHealth
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	require.Equal(t, "healthy", health.Status)
	require.Contains(t, health.Services, "database")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/token?username=demo&password=wrong", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Detail, "Incorrect username or password")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newRouter(t)

	for _, path := range []string{
		"/api/v1/contacts",
		"/api/v1/leads",
		"/api/v1/opportunities/stats",
		"/api/v1/dashboard/summary",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code, "path %s", path)
	}
}

func TestRejectsGarbageToken(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListContacts(t *testing.T) {
	router := newRouter(t)
	token := login(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts?page=1&limit=2", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.Paginated[domain.Contact]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 2)
	require.Equal(t, 3, page.Total)
	require.Equal(t, 2, page.TotalPages)
}

func TestContactCRUD(t *testing.T) {
	router := newRouter(t)
	token := login(t, router)

	body := `{"first_name":"Test","last_name":"User","email":"test@user.io","company":"TestCo"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contacts", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "Test User", created.FullName)
	require.NotZero(t, created.ID)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/contacts/9999", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLeadConvertCreatesContactAndOpportunity(t *testing.T) {
	router := newRouter(t)
	token := login(t, router)

	body := `{"first_name":"Gina","last_name":"Rossi","email":"gina@vandelay.com","company":"Vandelay","source":"referral","estimated_value":60000}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/leads", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var lead domain.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))

	req = httptest.NewRequest(http.MethodPost, "/api/v1/leads/"+strconv.Itoa(lead.ID)+"/convert", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var conv domain.LeadConversion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &conv))
	require.NotZero(t, conv.ContactID)
	require.NotZero(t, conv.OpportunityID)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/contacts/"+strconv.Itoa(conv.ContactID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOpportunityStageTransition(t *testing.T) {
	router := newRouter(t)
	token := login(t, router)

	body := `{"stage":"closed_won"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/opportunities/9", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var opp domain.Opportunity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opp))
	require.Equal(t, domain.StageClosedWon, opp.Stage)
	require.NotEmpty(t, opp.ActualCloseDate)
}

func TestDashboardSummary(t *testing.T) {
	router := newRouter(t)
	token := login(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var summary domain.DashboardSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, "ok", summary.Contacts.Status)
	require.NotEmpty(t, summary.Contacts.Recent)
	require.Equal(t, 3, summary.Leads.Count)
}
