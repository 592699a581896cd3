package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/api"
	"github.com/vantagecrm/crm-client-go/internal/infra/observability"
	"github.com/vantagecrm/crm-client-go/internal/infra/tokenstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T) *tokenstore.FileStore {
	t.Helper()
	return tokenstore.New(filepath.Join(t.TempDir(), "creds.json"), zap.NewNop())
}

func newClient(t *testing.T, baseURL string, store *tokenstore.FileStore, onAuthFailure func()) *api.Client {
	t.Helper()
	return api.New(api.Options{
		BaseURL:       baseURL,
		Timeout:       5 * time.Second,
		Tokens:        store,
		OnAuthFailure: onAuthFailure,
		Metrics:       observability.NewMetrics(),
		Logger:        zap.NewNop(),
	})
}

func TestClient_AttachesBearerHeaderWhenAuthenticated(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := newStore(t)
	require.NoError(t, store.Set(&domain.Credential{AccessToken: "tok-abc", TokenType: "bearer"}))

	c := newClient(t, srv.URL, store, nil)
	var out map[string]any
	require.NoError(t, c.Get(context.Background(), "/api/v1/contacts", nil, &out))

	assert.Equal(t, "Bearer tok-abc", gotAuth)
}

func TestClient_NoBearerHeaderWhenAnonymous(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, newStore(t), nil)
	var out map[string]any
	require.NoError(t, c.Get(context.Background(), "/health", nil, &out))

	assert.Empty(t, gotAuth)
}

func TestClient_401ClearsStoreAndFiresCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	defer srv.Close()

	store := newStore(t)
	require.NoError(t, store.Set(&domain.Credential{AccessToken: "expired", TokenType: "bearer"}))

	redirected := false
	c := newClient(t, srv.URL, store, func() { redirected = true })

	err := c.Get(context.Background(), "/api/v1/leads", nil, &map[string]any{})
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.Equal(t, "Could not validate credentials", apiErr.Message)

	assert.Nil(t, store.Get(), "token store must be empty after 401")
	assert.True(t, redirected, "auth failure callback must fire")
}

func TestClient_NormalizesServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Contact not found"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, newStore(t), nil)
	err := c.Get(context.Background(), "/api/v1/contacts/99", nil, &map[string]any{})

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "Contact not found", apiErr.Message)
	assert.Equal(t, "Contact not found", apiErr.Detail)
}

func TestClient_NormalizesMalformedErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, newStore(t), nil)
	err := c.Get(context.Background(), "/api/v1/contacts", nil, &map[string]any{})

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestClient_TransportErrorDefaultsTo500(t *testing.T) {
	// Point at a closed server to force a connection error.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := newClient(t, srv.URL, newStore(t), nil)
	err := c.Get(context.Background(), "/health", nil, &map[string]any{})

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestClient_SendsQueryParameters(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Encode()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, newStore(t), nil)
	q := map[string][]string{"page": {"2"}, "limit": {"50"}}
	require.NoError(t, c.Get(context.Background(), "/api/v1/contacts", q, &map[string]any{}))

	assert.Contains(t, gotQuery, "page=2")
	assert.Contains(t, gotQuery, "limit=50")
}
