package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/api"
	"github.com/vantagecrm/crm-client-go/internal/infra/observability"
	"github.com/vantagecrm/crm-client-go/internal/infra/tokenstore"
	"github.com/vantagecrm/crm-client-go/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mintToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       "1",
		"username":  "demo",
		"tenant_id": float64(1),
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

// authServer emulates POST /auth/token with the demo credentials.
func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/token", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("username") == "demo" && r.URL.Query().Get("password") == "demo123" {
			json.NewEncoder(w).Encode(domain.Credential{
				AccessToken: mintToken(t),
				TokenType:   "bearer",
			})
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
	}))
}

func newController(t *testing.T, baseURL, tokenPath string) (*service.SessionController, *tokenstore.FileStore) {
	t.Helper()
	store := tokenstore.New(tokenPath, zap.NewNop())
	client := api.New(api.Options{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Tokens:  store,
		Metrics: observability.NewMetrics(),
		Logger:  zap.NewNop(),
	})
	auth := service.NewAuthService(client, store, zap.NewNop())
	return service.NewSessionController(auth, store, zap.NewNop()), store
}

func TestSession_LoginSuccess(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()

	ctrl, store := newController(t, srv.URL, filepath.Join(t.TempDir(), "creds.json"))

	var states []domain.SessionState
	unsubscribe := ctrl.Subscribe(func(domain.Session) {
		states = append(states, ctrl.State())
	})
	defer unsubscribe()

	ctrl.Init()
	require.Equal(t, domain.SessionAnonymous, ctrl.State())

	require.NoError(t, ctrl.Login(context.Background(), "demo", "demo123"))

	assert.Equal(t, domain.SessionAuthenticated, ctrl.State())
	assert.Equal(t, []domain.SessionState{
		domain.SessionAnonymous,
		domain.SessionLoggingIn,
		domain.SessionAuthenticated,
	}, states)

	sess := ctrl.Session()
	assert.True(t, sess.IsAuthenticated)
	assert.False(t, sess.IsLoading)
	require.NotNil(t, sess.User)
	assert.Equal(t, "demo", sess.User.Username)
	assert.Equal(t, 1, sess.User.TenantID)

	require.NotNil(t, store.Get(), "token store must hold the returned token")
}

func TestSession_LoginFailure(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()

	ctrl, store := newController(t, srv.URL, filepath.Join(t.TempDir(), "creds.json"))
	ctrl.Init()

	err := ctrl.Login(context.Background(), "demo", "wrong")
	require.Error(t, err)

	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)

	assert.Equal(t, domain.SessionAnonymous, ctrl.State())
	assert.False(t, ctrl.Session().IsAuthenticated)
	assert.Nil(t, store.Get(), "token store must remain empty")
}

func TestSession_RestoreFromPersistedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")

	seed := tokenstore.New(path, zap.NewNop())
	require.NoError(t, seed.Set(&domain.Credential{AccessToken: mintToken(t), TokenType: "bearer"}))

	ctrl, _ := newController(t, "http://localhost:0", path)
	ctrl.Init()

	sess := ctrl.Session()
	assert.Equal(t, domain.SessionAuthenticated, ctrl.State())
	assert.True(t, sess.IsAuthenticated)
	assert.False(t, sess.IsLoading)
	require.NotNil(t, sess.User)
	assert.Equal(t, "demo", sess.User.Username)
}

func TestSession_RestoreFromCorruptTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

	ctrl, _ := newController(t, "http://localhost:0", path)
	ctrl.Init()

	sess := ctrl.Session()
	assert.Equal(t, domain.SessionAnonymous, ctrl.State())
	assert.False(t, sess.IsAuthenticated)
	assert.False(t, sess.IsLoading)
	assert.Nil(t, sess.User)
}

func TestSession_Logout(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()

	ctrl, store := newController(t, srv.URL, filepath.Join(t.TempDir(), "creds.json"))
	ctrl.Init()
	require.NoError(t, ctrl.Login(context.Background(), "demo", "demo123"))

	ctrl.Logout(context.Background())

	assert.Equal(t, domain.SessionAnonymous, ctrl.State())
	assert.Nil(t, store.Get())
	assert.Nil(t, ctrl.Session().User)
}

func TestSession_OpaqueTokenStillYieldsUser(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.json")

	seed := tokenstore.New(path, zap.NewNop())
	require.NoError(t, seed.Set(&domain.Credential{AccessToken: "opaque-not-a-jwt", TokenType: "bearer"}))

	ctrl, _ := newController(t, "http://localhost:0", path)
	ctrl.Init()

	sess := ctrl.Session()
	assert.True(t, sess.IsAuthenticated)
	require.NotNil(t, sess.User, "user must be non-nil whenever a credential is present")
}
