package service

import (
	"context"
	"net/url"
	"strconv"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/infra/api"
	"github.com/vantagecrm/crm-client-go/internal/port"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// AuthService exchanges credentials for a token at POST /auth/token and
// derives the current user from the stored token.
type AuthService struct {
	api    *api.Client
	tokens port.TokenStore
	logger *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(client *api.Client, tokens port.TokenStore, logger *zap.Logger) *AuthService {
	return &AuthService{api: client, tokens: tokens, logger: logger}
}

// Login authenticates against POST /auth/token. The gateway takes
// username and password as query parameters. On success the returned
// credential is persisted to the token store.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Credential, error) {
	q := url.Values{}
	q.Set("username", username)
	q.Set("password", password)

	var cred domain.Credential
	if err := s.api.Post(ctx, "/auth/token", q, nil, &cred); err != nil {
		return nil, err
	}

	if err := s.tokens.Set(&cred); err != nil {
		s.logger.Error("auth: failed to persist credential", zap.Error(err))
		return nil, err
	}

	s.logger.Info("auth: login succeeded", zap.String("username", username))
	return &cred, nil
}

// Logout invalidates the local session. There is no server-side logout
// endpoint; clearing the token store is the whole operation.
func (s *AuthService) Logout(_ context.Context) error {
	s.tokens.Clear()
	s.logger.Info("auth: logged out")
	return nil
}

// CurrentUser derives the user from the stored credential, or nil when
// unauthenticated. The gateway mints JWTs carrying sub, username and
// tenant_id; the claims are read without signature verification since
// the server is the verifier. An opaque (non-JWT) token yields a
// zero-valued user so a session with a credential always has a
// non-nil user.
func (s *AuthService) CurrentUser() *domain.User {
	cred := s.tokens.Get()
	if cred == nil {
		return nil
	}
	return userFromToken(cred.AccessToken)
}

func userFromToken(token string) *domain.User {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return &domain.User{}
	}

	user := &domain.User{}
	if sub, err := claims.GetSubject(); err == nil {
		if id, err := strconv.Atoi(sub); err == nil {
			user.ID = id
		}
	}
	if v, ok := claims["username"].(string); ok {
		user.Username = v
	}
	if v, ok := claims["email"].(string); ok {
		user.Email = v
	}
	if v, ok := claims["tenant_id"].(float64); ok {
		user.TenantID = int(v)
	}
	return user
}
