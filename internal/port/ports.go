// Package port defines the interfaces (ports) that decouple the session
// controller and consumers from concrete infrastructure.
package port

import (
	"context"

	"github.com/vantagecrm/crm-client-go/internal/domain"
)

// TokenStore is the single source of truth for the current credential,
// durable across process restarts. Implementations must treat a
// malformed persisted value as absent.
type TokenStore interface {
	Set(cred *domain.Credential) error
	Get() *domain.Credential
	Clear()
}

// Authenticator exchanges credentials for a token and derives the
// current user from it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*domain.Credential, error)
	Logout(ctx context.Context) error
	CurrentUser() *domain.User
}

// Cache provides generic caching with TTL. Used by consumers of the
// client core (never by the resource services themselves).
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// HealthChecker probes the backend's liveness and readiness endpoints.
type HealthChecker interface {
	Check(ctx context.Context) (*domain.HealthStatus, error)
	Services(ctx context.Context) (*domain.ServicesHealth, error)
}
