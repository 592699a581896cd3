// Package domain defines the entities, form contracts and error types
// shared by the CRM client core. Field layouts mirror the REST API
// payloads one-to-one; the server owns identifiers, timestamps and any
// derived fields.
package domain

// Credential is the bearer token pair returned by POST /auth/token.
// There is at most one active credential per session; absence means
// unauthenticated. A credential is replaced wholesale, never mutated.
type Credential struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the identity derived from the active credential.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	TenantID int    `json:"tenant_id"`
}

// Session is the derived, non-persisted view of the authentication
// state. IsAuthenticated holds exactly when Credential is non-nil;
// IsLoading is true only during the initial restore and an in-flight
// login.
type Session struct {
	User            *User
	Credential      *Credential
	IsAuthenticated bool
	IsLoading       bool
}

// SessionState names the session controller's state machine states.
type SessionState int

const (
	SessionRestoring SessionState = iota
	SessionAnonymous
	SessionLoggingIn
	SessionAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionRestoring:
		return "restoring"
	case SessionAnonymous:
		return "anonymous"
	case SessionLoggingIn:
		return "logging_in"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}
