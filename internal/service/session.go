package service

import (
	"context"
	"sync"

	"github.com/vantagecrm/crm-client-go/internal/domain"
	"github.com/vantagecrm/crm-client-go/internal/port"

	"go.uber.org/zap"
)

// SessionController owns the session lifecycle and exposes it as an
// observable value. State machine:
//
//	Restoring  → Authenticated | Anonymous
//	Anonymous  → LoggingIn → Authenticated | Anonymous
//	Authenticated → Anonymous (logout)
//
// Constructed explicitly and injected into consumers; one instance per
// process. Concurrent Login calls are a caller error and are not
// deduplicated.
type SessionController struct {
	mu      sync.Mutex
	auth    port.Authenticator
	tokens  port.TokenStore
	logger  *zap.Logger
	state   domain.SessionState
	session domain.Session
	subs    map[int]func(domain.Session)
	nextSub int
}

// NewSessionController creates a controller in the Restoring state.
// Call Init to run the restore.
func NewSessionController(auth port.Authenticator, tokens port.TokenStore, logger *zap.Logger) *SessionController {
	return &SessionController{
		auth:    auth,
		tokens:  tokens,
		logger:  logger,
		state:   domain.SessionRestoring,
		session: domain.Session{IsLoading: true},
		subs:    make(map[int]func(domain.Session)),
	}
}

// Init restores a persisted session. It runs once at startup and always
// settles with IsLoading=false: a missing or corrupt credential lands in
// Anonymous, never in an error.
func (c *SessionController) Init() {
	cred := c.tokens.Get()
	if cred == nil {
		c.transition(domain.SessionAnonymous, domain.Session{})
		c.logger.Debug("session: restored as anonymous")
		return
	}

	user := c.auth.CurrentUser()
	c.transition(domain.SessionAuthenticated, domain.Session{
		User:            user,
		Credential:      cred,
		IsAuthenticated: true,
	})
	c.logger.Info("session: restored", zap.String("username", user.Username))
}

// Login runs the LoggingIn sub-state and settles in Authenticated or
// Anonymous. Errors are propagated to the caller after the state has
// settled so the presentation layer can show them.
func (c *SessionController) Login(ctx context.Context, username, password string) error {
	c.transition(domain.SessionLoggingIn, domain.Session{IsLoading: true})

	cred, err := c.auth.Login(ctx, username, password)
	if err != nil {
		// Clear any partial credential before settling.
		c.tokens.Clear()
		c.transition(domain.SessionAnonymous, domain.Session{})
		return err
	}

	c.transition(domain.SessionAuthenticated, domain.Session{
		User:            c.auth.CurrentUser(),
		Credential:      cred,
		IsAuthenticated: true,
	})
	return nil
}

// Logout always ends in Anonymous: local invalidation takes priority
// over server acknowledgment.
func (c *SessionController) Logout(ctx context.Context) {
	if err := c.auth.Logout(ctx); err != nil {
		c.logger.Warn("session: server logout failed, clearing locally", zap.Error(err))
	}
	c.transition(domain.SessionAnonymous, domain.Session{})
}

// Invalidate is wired as the HTTP client's auth-failure callback: any
// 401 tears down the session globally.
func (c *SessionController) Invalidate() {
	c.logger.Warn("session: invalidated by authentication failure")
	c.transition(domain.SessionAnonymous, domain.Session{})
}

// Session returns the current session snapshot.
func (c *SessionController) Session() domain.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// State returns the current state machine state.
func (c *SessionController) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe registers fn to receive every session transition. It is
// called synchronously, in transition order. The returned function
// unsubscribes.
func (c *SessionController) Subscribe(fn func(domain.Session)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// Dispose drops all subscribers.
func (c *SessionController) Dispose() {
	c.mu.Lock()
	c.subs = make(map[int]func(domain.Session))
	c.mu.Unlock()
}

// transition swaps the state and notifies subscribers before returning,
// so a transition is observable before its triggering call resolves.
func (c *SessionController) transition(state domain.SessionState, session domain.Session) {
	c.mu.Lock()
	c.state = state
	c.session = session
	listeners := make([]func(domain.Session), 0, len(c.subs))
	for _, fn := range c.subs {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}
