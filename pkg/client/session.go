package client

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"
)

// Status is the lifecycle state of a session.
type Status int

const (
	// StatusUninitialized means Initialize has not run yet.
	StatusUninitialized Status = iota
	// StatusLoading means a stored token is being verified.
	StatusLoading
	// StatusAuthenticated means the server accepted the token.
	StatusAuthenticated
	// StatusUnauthenticated means there is no usable token.
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Kind names the principal kind of an authenticated session.
type Kind string

const (
	KindUser       Kind = "user"
	KindEnterprise Kind = "enterprise"
)

// State is an immutable snapshot of the session.
type State struct {
	Status  Status
	Kind    Kind
	ID      uint
	IsAdmin bool
}

// Credentials carries a login request. Email+Password authenticates a
// user, CNPJ+Password an enterprise.
type Credentials struct {
	Email    string
	CNPJ     string
	Password string
}

// Session drives the authentication lifecycle: verify a stored token on
// startup, log in and out, and drop to unauthenticated the moment any
// request observes a 401.
type Session struct {
	mu     sync.RWMutex
	state  State
	client *Client
}

func newSession(c *Client) *Session {
	return &Session{client: c}
}

// State returns a snapshot of the current session state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Initialize verifies any stored token against the server and settles
// the session in authenticated or unauthenticated. Calling it again
// after the first run is a no-op returning the settled state.
func (s *Session) Initialize(ctx context.Context) (State, error) {
	s.mu.Lock()
	if s.state.Status != StatusUninitialized {
		state := s.state
		s.mu.Unlock()
		return state, nil
	}
	s.state = State{Status: StatusLoading}
	s.mu.Unlock()

	token, err := s.client.store.Token()
	if err != nil || token == "" {
		s.setState(State{Status: StatusUnauthenticated})
		return s.State(), err
	}

	var me mePayload
	if err := s.client.doJSON(ctx, http.MethodGet, "/api/users/me", nil, &me); err != nil {
		if IsUnauthorized(err) {
			// stale token; the transport hook already invalidated us
			_ = s.client.store.Clear()
			s.setState(State{Status: StatusUnauthenticated})
			return s.State(), nil
		}
		// server unreachable: settle unauthenticated but surface the error
		s.setState(State{Status: StatusUnauthenticated})
		return s.State(), err
	}

	state := State{Status: StatusAuthenticated, Kind: Kind(me.Kind)}
	switch {
	case me.User != nil:
		state.ID = me.User.ID
		state.IsAdmin = me.User.IsAdmin
	case me.Enterprise != nil:
		state.ID = me.Enterprise.ID
		state.IsAdmin = true
	}
	s.setState(state)
	s.client.permissions.replace(me.Capabilities)
	return s.State(), nil
}

// Login authenticates with the server and stores the returned token.
func (s *Session) Login(ctx context.Context, kind Kind, creds Credentials) (State, error) {
	var (
		path string
		body any
	)
	switch kind {
	case KindEnterprise:
		path = "/api/enterprises/auth/login"
		body = map[string]string{"cnpj": creds.CNPJ, "password": creds.Password}
	default:
		path = "/api/users/auth/login"
		body = map[string]string{"email": creds.Email, "password": creds.Password}
	}

	var payload loginPayload
	if err := s.client.doJSON(ctx, http.MethodPost, path, body, &payload); err != nil {
		return s.State(), err
	}

	if err := s.client.store.Save(payload.Token); err != nil {
		return s.State(), err
	}

	caps := payload.Capabilities
	isAdmin := kind == KindEnterprise
	for _, c := range caps {
		if c == "admin" {
			isAdmin = true
		}
	}

	s.setState(State{
		Status:  StatusAuthenticated,
		Kind:    Kind(payload.Kind),
		ID:      payload.ID,
		IsAdmin: isAdmin,
	})
	s.client.permissions.replace(caps)
	return s.State(), nil
}

// Logout clears the session locally no matter what; the server call is
// best effort since tokens are stateless.
func (s *Session) Logout(ctx context.Context) {
	path := "/api/users/auth/logout"
	if s.State().Kind == KindEnterprise {
		path = "/api/enterprises/auth/logout"
	}
	if err := s.client.doJSON(ctx, http.MethodPost, path, nil, nil); err != nil {
		s.client.logger.Debug("logout call failed, clearing locally anyway", zap.Error(err))
	}
	s.Invalidate()
}

// Invalidate drops the session to unauthenticated and clears the stored
// token and cached permissions. Wired as the transport's 401 hook. The
// principal kind survives so the route guard can redirect to the right
// login view.
func (s *Session) Invalidate() {
	_ = s.client.store.Clear()
	s.client.permissions.reset()
	s.setState(State{Status: StatusUnauthenticated, Kind: s.State().Kind})
}

func (s *Session) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
