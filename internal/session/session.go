// Package session owns the bearer credential and the authenticated state.
package session

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/taskdeck/taskdeck/internal/api"
)

// TokenStore persists the session token across process restarts. The
// config package provides the keyring-backed implementation; tests use
// an in-memory one.
type TokenStore interface {
	Get() (string, error)
	Save(token string) error
	Clear() error
}

// Store owns the credential, the current user, and the authenticated
// flag. It is the only component that mutates the client's token; every
// other component reads state through snapshots.
type Store struct {
	mu sync.Mutex

	client *api.Client
	tokens TokenStore
	log    *logrus.Logger

	user          *api.User
	authenticated bool
	loading       bool
	lastErr       string

	subscribers []func(authenticated bool)
}

// New creates a session store around the given API client and token store.
func New(client *api.Client, tokens TokenStore, log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{
		client: client,
		tokens: tokens,
		log:    log,
	}
}

// OnAuthChange registers a handler invoked after every authenticated-state
// transition. Handlers run synchronously in registration order.
func (s *Store) OnAuthChange(fn func(authenticated bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Authenticated reports whether a verified session is active.
func (s *Store) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// User returns the current user, or nil when unauthenticated.
func (s *Store) User() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Loading reports whether a remote call is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last failure reason, empty after a successful attempt.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Login exchanges credentials for a token. On success the token is
// persisted and the session becomes authenticated; on failure no partial
// state is retained.
func (s *Store) Login(creds api.Credentials) (*api.User, error) {
	return s.exchange("session.Login", func() (*api.AuthResponse, error) {
		return s.client.Login(creds)
	})
}

// Register creates an account and signs it in.
func (s *Store) Register(req api.RegisterRequest) (*api.User, error) {
	return s.exchange("session.Register", func() (*api.AuthResponse, error) {
		return s.client.Register(req)
	})
}

// LoginWithGoogle exchanges a Google ID token for a session.
func (s *Store) LoginWithGoogle(idToken string) (*api.User, error) {
	return s.exchange("session.LoginWithGoogle", func() (*api.AuthResponse, error) {
		return s.client.GoogleLogin(idToken)
	})
}

// exchange runs one of the token-granting calls and applies the shared
// success/failure contract.
func (s *Store) exchange(op string, call func() (*api.AuthResponse, error)) (*api.User, error) {
	log := s.log.WithField("operation", op)

	s.begin()
	defer s.end()

	resp, err := call()
	if err != nil {
		s.fail(humanError(err))
		log.WithError(err).Warn("authentication failed")
		return nil, err
	}

	if err := s.tokens.Save(resp.Token); err != nil {
		// The session still works for this process; only persistence failed.
		log.WithError(err).Warn("failed to persist token")
	}

	s.mu.Lock()
	s.client.SetToken(resp.Token)
	user := resp.User
	s.user = &user
	s.authenticated = true
	s.lastErr = ""
	subs := append([]func(bool){}, s.subscribers...)
	s.mu.Unlock()

	log.WithField("user", user.Email).Info("authenticated")
	notify(subs, true)
	return &user, nil
}

// Logout discards the credential and user state. It never touches the
// network and always succeeds.
func (s *Store) Logout() {
	if err := s.tokens.Clear(); err != nil {
		s.log.WithError(err).Warn("failed to clear persisted token")
	}

	s.mu.Lock()
	wasAuthenticated := s.authenticated
	s.client.ClearToken()
	s.user = nil
	s.authenticated = false
	s.lastErr = ""
	subs := append([]func(bool){}, s.subscribers...)
	s.mu.Unlock()

	s.log.WithField("operation", "session.Logout").Info("logged out")
	if wasAuthenticated {
		notify(subs, false)
	}
}

// Verify restores a persisted session on process start. A missing,
// expired or invalid token leaves the session cleanly unauthenticated
// without reporting an error: an expired session is expected, not
// exceptional. Returns whether the session is authenticated.
func (s *Store) Verify() bool {
	log := s.log.WithField("operation", "session.Verify")

	token, err := s.tokens.Get()
	if err != nil {
		log.WithError(err).Warn("failed to read persisted token")
		return false
	}
	if token == "" {
		return false
	}

	s.mu.Lock()
	s.client.SetToken(token)
	s.mu.Unlock()

	s.begin()
	defer s.end()

	user, err := s.client.Me()
	if err != nil {
		// Token is stale; discard it and reset silently.
		log.WithError(err).Info("token verification failed, discarding token")
		if clearErr := s.tokens.Clear(); clearErr != nil {
			log.WithError(clearErr).Warn("failed to clear stale token")
		}
		s.mu.Lock()
		s.client.ClearToken()
		s.user = nil
		s.authenticated = false
		s.mu.Unlock()
		return false
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.lastErr = ""
	subs := append([]func(bool){}, s.subscribers...)
	s.mu.Unlock()

	log.WithField("user", user.Email).Info("session restored")
	notify(subs, true)
	return true
}

// UpdateProfile replaces the current user wholesale from the server's
// response.
func (s *Store) UpdateProfile(req api.ProfileRequest) (*api.User, error) {
	s.begin()
	defer s.end()

	user, err := s.client.UpdateProfile(req)
	if err != nil {
		s.fail(humanError(err))
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.lastErr = ""
	s.mu.Unlock()
	return user, nil
}

// ChangePassword changes the current user's password.
func (s *Store) ChangePassword(req api.PasswordRequest) error {
	s.begin()
	defer s.end()

	if err := s.client.ChangePassword(req); err != nil {
		s.fail(humanError(err))
		return err
	}

	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

func (s *Store) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Store) fail(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

func notify(subs []func(bool), authenticated bool) {
	for _, fn := range subs {
		fn(authenticated)
	}
}

// humanError turns an API failure into a displayable reason.
func humanError(err error) string {
	if apiErr, ok := api.AsAPIError(err); ok {
		switch {
		case apiErr.IsUnauthorized():
			return "invalid credentials"
		case apiErr.Message != "":
			return apiErr.Message
		default:
			return fmt.Sprintf("request failed with status %d", apiErr.StatusCode)
		}
	}
	return err.Error()
}
