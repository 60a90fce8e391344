// ABOUTME: Session store owning the authentication state machine
// ABOUTME: Single writer of the persisted credential and the client's bearer token

package session

import (
	"context"
	"sync"

	"github.com/chaitanya1270/blog-cli/internal/client"
	"github.com/chaitanya1270/blog-cli/internal/logging"
	"go.uber.org/zap"
)

// Store is the single source of truth for who is logged in.
//
// Lifecycle: uninitialized -> verifying -> {authenticated, anonymous}.
// From either settled state a successful Login/Register moves to
// authenticated; Logout or a verification failure moves to anonymous.
// Loading is true only while the one initial verification runs.
//
// Initialize, Login, and Register run network calls inside bubbletea
// command goroutines while the event loop reads the accessors, so the
// state fields are guarded by the mutex.
type Store struct {
	client *client.Client
	creds  *CredStore

	mu            sync.RWMutex
	user          *client.User
	authenticated bool
	loading       bool
}

// New creates a session store bound to the shared API client and the
// given credential store
func New(c *client.Client, creds *CredStore) *Store {
	return &Store{
		client:  c,
		creds:   creds,
		loading: true,
	}
}

// CurrentUser returns the authenticated identity, or nil when anonymous
func (s *Store) CurrentUser() *client.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a verified identity is present
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// IsAdmin reports whether the current user carries the admin flag
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsAdmin
}

// Loading reports whether the initial credential check is still in
// flight. Initialize and Resume both settle it to false, and it stays
// false afterward.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Initialize verifies any persisted credential against the backend.
// Runs once at process start. A verification failure of any kind is a
// silent logout: the credential is purged, no user-facing error.
func (s *Store) Initialize(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, err := s.creds.Load()
	if err != nil {
		logging.L().Warn("failed to read persisted credential", zap.Error(err))
		return
	}
	if token == "" {
		return
	}

	// Attach before the verification call so it carries the credential
	s.client.SetToken(token)
	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		logging.L().Info("credential verification failed, logging out", zap.Error(err))
		s.purge()
		return
	}

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
}

// Login authenticates with the backend. On failure the session state is
// unchanged and the returned error carries the server-provided message,
// or a generic fallback when there is none to show.
func (s *Store) Login(ctx context.Context, username, password string) error {
	auth, err := s.client.Login(ctx, username, password)
	if err != nil {
		return presentable(err, "Login failed")
	}
	s.establish(auth)
	return nil
}

// Register creates an account and starts a session, symmetric to Login
func (s *Store) Register(ctx context.Context, username, email, password string) error {
	auth, err := s.client.Register(ctx, username, email, password)
	if err != nil {
		return presentable(err, "Registration failed")
	}
	s.establish(auth)
	return nil
}

// Logout clears the credential and identity. Synchronous, cannot fail.
func (s *Store) Logout() {
	s.purge()
}

// Resume attaches a persisted credential without verifying it. One-shot
// commands use this to avoid an extra round trip; the next protected
// call surfaces an expired credential anyway. Reports whether a
// credential was found. Like Initialize, it settles Loading.
func (s *Store) Resume() bool {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	token, err := s.creds.Load()
	if err != nil || token == "" {
		return false
	}
	s.client.SetToken(token)
	return true
}

// establish records a fresh credential and identity after login/register
func (s *Store) establish(auth *client.AuthResponse) {
	if err := s.creds.Save(auth.Token); err != nil {
		// The in-memory session is still valid; it just won't survive
		// a restart.
		logging.L().Warn("failed to persist credential", zap.Error(err))
	}
	s.client.SetToken(auth.Token)
	user := auth.User
	s.mu.Lock()
	s.user = &user
	s.authenticated = true
	s.mu.Unlock()
}

// purge drops the credential everywhere and clears the identity
func (s *Store) purge() {
	if err := s.creds.Clear(); err != nil {
		logging.L().Warn("failed to clear persisted credential", zap.Error(err))
	}
	s.client.ClearToken()
	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.mu.Unlock()
}

// presentable keeps server-supplied messages and swaps anything else
// (connection failures, decode errors) for a generic fallback
func presentable(err error, fallback string) error {
	if _, ok := err.(*client.APIError); ok {
		return err
	}
	logging.L().Error("auth request failed", zap.Error(err))
	return &client.APIError{Message: fallback}
}
