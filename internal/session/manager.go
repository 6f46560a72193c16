package session

import (
	"context"
	"sync"

	"gitlab.com/yelinaung/invierte-cli/internal/api"
	"gitlab.com/yelinaung/invierte-cli/internal/logger"
	"gitlab.com/yelinaung/invierte-cli/internal/models"
)

// State is the session lifecycle state.
type State int

// Lifecycle states. A token exists iff the state is Authenticated (modulo the
// transient Authenticating window).
const (
	StateUnauthenticated State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// AuthAPI is the slice of the ledger client the session manager depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) error
	Register(ctx context.Context, req api.RegisterRequest) error
	Logout() error
	Me(ctx context.Context) (models.User, error)
}

// Manager owns the session state machine and the current profile. Screens
// never write session state directly; every transition goes through here.
type Manager struct {
	mu        sync.Mutex
	api       AuthAPI
	tokens    api.TokenStore
	state     State
	user      *models.User
	onExpired func()
}

// NewManager creates a session manager in the Unauthenticated state.
func NewManager(authAPI AuthAPI, tokens api.TokenStore) *Manager {
	return &Manager{api: authAPI, tokens: tokens}
}

// NotifyExpired registers the observer invoked when the session is torn down
// by a remote authentication failure (the redirect-to-login hook).
func (m *Manager) NotifyExpired(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpired = fn
}

// Invalidate tears the session down after a remote authentication failure.
// Wired as the API client's expiry callback. Idempotent: a second 401 racing
// the first finds nothing left to tear down and notifies no one.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	alreadyOut := m.state == StateUnauthenticated && m.user == nil
	m.state = StateUnauthenticated
	m.user = nil
	observer := m.onExpired
	m.mu.Unlock()

	if alreadyOut {
		return
	}
	logger.Log.Info().Msg("Session invalidated by authentication failure")
	if observer != nil {
		observer()
	}
}

// Bootstrap re-validates a token left over from a previous run. On any
// failure the token is discarded and the state stays Unauthenticated.
func (m *Manager) Bootstrap(ctx context.Context) {
	if _, ok := m.tokens.Token(); !ok {
		return
	}

	m.setState(StateAuthenticating)
	user, err := m.api.Me(ctx)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Stored session is no longer valid")
		_ = m.tokens.Clear()
		m.setState(StateUnauthenticated)
		return
	}

	m.commitUser(user)
	logger.Log.Info().
		Str("user_hash", logger.HashEmail(user.Email)).
		Msg("Restored previous session")
}

// Login authenticates with credentials and fetches the profile. On any
// failure the token is discarded and the error propagates to the form.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.setState(StateAuthenticating)

	if err := m.api.Login(ctx, email, password); err != nil {
		m.abortAuth()
		return err
	}
	user, err := m.api.Me(ctx)
	if err != nil {
		m.abortAuth()
		return err
	}

	m.commitUser(user)
	logger.Log.Info().
		Str("user_hash", logger.HashEmail(user.Email)).
		Msg("Login succeeded")
	return nil
}

// Register creates an account and fetches the profile, same contract as Login.
func (m *Manager) Register(ctx context.Context, req api.RegisterRequest) error {
	m.setState(StateAuthenticating)

	if err := m.api.Register(ctx, req); err != nil {
		m.abortAuth()
		return err
	}
	user, err := m.api.Me(ctx)
	if err != nil {
		m.abortAuth()
		return err
	}

	m.commitUser(user)
	logger.Log.Info().
		Str("user_hash", logger.HashEmail(user.Email)).
		Msg("Registration succeeded")
	return nil
}

// Logout is the user-initiated teardown: discard token, clear profile.
func (m *Manager) Logout() {
	if err := m.api.Logout(); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to discard session token")
	}

	m.mu.Lock()
	m.state = StateUnauthenticated
	m.user = nil
	m.mu.Unlock()

	logger.Log.Info().Msg("Logged out")
}

// RefreshProfile replaces the cached profile with the server's current view.
// Called after every mutating operation; the balance is never derived
// locally. On failure the caller must treat the session as suspect.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	user, err := m.api.Me(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.state == StateAuthenticated {
		m.user = &user
	}
	m.mu.Unlock()
	return nil
}

// CurrentUser returns the last fetched profile.
func (m *Manager) CurrentUser() (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return models.User{}, false
	}
	return *m.user, true
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether a token is present and the last profile
// fetch succeeded.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, hasToken := m.tokens.Token()
	return m.state == StateAuthenticated && m.user != nil && hasToken
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) commitUser(user models.User) {
	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = &user
	m.mu.Unlock()
}

// abortAuth rolls a failed login/register back to Unauthenticated and makes
// sure no half-acquired token lingers.
func (m *Manager) abortAuth() {
	_ = m.tokens.Clear()
	m.mu.Lock()
	m.state = StateUnauthenticated
	m.user = nil
	m.mu.Unlock()
}
