// Package session owns the authentication state of the client: the bearer
// token, the loaded profile and the login, registration and logout flows.
package session

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"sync"

	"github.com/khrees2412/hireboard/internal/api"
	"github.com/khrees2412/hireboard/pkg/models"
)

// AuthAPI is the part of the job-board API the session manager needs
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.TokenResponse, error)
	Me(ctx context.Context, token string) (*models.UserProfile, error)
	Register(ctx context.Context, r models.Registration) (*api.TokenResponse, error)
}

// TokenStore persists the bearer token across restarts
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// LoginResult is returned by a successful Login or Register
type LoginResult struct {
	Token string
}

// Manager is the single owner of the Session. All mutation goes through
// dispatch with one of the four actions.
type Manager struct {
	mu     sync.RWMutex
	state  Session
	api    AuthAPI
	tokens TokenStore
	log    *slog.Logger
}

// NewManager restores the persisted token. A restored session is
// authenticated but has no profile until RefreshProfile succeeds.
func NewManager(ctx context.Context, authAPI AuthAPI, tokens TokenStore, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	token, err := tokens.Load(ctx)
	if err != nil {
		return nil, &AuthError{Kind: KindStorage, Message: "could not read the saved session", Err: err}
	}

	m := &Manager{
		api:    authAPI,
		tokens: tokens,
		log:    logger.With("component", "session"),
	}
	if token != "" {
		m.state = Reduce(m.state, LoginSuccess(token))
	}
	return m, nil
}

// SetAPI swaps the API used for auth calls. The API client reads its token
// from the manager, so the two are built in two steps.
func (m *Manager) SetAPI(authAPI AuthAPI) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.api = authAPI
}

func (m *Manager) dispatch(a Action) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = Reduce(m.state, a)
	return m.state
}

// Session returns a snapshot of the current state
func (m *Manager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.state
	s.User = cloneUser(s.User)
	return s
}

// State returns the current lifecycle phase
func (m *Manager) State() State {
	return m.Session().State()
}

// Token implements api.TokenSource
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Token
}

func (m *Manager) authAPI() AuthAPI {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.api
}

// Login authenticates with email and password. The token is persisted and
// the session marked authenticated before the profile is fetched. A profile
// fetch that fails for any reason other than a rejected token does not fail
// the login.
func (m *Manager) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	m.dispatch(SetLoading(true))
	defer m.dispatch(SetLoading(false))

	return m.login(ctx, email, password)
}

func (m *Manager) login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, validationError("email and password are required")
	}

	resp, err := m.authAPI().Login(ctx, email, password)
	if err != nil {
		m.log.Info("login rejected", "email", email, "error", err)
		return nil, fromAPI(err, "Login failed", KindInvalidCredentials)
	}

	if err := m.tokens.Save(ctx, resp.AccessToken); err != nil {
		m.log.Error("failed to persist token", "error", err)
		return nil, &AuthError{Kind: KindStorage, Message: "Login failed: could not save the session", Err: err}
	}
	m.dispatch(LoginSuccess(resp.AccessToken))
	m.log.Info("logged in", "email", email)

	if err := m.loadProfile(ctx, resp.AccessToken); err != nil {
		if api.IsUnauthorized(err) || api.IsForbidden(err) {
			m.Invalidate(ctx, "profile request rejected the new token")
			return nil, &AuthError{Kind: KindSessionExpired, Message: "Login failed: the server rejected the new session", Err: err}
		}
		m.log.Warn("profile fetch failed after login", "error", err)
	}

	return &LoginResult{Token: resp.AccessToken}, nil
}

// loadProfile fetches the profile for token and installs it if token is
// still the current one.
func (m *Manager) loadProfile(ctx context.Context, token string) error {
	user, err := m.authAPI().Me(ctx, token)
	if err != nil {
		return err
	}
	if m.Token() != token {
		m.log.Debug("discarding profile for a replaced token")
		return nil
	}
	m.dispatch(SetUser(user))
	return nil
}

// Register creates an account and logs in with the same credentials.
// Registration alone does not open a session.
func (m *Manager) Register(ctx context.Context, r models.Registration) (*LoginResult, error) {
	r.Email = strings.TrimSpace(r.Email)
	r.Username = strings.TrimSpace(r.Username)
	if err := validateRegistration(r); err != nil {
		return nil, err
	}

	m.dispatch(SetLoading(true))
	defer m.dispatch(SetLoading(false))

	if _, err := m.authAPI().Register(ctx, r); err != nil {
		m.log.Info("registration rejected", "email", r.Email, "error", err)
		return nil, fromAPI(err, "Registration failed", KindConflict)
	}
	m.log.Info("registered", "email", r.Email, "employer", r.IsSupervisor)

	return m.login(ctx, r.Email, r.Password)
}

func validateRegistration(r models.Registration) error {
	if r.Email == "" {
		return validationError("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return validationError("%q is not a valid email address", r.Email)
	}
	if r.Username == "" {
		return validationError("username is required")
	}
	if r.Password == "" {
		return validationError("password is required")
	}
	if r.ConfirmPassword != "" && r.ConfirmPassword != r.Password {
		return validationError("passwords do not match")
	}
	return nil
}

// ParseEmployerFlag normalizes user input for the employer flag to a strict
// boolean. Empty input means candidate.
func ParseEmployerFlag(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "no", "n", "0", "off", "candidate":
		return false, nil
	case "true", "yes", "y", "1", "on", "employer", "supervisor":
		return true, nil
	default:
		return false, validationError("cannot read %q as an employer flag; use yes or no", v)
	}
}

// Logout clears the persisted token and resets the session. It never fails
// and may be called repeatedly.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.tokens.Clear(ctx); err != nil {
		m.log.Error("failed to clear persisted token", "error", err)
	}
	m.dispatch(Logout())
}

// Invalidate logs out after the API rejected the token
func (m *Manager) Invalidate(ctx context.Context, reason string) {
	if m.Token() == "" {
		return
	}
	m.log.Warn("session invalidated", "reason", reason)
	m.Logout(ctx)
}

// RefreshProfile fetches the profile for a restored or profile-less session.
// A rejected token ends the session.
func (m *Manager) RefreshProfile(ctx context.Context) error {
	s := m.Session()
	if s.Token == "" || s.User != nil {
		return nil
	}

	err := m.loadProfile(ctx, s.Token)
	if err == nil {
		return nil
	}
	if api.IsUnauthorized(err) || api.IsForbidden(err) {
		m.Invalidate(ctx, "profile request rejected the token")
		return &AuthError{Kind: KindSessionExpired, Message: "Your session has expired, please log in again", Err: err}
	}
	return fromAPI(err, "Could not load your profile", KindServer)
}
