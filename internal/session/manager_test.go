package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/hireboard/internal/api"
	"github.com/khrees2412/hireboard/pkg/models"
)

type memTokens struct {
	mu      sync.Mutex
	token   string
	saveErr error
	saves   int
}

func (m *memTokens) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.token = token
	return nil
}

func (m *memTokens) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// fakeAuth records calls and answers from canned values
type fakeAuth struct {
	token       string
	loginErr    error
	registerErr error
	meErr       error
	profile     *models.UserProfile

	logins    int
	registers int
	mes       int
	lastReg   models.Registration
	// seen during Me, to check the session was authenticated first
	onMe func()
}

func (f *fakeAuth) Login(context.Context, string, string) (*api.TokenResponse, error) {
	f.logins++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &api.TokenResponse{AccessToken: f.token, TokenType: "bearer"}, nil
}

func (f *fakeAuth) Me(context.Context, string) (*models.UserProfile, error) {
	f.mes++
	if f.onMe != nil {
		f.onMe()
	}
	if f.meErr != nil {
		return nil, f.meErr
	}
	return f.profile, nil
}

func (f *fakeAuth) Register(_ context.Context, r models.Registration) (*api.TokenResponse, error) {
	f.registers++
	f.lastReg = r
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &api.TokenResponse{AccessToken: "reg-token"}, nil
}

func apiErr(status int, detail string) error {
	return &api.Error{Method: http.MethodPost, Path: "/api/auth/login", StatusCode: status, Detail: detail}
}

func newTestManager(t *testing.T, auth *fakeAuth, tokens *memTokens) *Manager {
	t.Helper()
	m, err := NewManager(context.Background(), auth, tokens, nil)
	require.NoError(t, err)
	return m
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	alice := &models.UserProfile{ID: 3, Username: "alice", Email: "alice@example.com"}
	auth := &fakeAuth{token: "tok-1", profile: alice}
	tokens := &memTokens{}
	m := newTestManager(t, auth, tokens)

	auth.onMe = func() {
		s := m.Session()
		assert.True(t, s.IsAuthenticated)
		assert.Equal(t, "tok-1", s.Token)
		assert.Equal(t, "tok-1", tokens.token)
	}

	res, err := m.Login(ctx, " alice@example.com ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", res.Token)

	s := m.Session()
	assert.Equal(t, StateAuthenticated, s.State())
	assert.False(t, s.IsLoading)
	assert.Equal(t, alice, s.User)
	assert.Equal(t, "tok-1", m.Token())
}

func TestLoginProfileFailureStillAuthenticates(t *testing.T) {
	auth := &fakeAuth{token: "tok-1", meErr: apiErr(http.StatusInternalServerError, "")}
	m := newTestManager(t, auth, &memTokens{})

	_, err := m.Login(context.Background(), "alice@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, StateAuthenticatedNoProfile, m.State())
	assert.Equal(t, DecisionRedirectLogin, Guard(m.Session()))
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		loginErr error
		wantKind ErrorKind
		wantMsg  string
	}{
		{"bad credentials", apiErr(http.StatusUnauthorized, "Incorrect email or password"), KindInvalidCredentials, "Incorrect email or password"},
		{"no detail", apiErr(http.StatusUnauthorized, ""), KindInvalidCredentials, "Login failed"},
		{"validation", apiErr(http.StatusUnprocessableEntity, "field required"), KindValidation, "field required"},
		{"server", apiErr(http.StatusBadGateway, ""), KindServer, "Login failed"},
		{"network", &api.Error{Method: http.MethodPost, Path: "/api/auth/login", Err: errors.New("connection refused")}, KindNetwork, "connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := &memTokens{}
			m := newTestManager(t, &fakeAuth{loginErr: tt.loginErr}, tokens)

			_, err := m.Login(context.Background(), "alice@example.com", "pw")
			var aerr *AuthError
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, tt.wantKind, aerr.Kind)
			assert.Equal(t, tt.wantMsg, aerr.Message)

			assert.Equal(t, StateAnonymous, m.State())
			assert.Empty(t, tokens.token)
			assert.Zero(t, tokens.saves)
		})
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	auth := &fakeAuth{token: "tok"}
	m := newTestManager(t, auth, &memTokens{})

	_, err := m.Login(context.Background(), "  ", "pw")
	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, KindValidation, aerr.Kind)
	assert.Zero(t, auth.logins)
	assert.False(t, m.Session().IsLoading)
}

func TestLoginStorageFailure(t *testing.T) {
	tokens := &memTokens{saveErr: errors.New("disk full")}
	m := newTestManager(t, &fakeAuth{token: "tok"}, tokens)

	_, err := m.Login(context.Background(), "alice@example.com", "pw")
	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, KindStorage, aerr.Kind)
	assert.Equal(t, StateAnonymous, m.State())
}

func TestRestoredSessionNeedsProfile(t *testing.T) {
	ctx := context.Background()
	alice := &models.UserProfile{ID: 3, Username: "alice"}
	auth := &fakeAuth{profile: alice}
	m := newTestManager(t, auth, &memTokens{token: "saved"})

	assert.Equal(t, StateAuthenticatedNoProfile, m.State())
	assert.Equal(t, "saved", m.Token())

	require.NoError(t, m.RefreshProfile(ctx))
	assert.Equal(t, StateAuthenticated, m.State())

	require.NoError(t, m.RefreshProfile(ctx))
	assert.Equal(t, 1, auth.mes)
}

func TestLoginRejectedProfileEndsSession(t *testing.T) {
	tokens := &memTokens{}
	auth := &fakeAuth{token: "tok-1", meErr: apiErr(http.StatusUnauthorized, "Could not validate credentials")}
	m := newTestManager(t, auth, tokens)

	_, err := m.Login(context.Background(), "alice@example.com", "pw")
	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, KindSessionExpired, aerr.Kind)
	assert.Equal(t, StateAnonymous, m.State())
	assert.False(t, m.Session().IsLoading)
	assert.Empty(t, tokens.token)
}

func TestRefreshProfileRejectedToken(t *testing.T) {
	tokens := &memTokens{token: "expired"}
	auth := &fakeAuth{meErr: apiErr(http.StatusUnauthorized, "Could not validate credentials")}
	m := newTestManager(t, auth, tokens)

	err := m.RefreshProfile(context.Background())
	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, KindSessionExpired, aerr.Kind)
	assert.Equal(t, StateAnonymous, m.State())
	assert.Empty(t, tokens.token)
}

func TestRefreshProfileServerError(t *testing.T) {
	tokens := &memTokens{token: "saved"}
	m := newTestManager(t, &fakeAuth{meErr: apiErr(http.StatusServiceUnavailable, "")}, tokens)

	err := m.RefreshProfile(context.Background())
	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, KindServer, aerr.Kind)
	assert.Equal(t, StateAuthenticatedNoProfile, m.State())
	assert.Equal(t, "saved", tokens.token)
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tokens := &memTokens{}
	m := newTestManager(t, &fakeAuth{token: "tok", profile: &models.UserProfile{ID: 1}}, tokens)

	_, err := m.Login(ctx, "alice@example.com", "pw")
	require.NoError(t, err)

	m.Logout(ctx)
	assert.Equal(t, StateAnonymous, m.State())
	assert.Empty(t, tokens.token)
	assert.Nil(t, m.Session().User)

	m.Logout(ctx)
	assert.Equal(t, StateAnonymous, m.State())
}

func TestInvalidateWithoutTokenIsNoop(t *testing.T) {
	tokens := &memTokens{}
	m := newTestManager(t, &fakeAuth{}, tokens)
	m.Invalidate(context.Background(), "test")
	assert.Equal(t, StateAnonymous, m.State())
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	profile := &models.UserProfile{ID: 9, Username: "bob", Email: "bob@example.com", IsSupervisor: true}
	auth := &fakeAuth{token: "login-token", profile: profile}
	m := newTestManager(t, auth, &memTokens{})

	res, err := m.Register(ctx, models.Registration{
		Email:           " bob@example.com ",
		Password:        "pw",
		ConfirmPassword: "pw",
		Username:        "bob",
		IsSupervisor:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "login-token", res.Token)
	assert.Equal(t, 1, auth.registers)
	assert.Equal(t, 1, auth.logins)
	assert.Equal(t, "bob@example.com", auth.lastReg.Email)
	assert.True(t, auth.lastReg.IsSupervisor)

	s := m.Session()
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, models.RoleEmployer, s.User.Role())
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		reg  models.Registration
	}{
		{"missing email", models.Registration{Password: "pw", Username: "bob"}},
		{"bad email", models.Registration{Email: "bob", Password: "pw", Username: "bob"}},
		{"missing username", models.Registration{Email: "bob@example.com", Password: "pw"}},
		{"missing password", models.Registration{Email: "bob@example.com", Username: "bob"}},
		{"mismatched confirmation", models.Registration{Email: "bob@example.com", Password: "pw", ConfirmPassword: "wp", Username: "bob"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuth{token: "tok"}
			m := newTestManager(t, auth, &memTokens{})

			_, err := m.Register(context.Background(), tt.reg)
			var aerr *AuthError
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, KindValidation, aerr.Kind)
			assert.Zero(t, auth.registers)
			assert.Equal(t, StateAnonymous, m.State())
		})
	}
}

func TestRegisterConflict(t *testing.T) {
	auth := &fakeAuth{token: "tok", registerErr: apiErr(http.StatusBadRequest, "Email already registered")}
	m := newTestManager(t, auth, &memTokens{})

	_, err := m.Register(context.Background(), models.Registration{Email: "bob@example.com", Password: "pw", Username: "bob"})
	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, KindConflict, aerr.Kind)
	assert.Equal(t, "Email already registered", aerr.Message)
	assert.Zero(t, auth.logins)
	assert.Equal(t, StateAnonymous, m.State())
}

func TestParseEmployerFlag(t *testing.T) {
	for _, in := range []string{"", "no", "False", " n ", "0", "candidate"} {
		v, err := ParseEmployerFlag(in)
		require.NoError(t, err, in)
		assert.False(t, v, in)
	}
	for _, in := range []string{"yes", "TRUE", "y", "1", "employer"} {
		v, err := ParseEmployerFlag(in)
		require.NoError(t, err, in)
		assert.True(t, v, in)
	}

	_, err := ParseEmployerFlag("maybe")
	var aerr *AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, KindValidation, aerr.Kind)
}
