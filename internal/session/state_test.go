package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khrees2412/hireboard/pkg/models"
)

func TestReduce(t *testing.T) {
	alice := &models.UserProfile{ID: 1, Username: "alice", Email: "alice@example.com"}
	signedIn := Session{Token: "tok", IsAuthenticated: true, User: alice}

	tests := []struct {
		name   string
		in     Session
		action Action
		want   Session
	}{
		{
			name:   "login success authenticates and drops stale profile",
			in:     Session{IsLoading: true, User: alice},
			action: LoginSuccess("tok"),
			want:   Session{Token: "tok", IsAuthenticated: true},
		},
		{
			name:   "login success without token is ignored",
			in:     Session{},
			action: LoginSuccess(""),
			want:   Session{},
		},
		{
			name:   "logout clears everything but loading",
			in:     Session{Token: "tok", IsAuthenticated: true, IsLoading: true, User: alice},
			action: Logout(),
			want:   Session{IsLoading: true},
		},
		{
			name:   "set loading",
			in:     signedIn,
			action: SetLoading(true),
			want:   Session{Token: "tok", IsAuthenticated: true, IsLoading: true, User: alice},
		},
		{
			name:   "set user on authenticated session",
			in:     Session{Token: "tok", IsAuthenticated: true},
			action: SetUser(alice),
			want:   signedIn,
		},
		{
			name:   "set user without token is ignored",
			in:     Session{},
			action: SetUser(alice),
			want:   Session{},
		},
		{
			name:   "unknown action leaves state alone",
			in:     signedIn,
			action: Action{Type: "RESET"},
			want:   signedIn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reduce(tt.in, tt.action))
		})
	}
}

func TestReduceCopiesUser(t *testing.T) {
	u := &models.UserProfile{ID: 1, Username: "alice"}
	s := Reduce(Session{Token: "tok", IsAuthenticated: true}, SetUser(u))

	u.Username = "mallory"
	assert.Equal(t, "alice", s.User.Username)
}

func TestSessionState(t *testing.T) {
	user := &models.UserProfile{ID: 1}
	tests := []struct {
		s    Session
		want State
	}{
		{Session{}, StateAnonymous},
		{Session{IsLoading: true}, StateAuthenticating},
		{Session{Token: "tok", IsAuthenticated: true, IsLoading: true}, StateAuthenticating},
		{Session{Token: "tok", IsAuthenticated: true}, StateAuthenticatedNoProfile},
		{Session{Token: "tok", IsAuthenticated: true, User: user}, StateAuthenticated},
		{Session{IsAuthenticated: true, User: user}, StateAnonymous},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.s.State(), "%+v", tt.s)
	}
}

func TestSessionRole(t *testing.T) {
	_, ok := Session{}.Role()
	assert.False(t, ok)

	role, ok := Session{User: &models.UserProfile{IsSupervisor: true}}.Role()
	assert.True(t, ok)
	assert.Equal(t, models.RoleEmployer, role)
}
