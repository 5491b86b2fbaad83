package app

import (
	"context"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/hireboard/internal/mockapi"
	"github.com/khrees2412/hireboard/internal/session"
)

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	srv := mockapi.New(nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	srv.AddUser("ann@example.com", "secret", "ann", false)

	dir := t.TempDir()
	t.Setenv("HIREBOARD_API_URL", ts.URL)

	first, err := NewApp(ctx, dir)
	require.NoError(t, err)
	_, err = first.RequireSession(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, err = first.Session.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewApp(ctx, dir)
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, session.StateAuthenticatedNoProfile, second.Session.State())

	s, err := second.RequireSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ann", s.User.Username)
}

func TestRevokedTokenIsDroppedOnStart(t *testing.T) {
	ctx := context.Background()
	srv := mockapi.New(nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	srv.AddUser("ann@example.com", "secret", "ann", false)

	dir := t.TempDir()
	t.Setenv("HIREBOARD_API_URL", ts.URL)

	a, err := NewApp(ctx, dir)
	require.NoError(t, err)
	_, err = a.Session.Login(ctx, "ann@example.com", "secret")
	require.NoError(t, err)
	require.NoError(t, a.Close())

	srv.RevokeTokens()

	b, err := NewApp(ctx, dir)
	require.NoError(t, err)
	defer b.Close()

	_, err = b.RequireSession(ctx)
	var aerr *session.AuthError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, session.KindSessionExpired, aerr.Kind)
	assert.Equal(t, session.StateAnonymous, b.Session.State())
}

func TestContext(t *testing.T) {
	assert.Nil(t, GetAppFromContext(context.Background()))
	a := &App{}
	assert.Same(t, a, GetAppFromContext(SetAppInContext(context.Background(), a)))
}

func TestLogoutClearsCache(t *testing.T) {
	ctx := context.Background()
	srv := mockapi.New(nil)
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()
	ann := srv.AddUser("ann@example.com", "secret", "ann", false)
	boss := srv.AddUser("boss@example.com", "secret", "boss", true)
	job := srv.AddJob(boss.ID, "Engineer")

	t.Setenv("HIREBOARD_API_URL", ts.URL)
	a, err := NewApp(ctx, t.TempDir())
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Session.Login(ctx, ann.Email, "secret")
	require.NoError(t, err)
	_, err = a.Applications.Submit(ctx, job, "", "https://cv.example.com/ann.pdf")
	require.NoError(t, err)

	cached, err := a.Cache.List(ctx, "applicant:"+strconv.Itoa(ann.ID))
	require.NoError(t, err)
	require.Len(t, cached, 1)

	a.Logout(ctx)
	assert.Equal(t, session.StateAnonymous, a.Session.State())
	cached, err = a.Cache.List(ctx, "applicant:"+strconv.Itoa(ann.ID))
	require.NoError(t, err)
	assert.Empty(t, cached)
}
