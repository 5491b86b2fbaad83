package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/hireboard/pkg/models"
)

// createTestStore opens a store in a temporary directory
func createTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "test.db")

	s, err := Open(path)
	require.NoError(t, err, "failed to open test store")
	t.Cleanup(func() { s.Close() })

	return s, path
}

func TestTokenStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := createTestStore(t)
	tokens := NewTokenStore(s)

	token, err := tokens.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "fresh store should have no token")

	require.NoError(t, tokens.Save(ctx, "first"))
	require.NoError(t, tokens.Save(ctx, "second"))

	token, err = tokens.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", token)

	require.NoError(t, tokens.Clear(ctx))
	require.NoError(t, tokens.Clear(ctx), "clearing twice should not fail")

	token, err = tokens.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

// TestTokenSurvivesReopen simulates a process restart
func TestTokenSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, path := createTestStore(t)

	require.NoError(t, NewTokenStore(s).Save(ctx, "persisted"))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err, "migrations must be re-runnable")
	defer reopened.Close()

	token, err := NewTokenStore(reopened).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", token)
}

func TestApplicationCacheReplace(t *testing.T) {
	ctx := context.Background()
	s, _ := createTestStore(t)
	cache := NewApplicationCache(s)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	apps := []models.JobApplication{
		{ID: 1, JobID: 7, ApplicantID: 3, Status: models.StatusPending, ResumeURL: "https://cv/1", CreatedAt: created},
		{ID: 2, JobID: 7, ApplicantID: 4, Status: models.StatusUnderReview, ResumeURL: "https://cv/2",
			CoverLetter: "hello", CreatedAt: created.Add(time.Hour)},
	}
	require.NoError(t, cache.Replace(ctx, "job:7", apps))

	listed, err := cache.List(ctx, "job:7")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, 2, listed[0].ID, "newest first")
	assert.Equal(t, "hello", listed[0].CoverLetter)
	assert.True(t, created.Equal(listed[1].CreatedAt))

	// a refresh replaces the whole scope
	require.NoError(t, cache.Replace(ctx, "job:7", apps[:1]))
	listed, err = cache.List(ctx, "job:7")
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	got, err := cache.Get(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusPending, got.Status)

	missing, err := cache.Get(ctx, 99)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestApplicationCacheScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	s, _ := createTestStore(t)
	cache := NewApplicationCache(s)

	app := models.JobApplication{ID: 5, JobID: 9, ApplicantID: 1, Status: models.StatusPending, ResumeURL: "cv"}
	require.NoError(t, cache.Replace(ctx, "applicant:1", []models.JobApplication{app}))

	app.Status = models.StatusUnderReview
	require.NoError(t, cache.Replace(ctx, "job:9", []models.JobApplication{app}))

	mine, err := cache.List(ctx, "applicant:1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, models.StatusPending, mine[0].Status)

	require.NoError(t, cache.Replace(ctx, "job:9", nil))
	jobs, err := cache.List(ctx, "job:9")
	require.NoError(t, err)
	assert.Empty(t, jobs)

	require.NoError(t, cache.Clear(ctx))
	mine, err = cache.List(ctx, "applicant:1")
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestApplicationCachePut(t *testing.T) {
	ctx := context.Background()
	s, _ := createTestStore(t)
	cache := NewApplicationCache(s)

	app := models.JobApplication{ID: 5, JobID: 9, ApplicantID: 1, Status: models.StatusInterviewCompleted, ResumeURL: "cv"}
	require.NoError(t, cache.Replace(ctx, "job:9", []models.JobApplication{app}))

	expires := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)
	app.Status = models.StatusOfferExtended
	app.OfferDetails = "Senior engineer"
	app.OfferSalary = 95000
	app.OfferExpiryDate = &expires
	require.NoError(t, cache.Put(ctx, "job:9", app))

	listed, err := cache.List(ctx, "job:9")
	require.NoError(t, err)
	require.Len(t, listed, 1, "put replaces the row of the same id")

	got, err := cache.Get(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusOfferExtended, got.Status)
	assert.Equal(t, "Senior engineer", got.OfferDetails)
	assert.Equal(t, 95000.0, got.OfferSalary)
	require.NotNil(t, got.OfferExpiryDate)
	assert.True(t, expires.Equal(*got.OfferExpiryDate))

	// an older copy in another scope does not shadow the put row
	app.Status = models.StatusPending
	app.OfferExpiryDate = nil
	require.NoError(t, cache.Replace(ctx, "applicant:1", []models.JobApplication{app}))
	app.Status = models.StatusRejected
	require.NoError(t, cache.Put(ctx, "job:9", app))
	got, err = cache.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, got.Status)
	assert.Nil(t, got.OfferExpiryDate)
}
