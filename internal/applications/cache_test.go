package applications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khrees2412/hireboard/pkg/models"
)

func TestMemoryCachePut(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	app := models.JobApplication{ID: 4, JobID: 7, Status: models.StatusUnderReview}
	require.NoError(t, c.Replace(ctx, jobScope(7), []models.JobApplication{app}))
	require.NoError(t, c.Replace(ctx, applicantScope(3), []models.JobApplication{app}))

	app.Status = models.StatusRejected
	require.NoError(t, c.Put(ctx, jobScope(7), app))

	got, err := c.Get(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StatusRejected, got.Status)

	listed, err := c.List(ctx, jobScope(7))
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	require.NoError(t, c.Put(ctx, jobScope(7), models.JobApplication{ID: 5, JobID: 7}))
	listed, err = c.List(ctx, jobScope(7))
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}
