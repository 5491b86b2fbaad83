package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/khrees2412/hireboard/pkg/models"
)

func TestCalculateStats(t *testing.T) {
	day := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	apps := []models.JobApplication{
		{ID: 1, Status: models.StatusPending, UpdatedAt: day},
		{ID: 2, Status: models.StatusUnderReview, UpdatedAt: day.Add(time.Hour)},
		{ID: 3, Status: models.StatusOfferExtended, UpdatedAt: day},
		{ID: 4, Status: models.StatusOfferAccepted, UpdatedAt: day.Add(48 * time.Hour)},
		{ID: 5, Status: models.StatusRejected, UpdatedAt: day},
		{ID: 6, Status: models.StatusAccepted, UpdatedAt: day},
	}

	stats := calculateStats(apps)
	assert.Equal(t, 6, stats.Total)
	assert.Equal(t, 3, stats.Open)
	assert.Equal(t, 5, stats.Responded)
	assert.Equal(t, 2, stats.Offers)
	assert.Equal(t, 2, stats.Hired)
	assert.Equal(t, 1, stats.Rejected)
	assert.InDelta(t, 83.3, stats.ResponseRate(), 0.1)
	assert.Equal(t, day.Add(48*time.Hour), stats.LastUpdate)

	assert.Equal(t, []models.ApplicationStatus{
		models.StatusPending,
		models.StatusUnderReview,
		models.StatusOfferExtended,
		models.StatusOfferAccepted,
		models.StatusAccepted,
		models.StatusRejected,
	}, stats.breakdown())
}

func TestActionsForHidesOfferAnswersFromEmployer(t *testing.T) {
	employer := actionsFor("extended", models.RoleEmployer, models.StatusOfferExtended)
	assert.Equal(t, []models.ApplicationStatus{models.StatusRejected}, employer)

	candidate := actionsFor("extended", models.RoleCandidate, models.StatusOfferExtended)
	assert.Equal(t, []models.ApplicationStatus{models.StatusOfferAccepted, models.StatusOfferDeclined}, candidate)

	assert.Empty(t, actionsFor("narrow", models.RoleCandidate, models.StatusPending))
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 12 ", "job ID")
	assert.NoError(t, err)
	assert.Equal(t, 12, id)

	_, err = parseID("0", "job ID")
	assert.Error(t, err)
	_, err = parseID("abc", "job ID")
	assert.Error(t, err)
}
