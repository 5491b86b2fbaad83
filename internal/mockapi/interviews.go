package mockapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/khrees2412/hireboard/pkg/models"
)

type interviewUpdate struct {
	Status      models.InterviewStatus `json:"status"`
	ScheduledAt *time.Time             `json:"scheduled_at"`
	Location    *string                `json:"location"`
	Notes       *string                `json:"notes"`
}

// Interview returns a copy of the stored interview
func (s *Server) Interview(id int) (models.Interview, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	iv, ok := s.inters[id]
	if !ok {
		return models.Interview{}, false
	}
	return *iv, true
}

func (s *Server) handleScheduleInterview(c echo.Context) error {
	user, err := s.currentUser(c)
	if user == nil {
		return err
	}
	if !user.IsSupervisor {
		return c.JSON(http.StatusForbidden, detail("Only employers can schedule interviews"))
	}

	var req models.InterviewPlan
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, detail("Invalid request body"))
	}
	if req.ScheduledAt.IsZero() {
		return c.JSON(http.StatusUnprocessableEntity, detail("scheduled_at is required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[req.ApplicationID]
	if !ok {
		return c.JSON(http.StatusNotFound, detail("Application not found"))
	}
	if job := s.jobs[app.JobID]; job == nil || job.PostedBy != user.ID {
		return c.JSON(http.StatusForbidden, detail("You can only schedule interviews for jobs you posted"))
	}

	s.nextInt++
	now := s.now()
	iv := &models.Interview{
		ID:            s.nextInt,
		ApplicationID: app.ID,
		ScheduledAt:   req.ScheduledAt,
		Location:      req.Location,
		Notes:         req.Notes,
		Status:        models.InterviewScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.inters[iv.ID] = iv
	app.Status = models.StatusInterviewScheduled
	app.UpdatedAt = now
	return c.JSON(http.StatusOK, iv)
}

func (s *Server) handleUpdateInterview(c echo.Context) error {
	user, err := s.currentUser(c)
	if user == nil {
		return err
	}
	if !user.IsSupervisor {
		return c.JSON(http.StatusForbidden, detail("Only employers can update interviews"))
	}
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	var req interviewUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, detail("Invalid request body"))
	}
	switch req.Status {
	case "", models.InterviewScheduled, models.InterviewCompleted, models.InterviewCancelled:
	default:
		return c.JSON(http.StatusBadRequest, detail("Invalid interview status"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	iv, ok := s.inters[id]
	if !ok {
		return c.JSON(http.StatusNotFound, detail("Interview not found"))
	}

	if req.Status != "" {
		iv.Status = req.Status
	}
	if req.ScheduledAt != nil {
		iv.ScheduledAt = *req.ScheduledAt
	}
	if req.Location != nil {
		iv.Location = *req.Location
	}
	if req.Notes != nil {
		iv.Notes = *req.Notes
	}
	iv.UpdatedAt = s.now()

	if req.Status == models.InterviewCompleted {
		if app, ok := s.apps[iv.ApplicationID]; ok {
			app.Status = models.StatusInterviewCompleted
			app.UpdatedAt = iv.UpdatedAt
		}
	}
	return c.JSON(http.StatusOK, iv)
}

func (s *Server) handleApplicationInterviews(c echo.Context) error {
	user, err := s.currentUser(c)
	if user == nil {
		return err
	}
	appID, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[appID]
	if !ok {
		return c.JSON(http.StatusNotFound, detail("Application not found"))
	}
	if !user.IsSupervisor && user.ID != app.ApplicantID {
		return c.JSON(http.StatusForbidden, detail("You don't have permission to view these interviews"))
	}

	out := []models.Interview{}
	for _, iv := range s.inters {
		if iv.ApplicationID == appID {
			out = append(out, *iv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return c.JSON(http.StatusOK, out)
}
