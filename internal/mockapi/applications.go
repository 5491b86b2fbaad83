package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/khrees2412/hireboard/internal/workflow"
	"github.com/khrees2412/hireboard/pkg/models"
)

type applyRequest struct {
	JobID       int    `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url"`
}

type statusRequest struct {
	Status string `json:"status"`
}

// AddJob creates an active job posted by posterID
func (s *Server) AddJob(posterID int, title string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextJob++
	s.jobs[s.nextJob] = &Job{ID: s.nextJob, Title: title, PostedBy: posterID, Active: true}
	return s.nextJob
}

// CloseJob stops a job from accepting applications
func (s *Server) CloseJob(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Active = false
	}
}

// Application returns a copy of the stored application
func (s *Server) Application(id int) (models.JobApplication, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok {
		return models.JobApplication{}, false
	}
	return *app, true
}

// SetStatus forces an application status, e.g. to load legacy data
func (s *Server) SetStatus(id int, status models.ApplicationStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if app, ok := s.apps[id]; ok {
		app.Status = status
		app.UpdatedAt = s.now()
	}
}

func pathID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func badID(c echo.Context) error {
	return c.JSON(http.StatusUnprocessableEntity, detail("id must be a positive integer"))
}

// listLocked returns the applications matching keep, newest first
func (s *Server) listLocked(keep func(*models.JobApplication) bool) []models.JobApplication {
	out := []models.JobApplication{}
	for _, app := range s.apps {
		if keep(app) {
			out = append(out, *app)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Server) handleApply(c echo.Context) error {
	user, err := s.currentUser(c)
	if user == nil {
		return err
	}
	if user.IsSupervisor {
		return c.JSON(http.StatusForbidden, detail("Employers cannot apply for jobs"))
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, detail("Invalid request body"))
	}
	if strings.TrimSpace(req.ResumeURL) == "" {
		return c.JSON(http.StatusUnprocessableEntity, detail("resume_url is required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, app := range s.apps {
		if app.JobID == req.JobID && app.ApplicantID == user.ID {
			return c.JSON(http.StatusBadRequest, detail("You have already applied for this job"))
		}
	}
	job, ok := s.jobs[req.JobID]
	if !ok {
		return c.JSON(http.StatusNotFound, detail("Job not found"))
	}
	if !job.Active {
		return c.JSON(http.StatusBadRequest, detail("This job is no longer accepting applications"))
	}

	s.nextApp++
	now := s.now()
	app := &models.JobApplication{
		ID:          s.nextApp,
		JobID:       req.JobID,
		ApplicantID: user.ID,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.apps[app.ID] = app
	return c.JSON(http.StatusOK, app)
}

func (s *Server) handleMyApplications(c echo.Context) error {
	user, err := s.currentUser(c)
	if user == nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, s.listLocked(func(app *models.JobApplication) bool {
		return app.ApplicantID == user.ID
	}))
}

func (s *Server) handleJobApplications(c echo.Context) error {
	user, err := s.currentUser(c)
	if user == nil {
		return err
	}
	jobID, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return c.JSON(http.StatusOK, []models.JobApplication{})
	}
	if job.PostedBy != user.ID {
		return c.JSON(http.StatusForbidden, detail("You can only view applications for jobs you posted"))
	}
	return c.JSON(http.StatusOK, s.listLocked(func(app *models.JobApplication) bool {
		return app.JobID == jobID
	}))
}

func (s *Server) handleUpdateStatus(c echo.Context) error {
	user, err := s.currentUser(c)
	if user == nil {
		return err
	}
	if !user.IsSupervisor {
		return c.JSON(http.StatusForbidden, detail("Only employers can update application status"))
	}
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, detail("Invalid request body"))
	}
	// like the real service, only the value is checked here, not the transition
	status := models.ApplicationStatus(strings.ToLower(req.Status))
	if !workflow.IsKnown(status) {
		return c.JSON(http.StatusBadRequest, detail("Invalid status value"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok {
		return c.JSON(http.StatusNotFound, detail("Application not found"))
	}
	if job := s.jobs[app.JobID]; job == nil || job.PostedBy != user.ID {
		return c.JSON(http.StatusForbidden, detail("You can only update applications for jobs you posted"))
	}

	app.Status = status
	app.UpdatedAt = s.now()
	return c.JSON(http.StatusOK, app)
}

func (s *Server) handleCheck(c echo.Context) error {
	user, err := s.currentUser(c)
	if user == nil {
		return err
	}
	if user.IsSupervisor {
		return c.JSON(http.StatusForbidden, detail("Employers cannot apply for jobs"))
	}
	jobID, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	applied := false
	for _, app := range s.apps {
		if app.JobID == jobID && app.ApplicantID == user.ID {
			applied = true
			break
		}
	}
	return c.JSON(http.StatusOK, map[string]bool{"has_applied": applied})
}

func (s *Server) handleOffer(c echo.Context) error {
	user, err := s.currentUser(c)
	if user == nil {
		return err
	}
	if !user.IsSupervisor {
		return c.JSON(http.StatusForbidden, detail("Only employers can make job offers"))
	}
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}

	var req models.Offer
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, detail("Invalid request body"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok {
		return c.JSON(http.StatusNotFound, detail("Application not found"))
	}
	if job := s.jobs[app.JobID]; job == nil || job.PostedBy != user.ID {
		return c.JSON(http.StatusForbidden, detail("You can only make offers for jobs you posted"))
	}

	// no transition check, like the status endpoint
	app.Status = models.StatusOfferExtended
	app.OfferDetails = req.Details
	app.OfferSalary = req.Salary
	app.OfferExpiryDate = req.ExpiryDate
	app.UpdatedAt = s.now()
	return c.JSON(http.StatusOK, app)
}

func (s *Server) handleOfferRespond(c echo.Context) error {
	user, err := s.currentUser(c)
	if user == nil {
		return err
	}
	if user.IsSupervisor {
		return c.JSON(http.StatusForbidden, detail("Employers cannot respond to job offers"))
	}
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	accept, perr := strconv.ParseBool(c.QueryParam("accept"))
	if perr != nil {
		return c.JSON(http.StatusUnprocessableEntity, detail("accept must be true or false"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.apps[id]
	if !ok {
		return c.JSON(http.StatusNotFound, detail("Application not found"))
	}
	if app.ApplicantID != user.ID {
		return c.JSON(http.StatusForbidden, detail("You can only respond to your own job offers"))
	}
	if app.Status != models.StatusOfferExtended {
		return c.JSON(http.StatusBadRequest, detail("No offer to respond to"))
	}
	if app.OfferExpired(s.now()) {
		return c.JSON(http.StatusBadRequest, detail("Offer has expired"))
	}

	if accept {
		app.Status = models.StatusOfferAccepted
	} else {
		app.Status = models.StatusOfferDeclined
	}
	app.UpdatedAt = s.now()
	return c.JSON(http.StatusOK, app)
}
