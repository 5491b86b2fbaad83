// Package applications drives job applications through the status workflow
// against the job-board API. Local lists are refreshed from the server after
// every successful change and are never patched optimistically: the only
// single-row writes store what the server returned.
package applications

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/khrees2412/hireboard/internal/api"
	"github.com/khrees2412/hireboard/internal/session"
	"github.com/khrees2412/hireboard/internal/workflow"
	"github.com/khrees2412/hireboard/pkg/models"
)

// API is the part of the job-board API used for applications
type API interface {
	CreateApplication(ctx context.Context, jobID int, coverLetter, resumeURL string) (*models.JobApplication, error)
	MyApplications(ctx context.Context) ([]models.JobApplication, error)
	JobApplications(ctx context.Context, jobID int) ([]models.JobApplication, error)
	UpdateStatus(ctx context.Context, applicationID int, status models.ApplicationStatus) (*models.JobApplication, error)
	CheckApplied(ctx context.Context, jobID int) (bool, error)
	RespondToOffer(ctx context.Context, applicationID int, accept bool) (*models.JobApplication, error)
	ExtendOffer(ctx context.Context, applicationID int, offer models.Offer) (*models.JobApplication, error)
	ScheduleInterview(ctx context.Context, plan models.InterviewPlan) (*models.Interview, error)
	UpdateInterviewStatus(ctx context.Context, interviewID int, status models.InterviewStatus) (*models.Interview, error)
	ApplicationInterviews(ctx context.Context, applicationID int) ([]models.Interview, error)
}

// Sessions gives read access to the session and lets the service end it
// when the API rejects the token.
type Sessions interface {
	Session() session.Session
	Invalidate(ctx context.Context, reason string)
}

// Service implements submission, listing and status transitions
type Service struct {
	api      API
	sessions Sessions
	cache    Cache
	log      *slog.Logger
	now      func() time.Time
}

func NewService(apiClient API, sessions Sessions, cache Cache, logger *slog.Logger) *Service {
	if cache == nil {
		cache = NewMemoryCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:      apiClient,
		sessions: sessions,
		cache:    cache,
		log:      logger.With("component", "applications"),
		now:      time.Now,
	}
}

// actor returns the signed-in profile, or an error when the session would
// not pass the access guard.
func (s *Service) actor() (*models.UserProfile, error) {
	sess := s.sessions.Session()
	switch session.Guard(sess) {
	case session.DecisionAllow:
		return sess.User, nil
	case session.DecisionLoading:
		return nil, &ApplyError{Kind: workflow.KindUnauthorized, Message: "authentication is still in progress"}
	default:
		return nil, &ApplyError{Kind: workflow.KindUnauthorized, Message: "you must be logged in"}
	}
}

// checkToken ends the session when the API reports the token as invalid
func (s *Service) checkToken(ctx context.Context, err error) {
	if api.IsUnauthorized(err) {
		s.sessions.Invalidate(ctx, "api rejected the token")
	}
}

// normalize maps legacy and loosely formatted statuses onto the canonical set
func (s *Service) normalize(apps []models.JobApplication) []models.JobApplication {
	for i := range apps {
		s.normalizeOne(&apps[i])
	}
	return apps
}

func (s *Service) normalizeOne(app *models.JobApplication) {
	status, err := workflow.Normalize(string(app.Status))
	if err != nil {
		s.log.Warn("unknown application status from api", "application_id", app.ID, "status", app.Status)
		return
	}
	app.Status = status
}

func (s *Service) remember(ctx context.Context, scope string, apps []models.JobApplication) {
	if err := s.cache.Replace(ctx, scope, apps); err != nil {
		s.log.Warn("failed to cache applications", "scope", scope, "error", err)
	}
}

// record stores a row the API returned from a successful write, so later
// checks see it even when the follow-up list refresh fails.
func (s *Service) record(ctx context.Context, scope string, app models.JobApplication) {
	if err := s.cache.Put(ctx, scope, app); err != nil {
		s.log.Warn("failed to cache application", "scope", scope, "application_id", app.ID, "error", err)
	}
}

// Submit creates a pending application. Employers are refused and an empty
// resume URL fails before any request is sent.
func (s *Service) Submit(ctx context.Context, jobID int, coverLetter, resumeURL string) (*models.JobApplication, error) {
	user, err := s.actor()
	if err != nil {
		return nil, err
	}
	if !workflow.CanApply(user.Role()) {
		return nil, forbidden("employers cannot apply for jobs")
	}
	if jobID <= 0 {
		return nil, &ApplyError{Kind: workflow.KindValidation, Message: "a job id is required"}
	}
	resumeURL = strings.TrimSpace(resumeURL)
	if resumeURL == "" {
		return nil, &ApplyError{Kind: workflow.KindValidation, Message: "a resume URL is required"}
	}

	app, err := s.api.CreateApplication(ctx, jobID, strings.TrimSpace(coverLetter), resumeURL)
	if err != nil {
		s.checkToken(ctx, err)
		s.log.Info("application rejected", "job_id", jobID, "error", err)
		return nil, applyError(err, "Failed to submit application")
	}
	s.normalizeOne(app)
	s.record(ctx, applicantScope(user.ID), *app)
	s.log.Info("application submitted", "application_id", app.ID, "job_id", jobID)

	if _, err := s.ListForApplicant(ctx); err != nil {
		s.log.Warn("failed to refresh applications after submit", "error", err)
	}
	return app, nil
}

// ListForApplicant returns the signed-in candidate's applications
func (s *Service) ListForApplicant(ctx context.Context) ([]models.JobApplication, error) {
	user, err := s.actor()
	if err != nil {
		return nil, err
	}

	apps, err := s.api.MyApplications(ctx)
	if err != nil {
		s.checkToken(ctx, err)
		return nil, applyError(err, "Failed to load your applications")
	}
	apps = s.normalize(apps)
	s.remember(ctx, applicantScope(user.ID), apps)
	return apps, nil
}

// ListForJob returns the applications for a job the employer posted
func (s *Service) ListForJob(ctx context.Context, jobID int) ([]models.JobApplication, error) {
	user, err := s.actor()
	if err != nil {
		return nil, err
	}
	if user.Role() != models.RoleEmployer {
		return nil, forbidden("only the employer who posted job %d can list its applications", jobID)
	}

	apps, err := s.api.JobApplications(ctx, jobID)
	if err != nil {
		s.checkToken(ctx, err)
		return nil, applyError(err, "Failed to load applications for the job")
	}
	apps = s.normalize(apps)
	s.remember(ctx, jobScope(jobID), apps)
	return apps, nil
}

// CachedForJob returns the last list fetched for jobID without a request
func (s *Service) CachedForJob(ctx context.Context, jobID int) ([]models.JobApplication, error) {
	return s.cache.List(ctx, jobScope(jobID))
}

// loadForEmployer reads the cached application an employer is about to move,
// with its status normalized.
func (s *Service) loadForEmployer(ctx context.Context, applicationID int, target models.ApplicationStatus) (*models.JobApplication, error) {
	user, err := s.actor()
	if err != nil {
		return nil, err
	}
	if user.Role() != models.RoleEmployer {
		return nil, &workflow.TransitionError{Kind: workflow.KindForbidden, To: target,
			Message: "only the employer who posted the job can change an application's status"}
	}

	current, err := s.cache.Get(ctx, applicationID)
	if err != nil {
		return nil, &workflow.TransitionError{Kind: workflow.KindNotFound, To: target,
			Message: "could not read the application", Err: err}
	}
	if current == nil {
		return nil, &workflow.TransitionError{Kind: workflow.KindNotFound, To: target,
			Message: "application is not loaded; list the job's applications first"}
	}
	if normalized, err := workflow.Normalize(string(current.Status)); err == nil {
		current.Status = normalized
	}
	return current, nil
}

// checkMove runs the machine and the role rules for an employer move
func checkMove(from, target models.ApplicationStatus) error {
	if err := workflow.Validate(from, target); err != nil {
		return err
	}
	return workflow.Authorize(models.RoleEmployer, from, target)
}

// afterEmployerWrite stores the row the server returned for the job and then
// refreshes the job's list.
func (s *Service) afterEmployerWrite(ctx context.Context, jobID int, updated *models.JobApplication) {
	s.record(ctx, jobScope(jobID), *updated)
	if _, err := s.ListForJob(ctx, jobID); err != nil {
		s.log.Warn("failed to refresh job applications", "job_id", jobID, "error", err)
	}
}

// Transition moves an application to target. The move is checked against
// the workflow here, whatever actions the caller offered. On success the
// returned row is cached and the job's list re-fetched; a failed move leaves
// cached lists untouched.
func (s *Service) Transition(ctx context.Context, applicationID int, target models.ApplicationStatus) (*models.JobApplication, error) {
	current, err := s.loadForEmployer(ctx, applicationID, target)
	if err != nil {
		return nil, err
	}
	from := current.Status
	if err := checkMove(from, target); err != nil {
		return nil, err
	}

	updated, err := s.api.UpdateStatus(ctx, applicationID, target)
	if err != nil {
		s.checkToken(ctx, err)
		s.log.Info("status change rejected", "application_id", applicationID, "to", target, "error", err)
		return nil, transitionError(err, from, target, "Failed to update application status")
	}
	s.normalizeOne(updated)
	s.log.Info("application status changed", "application_id", applicationID, "from", from, "to", updated.Status)

	s.afterEmployerWrite(ctx, current.JobID, updated)
	return updated, nil
}

// RespondToOffer lets the candidate accept or decline an extended offer
func (s *Service) RespondToOffer(ctx context.Context, applicationID int, accept bool) (*models.JobApplication, error) {
	target := models.StatusOfferDeclined
	if accept {
		target = models.StatusOfferAccepted
	}

	user, err := s.actor()
	if err != nil {
		return nil, err
	}

	if user.Role() != models.RoleCandidate {
		return nil, &workflow.TransitionError{Kind: workflow.KindForbidden, To: target,
			Message: "only the candidate can answer an offer"}
	}

	current, err := s.findOwn(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if err := workflow.Validate(current.Status, target); err != nil {
		return nil, err
	}
	if err := workflow.Authorize(user.Role(), current.Status, target); err != nil {
		return nil, err
	}
	if current.OfferExpired(s.now()) {
		return nil, &workflow.TransitionError{Kind: workflow.KindValidation, From: current.Status, To: target,
			Message: "Offer has expired"}
	}

	updated, err := s.api.RespondToOffer(ctx, applicationID, accept)
	if err != nil {
		s.checkToken(ctx, err)
		return nil, transitionError(err, current.Status, target, "Failed to respond to the offer")
	}
	s.normalizeOne(updated)
	s.record(ctx, applicantScope(user.ID), *updated)
	s.log.Info("offer answered", "application_id", applicationID, "status", updated.Status)

	if _, err := s.ListForApplicant(ctx); err != nil {
		s.log.Warn("failed to refresh applications after offer response", "error", err)
	}
	return updated, nil
}

// findOwn looks an application up in a freshly fetched copy of the
// candidate's list. The employer moves statuses server-side, so the cached
// copy cannot be trusted here.
func (s *Service) findOwn(ctx context.Context, applicationID int) (*models.JobApplication, error) {
	apps, err := s.ListForApplicant(ctx)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if apps[i].ID == applicationID {
			return &apps[i], nil
		}
	}
	return nil, &workflow.TransitionError{Kind: workflow.KindNotFound,
		Message: "application not found among your applications"}
}

// HasApplied reports whether applicantID has an application for jobID. It
// only drives list cosmetics, so read failures yield false.
func (s *Service) HasApplied(ctx context.Context, applicantID, jobID int) bool {
	apps, err := s.ListForApplicant(ctx)
	if err != nil {
		s.log.Debug("has-applied check degraded to false", "job_id", jobID, "error", err)
		return false
	}

	applied := make(map[int]struct{}, len(apps))
	for _, app := range apps {
		if app.ApplicantID == applicantID {
			applied[app.JobID] = struct{}{}
		}
	}
	_, ok := applied[jobID]
	return ok
}

// CheckApplied asks the server directly whether the candidate applied
func (s *Service) CheckApplied(ctx context.Context, jobID int) (bool, error) {
	user, err := s.actor()
	if err != nil {
		return false, err
	}
	if !workflow.CanApply(user.Role()) {
		return false, forbidden("employers cannot apply for jobs")
	}

	applied, err := s.api.CheckApplied(ctx, jobID)
	if err != nil {
		s.checkToken(ctx, err)
		return false, applyError(err, "Failed to check application")
	}
	return applied, nil
}
