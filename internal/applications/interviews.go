package applications

import (
	"context"
	"fmt"
	"strings"

	"github.com/khrees2412/hireboard/internal/workflow"
	"github.com/khrees2412/hireboard/pkg/models"
)

// ScheduleInterview books an interview for an application. The first one
// moves the application to interview_scheduled; further rounds leave it
// there.
func (s *Service) ScheduleInterview(ctx context.Context, plan models.InterviewPlan) (*models.Interview, error) {
	target := models.StatusInterviewScheduled
	current, err := s.loadForEmployer(ctx, plan.ApplicationID, target)
	if err != nil {
		return nil, err
	}
	if current.Status != target {
		if err := checkMove(current.Status, target); err != nil {
			return nil, err
		}
	}
	if plan.ScheduledAt.IsZero() {
		return nil, &workflow.TransitionError{Kind: workflow.KindValidation, From: current.Status, To: target,
			Message: "an interview time is required"}
	}
	plan.Location = strings.TrimSpace(plan.Location)
	plan.Notes = strings.TrimSpace(plan.Notes)

	iv, err := s.api.ScheduleInterview(ctx, plan)
	if err != nil {
		s.checkToken(ctx, err)
		s.log.Info("interview rejected", "application_id", plan.ApplicationID, "error", err)
		return nil, transitionError(err, current.Status, target, "Failed to schedule the interview")
	}
	s.log.Info("interview scheduled", "application_id", plan.ApplicationID, "interview_id", iv.ID,
		"scheduled_at", iv.ScheduledAt)

	s.afterInterviewWrite(ctx, current, target)
	return iv, nil
}

// CompleteInterview marks a scheduled interview of the application as done,
// which moves the application to interview_completed.
func (s *Service) CompleteInterview(ctx context.Context, applicationID, interviewID int) (*models.Interview, error) {
	target := models.StatusInterviewCompleted
	current, err := s.loadForEmployer(ctx, applicationID, target)
	if err != nil {
		return nil, err
	}
	if current.Status != target {
		if err := checkMove(current.Status, target); err != nil {
			return nil, err
		}
	}

	interviews, err := s.Interviews(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	var found *models.Interview
	for i := range interviews {
		if interviews[i].ID == interviewID {
			found = &interviews[i]
			break
		}
	}
	if found == nil {
		return nil, &workflow.TransitionError{Kind: workflow.KindNotFound, From: current.Status, To: target,
			Message: fmt.Sprintf("interview %d does not belong to application %d", interviewID, applicationID)}
	}
	if found.Status != models.InterviewScheduled {
		return nil, &workflow.TransitionError{Kind: workflow.KindValidation, From: current.Status, To: target,
			Message: fmt.Sprintf("interview %d is already %s", interviewID, found.Status)}
	}

	iv, err := s.api.UpdateInterviewStatus(ctx, interviewID, models.InterviewCompleted)
	if err != nil {
		s.checkToken(ctx, err)
		return nil, transitionError(err, current.Status, target, "Failed to update the interview")
	}
	s.log.Info("interview completed", "application_id", applicationID, "interview_id", interviewID)

	s.afterInterviewWrite(ctx, current, target)
	return iv, nil
}

// Interviews lists the interviews of an application, earliest first
func (s *Service) Interviews(ctx context.Context, applicationID int) ([]models.Interview, error) {
	if _, err := s.actor(); err != nil {
		return nil, err
	}
	interviews, err := s.api.ApplicationInterviews(ctx, applicationID)
	if err != nil {
		s.checkToken(ctx, err)
		return nil, applyError(err, "Failed to load interviews")
	}
	return interviews, nil
}

// afterInterviewWrite refreshes the job's list. The interview endpoints
// answer with the interview, not the application, so when the refresh fails
// the status the server moved the application to is cached instead.
func (s *Service) afterInterviewWrite(ctx context.Context, current *models.JobApplication, status models.ApplicationStatus) {
	_, err := s.ListForJob(ctx, current.JobID)
	if err == nil {
		return
	}
	s.log.Warn("failed to refresh job applications", "job_id", current.JobID, "error", err)
	moved := *current
	moved.Status = status
	s.record(ctx, jobScope(current.JobID), moved)
}
