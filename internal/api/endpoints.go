package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/khrees2412/hireboard/pkg/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by login and register
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

type registerRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Username     string `json:"username"`
	IsSupervisor bool   `json:"is_supervisor"`
}

type createApplicationRequest struct {
	JobID       int    `json:"job_id"`
	CoverLetter string `json:"cover_letter"`
	ResumeURL   string `json:"resume_url"`
}

type statusUpdateRequest struct {
	Status models.ApplicationStatus `json:"status"`
}

type checkResponse struct {
	HasApplied bool `json:"has_applied"`
}

// Login exchanges credentials for an access token
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &Error{Method: http.MethodPost, Path: "/api/auth/login", StatusCode: http.StatusOK,
			Err: fmt.Errorf("response carried no access token")}
	}
	return &out, nil
}

// Me fetches the profile for token. An empty token uses the TokenSource.
func (c *Client) Me(ctx context.Context, token string) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.doWithToken(ctx, http.MethodGet, "/api/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. The returned token is not used to open a
// session; callers log in afterwards.
func (c *Client) Register(ctx context.Context, r models.Registration) (*TokenResponse, error) {
	req := registerRequest{
		Email:        r.Email,
		Password:     r.Password,
		Username:     r.Username,
		IsSupervisor: r.IsSupervisor,
	}
	var out TokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateApplication submits an application for jobID
func (c *Client) CreateApplication(ctx context.Context, jobID int, coverLetter, resumeURL string) (*models.JobApplication, error) {
	req := createApplicationRequest{JobID: jobID, CoverLetter: coverLetter, ResumeURL: resumeURL}
	var out models.JobApplication
	if err := c.do(ctx, http.MethodPost, "/api/applications", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MyApplications lists the caller's own applications
func (c *Client) MyApplications(ctx context.Context) ([]models.JobApplication, error) {
	var out []models.JobApplication
	if err := c.do(ctx, http.MethodGet, "/api/applications/my-applications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// JobApplications lists applications for a job the caller posted
func (c *Client) JobApplications(ctx context.Context, jobID int) ([]models.JobApplication, error) {
	var out []models.JobApplication
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/applications/job/%d", jobID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatus sets the status of an application
func (c *Client) UpdateStatus(ctx context.Context, applicationID int, status models.ApplicationStatus) (*models.JobApplication, error) {
	var out models.JobApplication
	path := fmt.Sprintf("/api/applications/%d/status", applicationID)
	if err := c.do(ctx, http.MethodPut, path, statusUpdateRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckApplied asks the server whether the caller applied to jobID
func (c *Client) CheckApplied(ctx context.Context, jobID int) (bool, error) {
	var out checkResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/applications/check/%d", jobID), nil, &out); err != nil {
		return false, err
	}
	return out.HasApplied, nil
}

// RespondToOffer accepts or declines an extended offer
func (c *Client) RespondToOffer(ctx context.Context, applicationID int, accept bool) (*models.JobApplication, error) {
	var out models.JobApplication
	path := fmt.Sprintf("/api/applications/%d/offer/respond?accept=%t", applicationID, accept)
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExtendOffer moves an application to offer_extended with the offer terms
func (c *Client) ExtendOffer(ctx context.Context, applicationID int, offer models.Offer) (*models.JobApplication, error) {
	var out models.JobApplication
	path := fmt.Sprintf("/api/applications/%d/offer", applicationID)
	if err := c.do(ctx, http.MethodPost, path, offer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ScheduleInterview books an interview. The server also moves the
// application to interview_scheduled.
func (c *Client) ScheduleInterview(ctx context.Context, plan models.InterviewPlan) (*models.Interview, error) {
	var out models.Interview
	if err := c.do(ctx, http.MethodPost, "/api/interviews", plan, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type interviewUpdateRequest struct {
	Status models.InterviewStatus `json:"status"`
}

// UpdateInterviewStatus sets the status of one interview. Completing it moves
// the application to interview_completed.
func (c *Client) UpdateInterviewStatus(ctx context.Context, interviewID int, status models.InterviewStatus) (*models.Interview, error) {
	var out models.Interview
	path := fmt.Sprintf("/api/interviews/%d", interviewID)
	if err := c.do(ctx, http.MethodPatch, path, interviewUpdateRequest{Status: status}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApplicationInterviews lists the interviews of an application, earliest first
func (c *Client) ApplicationInterviews(ctx context.Context, applicationID int) ([]models.Interview, error) {
	var out []models.Interview
	path := fmt.Sprintf("/api/interviews/application/%d", applicationID)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
