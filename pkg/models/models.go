package models

import "time"

// UserProfile is the account returned by /api/auth/me
type UserProfile struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	IsSupervisor bool   `json:"is_supervisor"` // employer when true
}

// Role is derived once from the profile and drives every authorization decision
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// Role returns the actor role for the profile
func (u *UserProfile) Role() Role {
	if u != nil && u.IsSupervisor {
		return RoleEmployer
	}
	return RoleCandidate
}

// ApplicationStatus is the workflow state of a job application
type ApplicationStatus string

const (
	StatusPending            ApplicationStatus = "pending"
	StatusUnderReview        ApplicationStatus = "under_review"
	StatusInterviewScheduled ApplicationStatus = "interview_scheduled"
	StatusInterviewCompleted ApplicationStatus = "interview_completed"
	StatusOfferExtended      ApplicationStatus = "offer_extended"
	StatusOfferAccepted      ApplicationStatus = "offer_accepted"
	StatusOfferDeclined      ApplicationStatus = "offer_declined"
	StatusRejected           ApplicationStatus = "rejected"

	// StatusAccepted only exists in the older four-state data
	StatusAccepted ApplicationStatus = "accepted"
)

// JobApplication represents a candidate's application to a job posting
type JobApplication struct {
	ID          int               `json:"id"`
	JobID       int               `json:"job_id"`
	ApplicantID int               `json:"applicant_id"`
	CoverLetter string            `json:"cover_letter"`
	ResumeURL   string            `json:"resume_url"`
	Status      ApplicationStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Set once the employer extends an offer
	OfferDetails    string     `json:"offer_details,omitempty"`
	OfferSalary     float64    `json:"offer_salary,omitempty"`
	OfferExpiryDate *time.Time `json:"offer_expiry_date,omitempty"`
}

// OfferExpired reports whether the offer carries an expiry date before now
func (a *JobApplication) OfferExpired(now time.Time) bool {
	return a.OfferExpiryDate != nil && a.OfferExpiryDate.Before(now)
}

// Offer is what an employer sends when extending an offer
type Offer struct {
	Details    string     `json:"offer_details"`
	Salary     float64    `json:"offer_salary"`
	ExpiryDate *time.Time `json:"offer_expiry_date,omitempty"`
}

// InterviewStatus tracks a single interview, separately from the application
type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "scheduled"
	InterviewCompleted InterviewStatus = "completed"
	InterviewCancelled InterviewStatus = "cancelled"
)

// Interview is one round of interviews for an application
type Interview struct {
	ID            int             `json:"id"`
	ApplicationID int             `json:"application_id"`
	ScheduledAt   time.Time       `json:"scheduled_at"`
	Location      string          `json:"location,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	Status        InterviewStatus `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InterviewPlan is the payload for scheduling an interview
type InterviewPlan struct {
	ApplicationID int       `json:"application_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Location      string    `json:"location,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

// Registration is the payload for creating a new account
type Registration struct {
	Email           string
	Password        string
	ConfirmPassword string
	Username        string
	IsSupervisor    bool
}
