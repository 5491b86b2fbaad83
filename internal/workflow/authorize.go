package workflow

import (
	"fmt"

	"github.com/khrees2412/hireboard/pkg/models"
)

// ErrorKind classifies a TransitionError
type ErrorKind string

const (
	KindInvalidStatus ErrorKind = "invalid_status"
	KindIllegal       ErrorKind = "illegal_transition"
	KindTerminal      ErrorKind = "terminal"
	KindForbidden     ErrorKind = "forbidden"
	KindNotFound      ErrorKind = "not_found"
	KindNetwork       ErrorKind = "network"
	KindValidation    ErrorKind = "validation"
	KindUnauthorized  ErrorKind = "unauthenticated"
)

// TransitionError is returned when a status change is refused
type TransitionError struct {
	Kind    ErrorKind
	From    models.ApplicationStatus
	To      models.ApplicationStatus
	Message string
	Err     error
}

func (e *TransitionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransitionError) Unwrap() error {
	return e.Err
}

// candidate answers to an extended offer
func isOfferResponse(to models.ApplicationStatus) bool {
	return to == models.StatusOfferAccepted || to == models.StatusOfferDeclined
}

// Authorize decides whether role may move an application from one status to
// another. It does not check reachability; call Validate for that.
func Authorize(role models.Role, from, to models.ApplicationStatus) error {
	switch role {
	case models.RoleEmployer:
		if isOfferResponse(to) {
			return &TransitionError{Kind: KindForbidden, From: from, To: to,
				Message: "only the candidate can answer an offer"}
		}
		return nil
	case models.RoleCandidate:
		if from == models.StatusOfferExtended && isOfferResponse(to) {
			return nil
		}
		return &TransitionError{Kind: KindForbidden, From: from, To: to,
			Message: "only the employer who posted the job can change this application"}
	default:
		return &TransitionError{Kind: KindForbidden, From: from, To: to,
			Message: fmt.Sprintf("unknown role %q", role)}
	}
}

// CanApply reports whether role may submit applications
func CanApply(role models.Role) bool {
	return role == models.RoleCandidate
}
