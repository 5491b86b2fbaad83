package applications

import (
	"fmt"
	"net/http"

	"github.com/khrees2412/hireboard/internal/api"
	"github.com/khrees2412/hireboard/internal/workflow"
	"github.com/khrees2412/hireboard/pkg/models"
)

// ApplyError is returned by Submit and the list operations
type ApplyError struct {
	Kind    workflow.ErrorKind
	Message string
	Err     error
}

func (e *ApplyError) Error() string {
	return e.Message
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

func kindFor(err error) workflow.ErrorKind {
	switch code := api.StatusCode(err); {
	case code == 0:
		return workflow.KindNetwork
	case code == http.StatusUnauthorized:
		return workflow.KindUnauthorized
	case code == http.StatusForbidden:
		return workflow.KindForbidden
	case code == http.StatusNotFound:
		return workflow.KindNotFound
	case code == http.StatusBadRequest, code == http.StatusUnprocessableEntity:
		return workflow.KindValidation
	default:
		return workflow.KindNetwork
	}
}

func applyError(err error, fallback string) *ApplyError {
	return &ApplyError{Kind: kindFor(err), Message: api.DetailOf(err, fallback), Err: err}
}

func transitionError(err error, from, to models.ApplicationStatus, fallback string) *workflow.TransitionError {
	return &workflow.TransitionError{
		Kind:    kindFor(err),
		From:    from,
		To:      to,
		Message: api.DetailOf(err, fallback),
		Err:     err,
	}
}

func forbidden(format string, args ...any) *ApplyError {
	return &ApplyError{Kind: workflow.KindForbidden, Message: fmt.Sprintf(format, args...)}
}
