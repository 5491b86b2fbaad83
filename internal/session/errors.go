package session

import (
	"fmt"
	"net/http"

	"github.com/khrees2412/hireboard/internal/api"
)

// ErrorKind classifies an AuthError
type ErrorKind string

const (
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindConflict           ErrorKind = "conflict"
	KindValidation         ErrorKind = "validation"
	KindNetwork            ErrorKind = "network"
	KindStorage            ErrorKind = "storage"
	KindSessionExpired     ErrorKind = "session_expired"
	KindServer             ErrorKind = "server"
)

// AuthError is returned by login, registration and profile refresh. Message
// is meant for the user.
type AuthError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func validationError(format string, args ...any) *AuthError {
	return &AuthError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// fromAPI converts a failed login or register call
func fromAPI(err error, fallback string, rejected ErrorKind) *AuthError {
	msg := api.DetailOf(err, fallback)
	switch code := api.StatusCode(err); {
	case code == 0:
		return &AuthError{Kind: KindNetwork, Message: msg, Err: err}
	case code == http.StatusUnprocessableEntity:
		return &AuthError{Kind: KindValidation, Message: msg, Err: err}
	case code >= 500:
		return &AuthError{Kind: KindServer, Message: msg, Err: err}
	default:
		return &AuthError{Kind: rejected, Message: msg, Err: err}
	}
}
