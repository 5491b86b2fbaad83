package session

import "github.com/khrees2412/hireboard/pkg/models"

// Decision is what a protected view should do for a given Session
type Decision int

const (
	// DecisionLoading means authentication is in flight; show a placeholder
	DecisionLoading Decision = iota
	// DecisionAllow means the protected content may be shown
	DecisionAllow
	// DecisionRedirectLogin sends the actor to the login entry point
	DecisionRedirectLogin
	// DecisionForbidden means the actor is signed in with the wrong role
	DecisionForbidden
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionAllow:
		return "allow"
	case DecisionRedirectLogin:
		return "redirect_login"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Guard gates protected content. A token alone is not enough: the profile
// must be loaded too, since role-dependent views need it.
func Guard(s Session) Decision {
	if s.IsLoading {
		return DecisionLoading
	}
	if !s.IsAuthenticated || s.Token == "" || s.User == nil {
		return DecisionRedirectLogin
	}
	return DecisionAllow
}

// GuardRole is Guard plus a role requirement
func GuardRole(s Session, role models.Role) Decision {
	d := Guard(s)
	if d != DecisionAllow {
		return d
	}
	if s.User.Role() != role {
		return DecisionForbidden
	}
	return DecisionAllow
}
