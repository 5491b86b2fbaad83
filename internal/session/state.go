package session

import "github.com/khrees2412/hireboard/pkg/models"

// Session is the client-held authentication record
type Session struct {
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	User            *models.UserProfile
}

// State names the lifecycle phase a Session is in
type State string

const (
	StateAnonymous              State = "anonymous"
	StateAuthenticating         State = "authenticating"
	StateAuthenticated          State = "authenticated"
	StateAuthenticatedNoProfile State = "authenticated_no_profile"
)

// State derives the lifecycle phase from the flags
func (s Session) State() State {
	switch {
	case s.IsLoading:
		return StateAuthenticating
	case !s.IsAuthenticated || s.Token == "":
		return StateAnonymous
	case s.User == nil:
		return StateAuthenticatedNoProfile
	default:
		return StateAuthenticated
	}
}

// Role returns the role of the loaded profile; ok is false without one
func (s Session) Role() (role models.Role, ok bool) {
	if s.User == nil {
		return "", false
	}
	return s.User.Role(), true
}

// ActionType names the four ways a Session can change
type ActionType string

const (
	ActionLoginSuccess ActionType = "LOGIN_SUCCESS"
	ActionLogout       ActionType = "LOGOUT"
	ActionSetLoading   ActionType = "SET_LOADING"
	ActionSetUser      ActionType = "SET_USER"
)

// Action is a requested Session change
type Action struct {
	Type    ActionType
	Token   string
	Loading bool
	User    *models.UserProfile
}

func LoginSuccess(token string) Action { return Action{Type: ActionLoginSuccess, Token: token} }

func Logout() Action { return Action{Type: ActionLogout} }

func SetLoading(v bool) Action { return Action{Type: ActionSetLoading, Loading: v} }

func SetUser(u *models.UserProfile) Action { return Action{Type: ActionSetUser, User: u} }

// Reduce applies a to s and returns the new Session. Unknown actions leave
// s unchanged.
func Reduce(s Session, a Action) Session {
	switch a.Type {
	case ActionLoginSuccess:
		if a.Token == "" {
			return s
		}
		// the previous profile belonged to the previous token
		s.Token = a.Token
		s.IsAuthenticated = true
		s.IsLoading = false
		s.User = nil
	case ActionLogout:
		s.Token = ""
		s.IsAuthenticated = false
		s.User = nil
	case ActionSetLoading:
		s.IsLoading = a.Loading
	case ActionSetUser:
		if s.Token == "" {
			return s
		}
		s.User = cloneUser(a.User)
	}
	return s
}

func cloneUser(u *models.UserProfile) *models.UserProfile {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
