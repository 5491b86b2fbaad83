package mockapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/khrees2412/hireboard/pkg/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Username     string `json:"username"`
	IsSupervisor bool   `json:"is_supervisor"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AddUser creates an account directly, bypassing registration
func (s *Server) AddUser(email, password, username string, supervisor bool) models.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(email, password, username, supervisor)
}

func (s *Server) addUserLocked(email, password, username string, supervisor bool) models.UserProfile {
	s.nextUser++
	profile := models.UserProfile{
		ID:           s.nextUser,
		Username:     username,
		Email:        strings.ToLower(email),
		IsSupervisor: supervisor,
	}
	s.users[profile.ID] = &account{profile: profile, password: password}
	s.byEmail[profile.Email] = profile.ID
	return profile
}

// IssueToken returns a fresh token for userID
func (s *Server) IssueToken(userID int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueTokenLocked(userID)
}

func (s *Server) issueTokenLocked(userID int) string {
	token := uuid.NewString()
	s.tokens[token] = userID
	return token
}

// currentUser resolves the bearer token of the request
func (s *Server) currentUser(c echo.Context) (*models.UserProfile, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, c.JSON(http.StatusUnauthorized, detail("Not authenticated"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[token]
	if !ok {
		return nil, c.JSON(http.StatusUnauthorized, detail("Could not validate credentials"))
	}
	profile := s.users[id].profile
	return &profile, nil
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, detail("Invalid request body"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(req.Email))]
	if !ok || s.users[id].password != req.Password {
		return c.JSON(http.StatusUnauthorized, detail("Incorrect email or password"))
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: s.issueTokenLocked(id), TokenType: "bearer"})
}

func (s *Server) handleMe(c echo.Context) error {
	user, err := s.currentUser(c)
	if user == nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, detail("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" || req.Username == "" {
		return c.JSON(http.StatusUnprocessableEntity, detail("email, password and username are required"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[strings.ToLower(req.Email)]; exists {
		return c.JSON(http.StatusBadRequest, detail("Email already registered"))
	}
	for _, a := range s.users {
		if a.profile.Username == req.Username {
			return c.JSON(http.StatusBadRequest, detail("Username already taken"))
		}
	}

	profile := s.addUserLocked(req.Email, req.Password, req.Username, req.IsSupervisor)
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: s.issueTokenLocked(profile.ID), TokenType: "bearer"})
}
