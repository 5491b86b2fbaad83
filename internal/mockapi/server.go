// Package mockapi is an in-memory job-board API. It backs the client tests
// and the mock-api command used for local development.
package mockapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/khrees2412/hireboard/pkg/models"
)

// Route keys, as reported by Calls and accepted by Fail
const (
	RouteLogin          = "POST /api/auth/login"
	RouteMe             = "GET /api/auth/me"
	RouteRegister       = "POST /api/auth/register"
	RouteApply          = "POST /api/applications"
	RouteMyApplications = "GET /api/applications/my-applications"
	RouteJobApplication = "GET /api/applications/job/:id"
	RouteUpdateStatus   = "PUT /api/applications/:id/status"
	RouteCheck          = "GET /api/applications/check/:id"
	RouteOffer          = "POST /api/applications/:id/offer"
	RouteOfferRespond   = "POST /api/applications/:id/offer/respond"

	RouteScheduleInterview     = "POST /api/interviews"
	RouteUpdateInterview       = "PATCH /api/interviews/:id"
	RouteApplicationInterviews = "GET /api/interviews/application/:id"
)

type account struct {
	profile  models.UserProfile
	password string
}

// Job is the minimal posting the server needs to authorize requests
type Job struct {
	ID       int
	Title    string
	PostedBy int
	Active   bool
}

// Server holds all state in memory
type Server struct {
	mu       sync.Mutex
	users    map[int]*account
	byEmail  map[string]int
	tokens   map[string]int
	jobs     map[int]*Job
	apps     map[int]*models.JobApplication
	inters   map[int]*models.Interview
	nextUser int
	nextJob  int
	nextApp  int
	nextInt  int

	calls    map[string]int
	failures map[string]int

	now  func() time.Time
	echo *echo.Echo
}

// New builds a server. logger may be nil to disable request logging.
func New(logger *slog.Logger) *Server {
	s := &Server{
		users:    make(map[int]*account),
		byEmail:  make(map[string]int),
		tokens:   make(map[string]int),
		jobs:     make(map[int]*Job),
		apps:     make(map[int]*models.JobApplication),
		inters:   make(map[int]*models.Interview),
		calls:    make(map[string]int),
		failures: make(map[string]int),
		now:      func() time.Time { return time.Now().UTC() },
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	if logger != nil {
		e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:    true,
			LogURI:       true,
			LogStatus:    true,
			LogRequestID: true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				logger.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status,
					"request_id", v.RequestID)
				return nil
			},
		}))
	}
	e.Use(s.instrument)
	s.routes(e)
	s.echo = e
	return s
}

func (s *Server) routes(e *echo.Echo) {
	e.POST("/api/auth/login", s.handleLogin)
	e.GET("/api/auth/me", s.handleMe)
	e.POST("/api/auth/register", s.handleRegister)

	e.POST("/api/applications", s.handleApply)
	e.GET("/api/applications/my-applications", s.handleMyApplications)
	e.GET("/api/applications/job/:id", s.handleJobApplications)
	e.PUT("/api/applications/:id/status", s.handleUpdateStatus)
	e.GET("/api/applications/check/:id", s.handleCheck)
	e.POST("/api/applications/:id/offer", s.handleOffer)
	e.POST("/api/applications/:id/offer/respond", s.handleOfferRespond)

	e.POST("/api/interviews", s.handleScheduleInterview)
	e.PATCH("/api/interviews/:id", s.handleUpdateInterview)
	e.GET("/api/interviews/application/:id", s.handleApplicationInterviews)
}

// Handler exposes the server for httptest
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on addr until Shutdown is called
func (s *Server) Start(addr string) error {
	err := s.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops a server started with Start
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// instrument counts calls per route and serves injected failures
func (s *Server) instrument(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Method + " " + c.Path()
		s.mu.Lock()
		s.calls[key]++
		status, fail := s.failures[key]
		s.mu.Unlock()
		if fail {
			return c.JSON(status, detail("injected failure"))
		}
		return next(c)
	}
}

// Calls returns how many requests reached route
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Fail makes every request to route answer with status until ClearFailure
func (s *Server) Fail(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = status
}

// ClearFailure removes an injected failure
func (s *Server) ClearFailure(route string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// RevokeTokens invalidates every issued token
func (s *Server) RevokeTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = make(map[string]int)
}

type detailBody struct {
	Detail string `json:"detail"`
}

func detail(msg string) detailBody {
	return detailBody{Detail: msg}
}
