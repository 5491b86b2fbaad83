package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/khrees2412/hireboard/internal/api"
	"github.com/khrees2412/hireboard/internal/applications"
	"github.com/khrees2412/hireboard/internal/config"
	"github.com/khrees2412/hireboard/internal/logging"
	"github.com/khrees2412/hireboard/internal/session"
	"github.com/khrees2412/hireboard/internal/store"
)

// App is the dependency container for the CLI application
type App struct {
	Config       *config.Config
	ConfigDir    string
	Store        *store.Store
	HTTPClient   *http.Client
	API          *api.Client
	Session      *session.Manager
	Applications *applications.Service
	Cache        *store.ApplicationCache
	Logger       *slog.Logger
}

// NewApp loads the config from dir, opens the local store and restores any
// saved session.
func NewApp(ctx context.Context, dir string) (*App, error) {
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.Init(cfg.LogLevel, cfg.LogFormat)

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	manager, err := session.NewManager(ctx, nil, store.NewTokenStore(st), logger)
	if err != nil {
		st.Close()
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	client := api.NewClient(cfg.APIURL, httpClient, manager, logger)
	manager.SetAPI(client)
	cache := store.NewApplicationCache(st)

	return &App{
		Config:       cfg,
		ConfigDir:    dir,
		Store:        st,
		HTTPClient:   httpClient,
		API:          client,
		Session:      manager,
		Applications: applications.NewService(client, manager, cache, logger),
		Cache:        cache,
		Logger:       logger,
	}, nil
}

// RequireSession restores the profile of a saved session and checks that the
// result passes the access guard.
func (a *App) RequireSession(ctx context.Context) (session.Session, error) {
	if err := a.Session.RefreshProfile(ctx); err != nil {
		return session.Session{}, err
	}
	s := a.Session.Session()
	if session.Guard(s) != session.DecisionAllow {
		return s, ErrNotLoggedIn
	}
	return s, nil
}

// Logout ends the session and drops the lists cached for it
func (a *App) Logout(ctx context.Context) {
	a.Session.Logout(ctx)
	if err := a.Cache.Clear(ctx); err != nil {
		a.Logger.Warn("failed to clear cached applications", "error", err)
	}
}

// Close closes all resources
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
