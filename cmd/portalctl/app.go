package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hochfrequenz/automation-portal/internal/apiclient"
	"github.com/hochfrequenz/automation-portal/internal/auth"
	"github.com/hochfrequenz/automation-portal/internal/config"
	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/logger"
	"github.com/hochfrequenz/automation-portal/internal/sessionstore"
)

// app bundles what a command needs to talk to the API
type app struct {
	cfg    *config.Config
	log    logger.Logger
	store  *sessionstore.Store
	client *apiclient.Client
	auth   *auth.Manager
	out    *printer
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.General.LogLevel = logLevel
	}
	if baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	return cfg, nil
}

// newApp opens the session store and builds the API client. The base URL is
// taken from --base-url, then PORTAL_API_BASE_URL, then the config file, and
// finally the runtime config document.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(logger.Config{Level: cfg.General.LogLevel})
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.General.DatabasePath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	store, err := sessionstore.New(cfg.General.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout()}
	base := cfg.API.BaseURL
	if base == "" {
		runtime := config.LoadRuntime(ctx, httpClient, cfg.API.ConfigURL, log)
		base = runtime.APIBaseURL
		log.Debug("using runtime api base url",
			logger.String("base_url", base),
			logger.String("environment", runtime.Environment.Label()),
		)
	}

	client := apiclient.New(apiclient.Options{
		BaseURL:    base,
		HTTPClient: httpClient,
		Session:    apiclient.NewSession(store),
		Logger:     log,
	})

	return &app{
		cfg:    cfg,
		log:    log,
		store:  store,
		client: client,
		auth:   auth.NewManager(client, store, log),
		out:    newPrinter(stdout, outputMode),
	}, nil
}

func (a *app) Close() {
	a.log.Sync()
	a.store.Close()
}

// requireUser restores the stored session or explains how to sign in
func (a *app) requireUser(ctx context.Context) (domain.User, error) {
	user, err := a.auth.Restore(ctx)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, auth.ErrNotAuthenticated):
		return domain.User{}, errors.New("not signed in, run 'portalctl login' first")
	case errors.Is(err, auth.ErrSessionExpired):
		return domain.User{}, fmt.Errorf("%w: run 'portalctl login'", err)
	default:
		return domain.User{}, err
	}
}

// withApp runs fn with a signed-in app, closing it afterwards
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	if _, err := a.requireUser(ctx); err != nil {
		return err
	}
	return fn(a)
}
