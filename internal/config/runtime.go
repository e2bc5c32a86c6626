package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hochfrequenz/automation-portal/internal/logger"
)

// Environment is the deployment stage the API belongs to
type Environment string

const (
	EnvDev Environment = "dev"
	EnvTst Environment = "tst"
	EnvSit Environment = "sit"
	EnvPrd Environment = "prd"
)

var environmentLabels = map[Environment]string{
	EnvDev: "Development",
	EnvTst: "Test",
	EnvSit: "Staging/SIT",
	EnvPrd: "Production",
}

// Label returns the human-readable stage name
func (e Environment) Label() string {
	if l, ok := environmentLabels[e]; ok {
		return l
	}
	return string(e)
}

// Features are runtime feature toggles
type Features struct {
	DebugMode       bool `json:"debugMode"`
	EnableMockData  bool `json:"enableMockData"`
	EnableAnalytics bool `json:"enableAnalytics"`
}

// AppInfo describes the deployed portal
type AppInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// AuthSettings name the persisted token keys
type AuthSettings struct {
	TokenKey        string `json:"tokenKey"`
	RefreshTokenKey string `json:"refreshTokenKey"`
	// SessionTimeout is in milliseconds
	SessionTimeout int `json:"sessionTimeout"`
}

// NavItem is one entry of the dashboard navigation
type NavItem struct {
	Href        string `json:"href"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ThemeSettings control the theme preference
type ThemeSettings struct {
	StorageKey   string `json:"storageKey"`
	DefaultTheme string `json:"defaultTheme"`
}

// AppConfig is the runtime configuration document served as config.json
type AppConfig struct {
	APIBaseURL  string        `json:"apiBaseUrl"`
	Environment Environment   `json:"environment"`
	Features    Features      `json:"features"`
	App         AppInfo       `json:"app"`
	Auth        AuthSettings  `json:"auth"`
	Navigation  []NavItem     `json:"navigation"`
	Theme       ThemeSettings `json:"theme"`
}

// DefaultAppConfig is used whenever the runtime document is unavailable
func DefaultAppConfig() AppConfig {
	return AppConfig{
		APIBaseURL:  "http://localhost:3001/api",
		Environment: EnvDev,
		Features:    Features{DebugMode: true, EnableMockData: true, EnableAnalytics: false},
		App: AppInfo{
			Name:        "ESG Content Automation Portal",
			Version:     "1.0.0",
			Description: "Dashboard for managing automated content pipelines",
		},
		Auth: AuthSettings{
			TokenKey:        "access_token",
			RefreshTokenKey: "refresh_token",
			SessionTimeout:  3600000,
		},
		Navigation: []NavItem{
			{Href: "/dashboard", Label: "Dashboard", Description: "Stats", Icon: "BarChart3"},
			{Href: "/products", Label: "Products", Description: "Manage products", Icon: "Package"},
			{Href: "/executions", Label: "History", Description: "Execution history", Icon: "History"},
		},
		Theme: ThemeSettings{StorageKey: "automation-portal-theme", DefaultTheme: "system"},
	}
}

// LoadRuntime fetches the runtime config document and overlays it on the
// defaults. Keys missing from the document keep their default. Any failure
// yields the defaults, so the result is always usable.
func LoadRuntime(ctx context.Context, client *http.Client, url string, log logger.Logger) AppConfig {
	if log == nil {
		log = logger.NewNop()
	}
	if url == "" {
		return DefaultAppConfig()
	}
	cfg, err := fetchRuntime(ctx, client, url)
	if err != nil {
		log.Warn("using default runtime config", logger.String("url", url), logger.Err(err))
		return DefaultAppConfig()
	}
	return cfg
}

func fetchRuntime(ctx context.Context, client *http.Client, url string) (AppConfig, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return AppConfig{}, err
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := client.Do(req)
	if err != nil {
		return AppConfig{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return AppConfig{}, fmt.Errorf("could not load runtime config: %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return AppConfig{}, err
	}

	cfg := DefaultAppConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decoding runtime config: %w", err)
	}
	return cfg, nil
}
