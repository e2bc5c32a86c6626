package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Environment variables that override the config file
const (
	EnvAPIBaseURL = "PORTAL_API_BASE_URL"
	EnvConfigURL  = "PORTAL_CONFIG_URL"
	EnvLogLevel   = "PORTAL_LOG_LEVEL"
)

// Config holds all application configuration
type Config struct {
	API           APIConfig           `toml:"api"`
	General       GeneralConfig       `toml:"general"`
	Notifications NotificationsConfig `toml:"notifications"`
	Monitor       MonitorConfig       `toml:"monitor"`
	Web           WebConfig           `toml:"web"`
}

// APIConfig holds the automation API endpoint settings
type APIConfig struct {
	// BaseURL wins over the runtime config when set
	BaseURL string `toml:"base_url"`
	// ConfigURL points at the runtime config document (config.json)
	ConfigURL string `toml:"config_url"`
	Timeout   string `toml:"timeout"`
}

// GeneralConfig holds general settings
type GeneralConfig struct {
	DatabasePath string `toml:"database_path"`
	LogLevel     string `toml:"log_level"`
}

// NotificationsConfig holds notification settings
type NotificationsConfig struct {
	Desktop      bool   `toml:"desktop"`
	SlackWebhook string `toml:"slack_webhook"`
}

// MonitorConfig holds execution watcher settings
type MonitorConfig struct {
	PollInterval string `toml:"poll_interval"`
}

// WebConfig holds the mock API server settings
type WebConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

// DefaultConfigURL is the runtime config document of a local portal or
// `portalctl serve-mock` on its default address.
const DefaultConfigURL = "http://localhost:3001/config.json"

// Default returns a Config with sensible defaults
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		API: APIConfig{
			ConfigURL: DefaultConfigURL,
			Timeout:   "30s",
		},
		General: GeneralConfig{
			DatabasePath: filepath.Join(home, ".automation-portal", "session.db"),
			LogLevel:     "warn",
		},
		Notifications: NotificationsConfig{
			Desktop: true,
		},
		Monitor: MonitorConfig{
			PollInterval: "15s",
		},
		Web: WebConfig{
			Port: 3001,
			Host: "127.0.0.1",
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.General.DatabasePath = ExpandPath(cfg.General.DatabasePath)

	return cfg, nil
}

// LoadWithEnv is Load followed by .env file loading and environment overrides
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// loadEnvFiles loads .env.local then .env from the working directory.
// Variables already set in the process environment are never overwritten.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from PORTAL_* environment variables
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvConfigURL); v != "" {
		c.API.ConfigURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.General.LogLevel = v
	}
}

// Save writes the configuration as TOML, creating the directory if needed
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RequestTimeout parses API.Timeout, defaulting to 30s when unset or invalid
func (c *Config) RequestTimeout() time.Duration {
	return parseDuration(c.API.Timeout, 30*time.Second)
}

// PollInterval parses Monitor.PollInterval, defaulting to 15s when unset or invalid
func (c *Config) PollInterval() time.Duration {
	return parseDuration(c.Monitor.PollInterval, 15*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "automation-portal", "config.toml")
}
