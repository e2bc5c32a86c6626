package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Default()

	if cfg.Web.Port != 3001 {
		t.Errorf("Web.Port = %d, want 3001", cfg.Web.Port)
	}
	if cfg.Web.Host != "127.0.0.1" {
		t.Errorf("Web.Host = %q, want 127.0.0.1", cfg.Web.Host)
	}
	if cfg.General.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.General.LogLevel)
	}
	if !cfg.Notifications.Desktop {
		t.Error("desktop notifications should default on")
	}
	if cfg.API.ConfigURL != DefaultConfigURL {
		t.Errorf("ConfigURL = %q, want %q", cfg.API.ConfigURL, DefaultConfigURL)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.Timeout != "30s" {
		t.Errorf("API.Timeout = %q, want default 30s", cfg.API.Timeout)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")

	content := `
[api]
base_url = "https://portal.example.com/api"
timeout = "5s"

[general]
database_path = "~/portal/session.db"

[web]
port = 9000
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.API.BaseURL != "https://portal.example.com/api" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Errorf("RequestTimeout() = %v, want 5s", cfg.RequestTimeout())
	}
	if cfg.Web.Port != 9000 {
		t.Errorf("Web.Port = %d, want 9000", cfg.Web.Port)
	}
	if cfg.Web.Host != "127.0.0.1" {
		t.Errorf("Web.Host = %q, want default kept", cfg.Web.Host)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "portal", "session.db"); cfg.General.DatabasePath != want {
		t.Errorf("DatabasePath = %q, want %q", cfg.General.DatabasePath, want)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api\nbase_url ="), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load should fail on malformed TOML")
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.API.BaseURL = "http://localhost:9999/api"
	cfg.Notifications.SlackWebhook = "https://hooks.slack.com/x"
	if err := cfg.Save(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.API.BaseURL != cfg.API.BaseURL {
		t.Errorf("BaseURL = %q, want %q", loaded.API.BaseURL, cfg.API.BaseURL)
	}
	if loaded.Notifications.SlackWebhook != cfg.Notifications.SlackWebhook {
		t.Errorf("SlackWebhook = %q", loaded.Notifications.SlackWebhook)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "http://env.example/api")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvConfigURL, "")

	cfg := Default()
	cfg.API.BaseURL = "http://file.example/api"
	cfg.ApplyEnv()

	if cfg.API.BaseURL != "http://env.example/api" {
		t.Errorf("BaseURL = %q, want env override", cfg.API.BaseURL)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.General.LogLevel)
	}
	if cfg.API.ConfigURL != DefaultConfigURL {
		t.Errorf("ConfigURL = %q, want unchanged", cfg.API.ConfigURL)
	}
}

func TestDurations_FallBack(t *testing.T) {
	cfg := Default()
	cfg.API.Timeout = "soon"
	cfg.Monitor.PollInterval = "-1s"

	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("RequestTimeout() = %v, want 30s", cfg.RequestTimeout())
	}
	if cfg.PollInterval() != 15*time.Second {
		t.Errorf("PollInterval() = %v, want 15s", cfg.PollInterval())
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
	}

	for _, tt := range tests {
		got := ExpandPath(tt.input)
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
