//go:build integration

package integration

import (
	"fmt"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/hochfrequenz/automation-portal/web/api"
)

// binaryPath returns the path to the built CLI binary, building it when missing
func binaryPath(t *testing.T) string {
	t.Helper()
	paths := []string{
		"../portalctl",
		"./portalctl",
		filepath.Join(os.Getenv("GOPATH"), "bin", "portalctl"),
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			abs, _ := filepath.Abs(p)
			return abs
		}
	}

	t.Log("Binary not found, building...")
	cmd := exec.Command("go", "build", "-o", "../portalctl", "../cmd/portalctl")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, out)
	}

	abs, _ := filepath.Abs("../portalctl")
	return abs
}

// StartMockPortal serves the demo fixtures and returns the API base URL
func StartMockPortal(t *testing.T) string {
	t.Helper()
	srv := api.NewServer(api.Options{Secret: []byte("integration")})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL + "/api"
}

// TempDBPath creates a temporary session database path for testing
func TempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.db")
}

// WriteConfig writes a config file pointing at apiURL and returns its path
func WriteConfig(t *testing.T, apiURL, dbPath string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.toml")
	config := fmt.Sprintf(`[api]
base_url = %q

[general]
database_path = %q
log_level = "error"
`, apiURL, dbPath)

	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return configPath
}
