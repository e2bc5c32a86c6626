package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/view"
	"github.com/hochfrequenz/automation-portal/web/api"
)

// setup points the CLI at a fresh mock server and session database
func setup(t *testing.T) *bytes.Buffer {
	t.Helper()
	return setupWithConfig(t, func(serverURL, dbPath string) string {
		return fmt.Sprintf(`[api]
base_url = %q

[general]
database_path = %q
log_level = "error"
`, serverURL+"/api", dbPath)
	})
}

// setupWithConfig is setup with a custom config.toml built from the mock server URL
func setupWithConfig(t *testing.T, configFor func(serverURL, dbPath string) string) *bytes.Buffer {
	t.Helper()
	srv := api.NewServer(api.Options{Secret: []byte("cli-test")})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.toml")
	cfg := configFor(ts.URL, filepath.Join(dir, "session.db"))
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfg), 0o600))
	t.Setenv("PORTAL_API_BASE_URL", "")
	t.Setenv("PORTAL_LOG_LEVEL", "")
	t.Setenv("PORTAL_CONFIG_URL", "")

	var out bytes.Buffer
	prev := stdout
	stdout = &out
	t.Cleanup(func() { stdout = prev })

	configPath = cfgFile
	baseURL = ""
	logLevel = ""
	resetCommandFlags()
	return &out
}

// resetCommandFlags clears flag values left behind by earlier runs of rootCmd
func resetCommandFlags() {
	productFilter = view.ProductFilter{}
	productSort = string(view.SortByID)
	productDesc = false
	productPage = 1
	productPageSize = view.DefaultPageSize
	productRename = ""
	execStatus, execProduct, execFrom, execTo = "", "", "", ""
	execPage = 1
	execPageSize = view.DefaultPageSize
	execRecent = 0
	logsStep = ""
}

func run(t *testing.T, out *bytes.Buffer, args ...string) error {
	t.Helper()
	out.Reset()
	rootCmd.SetArgs(append([]string{"-o", "table"}, args...))
	return rootCmd.Execute()
}

func TestCommandsRequireLogin(t *testing.T) {
	out := setup(t)

	err := run(t, out, "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "portalctl login")
}

func TestLoginAndBrowse(t *testing.T) {
	out := setup(t)

	require.NoError(t, run(t, out, "login", "-u", "admin", "-p", "admin"))
	assert.Contains(t, out.String(), "Signed in as Admin")

	require.NoError(t, run(t, out, "whoami"))
	assert.Contains(t, out.String(), "admin@example.com")

	require.NoError(t, run(t, out, "stats"))
	assert.Contains(t, out.String(), "Total Products")

	require.NoError(t, run(t, out, "products", "list", "--vendor", "Google"))
	assert.Contains(t, out.String(), "Google Chrome")
	assert.NotContains(t, out.String(), "Zoom")

	require.NoError(t, run(t, out, "executions", "list", "--status", "error"))
	assert.Contains(t, out.String(), "exec-002")
	assert.NotContains(t, out.String(), "exec-001")

	require.NoError(t, run(t, out, "executions", "logs", "exec-002", "--step", "1"))
	assert.Contains(t, out.String(), "installer checksum mismatch")

	require.NoError(t, run(t, out, "logout"))
	require.Error(t, run(t, out, "stats"))
}

func TestJSONOutput(t *testing.T) {
	out := setup(t)
	require.NoError(t, run(t, out, "login", "-u", "admin", "-p", "admin"))

	out.Reset()
	rootCmd.SetArgs([]string{"-o", "json", "executions", "get", "exec-003"})
	require.NoError(t, rootCmd.Execute())

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "exec-003", got["ExecutionID"])
	assert.Equal(t, "running", got["Status"])
}

func TestCreateProductFromYAML(t *testing.T) {
	out := setup(t)
	require.NoError(t, run(t, out, "login", "-u", "admin", "-p", "admin"))

	file := filepath.Join(t.TempDir(), "vlc.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`name: VLC
vendor: VideoLAN
cron: "0 2 * * *"
automation_scripts:
  - notification/vendor_feed.ps1
vendor_website_check:
  url: https://www.videolan.org/vlc/
  regex: 'vlc-(\d+\.\d+\.\d+)'
`), 0o600))

	require.NoError(t, run(t, out, "products", "create", "-f", file))
	assert.Contains(t, out.String(), "Created product 6")
	assert.Contains(t, out.String(), "Gather Notification")
}

func TestCreateProductValidatesLocally(t *testing.T) {
	out := setup(t)
	require.NoError(t, run(t, out, "login", "-u", "admin", "-p", "admin"))

	file := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(file, []byte("name: Bad\nvendor: X\ncron: not a cron\n"), 0o600))

	err := run(t, out, "products", "create", "-f", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cron")
}

func TestThemePreferenceSurvivesLogout(t *testing.T) {
	out := setup(t)

	require.NoError(t, run(t, out, "theme"))
	assert.Equal(t, "system", strings.TrimSpace(out.String()))

	require.NoError(t, run(t, out, "theme", "dark"))
	require.NoError(t, run(t, out, "logout"))
	require.NoError(t, run(t, out, "theme"))
	assert.Equal(t, "dark", strings.TrimSpace(out.String()))

	assert.Error(t, run(t, out, "theme", "neon"))
}

func TestReadProductFileDefaults(t *testing.T) {
	file := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(file, []byte("name: A\nvendor: B\ncron: '* * * * *'\nninite_check:\n  product_name: a\n"), 0o600))

	form, err := readProductFile(file)
	require.NoError(t, err)
	assert.True(t, form.Enabled, "enabled defaults to true")
	assert.Equal(t, []string{}, form.AutomationScripts)
	assert.True(t, form.NeedsNiniteCheck)
	assert.Equal(t, "a", form.NiniteProductName)
	assert.False(t, form.NeedsFileSizeCheck)
}

func TestUpdateProductKeepsRunHistory(t *testing.T) {
	out := setup(t)
	require.NoError(t, run(t, out, "login", "-u", "admin", "-p", "admin"))

	productJSON := func() domain.Product {
		t.Helper()
		require.NoError(t, run(t, out, "products", "get", "1", "-o", "json"))
		var p domain.Product
		require.NoError(t, json.Unmarshal(out.Bytes(), &p))
		return p
	}
	before := productJSON()
	require.Equal(t, "completed", before.Metadata.LastRanStatus)

	file := filepath.Join(t.TempDir(), "chrome.yaml")
	require.NoError(t, os.WriteFile(file, []byte("name: Chrome\nvendor: Google LLC\ncron: \"0 8 * * *\"\n"), 0o600))
	require.NoError(t, run(t, out, "products", "update", "1", "-f", file))
	assert.Contains(t, out.String(), "Updated product 1")

	after := productJSON()
	assert.Equal(t, "Chrome", after.Name)
	assert.Equal(t, "Google LLC", after.Metadata.Vendor)
	assert.Equal(t, "0 8 * * *", after.Metadata.Cron)
	assert.Equal(t, before.Metadata.LastRanAt, after.Metadata.LastRanAt)
	assert.Equal(t, before.Metadata.LastRanStatus, after.Metadata.LastRanStatus)
	assert.Equal(t, before.Metadata.AutomationScripts, after.Metadata.AutomationScripts)
	assert.True(t, after.Metadata.Enabled)
}

func TestExecutionGetShowsStepPayloads(t *testing.T) {
	out := setup(t)
	require.NoError(t, run(t, out, "login", "-u", "admin", "-p", "admin"))

	require.NoError(t, run(t, out, "executions", "get", "exec-003"))
	assert.Contains(t, out.String(), "current step: Create Patch")
	assert.Contains(t, out.String(), "Gather Notification input:")
	assert.Contains(t, out.String(), `"product": "Zoom"`)
	assert.Contains(t, out.String(), "Gather Notification output:")
	assert.Contains(t, out.String(), `"ok": true`)
}

func TestMissingRecordsPointAtList(t *testing.T) {
	out := setup(t)
	require.NoError(t, run(t, out, "login", "-u", "admin", "-p", "admin"))

	err := run(t, out, "executions", "get", "exec-999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "portalctl executions list")
	assert.Contains(t, err.Error(), "Execution exec-999 not found")

	err = run(t, out, "products", "get", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no product 99")
}

func TestExecutionSummaryGroupsByProduct(t *testing.T) {
	out := setup(t)
	require.NoError(t, run(t, out, "login", "-u", "admin", "-p", "admin"))

	require.NoError(t, run(t, out, "executions", "summary", "-o", "json"))
	var got []struct {
		Product    string
		Runs       int
		Failed     int
		Health     int
		LastStatus string
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 5)
	assert.Equal(t, "7-Zip", got[0].Product)
	for _, s := range got {
		if s.Product == "Mozilla Firefox" {
			assert.Equal(t, 1, s.Failed)
			assert.Equal(t, 0, s.Health)
			assert.Equal(t, "failed", s.LastStatus)
		}
	}
}

func TestBaseURLFromRuntimeConfig(t *testing.T) {
	out := setupWithConfig(t, func(serverURL, dbPath string) string {
		return fmt.Sprintf(`[api]
config_url = %q

[general]
database_path = %q
log_level = "error"
`, serverURL+"/config.json", dbPath)
	})

	require.NoError(t, run(t, out, "login", "-u", "admin", "-p", "admin"))
	assert.Contains(t, out.String(), "Signed in as Admin")
}

func TestUnknownLogLevelIsRejected(t *testing.T) {
	out := setup(t)

	err := run(t, out, "--log-level", "loud", "theme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}
