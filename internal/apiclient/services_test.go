package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hochfrequenz/automation-portal/internal/domain"
	"github.com/hochfrequenz/automation-portal/internal/wire"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL + "/api"})
}

func TestDashboard_Stats(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard/stats", r.URL.Path)
		writeJSON(w, http.StatusOK, wire.DashboardStatsResponse{Stats: wire.DashboardStats{
			TotalProducts: 10, ActiveProducts: 9, PatchNotifications: 1, PatchesCreated: 2, PatchesReady: 2,
		}})
	})

	stats, err := c.Dashboard().Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DashboardStats{
		TotalProducts: 10, ActiveProducts: 9, PatchNotifications: 1, PatchesCreated: 2, FailedPatches: 0, PatchesReady: 2,
	}, stats)
}

func TestDashboard_ActivitiesDefaultLimit(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, wire.ActivitiesResponse{Activities: []wire.Activity{
			{ID: 1, Type: "patch_created", Title: "Patch created", Timestamp: "2024-06-01T10:00:00Z"},
		}})
	})

	acts, err := c.Dashboard().Activities(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, "", acts[0].Description)
}

func TestProducts_ListAndSearch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products":
			writeJSON(w, http.StatusOK, []wire.Product{{ID: 1, Name: "Chrome"}, {ID: 2, Name: "Zoom"}})
		case "/api/products/search":
			assert.Equal(t, "zo", r.URL.Query().Get("q"))
			writeJSON(w, http.StatusOK, []wire.Product{{ID: 2, Name: "Zoom"}})
		default:
			http.NotFound(w, r)
		}
	})

	all, err := c.Products().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := c.Products().Search(context.Background(), "zo")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Zoom", found[0].Name)
}

func TestProducts_CreateUpdateDelete(t *testing.T) {
	var created wire.CreateProductRequest
	var updated wire.UpdateProductRequest
	var deleted bool

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/products":
			require.NoError(t, json.Unmarshal(body, &created))
			writeJSON(w, http.StatusCreated, wire.Product{ID: 3, Name: created.Name, Metadata: created.Metadata})
		case r.Method == http.MethodPut && r.URL.Path == "/api/products/3":
			require.NoError(t, json.Unmarshal(body, &updated))
			writeJSON(w, http.StatusOK, wire.Product{ID: 3, Name: *updated.Name, Metadata: *updated.Metadata})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/products/3":
			deleted = true
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	form := domain.DefaultProductForm()
	form.Name = "Firefox"
	form.Vendor = "Mozilla"
	form.Cron = "0 6 * * *"

	p, err := c.Products().Create(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, "Mozilla", created.Metadata.Vendor)

	form.Enabled = false
	p, err = c.Products().Update(ctx, 3, "Firefox ESR", form)
	require.NoError(t, err)
	assert.Equal(t, "Firefox ESR", p.Name)
	assert.False(t, p.Metadata.Enabled)

	require.NoError(t, c.Products().Delete(ctx, 3))
	assert.True(t, deleted)
}

func TestProducts_Scripts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/github_scripts", r.URL.Path)
		writeJSON(w, http.StatusOK, wire.ScriptsResponse{Files: []wire.Script{{Name: "patch.ps1", Path: "scripts/patch.ps1"}}})
	})

	scripts, err := c.Products().Scripts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Script{{Name: "patch.ps1", Path: "scripts/patch.ps1"}}, scripts)
}

func TestExecutions_ListPassesFilters(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "failed", r.URL.Query().Get("status"))
		assert.False(t, r.URL.Query().Has("productName"))
		writeJSON(w, http.StatusOK, wire.ExecutionListResponse{Executions: []wire.Execution{
			{ExecutionID: "e1", Status: "error", Steps: []wire.StepRun{{StepIndex: 0, Status: "failure"}}},
		}})
	})

	execs, err := c.Executions().List(context.Background(), Params{"status": "failed", "productName": nil})
	require.NoError(t, err)
	require.Len(t, execs, 1)
	assert.Equal(t, domain.StatusFailed, execs[0].Status)
	assert.Equal(t, domain.StatusFailed, execs[0].Steps[0].Status)
}

func TestExecutions_GetCancelRetry(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/executions/e1":
			writeJSON(w, http.StatusOK, wire.Execution{ExecutionID: "e1", Status: "running"})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/executions/e1/cancel":
			writeJSON(w, http.StatusOK, wire.Execution{ExecutionID: "e1", Status: "cancelled"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/executions/e1/retry":
			writeJSON(w, http.StatusOK, wire.Execution{ExecutionID: "e2", Status: "queued"})
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	e, err := c.Executions().Get(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, e.Status)

	e, err = c.Executions().Cancel(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, e.Status)

	e, err = c.Executions().Retry(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "e2", e.ExecutionID)
	assert.Equal(t, domain.StatusPending, e.Status)
}

func TestExecutions_LogsAndRecent(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/executions/e1/logs":
			assert.Equal(t, "2", r.URL.Query().Get("stepId"))
			writeJSON(w, http.StatusOK, wire.LogsResponse{Logs: []string{"a", "b"}, HasMore: true})
		case "/api/executions/recent":
			assert.Equal(t, "3", r.URL.Query().Get("limit"))
			writeJSON(w, http.StatusOK, wire.ExecutionListResponse{})
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	logs, err := c.Executions().Logs(ctx, "e1", "2")
	require.NoError(t, err)
	assert.Equal(t, StepLogs{Lines: []string{"a", "b"}, HasMore: true}, logs)

	recent, err := c.Executions().Recent(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, recent)
	assert.Empty(t, recent)
}

func TestAuth_LoginAndMe(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req wire.LoginRequest
			body, _ := io.ReadAll(r.Body)
			require.NoError(t, json.Unmarshal(body, &req))
			assert.Equal(t, "ldap", req.AuthMethod)
			writeJSON(w, http.StatusOK, wire.AuthResponse{
				User:   wire.User{Username: req.Username, DisplayName: "Jane"},
				Tokens: wire.Tokens{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer", ExpiresIn: 3600},
			})
		case "/api/auth/me":
			if r.Header.Get("Authorization") != "Bearer a" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
				return
			}
			writeJSON(w, http.StatusOK, wire.User{Username: "jdoe"})
		}
	})
	ctx := context.Background()

	user, tokens, err := c.Auth().Login(ctx, domain.Credentials{Username: "jdoe", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.DisplayName)
	assert.Equal(t, "a", tokens.AccessToken)

	_, err = c.Auth().Me(ctx)
	assert.True(t, IsUnauthorized(err))

	require.NoError(t, c.Session().SetToken(tokens.AccessToken))
	me, err := c.Auth().Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", me.Username)
}
