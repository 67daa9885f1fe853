package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/hatchsocial/hatchclient"
	"github.com/hatchsocial/hatchclient/internal/config"
	"github.com/hatchsocial/hatchclient/mock"
)

// execute runs hatchctl with args in an isolated home and working directory.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCommand()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func newBackend(t *testing.T) (string, *mock.Dataset) {
	t.Helper()
	ds := mock.New(mock.WithSeed(42)).Generate()
	srv := httptest.NewServer(mock.NewServer(ds))
	t.Cleanup(srv.Close)
	return srv.URL + mock.DefaultBasePath, ds
}

func TestVersion(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "hatchctl "+hatchclient.Version)
	assert.Contains(t, out, "OS/Arch:")
}

func TestInvalidConfigIsRejected(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "stats", "--store", "sqlite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
	assert.Contains(t, err.Error(), "Config.Store.Kind must be one of: memory file redis")
}

func TestMockDumpJSONIsSeeded(t *testing.T) {
	isolate(t)

	emails := func() []string {
		out, _, err := execute(t, "mock", "dump", "-o", "json", "--seed", "7")
		require.NoError(t, err)

		var snap mock.Snapshot
		require.NoError(t, json.Unmarshal([]byte(out), &snap))
		require.Len(t, snap.Users, mock.UserCount)

		list := make([]string, 0, len(snap.Users))
		for _, u := range snap.Users {
			list = append(list, u.Email)
		}
		return list
	}

	assert.Equal(t, emails(), emails())
}

func TestMockDumpYAML(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "mock", "dump")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "users")
	assert.Contains(t, doc, "transactions")
}

func TestMockDumpUnknownFormat(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "mock", "dump", "-o", "xml")
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

func TestStats(t *testing.T) {
	isolate(t)
	baseURL, ds := newBackend(t)

	out, _, err := execute(t, "stats", "--base-url", baseURL, "--store", "memory")
	require.NoError(t, err)

	var stats mock.DashboardStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, ds.DashboardStats().TotalUsers, stats.TotalUsers)
}

func TestStatsYAML(t *testing.T) {
	isolate(t)
	baseURL, _ := newBackend(t)

	out, _, err := execute(t, "stats", "--base-url", baseURL, "--store", "memory", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "total_users:")
}

func TestStatsHybridWithBackendDown(t *testing.T) {
	isolate(t)
	t.Setenv("HATCH_API_NETWORK_RETRIES", "0")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	out, stderr, err := execute(t, "stats", "--hybrid", "--store", "memory", "--base-url", "http://"+addr+"/api")
	require.NoError(t, err)
	assert.Contains(t, out, "total_users")
	assert.Contains(t, stderr, hatchclient.MsgServiceDegraded)
}

func TestHybridRequiresCache(t *testing.T) {
	isolate(t)
	t.Setenv("HATCH_API_CACHE_TTL", "0")

	_, _, err := execute(t, "stats", "--hybrid", "--store", "memory")
	assert.ErrorContains(t, err, "Config.API.Hybrid cannot be set when CacheTTL 0")
}

func TestGetWithParams(t *testing.T) {
	isolate(t)
	baseURL, _ := newBackend(t)

	out, _, err := execute(t, "get", "/auth/profile",
		"--base-url", baseURL, "--store", "memory",
		"-p", "status=active", "-p", "limit=2",
	)
	require.NoError(t, err)

	var envelope struct {
		Data struct {
			Data  []mock.User `json:"data"`
			Limit int         `json:"limit"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &envelope))
	assert.Equal(t, 2, envelope.Data.Limit)
	require.Len(t, envelope.Data.Data, 2)
	for _, u := range envelope.Data.Data {
		assert.Equal(t, "active", u.Status)
	}
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"a=1", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, hatchclient.Params{"a": "1", "b": "x=y", "c": ""}, params)

	_, err = parseParams([]string{"novalue"})
	assert.ErrorContains(t, err, `invalid parameter "novalue"`)

	params, err = parseParams(nil)
	require.NoError(t, err)
	assert.Nil(t, params)
}

func TestLoginInvalidCredentials(t *testing.T) {
	isolate(t)
	baseURL, _ := newBackend(t)

	_, _, err := execute(t, "login", "--base-url", baseURL, "--store", "memory",
		"--email", mock.DemoEmail, "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials", hatchclient.Message(err, ""))
}

func TestLoginAndLogoutPersistSession(t *testing.T) {
	home := isolate(t)
	baseURL, _ := newBackend(t)
	statePath := filepath.Join(home, ".hatchctl", "state.json")

	out, _, err := execute(t, "login", "--base-url", baseURL,
		"--email", mock.DemoEmail, "--password", mock.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, "Logged in as admin@gmail.com\n", out)

	state, err := os.ReadFile(statePath)
	require.NoError(t, err)
	assert.Contains(t, string(state), mock.DemoToken)

	_, _, err = execute(t, "logout", "--base-url", baseURL)
	require.NoError(t, err)

	state, err = os.ReadFile(statePath)
	require.NoError(t, err)
	assert.NotContains(t, string(state), mock.DemoToken)
}

func TestOfflineSaveListSync(t *testing.T) {
	isolate(t)
	baseURL, ds := newBackend(t)
	before := ds.Users.Len()

	_, _, err := execute(t, "offline", "save", "/auth/profile", `{"name":"Jane Doe","email":"jane@example.com"}`)
	require.NoError(t, err)

	out, _, err := execute(t, "offline", "list")
	require.NoError(t, err)
	assert.Equal(t, "/auth/profile\t{\"name\":\"Jane Doe\",\"email\":\"jane@example.com\"}\n", out)

	_, stderr, err := execute(t, "offline", "sync", "--base-url", baseURL)
	require.NoError(t, err)
	assert.Contains(t, stderr, hatchclient.MsgOfflineSynced)
	assert.Equal(t, before+1, ds.Users.Len())

	out, _, err = execute(t, "offline", "list")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestOfflineSaveRejectsInvalidJSON(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "offline", "save", "/auth/profile", "{nope")
	assert.ErrorContains(t, err, "not valid JSON")
}

func TestSettingsSetKeepsUnchangedValues(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "settings", "set", "--theme", "light", "--refresh-interval", "60000")
	require.NoError(t, err)

	out, _, err := execute(t, "settings")
	require.NoError(t, err)

	var got hatchclient.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "light", got.Theme)
	assert.Equal(t, 60000, got.RefreshInterval)
	assert.Equal(t, hatchclient.DefaultSettings().Language, got.Language)
	assert.True(t, got.Notifications)
}

func TestServeMockWithMetrics(t *testing.T) {
	cfg := &config.Config{}
	cfg.Metrics.Enabled = true
	cfg.SetDefaults()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serveMock(ctx, cfg, mock.New(mock.WithSeed(1)).Generate(), hclog.NewNullLogger(), ln)
	}()

	base := "http://" + ln.Addr().String()
	resp, err := http.Get(base + "/api/auth/profile")
	require.NoError(t, err)
	_, err = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(base + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Contains(t, string(body), `hatch_mock_requests_total{code="200",method="get"} 1`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("mock backend did not shut down")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, "toml", json.RawMessage(`{}`))
	assert.ErrorContains(t, err, `unknown output format "toml"`)
}
