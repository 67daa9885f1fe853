package hatchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("hatch", "warn", true, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	lines := logLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["@message"])
	assert.Equal(t, "value", lines[0]["key"])
	assert.Equal(t, "hatch", lines[0]["@module"])
}

func TestNewLoggerUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("hatch", "chatty", true, &buf)

	logger.Debug("hidden")
	logger.Info("shown")
	assert.Len(t, logLines(t, &buf), 1)
}

func TestLogNotifierLevels(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: NewLogger("notify", "info", true, &buf)}

	n.Notify(NotifySuccess, "saved")
	n.Notify(NotifyWarning, "offline")
	n.Notify(NotifyError, "failed")

	lines := logLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "info", lines[0]["@level"])
	assert.Equal(t, "warn", lines[1]["@level"])
	assert.Equal(t, "error", lines[2]["@level"])
	assert.Equal(t, "success", lines[0]["kind"])
}

func TestNotifierFunc(t *testing.T) {
	var got []string
	n := NotifierFunc(func(kind NotificationKind, message string) {
		got = append(got, string(kind)+":"+message)
	})
	n.Notify(NotifyInfo, "hello")
	assert.Equal(t, []string{"info:hello"}, got)
}

func TestDebugLoggingFollowsConfig(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, `{}`)

	var buf bytes.Buffer
	debug := DefaultDebugConfig()
	debug.Enabled = true
	debug.LogCache = false
	c, _ := newTestClient(t, srv.URL,
		WithLogger(NewLogger("hatch", "debug", true, &buf)),
		WithDebugConfig(debug),
	)

	_, err := c.Request(context.Background(), http.MethodGet, "/auth/me", nil)
	require.NoError(t, err)

	var messages []string
	for _, line := range logLines(t, &buf) {
		messages = append(messages, line["@message"].(string))
	}
	assert.Contains(t, messages, "Starting request")
	assert.NotContains(t, messages, "Cache miss")
}

func TestDebugLoggingDisabledByDefault(t *testing.T) {
	srv, _ := countingServer(t, http.StatusOK, `{}`)

	var buf bytes.Buffer
	c, _ := newTestClient(t, srv.URL, WithLogger(NewLogger("hatch", "debug", true, &buf)))

	_, err := c.Request(context.Background(), http.MethodGet, "/auth/me", nil)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(buf.String()))
}
