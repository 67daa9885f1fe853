package hatchclient

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestSetOnlineNotifiesTransitionsOnly(t *testing.T) {
	notes := &RecordingNotifier{}
	c := New(WithNotifier(notes))
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.SetOnline(ctx, true))
	assert.Empty(t, notes.Notifications())

	require.NoError(t, c.SetOnline(ctx, false))
	require.NoError(t, c.SetOnline(ctx, false))
	assert.False(t, c.IsOnline())

	require.NoError(t, c.SetOnline(ctx, true))
	assert.True(t, c.IsOnline())

	assert.Equal(t, []Notification{
		{Kind: NotifyWarning, Message: MsgWentOffline},
		{Kind: NotifySuccess, Message: MsgBackOnline},
	}, notes.Notifications())
}

func TestWatchConnectivityDetectsOutageAndRecovery(t *testing.T) {
	srv, calls := countingServer(t, http.StatusOK, `{}`)
	c, _ := newTestClient(t, srv.URL, WithOnline(false))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.WatchConnectivity(ctx, srv.URL+"/health", 10*time.Millisecond)

	require.Eventually(t, c.IsOnline, time.Second, 5*time.Millisecond)
	assert.GreaterOrEqual(t, calls.Load(), int32(1))

	srv.Close()
	require.Eventually(t, func() bool { return !c.IsOnline() }, 2*time.Second, 5*time.Millisecond)
}

func TestWatchConnectivityDrainsOnReconnect(t *testing.T) {
	rec := &replayRecorder{}
	srv := newRecorderServer(t, rec)
	c, _ := newTestClient(t, srv, WithOnline(false))
	queueRequests(t, c, 2)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.WatchConnectivity(ctx, srv, 10*time.Millisecond)

	require.Eventually(t, func() bool { return c.Queue().Len() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{1, 2}, rec.Seen())
}

func TestWatchConnectivityInvalidURLKeepsState(t *testing.T) {
	c := New()
	defer c.Close()

	assert.True(t, c.probe(context.Background(), "://bad url", time.Second))
}

func TestWatchConnectivityStopsOnClose(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := New()
	c.WatchConnectivity(context.Background(), "http://127.0.0.1:1/health", time.Hour)
	require.NoError(t, c.Close())
}
