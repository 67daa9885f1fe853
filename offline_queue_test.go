package hatchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// replayRecorder records the "n" field of every request body it receives.
type replayRecorder struct {
	mu   sync.Mutex
	seen []int
}

func (r *replayRecorder) handler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodPost {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		var body struct {
			N int `json:"n"`
		}
		_ = json.NewDecoder(req.Body).Decode(&body)
		r.mu.Lock()
		r.seen = append(r.seen, body.N)
		r.mu.Unlock()
		jsonResponse(w, status, `{"data":{}}`)
	}
}

func newRecorderServer(t *testing.T, rec *replayRecorder) string {
	t.Helper()
	srv := httptest.NewServer(rec.handler(http.StatusOK))
	t.Cleanup(srv.Close)
	return srv.URL
}

func (r *replayRecorder) Seen() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.seen...)
}

func queueRequests(t *testing.T, c *Client, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := c.Request(context.Background(), http.MethodPost, "/auth/post", &RequestOptions{
			Body: map[string]int{"n": i},
		})
		require.True(t, IsQueued(err), "request %d: %v", i, err)
	}
}

func TestOfflineQueueRestoreKeepsOrder(t *testing.T) {
	q := NewOfflineQueue()
	q.Enqueue(&PendingRequest{ID: "a"})
	q.Enqueue(&PendingRequest{ID: "b"})

	items := q.take()
	require.Len(t, items, 2)
	assert.Equal(t, 0, q.Len())

	q.Enqueue(&PendingRequest{ID: "c"})
	q.restore(items)

	var ids []string
	for _, p := range q.Snapshot() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestOfflineQueueSnapshotIsCopy(t *testing.T) {
	q := NewOfflineQueue()
	q.Enqueue(&PendingRequest{ID: "a"})

	snap := q.Snapshot()
	snap[0].Attempts = 5
	assert.Equal(t, 0, q.Snapshot()[0].Attempts)
}

func TestDrainReplaysInOrderWhenBackOnline(t *testing.T) {
	rec := &replayRecorder{}
	srv := httptest.NewServer(rec.handler(http.StatusOK))
	defer srv.Close()

	notes := &RecordingNotifier{}
	c, _ := newTestClient(t, srv.URL, WithOnline(false), WithNotifier(notes))

	queueRequests(t, c, 3)
	require.Equal(t, 3, c.Queue().Len())
	assert.Empty(t, rec.Seen())

	require.NoError(t, c.SetOnline(context.Background(), true))

	assert.Equal(t, []int{1, 2, 3}, rec.Seen())
	assert.Equal(t, 0, c.Queue().Len())
	assert.Equal(t, []Notification{
		{Kind: NotifySuccess, Message: MsgBackOnline},
		{Kind: NotifyInfo, Message: "Syncing 3 pending requests..."},
		{Kind: NotifySuccess, Message: MsgSyncCompleted},
	}, notes.Notifications())
}

func TestDrainReplaysWithQueuedToken(t *testing.T) {
	auth := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth <- r.Header.Get("Authorization")
		jsonResponse(w, http.StatusOK, `{"data":{}}`)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, WithOnline(false))
	ctx := context.Background()

	require.NoError(t, c.Session().Set(ctx, "token-a", nil))
	queueRequests(t, c, 1)
	require.NoError(t, c.Session().Set(ctx, "token-b", nil))

	require.NoError(t, c.SetOnline(ctx, true))
	assert.Equal(t, "Bearer token-a", <-auth)
	assert.Equal(t, 0, c.Queue().Len())
}

func TestDrainRequeuesTransientFailuresUpToLimit(t *testing.T) {
	srv, calls := countingServer(t, http.StatusServiceUnavailable, `{"message":"maintenance"}`)
	notes := &RecordingNotifier{}
	c, _ := newTestClient(t, srv.URL, WithOnline(false), WithNotifier(notes))
	ctx := context.Background()

	queueRequests(t, c, 1)

	err := c.SetOnline(ctx, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maintenance")
	require.Equal(t, 1, c.Queue().Len())
	assert.Equal(t, 1, c.Queue().Snapshot()[0].Attempts)

	require.Error(t, c.Drain(ctx))
	require.Equal(t, 1, c.Queue().Len())
	assert.Equal(t, 2, c.Queue().Snapshot()[0].Attempts)

	require.Error(t, c.Drain(ctx))
	assert.Equal(t, 0, c.Queue().Len(), "dropped after the third attempt")
	assert.Equal(t, int32(3), calls.Load())

	require.NoError(t, c.Drain(ctx))
	assert.Equal(t, int32(3), calls.Load())

	last := notes.Notifications()[len(notes.Notifications())-1]
	assert.Equal(t, Notification{Kind: NotifyWarning, Message: "Sync completed with 1 failed requests."}, last)
}

func TestDrainDropsPermanentFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"validation error", http.StatusUnprocessableEntity},
		{"not found", http.StatusNotFound},
		{"session expired", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := countingServer(t, tt.status, `{"message":"nope"}`)
			c, _ := newTestClient(t, srv.URL, WithOnline(false))

			queueRequests(t, c, 1)
			require.Error(t, c.SetOnline(context.Background(), true))
			assert.Equal(t, 0, c.Queue().Len())
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestDrainRequeuesRateLimited(t *testing.T) {
	srv, _ := countingServer(t, http.StatusTooManyRequests, `{}`)
	c, _ := newTestClient(t, srv.URL, WithOnline(false), WithRateLimitRetries(0))

	queueRequests(t, c, 1)
	require.Error(t, c.SetOnline(context.Background(), true))
	assert.Equal(t, 1, c.Queue().Len())
}

func TestDrainInterruptedWhenConnectionDrops(t *testing.T) {
	var c *Client
	rec := &replayRecorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = c.SetOnline(context.Background(), false)
		rec.handler(http.StatusOK)(w, r)
	}))
	defer srv.Close()

	notes := &RecordingNotifier{}
	c, _ = newTestClient(t, srv.URL, WithOnline(false), WithNotifier(notes))
	ctx := context.Background()

	queueRequests(t, c, 3)
	require.NoError(t, c.SetOnline(ctx, true))

	assert.Equal(t, []int{1}, rec.Seen())
	require.Equal(t, 2, c.Queue().Len())
	assert.NotContains(t, notes.Notifications(), Notification{Kind: NotifySuccess, Message: MsgSyncCompleted})

	queued := c.Queue().Snapshot()
	assert.JSONEq(t, `{"n":2}`, string(queued[0].Body))
	assert.JSONEq(t, `{"n":3}`, string(queued[1].Body))
}

func TestDrainWhileOfflineDoesNothing(t *testing.T) {
	srv, calls := countingServer(t, http.StatusOK, `{}`)
	c, _ := newTestClient(t, srv.URL, WithOnline(false))

	queueRequests(t, c, 2)
	require.NoError(t, c.Drain(context.Background()))
	assert.Equal(t, 2, c.Queue().Len())
	assert.Equal(t, int32(0), calls.Load())
}

func TestDrainRunsOneAtATime(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		jsonResponse(w, http.StatusOK, `{}`)
	}))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, WithOnline(false))
	queueRequests(t, c, 1)
	c.online.Store(true)

	ctx := context.Background()
	errCh := make(chan error, 1)
	go func() { errCh <- c.Drain(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, c.drains.InFlight("drain"))
	assert.NoError(t, c.Drain(ctx), "a concurrent drain returns immediately")

	close(release)
	require.NoError(t, <-errCh)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 0, c.Queue().Len())
}

func TestDrainInvalidatesCacheAfterReplay(t *testing.T) {
	srv, calls := countingServer(t, http.StatusOK, `{"data":[]}`)
	c, _ := newTestClient(t, srv.URL)
	ctx := context.Background()

	_, err := c.Request(ctx, http.MethodGet, "/auth/post", nil)
	require.NoError(t, err)

	require.NoError(t, c.SetOnline(ctx, false))
	queueRequests(t, c, 1)
	require.NoError(t, c.SetOnline(ctx, true))

	_, err = c.Request(ctx, http.MethodGet, "/auth/post", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestStartAutoDrain(t *testing.T) {
	rec := &replayRecorder{}
	srv := httptest.NewServer(rec.handler(http.StatusOK))
	defer srv.Close()

	c, _ := newTestClient(t, srv.URL, WithOnline(false), WithDrainInterval(10*time.Millisecond))
	queueRequests(t, c, 2)
	c.online.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.StartAutoDrain(ctx)

	require.Eventually(t, func() bool { return c.Queue().Len() == 0 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []int{1, 2}, rec.Seen())
}

func TestStartAutoDrainStopsOnClose(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := New(WithDrainInterval(time.Millisecond))
	c.StartAutoDrain(context.Background())
	c.StartAutoDrain(context.Background())
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}

func TestStartAutoDrainStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := New(WithDrainInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	c.StartAutoDrain(ctx)
	cancel()
	c.wg.Wait()
}

func TestShouldRequeue(t *testing.T) {
	c := New()
	defer c.Close()

	tests := []struct {
		name     string
		attempts int
		err      error
		want     bool
	}{
		{"network error", 1, &ClientError{Type: ErrorTypeNetwork}, true},
		{"server error", 1, &ClientError{Type: ErrorTypeAPI, StatusCode: 500}, true},
		{"rate limited", 1, &ClientError{Type: ErrorTypeRateLimited, StatusCode: 429}, true},
		{"bad request", 1, &ClientError{Type: ErrorTypeAPI, StatusCode: 400}, false},
		{"expired session", 1, &ClientError{Type: ErrorTypeSessionExpired, StatusCode: 401}, false},
		{"attempts exhausted", DefaultMaxReplayAttempts, &ClientError{Type: ErrorTypeNetwork}, false},
		{"wrapped", 1, fmt.Errorf("replay: %w", &ClientError{Type: ErrorTypeAPI, StatusCode: 409}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PendingRequest{Attempts: tt.attempts}
			assert.Equal(t, tt.want, c.shouldRequeue(p, tt.err))
		})
	}
}
