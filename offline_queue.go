package hatchclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-multierror"
)

// OfflineQueue holds requests issued while offline, in FIFO order.
type OfflineQueue struct {
	mu    sync.Mutex
	items []*PendingRequest
}

func NewOfflineQueue() *OfflineQueue {
	return &OfflineQueue{}
}

// Enqueue appends p and returns the new length.
func (q *OfflineQueue) Enqueue(p *PendingRequest) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, p)
	return len(q.items)
}

func (q *OfflineQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Snapshot returns copies of the queued requests without removing them.
func (q *OfflineQueue) Snapshot() []PendingRequest {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]PendingRequest, len(q.items))
	for i, p := range q.items {
		out[i] = *p
	}
	return out
}

// take removes and returns everything queued. Requests enqueued afterwards
// land in a fresh queue.
func (q *OfflineQueue) take() []*PendingRequest {
	q.mu.Lock()
	defer q.mu.Unlock()

	items := q.items
	q.items = nil
	return items
}

// restore puts unreplayed requests back ahead of anything queued since
// take, keeping FIFO order.
func (q *OfflineQueue) restore(items []*PendingRequest) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	merged := make([]*PendingRequest, 0, len(items)+len(q.items))
	merged = append(merged, items...)
	merged = append(merged, q.items...)
	q.items = merged
}

// Queue exposes the client's offline queue.
func (c *Client) Queue() *OfflineQueue {
	return c.queue
}

// Drain replays every queued request in FIFO order. Only one drain runs at
// a time; a call made while another drain is in progress returns
// immediately. A failed replay is queued again until it has been attempted
// MaxReplayAttempts times, except for client errors (4xx other than 429)
// and expired sessions, which are dropped at once. The returned error
// aggregates every failed replay.
func (c *Client) Drain(ctx context.Context) error {
	_, err, ran := c.drains.TryDo("drain", func() (int, error) {
		return c.drain(ctx)
	})
	if !ran {
		c.debugf(logQueue, "Drain already in progress")
		return nil
	}
	return err
}

func (c *Client) drain(ctx context.Context) (int, error) {
	if !c.IsOnline() {
		return 0, nil
	}

	items := c.queue.take()
	if len(items) == 0 {
		return 0, nil
	}

	c.notifier.Notify(NotifyInfo, fmt.Sprintf(msgSyncingRequests, len(items)))
	c.logger.Info("Draining offline queue", "count", len(items))

	var result *multierror.Error
	replayed := 0
	interrupted := false
	for i, p := range items {
		if ctx.Err() != nil || !c.IsOnline() {
			c.queue.restore(items[i:])
			c.logger.Warn("Drain interrupted", "remaining", len(items)-i)
			interrupted = true
			break
		}

		_, err := c.execute(ctx, p, false)
		replayed++
		if err == nil {
			c.invalidate(p.Method, p.Path, nil)
			c.metrics.RecordReplay("success")
			continue
		}

		p.Attempts++
		result = multierror.Append(result, fmt.Errorf("%s %s: %w", p.Method, p.Path, err))

		if c.shouldRequeue(p, err) {
			c.queue.Enqueue(p)
			c.metrics.RecordReplay("requeued")
			c.debugf(logQueue, "Request requeued", "id", p.ID, "attempts", p.Attempts)
		} else {
			c.metrics.RecordReplay("dropped")
			c.logger.Error("Dropping pending request", "id", p.ID, "method", p.Method, "path", p.Path, "attempts", p.Attempts, "error", err)
		}
	}
	c.metrics.RecordQueueLength(c.queue.Len())

	if err := result.ErrorOrNil(); err != nil {
		c.logger.Warn("Offline queue drained with failures", "failed", len(result.Errors))
		c.notifier.Notify(NotifyWarning, fmt.Sprintf(msgSyncWithFailures, len(result.Errors)))
		return replayed, err
	}
	if !interrupted {
		c.notifier.Notify(NotifySuccess, MsgSyncCompleted)
	}
	return replayed, nil
}

func (c *Client) shouldRequeue(p *PendingRequest, err error) bool {
	if p.Attempts >= c.maxReplayAttempts {
		return false
	}
	if errors.Is(err, ErrSessionExpired) {
		return false
	}
	status := StatusCode(err)
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError && status != http.StatusTooManyRequests {
		return false
	}
	return true
}

// StartAutoDrain drains the queue every drain interval until ctx is
// cancelled or Close is called. The first drain runs immediately.
func (c *Client) StartAutoDrain(ctx context.Context) {
	ticker := backoff.NewTicker(backoff.NewConstantBackOff(c.drainInterval))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.done:
				return
			case <-ticker.C:
				if c.queue.Len() == 0 {
					continue
				}
				if err := c.Drain(ctx); err != nil {
					c.logger.Warn("Scheduled drain failed", "error", err)
				}
			}
		}
	}()
}
