package hatchclient

import (
	"context"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// IsOnline reports the client's view of connectivity.
func (c *Client) IsOnline() bool {
	return c.online.Load()
}

// SetOnline records a connectivity change. Coming back online drains the
// offline queue before returning; the drain error, if any, is returned.
// Calls that do not change the state do nothing.
func (c *Client) SetOnline(ctx context.Context, online bool) error {
	if !c.online.CompareAndSwap(!online, online) {
		return nil
	}

	if !online {
		c.logger.Warn("Connection lost")
		c.notifier.Notify(NotifyWarning, MsgWentOffline)
		return nil
	}

	c.logger.Info("Connection restored", "queued", c.queue.Len())
	c.notifier.Notify(NotifySuccess, MsgBackOnline)
	return c.Drain(ctx)
}

// WatchConnectivity polls probeURL every interval and feeds the result to
// SetOnline. Any HTTP response counts as online; a transport error counts
// as offline. The watcher stops when ctx is cancelled or Close is called.
func (c *Client) WatchConnectivity(ctx context.Context, probeURL string, interval time.Duration) {
	ticker := backoff.NewTicker(backoff.NewConstantBackOff(interval))

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
				online := c.probe(ctx, probeURL, interval)
				if ctx.Err() != nil {
					return
				}
				if err := c.SetOnline(ctx, online); err != nil {
					c.logger.Warn("Drain after reconnect failed", "error", err)
				}
			}
		}
	}()
}

func (c *Client) probe(ctx context.Context, probeURL string, timeout time.Duration) bool {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, probeURL, nil)
	if err != nil {
		c.logger.Error("Invalid connectivity probe URL", "url", probeURL, "error", err)
		return c.IsOnline()
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.debugf(logQueue, "Connectivity probe failed", "url", probeURL, "error", err)
		return false
	}
	resp.Body.Close()
	return true
}
