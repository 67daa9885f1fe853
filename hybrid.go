package hatchclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hatchsocial/hatchclient/mock"
)

// WithHybridMode keeps the real backend as the primary source and serves
// from mockHandler when it cannot be reached. Failed reads first fall back
// to the last cached response, however old. The response cache is enabled
// and a circuit breaker with default settings is installed unless one was
// configured. Requests issued while offline are still queued, not mocked.
//
// Paths are forwarded unchanged, so the mock handler must serve the same
// base path as the backend URL (mock.DefaultBasePath for the default URL).
func WithHybridMode(mockHandler http.Handler) Option {
	return func(c *Client) {
		c.hybrid = mock.NewTransport(mockHandler)
		c.cacheDisabled = false
		if c.circuitBreaker == nil {
			c.circuitBreaker = NewCircuitBreaker(CircuitBreakerConfig{})
		}
	}
}

// IsDegraded reports whether the last response came from a fallback.
func (c *Client) IsDegraded() bool {
	return c.degraded.Load()
}

// fallback serves p from the hybrid fallbacks when err says the backend is
// unreachable. Any other error is returned unchanged.
func (c *Client) fallback(ctx context.Context, p *PendingRequest, key string, err error) (json.RawMessage, error) {
	if c.hybrid == nil || !shouldFallback(err) {
		return nil, err
	}

	if p.Method == http.MethodGet && key != "" && c.cache != nil {
		if data, storedAt, ok := c.cache.GetStale(key); ok {
			c.markDegraded()
			c.metrics.RecordFallback("stale", p.Path)
			c.logger.Warn("Serving stale response", "requestID", p.ID, "path", p.Path, "age", c.now().Sub(storedAt), "error", err)
			return data, nil
		}
	}

	status, body, mockErr := c.send(ctx, c.hybrid, p)
	if mockErr != nil {
		c.logger.Error("Mock fallback failed", "requestID", p.ID, "path", p.Path, "error", mockErr)
		return nil, err
	}

	c.markDegraded()
	c.metrics.RecordFallback("mock", p.Path)
	c.logger.Warn("Serving mock response", "requestID", p.ID, "method", p.Method, "path", p.Path, "status", status, "error", err)

	if status < 200 || status >= 300 {
		return nil, &ClientError{
			Type:       ErrorTypeAPI,
			Message:    errorMessage(body, status),
			StatusCode: status,
			Data:       jsonOrNil(body),
			RequestID:  p.ID,
			Method:     p.Method,
			URL:        p.URL,
			Endpoint:   p.Path,
			Timestamp:  c.now(),
		}
	}

	data, parseErr := c.parseBody(p, status, body, 0, c.now())
	if parseErr != nil {
		return nil, parseErr
	}
	if p.Method == http.MethodGet && key != "" && c.cache != nil {
		c.cache.Set(key, data)
	} else if p.Method != http.MethodGet {
		c.invalidate(p.Method, p.Path, nil)
	}
	return data, nil
}

func (c *Client) markDegraded() {
	if c.degraded.CompareAndSwap(false, true) {
		c.notifier.Notify(NotifyWarning, MsgServiceDegraded)
	}
}

func shouldFallback(err error) bool {
	return errors.Is(err, ErrNetwork) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrCircuitOpen)
}
