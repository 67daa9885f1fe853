package hatchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/hatchsocial/hatchclient/internal/backoff"
	"github.com/hatchsocial/hatchclient/internal/singleflight"
	"github.com/hatchsocial/hatchclient/storage"
)

// Client is the admin API access layer. It adds session headers, retries
// on 429 and network failures, queues requests while offline, caches reads
// and, in hybrid mode, falls back to stale or mock data. It is safe for
// concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	middleware []Middleware

	retryDelay       time.Duration
	rateLimitRetries int
	networkRetries   int
	delays           *backoff.Calculator
	sleep            Sleeper
	now              func() time.Time

	cache         *ResponseCache
	cacheTTL      time.Duration
	cacheDisabled bool
	reads         *singleflight.Group[json.RawMessage]

	circuitBreaker *CircuitBreaker
	hybrid         RoundTripper
	degraded       atomic.Bool

	store            storage.Store
	session          *Session
	onSessionExpired SessionExpiredHandler

	queue             *OfflineQueue
	online            atomic.Bool
	maxReplayAttempts int
	drainInterval     time.Duration
	drains            *singleflight.Group[int]

	notifier Notifier
	metrics  *MetricsCollector
	debug    *DebugConfig
	logger   Logger

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	validationError error
}

// New constructs a Client using the provided functional options and
// restores any persisted session. Configuration problems are reported by
// IsValid and ValidationError rather than by panicking.
func New(options ...Option) *Client {
	client := &Client{
		baseURL:           DefaultBaseURL,
		httpClient:        &http.Client{},
		timeout:           DefaultTimeout,
		middleware:        []Middleware{},
		retryDelay:        DefaultRetryDelay,
		rateLimitRetries:  DefaultRateLimitRetries,
		networkRetries:    DefaultNetworkRetries,
		sleep:             sleepContext,
		now:               time.Now,
		cacheTTL:          DefaultCacheTTL,
		reads:             singleflight.New[json.RawMessage](),
		store:             storage.NewMemoryStore(),
		queue:             NewOfflineQueue(),
		maxReplayAttempts: DefaultMaxReplayAttempts,
		drainInterval:     DefaultDrainInterval,
		drains:            singleflight.New[int](),
		notifier:          nopNotifier{},
		debug:             DefaultDebugConfig(),
		logger:            hclog.NewNullLogger(),
		done:              make(chan struct{}),
	}
	client.online.Store(true)

	for _, option := range options {
		option(client)
	}

	client.baseURL = strings.TrimRight(client.baseURL, "/")
	if client.logger == nil {
		client.logger = hclog.NewNullLogger()
	}
	if client.notifier == nil {
		client.notifier = nopNotifier{}
	}
	client.delays = backoff.NewCalculator(backoff.LinearStrategy{}, client.retryDelay, 0)
	if !client.cacheDisabled {
		client.cache = NewResponseCache(client.cacheTTL, client.now)
	}
	if client.circuitBreaker != nil {
		client.circuitBreaker.now = client.now
	}
	client.session = newSession(client.store)

	if err := client.ValidateConfiguration(); err != nil {
		client.validationError = err
	}

	if client.store != nil {
		if err := client.session.Load(context.Background()); err != nil {
			client.logger.Warn("Failed to restore session", "error", err)
		}
	}

	return client
}

// Session returns the signed-in administrator.
func (c *Client) Session() *Session {
	return c.session
}

// Cache returns the response cache, or nil when caching is disabled.
func (c *Client) Cache() *ResponseCache {
	return c.cache
}

// Store returns the durable store backing the session, settings and
// offline data.
func (c *Client) Store() storage.Store {
	return c.store
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close stops background goroutines started by StartAutoDrain and
// WatchConnectivity and waits for them to exit.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	c.wg.Wait()
	return nil
}

// Request sends method to path under the base URL and returns the parsed
// response body. Reads are served from the response cache while fresh and
// concurrent identical reads share one network call. A successful mutation
// invalidates cached reads of its collection.
func (c *Client) Request(ctx context.Context, method, path string, opts *RequestOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method = strings.ToUpper(method)

	p, err := c.newPendingRequest(method, path, opts)
	if err != nil {
		return nil, err
	}

	if method != http.MethodGet {
		data, err := c.execute(ctx, p, true)
		if err != nil {
			return c.fallback(ctx, p, "", err)
		}
		c.invalidate(method, path, opts.Invalidate)
		return data, nil
	}

	if c.cache == nil {
		data, err := c.execute(ctx, p, true)
		if err != nil {
			return c.fallback(ctx, p, "", err)
		}
		return data, nil
	}

	key := CacheKey(method, path, opts)
	if !opts.NoCache {
		if data, ok := c.cache.Get(key); ok {
			c.metrics.RecordCacheHit(method, path)
			c.debugf(logCache, "Cache hit", "requestID", p.ID, "cacheKey", key)
			return data, nil
		}
	}
	c.metrics.RecordCacheMiss(method, path)
	c.debugf(logCache, "Cache miss", "requestID", p.ID, "cacheKey", key)

	// The shared call outlives any single caller; each caller stops waiting
	// on its own context.
	callCtx := context.WithoutCancel(ctx)
	ch := c.reads.DoChan(key, func() (json.RawMessage, error) {
		data, err := c.execute(callCtx, p, true)
		if err != nil {
			return nil, err
		}
		c.cache.Set(key, data)
		c.metrics.RecordCacheSize(c.cache.Len())
		c.debugf(logCache, "Response cached", "requestID", p.ID, "cacheKey", key, "ttl", c.cache.TTL())
		return data, nil
	})

	var res singleflight.Result[json.RawMessage]
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Shared {
		c.debugf(logRequests, "Shared in-flight read", "requestID", p.ID, "cacheKey", key)
	}
	data, err := res.Val, res.Err
	if err != nil {
		return c.fallback(ctx, p, key, err)
	}
	return data, nil
}

// Do sends a prepared request through the retry and offline handling
// without touching the response cache.
func (c *Client) Do(ctx context.Context, p *PendingRequest) (json.RawMessage, error) {
	if p.ID == "" {
		p.ID = c.newRequestID()
	}
	if p.URL == "" {
		p.URL = c.baseURL + p.Path
	}
	return c.execute(ctx, p, true)
}

func (c *Client) newPendingRequest(method, path string, opts *RequestOptions) (*PendingRequest, error) {
	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, &ClientError{
			Type:      ErrorTypeValidation,
			Message:   "request body could not be encoded",
			Cause:     err,
			Method:    method,
			Endpoint:  path,
			Timestamp: c.now(),
		}
	}

	url := c.baseURL + path
	if q := encodeParams(opts.Params); q != "" {
		url += "?" + q
	}

	return &PendingRequest{
		ID:       c.newRequestID(),
		Method:   method,
		Path:     path,
		URL:      url,
		Header:   opts.Header.Clone(),
		Body:     body,
		QueuedAt: c.now(),
	}, nil
}

func (c *Client) newRequestID() string {
	if c.debug != nil && c.debug.RequestIDGen != nil {
		return c.debug.RequestIDGen()
	}
	return uuid.NewString()
}

// execute runs the attempt loop for p. When allowQueue is false an offline
// client fails with a network error instead of queueing, which is what a
// replay from the queue needs.
func (c *Client) execute(ctx context.Context, p *PendingRequest, allowQueue bool) (json.RawMessage, error) {
	start := c.now()

	if !c.IsOnline() {
		if allowQueue {
			return nil, c.enqueue(p, start)
		}
		return nil, c.newError(ErrorTypeNetwork, MsgNetworkError, nil, p, 0, start)
	}

	c.metrics.RecordRequestStart(p.Method, p.Path)
	defer c.metrics.RecordRequestEnd(p.Method, p.Path)
	c.debugf(logRequests, "Starting request", "requestID", p.ID, "method", p.Method, "url", p.URL)

	rateLimitRetries := min(c.rateLimitRetries, DefaultRateLimitRetries)
	limited, failed := 0, 0

	for attempt := 0; ; attempt++ {
		if c.circuitBreaker != nil && !c.circuitBreaker.Allow() {
			c.debugf(logCircuit, "Circuit breaker open", "requestID", p.ID, "endpoint", p.Path)
			c.metrics.RecordError(ErrorTypeCircuitOpen, p.Method, p.Path)
			return nil, c.newError(ErrorTypeCircuitOpen, ErrCircuitOpen.Message, nil, p, attempt, start)
		}

		status, body, err := c.send(ctx, c.transport(), p)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			c.recordBreaker(false)

			if isTimeout(err) {
				c.metrics.RecordError(ErrorTypeTimeout, p.Method, p.Path)
				return nil, c.newError(ErrorTypeTimeout, MsgTimeout, err, p, attempt, start)
			}
			if !c.IsOnline() && allowQueue {
				return nil, c.enqueue(p, start)
			}
			if failed < c.networkRetries {
				delay := c.delays.Delay(failed)
				failed++
				c.metrics.RecordRetry(p.Method, p.Path, "network")
				c.debugf(logRetries, "Scheduling retry", "requestID", p.ID, "reason", "network", "retry", failed, "backoff", delay, "error", err)
				if err := c.sleep(ctx, delay); err != nil {
					return nil, err
				}
				continue
			}
			c.metrics.RecordError(ErrorTypeNetwork, p.Method, p.Path)
			return nil, c.newError(ErrorTypeNetwork, MsgNetworkError, err, p, attempt, start)
		}

		c.metrics.RecordRequest(p.Method, p.Path, status)
		c.metrics.RecordDuration(p.Method, p.Path, c.now().Sub(start))
		c.recordBreaker(status < http.StatusInternalServerError)

		switch {
		case status == http.StatusUnauthorized:
			c.expireSession(ctx)
			e := c.newError(ErrorTypeSessionExpired, MsgSessionExpired, nil, p, attempt, start)
			e.StatusCode = status
			return nil, e

		case status == http.StatusTooManyRequests:
			if limited < rateLimitRetries {
				delay := c.delays.Delay(limited)
				limited++
				c.metrics.RecordRetry(p.Method, p.Path, "rate_limited")
				c.debugf(logRetries, "Scheduling retry", "requestID", p.ID, "reason", "rate_limited", "retry", limited, "backoff", delay)
				if err := c.sleep(ctx, delay); err != nil {
					return nil, err
				}
				continue
			}
			c.metrics.RecordError(ErrorTypeRateLimited, p.Method, p.Path)
			e := c.newError(ErrorTypeRateLimited, errorMessage(body, status), nil, p, attempt, start)
			e.StatusCode = status
			e.Data = jsonOrNil(body)
			return nil, e

		case status < 200 || status >= 300:
			c.metrics.RecordError(ErrorTypeAPI, p.Method, p.Path)
			e := c.newError(ErrorTypeAPI, errorMessage(body, status), nil, p, attempt, start)
			e.StatusCode = status
			e.Data = jsonOrNil(body)
			return nil, e
		}

		c.degraded.Store(false)
		return c.parseBody(p, status, body, attempt, start)
	}
}

// send performs one attempt under the per-attempt timeout and reads the
// whole response body.
func (c *Client) send(ctx context.Context, rt RoundTripper, p *PendingRequest) (int, []byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if len(p.Body) > 0 {
		body = bytes.NewReader(p.Body)
	}
	req, err := http.NewRequestWithContext(attemptCtx, p.Method, p.URL, body)
	if err != nil {
		return 0, nil, err
	}
	c.applyHeaders(req, p)

	resp, err := rt.RoundTrip(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

func (c *Client) applyHeaders(req *http.Request, p *PendingRequest) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("X-Request-ID", p.ID)
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for key, values := range p.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
}

func (c *Client) transport() RoundTripper {
	current := RoundTripper(RoundTripperFunc(c.httpClient.Do))

	for i := len(c.middleware) - 1; i >= 0; i-- {
		middleware := c.middleware[i]
		next := current
		current = RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			return middleware(r, next)
		})
	}

	return current
}

func (c *Client) parseBody(p *PendingRequest, status int, body []byte, attempt int, start time.Time) (json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return json.RawMessage("null"), nil
	}
	if !json.Valid(body) {
		e := c.newError(ErrorTypeAPI, "invalid JSON response", nil, p, attempt, start)
		e.StatusCode = status
		return nil, e
	}
	return json.RawMessage(body), nil
}

func (c *Client) expireSession(ctx context.Context) {
	if err := c.session.Clear(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error("Failed to clear expired session", "error", err)
	}
	c.logger.Warn("Session expired")
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

func (c *Client) enqueue(p *PendingRequest, start time.Time) error {
	p.QueuedAt = c.now()
	// Replay later under the identity that issued the request.
	if token := c.session.Token(); token != "" && p.Header.Get("Authorization") == "" {
		p.Header = p.Header.Clone()
		if p.Header == nil {
			p.Header = http.Header{}
		}
		p.Header.Set("Authorization", "Bearer "+token)
	}
	n := c.queue.Enqueue(p)
	c.metrics.RecordQueued(p.Method, n)
	c.logger.Info("Request queued for later", "requestID", p.ID, "method", p.Method, "path", p.Path, "queueLength", n)
	return c.newError(ErrorTypeOfflineQueued, MsgOfflineQueued, nil, p, 0, start)
}

// invalidate drops cached reads related to a successful mutation of path.
func (c *Client) invalidate(method, path string, extra []string) {
	if c.cache == nil || method == http.MethodGet {
		return
	}
	removed := c.cache.ClearPattern(collectionPath(path))
	for _, pattern := range extra {
		removed += c.cache.ClearPattern(pattern)
	}
	c.metrics.RecordCacheSize(c.cache.Len())
	c.debugf(logCache, "Cache invalidated", "path", path, "removed", removed)
}

func (c *Client) recordBreaker(success bool) {
	if c.circuitBreaker == nil {
		return
	}
	if success {
		c.circuitBreaker.RecordSuccess()
	} else {
		c.circuitBreaker.RecordFailure()
		c.debugf(logCircuit, "Circuit breaker failure recorded", "state", c.circuitBreaker.State())
	}
	c.metrics.RecordCircuitBreakerState("default", c.circuitBreaker.State())
}

func (c *Client) newError(errorType, message string, cause error, p *PendingRequest, attempt int, start time.Time) *ClientError {
	return &ClientError{
		Type:       errorType,
		Message:    message,
		Cause:      cause,
		RequestID:  p.ID,
		Method:     p.Method,
		URL:        p.URL,
		Endpoint:   p.Path,
		Attempt:    attempt,
		MaxRetries: max(c.networkRetries, min(c.rateLimitRetries, DefaultRateLimitRetries)),
		Timestamp:  c.now(),
		Duration:   c.now().Sub(start),
	}
}

// errorMessage extracts a message from an error body: "message", then
// "error", then a generic status line.
func errorMessage(body []byte, status int) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg, ok := payload["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := payload["error"].(string); ok && msg != "" {
			return msg
		}
	}
	return fmt.Sprintf("HTTP error! status: %d", status)
}

func jsonOrNil(body []byte) json.RawMessage {
	if len(body) == 0 || !json.Valid(body) {
		return nil
	}
	return json.RawMessage(body)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsValid reports whether configuration validation passed at construction.
func (c *Client) IsValid() bool {
	return c.validationError == nil
}

// ValidationError returns the configuration validation error, if any.
func (c *Client) ValidationError() error {
	return c.validationError
}
