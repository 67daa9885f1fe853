package hatchclient

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/hatchsocial/hatchclient/storage"
)

// WithBaseURL sets the backend base URL, e.g. http://localhost:8000/api.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-attempt timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetryDelay sets the base of the linear retry backoff.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithRateLimitRetries sets how many times a 429 is retried. Values above
// three are capped at three.
func WithRateLimitRetries(n int) Option {
	return func(c *Client) {
		c.rateLimitRetries = n
	}
}

// WithNetworkRetries sets how many times a network failure is retried
// while online.
func WithNetworkRetries(n int) Option {
	return func(c *Client) {
		c.networkRetries = n
	}
}

// WithCacheTTL sets the response cache freshness window.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
		c.cacheDisabled = false
	}
}

// WithoutCache disables the response cache.
func WithoutCache() Option {
	return func(c *Client) {
		c.cacheDisabled = true
	}
}

// WithStore sets the durable store for the session, settings and offline
// data.
func WithStore(store storage.Store) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithNotifier sets the sink for user-facing outcome messages.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// WithSessionExpiredHandler sets the hook called after a 401 clears the
// session.
func WithSessionExpiredHandler(fn SessionExpiredHandler) Option {
	return func(c *Client) {
		c.onSessionExpired = fn
	}
}

// WithCircuitBreaker sets the circuit breaker configuration
func WithCircuitBreaker(config CircuitBreakerConfig) Option {
	return func(c *Client) {
		c.circuitBreaker = NewCircuitBreaker(config)
	}
}

// WithMiddleware adds middleware to the client
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// WithMetrics enables Prometheus metrics collection
func WithMetrics() Option {
	return func(c *Client) {
		c.metrics = NewMetricsCollector()
	}
}

// WithMetricsCollector sets a custom metrics collector
func WithMetricsCollector(collector *MetricsCollector) Option {
	return func(c *Client) {
		c.metrics = collector
	}
}

// WithDebug enables debug logging with default configuration
func WithDebug() Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.Enabled = true
	}
}

// WithDebugConfig sets custom debug configuration
func WithDebugConfig(config *DebugConfig) Option {
	return func(c *Client) {
		c.debug = config
	}
}

// WithLogger sets the logger. hclog.Logger satisfies Logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRequestIDGenerator sets a custom function for generating request IDs
func WithRequestIDGenerator(gen func() string) Option {
	return func(c *Client) {
		if c.debug == nil {
			c.debug = DefaultDebugConfig()
		}
		c.debug.RequestIDGen = gen
	}
}

// WithSleeper replaces the backoff wait. Tests use it to record delays
// without sleeping.
func WithSleeper(s Sleeper) Option {
	return func(c *Client) {
		c.sleep = s
	}
}

// WithClock replaces time.Now for the cache, the circuit breaker and
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithMaxReplayAttempts caps how often a queued request is replayed before
// it is dropped.
func WithMaxReplayAttempts(n int) Option {
	return func(c *Client) {
		c.maxReplayAttempts = n
	}
}

// WithDrainInterval sets the period of the safety-net drain started by
// StartAutoDrain.
func WithDrainInterval(d time.Duration) Option {
	return func(c *Client) {
		c.drainInterval = d
	}
}

// WithOnline sets the initial connectivity state.
func WithOnline(online bool) Option {
	return func(c *Client) {
		c.online.Store(online)
	}
}

// ValidateConfiguration validates the client configuration and returns an error if invalid
func (c *Client) ValidateConfiguration() error {
	var result *multierror.Error

	for _, msg := range c.validateTransportConfig() {
		result = multierror.Append(result, fmt.Errorf("%s", msg))
	}
	for _, msg := range c.validateRetryConfig() {
		result = multierror.Append(result, fmt.Errorf("%s", msg))
	}
	for _, msg := range c.validateCacheConfig() {
		result = multierror.Append(result, fmt.Errorf("%s", msg))
	}
	for _, msg := range c.validateCircuitBreakerConfig() {
		result = multierror.Append(result, fmt.Errorf("%s", msg))
	}
	for _, msg := range c.validateQueueConfig() {
		result = multierror.Append(result, fmt.Errorf("%s", msg))
	}
	for _, msg := range c.validateDebugConfig() {
		result = multierror.Append(result, fmt.Errorf("%s", msg))
	}

	if err := result.ErrorOrNil(); err != nil {
		return &ClientError{
			Type:    ErrorTypeValidation,
			Message: "configuration validation failed",
			Cause:   err,
		}
	}

	return nil
}

func (c *Client) validateTransportConfig() []string {
	var errors []string

	if c.baseURL == "" {
		errors = append(errors, "baseURL must be set")
	}
	if c.httpClient == nil {
		errors = append(errors, "httpClient must not be nil")
	}
	if c.timeout <= 0 {
		errors = append(errors, "timeout must be positive")
	}
	for i, m := range c.middleware {
		if m == nil {
			errors = append(errors, fmt.Sprintf("middleware at index %d is nil", i))
		}
	}
	if c.store == nil {
		errors = append(errors, "store must not be nil")
	}

	return errors
}

// validateRetryConfig validates retry-related configuration
func (c *Client) validateRetryConfig() []string {
	var errors []string

	if c.retryDelay < 0 {
		errors = append(errors, "retryDelay must be non-negative")
	}
	if c.rateLimitRetries < 0 {
		errors = append(errors, "rateLimitRetries must be non-negative")
	}
	if c.networkRetries < 0 {
		errors = append(errors, "networkRetries must be non-negative")
	}
	if c.sleep == nil {
		errors = append(errors, "sleeper must not be nil")
	}
	if c.now == nil {
		errors = append(errors, "clock must not be nil")
	}

	return errors
}

// validateCacheConfig validates cache configuration
func (c *Client) validateCacheConfig() []string {
	var errors []string

	if !c.cacheDisabled && c.cacheTTL <= 0 {
		errors = append(errors, "cacheTTL must be positive when cache is enabled")
	}

	return errors
}

// validateCircuitBreakerConfig validates circuit breaker configuration
func (c *Client) validateCircuitBreakerConfig() []string {
	var errors []string

	if c.circuitBreaker != nil {
		if c.circuitBreaker.config.FailureThreshold <= 0 {
			errors = append(errors, "circuitBreaker FailureThreshold must be positive")
		}
		if c.circuitBreaker.config.RecoveryTimeout <= 0 {
			errors = append(errors, "circuitBreaker RecoveryTimeout must be positive")
		}
		if c.circuitBreaker.config.SuccessThreshold <= 0 {
			errors = append(errors, "circuitBreaker SuccessThreshold must be positive")
		}
	}

	return errors
}

func (c *Client) validateQueueConfig() []string {
	var errors []string

	if c.maxReplayAttempts <= 0 {
		errors = append(errors, "maxReplayAttempts must be positive")
	}
	if c.drainInterval <= 0 {
		errors = append(errors, "drainInterval must be positive")
	}

	return errors
}

// validateDebugConfig validates debug configuration
func (c *Client) validateDebugConfig() []string {
	var errors []string

	if c.debug != nil && c.debug.Enabled && c.debug.RequestIDGen == nil {
		errors = append(errors, "debug RequestIDGen must be set when debug is enabled")
	}

	return errors
}
