package hatchclient

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Params are query-string parameters. Empty values are skipped.
type Params map[string]string

// RequestOptions customises a single Request call.
type RequestOptions struct {
	// Params are encoded into the query string in sorted key order.
	Params Params
	// Body is encoded as JSON. json.RawMessage and []byte are sent as is.
	Body any
	// Header overrides the standard headers for this call.
	Header http.Header
	// NoCache bypasses the response cache for reads.
	NoCache bool
	// Invalidate lists extra cache key substrings to clear after a
	// successful mutation.
	Invalidate []string
}

// Middleware wraps the transport used for every attempt.
type Middleware func(req *http.Request, next RoundTripper) (*http.Response, error)

// RoundTripper represents the HTTP transport interface
type RoundTripper interface {
	RoundTrip(*http.Request) (*http.Response, error)
}

// RoundTripperFunc is a helper type for middleware
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// PendingRequest is a request captured while offline, replayed by Drain.
type PendingRequest struct {
	ID       string          `json:"id"`
	Method   string          `json:"method"`
	Path     string          `json:"path"`
	URL      string          `json:"url"`
	Header   http.Header     `json:"header,omitempty"`
	Body     json.RawMessage `json:"body,omitempty"`
	Attempts int             `json:"attempts"`
	QueuedAt time.Time       `json:"queued_at"`
}

// CircuitBreakerConfig holds circuit breaker configuration
type CircuitBreakerConfig struct {
	FailureThreshold int
	RecoveryTimeout  time.Duration
	SuccessThreshold int
}

// CircuitState represents the state of the circuit breaker
type CircuitState int

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Logger is satisfied by hclog.Logger and most structured loggers.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// DebugConfig selects which parts of the request lifecycle are logged at
// debug level.
type DebugConfig struct {
	Enabled      bool
	LogRequests  bool
	LogRetries   bool
	LogCache     bool
	LogCircuit   bool
	LogQueue     bool
	RequestIDGen func() string
}

// Option represents a configuration option
type Option func(*Client)

// SessionExpiredHandler is called after a 401 clears the session, in place
// of redirecting to the login page.
type SessionExpiredHandler func()

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error
