package hatchclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Error types carried by ClientError.
const (
	ErrorTypeTimeout        = "TimeoutError"
	ErrorTypeSessionExpired = "SessionExpiredError"
	ErrorTypeRateLimited    = "RateLimitedError"
	ErrorTypeAPI            = "ApiError"
	ErrorTypeNetwork        = "NetworkError"
	ErrorTypeOfflineQueued  = "OfflineQueuedError"
	ErrorTypeValidation     = "ValidationError"
	ErrorTypeCircuitOpen    = "CircuitOpenError"
)

// Sentinel errors matched with errors.Is. Any ClientError of the same Type
// matches.
var (
	ErrTimeout        = &ClientError{Type: ErrorTypeTimeout, Message: MsgTimeout}
	ErrSessionExpired = &ClientError{Type: ErrorTypeSessionExpired, Message: MsgSessionExpired}
	ErrRateLimited    = &ClientError{Type: ErrorTypeRateLimited, Message: "rate limited"}
	ErrNetwork        = &ClientError{Type: ErrorTypeNetwork, Message: MsgNetworkError}
	ErrOfflineQueued  = &ClientError{Type: ErrorTypeOfflineQueued, Message: MsgOfflineQueued}
	ErrCircuitOpen    = &ClientError{Type: ErrorTypeCircuitOpen, Message: "circuit breaker is open"}
	ErrValidation     = &ClientError{Type: ErrorTypeValidation, Message: "invalid configuration"}
)

// ClientError describes a failed request.
type ClientError struct {
	Type       string
	Message    string
	StatusCode int
	// Data is the decoded error body returned by the backend, if any.
	Data       json.RawMessage
	Cause      error
	RequestID  string
	Method     string
	URL        string
	Endpoint   string
	Attempt    int
	MaxRetries int
	Timestamp  time.Time
	Duration   time.Duration
}

// IsQueued reports whether err means the request was accepted for delivery
// once connectivity returns. It is informational, not a failure.
func IsQueued(err error) bool {
	return errors.Is(err, ErrOfflineQueued)
}

// IsTransient determines if an error represents a transient failure that
// might succeed on retry: network errors, timeouts, 429, 5xx and an open
// circuit.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		return false
	}
	switch clientErr.Type {
	case ErrorTypeNetwork, ErrorTypeTimeout, ErrorTypeRateLimited, ErrorTypeCircuitOpen:
		return true
	case ErrorTypeAPI:
		return clientErr.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.StatusCode
	}
	return 0
}

// Message returns the user-facing message of err, falling back to fallback
// when err carries none.
func Message(err error, fallback string) string {
	var clientErr *ClientError
	if errors.As(err, &clientErr) && clientErr.Message != "" {
		return clientErr.Message
	}
	if err != nil && fallback == "" {
		return err.Error()
	}
	return fallback
}

// Error implements error interface.
func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}

	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Cause)
	}
	if e.RequestID != "" {
		msg = fmt.Sprintf("[%s] %s", e.RequestID, msg)
	}
	if e.Attempt > 0 {
		msg = fmt.Sprintf("%s (attempt %d/%d)", msg, e.Attempt, e.MaxRetries)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is compares error types for errors.Is.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}
	if targetErr, ok := target.(*ClientError); ok {
		return e.Type == targetErr.Type
	}
	return false
}

// DebugInfo renders a multi-line string with diagnostic context.
func (e *ClientError) DebugInfo() string {
	if e == nil {
		return "Error: <nil>"
	}
	info := fmt.Sprintf("Error Type: %s\n", e.Type)
	info += fmt.Sprintf("Message: %s\n", e.Message)
	if e.RequestID != "" {
		info += fmt.Sprintf("Request ID: %s\n", e.RequestID)
	}
	if e.Method != "" {
		info += fmt.Sprintf("Method: %s\n", e.Method)
	}
	if e.URL != "" {
		info += fmt.Sprintf("URL: %s\n", e.URL)
	}
	if e.StatusCode > 0 {
		info += fmt.Sprintf("Status Code: %d\n", e.StatusCode)
	}
	if e.Attempt > 0 {
		info += fmt.Sprintf("Attempt: %d/%d\n", e.Attempt, e.MaxRetries)
	}
	if !e.Timestamp.IsZero() {
		info += fmt.Sprintf("Timestamp: %s\n", e.Timestamp.Format(time.RFC3339))
	}
	if e.Duration > 0 {
		info += fmt.Sprintf("Duration: %v\n", e.Duration)
	}
	if len(e.Data) > 0 {
		info += fmt.Sprintf("Body: %s\n", e.Data)
	}
	if e.Cause != nil {
		info += fmt.Sprintf("Cause: %v\n", e.Cause)
	}
	return info
}
