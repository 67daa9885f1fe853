package hatchclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientErrorIsMatchesType(t *testing.T) {
	err := &ClientError{Type: ErrorTypeNetwork, Message: "dial tcp: refused"}

	assert.True(t, errors.Is(err, ErrNetwork))
	assert.False(t, errors.Is(err, ErrTimeout))
	assert.True(t, errors.Is(fmt.Errorf("wrapped: %w", err), ErrNetwork))
}

func TestClientErrorUnwrap(t *testing.T) {
	err := &ClientError{Type: ErrorTypeTimeout, Cause: context.DeadlineExceeded}
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	var nilErr *ClientError
	assert.Nil(t, nilErr.Unwrap())
	assert.Equal(t, "<nil>", nilErr.Error())
}

func TestClientErrorString(t *testing.T) {
	err := &ClientError{
		Type:       ErrorTypeAPI,
		Message:    "User not found",
		StatusCode: 404,
		RequestID:  "req-1",
		Attempt:    1,
		MaxRetries: 3,
	}
	assert.Equal(t, "[req-1] ApiError: User not found (status 404) (attempt 1/3)", err.Error())
}

func TestClientErrorDebugInfo(t *testing.T) {
	err := &ClientError{
		Type:      ErrorTypeRateLimited,
		Message:   "slow down",
		Method:    "GET",
		URL:       "http://localhost:8000/api/auth/profile",
		Data:      []byte(`{"message":"slow down"}`),
		Timestamp: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	info := err.DebugInfo()
	for _, want := range []string{
		"Error Type: RateLimitedError",
		"Method: GET",
		"URL: http://localhost:8000/api/auth/profile",
		"Timestamp: 2026-03-01T00:00:00Z",
		`Body: {"message":"slow down"}`,
	} {
		assert.True(t, strings.Contains(info, want), "missing %q in %s", want, info)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("x"), false},
		{"network", &ClientError{Type: ErrorTypeNetwork}, true},
		{"timeout", &ClientError{Type: ErrorTypeTimeout}, true},
		{"rate limited", &ClientError{Type: ErrorTypeRateLimited}, true},
		{"circuit open", &ClientError{Type: ErrorTypeCircuitOpen}, true},
		{"server error", &ClientError{Type: ErrorTypeAPI, StatusCode: 502}, true},
		{"client error", &ClientError{Type: ErrorTypeAPI, StatusCode: 400}, false},
		{"session expired", &ClientError{Type: ErrorTypeSessionExpired, StatusCode: 401}, false},
		{"queued", &ClientError{Type: ErrorTypeOfflineQueued}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "User not found", Message(&ClientError{Message: "User not found"}, "fallback"))
	assert.Equal(t, "fallback", Message(&ClientError{}, "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("raw"), "fallback"))
	assert.Equal(t, "raw", Message(errors.New("raw"), ""))
	assert.Equal(t, "", Message(nil, ""))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 429, StatusCode(fmt.Errorf("x: %w", &ClientError{StatusCode: 429})))
	assert.Equal(t, 0, StatusCode(errors.New("x")))
}

func TestIsQueued(t *testing.T) {
	assert.True(t, IsQueued(&ClientError{Type: ErrorTypeOfflineQueued}))
	assert.False(t, IsQueued(&ClientError{Type: ErrorTypeNetwork}))
	assert.False(t, IsQueued(nil))
}
