package hatchclient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestBreaker(clock *fakeClock, config CircuitBreakerConfig) *CircuitBreaker {
	cb := NewCircuitBreaker(config)
	cb.now = clock.Now
	return cb
}

func TestNewCircuitBreakerDefaults(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{})

	assert.Equal(t, CircuitBreakerConfig{
		FailureThreshold: 5,
		RecoveryTimeout:  60 * time.Second,
		SuccessThreshold: 2,
	}, cb.Config())
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerOpensAfterThreshold(t *testing.T) {
	clock := newFakeClock()
	cb := newTestBreaker(clock, CircuitBreakerConfig{FailureThreshold: 3, RecoveryTimeout: 10 * time.Second, SuccessThreshold: 1})

	for i := 0; i < 2; i++ {
		cb.RecordFailure()
		assert.True(t, cb.Allow())
	}
	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitBreakerSuccessResetsFailures(t *testing.T) {
	clock := newFakeClock()
	cb := newTestBreaker(clock, CircuitBreakerConfig{FailureThreshold: 2, RecoveryTimeout: time.Second, SuccessThreshold: 1})

	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerHalfOpenRecovery(t *testing.T) {
	clock := newFakeClock()
	cb := newTestBreaker(clock, CircuitBreakerConfig{FailureThreshold: 1, RecoveryTimeout: 10 * time.Second, SuccessThreshold: 2})

	cb.RecordFailure()
	assert.False(t, cb.Allow())

	clock.Advance(10 * time.Second)
	assert.True(t, cb.Allow())
	assert.Equal(t, StateHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, StateHalfOpen, cb.State())
	cb.RecordSuccess()
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreakerHalfOpenFailureReopens(t *testing.T) {
	clock := newFakeClock()
	cb := newTestBreaker(clock, CircuitBreakerConfig{FailureThreshold: 1, RecoveryTimeout: 10 * time.Second, SuccessThreshold: 2})

	cb.RecordFailure()
	clock.Advance(10 * time.Second)
	assert.True(t, cb.Allow())

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(9).String())
}
