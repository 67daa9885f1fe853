package backoff

import "time"

// Strategy computes the wait before retry number attempt+1.
type Strategy interface {
	// Calculate returns the backoff duration for the given zero-based attempt.
	Calculate(attempt int, base, max time.Duration) time.Duration
}

// LinearStrategy waits base*(attempt+1), so the first retry waits base,
// the second 2*base and so on. Delays are strictly increasing until max.
type LinearStrategy struct{}

// Calculate implements Strategy.
func (LinearStrategy) Calculate(attempt int, base, max time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	// Prevent overflow by limiting attempt
	if attempt > 1000 {
		attempt = 1000
	}

	delay := base * time.Duration(attempt+1)
	if max > 0 && (delay < 0 || delay > max) {
		delay = max
	}
	return delay
}
