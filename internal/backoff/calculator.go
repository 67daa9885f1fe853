package backoff

import (
	"time"
)

// Calculator binds a Strategy to a base delay and an upper bound.
type Calculator struct {
	strategy Strategy
	base     time.Duration
	max      time.Duration
}

// NewCalculator creates a calculator. A nil strategy means LinearStrategy.
func NewCalculator(strategy Strategy, base, max time.Duration) *Calculator {
	if strategy == nil {
		strategy = LinearStrategy{}
	}
	return &Calculator{
		strategy: strategy,
		base:     base,
		max:      max,
	}
}

// Delay returns the wait before the retry following attempt.
func (c *Calculator) Delay(attempt int) time.Duration {
	return c.strategy.Calculate(attempt, c.base, c.max)
}

// Base returns the configured base delay.
func (c *Calculator) Base() time.Duration {
	return c.base
}

// Strategy returns the strategy in use.
func (c *Calculator) Strategy() Strategy {
	return c.strategy
}
