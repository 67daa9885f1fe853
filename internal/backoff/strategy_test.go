package backoff

import (
	"testing"
	"time"
)

func TestLinearStrategy(t *testing.T) {
	strategy := LinearStrategy{}

	tests := []struct {
		name     string
		attempt  int
		base     time.Duration
		max      time.Duration
		expected time.Duration
	}{
		{"first retry", 0, time.Second, 0, time.Second},
		{"second retry", 1, time.Second, 0, 2 * time.Second},
		{"third retry", 2, time.Second, 0, 3 * time.Second},
		{"negative attempt", -4, time.Second, 0, time.Second},
		{"capped", 9, time.Second, 5 * time.Second, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := strategy.Calculate(tt.attempt, tt.base, tt.max)
			if result != tt.expected {
				t.Errorf("Calculate(%d, %v, %v) = %v, want %v",
					tt.attempt, tt.base, tt.max, result, tt.expected)
			}
		})
	}
}

func TestLinearStrategyStrictlyIncreasing(t *testing.T) {
	strategy := LinearStrategy{}
	prev := time.Duration(0)
	for attempt := 0; attempt < 10; attempt++ {
		d := strategy.Calculate(attempt, 1000*time.Millisecond, 0)
		if d <= prev {
			t.Fatalf("attempt %d: delay %v not greater than %v", attempt, d, prev)
		}
		prev = d
	}
}
