package backoff

import (
	"testing"
	"time"
)

func TestCalculatorDefaultsToLinear(t *testing.T) {
	calc := NewCalculator(nil, time.Second, 0)

	if _, ok := calc.Strategy().(LinearStrategy); !ok {
		t.Fatalf("Strategy() returned %T, want LinearStrategy", calc.Strategy())
	}
	if got := calc.Delay(2); got != 3*time.Second {
		t.Errorf("Delay(2) = %v, want 3s", got)
	}
	if calc.Base() != time.Second {
		t.Errorf("Base() = %v, want 1s", calc.Base())
	}
}

func TestCalculatorRespectsMax(t *testing.T) {
	calc := NewCalculator(LinearStrategy{}, time.Second, 2500*time.Millisecond)

	if got := calc.Delay(1); got != 2*time.Second {
		t.Errorf("Delay(1) = %v, want 2s", got)
	}
	if got := calc.Delay(4); got != 2500*time.Millisecond {
		t.Errorf("Delay(4) = %v, want 2.5s", got)
	}
}

func BenchmarkCalculatorLinear(b *testing.B) {
	calc := NewCalculator(LinearStrategy{}, time.Second, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		calc.Delay(i % 10)
	}
}
