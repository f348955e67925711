package rank

import (
	"math"
	"testing"
)

func TestBeforeAfterStrict(t *testing.T) {
	if !(Before(100) < 100) {
		t.Fatalf("Before(100) = %v, want < 100", Before(100))
	}
	if !(After(100) > 100) {
		t.Fatalf("After(100) = %v, want > 100", After(100))
	}
	if Initial() <= 0 {
		t.Fatalf("Initial() = %v, want > 0", Initial())
	}
}

func TestBetweenMidpoint(t *testing.T) {
	r, ok := Between(100, 200)
	if !ok {
		t.Fatalf("Between(100, 200) not ok")
	}
	if !(100 < r && r < 200) {
		t.Fatalf("Between(100, 200) = %v, want strictly between", r)
	}
}

func TestBetweenInvertedBounds(t *testing.T) {
	if _, ok := Between(200, 100); ok {
		t.Fatalf("Between(200, 100) should not be ok")
	}
	if _, ok := Between(100, 100); ok {
		t.Fatalf("Between(100, 100) should not be ok")
	}
}

func TestBetweenPrecisionExhausted(t *testing.T) {
	low := 100.0
	high := math.Nextafter(low, 200)
	// No representable float lies strictly between adjacent values.
	if r, ok := Between(low, high); ok {
		t.Fatalf("Between(%v, %v) = %v, expected precision exhaustion", low, high, r)
	}
}

func TestForIndexSpacing(t *testing.T) {
	for i := 0; i < 5; i++ {
		if got, want := ForIndex(i), float64(i+1)*Step; got != want {
			t.Fatalf("ForIndex(%d) = %v, want %v", i, got, want)
		}
	}
}
