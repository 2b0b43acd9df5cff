package ratio

import (
	"math"
	"testing"
)

func TestSuggestExactMatchFirst(t *testing.T) {
	got := Suggest(1.5)
	if len(got) == 0 {
		t.Fatal("Suggest(1.5) returned nothing")
	}
	if got[0].Label != "3/2" {
		t.Errorf("best = %q, want 3/2", got[0].Label)
	}
	if got[0].ErrPercent != 0 {
		t.Errorf("best error = %f, want 0", got[0].ErrPercent)
	}
}

func TestSuggestSqrtPattern(t *testing.T) {
	got := Suggest(math.Sqrt2)
	if len(got) == 0 {
		t.Fatal("Suggest(sqrt 2) returned nothing")
	}
	if got[0].Label != "sqrt(2)" {
		t.Errorf("best = %q, want sqrt(2)", got[0].Label)
	}
}

func TestSuggestOrderedByError(t *testing.T) {
	got := Suggest(1.37)
	for i := 1; i < len(got); i++ {
		if got[i].ErrPercent < got[i-1].ErrPercent {
			t.Errorf("suggestions out of order at %d: %f < %f", i, got[i].ErrPercent, got[i-1].ErrPercent)
		}
	}
}

func TestSuggestDeduplicatesEquivalentFractions(t *testing.T) {
	got := Suggest(1.0)
	values := make(map[float64]bool)
	for _, s := range got {
		key := math.Round(s.Value*1e6) / 1e6
		if values[key] {
			t.Errorf("duplicate value %f (%q)", s.Value, s.Label)
		}
		values[key] = true
	}
	if got[0].Label != "1" {
		t.Errorf("best = %q, want 1", got[0].Label)
	}
}

func TestSuggestInvalidTargets(t *testing.T) {
	for _, target := range []float64{0, -2, math.Inf(1), math.NaN()} {
		if got := Suggest(target); got != nil {
			t.Errorf("Suggest(%f) = %v, want nil", target, got)
		}
	}
}
