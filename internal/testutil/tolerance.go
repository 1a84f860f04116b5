package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t at the first sample where got and want
// differ by more than eps, or if their lengths differ. eps 0 demands
// bit-exact samples.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > eps {
			t.Fatalf("sample %d: got %v, want %v (diff %v > %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf sample. Feedback paths that
// blow up show up here long before they reach a level check.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("sample %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute sample difference of a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}
	return maxDiff, nil
}

// DBDiff returns the distance between two levels in dB. Equal infinities
// (silence against silence) are 0 apart; NaN is infinitely far from anything.
func DBDiff(a, b float64) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.Inf(1)
	}
	if a == b {
		return 0
	}
	return math.Abs(a - b)
}

// RequireDBNear fails t if the level got is more than tolDB away from want.
func RequireDBNear(t *testing.T, name string, got, want, tolDB float64) {
	t.Helper()
	if d := DBDiff(got, want); d > tolDB {
		t.Fatalf("%s = %.6f dB, want %.6f dB (off by %.3g dB)", name, got, want, d)
	}
}
