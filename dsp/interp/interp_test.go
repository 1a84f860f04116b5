package interp

import "testing"

func TestHermite4IdentityOnLinearRamp(t *testing.T) {
	xm1, x0, x1, x2 := -1.0, 0.0, 1.0, 2.0
	for _, tc := range []struct {
		t float64
		w float64
	}{
		{t: 0.0, w: 0.0},
		{t: 0.25, w: 0.25},
		{t: 0.5, w: 0.5},
		{t: 1.0, w: 1.0},
	} {
		got := Hermite4(tc.t, xm1, x0, x1, x2)
		if diff := got - tc.w; diff < -1e-12 || diff > 1e-12 {
			t.Fatalf("t=%v: got %v want %v", tc.t, got, tc.w)
		}
	}
}

func TestLinear2(t *testing.T) {
	for _, tc := range []struct {
		t, x0, x1, w float64
	}{
		{t: 0, x0: 2, x1: 4, w: 2},
		{t: 0.25, x0: 2, x1: 4, w: 2.5},
		{t: 1, x0: 2, x1: 4, w: 4},
		{t: 0.5, x0: 1, x1: -1, w: 0},
	} {
		if got := Linear2(tc.t, tc.x0, tc.x1); got != tc.w {
			t.Fatalf("Linear2(%v, %v, %v) = %v, want %v", tc.t, tc.x0, tc.x1, got, tc.w)
		}
	}
}

func TestModeString(t *testing.T) {
	if Linear.String() != "linear" || Hermite.String() != "hermite" {
		t.Fatalf("unexpected names: %q %q", Linear, Hermite)
	}
	if Mode(7).Valid() {
		t.Fatal("Mode(7) reported valid")
	}
	if Mode(7).String() != "unknown" {
		t.Fatalf("Mode(7).String() = %q", Mode(7).String())
	}
}

func TestParseMode(t *testing.T) {
	for name, want := range map[string]Mode{"linear": Linear, "Hermite": Hermite, " cubic ": Hermite} {
		got, err := ParseMode(name)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseMode("sinc"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
