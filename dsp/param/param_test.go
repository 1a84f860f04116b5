package param

import (
	"math"
	"sync"
	"testing"
)

func TestNewFloatValidation(t *testing.T) {
	cases := []struct {
		name          string
		id            string
		min, max, def float64
	}{
		{name: "empty id", id: "", min: 0, max: 1, def: 0},
		{name: "inverted range", id: "x", min: 1, max: 0, def: 0.5},
		{name: "empty range", id: "x", min: 1, max: 1, def: 1},
		{name: "default outside", id: "x", min: 0, max: 1, def: 2},
		{name: "nan default", id: "x", min: 0, max: 1, def: math.NaN()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewFloat(tc.id, "X", "", tc.min, tc.max, tc.def); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestFloatClampAndNormalize(t *testing.T) {
	p, err := NewFloat("time", "Time", "ms", 1, 3001, 51)
	if err != nil {
		t.Fatal(err)
	}

	if got := p.Set(5000); got != 3001 {
		t.Fatalf("Set(5000) = %v, want 3001", got)
	}
	if got := p.Set(-1); got != 1 {
		t.Fatalf("Set(-1) = %v, want 1", got)
	}
	p.Set(math.NaN())
	if p.Get() != 1 {
		t.Fatalf("NaN changed value to %v", p.Get())
	}

	p.SetNormalized(0.5)
	if p.Get() != 1501 {
		t.Fatalf("SetNormalized(0.5) = %v, want 1501", p.Get())
	}
	if p.Normalized() != 0.5 {
		t.Fatalf("Normalized = %v, want 0.5", p.Normalized())
	}
	if got := p.Add(-2000); got != 1 {
		t.Fatalf("Add(-2000) = %v, want 1", got)
	}

	p.Reset()
	if p.Get() != 51 {
		t.Fatalf("Reset = %v, want 51", p.Get())
	}
	if p.String() != "51.00 ms" {
		t.Fatalf("String = %q", p.String())
	}
}

func TestBool(t *testing.T) {
	p := NewBool("link", "Link", false)
	if p.Toggle() != true || !p.Get() {
		t.Fatal("Toggle did not switch on")
	}
	if p.String() != "on" || p.Normalized() != 1 {
		t.Fatalf("String=%q Normalized=%v", p.String(), p.Normalized())
	}
	p.SetNormalized(0.2)
	if p.Get() {
		t.Fatal("SetNormalized(0.2) should switch off")
	}
	p.Set(true)
	p.Reset()
	if p.Get() {
		t.Fatal("Reset should restore off")
	}
}

func TestChoice(t *testing.T) {
	if _, err := NewChoice("c", "C", nil, 0); err == nil {
		t.Fatal("expected error for no options")
	}
	if _, err := NewChoice("c", "C", []string{"a"}, 1); err == nil {
		t.Fatal("expected error for default out of range")
	}

	p, err := NewChoice("c", "C", []string{"a", "b", "c"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	p.Set(10)
	if p.Index() != 2 {
		t.Fatalf("Set(10) index = %d, want 2", p.Index())
	}
	if p.Next() != 0 {
		t.Fatalf("Next should wrap to 0, got %d", p.Index())
	}
	if err := p.SetName("b"); err != nil || p.String() != "b" {
		t.Fatalf("SetName(b): err=%v value=%q", err, p.String())
	}
	if err := p.SetName("z"); err == nil {
		t.Fatal("expected error for unknown option")
	}
	p.SetNormalized(1)
	if p.Index() != 2 || p.Normalized() != 1 {
		t.Fatalf("SetNormalized(1) index = %d", p.Index())
	}
}

func TestSetDefaults(t *testing.T) {
	s := NewSet()
	if s.DelayMs(0) != DefaultDelayMs || s.DelayMs(1) != DefaultDelayMs {
		t.Fatalf("delay defaults = %v/%v", s.DelayMs(0), s.DelayMs(1))
	}
	if s.FeedbackAmount() != DefaultFeedback || s.DryWetAmount() != DefaultDryWet {
		t.Fatalf("feedback=%v dryWet=%v", s.FeedbackAmount(), s.DryWetAmount())
	}
	if s.Linked() || s.MixLawIndex() != 0 {
		t.Fatal("link and mix law should default to off/linear")
	}
}

func TestSetLookup(t *testing.T) {
	s := NewSet()

	p, ok := s.Lookup(IDFreq)
	if !ok || p != Param(s.FreqLeft) {
		t.Fatal("freq should alias freqLeft")
	}
	p.SetNormalized(1)
	if s.DelayMs(0) != MaxDelayMs {
		t.Fatalf("left delay = %v, want %v", s.DelayMs(0), MaxDelayMs)
	}
	if _, ok := s.Lookup("nope"); ok {
		t.Fatal("unexpected parameter")
	}

	want := []string{IDDryWet, IDFeedback, IDFreq, IDFreqLeft, IDFreqRight, IDLink, IDMixLaw}
	got := s.IDs()
	if len(got) != len(want) {
		t.Fatalf("IDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDs = %v, want %v", got, want)
		}
	}

	s.Reset()
	if s.DelayMs(0) != DefaultDelayMs {
		t.Fatalf("after Reset left delay = %v", s.DelayMs(0))
	}
}

func TestSetConcurrentReadWrite(t *testing.T) {
	s := NewSet()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			s.FreqLeft.Set(float64(1 + i%3000))
			s.Link.Toggle()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			v := s.DelayMs(0)
			if v < MinDelayMs || v > MaxDelayMs {
				t.Errorf("torn read %v", v)
				return
			}
			_ = s.Linked()
		}
	}()
	wg.Wait()
}
