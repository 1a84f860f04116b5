package echo

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-delay/dsp/effects/stereodelay"
	"github.com/cwbudde/algo-delay/internal/testutil"
)

// makeEchoTrain returns an impulse response with echoes every period samples
// whose amplitude shrinks by ratio per echo.
func makeEchoTrain(length, period int, ratio float64) []float64 {
	ir := make([]float64, length)
	amp := ratio
	for i := period; i < length; i += period {
		ir[i] = amp
		amp *= ratio
	}
	return ir
}

func TestAnalyzeMeasuredDecay(t *testing.T) {
	ir := makeEchoTrain(2000, 100, 0.4)

	res, err := NewAnalyzer(48000, 100).Analyze(ir)
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Echoes) != 15 {
		t.Fatalf("found %d echoes, want 15", len(res.Echoes))
	}
	for k, e := range res.Echoes {
		if e.Index != (k+1)*100 {
			t.Fatalf("echo %d at %d, want %d", k, e.Index, (k+1)*100)
		}
	}
	testutil.RequireDBNear(t, "DecayDB", res.DecayDB, 20*math.Log10(0.4), 1e-9)
	if !res.Measured || res.EchoesTo60 != 8 {
		t.Errorf("EchoesTo60 = %d (measured %v), want 8 measured", res.EchoesTo60, res.Measured)
	}
	if want := 800.0 / 48000; math.Abs(res.TimeTo60-want) > 1e-12 {
		t.Errorf("TimeTo60 = %v, want %v", res.TimeTo60, want)
	}
	if !res.Monotonic() {
		t.Error("expected monotonic decay")
	}
}

func TestAnalyzeExtrapolatedDecay(t *testing.T) {
	ir := makeEchoTrain(450, 100, 0.4)

	res, err := NewAnalyzer(48000, 100).Analyze(ir)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Echoes) != 4 {
		t.Fatalf("found %d echoes, want 4", len(res.Echoes))
	}
	if res.Measured || res.EchoesTo60 != 8 {
		t.Errorf("EchoesTo60 = %d (measured %v), want 8 extrapolated", res.EchoesTo60, res.Measured)
	}
}

func TestAnalyzeSustainedTrain(t *testing.T) {
	ir := makeEchoTrain(1000, 100, 1)

	res, err := NewAnalyzer(48000, 100).Analyze(ir)
	if err != nil {
		t.Fatal(err)
	}
	if res.EchoesTo60 != -1 || !math.IsInf(res.TimeTo60, 1) {
		t.Errorf("EchoesTo60 = %d, TimeTo60 = %v, want -1 and +Inf", res.EchoesTo60, res.TimeTo60)
	}
	if res.Monotonic() {
		t.Error("constant train reported as monotonic")
	}
}

func TestAnalyzeSearchWindow(t *testing.T) {
	ir := make([]float64, 400)
	ir[101] = 0.5 // one sample late
	ir[199] = 0.25

	res, err := NewAnalyzer(48000, 100).Analyze(ir)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Echoes) != 2 || res.Echoes[0].Index != 101 || res.Echoes[1].Index != 199 {
		t.Fatalf("echoes = %+v, want peaks at 101 and 199", res.Echoes)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name string
		a    *Analyzer
		ir   []float64
		want error
	}{
		{"empty", NewAnalyzer(48000, 100), nil, ErrEmptyIR},
		{"sample rate", NewAnalyzer(0, 100), make([]float64, 10), ErrInvalidSampleRate},
		{"delay", NewAnalyzer(48000, 0.5), make([]float64, 10), ErrInvalidDelay},
		{"silent", NewAnalyzer(48000, 2), make([]float64, 10), ErrNoEcho},
	}
	for _, tc := range tests {
		if _, err := tc.a.Analyze(tc.ir); !errors.Is(err, tc.want) {
			t.Errorf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestImpulseResponse(t *testing.T) {
	calls := 0
	ir := ImpulseResponse(func(buf []float64) {
		calls++
		for i := range buf {
			buf[i] *= 2
		}
	}, 1000, 256)

	if calls != 4 {
		t.Fatalf("process called %d times, want 4", calls)
	}
	if ir[0] != 2 {
		t.Fatalf("ir[0] = %v, want 2", ir[0])
	}
	for i := 1; i < len(ir); i++ {
		if ir[i] != 0 {
			t.Fatalf("ir[%d] = %v, want 0", i, ir[i])
		}
	}
	if ImpulseResponse(func([]float64) {}, 0, 16) != nil {
		t.Fatal("expected nil for n = 0")
	}
}

func TestDelayVoiceEchoTrain(t *testing.T) {
	v, err := stereodelay.NewVoice()
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Prepare(48000, 512); err != nil {
		t.Fatal(err)
	}
	v.SetDelayMs(10)
	ctl := stereodelay.Controls{Feedback: 0.7, DryWet: 1, Law: stereodelay.MixLinear}

	ir := ImpulseResponse(func(buf []float64) { v.ProcessBlock(buf, ctl) }, 48000, 512)

	a := NewAnalyzer(48000, 480)
	a.FloorDB = -80
	res, err := a.Analyze(ir)
	if err != nil {
		t.Fatal(err)
	}
	if res.Echoes[0].Index != 480 {
		t.Fatalf("first echo at %d, want 480", res.Echoes[0].Index)
	}
	if !res.Monotonic() {
		t.Fatalf("echo train not monotonic: %+v", res.Echoes)
	}
	if !res.Measured || res.EchoesTo60 < 10 || res.EchoesTo60 > 30 {
		t.Fatalf("EchoesTo60 = %d (measured %v), want 10..30 measured", res.EchoesTo60, res.Measured)
	}
	if want := float64(res.EchoesTo60) * 0.01; math.Abs(res.TimeTo60-want) > 1e-12 {
		t.Fatalf("TimeTo60 = %v, want %v", res.TimeTo60, want)
	}
}
