package meter

import (
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-delay/dsp/core"
	"github.com/cwbudde/algo-delay/internal/testutil"
)

func TestRMS(t *testing.T) {
	if got := RMS(nil); got != 0 {
		t.Fatalf("RMS(nil) = %v, want 0", got)
	}
	if got := RMS(testutil.DC(-0.5, 64)); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("RMS(DC -0.5) = %v, want 0.5", got)
	}

	sine := testutil.DeterministicSine(1000, 48000, 1, 48000)
	if got := RMS(sine); math.Abs(got-1/math.Sqrt2) > 1e-6 {
		t.Fatalf("RMS(sine) = %v, want %v", got, 1/math.Sqrt2)
	}
}

func TestPeak(t *testing.T) {
	if got := Peak([]float64{0.1, -0.9, 0.3}); got != 0.9 {
		t.Fatalf("Peak = %v, want 0.9", got)
	}
	if got := Peak(nil); got != 0 {
		t.Fatalf("Peak(nil) = %v, want 0", got)
	}
}

func TestLevelDBFloor(t *testing.T) {
	if got := LevelDB(make([]float64, 128)); got != core.MeterFloorDB {
		t.Fatalf("silence = %v dB, want %v", got, core.MeterFloorDB)
	}
	if got := LevelDB(testutil.DC(1e-5, 128)); got != core.MeterFloorDB {
		t.Fatalf("-100 dB signal = %v dB, want floor", got)
	}
	testutil.RequireDBNear(t, "LevelDB(0.5)", LevelDB(testutil.DC(0.5, 128)), core.LinearToDB(0.5), 1e-9)
}

func TestMeterChannelsAndClamping(t *testing.T) {
	m := New()
	snap := m.Snapshot()
	for ch := 0; ch < MaxChannels; ch++ {
		if snap.Input[ch] != core.MeterFloorDB || snap.Output[ch] != core.MeterFloorDB {
			t.Fatalf("initial snapshot %+v not at floor", snap)
		}
	}

	m.SetInput(0, testutil.DC(1, 16))
	m.SetOutput(5, testutil.DC(0.5, 16))

	if got := m.Input(0); got != 0 {
		t.Fatalf("Input(0) = %v, want 0 dB", got)
	}
	if got := m.Input(-3); got != 0 {
		t.Fatalf("Input(-3) should clamp to channel 0, got %v", got)
	}
	testutil.RequireDBNear(t, "Output(1)", m.Output(1), core.LinearToDB(0.5), 1e-9)

	m.Reset()
	if m.Input(0) != core.MeterFloorDB {
		t.Fatal("Reset did not restore floor")
	}
}

func TestMeterConcurrentSnapshot(t *testing.T) {
	m := New()
	loud := testutil.DC(1, 64)
	quiet := make([]float64, 64)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 5000; i++ {
			if i%2 == 0 {
				m.SetInput(0, loud)
			} else {
				m.SetInput(0, quiet)
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 5000; i++ {
			v := m.Snapshot().Input[0]
			if v != 0 && v != core.MeterFloorDB {
				t.Errorf("torn level %v", v)
				return
			}
		}
	}()
	wg.Wait()
}
