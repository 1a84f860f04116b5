package live

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/cwbudde/algo-delay/dsp/effects/stereodelay"
	"github.com/cwbudde/algo-delay/dsp/param"
	"github.com/cwbudde/algo-delay/internal/testutil"
)

// impulseSource emits one left impulse at the first sample.
type impulseSource struct{ done bool }

func (s *impulseSource) Fill(left, right []float64) {
	for i := range left {
		left[i], right[i] = 0, 0
	}
	if !s.done && len(left) > 0 {
		left[0] = 1
		s.done = true
	}
}

func newTestStream(t *testing.T, src Source, blockSize int) *Stream {
	t.Helper()
	proc, err := stereodelay.New(param.NewSet())
	if err != nil {
		t.Fatal(err)
	}
	if err := proc.Prepare(48000, blockSize); err != nil {
		t.Fatal(err)
	}
	s, err := NewStream(src, proc)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func decode(p []byte) (left, right []float64) {
	interleaved := make([]float64, len(p)/bytesPerSample)
	for i := range interleaved {
		interleaved[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerSample:])))
	}
	ch := testutil.Deinterleave(interleaved, streamChannels)
	return ch[0], ch[1]
}

func TestNewStreamValidation(t *testing.T) {
	proc, err := stereodelay.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewStream(&impulseSource{}, proc); err == nil {
		t.Fatal("expected error for unprepared processor")
	}
	if err := proc.Prepare(48000, 64); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStream(nil, proc); err == nil {
		t.Fatal("expected error for nil source")
	}
}

func TestStreamReadWholeFrames(t *testing.T) {
	s := newTestStream(t, &impulseSource{}, 64)

	p := make([]byte, 1000*bytesPerFrame+3)
	n, err := s.Read(p)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1000*bytesPerFrame {
		t.Fatalf("Read() = %d bytes, want %d", n, 1000*bytesPerFrame)
	}

	left, right := decode(p[:n])
	// Default dry/wet is 0.5 and the default 50 ms delay has not come round yet.
	if left[0] != 0.5 {
		t.Fatalf("left[0] = %v, want 0.5", left[0])
	}
	for i := 1; i < len(left); i++ {
		if left[i] != 0 {
			t.Fatalf("left[%d] = %v, want 0", i, left[i])
		}
	}
	for i, x := range right {
		if x != 0 {
			t.Fatalf("right[%d] = %v, want 0", i, x)
		}
	}
}

func TestStreamUpdatesMeters(t *testing.T) {
	src, err := NewSineBurst(48000, 1000, 1, 0, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	s := newTestStream(t, src, 480)

	p := make([]byte, 4800*bytesPerFrame)
	if _, err := s.Read(p); err != nil {
		t.Fatal(err)
	}
	if lvl := s.proc.InputLevel(0); lvl <= -60 {
		t.Fatalf("input level = %v, want above the floor", lvl)
	}
}

func TestPutSampleClamps(t *testing.T) {
	b := make([]byte, 4)
	for _, tc := range []struct{ in, want float64 }{
		{2, 1},
		{-3, -1},
		{math.NaN(), 0},
		{0.25, 0.25},
	} {
		putSample(b, tc.in)
		if got := math.Float32frombits(binary.LittleEndian.Uint32(b)); float64(got) != tc.want {
			t.Errorf("putSample(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStreamReadReusesBlocks(t *testing.T) {
	s := newTestStream(t, &impulseSource{}, 64)
	left := &s.left[:cap(s.left)][0]

	p := make([]byte, 150*bytesPerFrame)
	allocs := testing.AllocsPerRun(20, func() {
		if _, err := s.Read(p); err != nil {
			t.Fatal(err)
		}
	})
	if allocs != 0 {
		t.Fatalf("Read allocated %v times per call, want 0", allocs)
	}
	if &s.left[:cap(s.left)][0] != left {
		t.Fatal("Read replaced the block buffer")
	}
	if cap(s.left) != 64 || cap(s.right) != 64 {
		t.Fatalf("block capacity = %d/%d, want 64", cap(s.left), cap(s.right))
	}
}
