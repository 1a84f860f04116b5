package live

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-delay/dsp/core"
	"github.com/cwbudde/algo-delay/dsp/effects/stereodelay"
)

// ErrNoAudio is returned by NewPlayer in builds without an audio backend.
var ErrNoAudio = errors.New("live: built without audio output (headless)")

const (
	streamChannels  = 2
	bytesPerSample  = 4
	bytesPerFrame   = streamChannels * bytesPerSample
	maxOutputSample = 1.0
)

// Stream renders a Source through a Processor as interleaved stereo
// float32 little-endian PCM. Read is meant to be called from the audio
// device's goroutine; parameters and meters may be accessed concurrently.
type Stream struct {
	src         Source
	proc        *stereodelay.Processor
	maxBlock    int
	left, right []float64
	chunk       [][]float64
}

// NewStream wraps a prepared processor. Blocks never exceed the processor's
// maximum block size.
func NewStream(src Source, proc *stereodelay.Processor) (*Stream, error) {
	if src == nil {
		return nil, fmt.Errorf("live: stream needs a source")
	}
	if proc == nil || !proc.Prepared() {
		return nil, fmt.Errorf("live: stream needs a prepared processor")
	}
	n := proc.MaxBlockSize()
	return &Stream{
		src:      src,
		proc:     proc,
		maxBlock: n,
		left:     core.EnsureLen(nil, n),
		right:    core.EnsureLen(nil, n),
		chunk:    make([][]float64, streamChannels),
	}, nil
}

// Read fills p with whole frames. Trailing bytes that do not form a frame
// are left untouched.
func (s *Stream) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame

	off := 0
	for frames > 0 {
		n := min(frames, s.maxBlock)
		s.left = core.EnsureLen(s.left, n)
		s.right = core.EnsureLen(s.right, n)
		left, right := s.left, s.right
		s.src.Fill(left, right)
		s.chunk[0], s.chunk[1] = left, right
		s.proc.Process(s.chunk)

		for i := range n {
			putSample(p[off:], left[i])
			putSample(p[off+bytesPerSample:], right[i])
			off += bytesPerFrame
		}
		frames -= n
	}
	return off, nil
}

func putSample(b []byte, x float64) {
	if math.IsNaN(x) {
		x = 0
	}
	x = math.Max(-maxOutputSample, math.Min(maxOutputSample, x))
	binary.LittleEndian.PutUint32(b, math.Float32bits(float32(x)))
}
