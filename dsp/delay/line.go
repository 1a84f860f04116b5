package delay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-delay/dsp/core"
	"github.com/cwbudde/algo-delay/dsp/interp"
)

// Line is a circular delay line.
type Line struct {
	buffer   []float64
	writePos int
	mode     interp.Mode
}

// Option configures a Line.
type Option func(*Line)

// WithMode selects the fractional interpolation algorithm. Unknown modes are
// ignored.
func WithMode(mode interp.Mode) Option {
	return func(d *Line) {
		if mode.Valid() {
			d.mode = mode
		}
	}
}

// New returns a delay line of fixed size.
func New(size int, opts ...Option) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("delay size must be > 0: %d", size)
	}
	d := &Line{buffer: make([]float64, size), mode: interp.Linear}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// Capacity returns the number of slots needed to address maxDelaySeconds at
// sampleRate with the given interpolation mode.
func Capacity(sampleRate, maxDelaySeconds float64, mode interp.Mode) int {
	n := int(math.Ceil(sampleRate * maxDelaySeconds))
	return n + guardSlots(mode)
}

// Prepare sizes the line for sampleRate and maxDelaySeconds and clears it.
// The backing array is reused when the capacity does not change.
// maxBlockSize is accepted for symmetry with other processors and must be > 0.
func (d *Line) Prepare(sampleRate float64, maxBlockSize int, maxDelaySeconds float64) error {
	if !core.ValidSampleRate(sampleRate) {
		return fmt.Errorf("delay sample rate must be > 0: %f", sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("delay block size must be > 0: %d", maxBlockSize)
	}
	if maxDelaySeconds <= 0 || math.IsNaN(maxDelaySeconds) || math.IsInf(maxDelaySeconds, 0) {
		return fmt.Errorf("delay max time must be > 0: %f", maxDelaySeconds)
	}

	size := Capacity(sampleRate, maxDelaySeconds, d.mode)
	if size != len(d.buffer) {
		d.buffer = make([]float64, size)
		d.writePos = 0
		return nil
	}
	d.Reset()
	return nil
}

// Len returns internal buffer size.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Mode returns the interpolation mode.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// MaxDelay returns the longest delay in samples that Pop can address.
func (d *Line) MaxDelay() float64 {
	return float64(len(d.buffer) - guardSlots(d.mode))
}

// Push writes one sample at the cursor and advances it.
func (d *Line) Push(sample float64) {
	if len(d.buffer) == 0 {
		return
	}
	d.buffer[d.writePos] = sample
	d.writePos++
	if d.writePos >= len(d.buffer) {
		d.writePos = 0
	}
}

// Write writes one sample. It is an alias of Push.
func (d *Line) Write(sample float64) {
	d.Push(sample)
}

// Read reads an integer delay in samples. Read(1) returns the most recently
// pushed sample.
func (d *Line) Read(delay int) float64 {
	size := len(d.buffer)
	if size == 0 {
		return 0
	}
	readPos := (d.writePos - delay) % size
	if readPos < 0 {
		readPos += size
	}
	return d.buffer[readPos]
}

// Pop returns the sample delaySamples behind the write cursor, interpolating
// fractional delays. The delay is clamped to [1, MaxDelay].
func (d *Line) Pop(delaySamples float64) float64 {
	if len(d.buffer) == 0 {
		return 0
	}

	maxDelay := d.MaxDelay()
	if delaySamples > maxDelay {
		delaySamples = maxDelay
	}
	if !(delaySamples >= 1) { // also catches NaN
		delaySamples = 1
	}

	p := int(delaySamples)
	t := delaySamples - float64(p)

	switch d.mode {
	case interp.Hermite:
		xm1 := d.Read(max(1, p-1))
		x0 := d.Read(p)
		x1 := d.Read(p + 1)
		x2 := d.Read(p + 2)
		return interp.Hermite4(t, xm1, x0, x1, x2)
	default:
		x0 := d.Read(p)
		if t == 0 {
			return x0
		}
		return interp.Linear2(t, x0, d.Read(p+1))
	}
}

// Reset clears line state.
func (d *Line) Reset() {
	core.Zero(d.buffer)
	d.writePos = 0
}

// Release drops the backing array. Push and Pop are no-ops until the next
// Prepare.
func (d *Line) Release() {
	d.buffer = nil
	d.writePos = 0
}

// guardSlots is the number of slots beyond the nominal delay that the
// interpolator reads.
func guardSlots(mode interp.Mode) int {
	if mode == interp.Hermite {
		return 3
	}
	return 1
}
