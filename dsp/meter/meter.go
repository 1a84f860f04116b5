// Package meter computes block levels and publishes them as lock-free
// telemetry.
//
// Levels are written by the audio goroutine once per block and may be read
// from any other goroutine at any time. A reader sees either the previous or
// the current block's value, never a mix of the two.
package meter

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-delay/dsp/core"
)

// MaxChannels is the number of channels a Meter tracks.
const MaxChannels = 2

// RMS returns the root-mean-square amplitude of x. It returns 0 for an empty
// slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(vecmath.DotProduct(x, x) / float64(len(x)))
}

// Peak returns the largest absolute sample in x.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.MaxAbs(x)
}

// LevelDB returns the RMS level of x in dB, floored at core.MeterFloorDB.
func LevelDB(x []float64) float64 {
	return core.FloorDB(core.LinearToDB(RMS(x)), core.MeterFloorDB)
}

// Level is an atomically published dB value.
type Level struct {
	bits atomic.Uint64
}

// Load returns the published value. A Level that was never stored reads as
// 0 dB; Meter initialises its levels to the floor.
func (l *Level) Load() float64 {
	return math.Float64frombits(l.bits.Load())
}

// Store publishes db.
func (l *Level) Store(db float64) {
	l.bits.Store(math.Float64bits(db))
}

// Snapshot is a copy of all meter values.
type Snapshot struct {
	Input  [MaxChannels]float64
	Output [MaxChannels]float64
}

// Meter tracks input and output levels per channel.
type Meter struct {
	input  [MaxChannels]Level
	output [MaxChannels]Level
}

// New returns a Meter with all levels at the floor.
func New() *Meter {
	m := &Meter{}
	m.Reset()
	return m
}

// Reset sets all levels to the floor.
func (m *Meter) Reset() {
	for ch := 0; ch < MaxChannels; ch++ {
		m.input[ch].Store(core.MeterFloorDB)
		m.output[ch].Store(core.MeterFloorDB)
	}
}

// SetInput measures block as the input level of channel ch.
func (m *Meter) SetInput(ch int, block []float64) {
	m.input[clampChannel(ch)].Store(LevelDB(block))
}

// SetOutput measures block as the output level of channel ch.
func (m *Meter) SetOutput(ch int, block []float64) {
	m.output[clampChannel(ch)].Store(LevelDB(block))
}

// Input returns the last input level of channel ch in dB.
func (m *Meter) Input(ch int) float64 {
	return m.input[clampChannel(ch)].Load()
}

// Output returns the last output level of channel ch in dB.
func (m *Meter) Output(ch int) float64 {
	return m.output[clampChannel(ch)].Load()
}

// Snapshot copies the current levels. Channels are read one at a time.
func (m *Meter) Snapshot() Snapshot {
	var s Snapshot
	for ch := 0; ch < MaxChannels; ch++ {
		s.Input[ch] = m.input[ch].Load()
		s.Output[ch] = m.output[ch].Load()
	}
	return s
}

func clampChannel(ch int) int {
	if ch < 0 {
		return 0
	}
	if ch >= MaxChannels {
		return MaxChannels - 1
	}
	return ch
}
