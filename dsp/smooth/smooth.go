// Package smooth provides control-rate parameter smoothing for click-free
// automation.
package smooth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-delay/dsp/core"
)

// Linear slews a value towards its target in a fixed number of samples.
//
// Every call to SetTarget restarts the ramp, so any excursion completes within
// the configured ramp time regardless of its size. The zero value is a
// smoother with no ramp that jumps straight to each new target.
type Linear struct {
	current   float64
	target    float64
	step      float64
	countdown int
	rampLen   int
}

// NewLinear returns a smoother prepared for sampleRate and rampSeconds,
// starting at initial.
func NewLinear(sampleRate, rampSeconds, initial float64) (*Linear, error) {
	s := &Linear{}
	if err := s.Reset(sampleRate, rampSeconds); err != nil {
		return nil, err
	}
	s.SetCurrentAndTarget(initial)
	return s, nil
}

// Reset sets the ramp length to floor(rampSeconds*sampleRate) samples and
// finishes any ramp in progress at the current target.
func (s *Linear) Reset(sampleRate, rampSeconds float64) error {
	if !core.ValidSampleRate(sampleRate) {
		return fmt.Errorf("smoother sample rate must be > 0: %f", sampleRate)
	}
	if rampSeconds < 0 || math.IsNaN(rampSeconds) || math.IsInf(rampSeconds, 0) {
		return fmt.Errorf("smoother ramp must be >= 0: %f", rampSeconds)
	}
	s.rampLen = int(math.Floor(rampSeconds * sampleRate))
	s.SetCurrentAndTarget(s.target)
	return nil
}

// SetCurrentAndTarget jumps to value without ramping.
func (s *Linear) SetCurrentAndTarget(value float64) {
	s.current = value
	s.target = value
	s.step = 0
	s.countdown = 0
}

// SetTarget starts a ramp from the current value to target. Setting the
// target that is already being approached is a no-op.
func (s *Linear) SetTarget(target float64) {
	if target == s.target {
		return
	}
	if s.rampLen <= 0 {
		s.SetCurrentAndTarget(target)
		return
	}
	s.target = target
	s.countdown = s.rampLen
	s.step = (s.target - s.current) / float64(s.rampLen)
}

// Next advances one sample and returns the new value.
func (s *Linear) Next() float64 {
	if s.countdown <= 0 {
		return s.target
	}
	s.countdown--
	if s.countdown == 0 {
		s.current = s.target
	} else {
		s.current += s.step
	}
	return s.current
}

// Skip advances n samples at once and returns the resulting value.
func (s *Linear) Skip(n int) float64 {
	if n >= s.countdown {
		s.current = s.target
		s.countdown = 0
		return s.current
	}
	if n > 0 {
		s.current += s.step * float64(n)
		s.countdown -= n
	}
	return s.current
}

// Current returns the most recently produced value.
func (s *Linear) Current() float64 { return s.current }

// Target returns the value being approached.
func (s *Linear) Target() float64 { return s.target }

// IsSmoothing reports whether a ramp is in progress.
func (s *Linear) IsSmoothing() bool { return s.countdown > 0 }

// RampLength returns the ramp length in samples.
func (s *Linear) RampLength() int { return s.rampLen }
