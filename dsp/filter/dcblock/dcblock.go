// Package dcblock provides a first-order high-pass filter for removing DC and
// sub-audio drift from feedback paths.
package dcblock

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-delay/dsp/core"
)

// DefaultCutoffHz is the cutoff used by feedback delays.
const DefaultCutoffHz = 200.0

// Coefficients of a first-order section. a0 is normalized to 1.
//
//	y[n] = B0*x[n] + B1*x[n-1] - A1*y[n-1]
type Coefficients struct {
	B0, B1 float64
	A1     float64
}

// Design returns a bilinear-transform first-order Butterworth high-pass.
// A cutoff of 0 returns a pass-through section.
func Design(sampleRate, cutoffHz float64) (Coefficients, error) {
	if !core.ValidSampleRate(sampleRate) {
		return Coefficients{}, fmt.Errorf("dc blocker sample rate must be > 0: %f", sampleRate)
	}
	if cutoffHz == 0 {
		return Coefficients{B0: 1}, nil
	}
	if cutoffHz < 0 || cutoffHz >= sampleRate/2 || math.IsNaN(cutoffHz) {
		return Coefficients{}, fmt.Errorf("dc blocker cutoff must be in [0, %g): %f", sampleRate/2, cutoffHz)
	}

	k := math.Tan(math.Pi * cutoffHz / sampleRate)
	norm := 1 / (1 + k)

	return Coefficients{
		B0: norm,
		B1: -norm,
		A1: (k - 1) * norm,
	}, nil
}

// Response computes the complex frequency response H(e^jw) at freqHz.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate
	ejw := cmplx.Exp(complex(0, -w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*ejw
	den := complex(1, 0) + complex(c.A1, 0)*ejw
	return num / den
}

// MagnitudeDB returns 20*log10(|H(f)|).
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return core.LinearToDB(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// Filter is a first-order high-pass with persistent state.
type Filter struct {
	Coefficients

	cutoff float64
	x1, y1 float64
}

// New returns a filter designed for sampleRate and cutoffHz.
func New(sampleRate, cutoffHz float64) (*Filter, error) {
	f := &Filter{cutoff: cutoffHz}
	if err := f.Prepare(sampleRate); err != nil {
		return nil, err
	}
	return f, nil
}

// Prepare redesigns the coefficients for sampleRate and clears the state.
func (f *Filter) Prepare(sampleRate float64) error {
	c, err := Design(sampleRate, f.cutoff)
	if err != nil {
		return err
	}
	f.Coefficients = c
	f.Reset()
	return nil
}

// Cutoff returns the cutoff frequency in Hz.
func (f *Filter) Cutoff() float64 { return f.cutoff }

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	y := f.B0*x + f.B1*f.x1 - f.A1*f.y1
	f.x1 = x
	f.y1 = core.FlushDenormals(y)
	return y
}

// ProcessBlock filters buf in place.
func (f *Filter) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = f.ProcessSample(x)
	}
}

// Reset clears the filter history.
func (f *Filter) Reset() {
	f.x1 = 0
	f.y1 = 0
}
