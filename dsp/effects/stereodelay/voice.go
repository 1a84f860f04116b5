package stereodelay

import (
	"fmt"

	"github.com/cwbudde/algo-delay/dsp/core"
	"github.com/cwbudde/algo-delay/dsp/delay"
	"github.com/cwbudde/algo-delay/dsp/filter/dcblock"
	"github.com/cwbudde/algo-delay/dsp/param"
	"github.com/cwbudde/algo-delay/dsp/smooth"
)

// Controls are the per-sample control values a voice reads.
type Controls struct {
	Feedback float64 // gain of the wet signal fed back into the line
	DryWet   float64 // 0 = dry only, 1 = wet only
	Law      MixLaw
}

// Voice is one channel of the delay.
type Voice struct {
	cfg        config
	line       *delay.Line
	dc         *dcblock.Filter
	ms         smooth.Linear
	sampleRate float64
	prepared   bool
}

// NewVoice returns an unprepared voice. WithChannels is ignored.
func NewVoice(opts ...Option) (*Voice, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	return newVoice(cfg)
}

func newVoice(cfg config) (*Voice, error) {
	line, err := delay.New(1, delay.WithMode(cfg.interpolation))
	if err != nil {
		return nil, err
	}
	v := &Voice{cfg: cfg, line: line}
	v.ms.SetCurrentAndTarget(param.DefaultDelayMs)
	return v, nil
}

// Prepare sizes the line for sampleRate, designs the DC blocker and clears
// all state. The smoothed delay jumps to its current target.
func (v *Voice) Prepare(sampleRate float64, maxBlockSize int) error {
	if err := v.line.Prepare(sampleRate, maxBlockSize, v.cfg.maxDelaySeconds); err != nil {
		return fmt.Errorf("stereodelay voice: %w", err)
	}
	if v.dc == nil {
		dc, err := dcblock.New(sampleRate, v.cfg.dcCutoffHz)
		if err != nil {
			return fmt.Errorf("stereodelay voice: %w", err)
		}
		v.dc = dc
	} else if err := v.dc.Prepare(sampleRate); err != nil {
		return fmt.Errorf("stereodelay voice: %w", err)
	}
	if err := v.ms.Reset(sampleRate, v.cfg.rampSeconds); err != nil {
		return fmt.Errorf("stereodelay voice: %w", err)
	}
	v.sampleRate = sampleRate
	v.prepared = true
	return nil
}

// Prepared reports whether Prepare succeeded since the last Release.
func (v *Voice) Prepared() bool { return v.prepared }

// SetTargetDelayMs starts a ramp towards ms.
func (v *Voice) SetTargetDelayMs(ms float64) {
	v.ms.SetTarget(ms)
}

// SetDelayMs jumps to ms without ramping.
func (v *Voice) SetDelayMs(ms float64) {
	v.ms.SetCurrentAndTarget(ms)
}

// TargetDelayMs returns the delay time the voice is heading to.
func (v *Voice) TargetDelayMs() float64 { return v.ms.Target() }

// SmoothedDelayMs returns the delay time used by the last processed sample.
func (v *Voice) SmoothedDelayMs() float64 { return v.ms.Current() }

// DelaySamples returns SmoothedDelayMs in samples at the prepared rate.
func (v *Voice) DelaySamples() float64 {
	return core.MsToSamples(v.ms.Current(), v.sampleRate)
}

// ProcessSample runs one sample through the voice. An unprepared voice
// passes input through.
func (v *Voice) ProcessSample(input float64, c Controls) float64 {
	if !v.prepared {
		return input
	}
	ms := v.ms.Next()
	wet := v.line.Pop(core.MsToSamples(ms, v.sampleRate))
	wet = v.dc.ProcessSample(wet)
	v.line.Push(feedSample(v.cfg.saturation, input, c.Feedback, wet))
	return c.Law.Mix(input, wet, c.DryWet)
}

// ProcessBlock runs buf in place with fixed controls and delay target.
func (v *Voice) ProcessBlock(buf []float64, c Controls) {
	for i, x := range buf {
		buf[i] = v.ProcessSample(x, c)
	}
}

// Reset clears the line and filter and ends any ramp at its target.
func (v *Voice) Reset() {
	v.line.Reset()
	if v.dc != nil {
		v.dc.Reset()
	}
	v.ms.SetCurrentAndTarget(v.ms.Target())
}

// Release drops the delay buffer. Prepare must be called before further use.
func (v *Voice) Release() {
	v.line.Release()
	if v.dc != nil {
		v.dc.Reset()
	}
	v.prepared = false
}
