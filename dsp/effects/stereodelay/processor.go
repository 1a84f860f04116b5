package stereodelay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-delay/dsp/core"
	"github.com/cwbudde/algo-delay/dsp/meter"
	"github.com/cwbudde/algo-delay/dsp/param"
)

const (
	referenceChannel = 0
	trackingChannel  = 1

	// tailFloorDB is the echo level at which the tail counts as silent.
	tailFloorDB = -60
	// maxTailSeconds bounds TailSeconds for feedback at or above unity.
	maxTailSeconds = 60
)

// Processor runs one Voice per channel over blocks of audio in place.
//
// Parameters are read from a param.Set once per sample, so a control thread
// may change them at any time. Process is meant for a single audio thread;
// Prepare and Release must not run concurrently with it.
type Processor struct {
	params *param.Set
	cfg    config
	voices []*Voice
	meter  *meter.Meter

	sampleRate   float64
	maxBlockSize int
	prepared     bool
}

// New returns an unprepared processor reading params. A nil params gets a
// fresh default set.
func New(params *param.Set, opts ...Option) (*Processor, error) {
	cfg, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}
	if params == nil {
		params = param.NewSet()
	}

	p := &Processor{
		params: params,
		cfg:    cfg,
		voices: make([]*Voice, cfg.channels),
		meter:  meter.New(),
	}
	for ch := range p.voices {
		v, err := newVoice(cfg)
		if err != nil {
			return nil, err
		}
		p.voices[ch] = v
	}
	return p, nil
}

// Prepare sizes every voice for sampleRate and maxBlockSize and clears all
// audio state. Smoothed delay times start at their targets.
//
// On error the processor is left unprepared, Process is a no-op and the
// voices' audio state is undefined until a later Prepare succeeds.
func (p *Processor) Prepare(sampleRate float64, maxBlockSize int) error {
	p.prepared = false
	if !core.ValidSampleRate(sampleRate) {
		return fmt.Errorf("stereodelay sample rate must be > 0: %f", sampleRate)
	}
	if maxBlockSize <= 0 {
		return fmt.Errorf("stereodelay block size must be > 0: %d", maxBlockSize)
	}

	for ch, v := range p.voices {
		v.SetDelayMs(p.targetDelayMs(ch))
		if err := v.Prepare(sampleRate, maxBlockSize); err != nil {
			return err
		}
	}
	p.meter.Reset()
	p.sampleRate = sampleRate
	p.maxBlockSize = maxBlockSize
	p.prepared = true
	return nil
}

// Release frees the delay buffers. Process is a no-op until the next Prepare.
func (p *Processor) Release() {
	for _, v := range p.voices {
		v.Release()
	}
	p.meter.Reset()
	p.prepared = false
}

// Prepared reports whether the processor is ready to process audio.
func (p *Processor) Prepared() bool { return p.prepared }

// SampleRate returns the rate passed to the last successful Prepare.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// MaxBlockSize returns the block size passed to the last successful Prepare.
func (p *Processor) MaxBlockSize() int { return p.maxBlockSize }

// Channels returns the number of processed channels.
func (p *Processor) Channels() int { return len(p.voices) }

// Params returns the parameter set the processor reads.
func (p *Processor) Params() *param.Set { return p.params }

// Voice returns the voice of channel ch, or nil when out of range.
func (p *Processor) Voice(ch int) *Voice {
	if ch < 0 || ch >= len(p.voices) {
		return nil
	}
	return p.voices[ch]
}

// Process runs block in place. block[ch] is one channel; channels beyond
// Channels are left untouched. Input and output levels are published after
// each call. An unprepared processor leaves the block unchanged.
func (p *Processor) Process(block [][]float64) {
	if !p.prepared {
		return
	}
	channels := min(len(block), len(p.voices))
	law := mixLawFromIndex(p.params.MixLawIndex())

	for ch := 0; ch < channels; ch++ {
		p.meter.SetInput(ch, block[ch])
	}

	for ch := 0; ch < channels; ch++ {
		v := p.voices[ch]
		buf := block[ch]
		for i, x := range buf {
			v.SetTargetDelayMs(p.targetDelayMs(ch))
			buf[i] = v.ProcessSample(x, Controls{
				Feedback: p.params.FeedbackAmount(),
				DryWet:   p.params.DryWetAmount(),
				Law:      law,
			})
		}
	}

	for ch := 0; ch < channels; ch++ {
		p.meter.SetOutput(ch, block[ch])
	}
}

// targetDelayMs returns the delay target of ch. A linked tracking channel
// follows the reference channel.
func (p *Processor) targetDelayMs(ch int) float64 {
	if ch == trackingChannel && len(p.voices) > trackingChannel && p.params.Linked() {
		return p.params.DelayMs(referenceChannel)
	}
	return p.params.DelayMs(ch)
}

// Reset clears the audio state of every voice without reallocating.
func (p *Processor) Reset() {
	for ch, v := range p.voices {
		v.SetDelayMs(p.targetDelayMs(ch))
		v.Reset()
	}
	p.meter.Reset()
}

// InputLevel returns the last input RMS level of ch in dBFS, floored at
// -60 dB.
func (p *Processor) InputLevel(ch int) float64 { return p.meter.Input(ch) }

// OutputLevel returns the last output RMS level of ch in dBFS, floored at
// -60 dB.
func (p *Processor) OutputLevel(ch int) float64 { return p.meter.Output(ch) }

// Levels returns all published levels at once.
func (p *Processor) Levels() meter.Snapshot { return p.meter.Snapshot() }

// TailSeconds estimates how long the output keeps ringing after the input
// stops: the longest delay times the number of echoes needed to fall below
// -60 dB.
func (p *Processor) TailSeconds() float64 {
	longest := 0.0
	for ch := range p.voices {
		longest = max(longest, p.targetDelayMs(ch))
	}
	return tailSeconds(longest/1000, p.params.FeedbackAmount())
}

func tailSeconds(delaySeconds, feedback float64) float64 {
	if delaySeconds <= 0 {
		return 0
	}
	if feedback <= 0 {
		return delaySeconds
	}
	if feedback >= 1 {
		return maxTailSeconds
	}
	echoes := math.Ceil(tailFloorDB / core.LinearToDB(feedback))
	return min(maxTailSeconds, echoes*delaySeconds)
}
