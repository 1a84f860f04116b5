package stereodelay

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-delay/dsp/core"
	"github.com/cwbudde/algo-delay/dsp/filter/dcblock"
	"github.com/cwbudde/algo-delay/dsp/interp"
)

const (
	// MaxChannels is the widest layout the processor handles. Extra channels
	// in a block are left untouched.
	MaxChannels = 2

	defaultRampSeconds = 0.05
	maxRampSeconds     = 10
	maxDelayLimit      = 60
)

type config struct {
	maxDelaySeconds float64
	rampSeconds     float64
	dcCutoffHz      float64
	saturation      Saturation
	interpolation   interp.Mode
	channels        int
}

func defaultConfig() config {
	return config{
		maxDelaySeconds: core.DefaultMaxDelaySeconds,
		rampSeconds:     defaultRampSeconds,
		dcCutoffHz:      dcblock.DefaultCutoffHz,
		saturation:      SaturationTanh,
		interpolation:   interp.Linear,
		channels:        MaxChannels,
	}
}

func applyOptions(opts []Option) (config, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// Option configures a Voice or Processor.
type Option func(*config) error

// WithMaxDelay sets the longest addressable delay in seconds. Delay times
// beyond it are clamped. Default: 3 s.
func WithMaxDelay(seconds float64) Option {
	return func(cfg *config) error {
		if !(seconds > 0) || seconds > maxDelayLimit || math.IsInf(seconds, 0) {
			return fmt.Errorf("stereodelay max delay must be in (0, %d]: %f", maxDelayLimit, seconds)
		}
		cfg.maxDelaySeconds = seconds
		return nil
	}
}

// WithRamp sets the delay-time smoothing ramp in seconds. Zero makes delay
// changes take effect immediately. Default: 50 ms.
func WithRamp(seconds float64) Option {
	return func(cfg *config) error {
		if !(seconds >= 0) || seconds > maxRampSeconds {
			return fmt.Errorf("stereodelay ramp must be in [0, %d]: %f", maxRampSeconds, seconds)
		}
		cfg.rampSeconds = seconds
		return nil
	}
}

// WithDCCutoff sets the feedback-path high-pass cutoff in Hz. Zero disables
// the filter. Default: 200 Hz.
func WithDCCutoff(hz float64) Option {
	return func(cfg *config) error {
		if !(hz >= 0) || math.IsInf(hz, 0) {
			return fmt.Errorf("stereodelay dc cutoff must be >= 0: %f", hz)
		}
		cfg.dcCutoffHz = hz
		return nil
	}
}

// WithSaturation selects the feedback nonlinearity. Default: SaturationTanh.
func WithSaturation(s Saturation) Option {
	return func(cfg *config) error {
		if !validSaturation(s) {
			return fmt.Errorf("stereodelay saturation unknown: %d", s)
		}
		cfg.saturation = s
		return nil
	}
}

// WithInterpolation selects fractional delay interpolation. Default: linear.
func WithInterpolation(mode interp.Mode) Option {
	return func(cfg *config) error {
		if !mode.Valid() {
			return fmt.Errorf("stereodelay interpolation unknown: %d", mode)
		}
		cfg.interpolation = mode
		return nil
	}
}

// WithChannels sets the number of processed channels, 1 or 2. Voices ignore
// it. Default: 2.
func WithChannels(n int) Option {
	return func(cfg *config) error {
		if n < 1 || n > MaxChannels {
			return fmt.Errorf("stereodelay channels must be in [1, %d]: %d", MaxChannels, n)
		}
		cfg.channels = n
		return nil
	}
}
