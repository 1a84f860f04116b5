package core

import (
	"fmt"
	"math"
)

// DefaultMaxDelaySeconds is the delay headroom allocated at prepare time.
const DefaultMaxDelaySeconds = 3.0

// ProcessorConfig defines common DSP processing settings.
type ProcessorConfig struct {
	SampleRate      float64
	BlockSize       int
	MaxDelaySeconds float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns sensible defaults for offline and streaming use.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate:      48000,
		BlockSize:       512,
		MaxDelaySeconds: DefaultMaxDelaySeconds,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if ValidSampleRate(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithMaxDelaySeconds sets the longest delay the processor must support.
func WithMaxDelaySeconds(seconds float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if seconds > 0 {
			cfg.MaxDelaySeconds = seconds
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// NewProcessorConfig builds a config from explicit values. Unlike the
// options, which ignore invalid input, it reports the first bad value.
func NewProcessorConfig(sampleRate float64, blockSize int, maxDelaySeconds float64) (ProcessorConfig, error) {
	if !ValidSampleRate(sampleRate) {
		return ProcessorConfig{}, fmt.Errorf("sample rate must be > 0: %f", sampleRate)
	}
	if blockSize <= 0 {
		return ProcessorConfig{}, fmt.Errorf("block size must be > 0: %d", blockSize)
	}
	if !(maxDelaySeconds > 0) || math.IsInf(maxDelaySeconds, 0) {
		return ProcessorConfig{}, fmt.Errorf("max delay must be > 0: %f", maxDelaySeconds)
	}
	return ApplyProcessorOptions(
		WithSampleRate(sampleRate),
		WithBlockSize(blockSize),
		WithMaxDelaySeconds(maxDelaySeconds),
	), nil
}
