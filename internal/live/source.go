package live

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Source produces the dry test signal. Fill overwrites left and right, which
// have equal length.
type Source interface {
	Fill(left, right []float64)
}

// ClickTrain emits a single-sample click every Interval seconds. Right
// clicks are offset by Spread seconds so the two delay lines can be told
// apart.
type ClickTrain struct {
	period    int
	spread    int
	amplitude float64
	pos       int
}

// NewClickTrain returns a click train at sampleRate.
func NewClickTrain(sampleRate, interval, spread, amplitude float64) (*ClickTrain, error) {
	period := int(math.Round(interval * sampleRate))
	if period < 1 {
		return nil, fmt.Errorf("live: click interval must be at least one sample: %f s", interval)
	}
	off := int(math.Round(spread*sampleRate)) % period
	if off < 0 {
		off += period
	}
	return &ClickTrain{period: period, spread: off, amplitude: amplitude}, nil
}

// Fill implements Source.
func (c *ClickTrain) Fill(left, right []float64) {
	for i := range left {
		phase := c.pos
		left[i], right[i] = 0, 0
		if phase == 0 {
			left[i] = c.amplitude
		}
		if phase == c.spread {
			right[i] = c.amplitude
		}
		c.pos++
		if c.pos >= c.period {
			c.pos = 0
		}
	}
}

// SineBurst emits Burst seconds of a Hann-windowed sine followed by Gap
// seconds of silence, identical on both channels.
type SineBurst struct {
	phaseInc  float64
	burstLen  int
	cycleLen  int
	amplitude float64
	pos       int
}

// NewSineBurst returns a sine burst generator at sampleRate.
func NewSineBurst(sampleRate, freqHz, burst, gap, amplitude float64) (*SineBurst, error) {
	if !(freqHz > 0) || freqHz >= sampleRate/2 {
		return nil, fmt.Errorf("live: burst frequency must be in (0, %g): %f", sampleRate/2, freqHz)
	}
	burstLen := int(math.Round(burst * sampleRate))
	gapLen := int(math.Round(gap * sampleRate))
	if burstLen < 2 || gapLen < 0 {
		return nil, fmt.Errorf("live: burst must be at least two samples and gap >= 0: %f s, %f s", burst, gap)
	}
	return &SineBurst{
		phaseInc:  2 * math.Pi * freqHz / sampleRate,
		burstLen:  burstLen,
		cycleLen:  burstLen + gapLen,
		amplitude: amplitude,
	}, nil
}

// Fill implements Source.
func (s *SineBurst) Fill(left, right []float64) {
	for i := range left {
		x := 0.0
		if s.pos < s.burstLen {
			w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(s.pos)/float64(s.burstLen-1))
			x = s.amplitude * w * math.Sin(s.phaseInc*float64(s.pos))
		}
		left[i], right[i] = x, x
		s.pos++
		if s.pos >= s.cycleLen {
			s.pos = 0
		}
	}
}

var sourceNames = map[string]func(sampleRate float64) (Source, error){
	"click": func(sr float64) (Source, error) { return NewClickTrain(sr, 1, 0.25, 0.8) },
	"burst": func(sr float64) (Source, error) { return NewSineBurst(sr, 440, 0.1, 0.9, 0.5) },
}

// NewSource returns a named test signal: "click" or "burst".
func NewSource(name string, sampleRate float64) (Source, error) {
	mk, ok := sourceNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("live: unknown source %q (have %s)", name, strings.Join(SourceNames(), ", "))
	}
	return mk(sampleRate)
}

// SourceNames lists the names NewSource accepts.
func SourceNames() []string {
	names := make([]string, 0, len(sourceNames))
	for n := range sourceNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
