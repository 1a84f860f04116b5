package stereodelay

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-delay/dsp/core"
)

// Saturation selects the nonlinearity applied to the signal written back
// into the delay line.
type Saturation int

const (
	// SaturationTanh bounds the feedback path with a scaled hyperbolic
	// tangent. The loop cannot run away for any feedback amount.
	SaturationTanh Saturation = iota
	// SaturationOff keeps the feedback path linear. Feedback is capped at
	// maxLinearFeedback to keep the loop stable.
	SaturationOff
)

const (
	// saturationCeiling bounds |saturate(x)|. The DC blocker's worst-case
	// peak gain is 2*b0 < 2, so the wet signal it produces stays within ±1.
	saturationCeiling = 0.5

	maxLinearFeedback = 0.98
)

// String returns the saturation name.
func (s Saturation) String() string {
	switch s {
	case SaturationTanh:
		return "tanh"
	case SaturationOff:
		return "off"
	default:
		return "unknown"
	}
}

// ParseSaturation returns the saturation named name, ignoring case.
func ParseSaturation(name string) (Saturation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "tanh":
		return SaturationTanh, nil
	case "off", "none", "linear":
		return SaturationOff, nil
	default:
		return SaturationTanh, fmt.Errorf("stereodelay: unknown saturation %q", name)
	}
}

func validSaturation(s Saturation) bool {
	return s == SaturationTanh || s == SaturationOff
}

// saturate is unity-gain around zero and never leaves
// (-saturationCeiling, saturationCeiling).
func saturate(x float64) float64 {
	return saturationCeiling * mathTanh(x/saturationCeiling)
}

// feedSample computes the value written back into the delay line.
func feedSample(mode Saturation, input, feedback, wet float64) float64 {
	if !(feedback > 0) { // also catches NaN
		feedback = 0
	}
	if mode == SaturationOff {
		if feedback > maxLinearFeedback {
			feedback = maxLinearFeedback
		}
		return core.FlushDenormals(input + feedback*wet)
	}
	return core.FlushDenormals(saturate(input + feedback*wet))
}
