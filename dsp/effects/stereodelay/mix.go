package stereodelay

import "github.com/cwbudde/algo-delay/dsp/core"

// MixLaw selects how the dry and wet signals are combined. The values match
// the option order of the mixLaw parameter.
type MixLaw int

const (
	// MixLinear crossfades: dry*(1-w) + wet*w.
	MixLinear MixLaw = iota
	// MixBoost raises the wet gain to unity by w=0.5 while the dry gain
	// only starts falling above w=0.5. At w=0.5 both are at unity.
	MixBoost
)

// String returns the law name.
func (m MixLaw) String() string {
	switch m {
	case MixLinear:
		return "linear"
	case MixBoost:
		return "boost"
	default:
		return "unknown"
	}
}

// Gains returns the dry and wet gains for dryWet in [0, 1].
func (m MixLaw) Gains(dryWet float64) (dry, wet float64) {
	w := core.Clamp(dryWet, 0, 1)
	if m == MixBoost {
		return min(1, 2*(1-w)), min(1, 2*w)
	}
	return 1 - w, w
}

// Mix combines input and wet.
func (m MixLaw) Mix(input, wet, dryWet float64) float64 {
	dry, wetGain := m.Gains(dryWet)
	return input*dry + wet*wetGain
}

func mixLawFromIndex(i int) MixLaw {
	if i == int(MixBoost) {
		return MixBoost
	}
	return MixLinear
}
