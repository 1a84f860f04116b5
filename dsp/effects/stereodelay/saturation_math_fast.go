//go:build fastmath

package stereodelay

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// mathTanh computes tanh(|x|) = 1 - 2/(e^(2|x|)+1) with a fast exponential
// and restores the sign, so the curve stays odd and adds no bias to the loop.
func mathTanh(x float64) float64 {
	a := math.Abs(x)
	if a < 1e-9 {
		return x
	}
	if a > 20 {
		return math.Copysign(1, x)
	}
	y := 1 - 2/(approx.FastExp(2*a)+1)
	if y < 0 {
		y = 0
	} else if y > 1 {
		y = 1
	}
	return math.Copysign(y, x)
}
