package core

import "math"

// MeterFloorDB is the lowest level reported by level meters. Digital silence
// has an RMS of -Inf dB, which is clamped to this value.
const MeterFloorDB = -60.0

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Feedback loops decaying towards silence otherwise spend a long time in the
// denormal range, which is slow on most CPUs.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// FloorDB clamps a dB value to floor. NaN and -Inf map to floor.
func FloorDB(db, floor float64) float64 {
	if math.IsNaN(db) || db < floor {
		return floor
	}

	return db
}

// MsToSamples converts a duration in milliseconds to a (fractional) sample
// count at sampleRate. The multiplication happens first so whole-sample
// durations such as 24 ms at 48 kHz stay exact.
func MsToSamples(ms, sampleRate float64) float64 {
	return ms * sampleRate / 1000
}

// ValidSampleRate reports whether sampleRate is positive and finite.
func ValidSampleRate(sampleRate float64) bool {
	return sampleRate > 0 && !math.IsNaN(sampleRate) && !math.IsInf(sampleRate, 0)
}
