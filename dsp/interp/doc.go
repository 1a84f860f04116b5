// Package interp provides interpolation primitives used by delay-based DSP blocks.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:  2-point linear interpolation (default for delay lines)
//   - [Hermite4]: 4-point cubic Hermite
//
// The [Mode] enum lets [delay.Line] select the algorithm at construction time.
package interp
