// Package stereodelay implements a mono/stereo feedback delay with smoothed
// delay time, a DC-blocked feedback path, bounded saturation and selectable
// dry/wet laws.
//
// Each channel is a [Voice] that owns its delay line, smoother and DC blocker.
// A [Processor] runs the voices over a block in place, applies the channel
// link and publishes input/output levels for a UI to poll.
//
// Per sample, a voice
//
//  1. advances the smoothed delay time and converts it to samples,
//  2. reads the delayed sample and high-passes it (the wet signal),
//  3. writes saturate(input + feedback*wet) back into the line,
//  4. mixes input and wet according to the dry/wet law.
//
// Prepare allocates; Process never allocates, locks or returns errors.
package stereodelay
