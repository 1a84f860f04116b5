// Package live hosts the delay for real-time listening: it renders a test
// signal through a stereodelay.Processor into an interleaved float32 stream,
// plays it through the system audio device and maps terminal key presses to
// parameter edits.
package live
