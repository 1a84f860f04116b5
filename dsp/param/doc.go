// Package param holds host-facing controls that are written by a control
// goroutine and read by the audio goroutine.
//
// Every value lives in its own atomic cell. Readers never block and never see
// a torn value, but there is no consistency across different parameters.
//
// A [Set] resolves the delay's controls once, so the audio path calls typed
// getters instead of looking parameters up by id.
package param
