//go:build headless

package live

import (
	"io"
	"time"
)

// Player is unavailable in headless builds.
type Player struct{}

// NewPlayer always fails with ErrNoAudio.
func NewPlayer(sampleRate int, buffer time.Duration, stream io.Reader) (*Player, error) {
	return nil, ErrNoAudio
}

// Start does nothing.
func (p *Player) Start() {}

// Close does nothing.
func (p *Player) Close() error { return nil }
