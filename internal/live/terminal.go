package live

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"
)

// Terminal puts a terminal into raw mode so single key presses can be read
// without waiting for Enter.
type Terminal struct {
	in    *os.File
	fd    int
	state *term.State
}

// OpenTerminal switches in to raw mode. It fails when in is not a terminal.
func OpenTerminal(in *os.File) (*Terminal, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("live: %s is not a terminal", in.Name())
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("live: raw mode: %w", err)
	}
	return &Terminal{in: in, fd: fd, state: state}, nil
}

// Keys delivers key presses until ctx is done or the input is closed. The
// reading goroutine may stay blocked in Read until the next key after ctx
// ends.
func (t *Terminal) Keys(ctx context.Context) <-chan byte {
	keys := make(chan byte, 16)
	go func() {
		defer close(keys)
		buf := make([]byte, 1)
		for {
			n, err := t.in.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			select {
			case keys <- buf[0]:
			case <-ctx.Done():
				return
			}
		}
	}()
	return keys
}

// Close restores the terminal state saved by OpenTerminal.
func (t *Terminal) Close() error {
	if t.state == nil {
		return nil
	}
	err := term.Restore(t.fd, t.state)
	t.state = nil
	return err
}
