package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/lixenwraith/vi-tracker/terminal"
)

// Modes is the mode-switching half of terminal.Terminal
type Modes interface {
	EnableRawMode() error
	DisableRawMode() error
	EnterAltScreen() error
	LeaveAltScreen() error
	HideCursor() error
	ShowCursor() error
	Flush() error
}

var _ Modes = terminal.Terminal(nil)

// ErrReleased is returned for output attempted after the guard let go of the terminal
var ErrReleased = errors.New("terminal already released")

// Guard holds acquired terminal modes until Release.
// Output goes through Do so a Release from another goroutine (signal watch)
// waits for the frame in progress and no frame follows it.
type Guard struct {
	t Modes

	mu       sync.Mutex
	released bool
	once     sync.Once
	err      error
}

type step struct {
	name    string
	acquire func() error
	release func() error
}

// Acquire enables raw mode, enters the alternate screen and hides the cursor.
// If any step fails, the steps already taken are undone in reverse and the
// terminal is left as it was found.
func Acquire(t Modes) (*Guard, error) {
	steps := []step{
		{"enable raw mode", t.EnableRawMode, t.DisableRawMode},
		{"enter alternate screen", t.EnterAltScreen, t.LeaveAltScreen},
		{"hide cursor", t.HideCursor, t.ShowCursor},
	}

	for i, s := range steps {
		if err := s.acquire(); err != nil {
			errs := []error{fmt.Errorf("%s: %w", s.name, err)}
			for j := i - 1; j >= 0; j-- {
				if rerr := steps[j].release(); rerr != nil {
					errs = append(errs, fmt.Errorf("undo %s: %w", steps[j].name, rerr))
				}
			}
			return nil, errors.Join(errs...)
		}
	}

	g := &Guard{t: t}
	if err := t.Flush(); err != nil {
		return nil, errors.Join(fmt.Errorf("flush: %w", err), g.Release())
	}
	return g, nil
}

// Release shows the cursor, leaves the alternate screen and restores
// canonical input. Every step is attempted even if an earlier one fails.
// Only the first call does anything; later calls return its result.
func (g *Guard) Release() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.once.Do(func() {
		g.released = true
		var errs []error
		try := func(name string, fn func() error) {
			if err := fn(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
		try("show cursor", g.t.ShowCursor)
		try("leave alternate screen", g.t.LeaveAltScreen)
		try("flush", g.t.Flush)
		try("restore input mode", g.t.DisableRawMode)
		g.err = errors.Join(errs...)
	})
	return g.err
}

// Do runs fn while holding the terminal, or returns ErrReleased without
// running it once Release has happened
func (g *Guard) Do(fn func() error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.released {
		return ErrReleased
	}
	return fn()
}

// Released reports whether Release has run
func (g *Guard) Released() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.released
}
