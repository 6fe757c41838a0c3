package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// escapeTimeout is the wait after a lone ESC before it is reported as the
// Escape key rather than the start of a sequence
const escapeTimeout = 50 * time.Millisecond

// ANSI implements Terminal by writing escape sequences to a Backend.
// Not safe for concurrent use; the session loop is its only caller.
type ANSI struct {
	backend Backend
	out     *bufio.Writer

	// Undecoded input carried between PollEvent calls
	pending []byte

	winch chan os.Signal
	raw   bool
}

// NewANSI returns an ANSI terminal over an arbitrary backend
func NewANSI(b Backend) *ANSI {
	return &ANSI{
		backend: b,
		out:     bufio.NewWriterSize(backendWriter{b}, 16384),
		pending: make([]byte, 0, 64),
		winch:   make(chan os.Signal, 1),
	}
}

// backendWriter adapts Backend.Write to io.Writer for bufio
type backendWriter struct{ b Backend }

func (w backendWriter) Write(p []byte) (int, error) { return w.b.Write(p) }

func (t *ANSI) EnableRawMode() error {
	if t.raw {
		return nil
	}
	if err := t.backend.MakeRaw(); err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	signal.Notify(t.winch, syscall.SIGWINCH)
	t.raw = true
	return nil
}

func (t *ANSI) DisableRawMode() error {
	if !t.raw {
		return nil
	}
	signal.Stop(t.winch)
	t.raw = false
	if err := t.backend.Restore(); err != nil {
		return fmt.Errorf("restore input mode: %w", err)
	}
	return nil
}

func (t *ANSI) EnterAltScreen() error { return t.immediate(csiAltScreenEnter) }
func (t *ANSI) LeaveAltScreen() error { return t.immediate(csiAltScreenExit) }
func (t *ANSI) HideCursor() error     { return t.immediate(csiCursorHide) }
func (t *ANSI) ShowCursor() error     { return t.immediate(csiCursorShow) }

// immediate writes a mode switch and pushes it to the device
func (t *ANSI) immediate(seq []byte) error {
	t.out.Write(seq)
	return t.flush()
}

func (t *ANSI) ClearHome() error {
	_, err := t.out.Write(csiClear)
	return wrapWrite(err)
}

func (t *ANSI) SetColors(fg, bg Color) error {
	writeColorPair(t.out, fg, bg)
	return wrapWrite(t.writeErr())
}

func (t *ANSI) ResetColors() error {
	_, err := t.out.Write(csiSGR0)
	return wrapWrite(err)
}

func (t *ANSI) WriteString(s string) error {
	_, err := t.out.WriteString(s)
	return wrapWrite(err)
}

func (t *ANSI) NextLine() error {
	_, err := t.out.Write(csiNextLine)
	return wrapWrite(err)
}

func (t *ANSI) Flush() error {
	return t.flush()
}

func (t *ANSI) flush() error {
	if err := t.out.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// writeErr surfaces a sticky bufio error after byte-level writes
func (t *ANSI) writeErr() error {
	_, err := t.out.Write(nil)
	return err
}

func wrapWrite(err error) error {
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// PollEvent blocks until one event is decoded, a resize arrives, or input fails
func (t *ANSI) PollEvent() (Event, error) {
	for {
		if ev, n := decode(t.pending); n > 0 {
			t.consume(n)
			return ev, nil
		}

		select {
		case <-t.winch:
			w, h := t.backend.Size()
			return Event{Type: EventResize, Width: w, Height: h}, nil
		default:
		}

		data, err := t.backend.Read(escapeTimeout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, ErrClosed
			}
			return Event{}, fmt.Errorf("read input: %w", err)
		}

		if data == nil {
			// Timeout with an undecodable prefix: the leading ESC was a keypress
			if len(t.pending) > 0 && t.pending[0] == 0x1b {
				t.consume(1)
				return KeyEvent(KeyEscape), nil
			}
			continue
		}

		t.pending = append(t.pending, data...)
	}
}

func (t *ANSI) consume(n int) {
	if n >= len(t.pending) {
		t.pending = t.pending[:0]
		return
	}
	copy(t.pending, t.pending[n:])
	t.pending = t.pending[:len(t.pending)-n]
}
