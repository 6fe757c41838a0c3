package terminal

import "time"

// Backend abstracts the tty file descriptors behind ANSI so the escape-sequence
// layer can be driven by a fake in tests
type Backend interface {
	// MakeRaw switches input to raw mode and remembers the previous state
	MakeRaw() error

	// Restore returns input to the state saved by MakeRaw; no-op if not raw
	Restore() error

	// Write writes raw bytes to the terminal output
	Write(p []byte) (int, error)

	// Read waits up to timeout for input. Returns nil, nil on timeout and
	// io.EOF when input is closed.
	Read(timeout time.Duration) ([]byte, error)

	// Size returns the window size in cells
	Size() (width, height int)
}
