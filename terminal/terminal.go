package terminal

import "errors"

var (
	ErrNotTerminal = errors.New("stdin is not a terminal")
	ErrClosed      = errors.New("terminal input closed")
)

// Color is an xterm palette index (0-15 basic, 16-255 extended) or ColorDefault
type Color int16

const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
)

// Terminal is the capability set the tracker needs from a display.
// Output calls are buffered; only Flush (and the mode switches, which must
// take effect before the next read) reach the device.
type Terminal interface {
	// Input mode
	EnableRawMode() error
	DisableRawMode() error

	// Screen buffer and cursor glyph
	EnterAltScreen() error
	LeaveAltScreen() error
	HideCursor() error
	ShowCursor() error

	// Drawing
	ClearHome() error
	SetColors(fg, bg Color) error
	ResetColors() error
	WriteString(s string) error
	NextLine() error
	Flush() error

	// PollEvent blocks until exactly one input event is available
	PollEvent() (Event, error)
}

// EventType distinguishes input event categories
type EventType uint8

const (
	EventOther EventType = iota // Unrecognized input, consumed and ignored
	EventKey
	EventResize
	EventMouse
)

// Event is a tagged union of terminal input. Fields outside the active Type are zero.
type Event struct {
	Type      EventType
	Key       Key
	Rune      rune // For KeyRune
	Modifiers Modifier
	Width     int // For EventResize
	Height    int // For EventResize

	MouseX      int
	MouseY      int
	MouseBtn    MouseButton
	MouseAction MouseAction
}

// KeyEvent builds a named-key event
func KeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// RuneEvent builds a character-key event
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

var errNotActive = errors.New("screen not initialized")

var (
	_ Terminal = (*ANSI)(nil)
	_ Terminal = (*Tcell)(nil)
)
