package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Tcell implements Terminal on a tcell.Screen.
// tcell acquires raw input and the alternate buffer together in Screen.Init and
// releases both in Screen.Fini, so EnableRawMode/DisableRawMode drive the screen
// lifecycle and the alt-screen calls only track state.
type Tcell struct {
	screen tcell.Screen
	style  tcell.Style

	x, y int

	active bool
	alt    bool
}

// NewTcell wraps an uninitialized screen
func NewTcell(screen tcell.Screen) *Tcell {
	return &Tcell{screen: screen, style: tcell.StyleDefault}
}

// NewTcellScreen opens the default tcell screen for the controlling terminal
func NewTcellScreen() (*Tcell, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcell screen: %w", err)
	}
	return NewTcell(s), nil
}

func (t *Tcell) EnableRawMode() error {
	if t.active {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	t.active = true
	return nil
}

func (t *Tcell) DisableRawMode() error {
	if !t.active {
		return nil
	}
	t.screen.Fini()
	t.active = false
	t.alt = false
	return nil
}

func (t *Tcell) EnterAltScreen() error {
	if !t.active {
		return fmt.Errorf("enter alternate screen: %w", errNotActive)
	}
	t.alt = true
	return nil
}

func (t *Tcell) LeaveAltScreen() error {
	t.alt = false
	return nil
}

// InAltScreen reports the tracked alternate-screen state.
// tcell has no query for it; callers use this to check a release took effect.
func (t *Tcell) InAltScreen() bool {
	return t.alt
}

func (t *Tcell) HideCursor() error {
	if t.active {
		t.screen.HideCursor()
	}
	return nil
}

func (t *Tcell) ShowCursor() error {
	if t.active {
		t.screen.ShowCursor(t.x, t.y)
	}
	return nil
}

func (t *Tcell) ClearHome() error {
	if !t.active {
		return fmt.Errorf("clear: %w", errNotActive)
	}
	t.screen.Clear()
	t.x, t.y = 0, 0
	return nil
}

func (t *Tcell) SetColors(fg, bg Color) error {
	t.style = tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
	return nil
}

func (t *Tcell) ResetColors() error {
	t.style = tcell.StyleDefault
	return nil
}

func (t *Tcell) WriteString(s string) error {
	if !t.active {
		return fmt.Errorf("write output: %w", errNotActive)
	}
	for _, r := range s {
		t.screen.SetContent(t.x, t.y, r, nil, t.style)
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		t.x += w
	}
	return nil
}

func (t *Tcell) NextLine() error {
	t.x = 0
	t.y++
	return nil
}

func (t *Tcell) Flush() error {
	if !t.active {
		return fmt.Errorf("flush output: %w", errNotActive)
	}
	t.screen.Show()
	return nil
}

// PollEvent blocks on the screen's event queue; a nil event means Fini was called
func (t *Tcell) PollEvent() (Event, error) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{}, ErrClosed
	}
	return translateTcell(ev), nil
}

func tcellColor(c Color) tcell.Color {
	if c < 0 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c))
}

// tcellKeys maps tcell named keys; Ctrl+letter is handled by range
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyInsert:     KeyInsert,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBacktab:    KeyBacktab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
	tcell.KeyCtrlSpace:  KeyCtrlSpace,
}

func translateTcell(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		out := Event{Type: EventKey, Modifiers: tcellModifiers(e.Modifiers())}
		switch k := e.Key(); {
		case k == tcell.KeyRune:
			out.Key = KeyRune
			out.Rune = e.Rune()
		case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
			if mapped, ok := tcellKeys[k]; ok {
				// Tab, Enter and Backspace share codes with Ctrl+I/M/H
				out.Key = mapped
			} else {
				out.Key = KeyCtrlA + Key(k-tcell.KeyCtrlA)
			}
		default:
			mapped, ok := tcellKeys[k]
			if !ok {
				return Event{Type: EventOther}
			}
			out.Key = mapped
		}
		return out

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}

	case *tcell.EventMouse:
		x, y := e.Position()
		out := Event{
			Type:        EventMouse,
			MouseX:      x,
			MouseY:      y,
			Modifiers:   tcellModifiers(e.Modifiers()),
			MouseAction: MouseActionPress,
		}
		switch b := e.Buttons(); {
		case b&tcell.Button1 != 0:
			out.MouseBtn = MouseBtnLeft
		case b&tcell.Button3 != 0:
			out.MouseBtn = MouseBtnMiddle
		case b&tcell.Button2 != 0:
			out.MouseBtn = MouseBtnRight
		case b&tcell.WheelUp != 0:
			out.MouseBtn = MouseBtnWheelUp
		case b&tcell.WheelDown != 0:
			out.MouseBtn = MouseBtnWheelDown
		default:
			out.MouseAction = MouseActionMove
		}
		return out
	}
	return Event{Type: EventOther}
}

func tcellModifiers(m tcell.ModMask) Modifier {
	var out Modifier
	if m&tcell.ModShift != 0 {
		out |= ModShift
	}
	if m&tcell.ModAlt != 0 {
		out |= ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		out |= ModCtrl
	}
	return out
}
