package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/lixenwraith/vi-tracker/terminal"
)

var errFault = errors.New("fault")

// fakeTerminal implements terminal.Terminal, recording calls and replaying
// scripted input. Once the script runs out PollEvent returns ErrClosed.
type fakeTerminal struct {
	mu sync.Mutex

	ops    []string
	events []terminal.Event
	fail   map[string]error

	raw, alt, hidden bool

	restores int
	flushes  int
	frames   []string
	line     strings.Builder
	rows     []string

	// onPoll runs before each event is returned
	onPoll func(*fakeTerminal)
}

func newFake(events ...terminal.Event) *fakeTerminal {
	return &fakeTerminal{events: events, fail: map[string]error{}}
}

func (f *fakeTerminal) rec(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ops = append(f.ops, op)
	return f.fail[op]
}

func (f *fakeTerminal) EnableRawMode() error {
	if err := f.rec("raw"); err != nil {
		return err
	}
	f.raw = true
	return nil
}

func (f *fakeTerminal) DisableRawMode() error {
	err := f.rec("cooked")
	f.mu.Lock()
	f.restores++
	f.raw = false
	f.mu.Unlock()
	return err
}

func (f *fakeTerminal) EnterAltScreen() error {
	if err := f.rec("alt"); err != nil {
		return err
	}
	f.alt = true
	return nil
}

func (f *fakeTerminal) LeaveAltScreen() error {
	f.alt = false
	return f.rec("main")
}

func (f *fakeTerminal) HideCursor() error {
	if err := f.rec("hide"); err != nil {
		return err
	}
	f.hidden = true
	return nil
}

func (f *fakeTerminal) ShowCursor() error {
	f.hidden = false
	return f.rec("show")
}

func (f *fakeTerminal) ClearHome() error {
	f.rows = nil
	f.line.Reset()
	return f.rec("clear")
}

func (f *fakeTerminal) SetColors(fg, bg terminal.Color) error {
	f.line.WriteString("[")
	return f.rec("colors")
}

func (f *fakeTerminal) ResetColors() error {
	f.line.WriteString("]")
	return f.rec("reset")
}

func (f *fakeTerminal) WriteString(s string) error {
	f.line.WriteString(s)
	return f.rec("write")
}

func (f *fakeTerminal) NextLine() error {
	f.rows = append(f.rows, f.line.String())
	f.line.Reset()
	return f.rec("nl")
}

func (f *fakeTerminal) Flush() error {
	if err := f.rec("flush"); err != nil {
		return err
	}
	f.flushes++
	if f.rows != nil {
		f.frames = append(f.frames, strings.Join(f.rows, "\n"))
		f.rows = nil
	}
	return nil
}

func (f *fakeTerminal) PollEvent() (terminal.Event, error) {
	if err := f.rec("poll"); err != nil {
		return terminal.Event{}, err
	}
	if f.onPoll != nil {
		f.onPoll(f)
	}
	if len(f.events) == 0 {
		return terminal.Event{}, terminal.ErrClosed
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev, nil
}

func (f *fakeTerminal) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, o := range f.ops {
		if o == op {
			n++
		}
	}
	return n
}

func (f *fakeTerminal) modeOps() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, o := range f.ops {
		switch o {
		case "raw", "cooked", "alt", "main", "hide", "show":
			out = append(out, o)
		}
	}
	return out
}

func (f *fakeTerminal) lastFrame() string {
	if len(f.frames) == 0 {
		return ""
	}
	return f.frames[len(f.frames)-1]
}

func repeat(ev terminal.Event, n int) []terminal.Event {
	out := make([]terminal.Event, n)
	for i := range out {
		out[i] = ev
	}
	return out
}
