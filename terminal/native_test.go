package terminal

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

// fakeBackend records output and replays scripted input chunks
type fakeBackend struct {
	out      bytes.Buffer
	writes   int
	chunks   [][]byte
	raw      bool
	restores int
	writeErr error
	readErr  error
}

func (f *fakeBackend) MakeRaw() error {
	f.raw = true
	return nil
}

func (f *fakeBackend) Restore() error {
	if f.raw {
		f.restores++
	}
	f.raw = false
	return nil
}

func (f *fakeBackend) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	f.writes++
	return f.out.Write(p)
}

func (f *fakeBackend) Read(time.Duration) ([]byte, error) {
	if len(f.chunks) == 0 {
		if f.readErr != nil {
			return nil, f.readErr
		}
		return nil, io.EOF
	}
	c := f.chunks[0]
	f.chunks = f.chunks[1:]
	return c, nil
}

func (f *fakeBackend) Size() (int, int) { return 80, 24 }

func TestANSIModeSequences(t *testing.T) {
	fb := &fakeBackend{}
	term := NewANSI(fb)

	if err := term.EnableRawMode(); err != nil {
		t.Fatalf("EnableRawMode failed: %v", err)
	}
	if !fb.raw {
		t.Error("Expected backend in raw mode")
	}
	term.EnterAltScreen()
	term.HideCursor()

	want := "\x1b[?1049h\x1b[?25l"
	if got := fb.out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	fb.out.Reset()
	term.ShowCursor()
	term.LeaveAltScreen()
	if err := term.DisableRawMode(); err != nil {
		t.Fatalf("DisableRawMode failed: %v", err)
	}
	want = "\x1b[?25h\x1b[?1049l"
	if got := fb.out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if fb.restores != 1 {
		t.Errorf("Expected 1 restore, got %d", fb.restores)
	}

	// Second disable is a no-op
	term.DisableRawMode()
	if fb.restores != 1 {
		t.Errorf("Expected restore to stay at 1, got %d", fb.restores)
	}
}

func TestANSIDrawingIsBufferedUntilFlush(t *testing.T) {
	fb := &fakeBackend{}
	term := NewANSI(fb)

	term.ClearHome()
	term.SetColors(ColorBlack, ColorWhite)
	term.WriteString("C 4 001")
	term.ResetColors()
	term.NextLine()
	term.WriteString(".......")

	if fb.writes != 0 {
		t.Fatalf("Expected no device writes before Flush, got %d", fb.writes)
	}
	if err := term.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if fb.writes != 1 {
		t.Errorf("Expected exactly 1 device write, got %d", fb.writes)
	}

	want := "\x1b[2J\x1b[H" + "\x1b[30;47m" + "C 4 001" + "\x1b[0m" + "\x1b[1E" + "......."
	if got := fb.out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestANSIColorParams(t *testing.T) {
	fb := &fakeBackend{}
	term := NewANSI(fb)

	term.SetColors(ColorDefault, ColorDefault)
	term.SetColors(Color(9), Color(12))
	term.SetColors(Color(200), Color(16))
	term.Flush()

	want := "\x1b[39;49m\x1b[91;104m\x1b[38;5;200;48;5;16m"
	if got := fb.out.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestANSIFlushError(t *testing.T) {
	boom := errors.New("broken pipe")
	fb := &fakeBackend{writeErr: boom}
	term := NewANSI(fb)

	term.WriteString("x")
	err := term.Flush()
	if !errors.Is(err, boom) {
		t.Fatalf("Expected flush to wrap %v, got %v", boom, err)
	}
}

func TestANSIPollEvent(t *testing.T) {
	fb := &fakeBackend{chunks: [][]byte{
		[]byte("q\x1b["), // split sequence
		[]byte("Bj"),
	}}
	term := NewANSI(fb)

	want := []Event{RuneEvent('q'), KeyEvent(KeyDown), RuneEvent('j')}
	for i, w := range want {
		ev, err := term.PollEvent()
		if err != nil {
			t.Fatalf("event %d: unexpected error %v", i, err)
		}
		if ev != w {
			t.Errorf("event %d: expected %+v, got %+v", i, w, ev)
		}
	}

	if _, err := term.PollEvent(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed at EOF, got %v", err)
	}
}

func TestANSIPollEventLoneEscape(t *testing.T) {
	fb := &fakeBackend{chunks: [][]byte{[]byte("\x1b"), nil}}
	term := NewANSI(fb)

	ev, err := term.PollEvent()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ev != KeyEvent(KeyEscape) {
		t.Errorf("Expected Escape after timeout, got %+v", ev)
	}
}

func TestANSIPollEventReadError(t *testing.T) {
	boom := errors.New("eio")
	fb := &fakeBackend{readErr: boom}
	term := NewANSI(fb)

	_, err := term.PollEvent()
	if !errors.Is(err, boom) {
		t.Fatalf("Expected wrapped read error, got %v", err)
	}
	if !strings.Contains(err.Error(), "read input") {
		t.Errorf("Expected context in error, got %q", err.Error())
	}
}

func TestEmergencyResetSequences(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)
	out := buf.String()
	for _, seq := range []string{"\x1b[?25h", "\x1b[?1049l", "\x1b[0m"} {
		if !strings.Contains(out, seq) {
			t.Errorf("Expected %q in emergency reset output", seq)
		}
	}
}
