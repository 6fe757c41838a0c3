package session

import (
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/lixenwraith/vi-tracker/status"
	"github.com/lixenwraith/vi-tracker/terminal"
	"github.com/lixenwraith/vi-tracker/track"
)

var (
	down = terminal.KeyEvent(terminal.KeyDown)
	up   = terminal.KeyEvent(terminal.KeyUp)
	quit = terminal.RuneEvent('q')
)

func seededGrid(t *testing.T, n int) *track.Grid {
	t.Helper()
	g, err := track.NewGrid(n)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if err := track.SeedDemo(g, track.DemoStartKey, track.DemoInstrument); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}
	return g
}

func TestRunScenario(t *testing.T) {
	g := seededGrid(t, track.DefaultLength)

	events := repeat(down, 31)
	events = append(events, down, quit)
	f := newFake(events...)

	if err := Run(f, g, Options{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if g.Selection() != 31 {
		t.Errorf("Expected selection 31, got %d", g.Selection())
	}
	if g.Running() {
		t.Error("Expected grid stopped after q")
	}
	// One frame per event, none after quit
	if got := f.count("clear"); got != 33 {
		t.Errorf("Expected 33 frames, got %d", got)
	}
	if got := f.count("poll"); got != 33 {
		t.Errorf("Expected 33 polls, got %d", got)
	}
	if f.restores != 1 {
		t.Errorf("Expected 1 restore, got %d", f.restores)
	}

	first := strings.Split(f.frames[0], "\n")
	if len(first) != 32 {
		t.Fatalf("Expected 32 rows, got %d", len(first))
	}
	if first[0] != "[C 0 001]" {
		t.Errorf("Expected highlighted first step, got %q", first[0])
	}
	if first[1] != "......." || first[2] != "D 0 001" {
		t.Errorf("Expected seeded rows, got %q %q", first[1], first[2])
	}

	last := strings.Split(f.lastFrame(), "\n")
	if last[31] != "[.......]" || last[0] != "C 0 001" {
		t.Errorf("Expected highlight on last step, got first=%q last=%q", last[0], last[31])
	}
}

func TestRunReleasesOnReadFault(t *testing.T) {
	g := seededGrid(t, 4)
	f := newFake(down, down)
	// First poll delivers, every later poll faults
	f.onPoll = func(f *fakeTerminal) { f.fail["poll"] = errFault }

	err := Run(f, g, Options{})
	if !errors.Is(err, errFault) {
		t.Fatalf("Expected read fault, got %v", err)
	}
	if g.Selection() != 1 {
		t.Errorf("Expected first event applied, got selection %d", g.Selection())
	}
	if f.restores != 1 {
		t.Errorf("Expected 1 restore, got %d", f.restores)
	}
	if f.raw || f.alt || f.hidden {
		t.Error("Expected terminal modes released")
	}
}

func TestRunReturnsInputError(t *testing.T) {
	g := seededGrid(t, 4)
	f := newFake()
	f.fail["poll"] = errFault

	err := Run(f, g, Options{})
	if !errors.Is(err, errFault) {
		t.Fatalf("Expected %v, got %v", errFault, err)
	}
	if f.restores != 1 {
		t.Errorf("Expected 1 restore, got %d", f.restores)
	}
}

func TestRunEndOfInput(t *testing.T) {
	g := seededGrid(t, 4)
	f := newFake(down)

	err := Run(f, g, Options{})
	if !errors.Is(err, terminal.ErrClosed) {
		t.Fatalf("Expected ErrClosed, got %v", err)
	}
	if f.restores != 1 {
		t.Errorf("Expected 1 restore, got %d", f.restores)
	}
}

func TestRunReleasesOnPanic(t *testing.T) {
	g := seededGrid(t, 4)
	f := newFake(down, down)
	f.onPoll = func(*fakeTerminal) { panic("boom") }

	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Errorf("Expected panic to propagate, got %v", r)
			}
		}()
		Run(f, g, Options{})
		t.Error("Expected Run to panic")
	}()

	if f.restores != 1 {
		t.Errorf("Expected 1 restore, got %d", f.restores)
	}
	if f.count("show") != 1 {
		t.Errorf("Expected cursor shown once, got %d", f.count("show"))
	}
}

func TestRunRenderError(t *testing.T) {
	g := seededGrid(t, 4)
	f := newFake(quit)
	f.fail["write"] = errFault

	err := Run(f, g, Options{})
	if !errors.Is(err, errFault) {
		t.Fatalf("Expected render fault, got %v", err)
	}
	if f.count("poll") != 0 {
		t.Error("Expected no input after render failure")
	}
	if f.restores != 1 {
		t.Errorf("Expected 1 restore, got %d", f.restores)
	}
}

func TestRunLoopErrorWinsOverRelease(t *testing.T) {
	g := seededGrid(t, 4)
	f := newFake()
	f.fail["poll"] = errFault
	f.fail["cooked"] = os.ErrPermission

	err := Run(f, g, Options{})
	if !errors.Is(err, errFault) {
		t.Fatalf("Expected loop error, got %v", err)
	}
	if errors.Is(err, os.ErrPermission) {
		t.Error("Expected release error not to replace loop error")
	}
}

func TestRunReleaseErrorAfterCleanQuit(t *testing.T) {
	g := seededGrid(t, 4)
	f := newFake(quit)
	f.fail["cooked"] = os.ErrPermission

	if err := Run(f, g, Options{}); !errors.Is(err, os.ErrPermission) {
		t.Fatalf("Expected release error, got %v", err)
	}
}

func TestRunRejectsEmptyGrid(t *testing.T) {
	f := newFake(quit)
	if err := Run(f, nil, Options{}); !errors.Is(err, ErrNoGrid) {
		t.Fatalf("Expected ErrNoGrid, got %v", err)
	}
	if err := Run(f, &track.Grid{}, Options{}); !errors.Is(err, ErrNoGrid) {
		t.Fatalf("Expected ErrNoGrid, got %v", err)
	}
	if len(f.ops) != 0 {
		t.Errorf("Expected terminal untouched, got %v", f.ops)
	}
}

type recordingAuditioner struct {
	notes []track.Note
}

func (r *recordingAuditioner) Audition(n track.Note) {
	r.notes = append(r.notes, n)
}

func TestRunAuditionsOccupiedSteps(t *testing.T) {
	g := seededGrid(t, 4)
	aud := &recordingAuditioner{}
	// up at top does not move; 1 is empty; 2 holds key 14
	f := newFake(up, down, down, terminal.RuneEvent('x'), quit)

	stats := status.NewRegistry()
	if err := Run(f, g, Options{Auditioner: aud, Stats: stats}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(aud.notes) != 1 {
		t.Fatalf("Expected 1 audition, got %d", len(aud.notes))
	}
	if aud.notes[0].Key != 14 {
		t.Errorf("Expected key 14, got %d", aud.notes[0].Key)
	}

	counts := map[string]int64{
		status.Frames:                       5,
		status.Events:                       5,
		status.Moves:                        2,
		status.Auditions:                    1,
		status.IntentPrefix + "select_up":   1,
		status.IntentPrefix + "select_down": 2,
		status.IntentPrefix + "quit":        1,
	}
	for key, want := range counts {
		if got := stats.Get(key); got != want {
			t.Errorf("%s: expected %d, got %d", key, want, got)
		}
	}
}

func TestRunReleasesOnSignal(t *testing.T) {
	g := seededGrid(t, 4)
	f := newFake(down, quit)

	got := make(chan os.Signal, 1)
	sent := false
	f.onPoll = func(*fakeTerminal) {
		if sent {
			return
		}
		sent = true
		syscall.Kill(os.Getpid(), syscall.SIGHUP)
		select {
		case <-got:
		case <-time.After(2 * time.Second):
			t.Error("Expected signal handler to run")
		}
	}

	err := Run(f, g, Options{OnSignal: func(sig os.Signal) { got <- sig }})
	if !errors.Is(err, ErrReleased) {
		t.Fatalf("Expected ErrReleased, got %v", err)
	}
	if f.restores != 1 {
		t.Errorf("Expected 1 restore across signal and exit, got %d", f.restores)
	}

	// Nothing is drawn once the terminal has been handed back
	restored := -1
	for i, op := range f.ops {
		if op == "cooked" {
			restored = i
		}
	}
	for _, op := range f.ops[restored+1:] {
		if op == "clear" || op == "write" || op == "flush" {
			t.Errorf("Expected no output after release, got %v", f.ops[restored:])
			break
		}
	}
}
