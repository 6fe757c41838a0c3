package input

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-tracker/terminal"
	"github.com/lixenwraith/vi-tracker/track"
)

var (
	ErrUnknownKey    = errors.New("unknown key name")
	ErrUnknownAction = errors.New("unknown action name")

	ErrConflictingBinding = errors.New("key bound to more than one action")
)

// EventSource is the input half of terminal.Terminal
type EventSource interface {
	PollEvent() (terminal.Event, error)
}

// Outcome reports what one event did to the grid
type Outcome struct {
	Intent Intent
	Moved  bool // selection index changed
}

// Quit reports whether the event ended the session
func (o Outcome) Quit() bool {
	return o.Intent == IntentQuit
}

// Apply performs intent on g. Boundary moves and IntentNone leave g untouched.
func Apply(intent Intent, g *track.Grid) Outcome {
	out := Outcome{Intent: intent}
	switch intent {
	case IntentQuit:
		g.RequestQuit()
	case IntentSelectUp:
		out.Moved = g.MoveSelectionUp()
	case IntentSelectDown:
		out.Moved = g.MoveSelectionDown()
	}
	return out
}

// Step blocks for exactly one event from src, resolves it through kt, and applies it
func Step(src EventSource, kt *KeyTable, g *track.Grid) (Outcome, error) {
	ev, err := src.PollEvent()
	if err != nil {
		return Outcome{}, fmt.Errorf("poll event: %w", err)
	}
	return Apply(kt.Resolve(ev), g), nil
}
