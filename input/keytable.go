package input

import (
	"fmt"
	"sort"

	"github.com/lixenwraith/vi-tracker/terminal"
)

// KeyTable maps key events to intents. Modifiers are ignored: Shift+Up still selects up.
type KeyTable struct {
	Runes map[rune]Intent
	Keys  map[terminal.Key]Intent
}

// DefaultKeyTable returns the stock bindings: q quits, arrows move the selection
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]Intent{
			'q': IntentQuit,
		},
		Keys: map[terminal.Key]Intent{
			terminal.KeyUp:   IntentSelectUp,
			terminal.KeyDown: IntentSelectDown,
		},
	}
}

// Resolve returns the intent bound to ev. Unbound keys and every non-key
// event (resize, mouse, unrecognized input) resolve to IntentNone.
func (kt *KeyTable) Resolve(ev terminal.Event) Intent {
	if ev.Type != terminal.EventKey {
		return IntentNone
	}
	if ev.Key == terminal.KeyRune {
		return kt.Runes[ev.Rune]
	}
	return kt.Keys[ev.Key]
}

// Bind attaches intent to a key spec ("j", "space", "page_down", "ctrl_c"),
// replacing whatever the key did before. Binding IntentNone removes the key.
func (kt *KeyTable) Bind(spec string, intent Intent) error {
	ev, ok := terminal.ParseBinding(spec)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, spec)
	}
	kt.set(ev, intent)
	return nil
}

func (kt *KeyTable) set(ev terminal.Event, intent Intent) {
	if ev.Key == terminal.KeyRune {
		if intent == IntentNone {
			delete(kt.Runes, ev.Rune)
		} else {
			kt.Runes[ev.Rune] = intent
		}
		return
	}

	if intent == IntentNone {
		delete(kt.Keys, ev.Key)
	} else {
		kt.Keys[ev.Key] = intent
	}
}

// BindAll applies config bindings: action name -> key specs. Each listed key
// takes the action it is listed under, overriding the stock table. A key listed
// under two actions is an error. Nothing is bound unless every entry is valid.
func (kt *KeyTable) BindAll(bindings map[string][]string) error {
	actions := make([]string, 0, len(bindings))
	for action := range bindings {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	type binding struct {
		ev     terminal.Event
		intent Intent
	}
	var plan []binding
	claimed := make(map[terminal.Event]string)

	for _, action := range actions {
		intent, ok := IntentByName(action)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAction, action)
		}
		for _, spec := range bindings[action] {
			ev, ok := terminal.ParseBinding(spec)
			if !ok {
				return fmt.Errorf("action %s: %w: %q", action, ErrUnknownKey, spec)
			}
			if prev, dup := claimed[ev]; dup && prev != action {
				return fmt.Errorf("%w: %q under both %s and %s", ErrConflictingBinding, spec, prev, action)
			}
			claimed[ev] = action
			plan = append(plan, binding{ev, intent})
		}
	}

	for _, b := range plan {
		kt.set(b.ev, b.intent)
	}
	return nil
}
