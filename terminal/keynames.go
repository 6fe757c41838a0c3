package terminal

import "unicode/utf8"

// keyToName maps Key constants to config names
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",

	KeyCtrlSpace: "ctrl_space",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]Key

func init() {
	for k := KeyCtrlA; k <= KeyCtrlZ; k++ {
		keyToName[k] = "ctrl_" + string(rune('a'+int(k-KeyCtrlA)))
	}

	nameToKey = make(map[string]Key, len(keyToName)+2)
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	// Aliases
	nameToKey["shift_tab"] = KeyBacktab
	nameToKey["esc"] = KeyEscape
}

// KeyName returns the config name for a Key, empty for KeyNone and KeyRune
func KeyName(k Key) string {
	return keyToName[k]
}

// KeyByName resolves a config name to a Key constant
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}

// ParseBinding resolves a config key spec: a single character binds that rune,
// anything longer must be a key name. "space" is the rune ' '.
func ParseBinding(spec string) (Event, bool) {
	if spec == "space" {
		return RuneEvent(' '), true
	}
	if r, size := utf8.DecodeRuneInString(spec); size == len(spec) && r != utf8.RuneError && r >= 0x20 {
		return RuneEvent(r), true
	}
	if k, ok := KeyByName(spec); ok {
		return KeyEvent(k), true
	}
	return Event{}, false
}
