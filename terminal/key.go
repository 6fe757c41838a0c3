package terminal

import "strconv"

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBacktab // Shift+Tab
	KeyBackspace
	KeyDelete

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Ctrl+letter, contiguous so KeyCtrlA+n is Ctrl+('a'+n)
	KeyCtrlA
	KeyCtrlB
	KeyCtrlC
	KeyCtrlD
	KeyCtrlE
	KeyCtrlF
	KeyCtrlG
	KeyCtrlH
	KeyCtrlI
	KeyCtrlJ
	KeyCtrlK
	KeyCtrlL
	KeyCtrlM
	KeyCtrlN
	KeyCtrlO
	KeyCtrlP
	KeyCtrlQ
	KeyCtrlR
	KeyCtrlS
	KeyCtrlT
	KeyCtrlU
	KeyCtrlV
	KeyCtrlW
	KeyCtrlX
	KeyCtrlY
	KeyCtrlZ

	KeyCtrlSpace
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// escapeSequence maps the bytes after ESC [ or ESC O to a key
type escapeSequence struct {
	seq string
	key Key
	mod Modifier
}

// Unmodified CSI sequences (ESC [ ...)
var csiSequences = []escapeSequence{
	{"A", KeyUp, ModNone},
	{"B", KeyDown, ModNone},
	{"C", KeyRight, ModNone},
	{"D", KeyLeft, ModNone},
	{"Z", KeyBacktab, ModShift},

	{"H", KeyHome, ModNone},
	{"F", KeyEnd, ModNone},
	{"1~", KeyHome, ModNone},
	{"4~", KeyEnd, ModNone},
	{"7~", KeyHome, ModNone},
	{"8~", KeyEnd, ModNone},
	{"2~", KeyInsert, ModNone},
	{"3~", KeyDelete, ModNone},
	{"5~", KeyPageUp, ModNone},
	{"6~", KeyPageDown, ModNone},

	{"11~", KeyF1, ModNone},
	{"12~", KeyF2, ModNone},
	{"13~", KeyF3, ModNone},
	{"14~", KeyF4, ModNone},
	{"15~", KeyF5, ModNone},
	{"17~", KeyF6, ModNone},
	{"18~", KeyF7, ModNone},
	{"19~", KeyF8, ModNone},
	{"20~", KeyF9, ModNone},
	{"21~", KeyF10, ModNone},
	{"23~", KeyF11, ModNone},
	{"24~", KeyF12, ModNone},

	// Linux console
	{"[A", KeyF1, ModNone},
	{"[B", KeyF2, ModNone},
	{"[C", KeyF3, ModNone},
	{"[D", KeyF4, ModNone},
	{"[E", KeyF5, ModNone},
}

// SS3 sequences (ESC O ...)
var ss3Sequences = []escapeSequence{
	{"A", KeyUp, ModNone},
	{"B", KeyDown, ModNone},
	{"C", KeyRight, ModNone},
	{"D", KeyLeft, ModNone},
	{"H", KeyHome, ModNone},
	{"F", KeyEnd, ModNone},
	{"P", KeyF1, ModNone},
	{"Q", KeyF2, ModNone},
	{"R", KeyF3, ModNone},
	{"S", KeyF4, ModNone},
	{"M", KeyEnter, ModNone},
}

// xterm modifier parameter: 1 + (shift=1 | alt=2 | ctrl=4)
var xtermModifiers = []Modifier{
	ModShift,
	ModAlt,
	ModShift | ModAlt,
	ModCtrl,
	ModShift | ModCtrl,
	ModAlt | ModCtrl,
	ModShift | ModAlt | ModCtrl,
}

// modifiedSequences expands the xterm "1;<mod><final>" and "<n>;<mod>~" forms
func modifiedSequences() []escapeSequence {
	letters := map[byte]Key{
		'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft,
		'H': KeyHome, 'F': KeyEnd,
		'P': KeyF1, 'Q': KeyF2, 'R': KeyF3, 'S': KeyF4,
	}
	tildes := map[string]Key{
		"2": KeyInsert, "3": KeyDelete, "5": KeyPageUp, "6": KeyPageDown,
		"15": KeyF5, "17": KeyF6, "18": KeyF7, "19": KeyF8,
		"20": KeyF9, "21": KeyF10, "23": KeyF11, "24": KeyF12,
	}

	var out []escapeSequence
	for i, mod := range xtermModifiers {
		param := strconv.Itoa(i + 2)
		for final, k := range letters {
			out = append(out, escapeSequence{"1;" + param + string(final), k, mod})
		}
		for num, k := range tildes {
			out = append(out, escapeSequence{num + ";" + param + "~", k, mod})
		}
	}
	return out
}

var csiMap = buildSequenceMap(csiSequences, modifiedSequences())
var ss3Map = buildSequenceMap(ss3Sequences)

func buildSequenceMap(groups ...[]escapeSequence) map[string]escapeSequence {
	m := make(map[string]escapeSequence)
	for _, seqs := range groups {
		for _, s := range seqs {
			m[s.seq] = s
		}
	}
	return m
}

// lookupCSI does not allocate: the string([]byte) map index is optimized away
func lookupCSI(seq []byte) (Key, Modifier, bool) {
	if s, ok := csiMap[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}

func lookupSS3(seq []byte) (Key, Modifier, bool) {
	if s, ok := ss3Map[string(seq)]; ok {
		return s.key, s.mod, true
	}
	return KeyNone, ModNone, false
}
