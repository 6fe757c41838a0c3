package terminal

import "unicode/utf8"

// decode parses the first event at the front of data.
// Returns consumed == 0 when data holds only an incomplete sequence.
// Recognized-but-unknown sequences are consumed and reported as EventOther.
func decode(data []byte) (Event, int) {
	if len(data) == 0 {
		return Event{}, 0
	}

	b := data[0]

	switch {
	case b >= 0x20 && b < 0x7f:
		return RuneEvent(rune(b)), 1

	case b == 0x1b:
		return decodeEscape(data)

	case b < 0x20:
		return controlEvent(b), 1

	case b == 0x7f:
		return KeyEvent(KeyBackspace), 1
	}

	// UTF-8 multibyte
	if !utf8.FullRune(data) {
		if utf8SeqLen(b) == 0 {
			return Event{Type: EventOther}, 1
		}
		return Event{}, 0
	}
	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError {
		return Event{Type: EventOther}, size
	}
	return RuneEvent(r), size
}

// utf8SeqLen returns expected UTF-8 sequence length from start byte, 0 if invalid
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

func decodeEscape(data []byte) (Event, int) {
	if len(data) < 2 {
		return Event{}, 0
	}

	switch c := data[1]; {
	case c == 0x1b:
		ev := KeyEvent(KeyEscape)
		ev.Modifiers = ModAlt
		return ev, 2
	case c == '[':
		return decodeCSI(data)
	case c == 'O':
		return decodeSS3(data)
	case c < 0x20:
		ev := controlEvent(c)
		ev.Modifiers |= ModAlt
		return ev, 2
	case c < 0x7f:
		ev := RuneEvent(rune(c))
		ev.Modifiers = ModAlt
		return ev, 2
	}
	// ESC then a non-ASCII byte: report the ESC alone, leave the rest for the next call
	return KeyEvent(KeyEscape), 1
}

// decodeCSI handles ESC [ ... <final>
func decodeCSI(data []byte) (Event, int) {
	if len(data) < 3 {
		return Event{}, 0
	}

	// SGR mouse: ESC [ < Btn ; X ; Y M/m
	if data[2] == '<' {
		return decodeSGRMouse(data)
	}

	maxScan := len(data)
	if maxScan > 16 {
		maxScan = 16
	}

	// Linux console F1-F5: ESC [ [ A-E
	if data[2] == '[' {
		if len(data) < 4 {
			return Event{}, 0
		}
		if key, mod, ok := lookupCSI(data[2:4]); ok {
			return Event{Type: EventKey, Key: key, Modifiers: mod}, 4
		}
		return Event{Type: EventOther}, 4
	}

	for end := 2; end < maxScan; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			if key, mod, ok := lookupCSI(data[2 : end+1]); ok {
				return Event{Type: EventKey, Key: key, Modifiers: mod}, end + 1
			}
			return Event{Type: EventOther}, end + 1
		}
		if b < 0x20 || b > 0x7e {
			// Not a CSI body, drop the introducer
			return Event{Type: EventOther}, end
		}
	}

	if maxScan == 16 {
		// Overlong, discard introducer so the stream can resync
		return Event{Type: EventOther}, 2
	}
	return Event{}, 0
}

// decodeSS3 handles ESC O <final>
func decodeSS3(data []byte) (Event, int) {
	if len(data) < 3 {
		return Event{}, 0
	}
	if key, mod, ok := lookupSS3(data[2:3]); ok {
		return Event{Type: EventKey, Key: key, Modifiers: mod}, 3
	}
	return Event{Type: EventOther}, 3
}

// controlEvent maps C0 control bytes to keys
func controlEvent(b byte) Event {
	switch b {
	case 0x00:
		return KeyEvent(KeyCtrlSpace)
	case 0x08:
		return KeyEvent(KeyBackspace)
	case 0x09:
		return KeyEvent(KeyTab)
	case 0x0a, 0x0d:
		return KeyEvent(KeyEnter)
	case 0x1b:
		return KeyEvent(KeyEscape)
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyEvent(KeyCtrlA + Key(b-0x01))
	}
	return Event{Type: EventOther}
}

// decodeSGRMouse parses ESC [ < Btn ; X ; Y (M|m)
func decodeSGRMouse(data []byte) (Event, int) {
	end := 3
	for end < len(data) && end < 32 {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= 32 {
		return Event{Type: EventOther}, 3
	}
	if end >= len(data) {
		return Event{}, 0
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return Event{Type: EventOther}, end + 1
	}

	ev := Event{Type: EventMouse, MouseX: x - 1, MouseY: y - 1}

	// Bits 0-1 button, bit 5 motion, bit 6 wheel
	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	if isScroll {
		if buttonID == 0 {
			ev.MouseBtn = MouseBtnWheelUp
		} else {
			ev.MouseBtn = MouseBtnWheelDown
		}
		ev.MouseAction = MouseActionPress
	} else {
		switch buttonID {
		case 0:
			ev.MouseBtn = MouseBtnLeft
		case 1:
			ev.MouseBtn = MouseBtnMiddle
		case 2:
			ev.MouseBtn = MouseBtnRight
		}

		switch {
		case data[end] == 'm':
			ev.MouseAction = MouseActionRelease
		case isMotion && ev.MouseBtn != MouseBtnNone:
			ev.MouseAction = MouseActionDrag
		case isMotion:
			ev.MouseAction = MouseActionMove
		default:
			ev.MouseAction = MouseActionPress
		}
	}

	if btn&4 != 0 {
		ev.Modifiers |= ModShift
	}
	if btn&8 != 0 {
		ev.Modifiers |= ModAlt
	}
	if btn&16 != 0 {
		ev.Modifiers |= ModCtrl
	}

	return ev, end + 1
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y"
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0
	val := 0

	for _, b := range data {
		switch {
		case b == ';':
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			}
			state++
			val = 0
			if state > 2 {
				return 0, 0, 0, false
			}
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			if val > 9999 {
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	return btn, x, val, true
}
