package terminal

import (
	"bufio"
)

// Pre-allocated ANSI sequence fragments
var (
	csi      = []byte("\x1b[")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiSGR0  = []byte("\x1b[0m")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")
	csiNextLine   = []byte("\x1b[1E")

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")

	// Mouse reporting, only ever switched off
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseSGROff    = []byte("\x1b[?1006l")
)

// writeInt writes a small non-negative integer without allocation
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	var buf [5]byte
	i := len(buf)
	for n > 0 && i > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	w.Write(buf[i:])
}

// writeColorPair emits one SGR sequence setting both colors.
// Basic colors use 30-37/40-47, bright 90-97/100-107, the rest 38;5;N / 48;5;N.
func writeColorPair(w *bufio.Writer, fg, bg Color) {
	w.Write(csi)
	writeColorParam(w, fg, 30, 90, 38, 39)
	w.WriteByte(';')
	writeColorParam(w, bg, 40, 100, 48, 49)
	w.WriteByte('m')
}

func writeColorParam(w *bufio.Writer, c Color, base, bright, extended, def int) {
	switch {
	case c < 0:
		writeInt(w, def)
	case c < 8:
		writeInt(w, base+int(c))
	case c < 16:
		writeInt(w, bright+int(c)-8)
	default:
		writeInt(w, extended)
		w.Write([]byte(";5;"))
		writeInt(w, int(c&0xff))
	}
}
