package track

import "strings"

// FormatWidth is the column count of a formatted empty cell and of any
// occupied cell in octaves 0-9
const FormatWidth = 7

// Empty-cell glyphs seen in practice
const (
	GlyphDot   = '.'
	GlyphSpace = ' '
)

// Cell is one step: either empty or holding exactly one Note.
// Fields are unexported so the variant can only be built through EmptyCell or NoteCell.
type Cell struct {
	note     Note
	occupied bool
}

// EmptyCell returns a silent step
func EmptyCell() Cell {
	return Cell{}
}

// NoteCell returns a step holding n
func NoteCell(n Note) Cell {
	return Cell{note: n, occupied: true}
}

// Note returns the held note and whether the cell is occupied
func (c Cell) Note() (Note, bool) {
	return c.note, c.occupied
}

// IsEmpty reports whether the cell holds no note
func (c Cell) IsEmpty() bool {
	return !c.occupied
}

// Format renders a cell for display. Empty cells become FormatWidth copies of empty.
func Format(c Cell, empty rune) string {
	if n, ok := c.Note(); ok {
		return n.String()
	}
	return strings.Repeat(string(empty), FormatWidth)
}
