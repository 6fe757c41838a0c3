package track

import (
	"errors"
	"fmt"
)

// DefaultLength is the step count of a new session
const DefaultLength = 32

var (
	ErrEmptyGrid  = errors.New("grid length must be at least 1")
	ErrIndexRange = errors.New("cell index out of range")
)

// View is the read-only side of a Grid
type View interface {
	Len() int
	Cell(i int) Cell
	Selection() int
	Running() bool
}

// Grid owns all mutable session state: a fixed-length column of cells,
// the selected step, and the run flag.
// Invariant: 0 <= selection < len(cells); running only goes true -> false.
// A Grid is single-owner, not safe for concurrent use.
type Grid struct {
	cells     []Cell
	selection int
	running   bool
}

// NewGrid returns a running grid of length empty cells with step 0 selected
func NewGrid(length int) (*Grid, error) {
	if length <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrEmptyGrid, length)
	}
	return &Grid{
		cells:   make([]Cell, length),
		running: true,
	}, nil
}

// Len returns the fixed number of steps
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cell returns a copy of the step at i; out-of-range indices yield an empty cell
func (g *Grid) Cell(i int) Cell {
	if i < 0 || i >= len(g.cells) {
		return EmptyCell()
	}
	return g.cells[i]
}

// Cells returns a copy of all steps in sequence order, for inspecting the
// whole pattern at once; mutating the copy does not affect the grid
func (g *Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Selection returns the selected step index
func (g *Grid) Selection() int {
	return g.selection
}

// Running reports whether the session loop should continue
func (g *Grid) Running() bool {
	return g.running
}

// MoveSelectionUp selects the previous step; no-op on the first step
func (g *Grid) MoveSelectionUp() bool {
	if g.selection == 0 {
		return false
	}
	g.selection--
	return true
}

// MoveSelectionDown selects the next step; no-op on the last step
func (g *Grid) MoveSelectionDown() bool {
	if g.selection >= len(g.cells)-1 {
		return false
	}
	g.selection++
	return true
}

// RequestQuit stops the session loop. Irreversible.
func (g *Grid) RequestQuit() {
	g.running = false
}

// SetCell replaces the step at index wholesale
func (g *Grid) SetCell(index int, c Cell) error {
	if index < 0 || index >= len(g.cells) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexRange, index, len(g.cells))
	}
	g.cells[index] = c
	return nil
}
