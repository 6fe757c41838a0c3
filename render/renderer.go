package render

import (
	"fmt"

	"github.com/lixenwraith/vi-tracker/terminal"
	"github.com/lixenwraith/vi-tracker/track"
)

// Screen is the output half of terminal.Terminal
type Screen interface {
	ClearHome() error
	SetColors(fg, bg terminal.Color) error
	ResetColors() error
	WriteString(s string) error
	NextLine() error
	Flush() error
}

// Colors is a foreground/background pair
type Colors struct {
	Fg terminal.Color
	Bg terminal.Color
}

// DefaultHighlight inverts the usual light-on-dark text
var DefaultHighlight = Colors{Fg: terminal.ColorBlack, Bg: terminal.ColorWhite}

// Renderer projects a grid onto a screen, one step per line
type Renderer struct {
	Empty     rune
	Highlight Colors
}

// New returns a renderer drawing empty steps with the given glyph
func New(empty rune) *Renderer {
	return &Renderer{Empty: empty, Highlight: DefaultHighlight}
}

// Draw renders one full frame: clear and home, every step top to bottom with
// the selected one highlighted, then a single flush. The grid is only read.
func (r *Renderer) Draw(s Screen, g track.View) error {
	var f frame

	f.do("clear", s.ClearHome)

	sel := g.Selection()
	for i := 0; i < g.Len(); i++ {
		if i == sel {
			f.do("highlight", func() error { return s.SetColors(r.Highlight.Fg, r.Highlight.Bg) })
		}
		text := track.Format(g.Cell(i), r.Empty)
		f.do("write", func() error { return s.WriteString(text) })
		if i == sel {
			f.do("reset colors", s.ResetColors)
		}
		f.do("next line", s.NextLine)
	}

	f.do("flush", s.Flush)
	return f.err
}

// frame stops issuing calls after the first failure
type frame struct {
	err error
}

func (f *frame) do(op string, fn func() error) {
	if f.err != nil {
		return
	}
	if err := fn(); err != nil {
		f.err = fmt.Errorf("render %s: %w", op, err)
	}
}
