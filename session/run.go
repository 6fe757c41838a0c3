package session

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/vi-tracker/input"
	"github.com/lixenwraith/vi-tracker/render"
	"github.com/lixenwraith/vi-tracker/status"
	"github.com/lixenwraith/vi-tracker/terminal"
	"github.com/lixenwraith/vi-tracker/track"
)

var ErrNoGrid = errors.New("session needs a non-empty grid")

// Auditioner plays a note when the selection lands on it
type Auditioner interface {
	Audition(n track.Note)
}

// Options tune a Run. Zero values select the defaults.
type Options struct {
	Renderer   *render.Renderer
	Keys       *input.KeyTable
	Auditioner Auditioner // nil disables audition
	Logger     *log.Logger
	Stats      *status.Registry

	// OnSignal runs after the guard is released for SIGTERM, SIGHUP or
	// SIGINT. Default exits the process with status 1.
	OnSignal func(os.Signal)
}

func (o Options) withDefaults() Options {
	if o.Renderer == nil {
		o.Renderer = render.New(track.GlyphDot)
	}
	if o.Keys == nil {
		o.Keys = input.DefaultKeyTable()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Stats == nil {
		o.Stats = status.NewRegistry()
	}
	if o.OnSignal == nil {
		o.OnSignal = exitOnSignal
	}
	return o
}

// Run owns t from acquire to release: draw a frame, wait for one event, apply
// it, repeat until the grid stops running. The terminal is released exactly
// once on every exit path. A panic inside the loop is re-raised after release.
// The first loop error wins; a release error surfaces only after a clean loop.
// A signal releases the terminal between frames and Run returns ErrReleased.
func Run(t terminal.Terminal, g *track.Grid, opts Options) (err error) {
	if g == nil || g.Len() == 0 {
		return ErrNoGrid
	}
	opts = opts.withDefaults()
	logger := opts.Logger

	guard, err := Acquire(t)
	if err != nil {
		return fmt.Errorf("acquire terminal: %w", err)
	}
	logger.Debug("terminal acquired", "steps", g.Len())

	stop := watchSignals(guard, opts.OnSignal, logger)
	defer stop()

	defer func() {
		r := recover()
		rerr := guard.Release()
		if rerr != nil {
			logger.Error("release terminal", "err", rerr)
		} else {
			logger.Debug("terminal released")
		}
		if r != nil {
			logger.Error("session panic", "panic", r)
			panic(r)
		}
		if err == nil && rerr != nil {
			err = fmt.Errorf("release terminal: %w", rerr)
		}
	}()

	return loop(t, guard, g, opts)
}

// loop draws under the guard; input is read outside it since PollEvent never
// touches output state, and a release during the read is seen when it returns
func loop(t terminal.Terminal, guard *Guard, g *track.Grid, opts Options) error {
	frames := opts.Stats.Counter(status.Frames)
	events := opts.Stats.Counter(status.Events)

	for g.Running() {
		if err := guard.Do(func() error { return opts.Renderer.Draw(t, g) }); err != nil {
			return err
		}
		frames.Add(1)

		out, err := input.Step(t, opts.Keys, g)
		if guard.Released() {
			return ErrReleased
		}
		if err != nil {
			return err
		}
		events.Add(1)
		if out.Intent == input.IntentNone {
			continue
		}
		opts.Stats.Inc(status.IntentPrefix + out.Intent.String())
		opts.Logger.Debug("intent", "intent", out.Intent, "moved", out.Moved, "selection", g.Selection())

		if !out.Moved {
			continue
		}
		opts.Stats.Inc(status.Moves)
		if opts.Auditioner != nil {
			if n, ok := g.Cell(g.Selection()).Note(); ok {
				opts.Auditioner.Audition(n)
				opts.Stats.Inc(status.Auditions)
			}
		}
	}
	return nil
}
