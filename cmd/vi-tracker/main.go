package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/vi-tracker/audio"
	"github.com/lixenwraith/vi-tracker/config"
	"github.com/lixenwraith/vi-tracker/render"
	"github.com/lixenwraith/vi-tracker/session"
	"github.com/lixenwraith/vi-tracker/status"
	"github.com/lixenwraith/vi-tracker/terminal"
	"github.com/lixenwraith/vi-tracker/track"
)

type flags struct {
	configPath string
	length     int
	emptyGlyph string
	backend    string
	audition   bool
	noSeed     bool
	debug      bool
	logFile    string
}

// newRootCmd wires flags to start, which receives the validated config
func newRootCmd(start func(cfg *config.Config, debug bool) error) *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "vi-tracker",
		Short: "Terminal step sequencer",
		Long: "vi-tracker shows a column of note steps in the terminal.\n" +
			"Up and Down move the selection, q quits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			return start(cfg, f.debug)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fl := cmd.Flags()
	fl.StringVar(&f.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/vi-tracker/config.yml)")
	fl.IntVar(&f.length, "length", track.DefaultLength, "number of steps")
	fl.StringVar(&f.emptyGlyph, "empty-glyph", string(track.GlyphDot), "glyph drawn for empty steps")
	fl.StringVar(&f.backend, "backend", config.BackendANSI, "terminal backend: ansi or tcell")
	fl.BoolVar(&f.audition, "audition", false, "play notes when the selection lands on them")
	fl.BoolVar(&f.noSeed, "no-seed", false, "start with an empty pattern")
	fl.BoolVar(&f.debug, "debug", false, "write debug logs to a file")
	fl.StringVar(&f.logFile, "log-file", "", "debug log path (default logs/vi-tracker.log)")
	return cmd
}

// resolveConfig layers file values under explicitly set flags and validates
// the result before any terminal mode is touched
func resolveConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	path, required := f.configPath, f.configPath != ""
	if !required {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	changed := cmd.Flags().Changed
	if changed("length") {
		cfg.Length = f.length
	}
	if changed("empty-glyph") {
		cfg.EmptyGlyph = f.emptyGlyph
	}
	if changed("backend") {
		cfg.Backend = f.backend
	}
	if changed("audition") {
		cfg.Audition = f.audition
	}
	if f.noSeed {
		cfg.SeedDemo = false
	}
	if changed("log-file") {
		cfg.LogFile = f.logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config, debugLog bool) error {
	logger, logFile, err := setupLogging(debugLog, cfg.LogFile)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	grid, err := track.NewGrid(cfg.Length)
	if err != nil {
		return err
	}
	if cfg.SeedDemo {
		if err := track.SeedDemo(grid, track.DemoStartKey, track.DemoInstrument); err != nil {
			return err
		}
	}

	keys, err := cfg.KeyTable()
	if err != nil {
		return err
	}

	term, err := openTerminal(cfg.Backend)
	if err != nil {
		return err
	}

	stats := status.NewRegistry()
	opts := session.Options{
		Renderer: render.New(cfg.EmptyRune()),
		Keys:     keys,
		Logger:   logger,
		Stats:    stats,
	}
	if cfg.Audition {
		if aud := startAudio(logger); aud != nil {
			defer aud.Close()
			opts.Auditioner = aud
		}
	}

	logger.Info("session start", "backend", cfg.Backend, "length", cfg.Length,
		"notes", countNotes(grid.Cells()), "audition", opts.Auditioner != nil)
	err = session.Run(term, grid, opts)
	logger.Info("session end", append([]any{"err", err}, stats.KeyVals()...)...)
	return err
}

func countNotes(cells []track.Cell) int {
	n := 0
	for _, c := range cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

func openTerminal(backend string) (terminal.Terminal, error) {
	switch backend {
	case config.BackendTcell:
		return terminal.NewTcellScreen()
	default:
		return terminal.New(), nil
	}
}

// startAudio returns nil when no audio device is usable; the session runs silent
func startAudio(logger *log.Logger) *audio.Beep {
	b := audio.NewBeep()
	if err := b.Start(); err != nil {
		logger.Warn("audio unavailable, continuing without audition", "err", err)
		return nil
	}
	return b
}

func main() {
	// Restore the terminal even if something below crashes outside the session guard
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mVI-TRACKER CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	if err := newRootCmd(run).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
