package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-tracker/input"
)

const (
	AppName  = "vi-tracker"
	FileName = "config.yml"

	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

var (
	ErrInvalidLength  = errors.New("length must be at least 1")
	ErrInvalidGlyph   = errors.New("empty_glyph must be a single one-column character")
	ErrUnknownBackend = errors.New("unknown backend")
)

// Backends lists accepted backend names
var Backends = []string{BackendANSI, BackendTcell}

//go:embed default.yml
var defaultYAML []byte

// Config is the on-disk tracker configuration
type Config struct {
	Length     int                 `yaml:"length"`
	EmptyGlyph string              `yaml:"empty_glyph"`
	Backend    string              `yaml:"backend"`
	Audition   bool                `yaml:"audition"`
	SeedDemo   bool                `yaml:"seed_demo"`
	LogFile    string              `yaml:"log_file"`
	Keys       map[string][]string `yaml:"keys"` // overrides on top of the stock key table
}

// Default returns the built-in configuration
func Default() *Config {
	var c Config
	if err := decode(bytes.NewReader(defaultYAML), &c); err != nil {
		panic(fmt.Errorf("embedded default config: %w", err))
	}
	return &c
}

// DefaultPath is $XDG_CONFIG_HOME/vi-tracker/config.yml or the platform equivalent
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load reads path over the defaults. A missing file yields the defaults
// unless required is set, as it is for a path given on the command line.
func Load(path string, required bool) (*Config, error) {
	c := Default()

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return c, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := decode(f, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return c, nil
}

// decode rejects unknown fields; an empty document leaves c unchanged
func decode(r io.Reader, c *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks every field a session depends on
func (c *Config) Validate() error {
	if c.Length < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, c.Length)
	}
	if utf8.RuneCountInString(c.EmptyGlyph) != 1 || runewidth.StringWidth(c.EmptyGlyph) != 1 {
		return fmt.Errorf("%w: %q", ErrInvalidGlyph, c.EmptyGlyph)
	}
	if !slices.Contains(Backends, c.Backend) {
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Backend)
	}
	return input.DefaultKeyTable().BindAll(c.Keys)
}

// EmptyRune is the glyph drawn for empty steps. Call after Validate.
func (c *Config) EmptyRune() rune {
	r, _ := utf8.DecodeRuneInString(c.EmptyGlyph)
	return r
}

// KeyTable returns the default bindings with the configured ones applied
func (c *Config) KeyTable() (*input.KeyTable, error) {
	kt := input.DefaultKeyTable()
	if err := kt.BindAll(c.Keys); err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	return kt, nil
}
