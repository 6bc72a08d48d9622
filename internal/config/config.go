// Package config loads the optional sketchboard.yaml settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"SketchBoard/internal/engine"
	"SketchBoard/internal/freehand"
	"SketchBoard/internal/logging"
	"SketchBoard/internal/render"
	"SketchBoard/internal/state"
)

// DefaultFile is the file name looked up when no path is given.
const DefaultFile = "sketchboard.yaml"

// Export scale limits.
const (
	MinExportScale float32 = 1
	MaxExportScale float32 = 8
)

var ErrInvalid = errors.New("invalid config")

// Config represents sketchboard.yaml.
type Config struct {
	Board   BoardConfig    `yaml:"board"`
	Brushes freehand.Table `yaml:"brushes,omitempty"`
	Window  WindowConfig   `yaml:"window"`
	Export  ExportConfig   `yaml:"export"`
	Bridge  BridgeConfig   `yaml:"bridge"`
	Log     LogConfig      `yaml:"log"`
}

// BoardConfig holds the initial toolbar state and the undo policy.
type BoardConfig struct {
	Tool       string  `yaml:"tool"`
	Color      string  `yaml:"color"`
	Width      float32 `yaml:"width"`
	Brush      string  `yaml:"brush"`
	UndoOrder  string  `yaml:"undo_order"`
	Background string  `yaml:"background"`
}

// WindowConfig sizes the desktop window.
type WindowConfig struct {
	Title  string  `yaml:"title"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// ExportConfig controls snapshot output.
type ExportConfig struct {
	Scale float32 `yaml:"scale"`
	Dir   string  `yaml:"dir,omitempty"`
}

// BridgeConfig controls the remote pen endpoint.
type BridgeConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Addr      string `yaml:"addr"`
	Advertise bool   `yaml:"advertise"`
	Instance  string `yaml:"instance,omitempty"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			Tool:       string(engine.ToolPen),
			Color:      "black",
			Width:      2,
			Brush:      string(state.BrushNormal),
			UndoOrder:  string(state.UndoShapesFirst),
			Background: "#ffffff",
		},
		Window: WindowConfig{Title: "SketchBoard", Width: 1200, Height: 800},
		Export: ExportConfig{Scale: 2},
		Bridge: BridgeConfig{Enabled: true, Addr: ":8765", Advertise: true},
		Log:    LogConfig{Level: "info"},
	}
}

// LoadOptional reads path if present. A missing file yields the defaults;
// a present file overrides them field by field.
func LoadOptional(path string) (*Config, error) {
	if path == "" {
		path = DefaultFile
	}
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate clamps ranged values and rejects unknown names.
func (c *Config) Validate() error {
	var errs []error
	if !engine.Tool(c.Board.Tool).Valid() {
		errs = append(errs, fmt.Errorf("board.tool: unknown tool %q", c.Board.Tool))
	}
	if !render.ValidColor(c.Board.Color) {
		errs = append(errs, fmt.Errorf("board.color: cannot parse %q", c.Board.Color))
	}
	if !render.ValidColor(c.Board.Background) {
		errs = append(errs, fmt.Errorf("board.background: cannot parse %q", c.Board.Background))
	}
	c.Board.Width = min(max(c.Board.Width, engine.MinWidth), engine.MaxWidth)
	if !state.BrushProfile(c.Board.Brush).Valid() {
		errs = append(errs, fmt.Errorf("board.brush: unknown brush %q", c.Board.Brush))
	}
	if !state.UndoOrder(c.Board.UndoOrder).Valid() {
		errs = append(errs, fmt.Errorf("board.undo_order: must be %q or %q", state.UndoShapesFirst, state.UndoCreation))
	}
	for b, p := range c.Brushes {
		if !b.Valid() {
			errs = append(errs, fmt.Errorf("brushes: unknown brush %q", b))
			continue
		}
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("brushes.%s: %w", b, err))
		}
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window: size must be positive, got %vx%v", c.Window.Width, c.Window.Height))
	}
	if strings.TrimSpace(c.Window.Title) == "" {
		c.Window.Title = Default().Window.Title
	}
	c.Export.Scale = min(max(c.Export.Scale, MinExportScale), MaxExportScale)
	if c.Bridge.Enabled && c.Bridge.Addr == "" {
		errs = append(errs, errors.New("bridge.addr: required when the bridge is enabled"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// BrushTable returns the stock profiles with the file's overrides applied.
// An override replaces the whole profile for its brush.
func (c *Config) BrushTable() freehand.Table {
	return freehand.DefaultTable().Merge(c.Brushes)
}
