// Package config loads the canvas settings from TOML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"InfiniteBoard/internal/board"
	"InfiniteBoard/internal/export"
	"InfiniteBoard/internal/state"
)

var ErrInvalid = errors.New("invalid config")

// ToolStyle overrides the defaults of one tool.
type ToolStyle struct {
	Width   float64 `toml:"width"`
	Opacity float64 `toml:"opacity"`
}

// Config is the full application configuration.
type Config struct {
	WorldSize    float64              `toml:"world_size"`
	ZoomStep     float64              `toml:"zoom_step"`
	Background   string               `toml:"background"`
	DefaultColor string               `toml:"default_color"`
	DefaultTool  state.Tool           `toml:"default_tool"`
	MinBoxSize   float64              `toml:"min_box_size"`
	Viewport     state.Size           `toml:"viewport"`
	Hit          state.HitTolerances  `toml:"hit"`
	Palette      []string             `toml:"palette"`
	Tools        map[string]ToolStyle `toml:"tools"`
	Storage      Storage              `toml:"storage"`
	Export       Export               `toml:"export"`
}

// Storage configures where uploaded drawings land.
type Storage struct {
	Root string `toml:"root"`
}

// Export configures snapshot rendering.
type Export struct {
	// PNGMaxSide caps the longer side of exported PNGs, in pixels.
	PNGMaxSide int `toml:"png_max_side"`
	// Margin is added around the drawing, in world units.
	Margin   float64 `toml:"margin"`
	PageSize string  `toml:"page_size"`
	// Formats lists what a save writes, in order: "png", "json" and/or "pdf".
	Formats []string `toml:"formats"`
}

// Default returns the built-in configuration.
func Default() Config {
	o := board.DefaultOptions()
	return Config{
		WorldSize:    o.WorldSize,
		ZoomStep:     o.ZoomStep,
		Background:   o.Background,
		DefaultColor: o.DefaultColor,
		DefaultTool:  o.DefaultTool,
		MinBoxSize:   o.MinBoxSize,
		Viewport:     o.Viewport,
		Hit:          o.Tolerances,
		Palette:      []string{"#000000", "#ef4444", "#22c55e", "#3b82f6", "#eab308"},
		Storage:      Storage{Root: "drawings"},
		Export: Export{
			PNGMaxSide: 2048,
			Margin:     32,
			PageSize:   "A4",
			Formats:    []string{"png", "json", "pdf"},
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges and colors.
func (c Config) Validate() error {
	var errs []error
	if c.WorldSize <= 0 {
		errs = append(errs, fmt.Errorf("world_size must be positive, got %g", c.WorldSize))
	}
	if c.ZoomStep <= 1 {
		errs = append(errs, fmt.Errorf("zoom_step must be greater than 1, got %g", c.ZoomStep))
	}
	if c.MinBoxSize <= 0 {
		errs = append(errs, fmt.Errorf("min_box_size must be positive, got %g", c.MinBoxSize))
	}
	if c.Hit.Stroke <= 0 || c.Hit.Endpoint <= 0 || c.Hit.BoxHandle <= 0 || c.Hit.BoxPadding < 0 {
		errs = append(errs, errors.New("hit tolerances must be positive"))
	}
	for _, col := range append([]string{c.Background, c.DefaultColor}, c.Palette...) {
		if _, err := state.ParseColor(col); err != nil {
			errs = append(errs, err)
		}
	}
	for name, ts := range c.Tools {
		if _, err := state.ParseTool(name); err != nil {
			errs = append(errs, err)
		}
		if ts.Width < 0 || ts.Opacity < 0 || ts.Opacity > 1 {
			errs = append(errs, fmt.Errorf("tool %s: width must be >= 0 and opacity in [0,1]", name))
		}
	}
	if len(c.Export.Formats) == 0 {
		errs = append(errs, errors.New("export.formats must name at least one format"))
	}
	for _, name := range c.Export.Formats {
		if _, err := export.ParseFormat(name); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Export.PNGMaxSide <= 0 {
		errs = append(errs, fmt.Errorf("export.png_max_side must be positive, got %d", c.Export.PNGMaxSide))
	}
	if c.Storage.Root == "" {
		errs = append(errs, errors.New("storage.root must be set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// ToolTable applies the [tools] overrides to the built-in table.
func (c Config) ToolTable() state.ToolTable {
	table := state.DefaultToolTable()
	for name, ts := range c.Tools {
		t, err := state.ParseTool(name)
		if err != nil {
			continue
		}
		spec := table[t]
		override := state.Style{Width: ts.Width, Opacity: ts.Opacity}
		spec.Render = override.Merge(spec.Render)
		if spec.Seed != (state.Style{}) {
			spec.Seed = override.Merge(spec.Seed)
		}
		table[t] = spec
	}
	return table
}

// Options converts the config into session options.
func (c Config) Options() board.Options {
	return board.Options{
		WorldSize:    c.WorldSize,
		ZoomStep:     c.ZoomStep,
		Viewport:     c.Viewport,
		Background:   c.Background,
		DefaultColor: c.DefaultColor,
		DefaultTool:  c.DefaultTool,
		Tolerances:   c.Hit,
		MinBoxSize:   c.MinBoxSize,
		Tools:        c.ToolTable(),
	}
}

// ExportFormats returns the parsed export.formats, skipping unknown names.
func (c Config) ExportFormats() []export.Format {
	var out []export.Format
	for _, name := range c.Export.Formats {
		if f, err := export.ParseFormat(name); err == nil {
			out = append(out, f)
		}
	}
	return out
}

// ExportOptions converts the [export] table into encoder options.
func (c Config) ExportOptions() export.Options {
	return export.Options{
		MaxSide:  c.Export.PNGMaxSide,
		Margin:   c.Export.Margin,
		PageSize: c.Export.PageSize,
	}
}
