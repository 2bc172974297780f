// Package config loads the TOML settings shared by the editor and ddtool.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ha1tch/deluxepaint/internal/canvas"
	"github.com/ha1tch/deluxepaint/internal/history"
	"github.com/ha1tch/deluxepaint/internal/stroke"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "deluxepaint.toml"

// Config is the on-disk configuration.
type Config struct {
	Canvas  CanvasConfig  `toml:"canvas"`
	History HistoryConfig `toml:"history"`
	Brush   BrushConfig   `toml:"brush"`
	Paths   PathsConfig   `toml:"paths"`
}

type CanvasConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type HistoryConfig struct {
	Limit int `toml:"limit"`
}

type BrushConfig struct {
	Width        float32 `toml:"width"`
	EraserWidth  float32 `toml:"eraser_width"`
	Deadband     float32 `toml:"deadband"`
	DefaultColor Color   `toml:"color"`
}

type PathsConfig struct {
	ProjectDir string `toml:"project_dir"`
	ExportPath string `toml:"export_path"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Canvas:  CanvasConfig{Width: 1024, Height: 768},
		History: HistoryConfig{Limit: history.DefaultLimit},
		Brush: BrushConfig{
			Width:        stroke.DefaultBrushWidth,
			EraserWidth:  stroke.DefaultEraserWidth,
			Deadband:     stroke.DefaultDeadband,
			DefaultColor: Color{A: 255},
		},
		Paths: PathsConfig{
			ProjectDir: "drawing.ddp",
			ExportPath: "drawing.png",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error. Keys
// the config does not know are rejected so typos surface early.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if c.History.Limit < 2 {
		errs = append(errs, fmt.Errorf("history limit %d must be at least 2", c.History.Limit))
	}
	if c.Brush.Width <= 0 || c.Brush.EraserWidth <= 0 {
		errs = append(errs, errors.New("brush widths must be positive"))
	}
	if c.Brush.Deadband < 0 {
		errs = append(errs, errors.New("deadband must not be negative"))
	}
	return errors.Join(errs...)
}

// SessionOptions converts the settings into canvas session options.
func (c *Config) SessionOptions() []canvas.Option {
	return []canvas.Option{
		canvas.WithHistoryLimit(c.History.Limit),
		canvas.WithBrushWidth(c.Brush.Width),
		canvas.WithEraserWidth(c.Brush.EraserWidth),
		canvas.WithDeadband(c.Brush.Deadband),
		canvas.WithColor(c.Brush.DefaultColor.RGBA()),
	}
}

// Color is a straight-alpha color written as #RRGGBB or #RRGGBBAA.
type Color color.NRGBA

// RGBA returns the premultiplied form used by the canvas.
func (c Color) RGBA() color.RGBA {
	return color.RGBAModel.Convert(color.NRGBA(c)).(color.RGBA)
}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor parses #RRGGBB or #RRGGBBAA; the leading # is optional.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("bad color %q", s)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
