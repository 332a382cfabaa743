// Package config holds the startup configuration of the viewer.
//
// Values are fixed once the session starts; a YAML file may override the
// built-in defaults and command line flags override the file.
package config

import (
	"errors"
	"fmt"
	"os"

	"histlogo/internal/annulus"
	"histlogo/internal/histogram"
	"histlogo/internal/shape"
	"histlogo/pkg/geometry"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete viewer configuration.
type Config struct {
	ResizeHeight int             `yaml:"resize_height"` // target frame height, aspect kept
	Debug        bool            `yaml:"debug"`         // per-frame logging
	Logo         LogoConfig      `yaml:"logo"`
	Histogram    HistogramConfig `yaml:"histogram"`
	Plot         PlotConfig      `yaml:"plot"`
	Capture      CaptureConfig   `yaml:"capture"`
}

// LogoConfig contains the reference shape geometry and canvas layout.
type LogoConfig struct {
	OuterRadius int               `yaml:"outer_radius"`
	Angle       float64           `yaml:"angle"`        // reference sector angle, degrees
	InnerAspect float64           `yaml:"inner_aspect"` // inner/outer radius ratio
	Distance    int               `yaml:"distance"`     // reference center spacing
	Canvas      geometry.Size     `yaml:"canvas"`
	RedCenter   geometry.PointInt `yaml:"red_center"`
	AngleOffset float64           `yaml:"angle_offset"` // added to the derived angles of the secondary shapes
}

// HistogramConfig contains binning settings.
type HistogramConfig struct {
	Bins     int                `yaml:"bins"`      // coarse bins, one logo each
	FullBins int                `yaml:"full_bins"` // line plot resolution
	DiffMode histogram.DiffMode `yaml:"diff_mode"` // bin or channel
}

// PlotConfig contains plot surface settings.
type PlotConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	LineYMax  float64 `yaml:"line_y_max"` // fixed y limit of the line plot
	BarYMax   float64 `yaml:"bar_y_max"`  // fixed y limit of the stacked bar plot
	BarWidth  float64 `yaml:"bar_width"`  // relative bar width, 0-1
	AutoScale bool    `yaml:"auto_scale"` // ignore the fixed limits and fit the data
}

// CaptureConfig selects the default input.
type CaptureConfig struct {
	CameraID int `yaml:"camera_id"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ResizeHeight: 360,
		Logo: LogoConfig{
			OuterRadius: annulus.DefaultOuterRadius,
			Angle:       annulus.DefaultAngle,
			InnerAspect: annulus.InnerCircleAspect,
			Distance:    annulus.DefaultDistance,
			Canvas:      geometry.Size{Width: shape.DefaultCanvasWidth, Height: shape.DefaultCanvasHeight},
			RedCenter:   shape.DefaultRedCenter,
			AngleOffset: 60,
		},
		Histogram: HistogramConfig{
			Bins:     histogram.CoarseBins,
			FullBins: histogram.FullBins,
			DiffMode: histogram.DiffAcrossChannels,
		},
		Plot: PlotConfig{
			Width:    640,
			Height:   360,
			LineYMax: 54000,
			BarYMax:  700000,
			BarWidth: 0.7,
		},
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Params returns the shape geometry described by the logo settings.
func (c *Config) Params() annulus.Params {
	return annulus.Params{
		OuterRadius: c.Logo.OuterRadius,
		Angle:       c.Logo.Angle,
		Aspect:      c.Logo.InnerAspect,
		Distance:    c.Logo.Distance,
	}
}

// Renderer returns a shape renderer for the logo settings.
func (c *Config) Renderer() *shape.Renderer {
	return shape.NewRenderer(c.Params(), c.Logo.Canvas, c.Logo.RedCenter)
}

// Validate checks the configuration and fills in defaults for optional fields.
func Validate(cfg *Config) error {
	if cfg.ResizeHeight <= 0 {
		return fmt.Errorf("%w: resize_height must be > 0", ErrInvalid)
	}

	if cfg.Logo.OuterRadius <= 0 {
		return fmt.Errorf("%w: logo.outer_radius must be > 0", ErrInvalid)
	}
	if cfg.Logo.Angle < 0 || cfg.Logo.Angle > 360 {
		return fmt.Errorf("%w: logo.angle must be within [0, 360]", ErrInvalid)
	}
	if cfg.Logo.InnerAspect <= 0 || cfg.Logo.InnerAspect >= 1 {
		return fmt.Errorf("%w: logo.inner_aspect must be within (0, 1)", ErrInvalid)
	}
	if cfg.Logo.Distance <= 0 {
		return fmt.Errorf("%w: logo.distance must be > 0", ErrInvalid)
	}
	if cfg.Logo.Canvas.Empty() {
		return fmt.Errorf("%w: logo.canvas must have a positive size", ErrInvalid)
	}
	params := cfg.Params()
	if params.InnerRadius(params.OuterRadius) >= params.OuterRadius {
		return fmt.Errorf("%w: logo.inner_aspect %.3g rounds the inner radius up to the outer radius %d",
			ErrInvalid, params.Aspect, params.OuterRadius)
	}
	if params.ReferenceShapeArea() <= 0 {
		return fmt.Errorf("%w: logo.angle %.1f leaves the reference shape without area", ErrInvalid, params.Angle)
	}

	if cfg.Histogram.Bins <= 0 {
		return fmt.Errorf("%w: histogram.bins must be > 0", ErrInvalid)
	}
	if cfg.Histogram.FullBins <= 0 {
		cfg.Histogram.FullBins = histogram.FullBins
	}
	if cfg.Histogram.DiffMode == "" {
		cfg.Histogram.DiffMode = histogram.DiffAcrossChannels
	}
	if !cfg.Histogram.DiffMode.Valid() {
		return fmt.Errorf("%w: histogram.diff_mode %q is not one of bin, channel", ErrInvalid, cfg.Histogram.DiffMode)
	}

	if cfg.Plot.Width <= 0 || cfg.Plot.Height <= 0 {
		return fmt.Errorf("%w: plot size must be positive", ErrInvalid)
	}
	if cfg.Plot.BarWidth <= 0 || cfg.Plot.BarWidth > 1 {
		cfg.Plot.BarWidth = 0.7
	}
	if !cfg.Plot.AutoScale && (cfg.Plot.LineYMax <= 0 || cfg.Plot.BarYMax <= 0) {
		return fmt.Errorf("%w: plot y limits must be > 0 unless auto_scale is set", ErrInvalid)
	}

	if cfg.Capture.CameraID < 0 {
		return fmt.Errorf("%w: capture.camera_id must be >= 0", ErrInvalid)
	}
	return nil
}
