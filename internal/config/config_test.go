package config

import (
	"os"
	"path/filepath"
	"testing"

	"histlogo/internal/annulus"
	"histlogo/internal/histogram"
	"histlogo/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, 360, cfg.ResizeHeight)
	assert.Equal(t, histogram.CoarseBins, cfg.Histogram.Bins)
	assert.Equal(t, histogram.FullBins, cfg.Histogram.FullBins)
	assert.Equal(t, annulus.DefaultParams(), cfg.Params())
}

func TestLoadOverridesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "viewer.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 480, cfg.ResizeHeight)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 40, cfg.Logo.OuterRadius)
	assert.Equal(t, 45.0, cfg.Logo.Angle)
	// untouched fields keep their defaults
	assert.Equal(t, annulus.InnerCircleAspect, cfg.Logo.InnerAspect)
	assert.Equal(t, annulus.DefaultDistance, cfg.Logo.Distance)
	assert.Equal(t, geometry.Size{Width: 320, Height: 240}, cfg.Logo.Canvas)
	assert.Equal(t, geometry.NewPointInt(160, 70), cfg.Logo.RedCenter)
	assert.Equal(t, 8, cfg.Histogram.Bins)
	assert.Equal(t, histogram.DiffWithinChannel, cfg.Histogram.DiffMode)
	assert.True(t, cfg.Plot.AutoScale)

	r := cfg.Renderer()
	assert.Equal(t, 40, r.Params.OuterRadius)
	assert.Equal(t, cfg.Logo.Canvas, r.Canvas)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("resize_height: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("histogram:\n  diff_mode: peak\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero height", func(c *Config) { c.ResizeHeight = 0 }},
		{"zero radius", func(c *Config) { c.Logo.OuterRadius = 0 }},
		{"angle too large", func(c *Config) { c.Logo.Angle = 361 }},
		{"negative angle", func(c *Config) { c.Logo.Angle = -1 }},
		{"aspect of one", func(c *Config) { c.Logo.InnerAspect = 1 }},
		{"zero aspect", func(c *Config) { c.Logo.InnerAspect = 0 }},
		{"aspect rounds inner onto outer", func(c *Config) { c.Logo.InnerAspect = 0.99 }},
		{"full circle wedge", func(c *Config) { c.Logo.Angle = 360 }},
		{"zero distance", func(c *Config) { c.Logo.Distance = 0 }},
		{"empty canvas", func(c *Config) { c.Logo.Canvas = geometry.Size{} }},
		{"no bins", func(c *Config) { c.Histogram.Bins = 0 }},
		{"unknown mode", func(c *Config) { c.Histogram.DiffMode = "max" }},
		{"no plot size", func(c *Config) { c.Plot.Width = 0 }},
		{"no y limit", func(c *Config) { c.Plot.LineYMax = 0 }},
		{"negative camera", func(c *Config) { c.Capture.CameraID = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, Validate(cfg), ErrInvalid)
		})
	}
}

func TestValidateFillsOptionalFields(t *testing.T) {
	cfg := Default()
	cfg.Histogram.FullBins = 0
	cfg.Histogram.DiffMode = ""
	cfg.Plot.BarWidth = 3
	cfg.Plot.AutoScale = true
	cfg.Plot.LineYMax = 0

	require.NoError(t, Validate(cfg))
	assert.Equal(t, histogram.FullBins, cfg.Histogram.FullBins)
	assert.Equal(t, histogram.DiffAcrossChannels, cfg.Histogram.DiffMode)
	assert.Equal(t, 0.7, cfg.Plot.BarWidth)
}
