// Package config handles atlastool configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/texatlas/pkg/atlas"
	"github.com/Faultbox/texatlas/pkg/mipmap"
)

// Config holds all atlastool settings.
type Config struct {
	Atlas   AtlasConfig   `yaml:"atlas"`
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// AtlasConfig holds packing settings.
type AtlasConfig struct {
	MaxTextureSize int    `yaml:"max_texture_size"` // 0 = texture limit
	MaxLayerCount  int    `yaml:"max_layer_count"`  // 0 = texture limit
	DefaultBorder  string `yaml:"default_border"`   // none, solid, wrap_both, wrap_positive
	BorderColor    string `yaml:"border_color"`     // #rrggbb or #rrggbbaa, for solid borders
	Mipmap         string `yaml:"mipmap"`           // none, box, nearest, bilinear, approx-bilinear, catmullrom

	// Limits reported by the in-memory texture used by "pack".
	MemoryMaxSize   int `yaml:"memory_max_size"`
	MemoryMaxLayers int `yaml:"memory_max_layers"`
}

// InputConfig holds image loading settings.
type InputConfig struct {
	ColorKey  string `yaml:"color_key"` // pixels of this color become transparent; empty disables
	Tolerance uint8  `yaml:"tolerance"`
}

// OutputConfig holds output file settings.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	Manifest    string `yaml:"manifest"`
	LayerPrefix string `yaml:"layer_prefix"`
	MipLevels   bool   `yaml:"mip_levels"` // also write every mip level of each layer
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Atlas: AtlasConfig{
			DefaultBorder:   "wrap_both",
			BorderColor:     "#00000000",
			Mipmap:          "box",
			MemoryMaxSize:   16384,
			MemoryMaxLayers: 256,
		},
		Output: OutputConfig{
			Dir:         "atlas",
			Manifest:    "atlas.yaml",
			LayerPrefix: "layer",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the values that cannot be expressed in YAML types.
func (c *Config) Validate() error {
	if _, err := c.Atlas.border(); err != nil {
		return err
	}
	if _, err := mipmap.ByName(c.Atlas.Mipmap); err != nil {
		return fmt.Errorf("atlas.mipmap: %w", err)
	}
	if _, err := c.Input.Key(); err != nil {
		return err
	}
	if c.Atlas.MemoryMaxSize < 1 || c.Atlas.MemoryMaxLayers < 1 {
		return fmt.Errorf("atlas.memory_max_size and atlas.memory_max_layers must be positive")
	}
	if c.Output.Manifest == "" {
		return fmt.Errorf("output.manifest must not be empty")
	}
	return nil
}

// Build converts the atlas section into an atlas.Config.
func (a AtlasConfig) Build(log *zap.Logger) (atlas.Config, error) {
	b, err := a.border()
	if err != nil {
		return atlas.Config{}, err
	}
	mm, err := mipmap.ByName(a.Mipmap)
	if err != nil {
		return atlas.Config{}, fmt.Errorf("atlas.mipmap: %w", err)
	}
	return atlas.Config{
		MaxTextureSize: a.MaxTextureSize,
		MaxLayerCount:  a.MaxLayerCount,
		DefaultBorder:  b,
		Mipmapper:      mm,
		Logger:         log,
	}, nil
}

func (a AtlasConfig) border() (atlas.Border, error) {
	kind, err := atlas.ParseBorderKind(a.DefaultBorder)
	if err != nil {
		return atlas.Border{}, fmt.Errorf("atlas.default_border: %w", err)
	}
	if kind != atlas.BorderSolid {
		return atlas.Border{Kind: kind}, nil
	}
	c, err := ParseColor(a.BorderColor)
	if err != nil {
		return atlas.Border{}, fmt.Errorf("atlas.border_color: %w", err)
	}
	return atlas.SolidBorder(c), nil
}

// Key returns the parsed color key, or nil when keying is disabled.
func (i InputConfig) Key() (*color.RGBA, error) {
	if i.ColorKey == "" {
		return nil, nil
	}
	c, err := ParseColor(i.ColorKey)
	if err != nil {
		return nil, fmt.Errorf("input.color_key: %w", err)
	}
	return &c, nil
}

// ParseColor parses #rrggbb or #rrggbbaa. Alpha defaults to opaque.
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
