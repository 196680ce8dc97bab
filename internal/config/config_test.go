package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/texatlas/pkg/atlas"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Atlas.DefaultBorder != "wrap_both" {
		t.Errorf("expected default border wrap_both, got %s", cfg.Atlas.DefaultBorder)
	}
	if cfg.Atlas.Mipmap != "box" {
		t.Errorf("expected mipmap box, got %s", cfg.Atlas.Mipmap)
	}
	if cfg.Atlas.MaxTextureSize != 0 || cfg.Atlas.MaxLayerCount != 0 {
		t.Error("expected texture limits to be used by default")
	}
	if cfg.Output.Manifest != "atlas.yaml" {
		t.Errorf("expected manifest atlas.yaml, got %s", cfg.Output.Manifest)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "atlastool.yaml")

	yamlContent := `
atlas:
  max_texture_size: 2048
  max_layer_count: 16
  default_border: solid
  border_color: "#ff000080"
  mipmap: catmullrom

input:
  color_key: "#ff00ff"
  tolerance: 4

output:
  dir: out/textures
  manifest: tiles.yaml

logging:
  level: debug
  log_file: atlas.log
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	want := Default()
	want.Atlas.MaxTextureSize = 2048
	want.Atlas.MaxLayerCount = 16
	want.Atlas.DefaultBorder = "solid"
	want.Atlas.BorderColor = "#ff000080"
	want.Atlas.Mipmap = "catmullrom"
	want.Input = InputConfig{ColorKey: "#ff00ff", Tolerance: 4}
	want.Output.Dir = "out/textures"
	want.Output.Manifest = "tiles.yaml"
	want.Logging.Level = "debug"
	want.Logging.LogFile = "atlas.log"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":        "atlas:\n  max_texture_size: not a number\n  invalid syntax here\n",
		"unknown field": "atlas:\n  max_size: 512\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("expected empty file to keep defaults, got %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config changed (-want +got):\n%s", diff)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/atlastool.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(FileName, []byte("atlas:\n  mipmap: none\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); path != FileName {
		t.Errorf("expected to find %s in current directory, got %q", FileName, path)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"border", func(c *Config) { c.Atlas.DefaultBorder = "mirror" }},
		{"border color", func(c *Config) {
			c.Atlas.DefaultBorder = "solid"
			c.Atlas.BorderColor = "red"
		}},
		{"mipmap", func(c *Config) { c.Atlas.Mipmap = "lanczos" }},
		{"color key", func(c *Config) { c.Input.ColorKey = "#12345" }},
		{"memory limits", func(c *Config) { c.Atlas.MemoryMaxSize = 0 }},
		{"manifest", func(c *Config) { c.Output.Manifest = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestBuildAtlasConfig(t *testing.T) {
	a := AtlasConfig{
		MaxTextureSize: 512,
		MaxLayerCount:  8,
		DefaultBorder:  "solid",
		BorderColor:    "#102030",
		Mipmap:         "none",
	}
	cfg, err := a.Build(nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg.MaxTextureSize != 512 || cfg.MaxLayerCount != 8 {
		t.Errorf("unexpected limits %d, %d", cfg.MaxTextureSize, cfg.MaxLayerCount)
	}
	if want := atlas.SolidBorder(color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}); cfg.DefaultBorder != want {
		t.Errorf("expected border %v, got %v", want, cfg.DefaultBorder)
	}
	if cfg.Mipmapper != nil {
		t.Error("expected no mipmapper for none")
	}

	a.DefaultBorder = "diagonal"
	if _, err := a.Build(nil); !errors.Is(err, atlas.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#ff8000", color.RGBA{R: 255, G: 128, A: 255}, true},
		{"00000000", color.RGBA{}, true},
		{"#01020304", color.RGBA{R: 1, G: 2, B: 3, A: 4}, true},
		{"#fff", color.RGBA{}, false},
		{"#gg0000", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseColor(%q): unexpected error state %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name: "atlas flags",
			setup: func() {
				*flagMaxSize = 1024
				*flagLayers = 4
				*flagBorder = "none"
				*flagMipmap = "nearest"
			},
			verify: func(t *testing.T, cfg *Config) {
				want := AtlasConfig{
					MaxTextureSize:  1024,
					MaxLayerCount:   4,
					DefaultBorder:   "none",
					BorderColor:     Default().Atlas.BorderColor,
					Mipmap:          "nearest",
					MemoryMaxSize:   Default().Atlas.MemoryMaxSize,
					MemoryMaxLayers: Default().Atlas.MemoryMaxLayers,
				}
				if diff := cmp.Diff(want, cfg.Atlas); diff != "" {
					t.Errorf("atlas config mismatch (-want +got):\n%s", diff)
				}
			},
			teardown: func() {
				*flagMaxSize = 0
				*flagLayers = 0
				*flagBorder = ""
				*flagMipmap = ""
			},
		},
		{
			name: "output and color key flags",
			setup: func() {
				*flagOut = "build/atlas"
				*flagColorKey = "#ff00ff"
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Dir != "build/atlas" {
					t.Errorf("expected output dir build/atlas, got %s", cfg.Output.Dir)
				}
				if cfg.Input.ColorKey != "#ff00ff" {
					t.Errorf("expected color key #ff00ff, got %s", cfg.Input.ColorKey)
				}
			},
			teardown: func() {
				*flagOut = ""
				*flagColorKey = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "atlastool.yaml")
	yamlContent := `
atlas:
  max_texture_size: 512
  max_layer_count: 32
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagMaxSize = 4096
	defer func() {
		*flagConfig = ""
		*flagMaxSize = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Size comes from the flag, layer count from the file.
	if cfg.Atlas.MaxTextureSize != 4096 {
		t.Errorf("expected max size 4096 from flag, got %d", cfg.Atlas.MaxTextureSize)
	}
	if cfg.Atlas.MaxLayerCount != 32 {
		t.Errorf("expected layer count 32 from file, got %d", cfg.Atlas.MaxLayerCount)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	*flagMipmap = "sinc"
	defer func() { *flagMipmap = "" }()

	if _, err := Load(); err == nil {
		t.Error("expected error")
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "atlastool.yaml")

	cfg := Default()
	cfg.Atlas.Mipmap = "bilinear"
	cfg.Output.MipLevels = true
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
