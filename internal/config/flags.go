package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagOut      = flag.String("out", "", "Output directory")
	flagMaxSize  = flag.Int("max-size", 0, "Maximum layer edge in pixels (power of 2)")
	flagLayers   = flag.Int("layers", 0, "Maximum number of layers")
	flagBorder   = flag.String("border", "", "Default border: none, solid, wrap_both, wrap_positive")
	flagMipmap   = flag.String("mipmap", "", "Mipmap filter: none, box, nearest, bilinear, approx-bilinear, catmullrom")
	flagColorKey = flag.String("color-key", "", "Color made transparent on load (#rrggbb)")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagMaxSize > 0 {
		cfg.Atlas.MaxTextureSize = *flagMaxSize
	}
	if *flagLayers > 0 {
		cfg.Atlas.MaxLayerCount = *flagLayers
	}
	if *flagBorder != "" {
		cfg.Atlas.DefaultBorder = *flagBorder
	}
	if *flagMipmap != "" {
		cfg.Atlas.Mipmap = *flagMipmap
	}
	if *flagColorKey != "" {
		cfg.Input.ColorKey = *flagColorKey
	}
}
