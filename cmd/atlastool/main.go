// atlastool packs a directory of images into array texture layers.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/texatlas/internal/config"
	"github.com/Faultbox/texatlas/internal/engine/texture"
	"github.com/Faultbox/texatlas/internal/engine/window"
	"github.com/Faultbox/texatlas/internal/logger"
)

func main() {
	flag.Usage = printUsage
	config.ParseFlags()

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "pack":
		cmdPack(args)
	case "gpu":
		cmdGPU(args)
	case "config":
		cmdConfig(args)
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`atlastool - array texture atlas packer

Usage:
  atlastool [options] <command> [args]

Commands:
  pack <dir>       Pack images into layers in memory and write PNGs + manifest
  gpu <dir>        Pack through an OpenGL array texture and read layers back
  config [path]    Write the default config (to the user config dir if no path)

Options:
  -config <file>   Config file (default: ./atlastool.yaml, then user config dir)
  -out <dir>       Output directory
  -max-size <n>    Maximum layer edge (power of 2)
  -layers <n>      Maximum layer count
  -border <kind>   Border when none can be inferred: none, solid, wrap_both, wrap_positive
  -mipmap <name>   none, box, nearest, bilinear, approx-bilinear, catmullrom
  -color-key <c>   Make #rrggbb pixels transparent on load
  -debug           Enable debug logging

Examples:
  atlastool pack assets/tiles
  atlastool -border solid -mipmap catmullrom -out build/atlas pack assets/tiles
  atlastool config ./atlastool.yaml`)
}

// setup loads the config and starts logging. It exits on failure.
func setup() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile, cfg.Logging.JSON); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func cmdPack(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: atlastool pack <dir>")
		os.Exit(1)
	}
	cfg := setup()
	defer logger.Sync()

	tex := texture.NewMemoryTexture(int32(cfg.Atlas.MemoryMaxSize), int32(cfg.Atlas.MemoryMaxLayers))
	src := func(z, level int) (*image.RGBA, error) {
		if img := tex.Layer(z, level); img != nil {
			return img, nil
		}
		return nil, fmt.Errorf("layer %d level %d: %w", z, level, texture.ErrOutOfBounds)
	}
	if err := run(args[0], cfg, tex, src); err != nil {
		logger.Log.Error("pack failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdGPU(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: atlastool gpu <dir>")
		os.Exit(1)
	}
	cfg := setup()
	defer logger.Sync()

	win, err := window.New(window.Config{Title: "atlastool", Hidden: true}, logger.Component("window"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer win.Close()

	tex := texture.NewArrayTexture(logger.Component("texture"))
	defer tex.Delete()
	src := func(z, level int) (*image.RGBA, error) {
		return tex.ReadLayer(int32(z), int32(level))
	}
	if err := run(args[0], cfg, tex, src); err != nil {
		logger.Log.Error("gpu pack failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Log.Debug("array texture verified", zap.Uint32("texture", tex.ID()))
}

func cmdConfig(args []string) {
	cfg := config.Default()
	if len(args) > 0 {
		if err := cfg.SaveTo(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", args[0])
		return
	}
	path, err := cfg.Save()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
