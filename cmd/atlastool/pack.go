package main

import (
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/texatlas/internal/config"
	"github.com/Faultbox/texatlas/internal/engine/texture"
	"github.com/Faultbox/texatlas/internal/logger"
	"github.com/Faultbox/texatlas/pkg/atlas"
)

// layerSource returns the pixels of one texture layer at one mip level.
type layerSource func(z, level int) (*image.RGBA, error)

type imageFile struct {
	name string // slash-separated path relative to the input dir, no extension
	path string
}

// run packs dir into tex and writes the layer images and the manifest.
func run(dir string, cfg *config.Config, tex atlas.Texture, src layerSource) error {
	start := time.Now()
	frozen, err := pack(dir, cfg, tex, logger.Component("atlas"))
	if err != nil {
		return err
	}

	files, err := writeLayers(cfg.Output, frozen, src)
	if err != nil {
		return err
	}
	m := newManifest(frozen, files)
	manifestPath := filepath.Join(cfg.Output.Dir, cfg.Output.Manifest)
	if err := m.writeTo(manifestPath); err != nil {
		return err
	}

	size, layers, mips := frozen.TextureSize()
	logger.Log.Info("atlas written",
		zap.String("dir", cfg.Output.Dir),
		zap.Int("tiles", frozen.Len()),
		zap.Int("size", size),
		zap.Int("layers", layers),
		zap.Int("mip_levels", mips),
		zap.Duration("elapsed", time.Since(start)))

	fmt.Printf("Tiles:    %d\n", frozen.Len())
	fmt.Printf("Texture:  %dx%d, %d layers, %d mip levels\n", size, size, layers, mips)
	fmt.Printf("Manifest: %s\n", manifestPath)
	return nil
}

// pack adds every image under dir to an atlas over tex and freezes it.
func pack(dir string, cfg *config.Config, tex atlas.Texture, log *zap.Logger) (*atlas.Frozen, error) {
	acfg, err := cfg.Atlas.Build(log)
	if err != nil {
		return nil, err
	}
	a, err := atlas.New(tex, acfg)
	if err != nil {
		return nil, err
	}
	key, err := cfg.Input.Key()
	if err != nil {
		return nil, err
	}
	opts := texture.LoadOptions{ColorKey: key, Tolerance: cfg.Input.Tolerance}

	files, err := findImages(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no images found in %s", dir)
	}

	for _, f := range files {
		img, err := texture.Load(f.path, opts)
		if err != nil {
			return nil, err
		}
		if err := a.Add(f.name, img); err != nil {
			return nil, err
		}
	}
	return a.Freeze()
}

// findImages lists loadable images under dir in lexical order.
func findImages(dir string) ([]imageFile, error) {
	var files []imageFile
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !texture.Supported(path) {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
		files = append(files, imageFile{name: name, path: path})
		return nil
	})
	return files, err
}

// writeLayers encodes every layer as PNG and returns the level 0 file names
// indexed by layer.
func writeLayers(out config.OutputConfig, f *atlas.Frozen, src layerSource) ([]string, error) {
	if err := os.MkdirAll(out.Dir, 0755); err != nil {
		return nil, err
	}
	_, _, mips := f.TextureSize()
	if !out.MipLevels {
		mips = 1
	}

	names := make([]string, f.LayerCount())
	for z := range f.LayerCount() {
		for m := range mips {
			img, err := src(z, m)
			if err != nil {
				return nil, err
			}
			name := fmt.Sprintf("%s_%d.png", out.LayerPrefix, z)
			if m > 0 {
				name = fmt.Sprintf("%s_%d_mip%d.png", out.LayerPrefix, z, m)
			}
			if err := writePNG(filepath.Join(out.Dir, name), img); err != nil {
				return nil, err
			}
			if m == 0 {
				names[z] = name
			}
		}
	}
	return names, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
