package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/texatlas/pkg/atlas"
)

// Manifest describes a written atlas.
type Manifest struct {
	Texture TextureInfo `yaml:"texture"`
	Layers  []LayerInfo `yaml:"layers"`
	Tiles   []TileInfo  `yaml:"tiles"`
}

// TextureInfo holds the array texture dimensions.
type TextureInfo struct {
	Size      int `yaml:"size"`
	Layers    int `yaml:"layers"`
	MipLevels int `yaml:"mip_levels"`
}

// LayerInfo describes one layer image.
type LayerInfo struct {
	Index       int     `yaml:"index"`
	File        string  `yaml:"file"`
	SlotWidth   int     `yaml:"slot_width"`
	SlotHeight  int     `yaml:"slot_height"`
	Tiles       int     `yaml:"tiles"`
	Utilization float64 `yaml:"utilization"`
}

// TileInfo locates one tile. X, Y, Width and Height cover the image without
// its border; UVs are normalized to the texture edge.
type TileInfo struct {
	Name   string     `yaml:"name"`
	Layer  int        `yaml:"layer"`
	X      int        `yaml:"x"`
	Y      int        `yaml:"y"`
	Width  int        `yaml:"width"`
	Height int        `yaml:"height"`
	Border string     `yaml:"border"`
	UVMin  [2]float32 `yaml:"uv_min,flow"`
	UVMax  [2]float32 `yaml:"uv_max,flow"`
}

func newManifest(f *atlas.Frozen, files []string) *Manifest {
	size, layers, mips := f.TextureSize()
	m := &Manifest{
		Texture: TextureInfo{Size: size, Layers: layers, MipLevels: mips},
	}

	for _, l := range f.Layers() {
		slot := l.Class.SlotSize()
		info := LayerInfo{
			Index:       l.Z,
			SlotWidth:   slot.W,
			SlotHeight:  slot.H,
			Tiles:       l.Tiles,
			Utilization: l.Utilization(),
		}
		if l.Z < len(files) {
			info.File = files[l.Z]
		}
		m.Layers = append(m.Layers, info)
	}

	for t := range f.Tiles() {
		p := t.Placement()
		off := t.Border().Offset()
		lo, hi := t.TexCoords(size)
		m.Tiles = append(m.Tiles, TileInfo{
			Name:   t.Name(),
			Layer:  p.Layer,
			X:      p.X + off.X,
			Y:      p.Y + off.Y,
			Width:  t.Size().W,
			Height: t.Size().H,
			Border: t.Border().Kind.String(),
			UVMin:  [2]float32{lo.X(), lo.Y()},
			UVMax:  [2]float32{hi.X(), hi.Y()},
		})
	}
	return m
}

func (m *Manifest) writeTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
