package atlas

import "iter"

// Frozen is the read-only view returned by Atlas.Freeze. Tiles keep their
// placement and size metadata; their pixel data has been released.
type Frozen struct {
	a *Atlas
}

// Lookup returns the tile called name, or nil.
func (f *Frozen) Lookup(name string) *Tile {
	return f.a.Lookup(name)
}

// Acquire returns a registered handle to the tile called name, or a null
// handle.
func (f *Frozen) Acquire(name string) *Handle {
	return f.a.Acquire(name)
}

// Contains reports whether h refers to a tile of the frozen atlas.
func (f *Frozen) Contains(h *Handle) bool {
	return f.a.Contains(h)
}

// Len returns the number of tiles.
func (f *Frozen) Len() int {
	return f.a.Len()
}

// LayerCount returns the number of layers.
func (f *Frozen) LayerCount() int {
	return f.a.LayerCount()
}

// Layers describes every layer in z order.
func (f *Frozen) Layers() []LayerInfo {
	return f.a.Layers()
}

// Tiles iterates over all tiles.
func (f *Frozen) Tiles() iter.Seq[*Tile] {
	return f.a.Tiles()
}

// TextureSize returns the dimensions the texture was last sized to.
func (f *Frozen) TextureSize() (size, layers, mipLevels int) {
	return f.a.TextureSize()
}
