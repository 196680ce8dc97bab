package atlas

import "github.com/go-gl/mathgl/mgl32"

// Placement locates a tile inside the array texture.
type Placement struct {
	// Slot is the slot index inside the tile's layer.
	Slot int
	// X, Y are the pixel position of the slot; Layer is the texture layer.
	X, Y, Layer int
	// Written reports whether the GPU copy is in sync.
	Written bool
}

// Tile is a named image placed in one slot of one layer.
type Tile struct {
	name      string
	image     *Pyramid
	border    Border
	size      Size
	class     SlotClass
	placement Placement
	handles   []*Handle
}

// Name returns the tile name.
func (t *Tile) Name() string {
	return t.name
}

// Border returns the border policy chosen when the tile was added.
func (t *Tile) Border() Border {
	return t.border
}

// Size returns the inner size of the full-resolution image.
func (t *Tile) Size() Size {
	return t.size
}

// SizedWithBorder returns the padded size of the full-resolution image.
func (t *Tile) SizedWithBorder() Size {
	return t.border.SizedWithBorder(t.size)
}

// SlotClass returns the class of the layer hosting the tile.
func (t *Tile) SlotClass() SlotClass {
	return t.class
}

// Placement returns the current placement.
func (t *Tile) Placement() Placement {
	return t.placement
}

// Pyramid returns the mipmap chain. After Freeze its pixels are released.
func (t *Tile) Pyramid() *Pyramid {
	return t.image
}

// TexCoords returns the normalized texture coordinates of the inner image
// for a texture of the given edge. Z holds the layer index.
func (t *Tile) TexCoords(edge int) (lo, hi mgl32.Vec3) {
	off := t.border.Offset()
	e := float32(edge)
	x := float32(t.placement.X + off.X)
	y := float32(t.placement.Y + off.Y)
	z := float32(t.placement.Layer)
	lo = mgl32.Vec3{x / e, y / e, z}
	hi = mgl32.Vec3{(x + float32(t.size.W)) / e, (y + float32(t.size.H)) / e, z}
	return lo, hi
}

// usableLevels counts the leading pyramid levels whose padded size still
// fits the slot at that level.
func (t *Tile) usableLevels() int {
	slot := t.class.SlotSize()
	n := 0
	for m := range t.image.Len() {
		s := t.border.SizedWithBorder(t.image.Size(m))
		if s.W > slot.W>>m || s.H > slot.H>>m {
			break
		}
		n++
	}
	return max(n, 1)
}

// detach nulls every handle referring to t. Handles are cleared by direct
// field write so the registry is not modified while it is walked.
func (t *Tile) detach() {
	for _, h := range t.handles {
		h.tile = nil
	}
	t.handles = nil
}
