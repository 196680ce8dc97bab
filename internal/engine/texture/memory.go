package texture

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/Faultbox/texatlas/pkg/atlas"
)

// ErrOutOfBounds is returned for regions, layers or levels outside the
// allocated texture.
var ErrOutOfBounds = errors.New("texture: out of bounds")

// MemoryTexture keeps an array texture in CPU memory. It is used by the
// CLI to write atlas layers to disk and by tests to inspect uploads.
type MemoryTexture struct {
	maxSize   int32
	maxLayers int32

	size   int32
	layers int32
	mips   int32
	pix    [][]*image.RGBA // [layer][level]

	// Resizes counts reallocations, Modifies counts uploads.
	Resizes  int
	Modifies int
}

// NewMemoryTexture returns an empty texture reporting the given limits.
func NewMemoryTexture(maxSize, maxLayers int32) *MemoryTexture {
	return &MemoryTexture{maxSize: maxSize, maxLayers: maxLayers}
}

// Limits implements atlas.Texture.
func (t *MemoryTexture) Limits() (int32, int32) {
	return t.maxSize, t.maxLayers
}

// Resize implements atlas.Texture. Reallocation clears every layer.
func (t *MemoryTexture) Resize(size, layers, mipLevels int32) (bool, error) {
	if size == t.size && layers == t.layers && mipLevels == t.mips {
		return false, nil
	}
	if size < 1 || size > t.maxSize || layers < 1 || layers > t.maxLayers || mipLevels < 1 {
		return false, fmt.Errorf("memory texture %dx%dx%d (%d levels): %w",
			size, size, layers, mipLevels, ErrOutOfBounds)
	}

	pix := make([][]*image.RGBA, layers)
	for z := range pix {
		pix[z] = make([]*image.RGBA, mipLevels)
		for m := range pix[z] {
			edge := max(int(size)>>m, 1)
			pix[z][m] = image.NewRGBA(image.Rect(0, 0, edge, edge))
		}
	}
	t.pix = pix
	t.size, t.layers, t.mips = size, layers, mipLevels
	t.Resizes++
	return true, nil
}

// Modify implements atlas.Texture.
func (t *MemoryTexture) Modify(img *image.RGBA, offset atlas.Offset, mipLevel int32) error {
	r := img.Bounds()
	if r.Empty() {
		return nil
	}
	if err := checkRegion(t.size, t.layers, t.mips, r, offset, mipLevel); err != nil {
		return err
	}
	dst := t.pix[offset.Z][mipLevel]
	dr := image.Rect(int(offset.X), int(offset.Y), int(offset.X)+r.Dx(), int(offset.Y)+r.Dy())
	draw.Draw(dst, dr, img, r.Min, draw.Src)
	t.Modifies++
	return nil
}

// Size returns the current allocation.
func (t *MemoryTexture) Size() (size, layers, mipLevels int32) {
	return t.size, t.layers, t.mips
}

// Layer returns the pixels of layer z at the given mip level, or nil when
// out of range. The image is live; later uploads modify it.
func (t *MemoryTexture) Layer(z, mipLevel int) *image.RGBA {
	if z < 0 || z >= len(t.pix) || mipLevel < 0 || mipLevel >= int(t.mips) {
		return nil
	}
	return t.pix[z][mipLevel]
}

func checkRegion(size, layers, mips int32, r image.Rectangle, off atlas.Offset, level int32) error {
	if level < 0 || level >= mips {
		return fmt.Errorf("mip level %d of %d: %w", level, mips, ErrOutOfBounds)
	}
	if off.Z < 0 || off.Z >= layers {
		return fmt.Errorf("layer %d of %d: %w", off.Z, layers, ErrOutOfBounds)
	}
	edge := max(size>>level, 1)
	if off.X < 0 || off.Y < 0 || off.X+int32(r.Dx()) > edge || off.Y+int32(r.Dy()) > edge {
		return fmt.Errorf("region %dx%d at %v exceeds level edge %d: %w",
			r.Dx(), r.Dy(), off, edge, ErrOutOfBounds)
	}
	return nil
}
