// Package texture provides the array texture backends the atlas uploads to
// and the image loading used to feed it.
package texture

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/texatlas/pkg/atlas"
)

// ArrayTexture is a GL_TEXTURE_2D_ARRAY with RGBA8 storage.
// All methods must be called on the thread owning the GL context.
type ArrayTexture struct {
	id     uint32
	size   int32
	layers int32
	mips   int32

	maxSize   int32
	maxLayers int32

	log *zap.Logger
}

// NewArrayTexture queries the context limits. No storage is allocated until
// the first Resize.
func NewArrayTexture(log *zap.Logger) *ArrayTexture {
	if log == nil {
		log = zap.NewNop()
	}
	t := &ArrayTexture{log: log}
	var max2D, max3D int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &max2D)
	gl.GetIntegerv(gl.MAX_3D_TEXTURE_SIZE, &max3D)
	gl.GetIntegerv(gl.MAX_ARRAY_TEXTURE_LAYERS, &t.maxLayers)
	t.maxSize = min(max2D, max3D)
	log.Debug("array texture limits",
		zap.Int32("max_size", t.maxSize),
		zap.Int32("max_layers", t.maxLayers))
	return t
}

// ID returns the GL texture name, 0 before the first Resize.
func (t *ArrayTexture) ID() uint32 {
	return t.id
}

// Limits implements atlas.Texture.
func (t *ArrayTexture) Limits() (int32, int32) {
	return t.maxSize, t.maxLayers
}

// Resize implements atlas.Texture. A new texture object replaces the old
// one; previous contents are discarded.
func (t *ArrayTexture) Resize(size, layers, mipLevels int32) (bool, error) {
	if size == t.size && layers == t.layers && mipLevels == t.mips {
		return false, nil
	}
	if size < 1 || size > t.maxSize || layers < 1 || layers > t.maxLayers || mipLevels < 1 {
		return false, fmt.Errorf("array texture %dx%dx%d (%d levels): %w",
			size, size, layers, mipLevels, ErrOutOfBounds)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, id)
	for m := range mipLevels {
		edge := max(size>>m, 1)
		gl.TexImage3D(gl.TEXTURE_2D_ARRAY, m, gl.RGBA8, edge, edge, layers, 0,
			gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_BASE_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAX_LEVEL, mipLevels-1)
	if mipLevels > 1 {
		gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)

	if err := glError("TexImage3D"); err != nil {
		gl.DeleteTextures(1, &id)
		return false, err
	}

	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
	}
	t.id, t.size, t.layers, t.mips = id, size, layers, mipLevels
	t.log.Debug("array texture allocated",
		zap.Uint32("id", id),
		zap.Int32("size", size),
		zap.Int32("layers", layers),
		zap.Int32("mip_levels", mipLevels))
	return true, nil
}

// Modify implements atlas.Texture. The row pitch of img is passed through
// GL_UNPACK_ROW_LENGTH so views into larger buffers upload without a copy.
func (t *ArrayTexture) Modify(img *image.RGBA, offset atlas.Offset, mipLevel int32) error {
	r := img.Bounds()
	if r.Empty() {
		return nil
	}
	if err := checkRegion(t.size, t.layers, t.mips, r, offset, mipLevel); err != nil {
		return err
	}

	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexSubImage3D(gl.TEXTURE_2D_ARRAY, mipLevel,
		offset.X, offset.Y, offset.Z,
		int32(r.Dx()), int32(r.Dy()), 1,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&img.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)

	return glError("TexSubImage3D")
}

// ReadLayer downloads one layer of one mip level.
func (t *ArrayTexture) ReadLayer(z, mipLevel int32) (*image.RGBA, error) {
	if t.id == 0 || z < 0 || z >= t.layers || mipLevel < 0 || mipLevel >= t.mips {
		return nil, fmt.Errorf("read layer %d level %d: %w", z, mipLevel, ErrOutOfBounds)
	}
	edge := int(max(t.size>>mipLevel, 1))
	all := make([]byte, edge*edge*4*int(t.layers))

	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.id)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.GetTexImage(gl.TEXTURE_2D_ARRAY, mipLevel, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&all[0]))
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, 0)
	if err := glError("GetTexImage"); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, edge, edge))
	layerBytes := edge * edge * 4
	copy(img.Pix, all[int(z)*layerBytes:int(z+1)*layerBytes])
	return img, nil
}

// Delete releases the GL texture.
func (t *ArrayTexture) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
	t.size, t.layers, t.mips = 0, 0, 0
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl %s: error 0x%04x", op, code)
	}
	return nil
}
