package atlas

import (
	"fmt"
	"image"
)

// Offset is a texel position inside the array texture. Z is the layer.
type Offset struct {
	X, Y, Z int32
}

func (o Offset) String() string {
	return fmt.Sprintf("(%d,%d,%d)", o.X, o.Y, o.Z)
}

// Texture is the GPU array texture the atlas synchronizes to.
type Texture interface {
	// Limits reports the largest supported layer edge and layer count.
	Limits() (maxSize, maxLayers int32)

	// Resize allocates a square array texture of the given edge, layer count
	// and mipmap level count. It reports whether a new texture was created;
	// false means the dimensions already matched and nothing changed.
	Resize(size, layers, mipLevels int32) (bool, error)

	// Modify uploads img at offset and mipmap level. img may be a view into
	// a larger buffer; its Stride gives the row pitch.
	Modify(img *image.RGBA, offset Offset, mipLevel int32) error
}
