package atlas

import (
	"errors"
	"image"
	"image/color"
)

// modifyCall records one Modify invocation.
type modifyCall struct {
	W, H   int
	Offset Offset
	Level  int32
	First  color.RGBA
}

// recordingTexture is a Texture that records calls instead of uploading.
type recordingTexture struct {
	maxSize, maxLayers int32

	size, layers, mips int32
	allocated          bool
	resizes            int
	forceRealloc       bool

	calls     []modifyCall
	failAfter int // fail the Nth Modify (1-based); 0 disables
}

var errUpload = errors.New("upload failed")

func newRecordingTexture(maxSize, maxLayers int32) *recordingTexture {
	return &recordingTexture{maxSize: maxSize, maxLayers: maxLayers}
}

func (r *recordingTexture) Limits() (int32, int32) {
	return r.maxSize, r.maxLayers
}

func (r *recordingTexture) Resize(size, layers, mips int32) (bool, error) {
	if r.allocated && !r.forceRealloc && size == r.size && layers == r.layers && mips == r.mips {
		return false, nil
	}
	r.size, r.layers, r.mips = size, layers, mips
	r.allocated = true
	r.resizes++
	return true, nil
}

func (r *recordingTexture) Modify(img *image.RGBA, off Offset, level int32) error {
	if r.failAfter > 0 && len(r.calls)+1 == r.failAfter {
		r.failAfter = 0
		return errUpload
	}
	r.calls = append(r.calls, modifyCall{
		W:      img.Rect.Dx(),
		H:      img.Rect.Dy(),
		Offset: off,
		Level:  level,
		First:  img.RGBAAt(img.Rect.Min.X, img.Rect.Min.Y),
	})
	return nil
}

func (r *recordingTexture) reset() {
	r.calls = nil
}

// patternImage returns an image whose pixel (x, y) is (x, y, seed, 255).
func patternImage(w, h int, seed uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: seed, A: 255})
		}
	}
	return img
}

// halve is a nearest-neighbour mipmapper for tests.
func halve(src *BorderedImage) *BorderedImage {
	in := src.Inner()
	s := src.Size().Half()
	dst := image.NewRGBA(s.Rect())
	for y := range s.H {
		for x := range s.W {
			dst.SetRGBA(x, y, in.RGBAAt(in.Rect.Min.X+2*x, in.Rect.Min.Y+2*y))
		}
	}
	return NewImage(dst)
}

func mustNew(t interface{ Fatalf(string, ...any) }, tex Texture, cfg Config) *Atlas {
	a, err := New(tex, cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return a
}
