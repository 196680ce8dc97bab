package atlas

import (
	"bytes"
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// BorderedImage is an RGBA pixel buffer together with the border policy that
// padded it. The buffer covers the inner image plus its padding; all
// rectangles passed to its methods are relative to the buffer origin.
//
// A BorderedImage is immutable once built, except that its pixels may be
// released after upload.
type BorderedImage struct {
	pix    *image.RGBA
	inner  Size
	border Border
}

// NewImage wraps src without padding. The returned image aliases src.
func NewImage(src *image.RGBA) *BorderedImage {
	return &BorderedImage{pix: src, inner: SizeOf(src.Rect), border: NoBorder}
}

// AddBorder copies src into a new buffer padded according to b and fills the
// padding. BorderNone returns a bordered image aliasing src.
func AddBorder(b Border, src *image.RGBA) *BorderedImage {
	if b.Kind == BorderNone {
		return NewImage(src)
	}
	inner := SizeOf(src.Rect)
	dst := image.NewRGBA(b.SizedWithBorder(inner).Rect())
	off := b.Offset()
	draw.Draw(dst, inner.Rect().Add(off), src, src.Rect.Min, draw.Src)
	fillBorder(dst, b, inner)
	return &BorderedImage{pix: dst, inner: inner, border: b}
}

// ReplaceBorder rewrites the padding pixels of buf in place. buf must already
// be sized as inner size plus the padding of b.
func ReplaceBorder(b Border, buf *image.RGBA) *BorderedImage {
	pad := b.Padding()
	total := SizeOf(buf.Rect)
	inner := Size{W: total.W - pad.W, H: total.H - pad.H}
	if inner.Empty() {
		panic(fmt.Sprintf("atlas: buffer %v too small for border %v", total, b))
	}
	fillBorder(buf, b, inner)
	return &BorderedImage{pix: buf, inner: inner, border: b}
}

func fillBorder(img *image.RGBA, b Border, inner Size) {
	o := img.Rect.Min
	w, h := inner.W, inner.H
	at := func(x, y int) int { return img.PixOffset(o.X+x, o.Y+y) }
	copyPx := func(dx, dy, sx, sy int) {
		d, s := at(dx, dy), at(sx, sy)
		copy(img.Pix[d:d+4], img.Pix[s:s+4])
	}

	switch b.Kind {
	case BorderNone:
	case BorderSolid:
		c := []byte{b.Color.R, b.Color.G, b.Color.B, b.Color.A}
		ring(w+2, h+2, func(x, y int) {
			d := at(x, y)
			copy(img.Pix[d:d+4], c)
		})
	case BorderWrapBoth:
		ring(w+2, h+2, func(x, y int) {
			copyPx(x, y, wrap(x-1, w)+1, wrap(y-1, h)+1)
		})
	case BorderWrapPositive:
		for y := 0; y <= h; y++ {
			copyPx(w, y, 0, y%h)
		}
		for x := range w {
			copyPx(x, h, x, 0)
		}
	default:
		panic(fmt.Sprintf("atlas: invalid border kind %d", b.Kind))
	}
}

// ring calls fn for every pixel on the outermost ring of a w x h rectangle.
func ring(w, h int, fn func(x, y int)) {
	for x := range w {
		fn(x, 0)
		fn(x, h-1)
	}
	for y := 1; y < h-1; y++ {
		fn(0, y)
		fn(w-1, y)
	}
}

func wrap(p, n int) int {
	return ((p % n) + n) % n
}

// Size returns the inner (unpadded) size.
func (b *BorderedImage) Size() Size {
	return b.inner
}

// Border returns the border policy.
func (b *BorderedImage) Border() Border {
	return b.border
}

// SizedWithBorder returns the size of the padded buffer.
func (b *BorderedImage) SizedWithBorder() Size {
	return b.border.SizedWithBorder(b.inner)
}

// Image returns the padded buffer, or nil once released.
func (b *BorderedImage) Image() *image.RGBA {
	return b.pix
}

// Inner returns a view of the unpadded pixels.
func (b *BorderedImage) Inner() *image.RGBA {
	return b.Sub(b.inner.Rect().Add(b.border.Offset()))
}

// Sub returns a non-owning view of r, given relative to the padded buffer.
// The view shares pixels and stride with the parent.
func (b *BorderedImage) Sub(r image.Rectangle) *image.RGBA {
	if b.pix == nil {
		panic("atlas: pixels of bordered image were released")
	}
	return b.pix.SubImage(r.Add(b.pix.Rect.Min)).(*image.RGBA)
}

// Released reports whether the pixel data has been freed.
func (b *BorderedImage) Released() bool {
	return b.pix == nil
}

func (b *BorderedImage) release() {
	b.pix = nil
}

// Equal reports whether both images carry the same border and the same
// padded pixels.
func (b *BorderedImage) Equal(o *BorderedImage) bool {
	if b == o {
		return true
	}
	if b == nil || o == nil || !b.border.Equal(o.border) || b.inner != o.inner {
		return false
	}
	if b.pix == nil || o.pix == nil {
		return b.pix == o.pix
	}
	full := b.SizedWithBorder()
	rowLen := full.W * 4
	for y := range full.H {
		i := b.pix.PixOffset(b.pix.Rect.Min.X, b.pix.Rect.Min.Y+y)
		j := o.pix.PixOffset(o.pix.Rect.Min.X, o.pix.Rect.Min.Y+y)
		if !bytes.Equal(b.pix.Pix[i:i+rowLen], o.pix.Pix[j:j+rowLen]) {
			return false
		}
	}
	return true
}
