// Package mipmap provides ready-made atlas.Mipmapper implementations.
package mipmap

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/Faultbox/texatlas/pkg/atlas"
)

// Box averages 2x2 blocks. On odd sizes the missing column or row is taken
// from the border pixels of src when it has them, so wrapped tiles stay
// seamless; otherwise the edge is clamped.
func Box(src *atlas.BorderedImage) *atlas.BorderedImage {
	in := src.Size()
	out := in.Half()
	pix := src.Image()
	off := src.Border().Offset()
	full := src.SizedWithBorder()

	at := func(x, y int) color.RGBA {
		px, py := x+off.X, y+off.Y
		if px >= full.W {
			px = in.W - 1 + off.X
		}
		if py >= full.H {
			py = in.H - 1 + off.Y
		}
		return pix.RGBAAt(pix.Rect.Min.X+px, pix.Rect.Min.Y+py)
	}

	dst := image.NewRGBA(out.Rect())
	for y := range out.H {
		for x := range out.W {
			var r, g, b, a int
			for _, c := range [4]color.RGBA{
				at(2*x, 2*y), at(2*x+1, 2*y),
				at(2*x, 2*y+1), at(2*x+1, 2*y+1),
			} {
				r += int(c.R)
				g += int(c.G)
				b += int(c.B)
				a += int(c.A)
			}
			dst.SetRGBA(x, y, color.RGBA{
				R: uint8((r + 2) / 4),
				G: uint8((g + 2) / 4),
				B: uint8((b + 2) / 4),
				A: uint8((a + 2) / 4),
			})
		}
	}
	return atlas.NewImage(dst)
}

// Scaler returns a mipmapper that resamples the inner image with interp.
func Scaler(interp draw.Interpolator) atlas.Mipmapper {
	return func(src *atlas.BorderedImage) *atlas.BorderedImage {
		in := src.Inner()
		dst := image.NewRGBA(src.Size().Half().Rect())
		interp.Scale(dst, dst.Bounds(), in, in.Bounds(), draw.Src, nil)
		return atlas.NewImage(dst)
	}
}

// ByName returns the mipmapper for a filter name. "none" returns nil, which
// disables mipmapping.
func ByName(name string) (atlas.Mipmapper, error) {
	switch name {
	case "none", "":
		return nil, nil
	case "box":
		return Box, nil
	case "nearest":
		return Scaler(draw.NearestNeighbor), nil
	case "bilinear":
		return Scaler(draw.BiLinear), nil
	case "approx-bilinear":
		return Scaler(draw.ApproxBiLinear), nil
	case "catmullrom":
		return Scaler(draw.CatmullRom), nil
	}
	return nil, fmt.Errorf("unknown mipmap filter %q", name)
}
