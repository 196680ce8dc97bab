package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Extensions lists the file extensions Load understands.
var Extensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp", ".tga"}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// LoadOptions controls post-processing of loaded images.
type LoadOptions struct {
	// ColorKey, when non-nil, turns matching pixels into transparent black.
	ColorKey *color.RGBA
	// Tolerance is the per-channel distance still treated as a match.
	Tolerance uint8
}

// Load reads an image file and converts it to RGBA with its origin at (0,0).
func Load(path string, opts LoadOptions) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if opts.ColorKey != nil {
		ApplyColorKey(img, *opts.ColorKey, opts.Tolerance)
	}
	return img, nil
}

// Decode decodes data. TGA has no signature, so ext selects its decoder;
// every other format is detected from content.
func Decode(data []byte, ext string) (*image.RGBA, error) {
	if strings.EqualFold(ext, ".tga") {
		return decodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToRGBA(img), nil
}

// ToRGBA converts img to *image.RGBA. RGBA images already at the origin are
// returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// ApplyColorKey makes every pixel within tol of key transparent black in
// place. Clearing the color too keeps filtering from bleeding it.
func ApplyColorKey(img *image.RGBA, key color.RGBA, tol uint8) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			if near(img.Pix[i], key.R, tol) && near(img.Pix[i+1], key.G, tol) && near(img.Pix[i+2], key.B, tol) {
				img.Pix[i+0] = 0
				img.Pix[i+1] = 0
				img.Pix[i+2] = 0
				img.Pix[i+3] = 0
			}
		}
	}
}

func near(a, b, tol uint8) bool {
	if a > b {
		return a-b <= tol
	}
	return b-a <= tol
}
