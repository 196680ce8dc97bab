package texture

import (
	"errors"
	"fmt"
	"image"
)

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

var errTGATruncated = errors.New("tga: data truncated")

type tgaHeader struct {
	idLength  int
	colorMap  byte
	imageType byte
	width     int
	height    int
	bpp       int
	topDown   bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < 18 {
		return tgaHeader{}, errTGATruncated
	}
	h := tgaHeader{
		idLength:  int(data[0]),
		colorMap:  data[1],
		imageType: data[2],
		width:     int(data[12]) | int(data[13])<<8,
		height:    int(data[14]) | int(data[15])<<8,
		bpp:       int(data[16]),
		topDown:   data[17]&0x20 != 0,
	}
	switch {
	case h.colorMap != 0:
		return h, errors.New("tga: color-mapped images not supported")
	case h.imageType != tgaTrueColor && h.imageType != tgaTrueColorRLE:
		return h, fmt.Errorf("tga: unsupported image type %d", h.imageType)
	case h.bpp != 24 && h.bpp != 32:
		return h, fmt.Errorf("tga: unsupported bit depth %d", h.bpp)
	}
	return h, nil
}

// decodeTGA decodes uncompressed and RLE true-color TGA data.
func decodeTGA(data []byte) (*image.RGBA, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	start := 18 + h.idLength
	if start > len(data) {
		return nil, errTGATruncated
	}

	w := tgaWriter{
		img:     image.NewRGBA(image.Rect(0, 0, h.width, h.height)),
		width:   h.width,
		height:  h.height,
		topDown: h.topDown,
		bpp:     h.bpp / 8,
	}
	src := data[start:]

	if h.imageType == tgaTrueColor {
		if len(src) < h.width*h.height*w.bpp {
			return nil, errTGATruncated
		}
		for len(src) > 0 && !w.done() {
			w.put(src[:w.bpp])
			src = src[w.bpp:]
		}
		return w.img, nil
	}

	for !w.done() {
		if len(src) == 0 {
			return nil, errTGATruncated
		}
		packet := src[0]
		src = src[1:]
		count := int(packet&0x7f) + 1
		if packet&0x80 != 0 {
			if len(src) < w.bpp {
				return nil, errTGATruncated
			}
			for range count {
				w.put(src[:w.bpp])
			}
			src = src[w.bpp:]
			continue
		}
		if len(src) < count*w.bpp {
			return nil, errTGATruncated
		}
		for range count {
			w.put(src[:w.bpp])
			src = src[w.bpp:]
		}
	}
	return w.img, nil
}

// tgaWriter stores BGR(A) pixels in file order, flipping bottom-up images.
type tgaWriter struct {
	img     *image.RGBA
	width   int
	height  int
	topDown bool
	bpp     int
	n       int
}

func (w *tgaWriter) done() bool {
	return w.n >= w.width*w.height
}

func (w *tgaWriter) put(px []byte) {
	if w.done() {
		return
	}
	x, y := w.n%w.width, w.n/w.width
	if !w.topDown {
		y = w.height - 1 - y
	}
	i := w.img.PixOffset(x, y)
	w.img.Pix[i+0] = px[2]
	w.img.Pix[i+1] = px[1]
	w.img.Pix[i+2] = px[0]
	w.img.Pix[i+3] = 255
	if w.bpp == 4 {
		w.img.Pix[i+3] = px[3]
	}
	w.n++
}
