package atlas

import (
	"fmt"
	"image"
	"image/color"
	"math/bits"
)

// Size is a width/height pair in device pixels.
type Size struct {
	W, H int
}

// SizeOf returns the size of an image rectangle.
func SizeOf(r image.Rectangle) Size {
	return Size{W: r.Dx(), H: r.Dy()}
}

// Empty reports whether the size covers no pixels.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Max returns the longer side.
func (s Size) Max() int {
	return max(s.W, s.H)
}

// Add returns the componentwise sum.
func (s Size) Add(o Size) Size {
	return Size{W: s.W + o.W, H: s.H + o.H}
}

// Half returns the ceiling-halved size used for the next mipmap level.
func (s Size) Half() Size {
	return Size{W: (s.W-1)/2 + 1, H: (s.H-1)/2 + 1}
}

// Rect returns the rectangle (0,0)-(W,H).
func (s Size) Rect() image.Rectangle {
	return image.Rect(0, 0, s.W, s.H)
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// BorderKind selects how the padding around a tile is generated.
type BorderKind uint8

const (
	// BorderNone adds no padding.
	BorderNone BorderKind = iota
	// BorderSolid pads every side with one pixel of a fixed color.
	BorderSolid
	// BorderWrapBoth pads every side with one pixel copied from the opposite edge.
	BorderWrapBoth
	// BorderWrapPositive pads only the right and bottom sides with the left
	// column and top row.
	BorderWrapPositive
)

func (k BorderKind) String() string {
	switch k {
	case BorderNone:
		return "none"
	case BorderSolid:
		return "solid"
	case BorderWrapBoth:
		return "wrap_both"
	case BorderWrapPositive:
		return "wrap_positive"
	default:
		return fmt.Sprintf("BorderKind(%d)", uint8(k))
	}
}

// ParseBorderKind converts a name produced by BorderKind.String back to a kind.
func ParseBorderKind(s string) (BorderKind, error) {
	switch s {
	case "none", "":
		return BorderNone, nil
	case "solid":
		return BorderSolid, nil
	case "wrap_both", "all":
		return BorderWrapBoth, nil
	case "wrap_positive", "positive":
		return BorderWrapPositive, nil
	}
	return 0, fmt.Errorf("%w: unknown border %q", ErrInvalidArgument, s)
}

// Border is a border generation policy. Color is only used by BorderSolid.
type Border struct {
	Kind  BorderKind
	Color color.RGBA
}

// Predefined policies.
var (
	NoBorder           = Border{Kind: BorderNone}
	WrapBothBorder     = Border{Kind: BorderWrapBoth}
	WrapPositiveBorder = Border{Kind: BorderWrapPositive}
)

// SolidBorder returns a policy padding every side with c.
func SolidBorder(c color.RGBA) Border {
	return Border{Kind: BorderSolid, Color: c}
}

func (b Border) String() string {
	if b.Kind == BorderSolid {
		return fmt.Sprintf("solid(#%02x%02x%02x%02x)", b.Color.R, b.Color.G, b.Color.B, b.Color.A)
	}
	return b.Kind.String()
}

// Equal reports whether b and o generate the same border. Color only counts
// for BorderSolid.
func (b Border) Equal(o Border) bool {
	if b.Kind != o.Kind {
		return false
	}
	return b.Kind != BorderSolid || b.Color == o.Color
}

// Padding returns how many pixels the border adds to each axis.
func (b Border) Padding() Size {
	switch b.Kind {
	case BorderNone:
		return Size{}
	case BorderWrapPositive:
		return Size{W: 1, H: 1}
	case BorderSolid, BorderWrapBoth:
		return Size{W: 2, H: 2}
	}
	panic(fmt.Sprintf("atlas: invalid border kind %d", b.Kind))
}

// Offset returns where the inner image starts inside the padded buffer.
func (b Border) Offset() image.Point {
	switch b.Kind {
	case BorderNone, BorderWrapPositive:
		return image.Point{}
	case BorderSolid, BorderWrapBoth:
		return image.Point{X: 1, Y: 1}
	}
	panic(fmt.Sprintf("atlas: invalid border kind %d", b.Kind))
}

// SizedWithBorder returns the padded size of an inner size.
func (b Border) SizedWithBorder(s Size) Size {
	return s.Add(b.Padding())
}

// GuessBorder picks the smallest wrapping border that makes the longer side
// of s a power of two once padded. It falls back to def when none does.
func GuessBorder(s Size, def Border) Border {
	m := s.Max()
	switch {
	case isPow2(m):
		return NoBorder
	case isPow2(m + 1):
		return WrapPositiveBorder
	case isPow2(m + 2):
		return WrapBothBorder
	}
	return def
}

func isPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// ceilLog2 returns the smallest k with 1<<k >= n. n must be positive.
func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}

// floorLog2 returns the largest k with 1<<k <= n. n must be positive.
func floorLog2(n int) int {
	return bits.Len(uint(n)) - 1
}
