package atlas

import "fmt"

// Mipmapper produces the next mipmap level from the previous one.
//
// src includes its border pixels so filters may sample across wrapped edges.
// The result must use BorderNone and have the ceiling-halved inner size of
// src, i.e. ((w-1)/2+1, (h-1)/2+1).
type Mipmapper func(src *BorderedImage) *BorderedImage

// Pyramid is the mipmap chain of one tile. Level 0 is the full-resolution
// image; every level carries the same border policy.
type Pyramid struct {
	levels []*BorderedImage
}

// MipLevelCount returns the length of a full chain: the number of
// ceiling-halvings needed to bring the longer side of s down to one pixel,
// plus one. For power-of-two sizes this is floor(log2(max(s)))+1.
func MipLevelCount(s Size) int {
	if s.Empty() {
		return 0
	}
	return ceilLog2(s.Max()) + 1
}

// BuildPyramid derives the mipmap chain of base by applying mm until the
// longer side reaches one pixel. The border of base is re-applied to every
// level. A nil mipmapper yields a single-level pyramid.
func BuildPyramid(base *BorderedImage, mm Mipmapper) (*Pyramid, error) {
	if base == nil || base.Size().Empty() {
		return nil, ErrInvalidImage
	}
	p := &Pyramid{levels: []*BorderedImage{base}}
	if mm == nil {
		return p, nil
	}

	n := MipLevelCount(base.Size())
	prev := base
	for i := 1; i < n; i++ {
		out := mm(prev)
		want := prev.Size().Half()
		if out == nil || out.Released() {
			return nil, fmt.Errorf("%w: level %d: no image", ErrInvalidMipmap, i)
		}
		if out.Border().Kind != BorderNone {
			return nil, fmt.Errorf("%w: level %d: border %v, want none", ErrInvalidMipmap, i, out.Border())
		}
		if got := out.Size(); got != want {
			return nil, fmt.Errorf("%w: level %d: got %v, want %v", ErrInvalidMipmap, i, got, want)
		}
		next := AddBorder(base.Border(), out.Image())
		p.levels = append(p.levels, next)
		prev = next
	}
	return p, nil
}

// Len returns the number of levels.
func (p *Pyramid) Len() int {
	return len(p.levels)
}

// Level returns level i.
func (p *Pyramid) Level(i int) *BorderedImage {
	return p.levels[i]
}

// Size returns the inner size of level i. It stays valid after release.
func (p *Pyramid) Size(i int) Size {
	return p.levels[i].Size()
}

// ReleaseLevelPixels frees the pixel data of level i, keeping its size.
func (p *Pyramid) ReleaseLevelPixels(i int) {
	p.levels[i].release()
}

// ReleaseAll frees the pixel data of every level.
func (p *Pyramid) ReleaseAll() {
	for i := range p.levels {
		p.ReleaseLevelPixels(i)
	}
}

// Released reports whether every level has been released.
func (p *Pyramid) Released() bool {
	for _, l := range p.levels {
		if !l.Released() {
			return false
		}
	}
	return true
}
