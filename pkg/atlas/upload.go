package atlas

import "image"

// uploadRects returns the rectangles of a padded level, relative to the
// padded buffer, in upload order: the image first, then its borders.
func uploadRects(b Border, s Size) []image.Rectangle {
	w, h := s.W, s.H
	switch b.Kind {
	case BorderNone:
		return []image.Rectangle{image.Rect(0, 0, w, h)}
	case BorderWrapPositive:
		return []image.Rectangle{
			image.Rect(0, 0, w, h),
			image.Rect(w, 0, w+1, h),   // right column
			image.Rect(0, h, w, h+1),   // bottom row
			image.Rect(w, h, w+1, h+1), // corner
		}
	case BorderSolid, BorderWrapBoth:
		return []image.Rectangle{
			image.Rect(1, 1, w+1, h+1),
			image.Rect(0, 0, 1, 1),
			image.Rect(w+1, 0, w+2, 1),
			image.Rect(0, h+1, 1, h+2),
			image.Rect(w+1, h+1, w+2, h+2),
			image.Rect(1, 0, w+1, 1),     // top
			image.Rect(1, h+1, w+1, h+2), // bottom
			image.Rect(0, 1, 1, h+1),     // left
			image.Rect(w+1, 1, w+2, h+1), // right
		}
	}
	panic("atlas: invalid border kind " + b.Kind.String())
}

// uploadTile writes mipLevels levels of t to tex.
func uploadTile(tex Texture, t *Tile, mipLevels int) error {
	p := t.placement
	for m := range min(mipLevels, t.image.Len()) {
		lvl := t.image.Level(m)
		px, py := p.X>>m, p.Y>>m
		for _, r := range uploadRects(t.border, lvl.Size()) {
			off := Offset{X: int32(px + r.Min.X), Y: int32(py + r.Min.Y), Z: int32(p.Layer)}
			if err := tex.Modify(lvl.Sub(r), off, int32(m)); err != nil {
				return err
			}
		}
	}
	return nil
}
