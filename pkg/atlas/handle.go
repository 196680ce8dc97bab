package atlas

// Handle is a reference to a tile that becomes null when the tile is
// removed. The zero value is a null handle.
//
// Every non-null handle is registered with its tile. Handles obtained from
// AddWithHandle, Acquire, Clone, Set or Take are registered; call Reset when
// a handle is no longer needed so the tile stops tracking it. Use
// Atlas.Lookup for queries that do not need to outlive the call.
type Handle struct {
	tile *Tile
}

func newHandle(t *Tile) *Handle {
	h := &Handle{}
	h.attach(t)
	return h
}

func (h *Handle) attach(t *Tile) {
	h.tile = t
	if t != nil {
		t.handles = append(t.handles, h)
	}
}

// Clone returns a new handle to the same tile.
func (h *Handle) Clone() *Handle {
	if h == nil {
		return &Handle{}
	}
	return newHandle(h.tile)
}

// Set makes h refer to the tile of src, releasing its previous tile first.
func (h *Handle) Set(src *Handle) {
	if h == src {
		return
	}
	h.Reset()
	if src != nil {
		h.attach(src.tile)
	}
}

// Take moves src into h: h takes over src's registry entry and src becomes
// null.
func (h *Handle) Take(src *Handle) {
	if h == src {
		return
	}
	h.Reset()
	if src == nil || src.tile == nil {
		return
	}
	t := src.tile
	for i, r := range t.handles {
		if r == src {
			t.handles[i] = h
			break
		}
	}
	h.tile = t
	src.tile = nil
}

// Reset unregisters h from its tile and makes it null.
func (h *Handle) Reset() {
	if h == nil || h.tile == nil {
		return
	}
	t := h.tile
	for i, r := range t.handles {
		if r == h {
			last := len(t.handles) - 1
			t.handles[i] = t.handles[last]
			t.handles[last] = nil
			t.handles = t.handles[:last]
			break
		}
	}
	h.tile = nil
}

// Valid reports whether h refers to a live tile.
func (h *Handle) Valid() bool {
	return h != nil && h.tile != nil
}

// Tile returns the referenced tile, or nil for a null handle.
func (h *Handle) Tile() *Tile {
	if h == nil {
		return nil
	}
	return h.tile
}

// Name returns the tile name, or "" for a null handle.
func (h *Handle) Name() string {
	if !h.Valid() {
		return ""
	}
	return h.tile.name
}

// Equal reports whether both handles refer to the same tile.
func (h *Handle) Equal(o *Handle) bool {
	return h.Tile() == o.Tile()
}
