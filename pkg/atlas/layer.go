package atlas

// layer is one slice of the array texture. All its slots share one class.
type layer struct {
	class     SlotClass
	slots     []*Tile
	firstFree int
	maxSlots  int
	used      int
	z         int
}

func newLayer(class SlotClass, edgeLog2, z int) *layer {
	return &layer{
		class:    class,
		maxSlots: class.MaxSlots(edgeLog2),
		z:        z,
	}
}

// full reports whether no slot is left.
func (l *layer) full() bool {
	return l.firstFree >= l.maxSlots
}

func (l *layer) empty() bool {
	return l.used == 0
}

// add places t into the first free slot.
func (l *layer) add(t *Tile) {
	idx := l.firstFree
	x, y := l.class.SlotPosition(idx)
	t.class = l.class
	t.placement = Placement{Slot: idx, X: x, Y: y, Layer: l.z}

	if idx == len(l.slots) {
		l.slots = append(l.slots, t)
	} else {
		l.slots[idx] = t
	}
	l.used++

	l.firstFree = len(l.slots)
	for i := idx + 1; i < len(l.slots); i++ {
		if l.slots[i] == nil {
			l.firstFree = i
			break
		}
	}
}

// remove frees the slot of t and trims trailing free slots.
func (l *layer) remove(t *Tile) {
	idx := t.placement.Slot
	l.slots[idx] = nil
	l.used--
	l.firstFree = min(l.firstFree, idx)

	n := len(l.slots)
	for n > 0 && l.slots[n-1] == nil {
		n--
	}
	clear(l.slots[n:])
	l.slots = l.slots[:n]
}

// requiredGridEdgeLog2 returns log2 of the smallest square grid, in blocks
// of edge max(slot size), that holds every occupied slot index.
func (l *layer) requiredGridEdgeLog2() int {
	s := len(l.slots)
	if s == 0 {
		return 0
	}
	d := l.class.aspect()
	blocks := (s + 1<<d - 1) >> d
	return (ceilLog2(blocks) + 1) / 2
}

// requiredTextureSize returns the layer edge in pixels needed by this layer.
func (l *layer) requiredTextureSize() int {
	if len(l.slots) == 0 {
		return 0
	}
	return 1 << (l.class.blockLog2() + l.requiredGridEdgeLog2())
}

// emit uploads every tile that is not yet written.
func (l *layer) emit(tex Texture, mipLevels int) error {
	for _, t := range l.slots {
		if t == nil || t.placement.Written {
			continue
		}
		if err := uploadTile(tex, t, mipLevels); err != nil {
			return err
		}
		t.placement.Written = true
	}
	return nil
}

// invalidate marks every tile as not written.
func (l *layer) invalidate() {
	for _, t := range l.slots {
		if t != nil {
			t.placement.Written = false
		}
	}
}

// shiftDown moves the layer one slice down after a lower layer was deleted.
func (l *layer) shiftDown() {
	l.z--
	for _, t := range l.slots {
		if t != nil {
			t.placement.Layer = l.z
			t.placement.Written = false
		}
	}
}

// LayerInfo describes one layer of the atlas.
type LayerInfo struct {
	Z             int
	Class         SlotClass
	Tiles         int
	Slots         int
	FirstFreeSlot int
	MaxSlots      int
	RequiredSize  int
}

// Utilization returns the fraction of slots in use.
func (i LayerInfo) Utilization() float64 {
	if i.MaxSlots == 0 {
		return 0
	}
	return float64(i.Tiles) / float64(i.MaxSlots)
}

func (l *layer) info() LayerInfo {
	return LayerInfo{
		Z:             l.z,
		Class:         l.class,
		Tiles:         l.used,
		Slots:         len(l.slots),
		FirstFreeSlot: l.firstFree,
		MaxSlots:      l.maxSlots,
		RequiredSize:  l.requiredTextureSize(),
	}
}
