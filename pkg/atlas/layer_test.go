package atlas

import "testing"

func newTestTiles(n int) []*Tile {
	tiles := make([]*Tile, n)
	for i := range tiles {
		tiles[i] = &Tile{name: string(rune('a' + i))}
	}
	return tiles
}

func TestLayerAddRemove(t *testing.T) {
	l := newLayer(SlotClass{WX: 2, WY: 2}, 4, 0)
	if l.maxSlots != 16 {
		t.Fatalf("expected 16 slots, got %d", l.maxSlots)
	}

	tiles := newTestTiles(4)
	for i, tile := range tiles {
		l.add(tile)
		if tile.placement.Slot != i {
			t.Errorf("tile %d: expected slot %d, got %d", i, i, tile.placement.Slot)
		}
	}
	if l.firstFree != 4 {
		t.Errorf("expected first free slot 4, got %d", l.firstFree)
	}

	l.remove(tiles[1])
	if l.firstFree != 1 {
		t.Errorf("expected first free slot 1 after removal, got %d", l.firstFree)
	}
	if len(l.slots) != 4 {
		t.Errorf("expected 4 slots, got %d", len(l.slots))
	}

	// Removing the last tile trims trailing free slots.
	l.remove(tiles[3])
	if len(l.slots) != 3 {
		t.Errorf("expected 3 slots after trimming, got %d", len(l.slots))
	}

	// The hole is reused first.
	extra := &Tile{name: "x"}
	l.add(extra)
	if extra.placement.Slot != 1 {
		t.Errorf("expected hole at slot 1 to be reused, got %d", extra.placement.Slot)
	}
	if l.firstFree != 3 {
		t.Errorf("expected first free slot 3, got %d", l.firstFree)
	}

	l.remove(tiles[0])
	l.remove(tiles[2])
	l.remove(extra)
	if !l.empty() || len(l.slots) != 0 {
		t.Errorf("expected empty layer, got %d used, %d slots", l.used, len(l.slots))
	}
}

func TestLayerFull(t *testing.T) {
	l := newLayer(SlotClass{WX: 3, WY: 3}, 4, 0)
	for _, tile := range newTestTiles(4) {
		if l.full() {
			t.Fatal("layer full too early")
		}
		l.add(tile)
	}
	if !l.full() {
		t.Error("expected layer to be full")
	}
}

func TestLayerRequiredTextureSize(t *testing.T) {
	tests := []struct {
		class SlotClass
		slots int
		want  int
	}{
		{SlotClass{3, 3}, 1, 8},
		{SlotClass{3, 3}, 2, 16},
		{SlotClass{3, 3}, 4, 16},
		{SlotClass{3, 3}, 5, 32},
		{SlotClass{3, 3}, 16, 32},
		{SlotClass{3, 3}, 17, 64},
		{SlotClass{3, 2}, 2, 8},
		{SlotClass{3, 2}, 3, 16},
		{SlotClass{3, 2}, 8, 16},
		{SlotClass{3, 2}, 9, 32},
		{SlotClass{0, 2}, 4, 4},
		{SlotClass{0, 2}, 5, 8},
	}

	for _, tt := range tests {
		l := newLayer(tt.class, 10, 0)
		for _, tile := range newTestTiles(tt.slots) {
			l.add(tile)
		}
		if got := l.requiredTextureSize(); got != tt.want {
			t.Errorf("class %+v with %d slots: expected %d, got %d", tt.class, tt.slots, tt.want, got)
		}

		// Every placed slot lies inside the required square.
		for _, tile := range l.slots {
			p := tile.placement
			s := tt.class.SlotSize()
			if p.X+s.W > tt.want || p.Y+s.H > tt.want {
				t.Errorf("class %+v: slot %d at (%d,%d) outside %d", tt.class, p.Slot, p.X, p.Y, tt.want)
			}
		}
	}
}

func TestLayerShiftDown(t *testing.T) {
	l := newLayer(SlotClass{WX: 1, WY: 1}, 3, 2)
	tiles := newTestTiles(3)
	for _, tile := range tiles {
		l.add(tile)
		tile.placement.Written = true
	}

	l.shiftDown()

	if l.z != 1 {
		t.Errorf("expected z 1, got %d", l.z)
	}
	for _, tile := range tiles {
		if tile.placement.Layer != 1 {
			t.Errorf("tile %s: expected layer 1, got %d", tile.name, tile.placement.Layer)
		}
		if tile.placement.Written {
			t.Errorf("tile %s: expected written flag cleared", tile.name)
		}
	}
}
