package atlas

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMortonEncodeDecode(t *testing.T) {
	for x := range uint32(64) {
		for y := range uint32(64) {
			gx, gy := mortonDecode(mortonEncode(x, y))
			if gx != x || gy != y {
				t.Fatalf("mortonDecode(mortonEncode(%d,%d)) = (%d,%d)", x, y, gx, gy)
			}
		}
	}
}

func TestSlotIndexBijection(t *testing.T) {
	const edgeLog2 = 5
	classes := []SlotClass{
		{WX: 0, WY: 0},
		{WX: 3, WY: 3},
		{WX: 4, WY: 2},
		{WX: 2, WY: 4},
		{WX: 5, WY: 0},
		{WX: 0, WY: 3},
	}

	for _, c := range classes {
		n := c.MaxSlots(edgeLog2)
		gridW := 1 << (edgeLog2 - int(c.WX))
		gridH := 1 << (edgeLog2 - int(c.WY))
		if n != gridW*gridH {
			t.Errorf("class %+v: expected %d slots, got %d", c, gridW*gridH, n)
		}

		seen := make(map[image.Point]int, n)
		for i := range n {
			x, y := c.SlotCell(i)
			if x < 0 || x >= gridW || y < 0 || y >= gridH {
				t.Fatalf("class %+v: slot %d at (%d,%d) outside %dx%d grid", c, i, x, y, gridW, gridH)
			}
			p := image.Pt(x, y)
			if prev, ok := seen[p]; ok {
				t.Fatalf("class %+v: slots %d and %d share cell %v", c, prev, i, p)
			}
			seen[p] = i
			if got := c.SlotIndex(x, y); got != i {
				t.Errorf("class %+v: SlotIndex(SlotCell(%d)) = %d", c, i, got)
			}
		}
	}
}

func TestSlotPositionSquareFirst(t *testing.T) {
	c := SlotClass{WX: 3, WY: 3}
	var got []image.Point
	for i := range 4 {
		x, y := c.SlotPosition(i)
		got = append(got, image.Pt(x, y))
	}
	want := []image.Point{{0, 0}, {8, 0}, {0, 8}, {8, 8}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SlotPosition mismatch (-want +got):\n%s", diff)
	}
}

func TestSlotPositionNonSquare(t *testing.T) {
	tests := []struct {
		name  string
		class SlotClass
		want  []image.Point
	}{
		{
			// 8x4 slots stack in pairs to form 8x8 blocks.
			name:  "wide",
			class: SlotClass{WX: 3, WY: 2},
			want:  []image.Point{{0, 0}, {0, 4}, {8, 0}, {8, 4}, {0, 8}, {0, 12}},
		},
		{
			name:  "tall",
			class: SlotClass{WX: 2, WY: 3},
			want:  []image.Point{{0, 0}, {4, 0}, {0, 8}, {4, 8}, {8, 0}, {12, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []image.Point
			for i := range len(tt.want) {
				x, y := tt.class.SlotPosition(i)
				got = append(got, image.Pt(x, y))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SlotPosition mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSlotClassOf(t *testing.T) {
	tests := []struct {
		size Size
		want SlotClass
	}{
		{Size{1, 1}, SlotClass{0, 0}},
		{Size{8, 8}, SlotClass{3, 3}},
		{Size{9, 8}, SlotClass{4, 3}},
		{Size{16, 3}, SlotClass{4, 2}},
	}
	for _, tt := range tests {
		if got := SlotClassOf(tt.size); got != tt.want {
			t.Errorf("SlotClassOf(%v): expected %+v, got %+v", tt.size, tt.want, got)
		}
	}
}
