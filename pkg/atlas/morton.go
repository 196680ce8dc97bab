package atlas

// Slot indices are mapped to grid cells with an axis-biased Morton code.
//
// A slot class (wx, wy) describes slots of 2^wx by 2^wy pixels. With
// d = |wx-wy|, 2^d neighbouring slots stacked along the short axis form a
// square block. The low d bits of an index select the slot inside its block;
// the remaining bits are a plain Z-order code over blocks. Filling indices in
// order therefore covers a square region before growing it.

// SlotClass is the log2 slot size hosted by a layer.
type SlotClass struct {
	WX, WY uint8
}

// SlotClassOf returns the smallest power-of-two class that holds s.
func SlotClassOf(s Size) SlotClass {
	return SlotClass{WX: uint8(ceilLog2(s.W)), WY: uint8(ceilLog2(s.H))}
}

// SlotSize returns the slot size in pixels.
func (c SlotClass) SlotSize() Size {
	return Size{W: 1 << c.WX, H: 1 << c.WY}
}

// aspect returns d = |wx-wy|.
func (c SlotClass) aspect() uint {
	if c.WX > c.WY {
		return uint(c.WX - c.WY)
	}
	return uint(c.WY - c.WX)
}

// blockLog2 returns log2 of the square block edge in pixels.
func (c SlotClass) blockLog2() int {
	return int(max(c.WX, c.WY))
}

// MaxSlots returns how many slots of this class fit in a square layer of
// edge 1<<edgeLog2 pixels.
func (c SlotClass) MaxSlots(edgeLog2 int) int {
	sx := edgeLog2 - int(c.WX)
	sy := edgeLog2 - int(c.WY)
	if sx < 0 || sy < 0 {
		return 0
	}
	return 1 << (sx + sy)
}

// SlotCell returns the grid cell (in slots) of slot index n.
func (c SlotClass) SlotCell(n int) (x, y int) {
	d := c.aspect()
	u := uint32(n)
	low := u & (1<<d - 1)
	bx, by := mortonDecode(u >> d)
	gx, gy := bx, by<<d|low
	if c.WX < c.WY {
		gx, gy = gy, gx
	}
	return int(gx), int(gy)
}

// SlotPosition returns the pixel position of slot index n.
func (c SlotClass) SlotPosition(n int) (x, y int) {
	gx, gy := c.SlotCell(n)
	return gx << c.WX, gy << c.WY
}

// SlotIndex is the inverse of SlotCell.
func (c SlotClass) SlotIndex(x, y int) int {
	d := c.aspect()
	gx, gy := uint32(x), uint32(y)
	if c.WX < c.WY {
		gx, gy = gy, gx
	}
	low := gy & (1<<d - 1)
	return int(mortonEncode(gx, gy>>d)<<d | low)
}

// part1by1 spreads the low 16 bits of v to the even bit positions.
func part1by1(v uint32) uint32 {
	v &= 0x0000ffff
	v = (v | v<<8) & 0x00ff00ff
	v = (v | v<<4) & 0x0f0f0f0f
	v = (v | v<<2) & 0x33333333
	v = (v | v<<1) & 0x55555555
	return v
}

// compact1by1 is the inverse of part1by1.
func compact1by1(v uint32) uint32 {
	v &= 0x55555555
	v = (v | v>>1) & 0x33333333
	v = (v | v>>2) & 0x0f0f0f0f
	v = (v | v>>4) & 0x00ff00ff
	v = (v | v>>8) & 0x0000ffff
	return v
}

func mortonEncode(x, y uint32) uint32 {
	return part1by1(x) | part1by1(y)<<1
}

func mortonDecode(n uint32) (x, y uint32) {
	return compact1by1(n), compact1by1(n >> 1)
}
