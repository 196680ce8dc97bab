package atlas

import (
	"image"
	"iter"
	"slices"

	"go.uber.org/zap"
)

// Config holds atlas configuration. Zero values select defaults.
type Config struct {
	// MaxTextureSize is the layer edge cap in pixels. Must be a power of
	// two not above the texture limit. Default: the texture limit.
	MaxTextureSize int

	// MaxLayerCount caps the number of array layers.
	// Default: the texture limit.
	MaxLayerCount int

	// DefaultBorder is used when a border cannot be inferred.
	DefaultBorder Border

	// Mipmapper builds the mipmap chain of every tile. Nil disables mipmaps.
	Mipmapper Mipmapper

	// Logger receives debug output. Default: no-op.
	Logger *zap.Logger
}

// validate fills defaults from the texture limits and checks ranges.
func (c *Config) validate(maxSize, maxLayers int) error {
	if c.MaxTextureSize == 0 {
		c.MaxTextureSize = 1 << floorLog2(max(maxSize, 1))
	}
	if c.MaxLayerCount == 0 {
		c.MaxLayerCount = maxLayers
	}
	if c.MaxTextureSize < 1 {
		return &ConfigError{Field: "MaxTextureSize", Reason: "must be at least 1"}
	}
	if c.MaxTextureSize > maxSize {
		return &ConfigError{Field: "MaxTextureSize", Reason: "exceeds texture limit"}
	}
	if !isPow2(c.MaxTextureSize) {
		return &ConfigError{Field: "MaxTextureSize", Reason: "must be power of 2"}
	}
	if c.MaxLayerCount < 1 {
		return &ConfigError{Field: "MaxLayerCount", Reason: "must be at least 1"}
	}
	if c.MaxLayerCount > maxLayers {
		return &ConfigError{Field: "MaxLayerCount", Reason: "exceeds texture limit"}
	}
	if c.DefaultBorder.Kind > BorderWrapPositive {
		return &ConfigError{Field: "DefaultBorder", Reason: "unknown border kind"}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	return nil
}

// Atlas packs named tiles into the layers of an array texture.
type Atlas struct {
	cfg      Config
	edgeLog2 int
	tex      Texture
	log      *zap.Logger

	tiles  map[string]*Tile
	layers []*layer

	// texture state after the last successful resize
	texSize   int
	texLayers int
	texMips   int

	frozen bool
}

// New creates an empty atlas that synchronizes to tex.
func New(tex Texture, cfg Config) (*Atlas, error) {
	maxSize, maxLayers := tex.Limits()
	if err := cfg.validate(int(maxSize), int(maxLayers)); err != nil {
		return nil, err
	}
	return &Atlas{
		cfg:      cfg,
		edgeLog2: floorLog2(cfg.MaxTextureSize),
		tex:      tex,
		log:      cfg.Logger,
		tiles:    make(map[string]*Tile),
	}, nil
}

// Config returns the effective configuration.
func (a *Atlas) Config() Config {
	return a.cfg
}

// GuessBorder returns the border Add would infer for an image of size s.
func (a *Atlas) GuessBorder(s Size) Border {
	return GuessBorder(s, a.cfg.DefaultBorder)
}

// Add inserts img under name. Without a border argument the border is
// inferred with GuessBorder. On failure the atlas is unchanged.
func (a *Atlas) Add(name string, img *image.RGBA, border ...Border) error {
	_, err := a.add(name, img, border)
	return err
}

// AddWithHandle is Add returning a handle to the new tile.
func (a *Atlas) AddWithHandle(name string, img *image.RGBA, border ...Border) (*Handle, error) {
	t, err := a.add(name, img, border)
	if err != nil {
		return nil, err
	}
	return newHandle(t), nil
}

func (a *Atlas) add(name string, img *image.RGBA, border []Border) (*Tile, error) {
	fail := func(err error) (*Tile, error) {
		return nil, &TileError{Op: "add", Name: name, Err: err}
	}
	if a.frozen {
		return fail(ErrFrozen)
	}
	if name == "" {
		return fail(ErrInvalidName)
	}
	if _, ok := a.tiles[name]; ok {
		return fail(ErrInvalidName)
	}
	if img == nil || SizeOf(img.Rect).Empty() {
		return fail(ErrInvalidImage)
	}

	size := SizeOf(img.Rect)
	var b Border
	switch len(border) {
	case 0:
		b = a.GuessBorder(size)
	case 1:
		b = border[0]
		if b.Kind > BorderWrapPositive {
			panic("atlas: invalid border kind " + b.Kind.String())
		}
	default:
		panic("atlas: more than one border given")
	}

	padded := b.SizedWithBorder(size)
	if padded.W > a.cfg.MaxTextureSize || padded.H > a.cfg.MaxTextureSize {
		return fail(ErrTooLarge)
	}

	class := SlotClassOf(padded)
	l := a.findLayer(class)
	if l == nil && len(a.layers) >= a.cfg.MaxLayerCount {
		return fail(ErrOutOfLayers)
	}

	pyr, err := BuildPyramid(AddBorder(b, img), a.cfg.Mipmapper)
	if err != nil {
		return fail(err)
	}

	if l == nil {
		l = newLayer(class, a.edgeLog2, len(a.layers))
		a.layers = append(a.layers, l)
		a.log.Debug("layer created",
			zap.Int("z", l.z),
			zap.Stringer("slot", class.SlotSize()),
			zap.Int("max_slots", l.maxSlots))
	}

	t := &Tile{name: name, image: pyr, border: b, size: size}
	l.add(t)
	a.tiles[name] = t

	a.log.Debug("tile added",
		zap.String("name", name),
		zap.Stringer("size", size),
		zap.Stringer("border", b),
		zap.Int("layer", t.placement.Layer),
		zap.Int("slot", t.placement.Slot))
	if usable := t.usableLevels(); usable < pyr.Len() {
		a.log.Debug("tile limits mip levels",
			zap.String("name", name),
			zap.Int("levels", pyr.Len()),
			zap.Int("usable", usable))
	}
	return t, nil
}

// findLayer returns the first non-full layer of the given class.
func (a *Atlas) findLayer(class SlotClass) *layer {
	for _, l := range a.layers {
		if l.class == class && !l.full() {
			return l
		}
	}
	return nil
}

// Remove deletes the tile called name and nulls its handles.
func (a *Atlas) Remove(name string) error {
	if a.frozen {
		return &TileError{Op: "remove", Name: name, Err: ErrFrozen}
	}
	if !a.TryRemove(name) {
		return &TileError{Op: "remove", Name: name, Err: ErrUnknownTile}
	}
	return nil
}

// TryRemove deletes the tile called name if present and reports whether it
// did. A layer left empty is deleted and the layers above it move down.
func (a *Atlas) TryRemove(name string) bool {
	if a.frozen {
		return false
	}
	t, ok := a.tiles[name]
	if !ok {
		return false
	}

	z := t.placement.Layer
	l := a.layers[z]
	l.remove(t)
	delete(a.tiles, name)
	t.detach()

	if l.empty() {
		a.layers = slices.Delete(a.layers, z, z+1)
		for _, above := range a.layers[z:] {
			above.shiftDown()
		}
		a.log.Debug("layer deleted", zap.Int("z", z), zap.Int("remaining", len(a.layers)))
	}

	a.log.Debug("tile removed", zap.String("name", name))
	return true
}

// Contains reports whether h refers to a tile of this atlas.
func (a *Atlas) Contains(h *Handle) bool {
	t := h.Tile()
	return t != nil && a.tiles[t.name] == t
}

// Lookup returns the tile called name, or nil. It does not register a
// handle, so it is the accessor for repeated queries.
func (a *Atlas) Lookup(name string) *Tile {
	return a.tiles[name]
}

// Acquire returns a registered handle to the tile called name, or a null
// handle. The tile tracks the handle until it is Reset or the tile is
// removed.
func (a *Atlas) Acquire(name string) *Handle {
	t, ok := a.tiles[name]
	if !ok {
		return &Handle{}
	}
	return newHandle(t)
}

// Len returns the number of tiles.
func (a *Atlas) Len() int {
	return len(a.tiles)
}

// LayerCount returns the number of layers in use.
func (a *Atlas) LayerCount() int {
	return len(a.layers)
}

// Tiles iterates over all tiles, layer by layer in slot order.
func (a *Atlas) Tiles() iter.Seq[*Tile] {
	return func(yield func(*Tile) bool) {
		for _, l := range a.layers {
			for _, t := range l.slots {
				if t != nil && !yield(t) {
					return
				}
			}
		}
	}
}

// Layers describes every layer in z order.
func (a *Atlas) Layers() []LayerInfo {
	infos := make([]LayerInfo, len(a.layers))
	for i, l := range a.layers {
		infos[i] = l.info()
	}
	return infos
}

// RequiredTextureSize returns the layer edge needed by the current tiles.
func (a *Atlas) RequiredTextureSize() int {
	size := 0
	for _, l := range a.layers {
		size = max(size, l.requiredTextureSize())
	}
	return size
}

// MipLevels returns the mipmap level count the texture needs: the smallest
// number of levels every tile can upload without bleeding out of its slot.
func (a *Atlas) MipLevels() int {
	if len(a.tiles) == 0 {
		return 1
	}
	n := -1
	for _, t := range a.tiles {
		if u := t.usableLevels(); n < 0 || u < n {
			n = u
		}
	}
	return n
}

// TextureSize returns the edge, layer count and mip level count of the last
// successful Resize.
func (a *Atlas) TextureSize() (size, layers, mipLevels int) {
	return a.texSize, a.texLayers, a.texMips
}

// UpdateTexture resizes the texture if needed and uploads every tile that is
// not yet written. When Resize reports a new texture, every tile is uploaded
// again. A failed upload leaves the remaining tiles unwritten; calling
// UpdateTexture again retries them.
func (a *Atlas) UpdateTexture() error {
	if a.frozen {
		return ErrFrozen
	}
	return a.update()
}

func (a *Atlas) update() error {
	if len(a.layers) == 0 {
		return nil
	}
	size := a.RequiredTextureSize()
	mips := a.MipLevels()

	realloc, err := a.tex.Resize(int32(size), int32(len(a.layers)), int32(mips))
	if err != nil {
		return err
	}
	a.texSize, a.texLayers, a.texMips = size, len(a.layers), mips
	if realloc {
		a.log.Debug("texture reallocated",
			zap.Int("size", size),
			zap.Int("layers", len(a.layers)),
			zap.Int("mip_levels", mips))
		for _, l := range a.layers {
			l.invalidate()
		}
	}

	for _, l := range a.layers {
		if err := l.emit(a.tex, mips); err != nil {
			return err
		}
	}
	return nil
}

// Freeze uploads every pending tile, releases all pixel data and returns a
// read-only view. The atlas rejects mutation afterwards. If the upload
// fails, the atlas stays usable and nothing is released.
func (a *Atlas) Freeze() (*Frozen, error) {
	if a.frozen {
		return nil, ErrFrozen
	}
	if err := a.update(); err != nil {
		return nil, err
	}
	for t := range a.Tiles() {
		t.image.ReleaseAll()
	}
	a.frozen = true
	a.log.Debug("atlas frozen", zap.Int("tiles", len(a.tiles)), zap.Int("layers", len(a.layers)))
	return &Frozen{a: a}, nil
}
