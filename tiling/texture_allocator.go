package tiling

// shelf is one horizontal strip of a TextureAllocator's shelf-packing scheme.
type shelf struct {
	y      int32
	height int32
	nextX  int32
}

// TextureAllocator owns a page allocator for one render target surface and
// tracks the union of all allocated rects as usedRect, for scissor-limited
// clears at render time.
//
// The frame build runs single-threaded (§5), so unlike a texture cache
// shared across frames, TextureAllocator needs no internal locking.
type TextureAllocator struct {
	width, height int32
	padding       int32
	shelves       []shelf
	usedRect      DeviceRect
	hasUsed       bool
}

// NewTextureAllocator creates an allocator for a target surface of the
// given size.
func NewTextureAllocator(size DeviceSize) *TextureAllocator {
	return &TextureAllocator{
		width:  size.Width,
		height: size.Height,
	}
}

// Allocate finds space for a rect of the given size using shelf packing.
// The specific packing policy is not observable outside this type as long
// as it returns disjoint rectangles within the target's bounds (§4.1); a
// guillotine or skyline packer would satisfy the same contract.
//
// On success, extends usedRect to the bounding union of usedRect and the
// newly allocated rect, and returns (origin, true). On failure — the
// target cannot accommodate the size — returns (DevicePoint{}, false).
func (a *TextureAllocator) Allocate(size DeviceSize) (DevicePoint, bool) {
	if size.Width <= 0 || size.Height <= 0 {
		return DevicePoint{}, false
	}
	if size.Width > a.width || size.Height > a.height {
		return DevicePoint{}, false
	}

	for i := range a.shelves {
		if origin, ok := a.tryShelf(i, size); ok {
			return origin, true
		}
	}
	return a.newShelf(size)
}

func (a *TextureAllocator) tryShelf(i int, size DeviceSize) (DevicePoint, bool) {
	s := &a.shelves[i]
	if s.nextX+size.Width > a.width {
		return DevicePoint{}, false
	}
	// A shelf's height is fixed by its first occupant; a taller item must
	// start a new shelf rather than stretch this one.
	if size.Height > s.height && s.nextX > 0 {
		return DevicePoint{}, false
	}

	origin := DevicePoint{X: s.nextX, Y: s.y}
	s.nextX += size.Width
	if size.Height > s.height {
		s.height = size.Height
	}
	a.extendUsed(DeviceRect{
		X: float32(origin.X), Y: float32(origin.Y),
		Width: float32(size.Width), Height: float32(size.Height),
	})
	return origin, true
}

func (a *TextureAllocator) newShelf(size DeviceSize) (DevicePoint, bool) {
	y := int32(0)
	if n := len(a.shelves); n > 0 {
		last := a.shelves[n-1]
		y = last.y + last.height
	}
	if y+size.Height > a.height {
		return DevicePoint{}, false
	}

	a.shelves = append(a.shelves, shelf{y: y, height: size.Height, nextX: size.Width})
	origin := DevicePoint{X: 0, Y: y}
	a.extendUsed(DeviceRect{
		X: float32(origin.X), Y: float32(origin.Y),
		Width: float32(size.Width), Height: float32(size.Height),
	})
	return origin, true
}

func (a *TextureAllocator) extendUsed(r DeviceRect) {
	if !a.hasUsed {
		a.usedRect = r
		a.hasUsed = true
		return
	}
	minX := min(a.usedRect.X, r.X)
	minY := min(a.usedRect.Y, r.Y)
	maxX := max(a.usedRect.X+a.usedRect.Width, r.X+r.Width)
	maxY := max(a.usedRect.Y+a.usedRect.Height, r.Y+r.Height)
	a.usedRect = DeviceRect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// UsedRect returns the bounding union of all rects allocated so far. Zero
// value if nothing has been allocated yet.
func (a *TextureAllocator) UsedRect() DeviceRect { return a.usedRect }
