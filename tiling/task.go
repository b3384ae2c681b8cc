package tiling

// RenderTaskLocation is either Fixed (framebuffer-backed, no allocation
// needed) or Dynamic, whose origin is unresolved until a RenderTargetList
// allocates it.
type RenderTaskLocation struct {
	fixed  bool
	size   DeviceSize
	origin DevicePoint
	placed bool
}

// FixedLocation builds a framebuffer-backed location.
func FixedLocation() RenderTaskLocation {
	return RenderTaskLocation{fixed: true}
}

// DynamicLocation builds an unplaced dynamic location of the given size.
func DynamicLocation(size DeviceSize) RenderTaskLocation {
	return RenderTaskLocation{size: size}
}

// IsFixed reports whether this location is framebuffer-backed.
func (l RenderTaskLocation) IsFixed() bool { return l.fixed }

// Size returns the task's footprint. Zero for Fixed locations, whose size
// is the framebuffer's.
func (l RenderTaskLocation) Size() DeviceSize { return l.size }

// Origin returns the allocated origin and true once a RenderTargetList has
// placed this location; otherwise (false, DevicePoint{}).
func (l RenderTaskLocation) Origin() (DevicePoint, bool) {
	if !l.placed {
		return DevicePoint{}, false
	}
	return l.origin, true
}

// place records the origin a RenderTargetList allocated for this location.
// Only valid for Dynamic locations; calling it on Fixed is a caller bug.
func (l *RenderTaskLocation) place(origin DevicePoint) {
	if l.fixed {
		abort("cannot place a fixed render task location")
	}
	l.origin = origin
	l.placed = true
}

// rect returns the device rect this location resolves to, once placed.
// Used by RenderTaskCollection.Add to derive the rect stored alongside a
// dynamic task's index.
func (l RenderTaskLocation) rect() DeviceRect {
	origin, ok := l.Origin()
	if !ok {
		abort("render task location has no origin")
	}
	return DeviceRect{
		X: float32(origin.X), Y: float32(origin.Y),
		Width: float32(l.size.Width), Height: float32(l.size.Height),
	}
}

// RenderTask is a unit of rendering work producing a bitmap in some render
// target, queued onto a RenderPass and resolved during that pass's build.
type RenderTask struct {
	Id       RenderTaskId
	Kind     RenderTaskKind
	Location RenderTaskLocation

	// Geometry is set only for TaskCacheMask tasks; see ClipBatcher.
	Geometry GeometryKind

	// Clips, BlurRadius, BlurPrim, BlurSourcePass, CachePrim, and
	// ReadbackRect carry kind-specific payload interpreted by
	// ColorRenderTarget/AlphaRenderTarget during dispatch (§4.6).
	Clips          []ClipMaskEntry
	BlurRadius     int32
	BlurPrim       PrimitiveIndex
	BlurSourcePass int
	ReadbackRect   DeviceRect

	// CachePrim names the primitive a CachePrimitive task renders.
	CachePrim PrimitiveIndex

	// AlphaItems and OpaqueItems carry an Alpha task's draw list (§4.5);
	// populated only for TaskAlpha tasks.
	AlphaItems  []AlphaRenderItem
	OpaqueItems []AlphaRenderItem

	// Isolate requests a scissored clear at render time; only meaningful
	// for TaskAlpha tasks attached to a ColorRenderTarget.
	Isolate bool
}

// TargetKind is a convenience forward to Kind.TargetKind().
func (t *RenderTask) TargetKind() RenderTargetKind { return t.Kind.TargetKind() }

// ClipMaskEntry pairs a packed-layer index with the clip-mask info C4
// expands into one or four CacheClipInstance rows.
type ClipMaskEntry struct {
	Layer    int32
	Mask     ClipMaskInfo
	ImageKey ImageMaskKey
	HasImage bool
}

// ClipMaskInfo is the resolved geometry for one clip entry: its address in
// shared clip GPU storage and how many CLIP_DATA_GPU_SIZE-sized sub-entries
// it carries.
type ClipMaskInfo struct {
	Address    int32
	EntryCount int32
}

// ImageMaskKey identifies an image mask to resolve through the external
// resource cache.
type ImageMaskKey struct {
	ResourceID uint32
}
