package tiling

// ClipDataGPUSize is the byte footprint of one clip entry in shared clip
// GPU storage (§4.4). Each CacheClipInstance's Address is
// clipRange.Address + index*ClipDataGPUSize for the index'th entry of a
// mask_info's clip_range.
const ClipDataGPUSize = 16

// ClipSegment selects which rounded-corner (or the whole) geometry one
// CacheClipInstance covers.
type ClipSegment uint8

const (
	SegmentAll ClipSegment = iota
	SegmentTopLeft
	SegmentTopRight
	SegmentBottomLeft
	SegmentBottomRight
)

func (s ClipSegment) String() string {
	names := [...]string{"All", "TopLeft", "TopRight", "BottomLeft", "BottomRight"}
	if int(s) < len(names) {
		return names[s]
	}
	return "ClipSegment(?)"
}

// CacheClipInstance is the 16-byte GPU record one clip-mask draw produces.
type CacheClipInstance struct {
	TaskID     int32
	LayerIndex int32
	Address    int32
	Segment    ClipSegment
}

// cacheClipInstanceByteSize is the wire size of one CacheClipInstance:
// three int32 fields plus the segment byte, padded to 16 bytes.
const cacheClipInstanceByteSize = 16

// AppendTo serialises the instance as four little-endian int32 fields
// (TaskID, LayerIndex, Address, Segment) and appends them to buf.
func (c CacheClipInstance) AppendTo(buf []byte) []byte {
	var tmp [cacheClipInstanceByteSize]byte
	putInt32(tmp[0:4], c.TaskID)
	putInt32(tmp[4:8], c.LayerIndex)
	putInt32(tmp[8:12], c.Address)
	putInt32(tmp[12:16], int32(c.Segment))
	return append(buf, tmp[:]...)
}

// ClipBatcher accumulates the clip-mask draws of one alpha render target:
// plain rectangle/corner masks plus per-texture buckets of image masks
// (§4.4).
type ClipBatcher struct {
	Rectangles []CacheClipInstance
	Images     map[TextureHandle][]CacheClipInstance
}

// NewClipBatcher creates an empty batcher.
func NewClipBatcher() *ClipBatcher {
	return &ClipBatcher{Images: make(map[TextureHandle][]CacheClipInstance)}
}

// Add expands clips into CacheClipInstance rows for taskIndex, per §4.4:
// Default geometry emits one All-segment instance per clip entry,
// CornersOnly emits four corner-segment instances in TopLeft, TopRight,
// BottomLeft, BottomRight order. Entries with an attached image mask also
// resolve through resourceCache and append one instance to that texture's
// bucket.
func (cb *ClipBatcher) Add(taskIndex RenderTaskIndex, clips []ClipMaskEntry, resourceCache ResourceCache, geometryKind GeometryKind) {
	for _, clip := range clips {
		for i := int32(0); i < clip.Mask.EntryCount; i++ {
			address := clip.Mask.Address + i*ClipDataGPUSize
			cb.emitRectangles(taskIndex, clip.Layer, address, geometryKind)
		}

		if clip.HasImage {
			handle, addr, err := resourceCache.ResolveImageMask(clip.ImageKey)
			if err != nil {
				abortf("resolving image mask %+v: %v", clip.ImageKey, err)
			}
			inst := CacheClipInstance{
				TaskID:     int32(taskIndex),
				LayerIndex: clip.Layer,
				Address:    int32(addr),
				Segment:    SegmentAll,
			}
			cb.Images[handle] = append(cb.Images[handle], inst)
		}
	}
}

func (cb *ClipBatcher) emitRectangles(taskIndex RenderTaskIndex, layer int32, address int32, geometryKind GeometryKind) {
	switch geometryKind {
	case GeometryDefault:
		cb.Rectangles = append(cb.Rectangles, CacheClipInstance{
			TaskID: int32(taskIndex), LayerIndex: layer, Address: address, Segment: SegmentAll,
		})
	case GeometryCornersOnly:
		for _, seg := range [...]ClipSegment{SegmentTopLeft, SegmentTopRight, SegmentBottomLeft, SegmentBottomRight} {
			cb.Rectangles = append(cb.Rectangles, CacheClipInstance{
				TaskID: int32(taskIndex), LayerIndex: layer, Address: address, Segment: seg,
			})
		}
	default:
		abortf("unknown clip geometry kind %v", geometryKind)
	}
}
