package tiling

// fakePrimitiveSource is a minimal in-memory PrimitiveSource for tests:
// primitives are registered by index with their metadata and bounding rect.
type fakePrimitiveSource struct {
	meta  map[PrimitiveIndex]*PrimitiveMetadata
	rects map[PrimitiveIndex]DeviceRect
}

func newFakePrimitiveSource() *fakePrimitiveSource {
	return &fakePrimitiveSource{
		meta:  make(map[PrimitiveIndex]*PrimitiveMetadata),
		rects: make(map[PrimitiveIndex]DeviceRect),
	}
}

func (s *fakePrimitiveSource) add(idx PrimitiveIndex, meta *PrimitiveMetadata, rect DeviceRect) {
	s.meta[idx] = meta
	s.rects[idx] = rect
}

func (s *fakePrimitiveSource) Metadata(idx PrimitiveIndex) *PrimitiveMetadata {
	meta, ok := s.meta[idx]
	if !ok {
		abortf("no metadata registered for primitive %d", idx)
	}
	return meta
}

func (s *fakePrimitiveSource) BoundingRect(idx PrimitiveIndex) (DeviceRect, bool) {
	rect, ok := s.rects[idx]
	return rect, ok
}

// fakeResourceCache resolves every key to a fixed handle/address pair.
type fakeResourceCache struct {
	handle TextureHandle
	addr   GPUAddress
}

func (c *fakeResourceCache) ResolveImageMask(key ImageMaskKey) (TextureHandle, GPUAddress, error) {
	return c.handle, c.addr, nil
}

// newTestContext builds a RenderTargetContext around a fakePrimitiveSource
// with no stacking contexts or clip-scroll groups, suitable for tests that
// only exercise primitive items.
func newTestContext(primitives *fakePrimitiveSource) *RenderTargetContext {
	return &RenderTargetContext{
		Primitives:    primitives,
		ResourceCache: &fakeResourceCache{handle: TextureHandle{ID: 1, Valid: true}},
	}
}

func rectPrimitive(id int32, rect DeviceRect, axisAligned, opaque bool) *PrimitiveMetadata {
	return &PrimitiveMetadata{
		Kind:          PrimitiveRectangle,
		GlobalPrimID:  id,
		LayerIndex:    0,
		IsAxisAligned: axisAligned,
		IsOpaque:      opaque,
		Textures:      [3]TextureHandle{{ID: 1, Valid: true}, {}, {}},
	}
}
