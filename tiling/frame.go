package tiling

import gg "github.com/gogpu/frame"

// FrameConfig configures a Frame at construction. Required fields have no
// sane default; StaticTaskCount may be zero if the scene registers no
// static tasks.
type FrameConfig struct {
	// Size is the uniform target size new render targets are created at.
	Size DeviceSize

	// StaticTaskCount preallocates that many static task-data slots in the
	// frame's RenderTaskCollection (§4.3).
	StaticTaskCount int
}

// Frame owns the ordered sequence of render passes and the GPU-resident
// buffers the renderer consumes once the frame build completes. It has no
// logic beyond composition (§4.8): pass ordering, task resolution, and
// batching all live in RenderPass/RenderTaskCollection/AlphaBatcher.
type Frame struct {
	Tasks  *RenderTaskCollection
	Passes []*RenderPass

	PackedLayers     []PackedLayer
	Geometry         []PrimitiveGeometry
	GradientData     []GradientStop
	ResourceRects    []ResourceRect
	DeferredResolves []DeferredResolve

	// Blocks holds the four fixed-size GPU data block buffers, indexed by
	// GPUBlockSize.
	Blocks [4][]byte
}

// NewFrame creates an empty frame ready to receive passes.
func NewFrame(cfg FrameConfig) (*Frame, error) {
	if cfg.Size.Width <= 0 || cfg.Size.Height <= 0 {
		return nil, ErrInvalidSize
	}
	return &Frame{
		Tasks: NewRenderTaskCollection(cfg.StaticTaskCount),
	}, nil
}

// AddPass appends a new pass at the next ascending index and returns it for
// the caller to populate with render tasks.
func (f *Frame) AddPass(isFramebuffer bool, size DeviceSize) (*RenderPass, error) {
	pass, err := NewRenderPass(len(f.Passes), isFramebuffer, size)
	if err != nil {
		return nil, err
	}
	f.Passes = append(f.Passes, pass)
	return pass, nil
}

// Build builds every pass in ascending index order, satisfying the
// invariant that a pass builds after every pass whose tasks it may depend
// on (§4.7, §5).
func (f *Frame) Build(ctx *RenderTargetContext) {
	log := gg.Logger()
	log.Debug("building frame", "passes", len(f.Passes))
	for _, pass := range f.Passes {
		pass.Build(ctx, f.Tasks)
	}
}

// PushBlock appends raw GPU data of the given block size and returns the
// slot index it was written at, for addressing from primitive metadata.
func (f *Frame) PushBlock(size GPUBlockSize, data []byte) int {
	idx := len(f.Blocks[size]) / blockByteWidth(size)
	f.Blocks[size] = append(f.Blocks[size], data...)
	return idx
}

func blockByteWidth(size GPUBlockSize) int {
	switch size {
	case Block16:
		return 16
	case Block32:
		return 32
	case Block64:
		return 64
	case Block128:
		return 128
	default:
		abortf("unknown GPU block size %d", size)
		panic("unreachable")
	}
}
