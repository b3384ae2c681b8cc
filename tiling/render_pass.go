package tiling

import gg "github.com/gogpu/frame"

// RenderPass is one dependency level of the render graph: tasks within a
// pass do not depend on each other but may depend on tasks registered in
// earlier passes. A pass is built strictly after every pass with a smaller
// index (§4.7, §5).
type RenderPass struct {
	Index         int
	IsFramebuffer bool
	size          DeviceSize

	ColorTargets *RenderTargetList[*ColorRenderTarget]
	AlphaTargets *RenderTargetList[*AlphaRenderTarget]

	pending []*RenderTask
}

// NewRenderPass creates a pass sized to size. When isFramebuffer is true,
// the color target list is pre-seeded with one target so the pass's
// framebuffer-backed tasks have somewhere fixed to write (§4.7).
func NewRenderPass(index int, isFramebuffer bool, size DeviceSize) (*RenderPass, error) {
	if index < 0 {
		return nil, ErrInvalidPassIndex
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, ErrInvalidSize
	}

	p := &RenderPass{
		Index:         index,
		IsFramebuffer: isFramebuffer,
		size:          size,
		ColorTargets:  NewRenderTargetList(size, NewColorRenderTarget),
		AlphaTargets:  NewRenderTargetList(size, NewAlphaRenderTarget),
	}
	if isFramebuffer {
		target := NewColorRenderTarget(size)
		p.ColorTargets.Seed(target, target.allocator())
	}
	return p, nil
}

// AddRenderTask queues task for processing when Build runs.
func (p *RenderPass) AddRenderTask(task *RenderTask) {
	p.pending = append(p.pending, task)
}

// Build drains the pending queue in insertion order, allocating target
// space for every dynamic task (deduplicating identical ones first),
// registering each task in tasks, and dispatching it to the target list
// matching its kind. Once every task is processed, each target list's
// Build finalises its batching (§4.7).
func (p *RenderPass) Build(ctx *RenderTargetContext, tasks *RenderTaskCollection) {
	log := gg.Logger()
	log.Debug("building render pass", "pass", p.Index, "tasks", len(p.pending))

	for _, task := range p.pending {
		p.buildTask(ctx, tasks, task)
	}

	p.ColorTargets.Build(ctx, tasks, p.Index)
	p.AlphaTargets.Build(ctx, tasks, p.Index)

	log.Debug("render pass built", "pass", p.Index,
		"colorTargets", p.ColorTargets.Len(), "alphaTargets", p.AlphaTargets.Len())
}

func (p *RenderPass) buildTask(ctx *RenderTargetContext, tasks *RenderTaskCollection, task *RenderTask) {
	targetKind := task.TargetKind()

	if !task.Location.IsFixed() {
		if deduped := p.deduplicate(tasks, task); deduped {
			return
		}
		p.allocate(targetKind, task)
	}

	idx := tasks.Add(task, p.Index)

	switch targetKind {
	case TargetColor:
		targetIdx := p.lastColorTargetIndex()
		p.ColorTargets.AddTask(targetIdx, task, idx, ctx, tasks, p.Index)
	case TargetAlpha:
		targetIdx := p.lastAlphaTargetIndex()
		p.AlphaTargets.AddTask(targetIdx, task, idx, ctx, tasks, p.Index)
	default:
		abortf("unknown render target kind %v", targetKind)
	}
}

// deduplicate reports whether an identical dynamic task was already
// allocated in this pass. If so, the existing allocation's origin is
// copied onto task's location and the task is otherwise dropped — it
// contributes no new GPU work (§4.7 step 2).
func (p *RenderPass) deduplicate(tasks *RenderTaskCollection, task *RenderTask) bool {
	key, ok := task.Id.DynamicKey()
	if !ok {
		return false
	}
	_, rect, found := tasks.GetDynamicAllocation(p.Index, key)
	if !found {
		return false
	}
	if rect.Width != float32(task.Location.Size().Width) || rect.Height != float32(task.Location.Size().Height) {
		return false
	}
	task.Location.place(DevicePoint{X: int32(rect.X), Y: int32(rect.Y)})
	return true
}

// allocate places task's dynamic location within the target list matching
// its kind, growing the list with a new target on overflow (§4.2, §4.7
// step 2).
func (p *RenderPass) allocate(kind RenderTargetKind, task *RenderTask) {
	size := task.Location.Size()
	var origin DevicePoint
	switch kind {
	case TargetColor:
		origin, _ = p.ColorTargets.Allocate(size)
	case TargetAlpha:
		origin, _ = p.AlphaTargets.Allocate(size)
	default:
		abortf("unknown render target kind %v", kind)
	}
	task.Location.place(origin)
}

func (p *RenderPass) lastColorTargetIndex() int {
	if n := p.ColorTargets.Len(); n > 0 {
		return n - 1
	}
	abort("no color target available for dispatch")
	panic("unreachable")
}

func (p *RenderPass) lastAlphaTargetIndex() int {
	if n := p.AlphaTargets.Len(); n > 0 {
		return n - 1
	}
	abort("no alpha target available for dispatch")
	panic("unreachable")
}
