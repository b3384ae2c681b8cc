package tiling

import "github.com/gogpu/gputypes"

// ColorRenderTarget is a render target producing RGBA output: the target
// kind that hosts primitive batching, text/box-shadow caching, blurs, and
// screen readbacks (§4.6).
type ColorRenderTarget struct {
	Batcher *AlphaBatcher

	BoxShadowCachePrims []PrimitiveInstance
	TextRunCachePrims   []PrimitiveInstance
	textRunTextures     TextureHandle

	VerticalBlurs   []BlurCommand
	HorizontalBlurs []BlurCommand
	Readbacks       []DeviceRect
	IsolateClears   []DeviceRect

	alloc *TextureAllocator
}

// NewColorRenderTarget creates an empty target of the given size. Matches
// the RenderTarget-parameterising constructor signature RenderTargetList
// expects (§9 "Polymorphism over target kinds").
func NewColorRenderTarget(size DeviceSize) *ColorRenderTarget {
	return &ColorRenderTarget{
		Batcher: NewAlphaBatcher(),
		alloc:   NewTextureAllocator(size),
	}
}

// Format reports the GPU texture format a color target's output binds as.
func (t *ColorRenderTarget) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// UsedRect returns the bounding union of everything allocated into this
// target's backing page allocator.
func (t *ColorRenderTarget) UsedRect() DeviceRect { return t.alloc.UsedRect() }

// allocator exposes the target's TextureAllocator to RenderPass, which owns
// the RenderTargetList driving allocation on the target's behalf.
func (t *ColorRenderTarget) allocator() *TextureAllocator { return t.alloc }

// AddTask dispatches a placed task by kind (§4.6). A kind that cannot
// attach to a color target (TaskCacheMask) is a fatal invariant violation.
func (t *ColorRenderTarget) AddTask(task *RenderTask, taskIndex RenderTaskIndex, ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int) {
	switch task.Kind {
	case TaskAlpha:
		t.Batcher.StageTask(taskIndex, task.AlphaItems, task.OpaqueItems)
		if task.Isolate {
			t.IsolateClears = append(t.IsolateClears, task.Location.rectOrZero())
		}

	case TaskVerticalBlur:
		srcKey := TaskKey{Kind: TaskKeyCachePrimitive, Prim: task.BlurPrim}
		srcIdx := tasks.GetTaskIndex(DynamicTaskId(srcKey), task.BlurSourcePass)
		t.VerticalBlurs = append(t.VerticalBlurs, BlurCommand{
			TaskID: int32(taskIndex), SrcTaskID: int32(srcIdx), Direction: BlurVertical,
		})

	case TaskHorizontalBlur:
		srcKey := TaskKey{Kind: TaskKeyVerticalBlur, Prim: task.BlurPrim, Aux: task.BlurRadius}
		srcIdx := tasks.GetTaskIndex(DynamicTaskId(srcKey), task.BlurSourcePass)
		t.HorizontalBlurs = append(t.HorizontalBlurs, BlurCommand{
			TaskID: int32(taskIndex), SrcTaskID: int32(srcIdx), Direction: BlurHorizontal,
		})

	case TaskCachePrimitive:
		t.addCachePrimitive(task, taskIndex, ctx, tasks, pass)

	case TaskReadback:
		t.Readbacks = append(t.Readbacks, task.ReadbackRect)

	case TaskCacheMask:
		abortf("task kind %v dispatched to color target", task.Kind)

	default:
		abortf("unknown render task kind %v in color target dispatch", task.Kind)
	}
}

// addCachePrimitive handles the two CachePrimitive payloads a color target
// ever receives: BoxShadow (one instance per GPU data slot, as the
// primitive encoder emits it) and blurred TextRun (one instance per glyph,
// sharing one texture across every cached run) (§4.6).
func (t *ColorRenderTarget) addCachePrimitive(task *RenderTask, taskIndex RenderTaskIndex, ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int) {
	meta := ctx.Primitives.Metadata(task.CachePrim)
	switch meta.Kind {
	case PrimitiveBoxShadow:
		encodePrimitive(meta, taskIndex, tasks, pass, func(inst PrimitiveInstance) {
			t.BoxShadowCachePrims = append(t.BoxShadowCachePrims, inst)
		})

	case PrimitiveTextRun:
		if meta.BlurRadius == 0 {
			abort("CachePrimitive dispatched for a non-blurred text run")
		}
		tex := meta.Textures[0]
		if t.textRunTextures.Valid && tex.Valid && t.textRunTextures.ID != tex.ID {
			abortf("text run cache texture mismatch within one target: %v vs %v", t.textRunTextures, tex)
		}
		if !t.textRunTextures.Valid {
			t.textRunTextures = tex
		}
		encodePrimitive(meta, taskIndex, tasks, pass, func(inst PrimitiveInstance) {
			t.TextRunCachePrims = append(t.TextRunCachePrims, inst)
		})

	default:
		abortf("unsupported CachePrimitive payload kind %v", meta.Kind)
	}
}

// Build finalises the target's AlphaBatcher once every task for the
// owning pass has been dispatched.
func (t *ColorRenderTarget) Build(ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int) {
	t.Batcher.Build(ctx, tasks, pass)
}
