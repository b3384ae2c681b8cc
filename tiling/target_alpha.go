package tiling

import "github.com/gogpu/gputypes"

// AlphaRenderTarget is a single-channel render target hosting clip masks.
// It accepts only TaskCacheMask tasks; any other kind is a fatal
// invariant violation (§4.6).
type AlphaRenderTarget struct {
	Clips *ClipBatcher

	alloc *TextureAllocator
}

// NewAlphaRenderTarget creates an empty target of the given size.
func NewAlphaRenderTarget(size DeviceSize) *AlphaRenderTarget {
	return &AlphaRenderTarget{
		Clips: NewClipBatcher(),
		alloc: NewTextureAllocator(size),
	}
}

// Format reports the GPU texture format an alpha target's output binds as.
func (t *AlphaRenderTarget) Format() gputypes.TextureFormat { return gputypes.TextureFormatR8Unorm }

// UsedRect returns the bounding union of everything allocated into this
// target's backing page allocator.
func (t *AlphaRenderTarget) UsedRect() DeviceRect { return t.alloc.UsedRect() }

func (t *AlphaRenderTarget) allocator() *TextureAllocator { return t.alloc }

// AddTask dispatches a placed task. Only TaskCacheMask may attach to an
// alpha target (§4.6); a CacheMask with a dynamic location that was never
// given an origin is also a fatal invariant violation (§7).
func (t *AlphaRenderTarget) AddTask(task *RenderTask, taskIndex RenderTaskIndex, ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int) {
	if task.Kind != TaskCacheMask {
		abortf("task kind %v dispatched to alpha target", task.Kind)
	}
	if !task.Location.IsFixed() {
		if _, ok := task.Location.Origin(); !ok {
			abort("CacheMask task has a dynamic location with no resolved origin")
		}
	}
	t.Clips.Add(taskIndex, task.Clips, ctx.ResourceCache, task.Geometry)
}

// Build is a no-op: ClipBatcher accumulates instances as tasks are added
// and needs no separate finalisation pass, unlike AlphaBatcher's deferred
// merge scan.
func (t *AlphaRenderTarget) Build(ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int) {}
