package tiling

// RenderTarget is the small contract ColorRenderTarget and AlphaRenderTarget
// share, parameterised once at RenderTargetList's type so the pass/build
// machinery stays oblivious to target kind (§9 "Polymorphism over target
// kinds").
type RenderTarget interface {
	// AddTask dispatches a placed task to this target, classifying by
	// task.Kind and feeding the appropriate batcher or auxiliary list.
	AddTask(task *RenderTask, taskIndex RenderTaskIndex, ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int)

	// Build finalises this target's batching once every task for the
	// owning pass has been dispatched.
	Build(ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int)

	// UsedRect returns the bounding union of everything allocated into
	// this target, for scissor-limited clears.
	UsedRect() DeviceRect
}

// RenderTargetList holds a uniform size shared by every target it owns, and
// an append-only ordered list of targets of that size. Allocation always
// tries the last target first; on failure it grows the list with a new
// target of the same size.
//
// Target indices are stable for the lifetime of the pass and are used as
// GPU binding identifiers downstream, so targets are never reordered or
// removed once appended.
type RenderTargetList[T RenderTarget] struct {
	size    DeviceSize
	targets []T
	alloc   []*TextureAllocator
	newFn   func(DeviceSize) T
}

// NewRenderTargetList creates an empty list for targets of the given
// uniform size. newFn constructs a fresh T when the list overflows to a new
// target.
func NewRenderTargetList[T RenderTarget](size DeviceSize, newFn func(DeviceSize) T) *RenderTargetList[T] {
	return &RenderTargetList[T]{size: size, newFn: newFn}
}

// Seed appends an already-constructed target, used by RenderPass to
// pre-seed the framebuffer pass's color list with its initial target
// (§4.7).
func (l *RenderTargetList[T]) Seed(target T, alloc *TextureAllocator) {
	l.targets = append(l.targets, target)
	l.alloc = append(l.alloc, alloc)
}

// Len returns the number of targets currently in the list.
func (l *RenderTargetList[T]) Len() int { return len(l.targets) }

// Target returns the target at idx.
func (l *RenderTargetList[T]) Target(idx int) T { return l.targets[idx] }

// Allocate places a rect of size within the last target; on failure it
// creates a new target of the list's uniform size and allocates there.
// That second allocation must succeed — a size exceeding the uniform
// target size is a fatal configuration error ("task larger than one
// target"), not a recoverable condition (§4.2, §7).
func (l *RenderTargetList[T]) Allocate(size DeviceSize) (DevicePoint, int) {
	if n := len(l.targets); n > 0 {
		if origin, ok := l.alloc[n-1].Allocate(size); ok {
			return origin, n - 1
		}
	}

	target := l.newFn(l.size)
	alloc := NewTextureAllocator(l.size)
	if owner, ok := any(target).(interface{ allocator() *TextureAllocator }); ok {
		alloc = owner.allocator()
	}
	origin, ok := alloc.Allocate(size)
	if !ok {
		abortf("task of size %dx%d larger than one target of size %dx%d",
			size.Width, size.Height, l.size.Width, l.size.Height)
	}
	l.targets = append(l.targets, target)
	l.alloc = append(l.alloc, alloc)
	return origin, len(l.targets) - 1
}

// AddTask dispatches task to the target it was allocated into.
func (l *RenderTargetList[T]) AddTask(targetIdx int, task *RenderTask, taskIndex RenderTaskIndex, ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int) {
	l.targets[targetIdx].AddTask(task, taskIndex, ctx, tasks, pass)
}

// Build finalises every target in the list.
func (l *RenderTargetList[T]) Build(ctx *RenderTargetContext, tasks *RenderTaskCollection, pass int) {
	for _, t := range l.targets {
		t.Build(ctx, tasks, pass)
	}
}
