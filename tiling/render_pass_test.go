package tiling

import (
	"testing"

	"github.com/gogpu/frame/text"
)

// S5: a two-pass blur chain. Pass 0 produces a CachePrimitive task for a
// blurred text run; pass 1's VerticalBlur task resolves its source task id
// against pass 0's recorded index.
func TestRenderPassResolvesCrossPassBlurSource(t *testing.T) {
	primitives := newFakePrimitiveSource()
	const blurPrim PrimitiveIndex = 42
	primitives.add(blurPrim, &PrimitiveMetadata{
		Kind:       PrimitiveTextRun,
		BlurRadius: 4,
		Glyphs:     make([]text.ShapedGlyph, 1),
		Textures:   [3]TextureHandle{{ID: 1, Valid: true}, {}, {}},
	}, DeviceRect{})
	ctx := newTestContext(primitives)
	tasks := NewRenderTaskCollection(0)

	size := DeviceSize{Width: 64, Height: 64}
	pass0, err := NewRenderPass(0, false, size)
	if err != nil {
		t.Fatalf("NewRenderPass(0): %v", err)
	}
	cacheKey := TaskKey{Kind: TaskKeyCachePrimitive, Prim: blurPrim}
	pass0.AddRenderTask(&RenderTask{
		Id:        DynamicTaskId(cacheKey),
		Kind:      TaskCachePrimitive,
		Location:  DynamicLocation(DeviceSize{Width: 8, Height: 8}),
		CachePrim: blurPrim,
	})
	pass0.Build(ctx, tasks)

	cacheIdx, _, ok := tasks.GetDynamicAllocation(0, cacheKey)
	if !ok {
		t.Fatal("expected pass 0 to have recorded the cache-primitive task")
	}

	pass1, err := NewRenderPass(1, false, size)
	if err != nil {
		t.Fatalf("NewRenderPass(1): %v", err)
	}
	blurKey := TaskKey{Kind: TaskKeyVerticalBlur, Prim: blurPrim}
	pass1.AddRenderTask(&RenderTask{
		Id:             DynamicTaskId(blurKey),
		Kind:           TaskVerticalBlur,
		Location:       DynamicLocation(DeviceSize{Width: 8, Height: 8}),
		BlurPrim:       blurPrim,
		BlurSourcePass: 0,
	})
	pass1.Build(ctx, tasks)

	target := pass1.ColorTargets.Target(pass1.ColorTargets.Len() - 1)
	if len(target.VerticalBlurs) != 1 {
		t.Fatalf("expected 1 vertical blur command, got %d", len(target.VerticalBlurs))
	}
	if got := target.VerticalBlurs[0].SrcTaskID; got != int32(cacheIdx) {
		t.Fatalf("vertical blur SrcTaskID = %d, want pass 0's cache task index %d", got, cacheIdx)
	}
}

// A second identical dynamic task queued in the same pass must dedupe: no
// new allocation, and the second task's location is placed at the first's
// origin.
func TestRenderPassDedupesIdenticalDynamicTasksWithinAPass(t *testing.T) {
	primitives := newFakePrimitiveSource()
	ctx := newTestContext(primitives)
	tasks := NewRenderTaskCollection(0)

	pass, err := NewRenderPass(0, false, DeviceSize{Width: 64, Height: 64})
	if err != nil {
		t.Fatalf("NewRenderPass: %v", err)
	}

	key := TaskKey{Kind: TaskKeyReadback, Prim: 1}
	first := &RenderTask{Id: DynamicTaskId(key), Kind: TaskReadback, Location: DynamicLocation(DeviceSize{Width: 4, Height: 4})}
	second := &RenderTask{Id: DynamicTaskId(key), Kind: TaskReadback, Location: DynamicLocation(DeviceSize{Width: 4, Height: 4})}
	pass.AddRenderTask(first)
	pass.AddRenderTask(second)
	pass.Build(ctx, tasks)

	if tasks.Len() != 1 {
		t.Fatalf("expected a single deduplicated task record, got %d", tasks.Len())
	}
	firstOrigin, ok1 := first.Location.Origin()
	secondOrigin, ok2 := second.Location.Origin()
	if !ok1 || !ok2 || firstOrigin != secondOrigin {
		t.Fatalf("expected both tasks to share the same placed origin, got %v and %v", firstOrigin, secondOrigin)
	}
}
