package tiling

import "testing"

// stubTarget is a minimal RenderTarget used only to exercise
// RenderTargetList's allocation/overflow behavior in isolation from
// ColorRenderTarget/AlphaRenderTarget.
type stubTarget struct {
	size DeviceSize
}

func newStubTarget(size DeviceSize) *stubTarget { return &stubTarget{size: size} }

func (t *stubTarget) AddTask(*RenderTask, RenderTaskIndex, *RenderTargetContext, *RenderTaskCollection, int) {
}
func (t *stubTarget) Build(*RenderTargetContext, *RenderTaskCollection, int) {}
func (t *stubTarget) UsedRect() DeviceRect                                  { return DeviceRect{} }

func TestRenderTargetListOverflowsToNewTargets(t *testing.T) {
	// S6: 10 rectangles each larger than half a target -> 10 targets, one
	// allocation each (at most one fits per target before the next
	// overflows).
	list := NewRenderTargetList(DeviceSize{Width: 100, Height: 100}, newStubTarget)

	for i := 0; i < 10; i++ {
		if _, idx := list.Allocate(DeviceSize{Width: 60, Height: 60}); idx != i {
			t.Fatalf("allocation %d landed in target %d, want %d", i, idx, i)
		}
	}

	if got := list.Len(); got != 10 {
		t.Fatalf("expected 10 targets, got %d", got)
	}
}

func TestRenderTargetListPacksMultipleSmallAllocationsPerTarget(t *testing.T) {
	list := NewRenderTargetList(DeviceSize{Width: 100, Height: 100}, newStubTarget)

	for i := 0; i < 4; i++ {
		if _, idx := list.Allocate(DeviceSize{Width: 20, Height: 20}); idx != 0 {
			t.Fatalf("allocation %d expected to land in target 0, got %d", i, idx)
		}
	}
	if got := list.Len(); got != 1 {
		t.Fatalf("expected small allocations to share one target, got %d targets", got)
	}
}

func TestRenderTargetListFatalOnOversizedTask(t *testing.T) {
	list := NewRenderTargetList(DeviceSize{Width: 32, Height: 32}, newStubTarget)

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when a task exceeds one target's size")
		}
	}()
	list.Allocate(DeviceSize{Width: 64, Height: 64})
}
