package tiling

import "testing"

func placedTask(key TaskKey, size DeviceSize, origin DevicePoint) *RenderTask {
	loc := DynamicLocation(size)
	loc.place(origin)
	return &RenderTask{Id: DynamicTaskId(key), Kind: TaskCachePrimitive, Location: loc}
}

func TestRenderTaskCollectionStaticSlots(t *testing.T) {
	c := NewRenderTaskCollection(3)
	if c.Len() != 3 {
		t.Fatalf("expected 3 preallocated slots, got %d", c.Len())
	}

	loc := FixedLocation()
	task := &RenderTask{Id: StaticTaskId(1), Kind: TaskAlpha, Location: loc}
	idx := c.Add(task, 0)
	if idx != 1 {
		t.Fatalf("expected static add to return its reserved index 1, got %d", idx)
	}
	if c.Len() != 3 {
		t.Fatalf("static add should not grow the collection, got len %d", c.Len())
	}
}

func TestRenderTaskCollectionDynamicDedup(t *testing.T) {
	c := NewRenderTaskCollection(0)
	key := TaskKey{Kind: TaskKeyCachePrimitive, Prim: 7}

	task := placedTask(key, DeviceSize{Width: 10, Height: 10}, DevicePoint{X: 0, Y: 0})
	idx := c.Add(task, 0)

	gotIdx, rect, ok := c.GetDynamicAllocation(0, key)
	if !ok {
		t.Fatal("expected an existing dynamic allocation")
	}
	if gotIdx != idx {
		t.Fatalf("GetDynamicAllocation returned index %d, want %d", gotIdx, idx)
	}
	if rect.Width != 10 || rect.Height != 10 {
		t.Fatalf("unexpected rect %v", rect)
	}

	// Same (key, pass) in a different pass must not collide.
	if _, _, ok := c.GetDynamicAllocation(1, key); ok {
		t.Fatal("expected no allocation recorded for a different pass")
	}
}

func TestRenderTaskCollectionDoubleInsertPanics(t *testing.T) {
	c := NewRenderTaskCollection(0)
	key := TaskKey{Kind: TaskKeyCachePrimitive, Prim: 7}

	c.Add(placedTask(key, DeviceSize{Width: 10, Height: 10}, DevicePoint{}), 0)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic inserting the same (key, pass) twice")
		}
	}()
	c.Add(placedTask(key, DeviceSize{Width: 10, Height: 10}, DevicePoint{}), 0)
}

func TestRenderTaskCollectionGetTaskIndexUnknownKeyPanics(t *testing.T) {
	c := NewRenderTaskCollection(0)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic resolving an unregistered dynamic key")
		}
	}()
	c.GetTaskIndex(DynamicTaskId(TaskKey{Kind: TaskKeyReadback, Prim: 1}), 0)
}
