package tiling

import "testing"

func TestNewFrameRejectsInvalidSize(t *testing.T) {
	if _, err := NewFrame(FrameConfig{Size: DeviceSize{Width: 0, Height: 10}}); err == nil {
		t.Fatal("expected an error for a zero-width frame size")
	}
}

func TestFrameAddPassAssignsAscendingIndices(t *testing.T) {
	f, err := NewFrame(FrameConfig{Size: DeviceSize{Width: 64, Height: 64}})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}

	for i := 0; i < 3; i++ {
		pass, err := f.AddPass(i == 0, DeviceSize{Width: 64, Height: 64})
		if err != nil {
			t.Fatalf("AddPass(%d): %v", i, err)
		}
		if pass.Index != i {
			t.Fatalf("pass %d: expected index %d, got %d", i, i, pass.Index)
		}
	}
	if len(f.Passes) != 3 {
		t.Fatalf("expected 3 passes, got %d", len(f.Passes))
	}
}

func TestFrameBuildKeepsPassesInAscendingIndexOrder(t *testing.T) {
	f, err := NewFrame(FrameConfig{Size: DeviceSize{Width: 64, Height: 64}})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	var built []int
	for i := 0; i < 3; i++ {
		pass, err := f.AddPass(false, DeviceSize{Width: 64, Height: 64})
		if err != nil {
			t.Fatalf("AddPass(%d): %v", i, err)
		}
		_ = pass
	}

	ctx := newTestContext(newFakePrimitiveSource())
	f.Build(ctx)

	for i, pass := range f.Passes {
		built = append(built, pass.Index)
		if pass.Index != i {
			t.Fatalf("pass at position %d has index %d", i, pass.Index)
		}
	}
	if len(built) != 3 {
		t.Fatalf("expected 3 passes after build, got %d", len(built))
	}
}

func TestFramePushBlockReturnsDenseSlotIndex(t *testing.T) {
	f, err := NewFrame(FrameConfig{Size: DeviceSize{Width: 64, Height: 64}})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	first := f.PushBlock(Block16, make([]byte, 16))
	second := f.PushBlock(Block16, make([]byte, 16))
	if first != 0 || second != 1 {
		t.Fatalf("expected slot indices 0 and 1, got %d and %d", first, second)
	}

	otherSize := f.PushBlock(Block32, make([]byte, 32))
	if otherSize != 0 {
		t.Fatalf("expected a fresh slot sequence per block size, got %d", otherSize)
	}
}
