package ffs

import (
	"testing"

	vmerrors "vmcore/kernel/errors"
)

func TestAllocIsFirstFit(t *testing.T) {
	pool := NewPool(4)

	f0, err := pool.Alloc(1)
	if err != nil || f0 != 0 {
		t.Fatalf("expected first alloc to return frame 0; got %v, %v", f0, err)
	}
	f1, err := pool.Alloc(1)
	if err != nil || f1 != 1 {
		t.Fatalf("expected second alloc to return frame 1; got %v, %v", f1, err)
	}

	if err := pool.Free(1, f0); err != nil {
		t.Fatalf("unexpected Free error: %v", err)
	}

	f2, err := pool.Alloc(2)
	if err != nil || f2 != 0 {
		t.Fatalf("expected first-fit to reuse freed frame 0; got %v, %v", f2, err)
	}
}

func TestAllocExhaustion(t *testing.T) {
	pool := NewPool(1)
	if _, err := pool.Alloc(1); err != nil {
		t.Fatalf("unexpected error on first alloc: %v", err)
	}
	if _, err := pool.Alloc(1); err != vmerrors.ErrOutOfMemory {
		t.Fatalf("expected ErrOutOfMemory when pool is exhausted; got %v", err)
	}
}

func TestFreeStrictOwnership(t *testing.T) {
	pool := NewPool(2)
	frame, _ := pool.Alloc(1)

	if err := pool.Free(2, frame); err != vmerrors.ErrBadFree {
		t.Fatalf("expected ErrBadFree freeing another owner's frame; got %v", err)
	}
	if err := pool.Free(1, frame); err != nil {
		t.Fatalf("unexpected error freeing owned frame: %v", err)
	}
	if err := pool.Free(1, frame); err != vmerrors.ErrBadFree {
		t.Fatalf("expected ErrBadFree on double free; got %v", err)
	}
}

func TestClaimPreservesUsageWithoutZeroing(t *testing.T) {
	pool := NewPool(1)
	frame, _ := pool.Alloc(1)
	copy(pool.FrameBytes(frame), []byte("hello"))

	pool.Claim(frame, 2)
	if pool.Owner(frame) != 2 {
		t.Fatalf("expected Claim to transfer ownership to 2; got %v", pool.Owner(frame))
	}
	if string(pool.FrameBytes(frame)[:5]) != "hello" {
		t.Fatal("expected Claim not to zero frame contents")
	}
}

func TestFreeCount(t *testing.T) {
	pool := NewPool(3)
	if pool.FreeCount() != 3 {
		t.Fatalf("expected FreeCount 3; got %d", pool.FreeCount())
	}
	frame, _ := pool.Alloc(1)
	if pool.FreeCount() != 2 {
		t.Fatalf("expected FreeCount 2 after one alloc; got %d", pool.FreeCount())
	}
	pool.Free(1, frame)
	if pool.FreeCount() != 3 {
		t.Fatalf("expected FreeCount 3 after freeing; got %d", pool.FreeCount())
	}
}

func TestAccessedBitRoundTrip(t *testing.T) {
	pool := NewPool(1)
	frame, _ := pool.Alloc(1)
	if pool.Accessed(frame) {
		t.Fatal("expected a freshly allocated frame to start unaccessed")
	}
	pool.SetAccessed(frame, true)
	if !pool.Accessed(frame) {
		t.Fatal("expected SetAccessed(true) to stick")
	}
}
