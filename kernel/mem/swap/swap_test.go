package swap

import (
	"bytes"
	"testing"

	vmerrors "vmcore/kernel/errors"
	"vmcore/kernel/mem"
)

func newTestPool(t *testing.T, capacity uint32) *Pool {
	t.Helper()
	pool, err := NewPool(capacity)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(func() { pool.Close() })
	return pool
}

func TestAllocFirstFitAndExhaustion(t *testing.T) {
	pool := newTestPool(t, 2)

	s0, err := pool.Alloc(1)
	if err != nil || s0 != 0 {
		t.Fatalf("expected slot 0; got %v, %v", s0, err)
	}
	s1, err := pool.Alloc(1)
	if err != nil || s1 != 1 {
		t.Fatalf("expected slot 1; got %v, %v", s1, err)
	}
	if _, err := pool.Alloc(1); err != vmerrors.ErrSwapExhausted {
		t.Fatalf("expected ErrSwapExhausted; got %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	pool := newTestPool(t, 1)
	slotIdx, _ := pool.Alloc(1)

	page := bytes.Repeat([]byte{0xAB}, int(mem.PageSize))
	pool.Write(slotIdx, page)

	dst := make([]byte, mem.PageSize)
	pool.Read(slotIdx, dst)
	if !bytes.Equal(page, dst) {
		t.Fatal("expected Read after Write to round-trip exactly")
	}
}

func TestFreeStrictOwnership(t *testing.T) {
	pool := newTestPool(t, 1)
	slotIdx, _ := pool.Alloc(1)

	if err := pool.Free(2, slotIdx); err != vmerrors.ErrBadFree {
		t.Fatalf("expected ErrBadFree freeing another owner's slot; got %v", err)
	}
	if err := pool.Free(1, slotIdx); err != nil {
		t.Fatalf("unexpected error freeing owned slot: %v", err)
	}
	if err := pool.Free(1, slotIdx); err != vmerrors.ErrBadFree {
		t.Fatalf("expected ErrBadFree on double free; got %v", err)
	}
}
