package pt

import "testing"

func TestPoolAllocExhaustionPanics(t *testing.T) {
	pool := NewPool(1)
	pool.Alloc()

	defer func() {
		if recover() == nil {
			t.Fatal("expected second Alloc on a one-frame pool to panic")
		}
	}()
	pool.Alloc()
}

func TestPoolFreeCount(t *testing.T) {
	pool := NewPool(4)
	if pool.FreeCount() != 4 {
		t.Fatalf("expected FreeCount 4; got %d", pool.FreeCount())
	}
	pool.Alloc()
	if pool.FreeCount() != 3 {
		t.Fatalf("expected FreeCount 3 after one Alloc; got %d", pool.FreeCount())
	}
}

func TestDirectoryClone(t *testing.T) {
	pool := NewPool(8)
	sys := NewDirectory(pool)
	IdentityMap(sys, 0, 2*4096, FlagWritable)

	proc := sys.Clone(pool)
	if proc.Frame == sys.Frame {
		t.Fatal("expected Clone to allocate a distinct directory frame")
	}
	if *proc.Entries() != *sys.Entries() {
		t.Fatal("expected cloned PDEs to match the source directory")
	}
}
