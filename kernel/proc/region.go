// Package proc implements a process's virtual address space (§4.3): the
// first-fit free-region list backing VMAlloc/VMFree, and the Process record
// the fault resolver and syscalls operate on. The VM lifecycle itself
// (VMCreate/VMCleanup) lives in package vm.
package proc

import (
	"sync"

	vmerrors "vmcore/kernel/errors"
	"vmcore/kernel/mem"
)

// Region is a contiguous, free virtual address range [Start, End).
type Region struct {
	Start, End uintptr
	next       *Region
}

// RegionList is a process's virtual heap: a singly-linked list of free
// regions, sorted by Start, satisfying the invariant that no two regions in
// the list are adjacent (§8) - they are always coalesced into one on Free.
// Allocated ranges are not represented as regions; they are simply the
// complement of the free list, recorded in allocated for VMFree's exact-
// match validation.
type RegionList struct {
	mu             sync.Mutex
	free           *Region
	allocated      map[uintptr]uint64
	totalAllocated uint64
}

// NewRegionList returns a RegionList whose entire [start, end) range starts
// out free.
func NewRegionList(start, end uintptr) *RegionList {
	return &RegionList{
		free:      &Region{Start: start, End: end},
		allocated: make(map[uintptr]uint64),
	}
}

// Alloc rounds size up to whole pages, reserves the first free region at
// least that long, splitting it if it is larger than requested, and returns
// the reserved range's page-aligned start address. A zero-byte request and
// a request no free region can satisfy both return ErrNoRegion (§8 boundary
// behavior).
func (rl *RegionList) Alloc(size uint64) (uintptr, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if size == 0 {
		return 0, vmerrors.ErrNoRegion
	}
	span := uint64(mem.AlignUp(uintptr(size)))

	var prev *Region
	for r := rl.free; r != nil; r = r.next {
		avail := uint64(r.End - r.Start)
		if avail < span {
			prev = r
			continue
		}

		start := r.Start
		if avail == span {
			if prev == nil {
				rl.free = r.next
			} else {
				prev.next = r.next
			}
		} else {
			r.Start += uintptr(span)
		}

		rl.allocated[start] = size
		rl.totalAllocated += size
		return start, nil
	}

	return 0, vmerrors.ErrNoRegion
}

// Free releases the region at start, with size rounded up to whole pages as
// Alloc reserved it, back to the free list. start and size must match a
// single earlier Alloc call exactly: a mismatched or already-freed range
// returns ErrBadFree rather than being silently accepted or corrupting the
// free list.
func (rl *RegionList) Free(start uintptr, size uint64) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	allocSize, ok := rl.allocated[start]
	if !ok || allocSize != size {
		return vmerrors.ErrBadFree
	}

	delete(rl.allocated, start)
	rl.totalAllocated -= size
	rl.insertFree(start, mem.AlignUp(start+uintptr(size)))
	return nil
}

// insertFree inserts [start, end) into the sorted free list, coalescing
// with an adjacent predecessor and/or successor so the no-two-adjacent
// invariant always holds afterward.
func (rl *RegionList) insertFree(start, end uintptr) {
	var prev *Region
	r := rl.free
	for r != nil && r.Start < start {
		prev = r
		r = r.next
	}

	fresh := &Region{Start: start, End: end, next: r}
	if prev == nil {
		rl.free = fresh
	} else {
		prev.next = fresh
	}

	if fresh.next != nil && fresh.End == fresh.next.Start {
		fresh.End = fresh.next.End
		fresh.next = fresh.next.next
	}
	if prev != nil && prev.End == fresh.Start {
		prev.End = fresh.End
		prev.next = fresh.next
	}
}

// Contains reports whether addr falls within a currently-allocated region.
// The fault resolver uses this to tell a legitimate demand-paged access
// from an out-of-bounds one (§4.4).
func (rl *RegionList) Contains(addr uintptr) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for start, size := range rl.allocated {
		if addr >= start && addr < start+uintptr(size) {
			return true
		}
	}
	return false
}

// TotalAllocated returns the number of bytes currently allocated out of
// this region list.
func (rl *RegionList) TotalAllocated() uint64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.totalAllocated
}

// AllocatedPages returns the total page count across every currently
// allocated region, each rounded up to whole pages independently, for the
// allocated_virtual_pages(pid) observability call (§6, testable invariant
// 5). This is not the same as rounding TotalAllocated as a whole: two
// one-byte allocations occupy two distinct pages, not one.
func (rl *RegionList) AllocatedPages() uint64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	var pages uint64
	for _, size := range rl.allocated {
		pages += uint64(mem.Size(size).Pages())
	}
	return pages
}
