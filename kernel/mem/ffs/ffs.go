// Package ffs implements the FFS (first-fit storage) physical frame pool:
// the fixed-size array of page-sized frames that backs every resident user
// page (§3, §4.1). Each frame tracks who owns it and, while it is mapped,
// which (directory, virtual address) pair last pointed at it, so the victim
// selector and swap engine can rewrite the owning PTE without a reverse
// page-table scan.
package ffs

import (
	"sync"

	vmerrors "vmcore/kernel/errors"
	"vmcore/kernel/mem"
	"vmcore/kernel/mem/pmm"
	"vmcore/kernel/mem/pt"
)

// entry is the per-frame bookkeeping record named in §3's FFS Frame Table.
type entry struct {
	used    bool
	owner   pmm.OwnerID
	page    mem.Page
	dir     pt.Directory
	hasDir  bool
	// accessed mirrors the frame's PTE accessed bit for the clock
	// selector so it can scan without walking every directory.
	accessed bool
}

// Pool is the FFS frame pool. Frame content lives in Bytes, a flat byte
// arena indexed by frame number * PageSize, standing in for physical RAM.
type Pool struct {
	mu      sync.Mutex
	entries []entry
	Bytes   []byte
}

// NewPool allocates an FFS pool of capacity frames.
func NewPool(capacity uint32) *Pool {
	return &Pool{
		entries: make([]entry, capacity),
		Bytes:   make([]byte, uint64(capacity)*uint64(mem.PageSize)),
	}
}

// Capacity returns the total number of frames in the pool.
func (p *Pool) Capacity() int { return len(p.entries) }

// FreeCount returns the number of frames currently unused.
func (p *Pool) FreeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.freeCountLocked()
}

func (p *Pool) freeCountLocked() int {
	n := 0
	for i := range p.entries {
		if !p.entries[i].used {
			n++
		}
	}
	return n
}

// Alloc scans the pool first-fit (lowest free index) and reserves a frame
// for owner. When every frame is in use it returns ErrOutOfMemory; the fault
// path then tries eviction before reporting an OUT_OF_MEMORY disposition -
// ffs itself only reports "no frame available".
func (p *Pool) Alloc(owner pmm.OwnerID) (pmm.Frame, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.entries {
		if !p.entries[i].used {
			p.entries[i] = entry{used: true, owner: owner}
			clear(p.frameBytesLocked(pmm.Frame(i)))
			return pmm.Frame(i), nil
		}
	}
	return pmm.InvalidFrame, vmerrors.ErrOutOfMemory
}

// SetMapping records which directory and page last mapped frame, so a
// later eviction can locate and rewrite the owning PTE (§3's back-pointer,
// recorded here as (pd, vaddr) per the Open Question decision in §9).
func (p *Pool) SetMapping(frame pmm.Frame, dir pt.Directory, page mem.Page) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e := &p.entries[frame]
	e.dir, e.hasDir, e.page = dir, true, page
}

// Mapping returns the last (directory, page) recorded for frame via
// SetMapping, and whether one has ever been recorded.
func (p *Pool) Mapping(frame pmm.Frame) (pt.Directory, mem.Page, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e := &p.entries[frame]
	return e.dir, e.page, e.hasDir
}

// SetAccessed records the clock selector's view of frame's accessed bit.
func (p *Pool) SetAccessed(frame pmm.Frame, accessed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[frame].accessed = accessed
}

// Accessed reports the last value recorded by SetAccessed.
func (p *Pool) Accessed(frame pmm.Frame) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.entries[frame].accessed
}

// Owner returns the owner recorded for frame.
func (p *Pool) Owner(frame pmm.Frame) pmm.OwnerID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.entries[frame].owner
}

// Free releases frame back to the pool. Per the strict ownership policy
// (§9 Open Question, resolved strict), Free returns ErrBadFree if frame is
// not currently owned by owner - a double free or a free by the wrong
// process is always a caller bug, never silently ignored.
func (p *Pool) Free(owner pmm.OwnerID, frame pmm.Frame) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	e := &p.entries[frame]
	if !e.used || e.owner != owner {
		return vmerrors.ErrBadFree
	}
	*e = entry{}
	return nil
}

// Claim transfers frame to newOwner without zeroing its contents, used by
// the swap engine when a frame is reused for an incoming page (§4.5): the
// incoming swap_in immediately overwrites the bytes, so zeroing here would
// be wasted work.
func (p *Pool) Claim(frame pmm.Frame, newOwner pmm.OwnerID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e := &p.entries[frame]
	*e = entry{used: true, owner: newOwner}
}

// FrameBytes returns the page-sized byte slice backing frame.
func (p *Pool) FrameBytes(frame pmm.Frame) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frameBytesLocked(frame)
}

func (p *Pool) frameBytesLocked(frame pmm.Frame) []byte {
	start := uint64(frame) * uint64(mem.PageSize)
	return p.Bytes[start : start+uint64(mem.PageSize)]
}

func clear(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
