// Package swap implements the swap store (§3, §4.5): a fixed number of
// page-sized slots that hold evicted frame contents. The slot table itself
// (used/owner bookkeeping) is plain Go; the byte storage backing each slot
// is provided by a store, which on unix platforms is a real mmap-ed
// anonymous region (store_unix.go) and elsewhere a plain byte slice
// (store_other.go) - the same production/fallback split smoynes-elsie uses
// for its tty backend.
package swap

import (
	"sync"

	vmerrors "vmcore/kernel/errors"
	"vmcore/kernel/mem/pmm"
)

// store is the byte-storage backend for the swap pool.
type store interface {
	// bytes returns the page-sized slice backing slot.
	bytes(slot uint32) []byte
	// close releases the backing storage.
	close() error
}

type slot struct {
	used  bool
	owner pmm.OwnerID
}

// Pool is the swap store: capacity fixed-size slots, allocated first-fit.
type Pool struct {
	mu    sync.Mutex
	slots []slot
	back  store
}

// NewPool allocates a swap pool of capacity page-sized slots.
func NewPool(capacity uint32) (*Pool, error) {
	back, err := newStore(capacity)
	if err != nil {
		return nil, err
	}
	return &Pool{slots: make([]slot, capacity), back: back}, nil
}

// Close releases the pool's backing storage.
func (p *Pool) Close() error { return p.back.close() }

// Capacity returns the total number of slots in the pool.
func (p *Pool) Capacity() int { return len(p.slots) }

// FreeCount returns the number of unused slots.
func (p *Pool) FreeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for i := range p.slots {
		if !p.slots[i].used {
			n++
		}
	}
	return n
}

// Alloc reserves the lowest-indexed free slot for owner.
func (p *Pool) Alloc(owner pmm.OwnerID) (uint32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.slots {
		if !p.slots[i].used {
			p.slots[i] = slot{used: true, owner: owner}
			return uint32(i), nil
		}
	}
	return 0, vmerrors.ErrSwapExhausted
}

// Free releases idx back to the pool under the same strict-ownership
// policy as ffs.Pool.Free.
func (p *Pool) Free(owner pmm.OwnerID, idx uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := &p.slots[idx]
	if !s.used || s.owner != owner {
		return vmerrors.ErrBadFree
	}
	*s = slot{}
	return nil
}

// Owner returns the owner recorded for slot idx.
func (p *Pool) Owner(idx uint32) pmm.OwnerID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slots[idx].owner
}

// Write copies a page's worth of data into slot idx.
func (p *Pool) Write(idx uint32, data []byte) {
	copy(p.back.bytes(idx), data)
}

// Read copies slot idx's contents into dst, which must be at least
// mem.PageSize bytes long.
func (p *Pool) Read(idx uint32, dst []byte) {
	copy(dst, p.back.bytes(idx))
}
