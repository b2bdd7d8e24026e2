// Package pt implements the simulated i386-style, two-level page table
// format described by §3 and §4.2 of the design: a 10/10/12 virtual address
// split, a page directory of PDEs and, per mapped region, a page table of
// PTEs. Unlike the amd64 recursive-mapping scheme the rest of this codebase
// was born from, there is no real MMU here, so directories and tables are
// addressed by index into an in-process arena rather than by walking raw
// physical pointers.
package pt

import "vmcore/kernel/mem/pmm"

// PTE is a single page (or page-directory) table entry. Bits below mirror
// the hardware format named in §3: present, writable, user, write-through,
// cache-disable, accessed, dirty (PTE-only, ignored in a PDE), a
// must-be-zero bit, global, three software-available bits and a 20-bit
// frame number.
type PTE uint32

// Flag bits, numbered from §3.
const (
	FlagPresent      PTE = 1 << 0
	FlagWritable     PTE = 1 << 1
	FlagUser         PTE = 1 << 2
	FlagWriteThrough PTE = 1 << 3
	FlagCacheDisable PTE = 1 << 4
	FlagAccessed     PTE = 1 << 5
	FlagDirty        PTE = 1 << 6 // meaningful on PTEs only
	// bit 7 is must-be-zero and intentionally has no constant.
	FlagGlobal PTE = 1 << 8

	// FlagSwap repurposes one of the three software-available bits (§3,
	// §9) to mark that the frame field below holds a swap slot index
	// rather than an FFS frame number. Only meaningful when FlagPresent
	// is clear.
	FlagSwap PTE = 1 << 9
)

const (
	frameShift = 12
	frameBits  = 20
	frameMask  = PTE(1<<frameBits-1) << frameShift
)

// HasFlags reports whether every bit set in flags is also set in e.
func (e PTE) HasFlags(flags PTE) bool { return e&flags == flags }

// HasAnyFlag reports whether at least one bit set in flags is set in e.
func (e PTE) HasAnyFlag(flags PTE) bool { return e&flags != 0 }

// SetFlags ORs flags into e.
func (e *PTE) SetFlags(flags PTE) { *e |= flags }

// ClearFlags clears flags from e.
func (e *PTE) ClearFlags(flags PTE) { *e &^= flags }

// Frame extracts the FFS or PT-pool frame number stored in e.
func (e PTE) Frame() pmm.Frame {
	return pmm.Frame((e & frameMask) >> frameShift)
}

// SetFrame replaces e's frame number, leaving all flag bits untouched.
func (e *PTE) SetFrame(f pmm.Frame) {
	*e = (*e &^ frameMask) | (PTE(f)<<frameShift)&frameMask
}

// SwapSlot extracts the swap slot index stored in e's frame field. Only
// meaningful when e.HasFlags(FlagSwap) and !e.HasFlags(FlagPresent).
func (e PTE) SwapSlot() uint32 {
	return uint32((e & frameMask) >> frameShift)
}

// SetSwapSlot stores a swap slot index in e's frame field and sets
// FlagSwap; it does not touch FlagPresent, which the caller must already
// have cleared.
func (e *PTE) SetSwapSlot(slot uint32) {
	*e = (*e &^ frameMask) | (PTE(slot)<<frameShift)&frameMask
	e.SetFlags(FlagSwap)
}
