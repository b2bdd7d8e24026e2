package pt

import (
	vmerrors "vmcore/kernel/errors"
	"vmcore/kernel/mem"
	"vmcore/kernel/mem/pmm"
)

// Map installs a present mapping from page to frame in dir, with flags
// ORed on top of FlagPresent. Any existing mapping for page is overwritten.
func Map(dir Directory, page mem.Page, frame pmm.Frame, flags PTE) {
	pte := PteOf(dir, page.Address())
	*pte = 0
	pte.SetFrame(frame)
	pte.SetFlags(FlagPresent | flags)
}

// Unmap clears the present mapping for page, if any. The PTE's frame field
// is zeroed so a stale swap-slot or FFS-frame number can never be
// misread as live by a later fault.
func Unmap(dir Directory, page mem.Page) {
	pte := Lookup(dir, page.Address())
	if pte == nil {
		return
	}
	*pte = 0
}

// IdentityMap maps every page in [start, end) to the FFS frame with the
// same index, with the given flags. Used to seed the system directory's
// kernel mappings that every process directory inherits (§4.6).
func IdentityMap(dir Directory, start, end uintptr, flags PTE) {
	for addr := mem.AlignDown(start); addr < end; addr += uintptr(mem.PageSize) {
		Map(dir, mem.PageFromAddress(addr), pmm.Frame(addr/uintptr(mem.PageSize)), flags)
	}
}

// Translate resolves vaddr to a physical frame and byte offset, following a
// present PTE. It returns ErrInvalidMapping if vaddr is not present-mapped
// in dir; callers on the fault path are expected to treat that as a
// recoverable condition, not to propagate this error directly.
func Translate(dir Directory, vaddr uintptr) (pmm.Frame, uintptr, error) {
	pte := Lookup(dir, vaddr)
	if pte == nil || !pte.HasFlags(FlagPresent) {
		return pmm.InvalidFrame, 0, vmerrors.ErrInvalidMapping
	}
	offset := vaddr & (uintptr(mem.PageSize) - 1)
	return pte.Frame(), offset, nil
}
