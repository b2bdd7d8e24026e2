package pt

const (
	pdIndexShift = 22
	ptIndexShift = 12
	indexMask    = entryCount - 1 // 10 bits
)

func split(vaddr uintptr) (pdIndex, ptIndex uint32) {
	pdIndex = uint32(vaddr>>pdIndexShift) & indexMask
	ptIndex = uint32(vaddr>>ptIndexShift) & indexMask
	return
}

// PteOf walks dir to the PTE slot that backs vaddr, installing a page table
// into the PDE if one is not already present (§4.2 pte_of). The returned
// pointer is stable for the lifetime of dir's pool.
func PteOf(dir Directory, vaddr uintptr) *PTE {
	pdIndex, ptIndex := split(vaddr)
	pde := &dir.Entries()[pdIndex]

	if !pde.HasFlags(FlagPresent) {
		frame, _ := dir.Pool.Alloc()
		*pde = 0
		pde.SetFrame(frame)
		pde.SetFlags(FlagPresent | FlagWritable)
	}

	table := dir.Pool.Table(pde.Frame())
	return &table[ptIndex]
}

// Lookup walks dir to the PTE slot backing vaddr without installing
// anything. It returns nil if the PDE for vaddr has never been touched,
// distinguishing "no page table yet" from "page table exists but this PTE
// is not present".
func Lookup(dir Directory, vaddr uintptr) *PTE {
	pdIndex, ptIndex := split(vaddr)
	pde := &dir.Entries()[pdIndex]
	if !pde.HasFlags(FlagPresent) {
		return nil
	}
	table := dir.Pool.Table(pde.Frame())
	return &table[ptIndex]
}
