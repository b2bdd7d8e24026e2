package vm

import (
	"vmcore/kernel/cpu"
	"vmcore/kernel/mem"
	"vmcore/kernel/mem/pt"
	"vmcore/kernel/proc"
)

// VMAlloc reserves size bytes of p's virtual heap (§6 vmalloc). No physical
// frame is assigned until the range is first touched and faulted in.
//
// Per §5, vmalloc is atomic with respect to the fault path: interrupts are
// masked for the duration of the call.
func (s *System) VMAlloc(p *proc.Process, size uint64) (uintptr, error) {
	cpu.DisableInterrupts()
	defer cpu.EnableInterrupts()
	return p.Heap.Alloc(size)
}

// VMFree releases a previously allocated range (§6 vfree): the virtual
// region is returned to p's free list, and any FFS frame or swap slot
// still backing a page in that range is released immediately rather than
// waiting for process exit.
func (s *System) VMFree(p *proc.Process, start uintptr, size uint64) error {
	cpu.DisableInterrupts()
	defer cpu.EnableInterrupts()

	if err := p.Heap.Free(start, size); err != nil {
		return err
	}

	for addr := mem.AlignDown(start); addr < start+uintptr(size); addr += uintptr(mem.PageSize) {
		page := mem.PageFromAddress(addr)
		pte := pt.Lookup(p.Dir, addr)
		if pte == nil {
			continue
		}
		switch {
		case pte.HasFlags(pt.FlagPresent):
			frame := pte.Frame()
			pt.Unmap(p.Dir, page)
			cpu.FlushTLBEntry(page.Address())
			if err := s.FFS.Free(p.PID, frame); err != nil {
				panic(err)
			}
		case pte.HasFlags(pt.FlagSwap):
			slotIdx := pte.SwapSlot()
			*pte = 0
			cpu.FlushTLBEntry(page.Address())
			if err := s.Swap.Free(p.PID, slotIdx); err != nil {
				panic(err)
			}
		}
	}
	return nil
}
