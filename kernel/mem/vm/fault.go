package vm

import (
	"vmcore/kernel/cpu"
	vmerrors "vmcore/kernel/errors"
	"vmcore/kernel/mem"
	"vmcore/kernel/mem/pmm"
	"vmcore/kernel/mem/pt"
	"vmcore/kernel/proc"
)

// Fault resolves a page fault taken by process p at faultAddr (§4.4). It
// returns one of the three fault-path dispositions from §7
// (ErrSegfault, ErrOutOfMemory, ErrSwapInFailed) when the process must be
// terminated, or nil once the faulting page has been made present.
//
// Fault must never be called for the kernel's own directory: a fault there
// is a contract violation (ErrKernelFault), not a recoverable condition.
func (s *System) Fault(p *proc.Process, faultAddr uintptr) error {
	if p.Dir.Frame == s.SysDir.Frame {
		panic(vmerrors.ErrKernelFault)
	}

	cpu.SetFaultAddr(faultAddr)
	pageAddr := mem.AlignDown(faultAddr)

	if !p.Heap.Contains(pageAddr) {
		return vmerrors.ErrSegfault
	}

	page := mem.PageFromAddress(pageAddr)
	pte := pt.PteOf(p.Dir, pageAddr)

	switch {
	case pte.HasFlags(pt.FlagPresent):
		// The resolver is only ever invoked on a not-present trap; a
		// present PTE here means the caller mis-dispatched the fault.
		panic(vmerrors.ErrInvariant)
	case pte.HasFlags(pt.FlagSwap):
		return s.swapIn(p, page, pte)
	default:
		return s.pageIn(p, page, pte)
	}
}

// Kill terminates p following a fatal disposition returned by Fault (§7):
// it prints the disposition's console line, if the byte-stable contract
// (§6) defines one for it, then invokes the kill(pid) collaborator's
// effect by reclaiming every FFS frame and swap slot p owns. Swap-in
// failure has no dedicated console line under §6, but still terminates the
// process.
func (s *System) Kill(p *proc.Process, faultAddr uintptr, cause error) {
	switch cause {
	case vmerrors.ErrSegfault:
		s.Console.Segfault(uint32(p.PID), faultAddr)
	case vmerrors.ErrOutOfMemory:
		s.Console.OutOfMemory(uint32(p.PID), faultAddr)
	}
	s.VMCleanup(p)
}

// pageIn backs a never-yet-touched page with a fresh, zeroed FFS frame,
// evicting a victim first if the pool is full.
func (s *System) pageIn(p *proc.Process, page mem.Page, pte *pt.PTE) error {
	frame, err := s.acquireFrame(p, page)
	if err != nil {
		return err
	}
	// A frame taken from an evicted victim still holds the victim's bytes.
	clear(s.FFS.FrameBytes(frame))
	s.installFrame(p, page, pte, frame)
	return nil
}

// swapIn restores a previously evicted page from its swap slot into a
// fresh FFS frame, again evicting a victim first if necessary.
func (s *System) swapIn(p *proc.Process, page mem.Page, pte *pt.PTE) error {
	slotIdx := pte.SwapSlot()
	if slotIdx >= uint32(s.Swap.Capacity()) || s.Swap.Owner(slotIdx) != p.PID {
		return vmerrors.ErrSwapInFailed
	}

	frame, err := s.acquireFrame(p, page)
	if err != nil {
		return err
	}

	s.Swap.Read(slotIdx, s.FFS.FrameBytes(frame))
	if err := s.Swap.Free(p.PID, slotIdx); err != nil {
		panic(vmerrors.ErrInvariant)
	}

	s.installFrame(p, page, pte, frame)
	s.Debug.Swapping("swap-in", page.Address(), slotIdx)
	return nil
}

// acquireFrame returns an FFS frame owned by p, allocating one directly if
// the pool has room or evicting a victim via the clock selector otherwise.
// It returns ErrOutOfMemory if eviction itself cannot make progress.
func (s *System) acquireFrame(p *proc.Process, page mem.Page) (pmm.Frame, error) {
	if frame, err := s.FFS.Alloc(p.PID); err == nil {
		return frame, nil
	}

	victim, ok := s.selectVictim()
	if !ok {
		return pmm.InvalidFrame, vmerrors.ErrOutOfMemory
	}

	// Defensive assert (§9): the clock must never select the very frame
	// the current fault is trying to install, which would mean evicting
	// a page that was never actually resident.
	if vd, vp, ok := s.FFS.Mapping(victim); ok && vd.Frame == p.Dir.Frame && vp == page {
		panic(vmerrors.ErrInvariant)
	}

	s.evict(victim)
	s.FFS.Claim(victim, p.PID)
	return victim, nil
}

func (s *System) installFrame(p *proc.Process, page mem.Page, pte *pt.PTE, frame pmm.Frame) {
	*pte = 0
	pte.SetFrame(frame)
	pte.SetFlags(pt.FlagPresent | pt.FlagWritable | pt.FlagUser | pt.FlagAccessed)
	s.FFS.SetMapping(frame, p.Dir, page)
	s.FFS.SetAccessed(frame, true)
	cpu.FlushTLBEntry(page.Address())
}

// selectVictim runs the clock algorithm over the FFS pool (§4.5): a
// persistent hand sweeps the pool at most twice, clearing the accessed bit
// of any used frame it finds set and returning the first used frame it
// finds clear.
func (s *System) selectVictim() (pmm.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	capacity := uint32(s.FFS.Capacity())
	if capacity == 0 {
		return pmm.InvalidFrame, false
	}

	for pass := 0; pass < 2; pass++ {
		for i := uint32(0); i < capacity; i++ {
			frame := pmm.Frame(s.clockHand % capacity)
			s.clockHand++

			if s.FFS.Owner(frame) == pmm.NoOwner {
				continue
			}
			if s.FFS.Accessed(frame) {
				s.FFS.SetAccessed(frame, false)
				continue
			}
			return frame, true
		}
	}
	return pmm.InvalidFrame, false
}

// evict writes a victim frame's contents out to a fresh swap slot and
// rewrites its owning PTE to point at that slot instead, leaving the frame
// itself still marked used until the caller reclaims it with Claim.
func (s *System) evict(frame pmm.Frame) {
	dir, page, ok := s.FFS.Mapping(frame)
	if !ok {
		panic(vmerrors.ErrInvariant)
	}
	pte := pt.Lookup(dir, page.Address())
	if pte == nil || !pte.HasFlags(pt.FlagPresent) {
		panic(vmerrors.ErrInvariant)
	}

	owner := s.FFS.Owner(frame)
	slotIdx, err := s.Swap.Alloc(owner)
	if err != nil {
		// Swap exhaustion is a contract violation (§7): the store is
		// sized so a well-behaved workload never fills it.
		panic(vmerrors.ErrSwapExhausted)
	}

	s.Swap.Write(slotIdx, s.FFS.FrameBytes(frame))
	pte.ClearFlags(pt.FlagPresent | pt.FlagAccessed)
	pte.SetSwapSlot(slotIdx)
	cpu.FlushTLBEntry(page.Address())

	s.Debug.Eviction(uint32(frame), uint32(owner))
	s.Debug.Swapping("swap-out", page.Address(), slotIdx)
}
