package vm

import (
	"vmcore/kernel/mem/pmm"
	"vmcore/kernel/proc"
)

// VMCreate builds a fresh process VM state (§4.6 vm_create): a page
// directory cloned from the system directory, so every process starts out
// with the same kernel-only mappings, and an empty heap region list.
func (s *System) VMCreate() *proc.Process {
	s.mu.Lock()
	pid := s.nextPID
	s.nextPID++
	s.mu.Unlock()

	return &proc.Process{
		PID:  pmm.OwnerID(pid),
		Dir:  s.SysDir.Clone(s.PT),
		Heap: proc.NewRegionList(s.Config.HeapStart, s.Config.HeapEnd),
	}
}

// VMCleanup tears down a process's VM state (§4.6 vm_cleanup): every FFS
// frame and swap slot it owns is released. PT-pool frames are never
// individually freed (§9 design note), so p's page tables simply become
// unreferenced garbage in the pool's arena.
func (s *System) VMCleanup(p *proc.Process) {
	for f := 0; f < s.FFS.Capacity(); f++ {
		frame := pmm.Frame(f)
		if s.FFS.Owner(frame) == p.PID {
			if err := s.FFS.Free(p.PID, frame); err != nil {
				panic(err)
			}
		}
	}
	for slotIdx := 0; slotIdx < s.Swap.Capacity(); slotIdx++ {
		if s.Swap.Owner(uint32(slotIdx)) == p.PID {
			if err := s.Swap.Free(p.PID, uint32(slotIdx)); err != nil {
				panic(err)
			}
		}
	}
}
