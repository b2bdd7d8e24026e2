// Package vm wires the frame pools, page tables and swap store together
// into the collaborator contract of §4.4/§4.5/§4.6: the page-fault
// resolver, the clock victim selector, the swap engine and process VM
// lifecycle all live here, since all four need simultaneous access to the
// PT, FFS and swap pools that the lower layers deliberately keep apart to
// avoid an import cycle.
package vm

import (
	"io"
	"sync"
	"time"

	"vmcore/kernel/console"
	"vmcore/kernel/mem"
	"vmcore/kernel/mem/ffs"
	"vmcore/kernel/mem/pmm"
	"vmcore/kernel/mem/pt"
	"vmcore/kernel/mem/swap"
	"vmcore/kernel/proc"
)

// System bundles every collaborator the fault path touches (§4.4's
// "collaborator contracts"): the physical pools, the system directory new
// processes are cloned from, and the console/debug sinks.
type System struct {
	mu sync.Mutex

	Config proc.Config
	FFS    *ffs.Pool
	PT     *pt.Pool
	Swap   *swap.Pool
	SysDir pt.Directory

	Console *console.Console
	Debug   *console.Debug

	clockHand uint32
	nextPID   uint32
}

// NewSystem builds a System from cfg, seeding the system directory with an
// identity-mapped, kernel-only region [0, cfg.KernelPrealloc) that every
// process directory inherits via Clone (§4.6).
func NewSystem(cfg proc.Config, out io.Writer) (*System, error) {
	ffsPool := ffs.NewPool(mem.Size(cfg.FFSPoolSize).Pages())
	ptPool := pt.NewPool(cfg.PTPoolFrames)

	swapPool, err := swap.NewPool(mem.Size(cfg.SwapPoolSize).Pages())
	if err != nil {
		return nil, err
	}

	sysDir := pt.NewDirectory(ptPool)
	pt.IdentityMap(sysDir, 0, cfg.KernelPrealloc, pt.FlagWritable)

	return &System{
		Config:  cfg,
		FFS:     ffsPool,
		PT:      ptPool,
		Swap:    swapPool,
		SysDir:  sysDir,
		Console: console.New(out),
		Debug:   console.NewDebug(out, 50*time.Millisecond),
		nextPID: 1,
	}, nil
}

// Close releases the swap pool's backing storage.
func (s *System) Close() error { return s.Swap.Close() }

// FreeFFSFrames returns the number of unused FFS frames, for the
// free_ffs_pages observability call (§6).
func (s *System) FreeFFSFrames() int { return s.FFS.FreeCount() }

// FreeSwapSlots returns the number of unused swap slots, for the
// free_swap_pages observability call (§6).
func (s *System) FreeSwapSlots() int { return s.Swap.FreeCount() }

// AllocatedVirtualPages returns KERNEL_PREALLOC's page count plus the number
// of pages currently allocated out of p's heap, for the
// allocated_virtual_pages(pid) observability call (§6; testable invariant 5).
func (s *System) AllocatedVirtualPages(p *proc.Process) uint64 {
	return uint64(mem.Size(s.Config.KernelPrealloc).Pages()) + p.Heap.AllocatedPages()
}

// UsedFFSFrames returns the number of FFS frames currently owned by p, for
// the used_ffs_frames observability call (§6).
func (s *System) UsedFFSFrames(p *proc.Process) int {
	n := 0
	for f := 0; f < s.FFS.Capacity(); f++ {
		if s.FFS.Owner(pmm.Frame(f)) == p.PID {
			n++
		}
	}
	return n
}
