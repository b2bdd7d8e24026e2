package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"vmcore/cmd/internal/cli"
	"vmcore/kernel/mem"
	"vmcore/kernel/mem/pt"
	"vmcore/kernel/mem/vm"
	"vmcore/kernel/proc"
)

// scenarioCommand runs a small demand-paging trace: it allocates more
// pages than the FFS pool can simultaneously hold, faults each of them in
// (forcing the clock selector to evict and swap), then touches the first
// page again to force a swap-in, printing the console/debug trace as it
// goes. It exercises the same mechanics as the spec's worked end-to-end
// scenarios, just with a configurable page count.
type scenarioCommand struct {
	fs      *flag.FlagSet
	pages   int
	ffsSize int
}

func (c *scenarioCommand) FlagSet() *flag.FlagSet {
	if c.fs == nil {
		c.fs = flag.NewFlagSet("scenario", flag.ContinueOnError)
		c.fs.IntVar(&c.pages, "pages", 3, "number of pages to allocate and fault in")
		c.fs.IntVar(&c.ffsSize, "ffs-frames", 1, "number of FFS frames, forcing eviction once exceeded")
	}
	return c.fs
}

func (c *scenarioCommand) Help() string { return "run a canned demand-paging scenario" }

func (c *scenarioCommand) Run(_ context.Context, _ []string, out io.Writer, _ *cli.Logger) {
	cfg := proc.DefaultConfig()
	cfg.FFSPoolSize = uint64(c.ffsSize) * uint64(mem.PageSize)

	sys, err := vm.NewSystem(cfg, out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vmctl: ", err)
		os.Exit(1)
	}
	defer sys.Close()

	p := sys.VMCreate()
	addrs := make([]uintptr, c.pages)
	for i := range addrs {
		addr, err := sys.VMAlloc(p, uint64(mem.PageSize))
		if err != nil {
			fmt.Fprintf(out, "P%d:: vmalloc failed: %v\n", p.PID, err)
			return
		}
		addrs[i] = addr
	}

	for _, addr := range addrs {
		if err := sys.Fault(p, addr); err != nil {
			sys.Kill(p, addr, err)
			return
		}
	}

	// Touch the first page again, which may require a swap-in if it was
	// evicted while the rest of addrs were faulted in.
	if pte := pt.Lookup(p.Dir, addrs[0]); pte == nil || !pte.HasFlags(pt.FlagPresent) {
		if err := sys.Fault(p, addrs[0]); err != nil {
			sys.Kill(p, addrs[0], err)
			return
		}
	}

	fmt.Fprintf(out, "P%d:: scenario complete: free_ffs_frames=%d free_swap_slots=%d allocated_pages=%d\n",
		p.PID, sys.FreeFFSFrames(), sys.FreeSwapSlots(), sys.AllocatedVirtualPages(p))
}
