package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"vmcore/cmd/internal/cli"
	"vmcore/kernel/mem"
	"vmcore/kernel/mem/vm"
	"vmcore/kernel/proc"
)

type statsCommand struct {
	fs *flag.FlagSet
}

func (c *statsCommand) FlagSet() *flag.FlagSet {
	if c.fs == nil {
		c.fs = flag.NewFlagSet("stats", flag.ContinueOnError)
	}
	return c.fs
}

func (c *statsCommand) Help() string { return "allocate and fault in one page, then print pool stats" }

func (c *statsCommand) Run(_ context.Context, _ []string, out io.Writer, _ *cli.Logger) {
	sys, err := vm.NewSystem(proc.DefaultConfig(), out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vmctl: ", err)
		os.Exit(1)
	}
	defer sys.Close()

	p := sys.VMCreate()
	addr, err := sys.VMAlloc(p, uint64(mem.PageSize))
	if err != nil {
		fmt.Fprintln(out, "vmalloc failed:", err)
		return
	}
	if err := sys.Fault(p, addr); err != nil {
		fmt.Fprintln(out, "fault failed:", err)
		return
	}

	fmt.Fprintf(out, "free_ffs_frames=%d\n", sys.FreeFFSFrames())
	fmt.Fprintf(out, "free_swap_slots=%d\n", sys.FreeSwapSlots())
	fmt.Fprintf(out, "allocated_virtual_pages(P%d)=%d\n", p.PID, sys.AllocatedVirtualPages(p))
	fmt.Fprintf(out, "used_ffs_frames(P%d)=%d\n", p.PID, sys.UsedFFSFrames(p))
}
