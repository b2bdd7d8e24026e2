package vm

import (
	"context"
	"testing"

	"golang.org/x/sync/errgroup"

	"vmcore/kernel/mem"
)

// TestConcurrentProcessesFaultIndependently drives several processes'
// fault paths concurrently. §5 only requires the resolver itself to run
// under a single interrupt mask; distinct processes calling in from
// separate goroutines must still come out with correct, non-corrupted
// state, since the pools guard their own bookkeeping independently of that
// mask.
func TestConcurrentProcessesFaultIndependently(t *testing.T) {
	cfg := smallConfig()
	cfg.FFSPoolSize = 64 * uint64(mem.PageSize)
	s, _ := newTestSystem(t, cfg)

	const procs = 8
	processes := make([]*struct {
		addr uintptr
		pid  uint32
	}, procs)

	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < procs; i++ {
		i := i
		g.Go(func() error {
			p := s.VMCreate()
			addr, err := s.VMAlloc(p, uint64(mem.PageSize))
			if err != nil {
				return err
			}
			if err := s.Fault(p, addr); err != nil {
				return err
			}
			processes[i] = &struct {
				addr uintptr
				pid  uint32
			}{addr, uint32(p.PID)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error from a concurrent fault: %v", err)
	}

	seen := make(map[uint32]bool)
	for _, rec := range processes {
		if rec == nil {
			t.Fatal("expected every goroutine to record a result")
		}
		if seen[rec.pid] {
			t.Fatalf("expected distinct PIDs across concurrently created processes; got a repeat of %d", rec.pid)
		}
		seen[rec.pid] = true
	}
	if s.FreeFFSFrames() != s.FFS.Capacity()-procs {
		t.Fatalf("expected exactly %d frames consumed; got %d free of %d", procs, s.FreeFFSFrames(), s.FFS.Capacity())
	}
}
