// Package cpu stands in for the handful of processor primitives the
// original gopher-os cpu package implements in assembly (interrupt
// enable/disable, TLB invalidation, CR2/CR3 access). Since this core runs
// as an ordinary process rather than on bare metal, each primitive is a
// small simulated register rather than a real instruction - but the API
// shape matches the teacher's so the rest of the tree calls it exactly the
// way it would call the real thing.
package cpu

import "sync"

var (
	mu                 sync.Mutex
	interruptsDisabled bool
	activePDT          uintptr
	faultAddr          uintptr
)

// DisableInterrupts masks interrupts, simulating the cli instruction the
// §5 concurrency model relies on to make vmalloc/vfree atomic with respect
// to the (single, cooperative) fault path.
func DisableInterrupts() {
	mu.Lock()
	defer mu.Unlock()
	interruptsDisabled = true
}

// EnableInterrupts unmasks interrupts, simulating sti.
func EnableInterrupts() {
	mu.Lock()
	defer mu.Unlock()
	interruptsDisabled = false
}

// InterruptsDisabled reports the current interrupt-mask state; used by
// tests and assertions that a critical section is actually held.
func InterruptsDisabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return interruptsDisabled
}

// SwitchPDT sets the active page directory's physical address, simulating
// a write to CR3 (and the implied full TLB flush).
func SwitchPDT(pdtPhysAddr uintptr) {
	mu.Lock()
	defer mu.Unlock()
	activePDT = pdtPhysAddr
}

// ActivePDT returns the physical address last passed to SwitchPDT.
func ActivePDT() uintptr {
	mu.Lock()
	defer mu.Unlock()
	return activePDT
}

// FlushTLBEntry invalidates a single TLB entry for virtAddr. Since there is
// no real TLB to invalidate, this is a no-op kept for call-site fidelity
// with the teacher's fault resolver, which always invalidates the faulting
// address after rewriting its PTE.
func FlushTLBEntry(virtAddr uintptr) {}

// SetFaultAddr records the address a simulated page fault trapped on,
// standing in for the CPU latching it into CR2.
func SetFaultAddr(addr uintptr) {
	mu.Lock()
	defer mu.Unlock()
	faultAddr = addr
}

// ReadCR2 returns the address last recorded by SetFaultAddr.
func ReadCR2() uintptr {
	mu.Lock()
	defer mu.Unlock()
	return faultAddr
}
