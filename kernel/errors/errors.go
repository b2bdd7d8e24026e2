// Package errors defines the error taxonomy used across the virtual memory
// core: call-site sentinels returned to callers and contract-violation
// values that are only ever passed to panic.
package errors

// KernelError is a trivial, allocation-free error implementation used as an
// alternative to errors.New for values that must exist before any sort of
// allocator is available.
type KernelError string

// Error implements the error interface.
func (err KernelError) Error() string { return string(err) }

// Error describes a module-scoped kernel error. Unlike KernelError, it
// carries the originating module name so a single console line can report
// both without string concatenation at the call site.
type Error struct {
	// Module is the subsystem that raised the error (e.g. "vmalloc", "vm").
	Module string

	// Message is a short, human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Module + ": " + e.Message }

// Call-failure sentinels (§7): returned to callers, never panicked.
var (
	// ErrNoRegion is returned by VMAlloc when no free region is large
	// enough to satisfy the request, including a zero-byte request.
	ErrNoRegion = KernelError("no region large enough to satisfy allocation")

	// ErrBadFree is returned by VMFree when the requested range does not
	// exactly match a single allocated region; a range spanning several
	// allocations is rejected too.
	ErrBadFree = KernelError("free range is not fully allocated")

	ErrInvalidParamValue = KernelError("invalid parameter value")
)

// Fault-path dispositions (§4.4, §7): these terminate the faulting process
// rather than being returned to a caller, but are still ordinary values so
// the resolver can log and dispatch on them uniformly.
var (
	ErrSegfault     = KernelError("segmentation fault")
	ErrOutOfMemory  = KernelError("out of memory")
	ErrSwapInFailed = KernelError("swap-in failed")
)

// Contract violations (§7): always panicked, never returned.
var (
	ErrKernelFault      = KernelError("kernel process took a page fault")
	ErrPTPoolExhausted  = KernelError("page table frame pool exhausted")
	ErrSwapExhausted    = KernelError("swap store exhausted")
	ErrInvariant      = KernelError("internal invariant violated")
	ErrInvalidMapping = KernelError("virtual address does not point to a mapped physical page")
)
