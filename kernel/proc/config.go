package proc

import "vmcore/kernel/mem"

// Config holds the pool sizes and address layout named in §6's fixed
// address layout and §8's scenario constants. Sizes are in bytes; callers
// building pools from them round up to whole pages via mem.Size.Pages().
type Config struct {
	// FFSPoolSize is the total size, in bytes, of the FFS frame pool. §8's
	// FFS_POOL_SIZE=16384 names a frame count, so this must be set to
	// 16384*PageSize to reproduce the worked scenarios.
	FFSPoolSize uint64

	// SwapPoolSize is the total size, in bytes, of the swap store. §8's
	// SWAP_POOL_SIZE=32768 names a slot count, so this must be set to
	// 32768*PageSize to reproduce the worked scenarios.
	SwapPoolSize uint64

	// PTPoolFrames is the number of frames in the PT pool. Unlike the FFS
	// and swap pools it is sized in frames, not bytes, since every PT
	// frame holds exactly one page table regardless of page size.
	PTPoolFrames uint32

	// KernelPrealloc is the size, in bytes, of the identity-mapped,
	// kernel-only region every process directory inherits from the
	// system directory (§4.6).
	KernelPrealloc uintptr

	// HeapStart and HeapEnd bound the demand-paged virtual heap region
	// every process's RegionList manages.
	HeapStart, HeapEnd uintptr
}

// DefaultConfig returns the pool sizes used by the spec's worked end-to-end
// scenarios: FFS_POOL_SIZE=16384 frames and SWAP_POOL_SIZE=32768 slots (§8),
// a 64-frame PT pool, a 4 MiB kernel preallocation and a 256 MiB user heap.
func DefaultConfig() Config {
	return Config{
		FFSPoolSize:    16384 * uint64(mem.PageSize),
		SwapPoolSize:   32768 * uint64(mem.PageSize),
		PTPoolFrames:   64,
		KernelPrealloc: 4 << 20,
		HeapStart:      4 << 20,
		HeapEnd:        256 << 20,
	}
}
