// Package pmm holds the small set of types shared by every physical pool
// (FFS frames, PT frames, swap slots) so none of them need to import a
// higher layer just to name "which process owns this".
package pmm

import "math"

// Frame describes a physical frame index, relative to the start of whatever
// pool it was allocated from (FFS, PT). It is not a raw physical address:
// §9 of the spec calls out indices (offsets from pool base divided by page
// size) as the stable debug representation, and keeping Frame index-shaped
// rather than address-shaped makes the frame table the single source of
// truth an eviction back-pointer can never go stale against.
type Frame uint32

// InvalidFrame is returned by allocators that fail to reserve a frame.
const InvalidFrame = Frame(math.MaxUint32)

// IsValid reports whether f is a real, allocated frame.
func (f Frame) IsValid() bool { return f != InvalidFrame }

// OwnerID identifies the process that owns a frame, swap slot or region.
// It is a bare alias rather than a reference to kernel/proc.Process so that
// the pool packages never need to import the process layer.
type OwnerID uint32

// NoOwner is the zero value meaning "unowned" / "kernel".
const NoOwner OwnerID = 0
