package proc

import (
	"vmcore/kernel/mem/pmm"
	"vmcore/kernel/mem/pt"
)

// Process is the per-process virtual memory state named in §3: a page
// directory and the region list tracking its virtual heap. PID doubles as
// the pmm.OwnerID stamped on every FFS frame and swap slot it owns.
type Process struct {
	PID  pmm.OwnerID
	Dir  pt.Directory
	Heap *RegionList
}
