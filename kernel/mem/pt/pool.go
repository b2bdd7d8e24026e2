package pt

import (
	"sync"

	vmerrors "vmcore/kernel/errors"
	"vmcore/kernel/mem/pmm"
)

// entryCount is the number of PDEs per directory or PTEs per table: a page
// is 4096 bytes and each entry is 4 bytes, so 1024 entries per table, which
// is exactly what a 10-bit index field selects.
const entryCount = 4096 / 4

// Table is the contents of one directory or one page table: 1024 32-bit
// entries occupying exactly one page.
type Table [entryCount]PTE

// Pool is the PT frame pool (§4.1, §9): a bump allocator handing out Table
// slots. Per the design note, PT frames are never individually freed:
// vm_cleanup leaves a process's directory and tables in place, and the
// bump index only ever advances.
type Pool struct {
	mu     sync.Mutex
	tables []Table
	next   uint32
}

// NewPool allocates a PT pool capable of holding capacity tables.
func NewPool(capacity uint32) *Pool {
	return &Pool{tables: make([]Table, capacity)}
}

// Alloc reserves the next free table, zeroes it and returns its frame
// number. Per §7, PT pool exhaustion is a contract violation: the pool is
// sized so that a well-behaved workload never exhausts it, so Alloc panics
// rather than returning an error.
func (p *Pool) Alloc() (pmm.Frame, *Table) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.next >= uint32(len(p.tables)) {
		panic(vmerrors.ErrPTPoolExhausted)
	}
	f := p.next
	p.next++
	p.tables[f] = Table{}
	return pmm.Frame(f), &p.tables[f]
}

// Table returns the table stored at frame f. f must have come from Alloc on
// this same pool.
func (p *Pool) Table(f pmm.Frame) *Table {
	return &p.tables[f]
}

// FreeCount returns the number of PT frames not yet handed out by Alloc.
func (p *Pool) FreeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tables) - int(p.next)
}

// Capacity returns the total number of PT frames in the pool.
func (p *Pool) Capacity() int {
	return len(p.tables)
}

// Directory is a process's (or the kernel's) page directory: a PT-pool
// frame holding 1024 PDEs, plus the pool it was allocated from.
type Directory struct {
	Pool  *Pool
	Frame pmm.Frame
}

// NewDirectory allocates a fresh, zeroed directory from pool.
func NewDirectory(pool *Pool) Directory {
	frame, _ := pool.Alloc()
	return Directory{Pool: pool, Frame: frame}
}

// Entries returns the 1024 PDEs backing dir.
func (dir Directory) Entries() *Table {
	return dir.Pool.Table(dir.Frame)
}

// Clone allocates a new directory and copies dir's PDEs into it verbatim
// (shallow: the child page tables themselves are shared, not duplicated).
// Used by vm_create (§4.6) to seed a process directory from the system
// directory's kernel-space mappings.
func (dir Directory) Clone(pool *Pool) Directory {
	child := NewDirectory(pool)
	*child.Entries() = *dir.Entries()
	return child
}
