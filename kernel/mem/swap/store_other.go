//go:build !unix

package swap

import "vmcore/kernel/mem"

// sliceStore backs the swap pool with a plain byte slice, for platforms
// without an mmap syscall to lean on.
type sliceStore struct {
	region []byte
}

func newStore(capacity uint32) (store, error) {
	size := uint64(capacity) * uint64(mem.PageSize)
	return &sliceStore{region: make([]byte, size)}, nil
}

func (s *sliceStore) bytes(idx uint32) []byte {
	start := uint64(idx) * uint64(mem.PageSize)
	return s.region[start : start+uint64(mem.PageSize)]
}

func (s *sliceStore) close() error { return nil }
