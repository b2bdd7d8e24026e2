//go:build unix

package swap

import (
	"golang.org/x/sys/unix"

	"vmcore/kernel/mem"
)

// unixStore backs the swap pool with a single anonymous mmap region, so
// that page-out/page-in traffic goes through the same syscalls a real swap
// file would, rather than an ordinary Go slice.
type unixStore struct {
	region []byte
}

func newStore(capacity uint32) (store, error) {
	size := int(uint64(capacity) * uint64(mem.PageSize))
	if size == 0 {
		size = int(mem.PageSize)
	}
	region, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}
	return &unixStore{region: region}, nil
}

func (s *unixStore) bytes(idx uint32) []byte {
	start := uint64(idx) * uint64(mem.PageSize)
	return s.region[start : start+uint64(mem.PageSize)]
}

func (s *unixStore) close() error {
	if s.region == nil {
		return nil
	}
	err := unix.Munmap(s.region)
	s.region = nil
	return err
}
