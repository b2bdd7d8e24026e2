package pt

import (
	"testing"

	"vmcore/kernel/mem"
	"vmcore/kernel/mem/pmm"
)

func TestPteOfInstallsPageTableOnDemand(t *testing.T) {
	pool := NewPool(8)
	dir := NewDirectory(pool)

	before := pool.FreeCount()
	pte := PteOf(dir, 0x00401000)
	if pool.FreeCount() != before-1 {
		t.Fatalf("expected PteOf to consume exactly one PT frame on first touch")
	}
	if pte == nil {
		t.Fatal("expected non-nil PTE slot")
	}

	// A second walk into the same page table must not allocate again.
	before = pool.FreeCount()
	_ = PteOf(dir, 0x00401FFF)
	if pool.FreeCount() != before {
		t.Fatalf("expected no new PT frame for an address sharing the same PDE")
	}
}

func TestLookupDistinguishesUntouchedFromNotPresent(t *testing.T) {
	pool := NewPool(8)
	dir := NewDirectory(pool)

	if got := Lookup(dir, 0x00401000); got != nil {
		t.Fatal("expected nil Lookup before any PteOf/Map touched this PDE")
	}

	page := mem.PageFromAddress(0x00401000)
	Map(dir, page, pmm.Frame(5), FlagWritable|FlagUser)

	pte := Lookup(dir, 0x00401000)
	if pte == nil {
		t.Fatal("expected non-nil PTE after Map")
	}
	if !pte.HasFlags(FlagPresent) {
		t.Fatal("expected mapped PTE to be present")
	}

	Unmap(dir, page)
	pte = Lookup(dir, 0x00401000)
	if pte == nil {
		t.Fatal("expected the page table itself to persist after Unmap")
	}
	if pte.HasFlags(FlagPresent) {
		t.Fatal("expected Unmap to clear FlagPresent")
	}
}

func TestTranslate(t *testing.T) {
	pool := NewPool(8)
	dir := NewDirectory(pool)
	page := mem.PageFromAddress(0x10000000)
	Map(dir, page, pmm.Frame(42), FlagWritable)

	frame, offset, err := Translate(dir, 0x10000123)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if frame != pmm.Frame(42) {
		t.Fatalf("expected frame 42; got %v", frame)
	}
	if offset != 0x123 {
		t.Fatalf("expected offset 0x123; got %#x", offset)
	}

	if _, _, err := Translate(dir, 0x20000000); err == nil {
		t.Fatal("expected error translating an unmapped address")
	}
}

func TestIdentityMap(t *testing.T) {
	pool := NewPool(64)
	dir := NewDirectory(pool)
	IdentityMap(dir, 0, 4*uintptr(mem.PageSize), FlagWritable)

	for i := uintptr(0); i < 4; i++ {
		frame, _, err := Translate(dir, i*uintptr(mem.PageSize))
		if err != nil {
			t.Fatalf("page %d: unexpected error: %v", i, err)
		}
		if frame != pmm.Frame(i) {
			t.Fatalf("page %d: expected identity frame %d; got %v", i, i, frame)
		}
	}
}
