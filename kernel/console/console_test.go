package console

import (
	"bytes"
	"strings"
	"testing"
)

func TestSegfaultLineFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Segfault(7, 0x1000)

	got := strings.TrimRight(buf.String(), "\n")
	want := "P7:: SEGMENTATION_FAULT at 0x1000"
	if got != want {
		t.Fatalf("expected %q; got %q", want, got)
	}
}

func TestOutOfMemoryLineFormat(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).OutOfMemory(3, 0xABCD)

	got := strings.TrimRight(buf.String(), "\n")
	want := "P3:: OUT_OF_MEMORY (addr=0xabcd)"
	if got != want {
		t.Fatalf("expected %q; got %q", want, got)
	}
}
