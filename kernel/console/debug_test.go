package console

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestDebugEvictionRateLimited(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebug(&buf, time.Hour)

	d.Eviction(4, 1)
	d.Eviction(5, 1)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one line within the rate-limit interval; got %d: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "eviction::") {
		t.Fatalf("expected eviction line to contain 'eviction::'; got %q", lines[0])
	}
}

func TestDebugSwappingDistinctKinds(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebug(&buf, time.Hour)

	d.Swapping("swap-out", 0x2000, 3)
	d.Swapping("swap-in", 0x2000, 3)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected swap-out and swap-in to be rate-limited independently; got %d lines: %v", len(lines), lines)
	}
}

func TestRateLimiterAllowsAfterInterval(t *testing.T) {
	clock := time.Now()
	rl := NewRateLimiter(time.Second)
	rl.now = func() time.Time { return clock }

	if !rl.Allow("k") {
		t.Fatal("expected first Allow to succeed")
	}
	if rl.Allow("k") {
		t.Fatal("expected immediate second Allow to be suppressed")
	}
	clock = clock.Add(2 * time.Second)
	if !rl.Allow("k") {
		t.Fatal("expected Allow to succeed again after the interval elapses")
	}
}
