package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// DebugHandler is a slog.Handler producing the compact, single-line
// "eviction::"/"swapping::" debug traffic named in §6, adapted from the
// teacher's multi-line formatted Handler into a one-line-per-record form
// suitable for the fault path's chattier output.
type DebugHandler struct {
	mu  *sync.Mutex
	out io.Writer
}

// NewDebugHandler returns a DebugHandler writing to out.
func NewDebugHandler(out io.Writer) *DebugHandler {
	return &DebugHandler{mu: new(sync.Mutex), out: out}
}

// Enabled reports whether level is loggable; debug handlers accept
// everything and rely on RateLimiter to suppress noise upstream.
func (h *DebugHandler) Enabled(ctx context.Context, level slog.Level) bool { return true }

// Handle formats rec as "<message> key=value ..." on one line; the
// "eviction::"/"swapping::" prefix is part of the message itself.
func (h *DebugHandler) Handle(ctx context.Context, rec slog.Record) error {
	buf := bytes.NewBuffer(make([]byte, 0, 256))
	fmt.Fprintf(buf, "%s", rec.Message)
	rec.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(buf, " %s=%v", strings.ToLower(a.Key), a.Value.Any())
		return true
	})
	fmt.Fprintln(buf)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

// WithAttrs and WithGroup are unused by the fault path's call sites but are
// required to satisfy slog.Handler.
func (h *DebugHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h *DebugHandler) WithGroup(name string) slog.Handler      { return h }

// RateLimiter suppresses repeated debug lines of the same kind that occur
// more often than once per interval, per §6's "rate-limited debug lines"
// requirement - a page-fault storm on one address should not flood the
// console line-for-line.
type RateLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[string]time.Time
	now      func() time.Time
}

// NewRateLimiter returns a RateLimiter that allows at most one line per key
// every interval.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval, last: make(map[string]time.Time), now: time.Now}
}

// Allow reports whether a line tagged key may be emitted now, recording
// the attempt either way.
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if last, ok := r.last[key]; ok && now.Sub(last) < r.interval {
		return false
	}
	r.last[key] = now
	return true
}

// Debug is the rate-limited debug logger used for the eviction/swapping
// traffic: a *slog.Logger paired with a RateLimiter keyed by event kind.
type Debug struct {
	logger  *slog.Logger
	limiter *RateLimiter
}

// NewDebug builds a Debug logger writing through DebugHandler to out, rate
// limited to one line per kind every interval.
func NewDebug(out io.Writer, interval time.Duration) *Debug {
	return &Debug{
		logger:  slog.New(NewDebugHandler(out)),
		limiter: NewRateLimiter(interval),
	}
}

// Eviction logs a frame eviction, at most once per interval.
func (d *Debug) Eviction(frame uint32, owner uint32) {
	if !d.limiter.Allow("eviction") {
		return
	}
	d.logger.Debug("eviction:: selected frame for eviction", "frame", frame, "owner", owner)
}

// Swapping logs a swap-in or swap-out, at most once per interval per kind.
func (d *Debug) Swapping(kind string, addr uintptr, slot uint32) {
	if !d.limiter.Allow("swapping:" + kind) {
		return
	}
	d.logger.Debug(fmt.Sprintf("swapping:: %s", kind), "addr", fmt.Sprintf("%#x", addr), "slot", slot)
}
