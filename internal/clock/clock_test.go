package clock

import (
	"testing"
	"time"
)

func TestMonotonicSystemTimeMsIncreases(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cur := base
	m := &Monotonic{start: base, now: func() time.Time { return cur }}

	if got := m.SystemTimeMs(); got != 0 {
		t.Fatalf("expected 0 at epoch, got %d", got)
	}
	cur = base.Add(1500 * time.Millisecond)
	if got := m.SystemTimeMs(); got != 1500 {
		t.Fatalf("expected 1500, got %d", got)
	}
}

func TestMonotonicWrapCountsHighTicks(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cur := base
	m := &Monotonic{start: base, now: func() time.Time { return cur }}

	// Force a synthetic wrap by manipulating lastLow directly, as a
	// real 32-bit wrap would take ~49.7 days of wall time to reach.
	m.lastLow = 0xFFFFFFF0
	cur = base.Add(10 * time.Millisecond)
	low := m.SystemTimeMs()
	if low >= 0xFFFFFFF0 {
		t.Fatalf("expected low word to have wrapped, got %d", low)
	}
	if m.Millis64() < (uint64(1)<<32) {
		t.Fatalf("expected Millis64 to reflect the wrap, got %d", m.Millis64())
	}
}

func TestWallUTCReturnsNonZero(t *testing.T) {
	if (WallUTC{}).UTCSeconds() == 0 {
		t.Fatalf("expected non-zero UTC seconds")
	}
}

func TestStaticResetReason(t *testing.T) {
	var r ResetReasonProvider = StaticResetReason(3)
	if r.ResetReason() != 3 {
		t.Fatalf("got %d, want 3", r.ResetReason())
	}
}
