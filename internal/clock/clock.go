package clock

import (
	"sync"
	"time"
)

// Clock yields the monotonic system time used to stamp Time and Data
// records, as milliseconds since boot, wrapped to 32 bits on the wire.
type Clock interface {
	// SystemTimeMs returns the low 32 bits of elapsed milliseconds
	// since boot, matching the on-flash SystemTime field width.
	SystemTimeMs() uint32
}

// UTCClock yields wall-clock time for Time records.
type UTCClock interface {
	// UTCSeconds returns seconds since the Unix epoch.
	UTCSeconds() uint32
}

// ResetReasonProvider reports why the device last restarted, for Boot
// records.
type ResetReasonProvider interface {
	ResetReason() uint8
}

// Monotonic is a Clock backed by the process's monotonic clock,
// extended with a wrap counter so callers needing more than 32 bits
// of horizon can use Millis64. now is overridable for tests.
type Monotonic struct {
	mu        sync.Mutex
	start     time.Time
	lastLow   uint32
	highTicks uint64
	now       func() time.Time
}

// NewMonotonic creates a Monotonic clock whose epoch is the moment of
// construction.
func NewMonotonic() *Monotonic {
	return &Monotonic{start: time.Now(), now: time.Now}
}

// SystemTimeMs implements Clock.
func (m *Monotonic) SystemTimeMs() uint32 {
	low, _ := m.millis()
	return low
}

// Millis64 returns the full elapsed milliseconds since construction,
// accounting for any 32-bit wraps observed so far.
func (m *Monotonic) Millis64() uint64 {
	low, high := m.millis()
	return (high << 32) + uint64(low)
}

func (m *Monotonic) millis() (low uint32, high uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elapsed := uint64(m.now().Sub(m.start).Milliseconds())
	newLow := uint32(elapsed)
	if newLow < m.lastLow {
		// The low 32 bits rolled over since the last reading.
		m.highTicks++
	}
	m.lastLow = newLow
	return newLow, m.highTicks
}

// WallUTC is a UTCClock backed by the system wall clock.
type WallUTC struct{}

// UTCSeconds implements UTCClock.
func (WallUTC) UTCSeconds() uint32 { return uint32(time.Now().Unix()) }

// StaticResetReason is a ResetReasonProvider returning a fixed value;
// useful for platforms without a hardware reset-reason register, or
// for tests.
type StaticResetReason uint8

func (r StaticResetReason) ResetReason() uint8 { return uint8(r) }
