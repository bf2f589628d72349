// Package clock provides the time collaborators the engine and schema
// layer need but do not implement themselves: a monotonic millisecond
// counter for on-flash SystemTime fields, a wall-clock UTC source for
// Time records, and a reset-reason accessor for Boot records.
//
// # Wraparound
//
// SystemTime is a 32-bit millisecond counter that wraps roughly every
// 49.7 days; the wire value is always the low 32 bits. Monotonic
// extends this with a highTicks counter so in-process callers that
// need a longer horizon (e.g. computing elapsed durations across a
// wrap) can call Millis64.
package clock
