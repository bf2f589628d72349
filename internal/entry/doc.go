// Package entry defines the on-flash wire format of a single DataLog
// record: the fixed four-byte header common to every kind, and the
// per-kind payload layouts that follow it.
//
// # Layout
//
// Every record is little-endian and starts at a 4-byte aligned offset:
//
//	+0  size  : u16  // payload bytes, excluding this header
//	+2  kind  : u8
//	+3  flags : u8   // bit0 = invalid
//	+4  payload[size]
//	+4+size  zero-to-three bytes of implicit padding to the next word
//
// The header is exactly one machine word so a single aligned write
// commits it atomically on the target flash. Callers never construct
// raw bytes directly; each payload type implements MarshalBinary and
// UnmarshalBinary, and Header does the same for the shared four bytes.
//
// # Two-phase commit
//
// Because flash can only clear bits within an erased region, a record
// is committed in two header writes: once with FlagInvalid set before
// the payload lands, and once with it cleared afterwards. Any header
// found with FlagInvalid still set marks a torn record and must be
// skipped by readers.
package entry
