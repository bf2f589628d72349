// Package datalog implements the circular, block-structured, append-only
// log engine: the initialisation scan that reconstructs state from a
// partition of unknown prior contents, the write path (padding, block
// wrap, retirement, crash-tolerant header commit), and the block-indexed
// read path.
//
// # Overview
//
// A Log is opened against a partition.Partition with Open. Callers
// append typed records with WriteEntry and pull bytes back out with
// Read, addressed by (sequence, offset) rather than a flat stream
// position; internal/reader builds the flat io.ReadSeeker archivers
// expect on top of Read.
//
// # Notifications
//
// Notify returns a channel that closes the next time any entry is
// successfully written, letting a consumer block until new data is
// available without polling writeOffset.
//
//	log, err := datalog.Open(part)
//	...
//	ch := log.Notify()
//	select {
//	case <-ch:
//		// new data landed
//	case <-time.After(timeout):
//	}
package datalog
