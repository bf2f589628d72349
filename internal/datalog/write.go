package datalog

import (
	"github.com/mikee47/datalog/internal/entry"
	logpkg "github.com/mikee47/datalog/pkg/log"
)

// WriteEntry appends a caller-supplied record, padding and wrapping
// blocks as needed, and committing the header in two phases so that a
// crash mid-write leaves a record markable as torn rather than
// ambiguous (§4.3.2).
func (l *Log) WriteEntry(kind entry.Kind, info, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateUninitialised {
		return ErrNotReady
	}
	if l.state == StateBusy {
		l.recoverFromBusy()
	}
	l.state = StateBusy

	entrySize := entry.HeaderSize + len(info) + len(data)
	space := l.blockSize - int(l.writeOffset%int64(l.blockSize))
	if space < entrySize {
		if err := l.writePad(space); err != nil {
			return err
		}
		l.writeOffset += int64(space)
	}

	if l.writeOffset%int64(l.blockSize) == 0 {
		if err := l.startNewBlock(); err != nil {
			return err
		}
	}

	if err := l.commitEntry(kind, info, data); err != nil {
		return err
	}
	l.writeOffset += int64(entry.HeaderSize + entry.AlignUp4(len(info)+len(data)))
	l.state = StateReady
	l.wakeWaiters()
	return nil
}

// recoverFromBusy implements the step-2 recovery hook: if a prior
// write was interrupted (e.g. by a fault handler re-entering
// WriteEntry), skip past whatever landed before the tear so the new
// write starts cleanly. The torn record, if any, keeps its invalid
// flag set and is left for parsers to skip.
func (l *Log) recoverFromBusy() {
	if l.writeOffset%int64(l.blockSize) == 0 {
		// The next step erases the block; nothing to clean up.
		return
	}
	buf := make([]byte, entry.HeaderSize)
	n, err := l.partition.Read(l.writeOffset, buf)
	if err != nil || n < entry.HeaderSize {
		return
	}
	var h entry.Header
	if err := h.UnmarshalBinary(buf); err != nil {
		return
	}
	if h.Erased() {
		// Tear happened before any bytes landed.
		return
	}
	l.writeOffset += int64(entry.HeaderSize + entry.AlignUp4(int(h.Size)))
}

// writePad emits a pad header consuming the remaining block space. The
// payload bytes themselves are left untouched (already erased), since
// a pad carries no meaningful content.
func (l *Log) writePad(space int) error {
	h := entry.Header{Size: uint16(space - entry.HeaderSize), Kind: entry.KindPad, Flags: 0}
	buf, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	return l.partition.Write(l.writeOffset, buf)
}

// startNewBlock wraps writeOffset onto the next block, retiring the
// oldest live block if the writer is about to overwrite it, erases the
// new block, and writes its block-start record.
func (l *Log) startNewBlock() error {
	ringSize := int64(l.blockSize) * int64(l.totalBlocks)
	l.writeOffset %= ringSize

	newNumber := int(l.writeOffset / int64(l.blockSize))
	// Sequence numbers are not reclaimed on wraparound; at the current
	// rate of one increment per block retirement this would take
	// centuries to exhaust a uint32, so overflow is left unhandled.
	newSeq := l.endBlock.Sequence + 1

	switch {
	case l.startBlock.Sequence == 0:
		// First-ever block transition out of a cold partition: there
		// is nothing to retire, but startBlock must now track the
		// single live block rather than stay at its cold sentinel.
		l.startBlock = BlockRef{Number: newNumber, Sequence: newSeq}
	case newNumber == l.startBlock.Number:
		l.startBlock.Number = (l.startBlock.Number + 1) % l.totalBlocks
		l.startBlock.Sequence++
		l.logger.Debug("retiring oldest block",
			logpkg.Int("block", l.startBlock.Number), logpkg.Uint32("sequence", l.startBlock.Sequence))
	}
	l.endBlock = BlockRef{Number: newNumber, Sequence: newSeq}

	blockOffset := int64(newNumber) * int64(l.blockSize)
	if err := l.partition.EraseRange(blockOffset, int64(l.blockSize)); err != nil {
		return err
	}

	// The block header's own size field is sufficient to validate it;
	// the invalid bit carries no added safety for this kind, so it is
	// written and left set rather than revalidated.
	h := entry.Header{Size: entry.BlockPayloadSize, Kind: entry.KindBlock, Flags: 0xFF}
	hdrBuf, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	blk := entry.Block{Magic: l.magic, Sequence: newSeq}
	payload, err := blk.MarshalBinary()
	if err != nil {
		return err
	}
	combined := append(hdrBuf, payload...)
	if err := l.partition.Write(l.writeOffset, combined); err != nil {
		return err
	}

	l.writeOffset += int64(entry.HeaderSize + entry.BlockPayloadSize)
	return nil
}

// commitEntry performs the three-step atomic commit: header with the
// invalid bit set, payload, then the header rewritten with the bit
// cleared.
func (l *Log) commitEntry(kind entry.Kind, info, data []byte) error {
	size := len(info) + len(data)
	h := entry.Header{Size: uint16(size), Kind: kind, Flags: 0xFF}
	hdrBuf, err := h.MarshalBinary()
	if err != nil {
		return err
	}
	if err := l.partition.Write(l.writeOffset, hdrBuf); err != nil {
		return err
	}

	payloadOffset := l.writeOffset + int64(entry.HeaderSize)
	if len(info) > 0 {
		if err := l.partition.Write(payloadOffset, info); err != nil {
			return err
		}
	}
	if len(data) > 0 {
		if err := l.partition.Write(payloadOffset+int64(len(info)), data); err != nil {
			return err
		}
	}

	h.Flags = 0
	hdrBuf, err = h.MarshalBinary()
	if err != nil {
		return err
	}
	return l.partition.Write(l.writeOffset, hdrBuf)
}
