package datalog

import (
	"github.com/mikee47/datalog/internal/entry"
	logpkg "github.com/mikee47/datalog/pkg/log"
)

const blockHeaderReadSize = entry.HeaderSize + entry.BlockPayloadSize

// init performs the startup scan described in §4.3.1: recover the
// per-block sequence array, locate endBlock as the highest-sequence
// slot, walk backwards to find the oldest still-contiguous startBlock,
// then scan forward within endBlock to recover writeOffset.
func (l *Log) init() error {
	blockSize := l.partition.BlockSize()
	if blockSize <= 0 {
		return ErrInvalidPartition
	}
	totalBlocks := int(l.partition.Size() / int64(blockSize))
	if totalBlocks <= 0 {
		return ErrInvalidPartition
	}
	l.blockSize = blockSize
	l.totalBlocks = totalBlocks

	sequences := l.scanSequences()
	l.scannedSequences = sequences

	endNumber, endSeq := 0, uint32(0)
	for b, seq := range sequences {
		if seq > endSeq {
			endSeq = seq
			endNumber = b
		}
	}

	if endSeq == 0 {
		l.startBlock = BlockRef{}
		l.endBlock = BlockRef{}
		l.writeOffset = 0
		l.state = StateReady
		return nil
	}

	l.endBlock = BlockRef{Number: endNumber, Sequence: endSeq}
	l.startBlock = l.scanStartBlock(sequences, endNumber, endSeq)
	l.writeOffset = l.scanWriteOffset(endNumber)
	l.state = StateReady
	return nil
}

// scanSequences reads the first block-header-sized span of every block
// and records its sequence number, leaving zero for anything that does
// not parse as a valid block record (erased, corrupt, or foreign; §7.2).
func (l *Log) scanSequences() []uint32 {
	sequences := make([]uint32, l.totalBlocks)
	buf := make([]byte, blockHeaderReadSize)
	for b := 0; b < l.totalBlocks; b++ {
		off := int64(b) * int64(l.blockSize)
		n, err := l.partition.Read(off, buf)
		if err != nil || n < blockHeaderReadSize {
			continue
		}
		var h entry.Header
		if err := h.UnmarshalBinary(buf); err != nil {
			continue
		}
		if h.Kind != entry.KindBlock || int(h.Size) != entry.BlockPayloadSize {
			continue
		}
		var blk entry.Block
		if err := blk.UnmarshalBinary(buf[entry.HeaderSize:]); err != nil || !blk.Valid() {
			continue
		}
		sequences[b] = blk.Sequence
	}
	return sequences
}

// scanStartBlock walks backwards from endBlock, tolerating ghost blocks
// from an earlier generation, to find the oldest block that is still
// part of the current contiguous chain.
func (l *Log) scanStartBlock(sequences []uint32, endNumber int, endSeq uint32) BlockRef {
	number, seq := endNumber, endSeq
	for seq > 1 {
		prevNumber := (number - 1 + l.totalBlocks) % l.totalBlocks
		prevSeq := seq - 1
		if sequences[prevNumber] != prevSeq {
			break
		}
		number, seq = prevNumber, prevSeq
	}
	return BlockRef{Number: number, Sequence: seq}
}

// scanWriteOffset scans forward within block endNumber to find the
// offset of the next free byte, clamping to the block boundary if a
// torn entry is found (§7.3).
func (l *Log) scanWriteOffset(endNumber int) int64 {
	blockStart := int64(endNumber) * int64(l.blockSize)
	blockEnd := blockStart + int64(l.blockSize)
	offset := blockStart
	buf := make([]byte, entry.HeaderSize)

	for offset < blockEnd {
		n, err := l.partition.Read(offset, buf)
		if err != nil || n < entry.HeaderSize {
			break
		}
		var h entry.Header
		if err := h.UnmarshalBinary(buf); err != nil {
			break
		}
		if h.Kind == entry.KindErased {
			break
		}
		advance := int64(entry.HeaderSize + entry.AlignUp4(int(h.Size)))
		if offset+advance > blockEnd {
			l.logger.Warn("torn entry during init scan, clamping to block end",
				logpkg.Int("block", endNumber), logpkg.Int("offset", int(offset)))
			offset = blockEnd
			break
		}
		offset += advance
	}
	return offset
}
