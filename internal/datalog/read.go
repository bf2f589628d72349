package datalog

// Read returns bytes from the logical block identified by sequence,
// treating offset as a byte position within it and permitting reads to
// cross into subsequent blocks up to endBlock. It returns the number
// of bytes actually read, which may be less than len(dst); zero means
// there is no more data to read (§4.3.3).
func (l *Log) Read(sequence uint32, offset int, dst []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == StateUninitialised {
		return 0, nil
	}
	if sequence > l.endBlock.Sequence {
		return 0, nil
	}
	if len(dst) == 0 {
		return 0, nil
	}

	ringSize := int64(l.blockSize) * int64(l.totalBlocks)
	blockDelta := int64(sequence) - int64(l.startBlock.Sequence)
	readOffset := (int64(l.startBlock.Number)+blockDelta)*int64(l.blockSize) + int64(offset)
	readOffset %= ringSize
	if readOffset < 0 {
		readOffset += ringSize
	}

	if readOffset > l.writeOffset {
		return l.readAcrossSeam(readOffset, ringSize, dst)
	}

	avail := l.writeOffset - readOffset
	if avail <= 0 {
		return 0, nil
	}
	want := int64(len(dst))
	if want > avail {
		want = avail
	}
	return l.partition.Read(readOffset, dst[:want])
}

// readAcrossSeam handles the case where the logical read wraps past
// the end of the ring back to offset 0.
func (l *Log) readAcrossSeam(readOffset, ringSize int64, dst []byte) (int, error) {
	firstLen := ringSize - readOffset
	if int64(len(dst)) < firstLen {
		firstLen = int64(len(dst))
	}
	n1, err := l.partition.Read(readOffset, dst[:firstLen])
	if err != nil {
		return n1, err
	}
	if int64(n1) < firstLen {
		// Partition read came up short; don't attempt the second leg.
		return n1, nil
	}
	remaining := dst[firstLen:]
	if len(remaining) == 0 {
		return n1, nil
	}
	avail := l.writeOffset
	want := int64(len(remaining))
	if want > avail {
		want = avail
	}
	if want <= 0 {
		return n1, nil
	}
	n2, err := l.partition.Read(0, remaining[:want])
	return n1 + n2, err
}
