package partition

import (
	"errors"
	"fmt"
	"time"
)

// ErrBlockAligned is returned when EraseRange is asked for a length
// that is not a whole multiple of the block size.
var ErrBlockAligned = errors.New("partition: length must be a multiple of block size")

// Memory is an in-memory Partition used by tests. It enforces the
// same write discipline as real
// flash: every byte starts erased (0xFF), and a Write may only clear
// bits, never set them. A violation panics, since on real hardware it
// would silently corrupt the partition rather than fail loudly.
type Memory struct {
	data      []byte
	blockSize int
	metrics   MetricsHook
}

// NewMemory creates a fully-erased Memory partition of the given total
// size, divided into blocks of blockSize bytes. totalSize must be a
// whole multiple of blockSize.
func NewMemory(totalSize, blockSize int, metrics MetricsHook) *Memory {
	if blockSize <= 0 {
		panic("partition: blockSize must be positive")
	}
	if totalSize%blockSize != 0 {
		panic("partition: totalSize must be a multiple of blockSize")
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	data := make([]byte, totalSize)
	for i := range data {
		data[i] = 0xFF
	}
	return &Memory{data: data, blockSize: blockSize, metrics: metrics}
}

func (m *Memory) Read(offset int64, dst []byte) (int, error) {
	start := time.Now()
	if offset < 0 || offset >= int64(len(m.data)) {
		return 0, nil
	}
	n := copy(dst, m.data[offset:])
	m.metrics.ObserveRead(time.Since(start), n)
	return n, nil
}

func (m *Memory) Write(offset int64, src []byte) error {
	start := time.Now()
	end := offset + int64(len(src))
	if offset < 0 || end > int64(len(m.data)) {
		return fmt.Errorf("partition: write [%d,%d) out of range (size %d)", offset, end, len(m.data))
	}
	for i, b := range src {
		cur := m.data[offset+int64(i)]
		if cur&b != b {
			panic(fmt.Sprintf("partition: illegal write at offset %d: cannot set bits 1 without erase (have %#02x, want %#02x)", offset+int64(i), cur, b))
		}
		m.data[offset+int64(i)] = b
	}
	m.metrics.ObserveWrite(time.Since(start), len(src))
	return nil
}

func (m *Memory) EraseRange(offset int64, length int64) error {
	start := time.Now()
	if length%int64(m.blockSize) != 0 {
		return ErrBlockAligned
	}
	end := offset + length
	if offset < 0 || end > int64(len(m.data)) {
		return fmt.Errorf("partition: erase [%d,%d) out of range (size %d)", offset, end, len(m.data))
	}
	for i := offset; i < end; i++ {
		m.data[i] = 0xFF
	}
	m.metrics.ObserveErase(time.Since(start), int(length))
	return nil
}

func (m *Memory) BlockSize() int { return m.blockSize }
func (m *Memory) Size() int64   { return int64(len(m.data)) }
