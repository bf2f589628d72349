package partition

import (
	"errors"
	"os"
	"time"
)

// FileOptions configures a File-backed Partition.
type FileOptions struct {
	// Path to the backing file or block device.
	Path string
	// BlockSize is the fixed erase-unit size in bytes.
	BlockSize int
	// TotalBlocks, if non-zero, clamps the usable span below the
	// backing file's actual size; used for testing against a file
	// larger than the partition it's meant to model.
	TotalBlocks int
	// Metrics observes I/O issued against the partition. Optional.
	Metrics MetricsHook
}

// File is a Partition backed by an os.File, addressed with
// ReadAt/WriteAt so no shared file-position state is needed.
type File struct {
	f         *os.File
	blockSize int
	size      int64
	metrics   MetricsHook
}

// OpenFile opens (creating if necessary) the backing file at opts.Path
// and returns a File partition over it.
func OpenFile(opts FileOptions) (*File, error) {
	if opts.BlockSize <= 0 {
		return nil, errors.New("partition: BlockSize must be positive")
	}
	f, err := os.OpenFile(opts.Path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := info.Size()
	if opts.TotalBlocks > 0 {
		clamped := int64(opts.TotalBlocks) * int64(opts.BlockSize)
		if clamped < size {
			size = clamped
		}
	}
	size -= size % int64(opts.BlockSize)

	metrics := opts.Metrics
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	return &File{f: f, blockSize: opts.BlockSize, size: size, metrics: metrics}, nil
}

// Close closes the backing file.
func (p *File) Close() error {
	if p == nil || p.f == nil {
		return nil
	}
	return p.f.Close()
}

func (p *File) Read(offset int64, dst []byte) (int, error) {
	start := time.Now()
	n, err := p.f.ReadAt(dst, offset)
	if err != nil && n == 0 {
		// Treat an unreadable region as erased, matching the
		// engine's tolerance for adapter errors (§7.6).
		for i := range dst {
			dst[i] = 0xFF
		}
		return len(dst), nil
	}
	p.metrics.ObserveRead(time.Since(start), n)
	return n, nil
}

func (p *File) Write(offset int64, src []byte) error {
	start := time.Now()
	_, err := p.f.WriteAt(src, offset)
	if err != nil {
		return err
	}
	p.metrics.ObserveWrite(time.Since(start), len(src))
	return nil
}

func (p *File) EraseRange(offset int64, length int64) error {
	start := time.Now()
	if length%int64(p.blockSize) != 0 {
		return ErrBlockAligned
	}
	buf := make([]byte, p.blockSize)
	for i := range buf {
		buf[i] = 0xFF
	}
	for off := offset; off < offset+length; off += int64(p.blockSize) {
		if _, err := p.f.WriteAt(buf, off); err != nil {
			return err
		}
	}
	p.metrics.ObserveErase(time.Since(start), int(length))
	return nil
}

func (p *File) BlockSize() int { return p.blockSize }
func (p *File) Size() int64   { return p.size }
