package partition

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestFile(t *testing.T) *File {
	t.Helper()
	dir := t.TempDir()
	p, err := OpenFile(FileOptions{
		Path:        filepath.Join(dir, "partition.bin"),
		BlockSize:   64,
		TotalBlocks: 4,
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestFileSizeClampedToTotalBlocks(t *testing.T) {
	// The backing file is larger than the modelled partition, so
	// TotalBlocks clamps the usable span below the file's real size.
	path := filepath.Join(t.TempDir(), "partition.bin")
	if err := os.WriteFile(path, make([]byte, 8*64), 0o644); err != nil {
		t.Fatalf("create: %v", err)
	}
	p, err := OpenFile(FileOptions{Path: path, BlockSize: 64, TotalBlocks: 4})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	if p.Size() != 4*64 {
		t.Fatalf("expected size %d, got %d", 4*64, p.Size())
	}
}

func TestFileWriteThenRead(t *testing.T) {
	p := newTestFile(t)
	want := []byte{1, 2, 3, 4}
	if err := p.Write(16, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := make([]byte, len(want))
	if _, err := p.Read(16, got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestFileEraseRangeFillsFF(t *testing.T) {
	p := newTestFile(t)
	if err := p.Write(0, []byte{1, 2, 3}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := p.EraseRange(0, int64(p.BlockSize())); err != nil {
		t.Fatalf("erase: %v", err)
	}
	got := make([]byte, 3)
	if _, err := p.Read(0, got); err != nil {
		t.Fatalf("read: %v", err)
	}
	for i, b := range got {
		if b != 0xFF {
			t.Fatalf("byte %d = %#02x, want 0xFF", i, b)
		}
	}
}

func TestFileReopenPreservesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partition.bin")
	p1, err := OpenFile(FileOptions{Path: path, BlockSize: 64, TotalBlocks: 4})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := p1.Write(0, []byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := p1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	p2, err := OpenFile(FileOptions{Path: path, BlockSize: 64, TotalBlocks: 4})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer p2.Close()
	got := make([]byte, 2)
	if _, err := p2.Read(0, got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got[0] != 0xAA || got[1] != 0xBB {
		t.Fatalf("got %v, want [0xAA 0xBB]", got)
	}
}
