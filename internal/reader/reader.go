package reader

import (
	"errors"
	"io"

	"github.com/mikee47/datalog/internal/datalog"
)

// ErrInvalidWhence is returned by Seek for a whence value other than
// the three defined by io.Seeker.
var ErrInvalidWhence = errors.New("reader: invalid whence")

// ErrNegativePosition is returned by Seek when the resulting offset
// would be negative.
var ErrNegativePosition = errors.New("reader: negative position")

// ErrSeekPastEnd is returned by Seek when the resulting offset would
// land beyond the reader's current span.
var ErrSeekPastEnd = errors.New("reader: seek past end")

// mimeType is the fixed content type reported by MimeType: the log is
// an opaque binary stream, never textual.
const mimeType = "application/octet-stream"

// Reader presents the span of blocks [startSeq, startSeq+blockCount)
// on a datalog.Log as a flat io.ReadSeeker. A zero blockCount means
// unbounded: the span tracks the log's live end-of-write sequence,
// including its partially-filled trailing block, so a caller reading
// to the current end always gets the freshest committed data.
type Reader struct {
	log        *datalog.Log
	startSeq   uint32
	blockCount uint32
	pos        int64
	finished   bool
}

// New binds a Reader to the given span. blockCount of 0 means the span
// runs to the log's current end block and grows as the log is written.
func New(log *datalog.Log, startSeq uint32, blockCount uint32) *Reader {
	return &Reader{log: log, startSeq: startSeq, blockCount: blockCount}
}

// Finished reports whether the stream has reached its end, as observed
// by the most recent Read returning no data.
func (r *Reader) Finished() bool { return r.finished }

// MimeType reports the content type of the underlying data.
func (r *Reader) MimeType() string { return mimeType }

// endSeq returns the last sequence number currently in scope.
func (r *Reader) endSeq() uint32 {
	if r.blockCount != 0 {
		return r.startSeq + r.blockCount - 1
	}
	return r.log.EndBlock().Sequence
}

// size returns the span's current byte length. For an unbounded
// Reader this is a live value that grows as the log is written.
func (r *Reader) size() int64 {
	blocks := int64(r.endSeq()) - int64(r.startSeq) + 1
	if blocks < 0 {
		blocks = 0
	}
	return blocks * int64(r.log.BlockSize())
}

// Read implements io.Reader. Each call is satisfied by at most one
// underlying Log.Read, so a short read that stops at a block boundary
// is expected and not itself an error; callers composing with
// io.Copy already handle this.
func (r *Reader) Read(p []byte) (int, error) {
	if r.finished {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	blockSize := int64(r.log.BlockSize())
	if blockSize <= 0 {
		r.finished = true
		return 0, io.EOF
	}
	if limit := r.size(); r.pos >= limit {
		r.finished = true
		return 0, io.EOF
	}

	block := r.startSeq + uint32(r.pos/blockSize)
	offset := int(r.pos % blockSize)

	want := p
	if remaining := blockSize - int64(offset); int64(len(want)) > remaining {
		want = want[:remaining]
	}
	if limit := r.size(); int64(len(want)) > limit-r.pos {
		want = want[:limit-r.pos]
	}

	n, err := r.log.Read(block, offset, want)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		r.finished = true
		return 0, io.EOF
	}
	r.pos += int64(n)
	return n, nil
}

// Seek implements io.Seeker.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = r.pos + offset
	case io.SeekEnd:
		newPos = r.size() + offset
	default:
		return 0, ErrInvalidWhence
	}
	if newPos < 0 {
		return 0, ErrNegativePosition
	}
	if newPos > r.size() {
		return 0, ErrSeekPastEnd
	}
	r.pos = newPos
	r.finished = false
	return r.pos, nil
}
