package datalog

import (
	"errors"
	"sync"

	"github.com/mikee47/datalog/internal/entry"
	"github.com/mikee47/datalog/internal/partition"
	logpkg "github.com/mikee47/datalog/pkg/log"
)

// ErrInvalidPartition is returned by Open when the partition reports a
// zero block size or zero block count.
var ErrInvalidPartition = errors.New("datalog: invalid partition")

// ErrNotReady is returned by WriteEntry when the log has not completed
// initialisation.
var ErrNotReady = errors.New("datalog: log not ready")

// State is the engine's lifecycle state.
type State int

const (
	StateUninitialised State = iota
	StateReady
	StateBusy
)

func (s State) String() string {
	switch s {
	case StateUninitialised:
		return "uninitialised"
	case StateReady:
		return "ready"
	case StateBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// BlockRef identifies a block by its physical slot number and the
// logical sequence number currently occupying it.
type BlockRef struct {
	Number   int
	Sequence uint32
}

// Log is the circular, block-structured, append-only log engine. The
// underlying scheduling model is single-threaded cooperative, matching
// the embedded target this emulates, and assumes exclusive ownership of
// the partition; mu exists so a host that does call WriteEntry/Read
// from more than one goroutine gets serialised access instead of a
// silent race, not to express any concurrency the design wants
// encouraged. The sole documented exception to single-writer ownership
// is a fault handler re-entering WriteEntry while a previous call is
// mid-flight; see the busy-state recovery hook in write.go.
type Log struct {
	mu sync.Mutex

	partition partition.Partition
	logger    logpkg.Logger
	magic     uint32

	blockSize   int
	totalBlocks int

	startBlock BlockRef
	endBlock   BlockRef

	writeOffset int64
	state       State
	tableCount  uint16

	notifyCh chan struct{}

	// scannedSequences is the per-block sequence snapshot taken during
	// init, kept around so a caller can optionally persist it via
	// EmitMapSnapshot.
	scannedSequences []uint32
}

// Option configures a Log at Open time.
type Option func(*Log)

// WithLogger sets the diagnostic sink used for init warnings. The
// default is a no-op logger.
func WithLogger(l logpkg.Logger) Option {
	return func(lg *Log) { lg.logger = l }
}

// WithMagic overrides the block magic number, for tests that want a
// partition one Log instance cannot mistake for another's.
func WithMagic(magic uint32) Option {
	return func(lg *Log) { lg.magic = magic }
}

// Open scans p and returns a ready Log. Scanning never fails on
// corrupt or foreign block content (§7.2); it only fails if p reports
// a degenerate block size or total size.
func Open(p partition.Partition, opts ...Option) (*Log, error) {
	l := &Log{
		partition: p,
		logger:    logpkg.NewNop(),
		magic:     entry.Magic,
		notifyCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	if err := l.init(); err != nil {
		return nil, err
	}
	return l, nil
}

// State returns the engine's current lifecycle state.
func (l *Log) State() State { return l.state }

// StartBlock returns the oldest live block.
func (l *Log) StartBlock() BlockRef { return l.startBlock }

// EndBlock returns the current write block.
func (l *Log) EndBlock() BlockRef { return l.endBlock }

// WriteOffset returns the absolute partition offset of the next free byte.
func (l *Log) WriteOffset() int64 { return l.writeOffset }

// BlockSize returns the fixed erase-unit size in bytes.
func (l *Log) BlockSize() int { return l.blockSize }

// TotalBlocks returns the number of blocks the partition is divided into.
func (l *Log) TotalBlocks() int { return l.totalBlocks }

// AllocateTableID returns the next table identifier. The counter is
// process-local and resets on every Open; it is never persisted.
func (l *Log) AllocateTableID() uint16 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tableCount++
	return l.tableCount
}

// Notify returns a channel that is closed the next time WriteEntry
// succeeds. Callers should re-call Notify after each wakeup to obtain
// a fresh channel for the next event.
func (l *Log) Notify() <-chan struct{} {
	return l.notifyCh
}

func (l *Log) wakeWaiters() {
	close(l.notifyCh)
	l.notifyCh = make(chan struct{})
}

// EmitMapSnapshot writes a map record containing the per-block
// sequence array as it stood immediately after the last init scan.
// Callers typically invoke this once, right after Open, per §4.3.1's
// optional housekeeping step.
func (l *Log) EmitMapSnapshot() error {
	m := entry.Map{Sequences: l.scannedSequences}
	payload, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	return l.WriteEntry(entry.KindMap, payload, nil)
}
