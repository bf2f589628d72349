package schema

import (
	"github.com/mikee47/datalog/internal/clock"
	"github.com/mikee47/datalog/internal/datalog"
	"github.com/mikee47/datalog/internal/entry"
)

// Writer emits typed records onto a datalog.Log, deriving the
// timestamp and reset-reason fields from its clock collaborators
// rather than requiring the caller to stamp them by hand.
type Writer struct {
	log         *datalog.Log
	clock       clock.Clock
	utc         clock.UTCClock
	resetReason clock.ResetReasonProvider
}

// Option configures a Writer at construction time.
type Option func(*Writer)

// WithClock overrides the monotonic millisecond source used for Time
// and Data records. The default is clock.NewMonotonic.
func WithClock(c clock.Clock) Option {
	return func(w *Writer) { w.clock = c }
}

// WithUTCClock overrides the wall-clock source used for Time records.
// The default is clock.WallUTC.
func WithUTCClock(c clock.UTCClock) Option {
	return func(w *Writer) { w.utc = c }
}

// WithResetReason overrides the reset-reason source used for Boot
// records. The default reports 0 ("unknown"); a real target supplies
// its hardware reset-cause register here.
func WithResetReason(r clock.ResetReasonProvider) Option {
	return func(w *Writer) { w.resetReason = r }
}

// NewWriter wraps log with the schema-level helpers, defaulting its
// clock collaborators to host-derived implementations suitable for a
// non-embedded target.
func NewWriter(log *datalog.Log, opts ...Option) *Writer {
	w := &Writer{
		log:         log,
		clock:       clock.NewMonotonic(),
		utc:         clock.WallUTC{},
		resetReason: clock.StaticResetReason(0),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AllocateTableID returns the next table identifier for the current
// boot session.
func (w *Writer) AllocateTableID() entry.TableID {
	return entry.TableID(w.log.AllocateTableID())
}

// WriteTable allocates a table id and emits its declaration record,
// returning the id for use in subsequent WriteField/WriteData calls.
func (w *Writer) WriteTable(name string) (entry.TableID, error) {
	id := w.AllocateTableID()
	t := entry.Table{ID: id, Name: name}
	payload, err := t.MarshalBinary()
	if err != nil {
		return 0, err
	}
	if err := w.log.WriteEntry(entry.KindTable, payload, nil); err != nil {
		return 0, err
	}
	return id, nil
}

// WriteField emits a field declaration. id is an application-assigned
// identifier (e.g. a modbus register number), not one allocated by the
// log; it is the caller's responsibility to keep it unique within the
// table it follows.
func (w *Writer) WriteField(id uint16, typ entry.FieldType, size uint8, variable bool, name string) error {
	f := entry.Field{ID: id, Type: typ, Variable: variable, Size: size, Name: name}
	payload, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	return w.log.WriteEntry(entry.KindField, payload, nil)
}

// WriteData emits one row of bytes for table, stamped with the current
// monotonic time.
func (w *Writer) WriteData(table entry.TableID, row []byte) error {
	d := entry.Data{SystemTime: w.clock.SystemTimeMs(), Table: table}
	payload, err := d.MarshalBinary()
	if err != nil {
		return err
	}
	return w.log.WriteEntry(entry.KindData, payload, row)
}

// WriteTime emits a time-correlation record tying the current
// monotonic reading to wall-clock UTC. Callers typically invoke this
// after boot, at midnight rollover, and whenever the RTC is adjusted.
func (w *Writer) WriteTime() error {
	t := entry.Time{SystemTime: w.clock.SystemTimeMs(), UTC: w.utc.UTCSeconds()}
	payload, err := t.MarshalBinary()
	if err != nil {
		return err
	}
	return w.log.WriteEntry(entry.KindTime, payload, nil)
}

// WriteBoot emits a boot marker carrying the current reset reason.
// Archivers treat this as the start of a new table-id numbering scope.
func (w *Writer) WriteBoot() error {
	b := entry.Boot{Reason: w.resetReason.ResetReason()}
	payload, err := b.MarshalBinary()
	if err != nil {
		return err
	}
	return w.log.WriteEntry(entry.KindBoot, payload, nil)
}

// WriteException emits a fault snapshot. It is safe to call from a
// fault handler re-entering the log mid-write; see datalog's
// busy-state recovery hook.
func (w *Writer) WriteException(cause, epc1, epc2, epc3, excVAddr, depc uint32, stack []byte) error {
	e := entry.Exception{
		Cause:    cause,
		EPC1:     epc1,
		EPC2:     epc2,
		EPC3:     epc3,
		ExcVAddr: excVAddr,
		DEPC:     depc,
		Stack:    stack,
	}
	payload, err := e.MarshalBinary()
	if err != nil {
		return err
	}
	return w.log.WriteEntry(entry.KindException, payload, nil)
}
