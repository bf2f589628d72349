package schema

import (
	"testing"

	"github.com/mikee47/datalog/internal/datalog"
	"github.com/mikee47/datalog/internal/entry"
	"github.com/mikee47/datalog/internal/partition"
)

type fakeClock uint32

func (c fakeClock) SystemTimeMs() uint32 { return uint32(c) }

type fakeUTC uint32

func (c fakeUTC) UTCSeconds() uint32 { return uint32(c) }

type fakeResetReason uint8

func (r fakeResetReason) ResetReason() uint8 { return uint8(r) }

func newTestWriter(t *testing.T) (*Writer, *datalog.Log) {
	t.Helper()
	p := partition.NewMemory(4*64, 64, nil)
	log, err := datalog.Open(p)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	w := NewWriter(log, WithClock(fakeClock(1000)), WithUTCClock(fakeUTC(2000)), WithResetReason(fakeResetReason(7)))
	return w, log
}

func readEntry(t *testing.T, log *datalog.Log, sequence uint32, offset int) (entry.Header, []byte) {
	t.Helper()
	hdrBuf := make([]byte, entry.HeaderSize)
	if _, err := log.Read(sequence, offset, hdrBuf); err != nil {
		t.Fatalf("read header: %v", err)
	}
	var h entry.Header
	if err := h.UnmarshalBinary(hdrBuf); err != nil {
		t.Fatalf("unmarshal header: %v", err)
	}
	payload := make([]byte, h.Size)
	if len(payload) > 0 {
		if _, err := log.Read(sequence, offset+entry.HeaderSize, payload); err != nil {
			t.Fatalf("read payload: %v", err)
		}
	}
	return h, payload
}

func TestWriteBootRecordsResetReason(t *testing.T) {
	w, log := newTestWriter(t)
	if err := w.WriteBoot(); err != nil {
		t.Fatalf("WriteBoot: %v", err)
	}
	h, payload := readEntry(t, log, 1, entry.HeaderSize+entry.BlockPayloadSize)
	if h.Kind != entry.KindBoot || h.Invalid() {
		t.Fatalf("unexpected header: %+v", h)
	}
	var b entry.Boot
	if err := b.UnmarshalBinary(payload); err != nil {
		t.Fatalf("unmarshal boot: %v", err)
	}
	if b.Reason != 7 {
		t.Fatalf("expected reset reason 7, got %d", b.Reason)
	}
}

func TestWriteTimeUsesClockCollaborators(t *testing.T) {
	w, log := newTestWriter(t)
	if err := w.WriteTime(); err != nil {
		t.Fatalf("WriteTime: %v", err)
	}
	_, payload := readEntry(t, log, 1, entry.HeaderSize+entry.BlockPayloadSize)
	var tm entry.Time
	if err := tm.UnmarshalBinary(payload); err != nil {
		t.Fatalf("unmarshal time: %v", err)
	}
	if tm.SystemTime != 1000 || tm.UTC != 2000 {
		t.Fatalf("unexpected time record: %+v", tm)
	}
}

func TestWriteTableAllocatesIncreasingIDs(t *testing.T) {
	w, log := newTestWriter(t)
	id1, err := w.WriteTable("sensor-a")
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	id2, err := w.WriteTable("sensor-b")
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	if id1 != 1 || id2 != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", id1, id2)
	}

	h, payload := readEntry(t, log, 1, entry.HeaderSize+entry.BlockPayloadSize)
	if h.Kind != entry.KindTable {
		t.Fatalf("unexpected header: %+v", h)
	}
	var tbl entry.Table
	if err := tbl.UnmarshalBinary(payload); err != nil {
		t.Fatalf("unmarshal table: %v", err)
	}
	if tbl.ID != id1 || tbl.Name != "sensor-a" {
		t.Fatalf("unexpected table record: %+v", tbl)
	}
}

func TestWriteFieldPreservesCallerID(t *testing.T) {
	w, log := newTestWriter(t)
	tableID, err := w.WriteTable("sensor-a")
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	if err := w.WriteField(42, entry.Unsigned, 2, false, "temperature"); err != nil {
		t.Fatalf("WriteField: %v", err)
	}

	fieldOffset := entry.HeaderSize + entry.BlockPayloadSize + entry.HeaderSize + entry.AlignUp4(entry.TableFixedSize+len("sensor-a"))
	h, payload := readEntry(t, log, 1, fieldOffset)
	if h.Kind != entry.KindField {
		t.Fatalf("unexpected header: %+v", h)
	}
	var f entry.Field
	if err := f.UnmarshalBinary(payload); err != nil {
		t.Fatalf("unmarshal field: %v", err)
	}
	if f.ID != 42 || f.Type != entry.Unsigned || f.Variable || f.Size != 2 || f.Name != "temperature" {
		t.Fatalf("unexpected field record: %+v", f)
	}
	_ = tableID
}

func TestWriteDataStampsCurrentTime(t *testing.T) {
	w, log := newTestWriter(t)
	tableID, err := w.WriteTable("sensor-a")
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	row := []byte{0x01, 0x02}
	if err := w.WriteData(tableID, row); err != nil {
		t.Fatalf("WriteData: %v", err)
	}

	dataOffset := entry.HeaderSize + entry.BlockPayloadSize + entry.HeaderSize + entry.AlignUp4(entry.TableFixedSize+len("sensor-a"))
	h, payload := readEntry(t, log, 1, dataOffset)
	if h.Kind != entry.KindData {
		t.Fatalf("unexpected header: %+v", h)
	}
	var d entry.Data
	if err := d.UnmarshalBinary(payload); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if d.SystemTime != 1000 || d.Table != tableID || len(d.Bytes) != 2 || d.Bytes[0] != 0x01 || d.Bytes[1] != 0x02 {
		t.Fatalf("unexpected data record: %+v", d)
	}
}

func TestWriteExceptionRoundtrips(t *testing.T) {
	w, log := newTestWriter(t)
	stack := []byte{0xAA, 0xBB, 0xCC}
	if err := w.WriteException(1, 2, 3, 4, 5, 6, stack); err != nil {
		t.Fatalf("WriteException: %v", err)
	}
	h, payload := readEntry(t, log, 1, entry.HeaderSize+entry.BlockPayloadSize)
	if h.Kind != entry.KindException {
		t.Fatalf("unexpected header: %+v", h)
	}
	var e entry.Exception
	if err := e.UnmarshalBinary(payload); err != nil {
		t.Fatalf("unmarshal exception: %v", err)
	}
	if e.Cause != 1 || e.EPC1 != 2 || e.EPC2 != 3 || e.EPC3 != 4 || e.ExcVAddr != 5 || e.DEPC != 6 || len(e.Stack) != 3 {
		t.Fatalf("unexpected exception record: %+v", e)
	}
}

func TestAllocateTableIDWithoutWriting(t *testing.T) {
	w, _ := newTestWriter(t)
	if got := w.AllocateTableID(); got != 1 {
		t.Fatalf("expected first allocation to be 1, got %d", got)
	}
	if got := w.AllocateTableID(); got != 2 {
		t.Fatalf("expected second allocation to be 2, got %d", got)
	}
}
