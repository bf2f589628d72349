package entry

import "encoding/binary"

// TableFixedSize is the fixed portion of a Table payload, before the
// variable-length name.
const TableFixedSize = 2

// TableID identifies a table within a boot session; assigned in RAM
// and never persisted across reboots.
type TableID uint16

// Table qualifies the fields and data that follow it, e.g. the name
// of a device or sensor.
type Table struct {
	ID   TableID
	Name string // no NUL terminator on flash
}

func (t Table) MarshalBinary() ([]byte, error) {
	buf := make([]byte, TableFixedSize+len(t.Name))
	binary.LittleEndian.PutUint16(buf[0:2], uint16(t.ID))
	copy(buf[2:], t.Name)
	return buf, nil
}

func (t *Table) UnmarshalBinary(buf []byte) error {
	if len(buf) < TableFixedSize {
		return ErrShortBuffer
	}
	t.ID = TableID(binary.LittleEndian.Uint16(buf[0:2]))
	t.Name = string(buf[2:])
	return nil
}
