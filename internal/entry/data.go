package entry

import "encoding/binary"

// DataFixedSize is the fixed portion of a Data payload, before the
// row bytes.
const DataFixedSize = 8

// Data is one row for a previously-declared Table. Bytes must follow
// the same order and size as the table's Field records.
type Data struct {
	SystemTime uint32
	Table      TableID
	Reserved   uint16
	Bytes      []byte
}

func (d Data) MarshalBinary() ([]byte, error) {
	buf := make([]byte, DataFixedSize+len(d.Bytes))
	binary.LittleEndian.PutUint32(buf[0:4], d.SystemTime)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(d.Table))
	binary.LittleEndian.PutUint16(buf[6:8], d.Reserved)
	copy(buf[8:], d.Bytes)
	return buf, nil
}

func (d *Data) UnmarshalBinary(buf []byte) error {
	if len(buf) < DataFixedSize {
		return ErrShortBuffer
	}
	d.SystemTime = binary.LittleEndian.Uint32(buf[0:4])
	d.Table = TableID(binary.LittleEndian.Uint16(buf[4:6]))
	d.Reserved = binary.LittleEndian.Uint16(buf[6:8])
	d.Bytes = append([]byte(nil), buf[8:]...)
	return nil
}
