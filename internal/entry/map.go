package entry

import "encoding/binary"

// Map is a housekeeping record emitted after init: a snapshot of the
// per-block sequence array at the moment the partition was scanned.
// It carries no fixed header fields, only the sequence slice.
type Map struct {
	Sequences []uint32
}

func (m Map) MarshalBinary() ([]byte, error) {
	buf := make([]byte, len(m.Sequences)*4)
	for i, seq := range m.Sequences {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], seq)
	}
	return buf, nil
}

func (m *Map) UnmarshalBinary(buf []byte) error {
	if len(buf)%4 != 0 {
		return ErrShortBuffer
	}
	m.Sequences = make([]uint32, len(buf)/4)
	for i := range m.Sequences {
		m.Sequences[i] = binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
	}
	return nil
}
