package entry

import "encoding/binary"

// ExceptionFixedSize is the fixed portion of an Exception payload,
// before the variable-length stack dump.
const ExceptionFixedSize = 24

// Exception captures CPU fault registers at the point of a crash, plus
// a trailing slice of raw stack bytes for post-mortem analysis. It may
// be emitted by a fault handler that re-enters WriteEntry mid-flight
// (see the busy-state recovery hook); MarshalBinary's single buffer
// allocation is sized directly from Stack, with no intermediate
// copying.
type Exception struct {
	Cause    uint32
	EPC1     uint32
	EPC2     uint32
	EPC3     uint32
	ExcVAddr uint32
	DEPC     uint32
	Stack    []byte
}

func (e Exception) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ExceptionFixedSize+len(e.Stack))
	binary.LittleEndian.PutUint32(buf[0:4], e.Cause)
	binary.LittleEndian.PutUint32(buf[4:8], e.EPC1)
	binary.LittleEndian.PutUint32(buf[8:12], e.EPC2)
	binary.LittleEndian.PutUint32(buf[12:16], e.EPC3)
	binary.LittleEndian.PutUint32(buf[16:20], e.ExcVAddr)
	binary.LittleEndian.PutUint32(buf[20:24], e.DEPC)
	copy(buf[24:], e.Stack)
	return buf, nil
}

func (e *Exception) UnmarshalBinary(buf []byte) error {
	if len(buf) < ExceptionFixedSize {
		return ErrShortBuffer
	}
	e.Cause = binary.LittleEndian.Uint32(buf[0:4])
	e.EPC1 = binary.LittleEndian.Uint32(buf[4:8])
	e.EPC2 = binary.LittleEndian.Uint32(buf[8:12])
	e.EPC3 = binary.LittleEndian.Uint32(buf[12:16])
	e.ExcVAddr = binary.LittleEndian.Uint32(buf[16:20])
	e.DEPC = binary.LittleEndian.Uint32(buf[20:24])
	e.Stack = append([]byte(nil), buf[24:]...)
	return nil
}
