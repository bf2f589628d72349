package entry

import "encoding/binary"

// TimePayloadSize is the fixed on-flash size of a Time payload.
const TimePayloadSize = 8

// Time correlates a monotonic system-time reading with wall-clock UTC.
// Written on restart, at midnight, and whenever the RTC is updated.
type Time struct {
	SystemTime uint32
	UTC        uint32
}

func (t Time) MarshalBinary() ([]byte, error) {
	buf := make([]byte, TimePayloadSize)
	binary.LittleEndian.PutUint32(buf[0:4], t.SystemTime)
	binary.LittleEndian.PutUint32(buf[4:8], t.UTC)
	return buf, nil
}

func (t *Time) UnmarshalBinary(buf []byte) error {
	if len(buf) < TimePayloadSize {
		return ErrShortBuffer
	}
	t.SystemTime = binary.LittleEndian.Uint32(buf[0:4])
	t.UTC = binary.LittleEndian.Uint32(buf[4:8])
	return nil
}
