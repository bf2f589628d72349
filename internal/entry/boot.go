package entry

// BootPayloadSize is the fixed on-flash size of a Boot payload.
const BootPayloadSize = 1

// Boot records the reset reason at start of day.
type Boot struct {
	Reason uint8
}

func (b Boot) MarshalBinary() ([]byte, error) {
	return []byte{b.Reason}, nil
}

func (b *Boot) UnmarshalBinary(buf []byte) error {
	if len(buf) < BootPayloadSize {
		return ErrShortBuffer
	}
	b.Reason = buf[0]
	return nil
}
