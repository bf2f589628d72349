package entry

import (
	"encoding/binary"
	"errors"
)

// HeaderSize is the fixed on-flash size of a Header, in bytes.
const HeaderSize = 4

// ErrShortBuffer is returned when a buffer is too small to hold the
// structure being marshalled or unmarshalled.
var ErrShortBuffer = errors.New("entry: short buffer")

// ErrCorruptHeader names a header whose kind or flags cannot be
// interpreted, distinct from a header that is simply erased.
// UnmarshalBinary does not validate kind or flags and never returns it.
var ErrCorruptHeader = errors.New("entry: corrupt header")

// Flag bits within Header.Flags. Only bit 0 is defined.
const (
	FlagInvalid uint8 = 1 << 0
)

// Header is the four-byte record prefix common to every kind.
type Header struct {
	Size  uint16 // payload bytes, excluding this header
	Kind  Kind
	Flags uint8
}

// Invalid reports whether the torn/invalid bit is set.
func (h Header) Invalid() bool { return h.Flags&FlagInvalid != 0 }

// Erased reports whether this header reads back as "never written".
func (h Header) Erased() bool { return h.Kind == KindErased && h.Size == 0xFFFF && h.Flags == 0xFF }

// MarshalBinary encodes the header into exactly HeaderSize bytes.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	if err := h.Put(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Put encodes the header into the first HeaderSize bytes of buf.
func (h Header) Put(buf []byte) error {
	if len(buf) < HeaderSize {
		return ErrShortBuffer
	}
	binary.LittleEndian.PutUint16(buf[0:2], h.Size)
	buf[2] = byte(h.Kind)
	buf[3] = h.Flags
	return nil
}

// UnmarshalBinary decodes a header from the first HeaderSize bytes of buf.
func (h *Header) UnmarshalBinary(buf []byte) error {
	if len(buf) < HeaderSize {
		return ErrShortBuffer
	}
	h.Size = binary.LittleEndian.Uint16(buf[0:2])
	h.Kind = Kind(buf[2])
	h.Flags = buf[3]
	return nil
}

// AlignUp4 rounds n up to the next multiple of 4.
func AlignUp4(n int) int {
	return (n + 3) &^ 3
}
