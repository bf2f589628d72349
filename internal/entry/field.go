package entry

import "encoding/binary"

// FieldFixedSize is the fixed portion of a Field payload, before the
// variable-length name.
const FieldFixedSize = 4

// FieldType is the base type of a field's values.
type FieldType uint8

const (
	Unsigned FieldType = 0
	Signed   FieldType = 1
	Float    FieldType = 2
	Char     FieldType = 3
)

func (t FieldType) String() string {
	switch t {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	case Float:
		return "float"
	case Char:
		return "char"
	default:
		return "unknown"
	}
}

// fieldTypeMask isolates the low 7 bits of the packed type|variable byte.
const fieldTypeMask = 0x7F
const fieldVariableBit = 0x80

// Field describes one column of a table: an application identifier
// (e.g. a modbus register number), its base type, whether it is a
// fixed- or variable-length value, the per-element size, and a name.
//
// For a variable field, each data row carries a u16 length ahead of
// the fixed portion, followed by that many bytes per element.
type Field struct {
	ID       uint16
	Type     FieldType
	Variable bool
	Size     uint8
	Name     string // no NUL terminator on flash
}

func (f Field) MarshalBinary() ([]byte, error) {
	buf := make([]byte, FieldFixedSize+len(f.Name))
	binary.LittleEndian.PutUint16(buf[0:2], f.ID)
	typeByte := byte(f.Type) & fieldTypeMask
	if f.Variable {
		typeByte |= fieldVariableBit
	}
	buf[2] = typeByte
	buf[3] = f.Size
	copy(buf[4:], f.Name)
	return buf, nil
}

func (f *Field) UnmarshalBinary(buf []byte) error {
	if len(buf) < FieldFixedSize {
		return ErrShortBuffer
	}
	f.ID = binary.LittleEndian.Uint16(buf[0:2])
	f.Type = FieldType(buf[2] & fieldTypeMask)
	f.Variable = buf[2]&fieldVariableBit != 0
	f.Size = buf[3]
	f.Name = string(buf[4:])
	return nil
}
