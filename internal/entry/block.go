package entry

import "encoding/binary"

// Magic identifies a valid block-start record.
const Magic uint32 = 0xA78BE044

// BlockPayloadSize is the fixed on-flash size of a Block payload.
const BlockPayloadSize = 8

// Block is the payload of a KindBlock record, written as the first
// entry of every block.
type Block struct {
	Magic    uint32
	Sequence uint32
}

func (b Block) MarshalBinary() ([]byte, error) {
	buf := make([]byte, BlockPayloadSize)
	binary.LittleEndian.PutUint32(buf[0:4], b.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], b.Sequence)
	return buf, nil
}

func (b *Block) UnmarshalBinary(buf []byte) error {
	if len(buf) < BlockPayloadSize {
		return ErrShortBuffer
	}
	b.Magic = binary.LittleEndian.Uint32(buf[0:4])
	b.Sequence = binary.LittleEndian.Uint32(buf[4:8])
	return nil
}

// Valid reports whether the block carries the expected magic.
func (b Block) Valid() bool { return b.Magic == Magic }
