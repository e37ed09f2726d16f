package png

import (
	"hash/crc32"

	"github.com/32bitkid/pixelbox/codec"
)

// chunk layout:
//
// offset  | size   | field
//    0    |   4    | length, big endian
//    4    |   4    | type
//    8    | length | data
// 8+length|   4    | CRC32 of type and data
//
func readChunk(c *codec.Cursor) (Chunk, error) {
	const op = "png: chunk"
	var ch Chunk
	start := c.Offset()

	length, err := c.U32BE()
	if err != nil {
		return ch, codec.Wrap(codec.OutOfBounds, op, err)
	}
	if length > 1<<31-1 {
		return ch, codec.Errorf(codec.CorruptData, op, "length %d at offset %d", length, start)
	}
	if need := 8 + int(length); c.Remaining() < need {
		return ch, codec.Errorf(codec.OutOfBounds, op, "need %d bytes at offset %d, have %d", need, c.Offset(), c.Remaining())
	}

	typ, _ := c.Bytes(4)
	ch.Length = length
	ch.Type = string(typ)
	ch.Data, _ = c.Bytes(int(length))
	ch.CRC, _ = c.U32BE()

	for _, b := range typ {
		if !('A' <= b && b <= 'Z' || 'a' <= b && b <= 'z') {
			return ch, codec.Errorf(codec.CorruptData, op, "invalid type %q at offset %d", ch.Type, start)
		}
	}

	crc := crc32.NewIEEE()
	crc.Write(typ)
	crc.Write(ch.Data)
	if actual := crc.Sum32(); actual != ch.CRC {
		return ch, codec.Errorf(codec.CorruptData, op, "%s crc expected(%08x) != actual(%08x)", ch.Type, ch.CRC, actual)
	}
	return ch, nil
}
