package codec

import (
	"bytes"

	"github.com/32bitkid/bitreader"
)

// PackedBits returns an MSB-first bit reader over a handful of packed header
// bytes (at most 8). The bytes are zero padded to a full word, so reads never
// fail for want of input as long as the caller stays within len(b)*8 bits.
func PackedBits(b ...byte) bitreader.BitReader {
	var buf [8]byte
	copy(buf[:], b)
	return bitreader.NewReader(bytes.NewReader(buf[:]))
}
