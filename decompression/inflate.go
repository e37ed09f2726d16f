package decompression

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/32bitkid/pixelbox/codec"
)

const zlibDeflate = 8

// zlibHeader is the two byte prefix of a zlib stream:
//
// bits  |
//  0-3  | CINFO, log2(window size) - 8
//  4-7  | CM, compression method (8 = deflate)
//  8-9  | FLEVEL
//  10   | FDICT, preset dictionary follows
// 11-15 | FCHECK, makes CMF*256+FLG a multiple of 31
//
type zlibHeader struct {
	cinfo  uint8
	method uint8
	level  uint8
	dict   bool
	check  uint8
}

func readZlibHeader(src []byte) (zlibHeader, error) {
	var h zlibHeader
	if len(src) < 2 {
		return h, codec.Errorf(codec.OutOfBounds, "inflate", "zlib header needs 2 bytes, have %d", len(src))
	}

	bits := codec.PackedBits(src[0], src[1])
	var err error
	if h.cinfo, err = bits.Read8(4); err != nil {
		return h, codec.Wrap(codec.OutOfBounds, "inflate", err)
	}
	if h.method, err = bits.Read8(4); err != nil {
		return h, codec.Wrap(codec.OutOfBounds, "inflate", err)
	}
	if h.level, err = bits.Read8(2); err != nil {
		return h, codec.Wrap(codec.OutOfBounds, "inflate", err)
	}
	if h.dict, err = bits.Read1(); err != nil {
		return h, codec.Wrap(codec.OutOfBounds, "inflate", err)
	}
	if h.check, err = bits.Read8(5); err != nil {
		return h, codec.Wrap(codec.OutOfBounds, "inflate", err)
	}

	if (uint16(src[0])<<8|uint16(src[1]))%31 != 0 {
		return h, codec.Errorf(codec.CorruptData, "inflate", "zlib header check failed: %02x %02x", src[0], src[1])
	}
	if h.method != zlibDeflate || h.cinfo > 7 {
		return h, codec.Errorf(codec.UnsupportedFeature, "inflate", "zlib method %d window %d", h.method, h.cinfo)
	}
	if h.dict {
		return h, codec.Errorf(codec.UnsupportedFeature, "inflate", "zlib preset dictionary")
	}
	return h, nil
}

// Inflate decompresses a zlib stream into dst and returns the number of
// bytes written. A stream that would produce more than len(dst) bytes is
// corrupt; a shorter one is reported through the count for the caller to
// judge.
func Inflate(src []byte, dst []byte) (int, error) {
	if _, err := readZlibHeader(src); err != nil {
		return 0, err
	}

	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return 0, codec.Wrap(codec.CorruptData, "inflate", err)
	}
	defer zr.Close()

	n := 0
	for n < len(dst) {
		m, err := zr.Read(dst[n:])
		n += m
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, codec.Wrap(codec.CorruptData, "inflate", err)
		}
		if m == 0 {
			return n, codec.Errorf(codec.CorruptData, "inflate", "stream stalled after %d bytes", n)
		}
	}

	var extra [1]byte
	switch _, err := io.ReadFull(zr, extra[:]); err {
	case io.EOF:
		return n, nil
	case nil:
		return n, codec.Errorf(codec.CorruptData, "inflate", "inflated data exceeds %d bytes", len(dst))
	default:
		return n, codec.Wrap(codec.CorruptData, "inflate", err)
	}
}
