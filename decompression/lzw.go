package decompression

import (
	"github.com/32bitkid/pixelbox/codec"
)

const (
	lzwMaxWidth  = 12
	lzwTableSize = 1 << lzwMaxWidth

	lzwNoCode = -1
)

type lzwEntry struct {
	prefix uint16
	suffix uint8
	first  uint8
	length uint16
}

// CodeTable is the GIF LZW dictionary. Entries live in a fixed arena indexed
// by code; each entry stores its prefix code and last byte, so strings are
// rebuilt by walking the prefix chain backwards.
type CodeTable struct {
	entries [lzwTableSize]lzwEntry

	minCodeSize uint
	width       uint
	next        int
}

// NewCodeTable returns a table initialised for the given minimum code size.
// GIF allows 2 through 8; anything else is rejected rather than clamped.
func NewCodeTable(minCodeSize uint8) (*CodeTable, error) {
	if minCodeSize < 2 || minCodeSize > 8 {
		return nil, codec.Errorf(codec.MalformedHeader, "lzw", "minimum code size %d outside [2, 8]", minCodeSize)
	}
	t := &CodeTable{minCodeSize: uint(minCodeSize)}
	for i := 0; i < 1<<t.minCodeSize; i++ {
		t.entries[i] = lzwEntry{suffix: uint8(i), first: uint8(i), length: 1}
	}
	t.Reset()
	return t, nil
}

// Reset drops every learned entry and restores the width of the minimum
// code size the table was built with.
func (t *CodeTable) Reset() {
	t.width = t.minCodeSize + 1
	t.next = int(t.End()) + 1
}

func (t *CodeTable) Clear() int { return 1 << t.minCodeSize }
func (t *CodeTable) End() int   { return 1<<t.minCodeSize + 1 }

// Width is the number of bits the next code occupies.
func (t *CodeTable) Width() uint { return t.width }

// Len counts literals, the two control codes and every learned entry.
func (t *CodeTable) Len() int { return t.next }

func (t *CodeTable) known(code int) bool {
	if code < t.Clear() {
		return true
	}
	return code > t.End() && code < t.next
}

// add appends prefix+suffix as the next code. Once the table holds 4096
// entries it stops growing until the stream sends a Clear.
func (t *CodeTable) add(prefix int, suffix uint8) {
	if t.next >= lzwTableSize {
		return
	}
	p := t.entries[prefix]
	t.entries[t.next] = lzwEntry{
		prefix: uint16(prefix),
		suffix: suffix,
		first:  p.first,
		length: p.length + 1,
	}
	t.next++
	if t.next == 1<<t.width && t.width < lzwMaxWidth {
		t.width++
	}
}

// write expands code into dst, which must hold at least the entry's length.
func (t *CodeTable) write(code int, dst []byte) {
	for i := int(t.entries[code].length) - 1; i >= 0; i-- {
		e := t.entries[code]
		dst[i] = e.suffix
		code = int(e.prefix)
	}
}

// codeReader pulls variable width codes least-significant-bit first.
type codeReader struct {
	src    []byte
	bitPos int
}

func (r *codeReader) read(width uint) (int, error) {
	if r.bitPos+int(width) > len(r.src)*8 {
		return 0, codec.Errorf(codec.OutOfBounds, "lzw", "%d-bit code at bit %d runs past %d bytes of image data", width, r.bitPos, len(r.src))
	}
	offset, shift := r.bitPos>>3, uint(r.bitPos&7)
	var v uint32
	for i := 0; i < 3 && offset+i < len(r.src); i++ {
		v |= uint32(r.src[offset+i]) << (8 * uint(i))
	}
	r.bitPos += int(width)
	return int(v>>shift) & (1<<width - 1), nil
}

type lzwDecoder struct {
	table *CodeTable
	bits  codeReader
	dst   []byte
	n     int
	prev  int
}

func newLZWDecoder(src []byte, minCodeSize uint8, dst []byte) (*lzwDecoder, error) {
	table, err := NewCodeTable(minCodeSize)
	if err != nil {
		return nil, err
	}
	return &lzwDecoder{
		table: table,
		bits:  codeReader{src: src},
		dst:   dst,
		prev:  lzwNoCode,
	}, nil
}

// start consumes the mandatory leading Clear code.
func (d *lzwDecoder) start() error {
	code, err := d.bits.read(d.table.Width())
	if err != nil {
		return err
	}
	if code != d.table.Clear() {
		return codec.Errorf(codec.CorruptData, "lzw", "first code %d is not the clear code %d", code, d.table.Clear())
	}
	return nil
}

func (d *lzwDecoder) overflow(length int) error {
	return codec.Errorf(codec.CorruptData, "lzw", "index stream of %d entries overflows at %d", len(d.dst), d.n+length)
}

// step reads and applies one code. It reports true once the End code is read.
func (d *lzwDecoder) step() (bool, error) {
	t := d.table
	code, err := d.bits.read(t.Width())
	if err != nil {
		return false, err
	}

	switch {
	case code == t.Clear():
		t.Reset()
		d.prev = lzwNoCode
		return false, nil

	case code == t.End():
		return true, nil

	case t.known(code):
		length := int(t.entries[code].length)
		if d.n+length > len(d.dst) {
			return false, d.overflow(length)
		}
		t.write(code, d.dst[d.n:])
		if d.prev != lzwNoCode {
			t.add(d.prev, t.entries[code].first)
		}
		d.n += length

	case code == t.next && d.prev != lzwNoCode:
		// The code being defined right now: prev's string plus its own first byte.
		length := int(t.entries[d.prev].length) + 1
		if d.n+length > len(d.dst) {
			return false, d.overflow(length)
		}
		t.write(d.prev, d.dst[d.n:])
		first := t.entries[d.prev].first
		d.dst[d.n+length-1] = first
		t.add(d.prev, first)
		d.n += length

	default:
		return false, codec.Errorf(codec.CorruptData, "lzw", "code %d is neither in the table nor the next code %d", code, t.next)
	}

	d.prev = code
	return false, nil
}

// DecodeLZW expands a GIF LZW stream (the concatenated data sub-blocks) into
// dst. dst must be sized to exactly the number of indices the image declares;
// producing more or fewer is reported as corrupt data.
func DecodeLZW(src []byte, minCodeSize uint8, dst []byte) error {
	d, err := newLZWDecoder(src, minCodeSize, dst)
	if err != nil {
		return err
	}
	if err := d.start(); err != nil {
		return err
	}

	// Every code consumes at least three bits, which bounds the loop.
	for {
		done, err := d.step()
		if err != nil {
			return err
		}
		if done {
			break
		}
	}

	if d.n != len(dst) {
		return codec.Errorf(codec.CorruptData, "lzw", "expected %d indices got %d", len(dst), d.n)
	}
	return nil
}
