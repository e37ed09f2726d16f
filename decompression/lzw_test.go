package decompression

import (
	"bytes"
	"compress/lzw"
	"errors"
	"math/rand"
	"testing"

	"github.com/32bitkid/pixelbox/codec"
)

// codePacker writes variable width codes least-significant-bit first, the
// way a GIF encoder lays them out.
type codePacker struct {
	out   []byte
	acc   uint32
	nbits uint
}

func (p *codePacker) write(code int, width uint) {
	p.acc |= uint32(code) << p.nbits
	p.nbits += width
	for p.nbits >= 8 {
		p.out = append(p.out, uint8(p.acc))
		p.acc >>= 8
		p.nbits -= 8
	}
}

func (p *codePacker) bytes() []byte {
	if p.nbits > 0 {
		return append(p.out, uint8(p.acc))
	}
	return p.out
}

type lzwCode struct {
	code  int
	width uint
}

func pack(codes []lzwCode) []byte {
	var p codePacker
	for _, c := range codes {
		p.write(c.code, c.width)
	}
	return p.bytes()
}

func TestCodeTableInitialState(t *testing.T) {
	table, err := NewCodeTable(2)
	if err != nil {
		t.Fatal(err)
	}
	if table.Clear() != 4 || table.End() != 5 {
		t.Fatalf("expected clear(4) end(5), got clear(%d) end(%d)", table.Clear(), table.End())
	}
	if table.Width() != 3 {
		t.Fatalf("expected width 3, got %d", table.Width())
	}
	if table.Len() != 6 {
		t.Fatalf("expected 6 entries, got %d", table.Len())
	}
}

func TestCodeTableRejectsSmallCodeSize(t *testing.T) {
	for _, m := range []uint8{0, 1, 9, 12} {
		if _, err := NewCodeTable(m); !errors.Is(err, codec.ErrMalformedHeader) {
			t.Errorf("code size %d: expected malformed header, got %v", m, err)
		}
	}
	if err := DecodeLZW([]byte{0x00}, 1, make([]byte, 1)); !errors.Is(err, codec.ErrMalformedHeader) {
		t.Fatalf("expected malformed header, got %v", err)
	}
}

func TestCodeWidthGrowth(t *testing.T) {
	// With m=2 the table starts with 6 entries and a 3-bit width. The first
	// literal after a clear learns nothing, so width must reach 4 bits after
	// the first literal plus 2^(m+1)-(2^m+2) = 2 table-growing codes.
	src := pack([]lzwCode{
		{4, 3}, // clear
		{0, 3},
		{1, 3},
		{2, 3},
		{3, 4},
		{5, 4}, // end
	})
	d, err := newLZWDecoder(src, 2, make([]byte, 4))
	if err != nil {
		t.Fatal(err)
	}
	if err := d.start(); err != nil {
		t.Fatal(err)
	}

	expected := []struct {
		width uint
		len   int
	}{
		{3, 6},
		{3, 7},
		{4, 8},
		{4, 9},
	}
	for i, e := range expected {
		if _, err := d.step(); err != nil {
			t.Fatalf("%d: %v", i, err)
		}
		if d.table.Width() != e.width || d.table.Len() != e.len {
			t.Fatalf("%d: expected width(%d) len(%d), got width(%d) len(%d)", i, e.width, e.len, d.table.Width(), d.table.Len())
		}
	}
	done, err := d.step()
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Fatal("expected the end code")
	}
	if !bytes.Equal(d.dst, []byte{0, 1, 2, 3}) {
		t.Fatalf("unexpected indices %v", d.dst)
	}
}

func TestDecodeLZWNextCode(t *testing.T) {
	// 1, then code 6 before it exists: 6 must expand to "1 1".
	src := pack([]lzwCode{
		{4, 3},
		{1, 3},
		{6, 3},
		{1, 3},
		{5, 4},
	})
	dst := make([]byte, 4)
	if err := DecodeLZW(src, 2, dst); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, []byte{1, 1, 1, 1}) {
		t.Fatalf("unexpected indices %v", dst)
	}
}

func TestDecodeLZWClearMidStream(t *testing.T) {
	// Grow the table past 8 entries, clear, and verify the width falls back
	// to the original 3 bits.
	src := pack([]lzwCode{
		{4, 3},
		{0, 3},
		{1, 3},
		{6, 3}, // "0 1"
		{4, 4}, // clear, read at the widened 4 bits
		{2, 3},
		{3, 3},
		{5, 3},
	})
	dst := make([]byte, 6)
	if err := DecodeLZW(src, 2, dst); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, []byte{0, 1, 0, 1, 2, 3}) {
		t.Fatalf("unexpected indices %v", dst)
	}
}

func TestDecodeLZWErrors(t *testing.T) {
	tests := []struct {
		name string
		src  []byte
		size int
		kind codec.Kind
	}{
		{
			name: "first code is not clear",
			src:  pack([]lzwCode{{1, 3}, {5, 3}}),
			size: 1,
			kind: codec.CorruptData,
		},
		{
			name: "unknown code",
			src:  pack([]lzwCode{{4, 3}, {1, 3}, {7, 3}, {5, 3}}),
			size: 3,
			kind: codec.CorruptData,
		},
		{
			name: "next code right after clear",
			src:  pack([]lzwCode{{4, 3}, {6, 3}, {5, 3}}),
			size: 2,
			kind: codec.CorruptData,
		},
		{
			name: "truncated before end code",
			src:  pack([]lzwCode{{4, 3}, {1, 3}}),
			size: 1,
			kind: codec.OutOfBounds,
		},
		{
			name: "too many indices",
			src:  pack([]lzwCode{{4, 3}, {1, 3}, {2, 3}, {5, 3}}),
			size: 1,
			kind: codec.CorruptData,
		},
		{
			name: "too few indices",
			src:  pack([]lzwCode{{4, 3}, {1, 3}, {5, 3}}),
			size: 2,
			kind: codec.CorruptData,
		},
		{
			name: "empty stream",
			src:  nil,
			size: 1,
			kind: codec.OutOfBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DecodeLZW(tt.src, 2, make([]byte, tt.size))
			if codec.KindOf(err) != tt.kind {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestDecodeLZWAgainstEncoder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, litWidth := range []int{2, 4, 8} {
		// Long, low-entropy input fills the table and forces the encoder to
		// emit clear codes mid-stream.
		input := make([]byte, 40000)
		for i := range input {
			if rng.Intn(4) == 0 {
				input[i] = uint8(rng.Intn(1 << uint(litWidth)))
			} else if i > 0 {
				input[i] = input[i-1]
			}
		}

		var buf bytes.Buffer
		w := lzw.NewWriter(&buf, lzw.LSB, litWidth)
		if _, err := w.Write(input); err != nil {
			t.Fatal(err)
		}
		if err := w.Close(); err != nil {
			t.Fatal(err)
		}

		dst := make([]byte, len(input))
		if err := DecodeLZW(buf.Bytes(), uint8(litWidth), dst); err != nil {
			t.Fatalf("lit width %d: %v", litWidth, err)
		}
		if !bytes.Equal(dst, input) {
			t.Fatalf("lit width %d: decoded indices differ", litWidth)
		}
	}
}
