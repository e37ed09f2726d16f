package codec

import (
	"errors"
	"testing"
)

func TestCursorByteOrder(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03, 0x04, 0x05})

	le, err := c.PeekU16LE(0)
	if err != nil {
		t.Fatal(err)
	}
	if le != 0x0201 {
		t.Fatalf("little endian: expected(0x0201) != actual(%#04x)", le)
	}

	be, err := c.PeekU32BE(1)
	if err != nil {
		t.Fatal(err)
	}
	if be != 0x02030405 {
		t.Fatalf("big endian: expected(0x02030405) != actual(%#08x)", be)
	}
	if c.Offset() != 0 {
		t.Fatalf("peek moved the cursor to %d", c.Offset())
	}
}

type cursorStep struct {
	op    string
	value uint32
}

func TestCursorSequentialReads(t *testing.T) {
	c := NewCursor([]byte{0xff, 0x34, 0x12, 0xde, 0xad, 0xbe, 0xef})
	steps := []cursorStep{
		{"u8", 0xff},
		{"u16le", 0x1234},
		{"u32be", 0xdeadbeef},
	}

	for i, s := range steps {
		var v uint32
		var err error
		switch s.op {
		case "u8":
			var b uint8
			b, err = c.U8()
			v = uint32(b)
		case "u16le":
			var h uint16
			h, err = c.U16LE()
			v = uint32(h)
		case "u32be":
			v, err = c.U32BE()
		}
		if err != nil {
			t.Fatalf("%d: %v", i, err)
		}
		if v != s.value {
			t.Fatalf("%d: expected(%#x) != actual(%#x)", i, s.value, v)
		}
	}
	if c.Remaining() != 0 {
		t.Fatalf("expected cursor at end, %d bytes left", c.Remaining())
	}
}

func TestCursorOutOfBounds(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03})
	if err := c.Skip(2); err != nil {
		t.Fatal(err)
	}

	if _, err := c.U16LE(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected out of bounds, got %v", err)
	}
	if c.Offset() != 2 {
		t.Fatalf("failed read moved the cursor to %d", c.Offset())
	}
	if _, err := c.U32BE(); KindOf(err) != OutOfBounds {
		t.Fatalf("expected %v, got %v", OutOfBounds, err)
	}
	if _, err := c.Bytes(2); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected out of bounds, got %v", err)
	}
	if _, err := c.PeekU8(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("negative offset: expected out of bounds, got %v", err)
	}
	if err := c.Seek(3); err != nil {
		t.Fatalf("seek to end should be allowed: %v", err)
	}
	if err := c.Seek(4); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("seek past end: expected out of bounds, got %v", err)
	}
}

func TestErrorKinds(t *testing.T) {
	err := Errorf(CorruptData, "png: IDAT", "crc mismatch %08x", 0x1234)
	if !errors.Is(err, ErrCorruptData) {
		t.Fatalf("expected corrupt data, got %v", err)
	}
	if errors.Is(err, ErrOutOfBounds) {
		t.Fatal("corrupt data matched out of bounds")
	}

	wrapped := Wrap(UnsupportedFeature, "outer", err)
	if KindOf(wrapped) != CorruptData {
		t.Fatalf("wrap replaced the kind: %v", KindOf(wrapped))
	}
	if Wrap(CorruptData, "x", nil) != nil {
		t.Fatal("wrapping nil should stay nil")
	}
	if KindOf(errors.New("plain")) != KindUnknown {
		t.Fatal("plain errors carry no kind")
	}
}

func TestPixelBufferImage(t *testing.T) {
	p := NewPixelBuffer(2, 1)
	p.Pix[1] = RGB{R: 0xff, G: 0x80}

	r, g, b, a := p.At(1, 0).RGBA()
	if r != 0xffff || g != 0x8080 || b != 0 || a != 0xffff {
		t.Fatalf("unexpected colour %x %x %x %x", r, g, b, a)
	}
	if p.RGBAt(5, 5) != (RGB{}) {
		t.Fatal("out of range pixel should be black")
	}
	if p.Bounds().Dx() != 2 || p.Bounds().Dy() != 1 {
		t.Fatalf("unexpected bounds %v", p.Bounds())
	}
}
