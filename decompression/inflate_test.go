package decompression

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/32bitkid/pixelbox/codec"
)

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestInflateExactSize(t *testing.T) {
	data := bytes.Repeat([]byte{0, 1, 2, 3, 4, 5}, 100)
	dst := make([]byte, len(data))
	n, err := Inflaters[MethodDeflate](deflate(t, data), dst)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) || !bytes.Equal(dst, data) {
		t.Fatalf("expected(%d) != actual(%d)", len(data), n)
	}
}

func TestInflateShortOutput(t *testing.T) {
	data := []byte("short")
	n, err := Inflate(deflate(t, data), make([]byte, 10))
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("expected(%d) != actual(%d)", len(data), n)
	}
}

func TestInflateErrors(t *testing.T) {
	data := bytes.Repeat([]byte("pixel"), 20)
	good := deflate(t, data)

	corrupt := append([]byte(nil), good...)
	corrupt[len(corrupt)-1] ^= 0xff

	tests := []struct {
		name string
		src  []byte
		dst  int
		kind codec.Kind
	}{
		{"overflow", good, len(data) - 1, codec.CorruptData},
		{"checksum", corrupt, len(data), codec.CorruptData},
		{"truncated", good[:len(good)/2], len(data), codec.CorruptData},
		{"header check", []byte{0x78, 0x00, 0x00}, 1, codec.CorruptData},
		{"not deflate", []byte{0x77, 0x85}, 1, codec.UnsupportedFeature},
		{"preset dictionary", []byte{0x78, 0xbb}, 1, codec.UnsupportedFeature},
		{"no header", []byte{0x78}, 1, codec.OutOfBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inflate(tt.src, make([]byte, tt.dst))
			if codec.KindOf(err) != tt.kind {
				t.Fatalf("expected %v, got %v", tt.kind, err)
			}
		})
	}
}

func TestZlibHeaderFields(t *testing.T) {
	h, err := readZlibHeader([]byte{0x78, 0x9c})
	if err != nil {
		t.Fatal(err)
	}
	if h.cinfo != 7 || h.method != 8 || h.level != 2 || h.dict {
		t.Fatalf("unexpected header %+v", h)
	}
}
