package screen

import (
	"testing"

	"github.com/32bitkid/pixelbox/codec"
)

func TestMatrixSet(t *testing.T) {
	m := NewMatrix()
	m.Fill(codec.RGB{R: 9})

	short := codec.NewPixelBuffer(2, 2)
	for i := range short.Pix {
		short.Pix[i] = codec.RGB{G: uint8(i + 1)}
	}
	m.Set(short)
	if m.LED(3, 0) != (codec.RGB{G: 4}) {
		t.Fatalf("unexpected LED %v", m.LED(3, 0))
	}
	if m.LED(4, 0) != (codec.RGB{R: 9}) {
		t.Fatalf("expected LEDs past a short frame to keep their colour, got %v", m.LED(4, 0))
	}

	big := codec.NewPixelBuffer(10, 10)
	for i := range big.Pix {
		big.Pix[i] = codec.RGB{B: uint8(i)}
	}
	m.Set(big)
	if m.LED(7, 7) != (codec.RGB{B: 63}) {
		t.Fatalf("expected the 64th pixel, got %v", m.LED(7, 7))
	}
	if m.LED(8, 0) != (codec.RGB{}) {
		t.Fatal("out of range LEDs are black")
	}

	m.Set(nil)
	if m.LED(7, 7) != (codec.RGB{B: 63}) {
		t.Fatal("nil frame should be ignored")
	}
}

func TestMatrixBrightness(t *testing.T) {
	m := NewMatrix()
	if m.Brightness() != DefaultBrightness {
		t.Fatalf("expected(%d) != actual(%d)", DefaultBrightness, m.Brightness())
	}
	white := codec.RGB{R: 0xFF, G: 0xFF, B: 0xFF}
	m.Fill(white)

	m.SetBrightness(0xFF)
	if out := m.Output(); out[0] != white {
		t.Fatalf("expected white at full brightness, got %v", out[0])
	}

	m.SetBrightness(0)
	if out := m.Output(); out[0] != (codec.RGB{}) {
		t.Fatalf("expected black at zero brightness, got %v", out[0])
	}

	var last uint8
	for _, b := range []uint8{16, 64, 128, 200} {
		m.SetBrightness(b)
		out := m.Output()
		px := out[10]
		if px.R != px.G || px.G != px.B {
			t.Fatalf("brightness %d: expected grey, got %v", b, px)
		}
		if px.R <= last || px.R == 0xFF {
			t.Fatalf("brightness %d: expected a level between %d and 255, got %d", b, last, px.R)
		}
		last = px.R
	}
}

func TestMatrixBrightnessScale(t *testing.T) {
	tests := []struct {
		brightness uint8
		in, out    codec.RGB
	}{
		{0, codec.RGB{R: 0xFF, G: 0xFF, B: 0xFF}, codec.RGB{}},
		{0xFF, codec.RGB{R: 0xFF, G: 0x80, B: 0x01}, codec.RGB{R: 0xFF, G: 0x80, B: 0x01}},
		{DefaultBrightness, codec.RGB{R: 0xFF, G: 0x80, B: 0x03}, codec.RGB{R: 0x40, G: 0x20, B: 0x00}},
		{0x80, codec.RGB{R: 0xFF, G: 0x10, B: 0x02}, codec.RGB{R: 0x80, G: 0x08, B: 0x01}},
	}
	for _, tt := range tests {
		m := NewMatrix()
		m.SetBrightness(tt.brightness)
		m.Fill(tt.in)
		if out := m.Output(); out[63] != tt.out {
			t.Errorf("brightness %d: expected(%v) != actual(%v)", tt.brightness, tt.out, out[63])
		}
	}
}

func TestMatrixEnabled(t *testing.T) {
	m := NewMatrix()
	m.SetBrightness(0xFF)
	m.Fill(codec.RGB{R: 1, G: 2, B: 3})
	m.SetEnabled(false)
	if m.Enabled() {
		t.Fatal("expected matrix to be off")
	}
	m.Fill(codec.RGB{R: 1, G: 2, B: 3})
	if out := m.Output(); out[5] != (codec.RGB{}) {
		t.Fatalf("expected dark output while off, got %v", out[5])
	}
	m.SetEnabled(true)
	if img := m.Image(); img.RGBAt(5, 0) != (codec.RGB{R: 1, G: 2, B: 3}) {
		t.Fatalf("unexpected pixel %v", img.RGBAt(5, 0))
	}
}

func TestRenderPreview(t *testing.T) {
	src := codec.NewPixelBuffer(3, 2)
	src.Pix[1] = codec.RGB{R: 0xFF, G: 0xFF, B: 0xFF}

	const scale = 9
	dst := RenderPreview(src, scale)
	if dst.Bounds().Dx() != 3*scale || dst.Bounds().Dy() != 2*scale {
		t.Fatalf("unexpected bounds %v", dst.Bounds())
	}

	lum := func(x, y int) uint32 {
		c := dst.RGBAAt(x, y)
		return uint32(c.R) + uint32(c.G) + uint32(c.B)
	}

	centre := lum(scale+scale/2, scale/2)
	corner := lum(scale, 0)
	if centre <= corner {
		t.Fatalf("expected a bright centre (%d) and dark corner (%d)", centre, corner)
	}
	if lum(scale+scale/2, scale+scale/2) != 0 {
		t.Fatal("LEDs without light nearby stay dark")
	}
	if lum(scale-1, scale/2) == 0 {
		t.Fatal("expected light to bleed into the left neighbour")
	}

	if small := RenderPreview(src, 1); small.Bounds().Dx() != 3*MinPreviewScale {
		t.Fatalf("expected scale to be raised to %d, got %v", MinPreviewScale, small.Bounds())
	}
}
