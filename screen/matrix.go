// Package screen models the 8x8 LED matrix the decoded images are shown on.
package screen

import (
	"github.com/32bitkid/pixelbox/codec"
)

const (
	Width   = 8
	Height  = 8
	NumLEDs = Width * Height

	DefaultBrightness = 64
)

// Matrix is the frame buffer of the LED matrix. LEDs are addressed row-major
// from the top left.
type Matrix struct {
	leds       [NumLEDs]codec.RGB
	brightness uint8
	off        bool
}

func NewMatrix() *Matrix {
	return &Matrix{brightness: DefaultBrightness}
}

// Set copies a frame into the buffer. Pixels past the 64th are ignored and
// LEDs past the end of a short frame keep their colour.
func (m *Matrix) Set(p *codec.PixelBuffer) {
	if p == nil {
		return
	}
	copy(m.leds[:], p.Pix)
}

func (m *Matrix) Fill(c codec.RGB) {
	for i := range m.leds {
		m.leds[i] = c
	}
}

func (m *Matrix) SetBrightness(v uint8) { m.brightness = v }
func (m *Matrix) Brightness() uint8     { return m.brightness }

// SetEnabled switches the matrix on or off. Turning it off blanks the
// buffer.
func (m *Matrix) SetEnabled(on bool) {
	m.off = !on
	if m.off {
		m.Fill(codec.RGB{})
	}
}

func (m *Matrix) Enabled() bool { return !m.off }

// LED returns the stored colour at x, y.
func (m *Matrix) LED(x, y int) codec.RGB {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return codec.RGB{}
	}
	return m.leds[y*Width+x]
}

// Output returns the colours the LEDs emit at the current brightness. Each
// channel byte is scaled as v*(b+1)/256, the way the LED driver dims the
// strip, so 0 turns every LED off and 255 leaves colours untouched.
func (m *Matrix) Output() [NumLEDs]codec.RGB {
	var out [NumLEDs]codec.RGB
	if m.off {
		return out
	}
	for i, c := range m.leds {
		out[i] = codec.RGB{
			R: scale8(c.R, m.brightness),
			G: scale8(c.G, m.brightness),
			B: scale8(c.B, m.brightness),
		}
	}
	return out
}

func scale8(v, b uint8) uint8 {
	return uint8(uint16(v) * (uint16(b) + 1) >> 8)
}

// Image returns the emitted colours as an 8x8 pixel buffer.
func (m *Matrix) Image() *codec.PixelBuffer {
	out := m.Output()
	pb := codec.NewPixelBuffer(Width, Height)
	copy(pb.Pix, out[:])
	return pb
}
