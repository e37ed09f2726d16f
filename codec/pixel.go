// Package codec holds what the GIF and PNG decoders share: the byte cursor,
// the pixel buffer they both produce and the error kinds they both report.
package codec

import (
	"image"
	"image/color"
	"time"
)

// RGB is one 24-bit pixel, in the byte order the LED strip expects it.
type RGB struct {
	R, G, B uint8
}

func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) | uint32(c.R)<<8
	g = uint32(c.G) | uint32(c.G)<<8
	b = uint32(c.B) | uint32(c.B)<<8
	a = 0xFFFF
	return
}

// Palette is a GIF colour table.
type Palette []RGB

// PixelBuffer is a row-major, top-to-bottom, left-to-right RGB raster.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []RGB
}

func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]RGB, width*height),
	}
}

func (p *PixelBuffer) ColorModel() color.Model { return color.RGBAModel }

func (p *PixelBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, p.Width, p.Height) }

func (p *PixelBuffer) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return RGB{}
	}
	return p.Pix[y*p.Width+x]
}

// RGBAt is At without the interface conversion.
func (p *PixelBuffer) RGBAt(x, y int) RGB {
	if x < 0 || y < 0 || x >= p.Width || y >= p.Height {
		return RGB{}
	}
	return p.Pix[y*p.Width+x]
}

// Frame is one decoded image plus the timing and placement a display needs
// to play it back. Stills are a single Frame with a zero Delay.
type Frame struct {
	Pixels *PixelBuffer
	Delay  time.Duration
	// Left and Top are exposed as declared; nothing in this module composites.
	Left, Top int
	// Timed reports whether the source carried explicit timing metadata.
	Timed bool
}
