// Package png decodes 8-bit truecolour PNG images into RGB pixel buffers.
//
// Only colour types 2 (RGB) and 6 (RGBA) at a bit depth of 8 without
// interlacing are accepted. Alpha is discarded.
package png

import (
	"github.com/32bitkid/pixelbox/codec"
)

const signature = "\x89PNG\r\n\x1a\n"

// Chunk types
const (
	chunkIHDR = "IHDR"
	chunkPLTE = "PLTE"
	chunkIDAT = "IDAT"
	chunkIEND = "IEND"
)

const (
	headerSize = 13

	// DefaultMaxPixels bounds the scanline buffer allocated for an image.
	DefaultMaxPixels = 1 << 22
)

type ColorType uint8

const (
	ColorTypeGray      ColorType = 0
	ColorTypeRGB       ColorType = 2
	ColorTypePaletted  ColorType = 3
	ColorTypeGrayAlpha ColorType = 4
	ColorTypeRGBA      ColorType = 6
)

func (t ColorType) String() string {
	switch t {
	case ColorTypeGray:
		return "ColorType(Gray)"
	case ColorTypeRGB:
		return "ColorType(RGB)"
	case ColorTypePaletted:
		return "ColorType(Paletted)"
	case ColorTypeGrayAlpha:
		return "ColorType(GrayAlpha)"
	case ColorTypeRGBA:
		return "ColorType(RGBA)"
	}
	return "ColorType(Unknown)"
}

// Header is the content of the IHDR chunk.
//
// offset | size | field
//    0   |  4   | width
//    4   |  4   | height
//    8   |  1   | bit depth
//    9   |  1   | colour type
//   10   |  1   | compression method
//   11   |  1   | filter method
//   12   |  1   | interlace method
//
type Header struct {
	Width, Height int
	BitDepth      uint8
	ColorType     ColorType
	Compression   uint8
	Filter        uint8
	Interlace     uint8
}

// PixelSize is the number of bytes per pixel in a scanline.
func (h Header) PixelSize() int {
	if h.ColorType == ColorTypeRGBA {
		return 4
	}
	return 3
}

// Stride is the length of a reconstructed scanline, without its filter byte.
func (h Header) Stride() int {
	return h.Width * h.PixelSize()
}

type Chunk struct {
	Length uint32
	Type   string
	Data   []byte
	CRC    uint32
}

// Critical chunks have an uppercase first letter.
func (c Chunk) Critical() bool {
	return c.Type[0]&0x20 == 0
}

type Image struct {
	Header Header
	Pixels *codec.PixelBuffer
}

// CodecFrames returns the image as a single untimed frame.
func (img *Image) CodecFrames() []codec.Frame {
	return []codec.Frame{{Pixels: img.Pixels}}
}

type Options struct {
	// MaxPixels caps width*height; zero means DefaultMaxPixels.
	MaxPixels int
}
