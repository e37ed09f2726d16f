// Package gif decodes GIF87a/GIF89a streams into RGB pixel buffers.
//
// Every frame must cover the whole logical screen and must not be
// interlaced; anything else is rejected. Graphic control extensions are
// attached to the image that follows them, which is how the animation timing
// reaches the caller.
package gif

import (
	"time"

	"github.com/32bitkid/pixelbox/codec"
)

// Block introducers
const (
	blockExtension       uint8 = 0x21
	blockImageDescriptor uint8 = 0x2C
	blockTrailer         uint8 = 0x3B
)

// Extension labels. Comment (0xFE) and plain text (0x01) blocks are skipped.
const (
	labelGraphicControl uint8 = 0xF9
	labelApplication    uint8 = 0xFF
)

const (
	headerSize           = 6
	screenDescriptorSize = 7
	imageDescriptorSize  = 9
	graphicControlSize   = 4

	// DefaultMaxPixels bounds the index and pixel buffers of a single frame.
	DefaultMaxPixels = 1 << 22
)

type Disposal uint8

const (
	DisposalUnspecified Disposal = iota
	DisposalNone
	DisposalBackground
	DisposalPrevious
)

func (d Disposal) String() string {
	switch d {
	case DisposalUnspecified:
		return "Disposal(Unspecified)"
	case DisposalNone:
		return "Disposal(None)"
	case DisposalBackground:
		return "Disposal(Background)"
	case DisposalPrevious:
		return "Disposal(Previous)"
	}
	return "Disposal(Reserved)"
}

type ScreenDescriptor struct {
	Width  int
	Height int

	HasGlobalColorTable  bool
	ColorResolution      uint8
	Sorted               bool
	GlobalColorTableSize uint8

	BackgroundIndex uint8
	AspectRatio     uint8
}

type ImageDescriptor struct {
	Left, Top     int
	Width, Height int

	HasLocalColorTable  bool
	Interlaced          bool
	Sorted              bool
	LocalColorTableSize uint8
}

type GraphicControl struct {
	Disposal  Disposal
	UserInput bool

	HasTransparent   bool
	TransparentIndex uint8

	// Delay is in hundredths of a second.
	Delay uint16
}

type Frame struct {
	ImageDescriptor

	// Palette is the local colour table, nil when the frame uses the global one.
	Palette codec.Palette
	// Control is nil when no graphic control extension preceded the frame.
	Control *GraphicControl

	Indices []uint8
	Pixels  *codec.PixelBuffer
}

// Delay is the time the frame stays on screen. Frames without a graphic
// control extension have no delay.
func (f *Frame) Delay() time.Duration {
	if f.Control == nil {
		return 0
	}
	return time.Duration(f.Control.Delay) * 10 * time.Millisecond
}

func (f *Frame) Codec() codec.Frame {
	return codec.Frame{
		Pixels: f.Pixels,
		Delay:  f.Delay(),
		Left:   f.Left,
		Top:    f.Top,
		Timed:  f.Control != nil,
	}
}

type Image struct {
	Version string
	Screen  ScreenDescriptor
	// Palette is the global colour table, nil when absent.
	Palette codec.Palette
	Frames  []*Frame

	// LoopCount comes from a NETSCAPE2.0 application extension: 0 loops
	// forever, -1 means the extension was absent.
	LoopCount int
}

// CodecFrames returns the frames in playback order.
func (g *Image) CodecFrames() []codec.Frame {
	frames := make([]codec.Frame, 0, len(g.Frames))
	for _, f := range g.Frames {
		frames = append(frames, f.Codec())
	}
	return frames
}

type Options struct {
	// MaxPixels caps width*height of a frame; zero means DefaultMaxPixels.
	MaxPixels int
}
