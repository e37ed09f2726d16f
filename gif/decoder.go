package gif

import (
	"github.com/32bitkid/pixelbox/codec"
	"github.com/32bitkid/pixelbox/decompression"
)

type decoder struct {
	c         *codec.Cursor
	img       *Image
	maxPixels int

	// control is the most recent graphic control extension, waiting for the
	// image it describes.
	control *GraphicControl
}

func newDecoder(b []byte, options []Options) *decoder {
	d := &decoder{
		c:         codec.NewCursor(b),
		img:       &Image{LoopCount: -1},
		maxPixels: DefaultMaxPixels,
	}
	for _, opts := range options {
		if opts.MaxPixels > 0 {
			d.maxPixels = opts.MaxPixels
		}
	}
	return d
}

// Decode parses a complete GIF stream. On failure no partial image is
// returned.
func Decode(b []byte, options ...Options) (*Image, error) {
	d := newDecoder(b, options)
	if err := d.decode(); err != nil {
		return nil, err
	}
	return d.img, nil
}

// DecodeConfig reads the header and logical screen descriptor only.
func DecodeConfig(b []byte) (ScreenDescriptor, error) {
	d := newDecoder(b, nil)
	if err := d.readHeader(); err != nil {
		return ScreenDescriptor{}, err
	}
	if err := d.readScreenDescriptor(); err != nil {
		return ScreenDescriptor{}, err
	}
	return d.img.Screen, nil
}

func (d *decoder) decode() error {
	if err := d.readHeader(); err != nil {
		return err
	}
	if err := d.readScreenDescriptor(); err != nil {
		return err
	}
	if err := d.readGlobalColorTable(); err != nil {
		return err
	}

	for {
		introducer, err := d.c.U8()
		if err != nil {
			return codec.Errorf(codec.OutOfBounds, "gif: block", "stream ended without a trailer")
		}

		switch introducer {
		case blockImageDescriptor:
			if err := d.readImage(); err != nil {
				return err
			}
		case blockExtension:
			if err := d.readExtension(); err != nil {
				return err
			}
		case blockTrailer:
			if len(d.img.Frames) == 0 {
				return codec.Errorf(codec.CorruptData, "gif: trailer", "no image data")
			}
			return nil
		default:
			return codec.Errorf(codec.MalformedHeader, "gif: block", "unknown block introducer %#02x at offset %d", introducer, d.c.Offset()-1)
		}
	}
}

func (d *decoder) readImage() error {
	const op = "gif: image data"

	id, err := d.readImageDescriptor()
	if err != nil {
		return err
	}

	frame := &Frame{ImageDescriptor: id, Control: d.control}
	d.control = nil

	if id.HasLocalColorTable {
		if frame.Palette, err = d.readPalette("gif: local color table", id.LocalColorTableSize); err != nil {
			return err
		}
	}

	minCodeSize, err := d.c.U8()
	if err != nil {
		return codec.Wrap(codec.OutOfBounds, op, err)
	}

	// Codes run across sub-block boundaries, so the blocks are joined first.
	var data []byte
	if err := d.readSubBlocks(op, func(b []byte) {
		data = append(data, b...)
	}); err != nil {
		return err
	}

	pixels := id.Width * id.Height
	if pixels > d.maxPixels {
		return codec.Errorf(codec.ResourceExhausted, op, "%dx%d frame exceeds %d pixels", id.Width, id.Height, d.maxPixels)
	}

	frame.Indices = make([]uint8, pixels)
	if err := decompression.DecodeLZW(data, minCodeSize, frame.Indices); err != nil {
		return err
	}

	palette := frame.Palette
	if palette == nil {
		palette = d.img.Palette
	}
	frame.Pixels = codec.NewPixelBuffer(id.Width, id.Height)
	if err := resolveColors(frame.Indices, palette, frame.Pixels.Pix); err != nil {
		return err
	}

	d.img.Frames = append(d.img.Frames, frame)
	return nil
}
