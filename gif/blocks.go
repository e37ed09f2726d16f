package gif

import (
	"github.com/32bitkid/pixelbox/codec"
)

func (d *decoder) readHeader() error {
	sig, err := d.c.Bytes(headerSize)
	if err != nil {
		return codec.Errorf(codec.MalformedHeader, "gif: header", "need %d bytes, have %d", headerSize, d.c.Len())
	}
	switch v := string(sig); v {
	case "GIF87a", "GIF89a":
		d.img.Version = v
	default:
		return codec.Errorf(codec.MalformedHeader, "gif: header", "unrecognised signature %q", v)
	}
	return nil
}

// readScreenFlags unpacks the logical screen descriptor flags:
//
// bits |
//  0   | global color table flag
// 1-3  | color resolution - 1
//  4   | sort flag
// 5-7  | global color table size, 2^(n+1) entries
//
func readScreenFlags(b uint8, s *ScreenDescriptor) error {
	bits := codec.PackedBits(b)
	var err error
	if s.HasGlobalColorTable, err = bits.Read1(); err != nil {
		return err
	}
	if s.ColorResolution, err = bits.Read8(3); err != nil {
		return err
	}
	if s.Sorted, err = bits.Read1(); err != nil {
		return err
	}
	s.GlobalColorTableSize, err = bits.Read8(3)
	return err
}

func (d *decoder) readScreenDescriptor() error {
	const op = "gif: logical screen descriptor"
	if d.c.Remaining() < screenDescriptorSize {
		return codec.Errorf(codec.OutOfBounds, op, "need %d bytes, have %d", screenDescriptorSize, d.c.Remaining())
	}

	s := &d.img.Screen
	w, _ := d.c.U16LE()
	h, _ := d.c.U16LE()
	packed, _ := d.c.U8()
	s.BackgroundIndex, _ = d.c.U8()
	s.AspectRatio, _ = d.c.U8()
	s.Width, s.Height = int(w), int(h)

	if err := readScreenFlags(packed, s); err != nil {
		return codec.Wrap(codec.MalformedHeader, op, err)
	}
	return nil
}

func (d *decoder) readPalette(op string, size uint8) (codec.Palette, error) {
	n := 1 << (uint(size) + 1)
	raw, err := d.c.Bytes(3 * n)
	if err != nil {
		return nil, codec.Wrap(codec.OutOfBounds, op, err)
	}
	p := make(codec.Palette, n)
	for i := range p {
		p[i] = codec.RGB{R: raw[3*i], G: raw[3*i+1], B: raw[3*i+2]}
	}
	return p, nil
}

func (d *decoder) readGlobalColorTable() error {
	const op = "gif: global color table"
	if !d.img.Screen.HasGlobalColorTable {
		return nil
	}
	if d.c.Offset() != headerSize+screenDescriptorSize {
		return codec.Errorf(codec.MalformedHeader, op, "expected at offset %d, cursor at %d", headerSize+screenDescriptorSize, d.c.Offset())
	}
	p, err := d.readPalette(op, d.img.Screen.GlobalColorTableSize)
	if err != nil {
		return err
	}
	d.img.Palette = p
	return nil
}

// readImageFlags unpacks the image descriptor flags:
//
// bits |
//  0   | local color table flag
//  1   | interlace flag
//  2   | sort flag
// 3-4  | reserved
// 5-7  | local color table size, 2^(n+1) entries
//
func readImageFlags(b uint8, id *ImageDescriptor) error {
	bits := codec.PackedBits(b)
	var err error
	if id.HasLocalColorTable, err = bits.Read1(); err != nil {
		return err
	}
	if id.Interlaced, err = bits.Read1(); err != nil {
		return err
	}
	if id.Sorted, err = bits.Read1(); err != nil {
		return err
	}
	if _, err = bits.Read8(2); err != nil {
		return err
	}
	id.LocalColorTableSize, err = bits.Read8(3)
	return err
}

func (d *decoder) readImageDescriptor() (ImageDescriptor, error) {
	const op = "gif: image descriptor"
	var id ImageDescriptor
	if d.c.Remaining() < imageDescriptorSize {
		return id, codec.Errorf(codec.OutOfBounds, op, "need %d bytes, have %d", imageDescriptorSize, d.c.Remaining())
	}

	left, _ := d.c.U16LE()
	top, _ := d.c.U16LE()
	w, _ := d.c.U16LE()
	h, _ := d.c.U16LE()
	packed, _ := d.c.U8()
	id.Left, id.Top, id.Width, id.Height = int(left), int(top), int(w), int(h)

	if err := readImageFlags(packed, &id); err != nil {
		return id, codec.Wrap(codec.MalformedHeader, op, err)
	}

	if id.Interlaced {
		return id, codec.Errorf(codec.UnsupportedFeature, op, "interlaced image at offset %d", d.c.Offset()-imageDescriptorSize)
	}
	if id.Width != d.img.Screen.Width || id.Height != d.img.Screen.Height {
		return id, codec.Errorf(codec.UnsupportedFeature, op, "frame is %dx%d but the screen is %dx%d",
			id.Width, id.Height, d.img.Screen.Width, d.img.Screen.Height)
	}
	return id, nil
}

// readGraphicControlFlags unpacks the graphic control extension flags:
//
// bits |
// 0-2  | reserved
// 3-5  | disposal method
//  6   | user input flag
//  7   | transparent color flag
//
func readGraphicControlFlags(b uint8, gc *GraphicControl) error {
	bits := codec.PackedBits(b)
	if _, err := bits.Read8(3); err != nil {
		return err
	}
	disposal, err := bits.Read8(3)
	if err != nil {
		return err
	}
	gc.Disposal = Disposal(disposal)
	if gc.UserInput, err = bits.Read1(); err != nil {
		return err
	}
	gc.HasTransparent, err = bits.Read1()
	return err
}

func (d *decoder) readGraphicControl() error {
	const op = "gif: graphic control extension"
	size, err := d.c.U8()
	if err != nil {
		return codec.Wrap(codec.OutOfBounds, op, err)
	}
	if size != graphicControlSize {
		return codec.Errorf(codec.CorruptData, op, "block size %d, expected %d", size, graphicControlSize)
	}
	if d.c.Remaining() < graphicControlSize {
		return codec.Errorf(codec.OutOfBounds, op, "need %d bytes, have %d", graphicControlSize, d.c.Remaining())
	}

	gc := &GraphicControl{}
	packed, _ := d.c.U8()
	gc.Delay, _ = d.c.U16LE()
	gc.TransparentIndex, _ = d.c.U8()
	if err := readGraphicControlFlags(packed, gc); err != nil {
		return codec.Wrap(codec.CorruptData, op, err)
	}

	if err := d.skipSubBlocks(op); err != nil {
		return err
	}
	d.control = gc
	return nil
}

func (d *decoder) readApplication() error {
	const op = "gif: application extension"
	var blocks [][]byte
	err := d.readSubBlocks(op, func(b []byte) {
		blocks = append(blocks, b)
	})
	if err != nil {
		return err
	}

	if len(blocks) < 2 {
		return nil
	}
	switch string(blocks[0]) {
	case "NETSCAPE2.0", "ANIMEXTS1.0":
		if b := blocks[1]; len(b) == 3 && b[0] == 1 {
			d.img.LoopCount = int(b[1]) | int(b[2])<<8
		}
	}
	return nil
}

func (d *decoder) readExtension() error {
	const op = "gif: extension"
	label, err := d.c.U8()
	if err != nil {
		return codec.Wrap(codec.OutOfBounds, op, err)
	}

	switch label {
	case labelGraphicControl:
		return d.readGraphicControl()
	case labelApplication:
		return d.readApplication()
	default:
		// comments, plain text and anything unknown
		return d.skipSubBlocks(op)
	}
}

// readSubBlocks walks length-prefixed data sub-blocks up to and including
// the zero-length terminator. Each call consumes at least one byte, so the
// walk is bounded by the input.
func (d *decoder) readSubBlocks(op string, fn func([]byte)) error {
	for {
		n, err := d.c.U8()
		if err != nil {
			return codec.Errorf(codec.OutOfBounds, op, "missing block terminator")
		}
		if n == 0 {
			return nil
		}
		b, err := d.c.Bytes(int(n))
		if err != nil {
			return codec.Wrap(codec.OutOfBounds, op, err)
		}
		fn(b)
	}
}

func (d *decoder) skipSubBlocks(op string) error {
	return d.readSubBlocks(op, func([]byte) {})
}
