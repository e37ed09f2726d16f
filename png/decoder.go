package png

import (
	"encoding/binary"

	"github.com/32bitkid/pixelbox/codec"
	"github.com/32bitkid/pixelbox/decompression"
)

type decoder struct {
	c         *codec.Cursor
	maxPixels int

	header Header
	chunks int
	idat   []byte

	seenIDAT bool
	// idatDone is set once a chunk other than IDAT follows the image data.
	idatDone bool
}

func newDecoder(b []byte, options []Options) *decoder {
	d := &decoder{
		c:         codec.NewCursor(b),
		maxPixels: DefaultMaxPixels,
	}
	for _, opts := range options {
		if opts.MaxPixels > 0 {
			d.maxPixels = opts.MaxPixels
		}
	}
	return d
}

// Decode parses a complete PNG stream. On failure no partial image is
// returned.
func Decode(b []byte, options ...Options) (*Image, error) {
	d := newDecoder(b, options)
	pixels, err := d.decode()
	if err != nil {
		return nil, err
	}
	return &Image{Header: d.header, Pixels: pixels}, nil
}

// DecodeConfig validates the signature and the IHDR chunk only.
func DecodeConfig(b []byte) (Header, error) {
	d := newDecoder(b, nil)
	if err := d.readSignature(); err != nil {
		return Header{}, err
	}
	ch, err := readChunk(d.c)
	if err != nil {
		return Header{}, err
	}
	if err := d.readHeader(ch); err != nil {
		return Header{}, err
	}
	return d.header, nil
}

func (d *decoder) readSignature() error {
	sig, err := d.c.Bytes(len(signature))
	if err != nil || string(sig) != signature {
		return codec.Errorf(codec.MalformedHeader, "png: signature", "not a PNG stream")
	}
	return nil
}

func (d *decoder) readHeader(ch Chunk) error {
	const op = "png: IHDR"
	if ch.Type != chunkIHDR {
		return codec.Errorf(codec.MalformedHeader, op, "first chunk is %s", ch.Type)
	}
	if len(ch.Data) != headerSize {
		return codec.Errorf(codec.MalformedHeader, op, "length expected(%d) != actual(%d)", headerSize, len(ch.Data))
	}

	w := binary.BigEndian.Uint32(ch.Data[0:4])
	h := binary.BigEndian.Uint32(ch.Data[4:8])
	if w == 0 || h == 0 || w > 1<<31-1 || h > 1<<31-1 {
		return codec.Errorf(codec.MalformedHeader, op, "invalid dimensions %dx%d", w, h)
	}

	hdr := Header{
		Width:       int(w),
		Height:      int(h),
		BitDepth:    ch.Data[8],
		ColorType:   ColorType(ch.Data[9]),
		Compression: ch.Data[10],
		Filter:      ch.Data[11],
		Interlace:   ch.Data[12],
	}

	if hdr.BitDepth != 8 {
		return codec.Errorf(codec.UnsupportedFeature, op, "bit depth %d", hdr.BitDepth)
	}
	if hdr.ColorType != ColorTypeRGB && hdr.ColorType != ColorTypeRGBA {
		return codec.Errorf(codec.UnsupportedFeature, op, "%v", hdr.ColorType)
	}
	if _, ok := decompression.Inflaters[decompression.Method(hdr.Compression)]; !ok {
		return codec.Errorf(codec.UnsupportedFeature, op, "compression method %d", hdr.Compression)
	}
	if hdr.Filter != 0 {
		return codec.Errorf(codec.UnsupportedFeature, op, "filter method %d", hdr.Filter)
	}
	switch hdr.Interlace {
	case 0:
	case 1:
		return codec.Errorf(codec.UnsupportedFeature, op, "interlaced image")
	default:
		return codec.Errorf(codec.MalformedHeader, op, "interlace method %d", hdr.Interlace)
	}

	if uint64(w)*uint64(h) > uint64(d.maxPixels) {
		return codec.Errorf(codec.ResourceExhausted, op, "%dx%d image exceeds %d pixels", w, h, d.maxPixels)
	}

	d.header = hdr
	return nil
}

func (d *decoder) decode() (*codec.PixelBuffer, error) {
	if err := d.readSignature(); err != nil {
		return nil, err
	}

	for {
		ch, err := readChunk(d.c)
		if err != nil {
			return nil, err
		}
		d.chunks++

		if d.chunks == 1 {
			if err := d.readHeader(ch); err != nil {
				return nil, err
			}
			continue
		}

		switch ch.Type {
		case chunkIHDR:
			return nil, codec.Errorf(codec.CorruptData, "png: IHDR", "repeated header chunk")
		case chunkIDAT:
			if d.idatDone {
				return nil, codec.Errorf(codec.CorruptData, "png: IDAT", "image data chunks are not consecutive")
			}
			d.idat = append(d.idat, ch.Data...)
			d.seenIDAT = true
			continue
		case chunkIEND:
			if ch.Length != 0 {
				return nil, codec.Errorf(codec.CorruptData, "png: IEND", "length %d", ch.Length)
			}
			if !d.seenIDAT {
				return nil, codec.Errorf(codec.CorruptData, "png: IEND", "no image data")
			}
			return d.readPixels()
		case chunkPLTE:
			// suggested palette for truecolour images
		default:
			if ch.Critical() {
				return nil, codec.Errorf(codec.UnsupportedFeature, "png: chunk", "unknown critical chunk %s", ch.Type)
			}
		}

		if d.seenIDAT {
			d.idatDone = true
		}
	}
}

func (d *decoder) readPixels() (*codec.PixelBuffer, error) {
	const op = "png: IDAT"
	hdr := d.header
	stride := hdr.Stride()
	size := hdr.Height * (1 + stride)

	inflate := decompression.Inflaters[decompression.Method(hdr.Compression)]
	buf := make([]byte, size)
	n, err := inflate(d.idat, buf)
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, codec.Errorf(codec.CorruptData, op, "inflated size expected(%d) != actual(%d)", size, n)
	}

	if err := Defilter(buf, hdr.Height, stride, hdr.PixelSize()); err != nil {
		return nil, err
	}

	pb := codec.NewPixelBuffer(hdr.Width, hdr.Height)
	ps := hdr.PixelSize()
	for y := 0; y < hdr.Height; y++ {
		line := buf[y*(stride+1)+1 : (y+1)*(stride+1)]
		for x := 0; x < hdr.Width; x++ {
			px := line[x*ps:]
			pb.Pix[y*hdr.Width+x] = codec.RGB{R: px[0], G: px[1], B: px[2]}
		}
	}
	return pb, nil
}
