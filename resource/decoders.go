package resource

import (
	"github.com/32bitkid/pixelbox/codec"
	"github.com/32bitkid/pixelbox/gif"
	"github.com/32bitkid/pixelbox/png"
)

type DecodeFn = func(b []byte) ([]codec.Frame, error)

type DecoderLUT map[Type]DecodeFn

func DecodeGIF(b []byte) ([]codec.Frame, error) {
	img, err := gif.Decode(b)
	if err != nil {
		return nil, err
	}
	return img.CodecFrames(), nil
}

func DecodePNG(b []byte) ([]codec.Frame, error) {
	img, err := png.Decode(b)
	if err != nil {
		return nil, err
	}
	return img.CodecFrames(), nil
}

// Limited returns decoders that refuse images larger than maxPixels.
func Limited(maxPixels int) DecoderLUT {
	return DecoderLUT{
		TypeGIF: func(b []byte) ([]codec.Frame, error) {
			img, err := gif.Decode(b, gif.Options{MaxPixels: maxPixels})
			if err != nil {
				return nil, err
			}
			return img.CodecFrames(), nil
		},
		TypePNG: func(b []byte) ([]codec.Frame, error) {
			img, err := png.Decode(b, png.Options{MaxPixels: maxPixels})
			if err != nil {
				return nil, err
			}
			return img.CodecFrames(), nil
		},
	}
}

var Decoders = DecoderLUT{
	TypeGIF: DecodeGIF,
	TypePNG: DecodePNG,
}
