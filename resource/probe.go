package resource

import (
	"errors"
	"io"

	"github.com/fumiama/imgsz"

	"github.com/32bitkid/pixelbox/codec"
)

type Info struct {
	Type          Type
	Width, Height int
}

// Probe sniffs the format and declared size of an image from its header
// without decoding any pixel data.
func Probe(r io.Reader) (Info, error) {
	const op = "resource: probe"
	size, format, err := imgsz.DecodeSize(r)
	if errors.Is(err, imgsz.ErrFormat) {
		return Info{}, codec.Errorf(codec.MalformedHeader, op, "unrecognised image format")
	}
	if err != nil {
		return Info{}, codec.Wrap(codec.MalformedHeader, op, err)
	}

	t, ok := typeOfFormat(format)
	if !ok {
		return Info{}, codec.Errorf(codec.UnsupportedFeature, op, "%s images", format)
	}
	return Info{Type: t, Width: size.Width, Height: size.Height}, nil
}
