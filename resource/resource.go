// Package resource maps stored image files to the decoder for their format.
package resource

import (
	"github.com/32bitkid/pixelbox/codec"
)

type Resource interface {
	Name() string
	Type() Type
	Bytes() []byte
}

// Decode runs the resource's bytes through the decoder registered for its
// type.
func Decode(res Resource, lut DecoderLUT) ([]codec.Frame, error) {
	if lut == nil {
		lut = Decoders
	}
	decode, ok := lut[res.Type()]
	if !ok {
		return nil, codec.Errorf(codec.UnsupportedFeature, "resource", "unhandled image type: %v", res.Type())
	}
	return decode(res.Bytes())
}

// CheckDimensions rejects frames that do not cover exactly width x height
// pixels.
func CheckDimensions(frames []codec.Frame, width, height int) error {
	for i, f := range frames {
		if f.Pixels == nil {
			return codec.Errorf(codec.CorruptData, "resource: dimensions", "frame %d has no pixels", i)
		}
		if f.Pixels.Width != width || f.Pixels.Height != height {
			return codec.Errorf(codec.UnsupportedFeature, "resource: dimensions",
				"frame %d is %dx%d, expected %dx%d", i, f.Pixels.Width, f.Pixels.Height, width, height)
		}
	}
	return nil
}

type memoryResource struct {
	name         string
	resourceType Type
	payload      []byte
}

// NewResource wraps an in-memory payload.
func NewResource(name string, t Type, payload []byte) Resource {
	return memoryResource{name: name, resourceType: t, payload: payload}
}

func (res memoryResource) Name() string  { return res.name }
func (res memoryResource) Type() Type    { return res.resourceType }
func (res memoryResource) Bytes() []byte { return res.payload }
