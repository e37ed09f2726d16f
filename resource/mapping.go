package resource

import (
	"github.com/32bitkid/pixelbox/codec"
)

// Mapping locates one stored image.
type Mapping interface {
	Type() Type
	Name() string

	Resource() (Resource, error)
	Frames() ([]codec.Frame, error)
}
