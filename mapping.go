package pixelbox

import (
	"os"
	"sync"

	"github.com/32bitkid/pixelbox/codec"
	"github.com/32bitkid/pixelbox/resource"
)

type diskMapping struct {
	resourceType resource.Type
	name         string
	path         string

	decoders resource.DecoderLUT

	mu     sync.Mutex
	cache  resource.Resource
	frames []codec.Frame
}

func (dm *diskMapping) Type() resource.Type { return dm.resourceType }
func (dm *diskMapping) Name() string        { return dm.name }

func (dm *diskMapping) Resource() (resource.Resource, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	return dm.resource()
}

func (dm *diskMapping) resource() (resource.Resource, error) {
	if dm.cache != nil {
		return dm.cache, nil
	}

	payload, err := os.ReadFile(dm.path)
	if err != nil {
		return nil, err
	}

	dm.cache = resource.NewResource(dm.name, dm.resourceType, payload)
	return dm.cache, nil
}

// Frames decodes the image once and hands out the same frames afterwards.
// A failed decode is not cached.
func (dm *diskMapping) Frames() ([]codec.Frame, error) {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if dm.frames != nil {
		return dm.frames, nil
	}

	res, err := dm.resource()
	if err != nil {
		return nil, err
	}
	frames, err := resource.Decode(res, dm.decoders)
	if err != nil {
		return nil, err
	}

	dm.frames = frames
	return dm.frames, nil
}
