// Package pixelbox reads the image library of a pixelbox device.
//
// A pixelbox is an 8x8 RGB LED matrix that shows GIF and PNG images kept
// in the images folder of its storage. Still images are shown as they are,
// animated GIFs cycle through their frames using the delays stored in the
// file.
package pixelbox

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/32bitkid/pixelbox/anim"
	"github.com/32bitkid/pixelbox/resource"
	"github.com/32bitkid/pixelbox/screen"
)

const imagesDir = "images"

// Root is a reference to the root path of a pixelbox storage image.
type Root struct {
	Path     string
	Decoders resource.DecoderLUT
	Logger   *slog.Logger

	// Width and Height every image must have. Zero disables the check.
	Width, Height int

	Mapping []resource.Mapping
}

func NewRoot(path string) Root {
	return Root{
		Path:     path,
		Decoders: resource.Decoders,
		Width:    screen.Width,
		Height:   screen.Height,
	}
}

func (root *Root) logger() *slog.Logger {
	if root.Logger == nil {
		return slog.Default()
	}
	return root.Logger
}

// LoadMapping scans the images folder. Files that are not GIF or PNG, whose
// header disagrees with their extension or whose declared size is wrong for
// the matrix are logged and skipped.
func (root *Root) LoadMapping() error {
	dir := filepath.Join(root.Path, imagesDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	// Default to the unrestricted decoders
	decoders := root.Decoders
	if decoders == nil {
		decoders = resource.Decoders
	}
	log := root.logger().With("dir", dir)

	root.Mapping = nil
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		resourceType, ok := resource.TypeOf(name)
		if !ok {
			log.Debug("skipping file", "name", name)
			continue
		}

		fn := filepath.Join(dir, name)
		info, err := probeFile(fn)
		if err != nil {
			log.Warn("skipping image", "name", name, "err", err)
			continue
		}
		if info.Type != resourceType {
			log.Warn("skipping image", "name", name, "err", fmt.Errorf("extension is %v, content is %v", resourceType, info.Type))
			continue
		}
		if !root.fits(info.Width, info.Height) {
			log.Warn("skipping image", "name", name, "err", fmt.Errorf("%dx%d image, expected %dx%d", info.Width, info.Height, root.Width, root.Height))
			continue
		}

		root.Mapping = append(root.Mapping, &diskMapping{
			resourceType: resourceType,
			name:         name,
			path:         fn,
			decoders:     decoders,
		})
	}

	log.Info("loaded image mapping", "images", len(root.Mapping))
	return nil
}

func (root *Root) fits(w, h int) bool {
	return (root.Width == 0 || w == root.Width) && (root.Height == 0 || h == root.Height)
}

// Find returns the mapping of the image stored under name.
func (root *Root) Find(name string) (resource.Mapping, bool) {
	for _, m := range root.Mapping {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// Next returns the image after name, wrapping around to the first. An
// unknown name also selects the first image.
func (root *Root) Next(name string) (resource.Mapping, bool) {
	if len(root.Mapping) == 0 {
		return nil, false
	}
	for i, m := range root.Mapping {
		if m.Name() == name {
			return root.Mapping[(i+1)%len(root.Mapping)], true
		}
	}
	return root.Mapping[0], true
}

// Load decodes the named image into an animation ready for the matrix.
func (root *Root) Load(name string) (*anim.Animation, error) {
	m, ok := root.Find(name)
	if !ok {
		return nil, fmt.Errorf("image not found: %s", name)
	}

	frames, err := m.Frames()
	if err == nil && root.Width > 0 && root.Height > 0 {
		err = resource.CheckDimensions(frames, root.Width, root.Height)
	}
	if err != nil {
		root.logger().Error("decode failed", "name", name, "type", m.Type(), "err", err)
		return nil, err
	}
	return anim.FromFrames(frames), nil
}

func probeFile(fn string) (resource.Info, error) {
	f, err := os.Open(fn)
	if err != nil {
		return resource.Info{}, err
	}
	defer f.Close()
	return resource.Probe(bufio.NewReader(f))
}
