package gif

import (
	"github.com/32bitkid/pixelbox/codec"
)

// resolveColors maps each palette index to its colour.
func resolveColors(indices []uint8, palette codec.Palette, dst []codec.RGB) error {
	const op = "gif: color resolution"
	if len(palette) == 0 {
		return codec.Errorf(codec.CorruptData, op, "frame has no local or global color table")
	}
	for i, idx := range indices {
		if int(idx) >= len(palette) {
			return codec.Errorf(codec.CorruptData, op, "index %d at pixel %d outside a %d entry table", idx, i, len(palette))
		}
		dst[i] = palette[idx]
	}
	return nil
}
