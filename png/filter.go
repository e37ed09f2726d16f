package png

import (
	"github.com/32bitkid/pixelbox/codec"
)

type FilterType uint8

const (
	FilterNone FilterType = iota
	FilterSub
	FilterUp
	FilterAverage
	FilterPaeth
)

func (f FilterType) String() string {
	switch f {
	case FilterNone:
		return "Filter(None)"
	case FilterSub:
		return "Filter(Sub)"
	case FilterUp:
		return "Filter(Up)"
	case FilterAverage:
		return "Filter(Average)"
	case FilterPaeth:
		return "Filter(Paeth)"
	}
	return "Filter(Unknown)"
}

// Paeth returns whichever of left, up and upper-left is closest to
// left+up-upperLeft, preferring them in that order on ties.
func Paeth(left, up, upperLeft uint8) uint8 {
	a, b, c := int(left), int(up), int(upperLeft)
	p := a + b - c
	pa, pb, pc := abs(p-a), abs(p-b), abs(p-c)
	switch {
	case pa <= pb && pa <= pc:
		return left
	case pb <= pc:
		return up
	default:
		return upperLeft
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Defilter reconstructs inflated scanlines in place. buf holds height rows,
// each a filter type byte followed by stride bytes. Rows are processed top to
// bottom so that every row reads the already reconstructed row above it.
// Arithmetic wraps modulo 256.
func Defilter(buf []byte, height, stride, pixelSize int) error {
	const op = "png: defilter"
	if expected := height * (stride + 1); len(buf) != expected {
		return codec.Errorf(codec.CorruptData, op, "scanline data expected(%d) != actual(%d)", expected, len(buf))
	}

	// The row above the first is all zeros.
	prev := make([]byte, stride)
	for y := 0; y < height; y++ {
		row := buf[y*(stride+1) : (y+1)*(stride+1)]
		filter, line := FilterType(row[0]), row[1:]

		switch filter {
		case FilterNone:
		case FilterSub:
			for i := pixelSize; i < stride; i++ {
				line[i] += line[i-pixelSize]
			}
		case FilterUp:
			for i := 0; i < stride; i++ {
				line[i] += prev[i]
			}
		case FilterAverage:
			for i := 0; i < pixelSize && i < stride; i++ {
				line[i] += prev[i] / 2
			}
			for i := pixelSize; i < stride; i++ {
				line[i] += uint8((int(line[i-pixelSize]) + int(prev[i])) / 2)
			}
		case FilterPaeth:
			for i := 0; i < pixelSize && i < stride; i++ {
				line[i] += Paeth(0, prev[i], 0)
			}
			for i := pixelSize; i < stride; i++ {
				line[i] += Paeth(line[i-pixelSize], prev[i], prev[i-pixelSize])
			}
		default:
			return codec.Errorf(codec.CorruptData, op, "unknown filter type %d on row %d", row[0], y)
		}

		prev = line
	}
	return nil
}
