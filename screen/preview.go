package screen

import (
	"image"
	"image/color"
	"math"
)

const MinPreviewScale = 4

// RenderPreview draws every source pixel as a lit LED of scale x scale
// pixels: a bright centre falling off towards dark gaps between LEDs, with a
// little light bleeding in from the horizontal neighbours.
func RenderPreview(src image.Image, scale int) *image.RGBA {
	if scale < MinPreviewScale {
		scale = MinPreviewScale
	}
	srcRect := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, srcRect.Dx()*scale, srcRect.Dy()*scale))
	center := float64(scale-1) / 2

	for sy, dy := srcRect.Min.Y, 0; sy < srcRect.Max.Y; sy, dy = sy+1, dy+scale {
		for sx, dx := srcRect.Min.X, 0; sx < srcRect.Max.X; sx, dx = sx+1, dx+scale {
			lc := src.At(clamp(sx-1, srcRect.Min.X, srcRect.Max.X), sy)
			c := src.At(sx, sy)
			rc := src.At(clamp(sx+1, srcRect.Min.X, srcRect.Max.X), sy)

			if isBlack(c) && isBlack(lc) && isBlack(rc) {
				continue
			}

			for i := 0; i < scale*scale; i++ {
				ix, iy := i%scale, i/scale
				fx := (float64(ix) - center) / float64(scale)
				fy := (float64(iy) - center) / float64(scale)
				co := c

				// Falloff, d runs from 0 at the centre to ~0.7 in the corners.
				d := math.Hypot(fx, fy)
				switch {
				case d < 0.15:
					co = lighten(co, 0.1)
				case d > 0.45:
					co = darken(co, 1)
				default:
					co = darken(co, (d-0.15)*1.5)
				}

				// Bleed
				switch {
				case fx < 0:
					co = rgbMix(co, lc, -fx/2)
				case fx > 0:
					co = rgbMix(co, rc, fx/2)
				}

				dst.Set(dx+ix, dy+iy, co)
			}
		}
	}

	return dst
}

func isBlack(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r|g|b == 0
}
