package lightbox

import "image"

/*
Render composites one source frame onto the layout and returns the strand
buffer: three bytes per physical pixel, in strand order, brightness-scaled
and gamma-corrected.

The frame is placed with its top-left corner at offset, which may be
negative or hang past the layout on any side. Content that falls outside
the layout is dropped. Uncovered pixels and fully transparent source
pixels show bg, which is scaled by brightness once, up front, so the
background matches the brightness of composited content. Partially
transparent pixels are premultiplied by their alpha with an integer
shift; fully opaque pixels pass through untouched. Every covered pixel is
then brightness-scaled and corrected through the layout's gamma table.

Writes happen in row-major order, y then x, so when a layout maps two
coordinates to one strand position the later coordinate wins.
*/
func Render(l Layout, f Frame, offset image.Point, bg Color, brightness uint8) ([]byte, error) {
	if f.Image == nil || f.Image.Bounds().Dx() == 0 || f.Image.Bounds().Dy() == 0 {
		return nil, ErrInvalidFrame
	}

	lw, lh := l.Size()
	gamma := l.Gamma()
	buf := make([]byte, 3*l.PixelCount())

	bg = bg.Scale(brightness)
	if bg != Off {
		for y := 0; y < lh; y++ {
			for x := 0; x < lw; x++ {
				if i, ok := l.PixelIndex(x, y); ok {
					buf[3*i+0] = gamma[bg.R]
					buf[3*i+1] = gamma[bg.G]
					buf[3*i+2] = gamma[bg.B]
				}
			}
		}
	}

	w := lw - offset.X
	if fw := f.Image.Bounds().Dx(); fw < w {
		w = fw
	}
	h := lh - offset.Y
	if fh := f.Image.Bounds().Dy(); fh < h {
		h = fh
	}

	for y := offset.Y; y < offset.Y+h; y++ {
		if y < 0 {
			continue
		}
		for x := offset.X; x < offset.X+w; x++ {
			if x < 0 {
				continue
			}
			i, ok := l.PixelIndex(x, y)
			if !ok {
				continue
			}
			s := f.Image.NRGBAAt(x-offset.X, y-offset.Y)

			var c Color
			switch s.A {
			case 0:
				// Fully transparent pixels show the background exactly,
				// whatever their color samples hold.
				c = bg
			case 255:
				c = Color{R: s.R, G: s.G, B: s.B}.Scale(brightness)
			default:
				c = Color{
					R: uint8(int(s.R) * int(s.A) >> 8),
					G: uint8(int(s.G) * int(s.A) >> 8),
					B: uint8(int(s.B) * int(s.A) >> 8),
				}
				c = c.Scale(brightness)
			}
			buf[3*i+0] = gamma[c.R]
			buf[3*i+1] = gamma[c.G]
			buf[3*i+2] = gamma[c.B]
		}
	}
	return buf, nil
}
