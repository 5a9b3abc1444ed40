package lightbox

// Color is an 8-bit RGB triple in strand channel order.
type Color struct {
	R, G, B uint8
}

// Off is the unlit color.
var Off = Color{}

// Scale multiplies each channel by s/255, rounding down. Scaling by 255
// returns c unchanged.
func (c Color) Scale(s uint8) Color {
	if s == 255 {
		return c
	}
	return Color{
		R: uint8(int(c.R) * int(s) / 255),
		G: uint8(int(c.G) * int(s) / 255),
		B: uint8(int(c.B) * int(s) / 255),
	}
}
