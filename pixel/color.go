package pixel

import "image/color"

// RGB888Model is the color model of packed 24-bit RGB pixels.
var RGB888Model color.Model = color.ModelFunc(rgb888Model)

// RGB888 represents a 24-bit 8-8-8 RGB color.
type RGB888 struct {
	R, G, B uint8
}

func (c RGB888) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Packed returns the color as a 24-bit value, red in bits 16-23, green in 8-15 and
// blue in 0-7.
func (c RGB888) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Unpack a 24-bit value as returned by [RGB888.Packed].
func Unpack(v uint32) RGB888 {
	return RGB888{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}
}

func rgb888Model(c color.Color) color.Color {
	if _, ok := c.(RGB888); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return RGB888{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}
