package pixel

import (
	"errors"
	"fmt"
)

// PaletteSize is the number of pseudo palette entries.
const PaletteSize = 16

// ErrIndexOutOfRange is returned for palette indices outside [0, PaletteSize).
var ErrIndexOutOfRange = errors.New("pixel: palette index out of range")

// Palette is a pseudo palette: packed truecolor values looked up by color index,
// for console rendering on a truecolor surface. It is not a hardware palette.
type Palette [PaletteSize]uint32

// Set converts a color and stores it at index, returning the packed value.
//
// The components are 16 bits wide and reduced to their top 8 bits. With grayscale
// set, all three channels are replaced by the luma (0.30, 0.59, 0.11 weights in 8-bit
// fixed point) before the reduction. Transparency is accepted and ignored.
func (p *Palette) Set(index int, red, green, blue, transp uint16, grayscale bool) (uint32, error) {
	if index < 0 || index >= PaletteSize {
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	if grayscale {
		y := uint16((uint32(red)*77 + uint32(green)*151 + uint32(blue)*28 + 127) >> 8)
		red, green, blue = y, y, y
	}

	v := uint32(red>>8)<<16 | uint32(green>>8)<<8 | uint32(blue>>8)
	p[index] = v
	return v, nil
}

// At returns the color at index, black if index is out of range.
func (p *Palette) At(index int) RGB888 {
	if index < 0 || index >= PaletteSize {
		return RGB888{}
	}
	return Unpack(p[index])
}

// Reset zeroes all entries.
func (p *Palette) Reset() {
	*p = Palette{}
}
