package lcdfb

import (
	"fmt"

	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/lcdfb/framebuffer"
)

// Config is the display geometry. It is a plain value: to override a field, copy
// [DefaultConfig] and change the copy.
type Config struct {
	// PhysicalWidth and PhysicalHeight are the size of the visible area.
	PhysicalWidth  physic.Distance
	PhysicalHeight physic.Distance

	// XRes and YRes are the visible resolution in pixels.
	XRes int
	YRes int

	// XResVirtual and YResVirtual are the frame buffer resolution in pixels, at
	// least as large as the visible resolution.
	XResVirtual int
	YResVirtual int

	// PhysAddr is the physical address of a platform provided frame buffer. When 0,
	// the frame buffer is allocated.
	PhysAddr uint64
}

// DefaultConfig returns the configuration of the stock 800x480 panel.
func DefaultConfig() Config {
	return Config{
		PhysicalWidth:  108 * physic.MilliMetre,
		PhysicalHeight: 65 * physic.MilliMetre,
		XRes:           800,
		YRes:           480,
		XResVirtual:    800,
		YResVirtual:    480,
	}
}

// Validate checks the geometry.
func (c Config) Validate() error {
	if c.XRes <= 0 || c.YRes <= 0 {
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidConfig, c.XRes, c.YRes)
	}
	if c.XResVirtual < c.XRes || c.YResVirtual < c.YRes {
		return fmt.Errorf("%w: virtual resolution %dx%d smaller than %dx%d", ErrInvalidConfig,
			c.XResVirtual, c.YResVirtual, c.XRes, c.YRes)
	}
	if c.PhysicalWidth < 0 || c.PhysicalHeight < 0 {
		return fmt.Errorf("%w: physical size %sx%s", ErrInvalidConfig, c.PhysicalWidth, c.PhysicalHeight)
	}
	return nil
}

// Stride is the frame buffer line length in bytes.
func (c Config) Stride() int {
	return c.XResVirtual * framebuffer.BytesPerPixel
}

// Size is the frame buffer length in bytes.
func (c Config) Size() int {
	return c.Stride() * c.YResVirtual
}

func (c Config) frameBuffer() framebuffer.Options {
	return framebuffer.Options{
		XResVirtual: c.XResVirtual,
		YResVirtual: c.YResVirtual,
		PhysAddr:    c.PhysAddr,
	}
}

func (c Config) String() string {
	s := fmt.Sprintf("%dx%d (virtual %dx%d, %sx%s)", c.XRes, c.YRes, c.XResVirtual, c.YResVirtual,
		c.PhysicalWidth, c.PhysicalHeight)
	if c.PhysAddr != 0 {
		s += fmt.Sprintf(" at %#x", c.PhysAddr)
	}
	return s
}

func millimetres(d physic.Distance) uint32 {
	return uint32(d / physic.MilliMetre)
}
