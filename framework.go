package lcdfb

import (
	"image"
	"image/color"

	"github.com/BeatGlow/lcdfb/pixel"
)

// Framework is the graphics framework a Driver registers its Surface with.
type Framework interface {
	// AllocColormap allocates a colormap of n entries for the surface.
	AllocColormap(s *Surface, n int) error

	// DeallocColormap releases the colormap.
	DeallocColormap(s *Surface)

	// Register makes the surface available to clients.
	Register(s *Surface) error

	// Unregister withdraws the surface.
	Unregister(s *Surface)

	// ConsoleActive reports whether a console or boot logo is drawing to the
	// surface, in which case the display stays lit until the driver powers it down.
	ConsoleActive() bool
}

// Ops are the driver entry points called by the framework.
type Ops interface {
	// SetColReg sets pseudo palette entry regno.
	SetColReg(regno int, red, green, blue, transp uint16) error

	// Blank changes the display power state.
	Blank(mode BlankMode) error

	// FillRect fills r with c.
	FillRect(r image.Rectangle, c color.Color)

	// CopyArea copies the area sr to dp.
	CopyArea(dp image.Point, sr image.Rectangle)

	// ImageBlit draws src with its bounds' top left corner at dp.
	ImageBlit(dp image.Point, src image.Image)
}

// ColormapLen is the number of colormap entries requested from the framework, one
// per pseudo palette entry.
const ColormapLen = pixel.PaletteSize
