package lcdfb

import (
	"errors"
	"image/color"

	"github.com/BeatGlow/lcdfb/pixel"
)

// From <linux/fb.h>
const (
	fbTypePackedPixels   = 0
	fbVisualTrueColor    = 2
	fbAccelNone          = 0
	fbActivateNow        = 0
	fbVModeNonInterlaced = 0
)

// Depth is the only supported pixel depth.
const Depth = 24

// ID is the identification string in [FixScreenInfo].
const ID = "LCDC"

// FixScreenInfo contains device independent unchangeable information about a frame
// buffer device, mirroring the Linux fb_fix_screeninfo.
type FixScreenInfo struct {
	ID         [16]byte // Identification string
	SmemStart  uint64   // Start of frame buffer mem (physical address)
	SmemLen    uint32   // Length of frame buffer mem
	Type       uint32   // FB_TYPE_
	Visual     uint32   // FB_VISUAL_
	LineLength uint32   // Length of a line in bytes
	MmioStart  uint64   // Start of Memory Mapped I/O (physical address)
	MmioLen    uint32   // Length of Memory Mapped I/O
	Accel      uint32   // Type of acceleration available
}

// BitField describes where a color channel lives in a pixel value.
type BitField struct {
	Offset   uint32 // Beginning of bitfield
	Length   uint32 // Length of bitfield
	MsbRight uint32 // != 0 : Most significant bit is right
}

// VarScreenInfo contains the video mode, mirroring the Linux fb_var_screeninfo.
type VarScreenInfo struct {
	Xres                     uint32
	Yres                     uint32
	XresVirtual              uint32
	YresVirtual              uint32
	Xoffset                  uint32
	Yoffset                  uint32
	BitsPerPixel             uint32
	Grayscale                uint32 // != 0 Graylevels instead of colors
	Red, Green, Blue, Transp BitField
	Activate                 uint32
	Height                   uint32 // Height of picture in mm
	Width                    uint32 // Width of picture in mm
	Vmode                    uint32
}

// Surface is the descriptor handed to the graphics framework: geometry, format and
// location of the frame buffer, the pseudo palette and the driver entry points.
type Surface struct {
	Fix FixScreenInfo
	Var VarScreenInfo

	// Pix is the frame buffer memory.
	Pix []byte

	// Image draws to Pix, covering the virtual resolution.
	Image *pixel.RGB888Image

	// PseudoPalette holds the packed values of the 16 console colors.
	PseudoPalette *pixel.Palette

	// Ops are the driver entry points.
	Ops Ops
}

func newSurface(cfg Config, regs *Registers, regsLen int, pix []byte, phys uint64, palette *pixel.Palette, ops Ops) *Surface {
	s := &Surface{
		Fix: FixScreenInfo{
			SmemStart:  phys,
			SmemLen:    uint32(len(pix)),
			Type:       fbTypePackedPixels,
			Visual:     fbVisualTrueColor,
			LineLength: uint32(cfg.Stride()),
			MmioStart:  regs.PhysAddr(),
			MmioLen:    uint32(regsLen),
			Accel:      fbAccelNone,
		},
		Var: VarScreenInfo{
			Xres:         uint32(cfg.XRes),
			Yres:         uint32(cfg.YRes),
			XresVirtual:  uint32(cfg.XResVirtual),
			YresVirtual:  uint32(cfg.YResVirtual),
			BitsPerPixel: Depth,
			Red:          BitField{Offset: 16, Length: 8},
			Green:        BitField{Offset: 8, Length: 8},
			Blue:         BitField{Offset: 0, Length: 8},
			Activate:     fbActivateNow,
			Height:       millimetres(cfg.PhysicalHeight),
			Width:        millimetres(cfg.PhysicalWidth),
			Vmode:        fbVModeNonInterlaced,
		},
		Pix:           pix,
		Image:         pixel.WrapRGB888Image(pix, cfg.XResVirtual, cfg.YResVirtual, cfg.Stride()),
		PseudoPalette: palette,
		Ops:           ops,
	}
	copy(s.Fix.ID[:], ID)
	return s
}

// ColorModel returns the color model described by Var.
func (s *Surface) ColorModel() (color.Model, error) {
	info := &s.Var
	switch info.BitsPerPixel {
	case 24:
		switch {
		case info.Red.Offset == 16 &&
			info.Red.Length == 8 &&
			info.Green.Offset == 8 &&
			info.Green.Length == 8 &&
			info.Blue.Offset == 0 &&
			info.Blue.Length == 8 &&
			info.Transp.Length == 0:
			return pixel.RGB888Model, nil
		}
	}
	return nil, errors.New("lcdfb: unsupported color model")
}
