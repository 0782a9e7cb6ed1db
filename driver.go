package lcdfb

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"

	"periph.io/x/conn/v3/display"

	"github.com/BeatGlow/lcdfb/conn"
	"github.com/BeatGlow/lcdfb/draw"
	"github.com/BeatGlow/lcdfb/framebuffer"
	"github.com/BeatGlow/lcdfb/pixel"
)

// ErrReleased is returned by calls on a released Driver.
var ErrReleased = errors.New("lcdfb: driver released")

// Resources are supplied by platform discovery.
type Resources struct {
	// Memory maps the registers and provides the frame buffer.
	Memory conn.Memory

	// Registers is the controller register window.
	Registers conn.Resource

	// Config, when set, overrides the configuration passed to Assign.
	Config *Config
}

// Driver is an assigned LCD controller. It owns the register mapping, the frame
// buffer and the pseudo palette until Release.
type Driver struct {
	fw       Framework
	config   Config
	regs     *Registers
	panel    *Panel
	fb       framebuffer.Region
	palette  *pixel.Palette
	surface  *Surface
	released bool
}

// Assign brings up the controller and registers its surface with fw.
//
// The steps are: map registers, acquire the frame buffer, point FRAME_POINTER at
// it, enable the display, allocate the colormap and register. When a step fails,
// everything done before it is undone in reverse order and the error is returned.
func Assign(res Resources, fw Framework, cfg Config) (d *Driver, err error) {
	if res.Config != nil {
		cfg = *res.Config
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	var undo []func()
	defer func() {
		if err != nil {
			for i := len(undo) - 1; i >= 0; i-- {
				undo[i]()
			}
		}
	}()

	regs, err := MapRegisters(res.Memory, res.Registers)
	if err != nil {
		return nil, err
	}
	undo = append(undo, func() { logError("unmap registers", regs.Close()) })

	fb, err := framebuffer.Acquire(res.Memory, cfg.frameBuffer())
	if err != nil {
		return nil, err
	}
	undo = append(undo, func() { logError("release frame buffer", framebuffer.Release(fb)) })

	if fb.PhysAddr() > math.MaxUint32 {
		return nil, fmt.Errorf("%w: frame buffer at %#x is out of the controller's 32-bit reach", ErrMapFailed, fb.PhysAddr())
	}

	panel := NewPanel(regs)
	regs.Write(FramePointer, uint32(fb.PhysAddr()))
	panel.Unblank()
	undo = append(undo, func() { _ = panel.Blank(BlankPowerDown) })

	drv := &Driver{
		fw:      fw,
		config:  cfg,
		regs:    regs,
		panel:   panel,
		fb:      fb,
		palette: new(pixel.Palette),
	}
	surface := newSurface(cfg, regs, res.Registers.Len, fb.Bytes(), fb.PhysAddr(), drv.palette, drv)
	drv.surface = surface

	if err = fw.AllocColormap(surface, ColormapLen); err != nil {
		return nil, fmt.Errorf("%w: colormap: %w", ErrOutOfMemory, err)
	}
	undo = append(undo, func() { fw.DeallocColormap(surface) })

	if err = fw.Register(surface); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	if debug {
		log.Printf("lcdfb: %s, %s frame buffer at %#x, %s", cfg, fb.Ownership(), fb.PhysAddr(), regs)
	}
	return drv, nil
}

// Release unregisters the surface, powers the display down and gives back all
// memory. Failures are logged, not returned. Calling Release again does nothing.
func (d *Driver) Release() {
	if d.released {
		return
	}
	d.released = true

	if !d.fw.ConsoleActive() {
		_ = d.panel.Blank(BlankPowerDown)
	}
	d.fw.Unregister(d.surface)
	d.fw.DeallocColormap(d.surface)

	// Stop scan out before the memory goes away.
	_ = d.panel.Blank(BlankPowerDown)
	logError("release frame buffer", framebuffer.Release(d.fb))
	d.palette.Reset()
	d.surface.Pix = nil
	d.surface.Image = nil
	logError("unmap registers", d.regs.Close())

	if debug {
		log.Printf("lcdfb: released %s", d.config)
	}
}

func logError(what string, err error) {
	if err != nil {
		log.Printf("lcdfb: %s: %v", what, err)
	}
}

// Surface returns the descriptor registered with the framework.
func (d *Driver) Surface() *Surface { return d.surface }

// Config returns the configuration in use.
func (d *Driver) Config() Config { return d.config }

// Registers returns the controller registers.
func (d *Driver) Registers() *Registers { return d.regs }

// FrameBuffer returns the frame buffer region.
func (d *Driver) FrameBuffer() framebuffer.Region { return d.fb }

// Palette returns the pseudo palette.
func (d *Driver) Palette() *pixel.Palette { return d.palette }

// State returns the display state.
func (d *Driver) State() State { return d.panel.State() }

// SetColReg sets pseudo palette entry regno, in gray when the surface is in
// grayscale mode.
func (d *Driver) SetColReg(regno int, red, green, blue, transp uint16) error {
	if d.released {
		return ErrReleased
	}
	_, err := d.palette.Set(regno, red, green, blue, transp, d.surface.Var.Grayscale != 0)
	return err
}

// Blank changes the display power state.
func (d *Driver) Blank(mode BlankMode) error {
	if d.released {
		return ErrReleased
	}
	return d.panel.Blank(mode)
}

func (d *Driver) FillRect(r image.Rectangle, c color.Color) {
	if d.released {
		return
	}
	draw.Fill(d.surface.Image, r, c)
}

func (d *Driver) CopyArea(dp image.Point, sr image.Rectangle) {
	if d.released {
		return
	}
	draw.Copy(d.surface.Image, dp, sr)
}

func (d *Driver) ImageBlit(dp image.Point, src image.Image) {
	if d.released {
		return
	}
	b := src.Bounds()
	draw.Blit(d.surface.Image, image.Rectangle{Min: dp, Max: dp.Add(b.Size())}, src, b.Min)
}

// Draw implements periph's display.Drawer.
func (d *Driver) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	if d.released {
		return ErrReleased
	}
	draw.Blit(d.surface.Image, dstRect, src, sp)
	return nil
}

// Bounds is the visible area.
func (d *Driver) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.config.XRes, d.config.YRes)
}

func (d *Driver) ColorModel() color.Model {
	return pixel.RGB888Model
}

// Halt powers the display down.
func (d *Driver) Halt() error {
	return d.Blank(BlankPowerDown)
}

func (d *Driver) String() string {
	return fmt.Sprintf("LCDC %dx%d at %#x", d.config.XRes, d.config.YRes, d.regs.PhysAddr())
}

// Interface checks.
var (
	_ Ops            = (*Driver)(nil)
	_ display.Drawer = (*Driver)(nil)
)
