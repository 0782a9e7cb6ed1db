package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"time"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/lcdfb"
	"github.com/BeatGlow/lcdfb/conn"
	"github.com/BeatGlow/lcdfb/draw"
	"github.com/BeatGlow/lcdfb/pixel"
)

// console is a stand-in graphics framework that only reports what the driver asks of it.
type console struct {
	keep bool
}

func (console) AllocColormap(s *lcdfb.Surface, n int) error {
	fmt.Printf("colormap: %d entries\n", n)
	return nil
}

func (console) DeallocColormap(*lcdfb.Surface) {}

func (console) Register(s *lcdfb.Surface) error {
	fmt.Printf("registered %s: %dx%d, %d bpp, %d bytes per line, frame buffer at %#x\n",
		lcdfb.ID, s.Var.Xres, s.Var.Yres, s.Var.BitsPerPixel, s.Fix.LineLength, s.Fix.SmemStart)
	return nil
}

func (console) Unregister(*lcdfb.Surface) {
	fmt.Println("unregistered")
}

func (c console) ConsoleActive() bool { return c.keep }

func main() {
	defaults := lcdfb.DefaultConfig()
	regsFlag := flag.Uint64("regs", 0x43c00000, "Controller register base address")
	regsLenFlag := flag.Int("regs-len", 0x1000, "Controller register window size")
	fbAddrFlag := flag.Uint64("fb-addr", 0, "Fixed frame buffer address (default: allocate)")
	xresFlag := flag.Int("xres", defaults.XRes, "Visible width")
	yresFlag := flag.Int("yres", defaults.YRes, "Visible height")
	xvirtFlag := flag.Int("xvirt", 0, "Virtual width (default: visible width)")
	yvirtFlag := flag.Int("yvirt", 0, "Virtual height (default: visible height)")
	widthFlag := flag.Int("width-mm", 108, "Physical width in mm")
	heightFlag := flag.Int("height-mm", 65, "Physical height in mm")
	grayFlag := flag.Bool("gray", false, "Use a grayscale pseudo palette")
	keepFlag := flag.Bool("keep-console", false, "Leave the display lit on exit")
	flag.Parse()

	if _, err := host.Init(); err != nil {
		fatal(err)
	}

	config := lcdfb.Config{
		PhysicalWidth:  physic.Distance(*widthFlag) * physic.MilliMetre,
		PhysicalHeight: physic.Distance(*heightFlag) * physic.MilliMetre,
		XRes:           *xresFlag,
		YRes:           *yresFlag,
		XResVirtual:    *xvirtFlag,
		YResVirtual:    *yvirtFlag,
		PhysAddr:       *fbAddrFlag,
	}
	if config.XResVirtual == 0 {
		config.XResVirtual = config.XRes
	}
	if config.YResVirtual == 0 {
		config.YResVirtual = config.YRes
	}

	output, err := lcdfb.Assign(lcdfb.Resources{
		Memory:    conn.Host{},
		Registers: conn.Resource{Start: *regsFlag, Len: *regsLenFlag},
	}, console{keep: *keepFlag}, config)
	if err != nil {
		fatal(err)
	}
	defer output.Release()
	fmt.Printf("using driver: %s, frame buffer %s\n", output, output.FrameBuffer().Ownership())

	if *grayFlag {
		output.Surface().Var.Grayscale = 1
	}
	for i, v := range []uint32{
		0x000000, 0xaa0000, 0x00aa00, 0xaa5500, 0x0000aa, 0xaa00aa, 0x00aaaa, 0xaaaaaa,
		0x555555, 0xff5555, 0x55ff55, 0xffff55, 0x5555ff, 0xff55ff, 0x55ffff, 0xffffff,
	} {
		r, g, b, _ := pixel.Unpack(v).RGBA()
		if err = output.SetColReg(i, uint16(r), uint16(g), uint16(b), 0xffff); err != nil {
			output.Release()
			fatal(err)
		}
	}

	var (
		r       = output.Bounds()
		palette = output.Palette()
		swatch  = r.Dx() / pixel.PaletteSize
	)

	// Palette strip along the bottom edge
	for i := 0; i < pixel.PaletteSize; i++ {
		output.FillRect(image.Rect(i*swatch, r.Max.Y-24, (i+1)*swatch, r.Max.Y-1), palette.At(i))
	}
	draw.Rectangle(output.Surface().Image, r, pixel.RGB888{R: 0xff, G: 0xff, B: 0xff})
	if _, err = draw.Text(output.Surface().Image, image.Pt(8, 8), 24, output.String(), palette.At(15)); err != nil {
		output.Release()
		fatal(err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	var (
		offset int
		ticker = time.NewTicker(50 * time.Millisecond)
		area   = image.Rect(1, 40, r.Max.X-1, r.Max.Y-25)
	)
	defer ticker.Stop()

	fmt.Println("hit control-c to stop...")
	for {
		// Draw gradient inside box
		for y := area.Min.Y; y < area.Max.Y; y++ {
			for x := area.Min.X; x < area.Max.X; x++ {
				output.Surface().Image.SetRGB888(x, y, pixel.RGB888{
					R: uint8(x + y + offset),
					G: uint8(x - y + offset),
					B: uint8(x + y - offset),
				})
			}
		}
		offset++

		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
