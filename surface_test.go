package lcdfb

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/BeatGlow/lcdfb/pixel"
)

func TestSurface(t *testing.T) {
	tb := newTestBed()
	d, err := Assign(tb.resources(), tb, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	defer d.Release()

	s := d.Surface()
	fix, info := s.Fix, s.Var
	if v := fix.SmemStart; v != d.FrameBuffer().PhysAddr() {
		t.Errorf("expected smem_start %#x, got %#x", d.FrameBuffer().PhysAddr(), v)
	}
	if v := fix.SmemLen; v != 1152000 {
		t.Errorf("expected smem_len 1152000, got %d", v)
	}
	if v := fix.LineLength; v != 2400 {
		t.Errorf("expected line_length 2400, got %d", v)
	}
	if v := fix.MmioStart; v != testRegisterBase {
		t.Errorf("expected mmio_start %#x, got %#x", testRegisterBase, v)
	}
	if v := fix.MmioLen; v != 8 {
		t.Errorf("expected mmio_len 8, got %d", v)
	}
	if fix.Type != fbTypePackedPixels || fix.Visual != fbVisualTrueColor {
		t.Errorf("expected packed pixels in true color, got type %d visual %d", fix.Type, fix.Visual)
	}
	if id := fix.ID[:len(ID)]; !bytes.Equal(id, []byte(ID)) {
		t.Errorf("expected id %q, got %q", ID, id)
	}

	if info.Xres != 800 || info.Yres != 480 || info.XresVirtual != 800 || info.YresVirtual != 480 {
		t.Errorf("unexpected resolution %dx%d (%dx%d)", info.Xres, info.Yres, info.XresVirtual, info.YresVirtual)
	}
	if v := info.BitsPerPixel; v != Depth {
		t.Errorf("expected %d bits per pixel, got %d", Depth, v)
	}
	if info.Width != 108 || info.Height != 65 {
		t.Errorf("expected 108x65 mm, got %dx%d mm", info.Width, info.Height)
	}

	if s.PseudoPalette != d.Palette() {
		t.Error("expected the surface to share the driver palette")
	}
	if s.Ops != Ops(d) {
		t.Error("expected the driver as surface ops")
	}
	if len(s.Pix) != d.FrameBuffer().Len() || &s.Pix[0] != &d.FrameBuffer().Bytes()[0] {
		t.Error("expected surface pixels to be the frame buffer")
	}
	if v := s.Image.Bounds(); v != d.Bounds() {
		t.Errorf("expected image bounds %s, got %s", d.Bounds(), v)
	}
}

func TestSurfaceColorModel(t *testing.T) {
	s := &Surface{Var: VarScreenInfo{
		BitsPerPixel: Depth,
		Red:          BitField{Offset: 16, Length: 8},
		Green:        BitField{Offset: 8, Length: 8},
		Blue:         BitField{Offset: 0, Length: 8},
	}}
	m, err := s.ColorModel()
	if err != nil {
		t.Fatal(err)
	}
	if v, ok := m.Convert(color.White).(pixel.RGB888); !ok || v != (pixel.RGB888{R: 0xff, G: 0xff, B: 0xff}) {
		t.Errorf("expected the RGB888 model, got %T converting white to %v", m, v)
	}

	s.Var.Red, s.Var.Blue = s.Var.Blue, s.Var.Red
	if _, err = s.ColorModel(); err == nil {
		t.Error("expected an error for a BGR layout")
	}
	s.Var.BitsPerPixel = 16
	if _, err = s.ColorModel(); err == nil {
		t.Error("expected an error for 16 bits per pixel")
	}
}
