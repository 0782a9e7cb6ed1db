package pixel

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestRGB888Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewRGB888Image(size.X, size.Y)
	}, RGB888Model)
}

func TestWrapRGB888Image(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		// Wider stride than needed, like a virtual resolution larger than the visible one.
		stride := size.X*3 + 6
		return WrapRGB888Image(make([]byte, stride*size.Y), size.X, size.Y, stride)
	}, RGB888Model)
}

func TestRGB888ImageLayout(t *testing.T) {
	i := NewRGB888Image(4, 2)
	i.Set(1, 1, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff})
	if o := i.PixOffset(1, 1); o != 15 {
		t.Fatalf("expected offset 15, got %d", o)
	}
	if v := i.Pix[15:18]; v[0] != 0x11 || v[1] != 0x22 || v[2] != 0x33 {
		t.Errorf("expected bytes R, G, B, got % x", v)
	}

	i.SetPacked(0, 0, 0xa1b2c3)
	if v := i.Pix[0:3]; v[0] != 0xa1 || v[1] != 0xb2 || v[2] != 0xc3 {
		t.Errorf("expected packed value stored R, G, B, got % x", v)
	}
}

func TestRGB888ImageFillRect(t *testing.T) {
	i := NewRGB888Image(8, 8)
	red := RGB888{R: 0xff}
	i.FillRect(image.Rect(2, 2, 4, 4), red)
	i.FillRect(image.Rect(6, 6, 20, 20), red) // clipped

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			in := image.Pt(x, y).In(image.Rect(2, 2, 4, 4)) || image.Pt(x, y).In(image.Rect(6, 6, 8, 8))
			if v := i.RGB888At(x, y); (v == red) != in {
				t.Errorf("pixel (%d,%d) is %v, filled=%t", x, y, v, in)
			}
		}
	}
}

func TestRGB888ImageCopyRect(t *testing.T) {
	tests := []struct {
		name string
		dp   image.Point
		sr   image.Rectangle
	}{
		{"disjoint", image.Pt(8, 8), image.Rect(0, 0, 4, 4)},
		{"overlap down", image.Pt(1, 2), image.Rect(0, 0, 6, 6)},
		{"overlap up", image.Pt(0, 0), image.Rect(2, 3, 8, 9)},
		{"overlap right", image.Pt(3, 0), image.Rect(0, 0, 8, 4)},
		{"overlap left", image.Pt(0, 5), image.Rect(3, 5, 10, 9)},
	}
	for _, test := range tests {
		t.Run(test.name, func(it *testing.T) {
			i := NewRGB888Image(12, 12)
			for y := 0; y < 12; y++ {
				for x := 0; x < 12; x++ {
					i.SetRGB888(x, y, RGB888{R: uint8(x), G: uint8(y), B: 0x80})
				}
			}
			want := NewRGB888Image(12, 12)
			copy(want.Pix, i.Pix)
			for y := 0; y < test.sr.Dy(); y++ {
				for x := 0; x < test.sr.Dx(); x++ {
					want.SetRGB888(test.dp.X+x, test.dp.Y+y, i.RGB888At(test.sr.Min.X+x, test.sr.Min.Y+y))
				}
			}

			i.CopyRect(test.dp, test.sr)
			for y := 0; y < 12; y++ {
				for x := 0; x < 12; x++ {
					if v, w := i.RGB888At(x, y), want.RGB888At(x, y); v != w {
						it.Fatalf("pixel (%d,%d) is %v, expected %v", x, y, v, w)
					}
				}
			}
		})
	}
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(256, 32),
		image.Pt(80, 48),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 || x >= test.X || y >= test.Y {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.ColorModel().Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						return
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := RGB888Model.Convert(i.At(x, y)); v != (RGB888{}) {
						itt.Fatalf("pixel (%d,%d) is not black", x, y)
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
