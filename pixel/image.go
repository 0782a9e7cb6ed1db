package pixel

import (
	"image"
	"image/color"

	"github.com/BeatGlow/lcdfb/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	clear(p.Pix)
}

// RGB888Image is a 24-bits per pixel 8-8-8-bit RGB image, stored R, G, B per pixel.
type RGB888Image struct {
	Buffer
}

func NewRGB888Image(w, h int) *RGB888Image {
	return &RGB888Image{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    make([]byte, w*3*h),
			Stride: w * 3,
		},
	}
}

// WrapRGB888Image uses pix as the backing store of a w×h image. The memory is shared,
// not copied, which is how frame buffer memory is drawn to.
func WrapRGB888Image(pix []byte, w, h, stride int) *RGB888Image {
	return &RGB888Image{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    pix,
			Stride: stride,
		},
	}
}

func (p *RGB888Image) ColorModel() color.Model {
	return RGB888Model
}

// PixOffset returns the index of the first element of Pix that corresponds to the pixel at (x, y).
func (p *RGB888Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *RGB888Image) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.RGB888At(x, y)
}

func (p *RGB888Image) RGB888At(x, y int) RGB888 {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return RGB888{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	return RGB888{R: s[0], G: s[1], B: s[2]}
}

func (p *RGB888Image) Set(x, y int, c color.Color) {
	p.SetRGB888(x, y, rgb888Model(c).(RGB888))
}

func (p *RGB888Image) SetRGB888(x, y int, c RGB888) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
}

// SetPacked sets the pixel at (x, y) to a packed 24-bit value, such as a pseudo
// palette entry.
func (p *RGB888Image) SetPacked(x, y int, v uint32) {
	p.SetRGB888(x, y, Unpack(v))
}

func (p *RGB888Image) Fill(c color.Color) {
	p.FillRect(p.Rect, c)
}

// FillRect fills r, clipped to the image bounds, with a single color.
func (p *RGB888Image) FillRect(r image.Rectangle, c color.Color) {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return
	}

	v := rgb888Model(c).(RGB888)
	row := make([]byte, r.Dx()*3)
	for i := 0; i < len(row); i += 3 {
		row[i+0] = v.R
		row[i+1] = v.G
		row[i+2] = v.B
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		copy(p.Pix[p.PixOffset(r.Min.X, y):], row)
	}
}

// CopyRect copies the pixels in sr to the rectangle of the same size at dp. Both
// rectangles are clipped to the image bounds and may overlap.
func (p *RGB888Image) CopyRect(dp image.Point, sr image.Rectangle) {
	delta := dp.Sub(sr.Min)
	dr := sr.Add(delta).Intersect(p.Rect)
	sr = dr.Sub(delta).Intersect(p.Rect)
	if sr.Empty() {
		return
	}
	dr = sr.Add(delta)

	n := sr.Dx() * 3
	if dr.Min.Y > sr.Min.Y {
		// Destination below source: go bottom up so rows are read before they are overwritten.
		for y := sr.Dy() - 1; y >= 0; y-- {
			s := p.PixOffset(sr.Min.X, sr.Min.Y+y)
			d := p.PixOffset(dr.Min.X, dr.Min.Y+y)
			copy(p.Pix[d:d+n], p.Pix[s:s+n])
		}
		return
	}
	for y := 0; y < sr.Dy(); y++ {
		s := p.PixOffset(sr.Min.X, sr.Min.Y+y)
		d := p.PixOffset(dr.Min.X, dr.Min.Y+y)
		copy(p.Pix[d:d+n], p.Pix[s:s+n])
	}
}

// Interface checks.
var (
	_ Image = (*RGB888Image)(nil)
)
