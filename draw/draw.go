// Package draw implements the generic drawing primitives used on frame buffer
// surfaces: rectangle fill, area copy and image blit.
//
// Images that know how to do a primitive on their own memory (see [Filler] and
// [Copier]) are handed the work directly, anything else goes through
// golang.org/x/image/draw.
package draw

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Drawer is an alias for [golang.org/x/image/draw.Drawer].
type Drawer = xdraw.Drawer

// Image is an alias for [golang.org/x/image/draw.Image].
type Image = xdraw.Image

// Op is an alias for [golang.org/x/image/draw.Op].
type Op = xdraw.Op

const (
	// Over specifies ``(src in mask) over dst''.
	Over = xdraw.Over

	// Src specifies ``src in mask''.
	Src = xdraw.Src
)

// Filler is an image that fills rectangles itself.
type Filler interface {
	FillRect(r image.Rectangle, c color.Color)
}

// Copier is an image that copies areas within itself.
type Copier interface {
	CopyRect(dp image.Point, sr image.Rectangle)
}

// Draw calls [DrawMask] with a nil mask.
func Draw(dst Image, r image.Rectangle, src image.Image, sp image.Point, op Op) {
	DrawMask(dst, r, src, sp, nil, image.Point{}, op)
}

// DrawMask aligns r.Min in dst with sp in src and mp in mask and then replaces the rectangle r
// in dst with the result of a Porter-Duff composition. A nil mask is treated as opaque.
func DrawMask(dst Image, r image.Rectangle, src image.Image, sp image.Point, mask image.Image, mp image.Point, op Op) {
	xdraw.DrawMask(dst, r, src, sp, mask, mp, op)
}

// Fill replaces the pixels in r with c.
func Fill(dst Image, r image.Rectangle, c color.Color) {
	if f, ok := dst.(Filler); ok {
		f.FillRect(r, c)
		return
	}
	xdraw.Draw(dst, r, image.NewUniform(c), image.Point{}, xdraw.Src)
}

// Copy copies the area sr of dst to dp. The areas may overlap.
func Copy(dst Image, dp image.Point, sr image.Rectangle) {
	if c, ok := dst.(Copier); ok {
		c.CopyRect(dp, sr)
		return
	}
	xdraw.Copy(dst, dp, dst, sr, xdraw.Src, nil)
}

// Blit copies src, starting at sp, into r of dst.
func Blit(dst Image, r image.Rectangle, src image.Image, sp image.Point) {
	xdraw.Draw(dst, r, src, sp, xdraw.Src)
}

// Rectangle draws the outline of r, one pixel wide.
func Rectangle(dst Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	Fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	Fill(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	Fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	Fill(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}
