package draw

import (
	"image"
	"image/color"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	defaultFontOnce sync.Once
	defaultFont     *truetype.Font
	defaultFontErr  error
)

// DefaultFont returns the Go Regular font.
func DefaultFont() (*truetype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = freetype.ParseFont(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// Text draws s with its top left corner at pt, using the default font at size points
// (72 DPI, so points are pixels). It returns the point where the next glyph would go.
func Text(dst Image, pt image.Point, size float64, s string, c color.Color) (image.Point, error) {
	f, err := DefaultFont()
	if err != nil {
		return pt, err
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))

	// freetype positions on the baseline.
	dot := freetype.Pt(pt.X, pt.Y+int(ctx.PointToFixed(size)>>6))
	end, err := ctx.DrawString(s, dot)
	if err != nil {
		return pt, err
	}
	return image.Pt(end.X.Round(), pt.Y), nil
}
