// Package pixel implements the packed 24-bit RGB color model used by the LCD controller,
// an image type that draws directly into frame buffer memory and the 16-entry pseudo
// palette.
//
// The types are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces.
package pixel
