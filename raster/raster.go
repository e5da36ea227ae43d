package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Raster is a read-only binary pixel source. Coordinates are zero based with
// (0, 0) at the top-left corner.
type Raster interface {
	Width() int
	Height() int
	Ink(x, y int) bool
}

// InkFunc decides whether a pixel counts as set in the packed output.
type InkFunc func(color.Color) bool

// Black matches pure black on the RGB channels, alpha ignored.
var Black = ExactRGB(color.Black)

// ExactRGB returns an InkFunc matching c exactly on the straight RGB channels.
func ExactRGB(c color.Color) InkFunc {
	tr, tg, tb := straightRGB(c)
	return func(p color.Color) bool {
		r, g, b := straightRGB(p)
		return r == tr && g == tg && b == tb
	}
}

// straightRGB returns the 16-bit non premultiplied RGB channels of c, so a
// transparent white pixel is still white.
func straightRGB(c color.Color) (uint32, uint32, uint32) {
	switch nc := c.(type) {
	case color.NRGBA:
		return uint32(nc.R) * 0x101, uint32(nc.G) * 0x101, uint32(nc.B) * 0x101
	case color.NRGBA64:
		return uint32(nc.R), uint32(nc.G), uint32(nc.B)
	}

	r, g, b, a := c.RGBA()
	if a == 0 || a == 0xFFFF {
		return r, g, b
	}
	return r * 0xFFFF / a, g * 0xFFFF / a, b * 0xFFFF / a
}

type imageRaster struct {
	img image.Image
	min image.Point
	w   int
	h   int
	ink InkFunc
}

// FromImage adapts img to a Raster. A nil ink defaults to Black.
func FromImage(img image.Image, ink InkFunc) Raster {
	if ink == nil {
		ink = Black
	}
	b := img.Bounds()
	return &imageRaster{
		img: img,
		min: b.Min,
		w:   b.Dx(),
		h:   b.Dy(),
		ink: ink,
	}
}

func (r *imageRaster) Width() int  { return r.w }
func (r *imageRaster) Height() int { return r.h }

func (r *imageRaster) Ink(x, y int) bool {
	return r.ink(r.img.At(r.min.X+x, r.min.Y+y))
}

func (r *imageRaster) String() string {
	return fmt.Sprintf("ImageRaster(%d,%d)", r.w, r.h)
}
