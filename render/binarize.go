package render

import (
	"image"
	"image/color"

	"oledbmp/okcolor"

	"github.com/makeworld-the-better-one/dither/v2"
	"golang.org/x/image/draw"
)

var blackWhite = color.Palette{color.Black, color.White}

// Binarize reduces img to pure black and white, either by Floyd-Steinberg
// dithering or by cutting at an OKLab lightness threshold. Transparent areas
// are composited over white first.
func Binarize(img image.Image, useDither bool, threshold float64) *image.Paletted {
	flat := flatten(img)

	if useDither {
		ditherer := dither.NewDitherer(blackWhite)
		ditherer.Matrix = dither.FloydSteinberg
		ditherer.Serpentine = true
		return ditherer.DitherPaletted(flat)
	}

	b := flat.Bounds()
	dest := image.NewPaletted(b, blackWhite)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if okcolor.Lightness(flat.RGBA64At(x, y)) >= threshold {
				dest.SetColorIndex(x, y, 1)
			}
		}
	}
	return dest
}

func flatten(img image.Image) *image.RGBA64 {
	b := img.Bounds()
	dest := image.NewRGBA64(b)
	draw.Draw(dest, b, image.White, image.Point{}, draw.Src)
	draw.Draw(dest, b, img, b.Min, draw.Over)
	return dest
}
