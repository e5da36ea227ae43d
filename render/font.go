// Package render rasterises fonts into glyph strips and prepares arbitrary
// pictures for 1-bit packing.
package render

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"oledbmp/transcode"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

func fontData(name string) ([]byte, error) {
	switch name {
	case "gomono":
		return gomono.TTF, nil
	case "goregular":
		return goregular.TTF, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read font %q: %w", transcode.ErrSourceUnavailable, name, err)
	}
	return data, nil
}

// LoadFace opens a TrueType or OpenType font file, or one of the builtin
// gomono and goregular faces, at the given point size.
func LoadFace(name string, points float64) (font.Face, error) {
	data, err := fontData(name)
	if err != nil {
		return nil, err
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse font %q: %w", transcode.ErrSourceUnavailable, name, err)
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    points,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: could not create font face for %q: %w", transcode.ErrSourceUnavailable, name, err)
	}
	return face, nil
}

// Strip draws each rune of text into its own cellWidth x cellHeight cell,
// black on white, left to right. Glyphs are clipped to their cell. A zero
// baseline puts the baseline at the face ascent.
func Strip(face font.Face, text string, cellWidth, cellHeight, baseline int) *image.RGBA {
	runes := []rune(text)
	img := image.NewRGBA(image.Rect(0, 0, cellWidth*len(runes), cellHeight))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	dotY := face.Metrics().Ascent
	if baseline > 0 {
		dotY = fixed.I(baseline)
	}

	for i, ch := range runes {
		cell := image.Rect(i*cellWidth, 0, (i+1)*cellWidth, cellHeight)
		d := &font.Drawer{
			Dst:  img.SubImage(cell).(*image.RGBA),
			Src:  image.NewUniform(color.Black),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(cell.Min.X), Y: dotY},
		}
		d.DrawString(string(ch))
	}
	return img
}
