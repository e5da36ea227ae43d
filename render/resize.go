package render

import (
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// Resize scales img to fit width x height keeping its aspect ratio and
// centres it on a white background of exactly that size. A zero dimension is
// derived from the other one.
func Resize(logger *slog.Logger, img image.Image, width, height int) image.Image {
	srcBounds := img.Bounds()
	srcWidth := float64(srcBounds.Dx())
	srcHeight := float64(srcBounds.Dy())
	srcAR := srcWidth / srcHeight

	destWidth := float64(width)
	destHeight := float64(height)
	switch {
	case width == 0 && height == 0:
		return img
	case width == 0:
		destWidth = math.Round(destHeight * srcAR)
	case height == 0:
		destHeight = math.Round(destWidth / srcAR)
	}

	if (srcWidth == destWidth) && (srcHeight == destHeight) {
		return img
	}

	destSize := image.Rect(0, 0, int(destWidth), int(destHeight))
	destBounds := destSize

	destAR := destWidth / destHeight
	if srcAR < destAR {
		idw := int(math.Round((destWidth - destHeight*srcAR) / 2))
		destBounds.Min.X += idw
		destBounds.Max.X -= idw
	} else if srcAR > destAR {
		idh := int(math.Round((destHeight - destWidth/srcAR) / 2))
		destBounds.Min.Y += idh
		destBounds.Max.Y -= idh
	}

	logger.Info("resizing", "width", destSize.Dx(), "height", destSize.Dy(),
		"content_width", destBounds.Dx(), "content_height", destBounds.Dy())
	dest := image.NewRGBA64(destSize)
	draw.Draw(dest, destSize, image.White, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dest, destBounds, img, srcBounds, draw.Over, nil)

	return dest
}
