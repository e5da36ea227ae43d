// Package pager packs binary rasters into the page layout used by SSD1306
// style controllers: one byte per column per 8-row page, bit 0 at the top.
package pager

import (
	"errors"
	"fmt"

	"oledbmp/raster"
)

const PageHeight = 8

var ErrUnsupportedGeometry = errors.New("unsupported geometry")

// CheckHeight reports ErrUnsupportedGeometry unless height is a positive
// multiple of PageHeight.
func CheckHeight(height int) error {
	if height <= 0 || height%PageHeight != 0 {
		return fmt.Errorf("%w: height %d is not a positive multiple of %d", ErrUnsupportedGeometry, height, PageHeight)
	}
	return nil
}

// Pack packs width columns starting at startCol and the top height rows of r.
// The result holds height/8 pages of width bytes each.
func Pack(r raster.Raster, startCol, width, height int) ([]byte, error) {
	if err := CheckHeight(height); err != nil {
		return nil, err
	}
	if width <= 0 || startCol < 0 || startCol+width > r.Width() || height > r.Height() {
		return nil, fmt.Errorf("%w: columns %d..%d, rows 0..%d outside %dx%d raster",
			ErrUnsupportedGeometry, startCol, startCol+width, height, r.Width(), r.Height())
	}

	data := make([]byte, 0, width*height/PageHeight)
	for page := range height / PageHeight {
		data = AppendPage(data, r, startCol, width, page)
	}
	return data, nil
}

// AppendPage appends one byte per column of the given page to dst. Bounds are
// the caller's responsibility.
func AppendPage(dst []byte, r raster.Raster, startCol, width, page int) []byte {
	top := page * PageHeight
	for col := startCol; col < startCol+width; col++ {
		var b byte
		for bit := range PageHeight {
			if r.Ink(col, top+bit) {
				b |= 1 << bit
			}
		}
		dst = append(dst, b)
	}
	return dst
}

// Unpack rebuilds the ink mask of a width x height raster from Pack output.
func Unpack(data []byte, width, height int) (*raster.Mask, error) {
	if err := CheckHeight(height); err != nil {
		return nil, err
	}
	if want := width * height / PageHeight; len(data) != want {
		return nil, fmt.Errorf("%w: got %d bytes, expecting %d*%d/%d=%d",
			ErrUnsupportedGeometry, len(data), width, height, PageHeight, want)
	}

	m := raster.NewMask(width, height)
	for i, b := range data {
		page, col := i/width, i%width
		for bit := range PageHeight {
			m.Set(col, page*PageHeight+bit, (b>>bit)&1 == 1)
		}
	}
	return m, nil
}
