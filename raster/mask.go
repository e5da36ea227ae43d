package raster

import "fmt"

// Mask is an in-memory ink mask, stored row by row.
type Mask struct {
	bits          []bool
	width, height int
}

func NewMask(width, height int) *Mask {
	return &Mask{
		bits:   make([]bool, width*height),
		width:  width,
		height: height,
	}
}

func (m *Mask) Width() int {
	return m.width
}

func (m *Mask) Height() int {
	return m.height
}

func (m *Mask) Ink(x, y int) bool {
	return m.bits[y*m.width+x]
}

func (m *Mask) Set(x, y int, ink bool) {
	m.bits[y*m.width+x] = ink
}

func (m *Mask) String() string {
	return fmt.Sprintf("Mask(%d,%d)", m.width, m.height)
}
