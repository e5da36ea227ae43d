// Package glyph splits fixed-width font strips into per-character cells.
package glyph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	FirstChar = 0x20
	LastChar  = 0x7f
)

var ErrInvalidRange = errors.New("invalid character range")

// Range is an inclusive span of printable character codes.
type Range struct {
	Start, End byte
}

func NewRange(start, end int) (Range, error) {
	if start < FirstChar || start > LastChar || end < FirstChar || end > LastChar {
		return Range{}, fmt.Errorf("%w: 0x%02x..0x%02x, must be between 0x%02x (%d) and 0x%02x (%d)",
			ErrInvalidRange, start, end, FirstChar, FirstChar, LastChar, LastChar)
	}
	if start > end {
		return Range{}, fmt.Errorf("%w: start 0x%02x is after end 0x%02x", ErrInvalidRange, start, end)
	}
	return Range{Start: byte(start), End: byte(end)}, nil
}

func (r Range) Count() int {
	return int(r.End) - int(r.Start) + 1
}

func (r Range) String() string {
	return fmt.Sprintf("0x%02x..0x%02x", r.Start, r.End)
}

// ParseCode reads a hexadecimal character code, with or without a 0x prefix.
func ParseCode(s string) (int, error) {
	digits := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	v, err := strconv.ParseUint(digits, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: could not read hex character code %q: %w", ErrInvalidRange, s, err)
	}
	return int(v), nil
}

// Cell is a horizontal slice of a source strip.
type Cell struct {
	Code     byte
	StartCol int
	Width    int
}

// Segment yields one cell per code of r, in ascending code order, each
// cellWidth columns wide.
func Segment(r Range, cellWidth int) []Cell {
	cells := make([]Cell, 0, r.Count())
	for i := range r.Count() {
		cells = append(cells, Cell{
			Code:     r.Start + byte(i),
			StartCol: i * cellWidth,
			Width:    cellWidth,
		})
	}
	return cells
}

// Identity treats a whole image as a single cell.
func Identity(width int) []Cell {
	return []Cell{{StartCol: 0, Width: width}}
}

// DisplayName is the label used in glyph boundary comments.
func DisplayName(code byte) string {
	switch code {
	case 0x20:
		return "(space)"
	case 0x5c:
		return "(backslash)"
	case 0x7f:
		return "(deg)"
	}
	return string(rune(code))
}

// Rune is the character drawn for code. The 0x7f slot holds a degree sign.
func Rune(code byte) rune {
	if code == 0x7f {
		return '°'
	}
	return rune(code)
}

// Chars returns the characters drawn for r in code order.
func Chars(r Range) string {
	var sb strings.Builder
	for i := range r.Count() {
		sb.WriteRune(Rune(r.Start + byte(i)))
	}
	return sb.String()
}
