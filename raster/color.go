package raster

import (
	"fmt"
	"image/color"
)

// ParseColor reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.Color, error) {
	c := color.NRGBA{A: 0xFF}
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
	case 5:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x%1x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return nil, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 4 {
			return nil, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		c.R |= c.R << 4
		c.G |= c.G << 4
		c.B |= c.B << 4
		c.A |= c.A << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x", &c.R, &c.G, &c.B)
		if err != nil {
			return nil, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return nil, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
	case 9:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x%2x", &c.R, &c.G, &c.B, &c.A)
		if err != nil {
			return nil, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 4 {
			return nil, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
	default:
		return nil, fmt.Errorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	return c, nil
}
