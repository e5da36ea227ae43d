package okcolor

import (
	"image/color"
	"math"
)

type LinearRGBA struct {
	R float64
	G float64
	B float64
	A uint16
}

func linearRGBAConvert(c color.Color) color.Color {
	if _, ok := c.(LinearRGBA); ok {
		return c
	}

	return sRGBToLinearRGB(color.NRGBA64Model.Convert(c).(color.NRGBA64))
}

func (lc LinearRGBA) RGBA() (uint32, uint32, uint32, uint32) {
	return color.NRGBA64{
		R: uint16(fromLinear(clamp(lc.R)) * 65535),
		G: uint16(fromLinear(clamp(lc.G)) * 65535),
		B: uint16(fromLinear(clamp(lc.B)) * 65535),
		A: lc.A,
	}.RGBA()
}

func sRGBToLinearRGB(c color.NRGBA64) LinearRGBA {
	return LinearRGBA{
		R: toLinear(float64(c.R) / 65535),
		G: toLinear(float64(c.G) / 65535),
		B: toLinear(float64(c.B) / 65535),
		A: c.A,
	}
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	} else {
		return x / 12.92
	}
}

const pow float64 = 1.0 / 2.4

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, pow)*1.055 - 0.055
	} else {
		return x * 12.92
	}
}

func clamp(x float64) float64 {
	return min(max(x, 0), 1)
}
