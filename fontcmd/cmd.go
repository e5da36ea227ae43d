package fontcmd

import (
	"fmt"
	"image/color"
	"log/slog"

	"oledbmp/glyph"
	"oledbmp/pager"
	"oledbmp/raster"
	"oledbmp/render"
	"oledbmp/transcode"

	"github.com/alecthomas/kong"
)

// CharRange is the pair of character flags shared by the font commands.
type CharRange struct {
	Startchar string      `help:"Starting char in hex (0x20 space)" short:"c" default:"0x20"`
	Endchar   string      `help:"Ending char in hex (0x7f del)" short:"e" default:"0x7f"`
	Range     glyph.Range `kong:"-"`
}

func (r *CharRange) Validate() error {
	start, err := glyph.ParseCode(r.Startchar)
	if err != nil {
		return err
	}
	end, err := glyph.ParseCode(r.Endchar)
	if err != nil {
		return err
	}
	r.Range, err = glyph.NewRange(start, end)
	return err
}

func checkCell(width, height int) error {
	if width <= 0 {
		return fmt.Errorf("%w: font width %d", pager.ErrUnsupportedGeometry, width)
	}
	return pager.CheckHeight(height)
}

// ParseCmd reads a strip of pre-drawn glyphs.
type ParseCmd struct {
	Img      string      `help:"Input image file" short:"i" required:""`
	Width    int         `help:"Font width" short:"W" required:""`
	Height   int         `help:"Font height, a multiple of 8" short:"H" required:""`
	Out      string      `help:"Output header file" short:"o" default:"font.h"`
	Ink      string      `help:"Color counted as a set pixel" default:"#000000" env:"OLEDBMP_INK"`
	InkColor color.Color `kong:"-"`
	CharRange
}

func (c *ParseCmd) Validate(kctx *kong.Context) error {
	if err := c.CharRange.Validate(); err != nil {
		return err
	}
	if err := checkCell(c.Width, c.Height); err != nil {
		return err
	}

	var err error
	if c.InkColor, err = raster.ParseColor(c.Ink); err != nil {
		return fmt.Errorf("invalid ink color: %w", err)
	}
	return nil
}

func (c *ParseCmd) Run(logger *slog.Logger) error {
	logger = logger.With("file", c.Img, "range", c.Range)

	img, err := transcode.LoadImage(c.Img)
	if err != nil {
		return err
	}

	src := raster.FromImage(img, raster.ExactRGB(c.InkColor))
	return writeFont(logger, src, c.Range, c.Width, c.Height, c.Out)
}

// GenCmd renders a TrueType or OpenType font into a glyph strip and packs it.
type GenCmd struct {
	Font      string  `help:"Font file to read, or the builtin gomono / goregular" short:"f" default:"gomono"`
	Size      string  `help:"Font cell size (w,h)" short:"s" required:""`
	Points    float64 `help:"Font point size" short:"p" required:""`
	Baseline  int     `help:"Baseline row inside the cell, 0 uses the font ascent"`
	Threshold float64 `help:"OKLab lightness below which an anti-aliased pixel becomes ink" default:"0.5"`
	Out       string  `help:"Output header file" short:"o" default:"font.h"`
	SaveStrip string  `help:"Also save the rendered glyph strip (png or bmp)"`
	CharRange

	width, height int `kong:"-"`
}

func (c *GenCmd) Validate(kctx *kong.Context) error {
	if err := c.CharRange.Validate(); err != nil {
		return err
	}

	n, err := fmt.Sscanf(c.Size, "%d,%d", &c.width, &c.height)
	if err != nil || n != 2 {
		return fmt.Errorf("invalid font size %q, should be w,h", c.Size)
	}
	if err := checkCell(c.width, c.height); err != nil {
		return err
	}

	switch {
	case c.Points <= 0:
		return fmt.Errorf("invalid point size: %v", c.Points)
	case c.Baseline < 0 || c.Baseline > c.height:
		return fmt.Errorf("invalid baseline %d for cell height %d", c.Baseline, c.height)
	case c.Threshold < 0 || c.Threshold > 1:
		return fmt.Errorf("invalid threshold %v, must be between 0 and 1", c.Threshold)
	}
	return nil
}

func (c *GenCmd) Run(logger *slog.Logger) error {
	logger = logger.With("font", c.Font, "range", c.Range)

	face, err := render.LoadFace(c.Font, c.Points)
	if err != nil {
		return err
	}
	defer face.Close()

	strip := render.Binarize(render.Strip(face, glyph.Chars(c.Range), c.width, c.height, c.Baseline), false, c.Threshold)
	if c.SaveStrip != "" {
		if err := render.Save(strip, c.SaveStrip); err != nil {
			return err
		}
		logger.Info("saved glyph strip", "strip", c.SaveStrip)
	}

	return writeFont(logger, raster.FromImage(strip, raster.Black), c.Range, c.width, c.height, c.Out)
}

func writeFont(logger *slog.Logger, src raster.Raster, rng glyph.Range, width, height int, out string) error {
	res, err := transcode.New(logger).Font(src, rng, width, height, out)
	if err != nil {
		return err
	}
	if err := transcode.WriteFile(out, res); err != nil {
		return err
	}

	logger.Info("done", "out", out, "glyphs", res.Meta.NumChars, "bytes", len(res.Data))
	return nil
}
