package imagecmd

import (
	"fmt"
	"image/color"
	"log/slog"

	"oledbmp/raster"
	"oledbmp/render"
	"oledbmp/transcode"

	"github.com/alecthomas/kong"
)

// Preprocess holds the options that turn an arbitrary picture into a black
// and white one before packing.
type Preprocess struct {
	Ink       string      `help:"Color counted as a set pixel when not preprocessing (#RGB, #RGBA, #RRGGBB or #RRGGBBAA)" default:"#000000" env:"OLEDBMP_INK"`
	Width     int         `help:"Resize to this width, 0 keeps the aspect ratio" group:"preprocess"`
	Height    int         `help:"Resize to this height, 0 keeps the aspect ratio" group:"preprocess"`
	Dither    bool        `help:"Dither to black and white (Floyd-Steinberg)" default:"false" group:"preprocess"`
	Binarize  bool        `help:"Convert to black and white with a lightness threshold" default:"false" group:"preprocess"`
	Threshold float64     `help:"OKLab lightness below which a pixel becomes black" default:"0.5" group:"preprocess"`
	InkColor  color.Color `kong:"-"`
}

func (p *Preprocess) Validate() error {
	switch {
	case p.Width < 0:
		return fmt.Errorf("invalid resize width: %d", p.Width)
	case p.Height < 0:
		return fmt.Errorf("invalid resize height: %d", p.Height)
	case p.Threshold < 0 || p.Threshold > 1:
		return fmt.Errorf("invalid threshold %v, must be between 0 and 1", p.Threshold)
	}

	var err error
	if p.InkColor, err = raster.ParseColor(p.Ink); err != nil {
		return fmt.Errorf("invalid ink color: %w", err)
	}
	return nil
}

func (p *Preprocess) enabled() bool {
	return p.Width > 0 || p.Height > 0 || p.Dither || p.Binarize
}

type CLICmd struct {
	Img     string `help:"Input image file" short:"i" required:""`
	Out     string `help:"Output header file" short:"o" default:"image.h"`
	Preview string `help:"Also save the black and white image that gets packed (png or bmp)"`
	Preprocess
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	return c.Preprocess.Validate()
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	return Convert(logger, c.Img, c.Out, c.Preview, &c.Preprocess)
}

// Convert packs the whole image at src into a header at dest. Loading and
// validation happen before dest is touched.
func Convert(logger *slog.Logger, src, dest, preview string, opts *Preprocess) error {
	logger = logger.With("file", src)

	img, err := transcode.LoadImage(src)
	if err != nil {
		return err
	}

	ink := raster.ExactRGB(opts.InkColor)
	if opts.InkColor == nil {
		ink = raster.Black
	}
	if opts.enabled() {
		img = render.Resize(logger, img, opts.Width, opts.Height)
		img = render.Binarize(img, opts.Dither, opts.Threshold)
		ink = raster.Black

		if preview != "" {
			if err := render.Save(img, preview); err != nil {
				return err
			}
			logger.Info("saved preview", "preview", preview)
		}
	}

	res, err := transcode.New(logger).Image(raster.FromImage(img, ink), dest)
	if err != nil {
		return err
	}
	if err := transcode.WriteFile(dest, res); err != nil {
		return err
	}

	logger.Info("done", "out", dest, "bytes", len(res.Data))
	return nil
}
