// Package transcode turns rasters into emitted display arrays. Whole images
// and font strips share one packing loop; an image is simply a strip with a
// single cell as wide as the image.
package transcode

import (
	"fmt"
	"io"
	"log/slog"

	"oledbmp/emit"
	"oledbmp/glyph"
	"oledbmp/pager"
	"oledbmp/raster"
)

var (
	ErrUnsupportedGeometry = pager.ErrUnsupportedGeometry
	ErrInvalidRange        = glyph.ErrInvalidRange
	ErrInvalidName         = emit.ErrInvalidName
	ErrIOFailure           = emit.ErrIOFailure
)

// Transcoder holds the diagnostics sink for one invocation.
type Transcoder struct {
	Logger *slog.Logger
}

func New(logger *slog.Logger) *Transcoder {
	return &Transcoder{Logger: logger}
}

// Result is a fully packed array, ready to be emitted.
type Result struct {
	Meta  emit.Meta
	Data  []byte
	Marks []emit.Mark
}

func (r *Result) Write(w io.Writer) error {
	return emit.Emit(w, r.Meta, r.Data, r.Marks)
}

type job struct {
	src        raster.Raster
	cells      []glyph.Cell
	cellHeight int
	labels     bool
}

// Image packs the whole raster as a single cell.
func (t *Transcoder) Image(r raster.Raster, outPath string) (*Result, error) {
	width, height := r.Width(), r.Height()
	if width <= 0 {
		return nil, fmt.Errorf("%w: image width %d", ErrUnsupportedGeometry, width)
	}
	if err := pager.CheckHeight(height); err != nil {
		return nil, fmt.Errorf("image %dx%d: %w", width, height, err)
	}

	meta, err := emit.NewMeta(outPath, width, height)
	if err != nil {
		return nil, err
	}

	return t.run(meta, job{
		src:        r,
		cells:      glyph.Identity(width),
		cellHeight: height,
	}), nil
}

// Font packs numchars cells of cellWidth x cellHeight taken left to right
// from the top of r, one per code of rng.
func (t *Transcoder) Font(r raster.Raster, rng glyph.Range, cellWidth, cellHeight int, outPath string) (*Result, error) {
	rng, err := glyph.NewRange(int(rng.Start), int(rng.End))
	if err != nil {
		return nil, err
	}
	if cellWidth <= 0 {
		return nil, fmt.Errorf("%w: font width %d", ErrUnsupportedGeometry, cellWidth)
	}
	if err := pager.CheckHeight(cellHeight); err != nil {
		return nil, fmt.Errorf("font %dx%d: %w", cellWidth, cellHeight, err)
	}
	if need := cellWidth * rng.Count(); r.Width() < need || r.Height() < cellHeight {
		return nil, fmt.Errorf("%w: %d glyphs of %dx%d need %dx%d, image is %dx%d",
			ErrUnsupportedGeometry, rng.Count(), cellWidth, cellHeight, need, cellHeight, r.Width(), r.Height())
	}

	meta, err := emit.NewMeta(outPath, cellWidth, cellHeight)
	if err != nil {
		return nil, err
	}
	meta.Font = true
	meta.StartChar = rng.Start
	meta.NumChars = rng.Count()

	return t.run(meta, job{
		src:        r,
		cells:      glyph.Segment(rng, cellWidth),
		cellHeight: cellHeight,
		labels:     true,
	}), nil
}

// run walks pages top to bottom and, within each page, cells in order.
func (t *Transcoder) run(meta emit.Meta, j job) *Result {
	logger := t.logger().With("array", meta.Name, "width", meta.Width, "height", meta.Height)

	res := &Result{
		Meta: meta,
		Data: make([]byte, 0, meta.DataLen()),
	}

	// Page 0 of a cell starts at its column offset in the stream.
	if j.labels {
		for _, c := range j.cells {
			res.Marks = append(res.Marks, emit.Mark{
				Offset:  c.StartCol,
				Comment: fmt.Sprintf("%s | %s", emit.Hex(c.Code), glyph.DisplayName(c.Code)),
			})
		}
	}

	for page := range j.cellHeight / pager.PageHeight {
		for _, c := range j.cells {
			before := len(res.Data)
			res.Data = pager.AppendPage(res.Data, j.src, c.StartCol, c.Width, page)
			if j.labels {
				logger.Debug("packed glyph", "page", page, "code", emit.Hex(c.Code),
					"char", glyph.DisplayName(c.Code), "bytes", fmt.Sprintf("% X", res.Data[before:]))
			}
		}
	}

	logger.Info("packed", "cells", len(j.cells), "bytes", len(res.Data))
	return res
}

func (t *Transcoder) logger() *slog.Logger {
	if t == nil || t.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return t.Logger
}

// WriteImage packs r and emits it to w. Nothing reaches w when validation fails.
func (t *Transcoder) WriteImage(w io.Writer, r raster.Raster, outPath string) error {
	res, err := t.Image(r, outPath)
	if err != nil {
		return err
	}
	return res.Write(w)
}

// WriteFont is the font mode counterpart of WriteImage.
func (t *Transcoder) WriteFont(w io.Writer, r raster.Raster, rng glyph.Range, cellWidth, cellHeight int, outPath string) error {
	res, err := t.Font(r, rng, cellWidth, cellHeight, outPath)
	if err != nil {
		return err
	}
	return res.Write(w)
}
