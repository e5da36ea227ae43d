package batchcmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"oledbmp/imagecmd"
	"oledbmp/parallel"

	"github.com/alecthomas/kong"
)

var imageExts = map[string]bool{
	".bmp":  true,
	".gif":  true,
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

type CLICmd struct {
	Scan    string `help:"Source folder to scan" default:"."`
	Dest    string `help:"Destination folder for headers. Relative to scan dir if not absolute." default:"headers"`
	Workers int    `help:"Number of images converted at once, 0 uses all CPUs" default:"0"`
	imagecmd.Preprocess
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	if c.Workers < 0 {
		return fmt.Errorf("invalid number of workers: %d", c.Workers)
	}

	return c.Preprocess.Validate()
}

// HeaderName maps an image file name to its header name: logo.png -> logo.h.
func HeaderName(fileName string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ".h"
}

func (c *CLICmd) Run(logger *slog.Logger) error {
	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	pool := parallel.Start(c.Workers)
	var skipped int
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		if !imageExts[strings.ToLower(filepath.Ext(file.Name()))] {
			skipped++
			continue
		}

		src := filepath.Join(c.Scan, file.Name())
		dest := filepath.Join(c.Dest, HeaderName(file.Name()))
		pool.Go(func() error {
			err := imagecmd.Convert(logger, src, dest, "", &c.Preprocess)
			if err != nil {
				logger.Error("could not convert image", "file", src, "error", err)
			}
			return err
		})
	}

	converted, failed := pool.Wait()
	logger.Info("stats", "converted", converted, "errors", failed, "skipped", skipped,
		"total", converted+failed)

	if failed > 0 {
		return fmt.Errorf("error converting %d files", failed)
	}
	return nil
}
