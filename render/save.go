package render

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// Save writes img as png or bmp depending on the extension of path.
func Save(img image.Image, path string) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".png" && ext != ".bmp" {
		return fmt.Errorf("unsupported output format %q, use .png or .bmp", ext)
	}

	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create %q: %w", path, err)
	}
	defer func() {
		if closeErr := outFile.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
			if err == nil {
				err = closeErr
			}
		}
	}()

	switch ext {
	case ".png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err = enc.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode PNG %q: %w", path, err)
		}
	case ".bmp":
		if err = bmp.Encode(outFile, img); err != nil {
			return fmt.Errorf("could not encode BMP %q: %w", path, err)
		}
	}
	return nil
}
