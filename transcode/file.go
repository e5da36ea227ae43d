package transcode

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

var ErrSourceUnavailable = errors.New("source unavailable")

// LoadImage opens and decodes a gif, jpeg, png, bmp, tiff or webp file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: could not open image %q: %w", ErrSourceUnavailable, path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: could not decode image %q: %w", ErrSourceUnavailable, path, err)
	}
	return img, nil
}

// WriteFile emits res into a temporary file next to dest and renames it into
// place once everything has been written.
func WriteFile(dest string, res *Result) (err error) {
	dir, name := filepath.Split(dest)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: could not create temporary destination for %q: %w", ErrIOFailure, dest, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("%w: could not flush temporary destination %q: %w", ErrIOFailure, outFile.Name(), defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("%w: could not close temporary destination %q: %w", ErrIOFailure, outFile.Name(), defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), dest); defErr != nil {
				err = fmt.Errorf("%w: could not rename destination file %q: %w", ErrIOFailure, dest, defErr)
			}
		}
		if err != nil {
			os.Remove(outFile.Name())
		}
	}()

	if err = res.Write(outFile); err != nil {
		return fmt.Errorf("could not write %q: %w", dest, err)
	}
	if err = outFile.Chmod(0o644); err != nil {
		return fmt.Errorf("%w: could not set permissions on %q: %w", ErrIOFailure, outFile.Name(), err)
	}

	canRename = true
	return nil
}
