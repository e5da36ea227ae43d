package imagecmd

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"oledbmp/transcode"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestPreprocessValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Preprocess
		wantErr bool
	}{
		{"defaults", Preprocess{Ink: "#000000", Threshold: 0.5}, false},
		{"short ink", Preprocess{Ink: "#f00", Threshold: 0.5}, false},
		{"bad ink", Preprocess{Ink: "black", Threshold: 0.5}, true},
		{"negative width", Preprocess{Ink: "#000", Width: -1, Threshold: 0.5}, true},
		{"negative height", Preprocess{Ink: "#000", Height: -1, Threshold: 0.5}, true},
		{"threshold above 1", Preprocess{Ink: "#000", Threshold: 1.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "logo.png")
	img := image.NewRGBA(image.Rect(0, 0, 20, 8))
	for x := range 20 {
		for y := range 8 {
			img.Set(x, y, color.White)
		}
	}
	img.Set(19, 7, color.Black)
	writePNG(t, src, img)

	cmd := &CLICmd{
		Img:        src,
		Out:        filepath.Join(dir, "logo.h"),
		Preprocess: Preprocess{Ink: "#000000", Threshold: 0.5},
	}
	if err := cmd.Validate(nil); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(discard()); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(cmd.Out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"#ifndef LOGO_H\n",
		"static const byte LOGO[] = {\n",
		"  20, 8,\n",
		"#endif // LOGO_H\n",
	} {
		if !strings.Contains(string(out), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(string(out), "  0x00, 0x00, 0x00, 0x80\n};\n") {
		t.Errorf("last byte should be 0x80:\n%s", out)
	}
}

func TestConvertBadGeometryLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "odd.png")
	writePNG(t, src, image.NewRGBA(image.Rect(0, 0, 8, 15)))

	dest := filepath.Join(dir, "odd.h")
	err := Convert(discard(), src, dest, "", &Preprocess{Ink: "#000", InkColor: color.Black, Threshold: 0.5})
	if !errors.Is(err, transcode.ErrUnsupportedGeometry) {
		t.Fatalf("Convert() error = %v, want ErrUnsupportedGeometry", err)
	}
	if _, err := os.Stat(dest); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output file should not exist, stat error = %v", err)
	}
}

func TestConvertMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := Convert(discard(), filepath.Join(dir, "nope.png"), filepath.Join(dir, "nope.h"), "", &Preprocess{})
	if !errors.Is(err, transcode.ErrSourceUnavailable) {
		t.Errorf("Convert() error = %v, want ErrSourceUnavailable", err)
	}
}

func TestConvertPreprocessed(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.png")
	img := image.NewRGBA(image.Rect(0, 0, 40, 10))
	for x := range 40 {
		for y := range 10 {
			img.Set(x, y, color.RGBA{0x10, 0x20, 0x30, 0xFF})
		}
	}
	writePNG(t, src, img)

	dest := filepath.Join(dir, "photo.h")
	preview := filepath.Join(dir, "preview.png")
	opts := &Preprocess{Height: 16, Binarize: true, Threshold: 0.5}
	if err := Convert(discard(), src, dest, preview, opts); err != nil {
		t.Fatal(err)
	}

	out, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "  64, 16,\n") {
		t.Errorf("expected a 64x16 array:\n%s", out)
	}
	if !strings.Contains(string(out), "0xFF") {
		t.Errorf("dark picture should pack to set bits:\n%s", out)
	}
	if _, err := os.Stat(preview); err != nil {
		t.Errorf("preview not written: %v", err)
	}
}
