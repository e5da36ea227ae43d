package batchcmd

import (
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"oledbmp/imagecmd"
)

func TestHeaderName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"logo.png", "logo.h"},
		{"icon.small.bmp", "icon.small.h"},
		{"noext", "noext.h"},
	}
	for _, tt := range tests {
		if got := HeaderName(tt.in); got != tt.want {
			t.Errorf("HeaderName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cmd     CLICmd
		wantErr bool
	}{
		{"scan dir", CLICmd{Scan: dir, Dest: "out", Preprocess: imagecmd.Preprocess{Ink: "#000"}}, false},
		{"scan file", CLICmd{Scan: file, Dest: "out", Preprocess: imagecmd.Preprocess{Ink: "#000"}}, true},
		{"missing scan", CLICmd{Scan: filepath.Join(dir, "nope"), Preprocess: imagecmd.Preprocess{Ink: "#000"}}, true},
		{"negative workers", CLICmd{Scan: dir, Workers: -1, Preprocess: imagecmd.Preprocess{Ink: "#000"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate(nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.cmd.Dest != filepath.Join(dir, "out") {
				t.Errorf("Dest = %q, want it relative to the scan dir", tt.cmd.Dest)
			}
		})
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		images  map[string][2]int
		want    []string
		wantErr bool
	}{
		{
			name:   "all good",
			images: map[string][2]int{"a.png": {8, 8}, "b.png": {16, 16}},
			want:   []string{"a.h", "b.h"},
		},
		{
			name:    "one bad height",
			images:  map[string][2]int{"a.png": {8, 8}, "bad.png": {8, 12}},
			want:    []string{"a.h"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, size := range tt.images {
				writeImage(t, filepath.Join(dir, name), size[0], size[1])
			}
			if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644); err != nil {
				t.Fatal(err)
			}

			cmd := &CLICmd{Scan: dir, Dest: "headers", Workers: 2, Preprocess: imagecmd.Preprocess{Ink: "#000", Threshold: 0.5}}
			if err := cmd.Validate(nil); err != nil {
				t.Fatal(err)
			}
			err := cmd.Run(slog.New(slog.NewTextHandler(io.Discard, nil)))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}

			entries, err := os.ReadDir(filepath.Join(dir, "headers"))
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, e := range entries {
				got = append(got, e.Name())
			}
			if len(got) != len(tt.want) {
				t.Fatalf("headers = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("headers = %v, want %v", got, tt.want)
				}
			}
		})
	}
}
