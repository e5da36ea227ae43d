package pager

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"oledbmp/raster"
)

func aRandomMask() *raster.Mask {
	width, height := 1+rand.IntN(64), PageHeight*(1+rand.IntN(8))
	m := raster.NewMask(width, height)
	for y := range height {
		for x := range width {
			m.Set(x, y, rand.IntN(2) == 1)
		}
	}
	return m
}

func assertMasksIdentical(t *testing.T, m1, m2 raster.Raster) {
	t.Helper()
	if m1.Width() != m2.Width() || m1.Height() != m2.Height() {
		t.Fatalf("masks differ in size: %dx%d vs %dx%d", m1.Width(), m1.Height(), m2.Width(), m2.Height())
	}
	for y := range m1.Height() {
		for x := range m1.Width() {
			if a, b := m1.Ink(x, y), m2.Ink(x, y); a != b {
				t.Errorf("pixel at (%d, %d) doesn't match: %v vs %v", x, y, a, b)
			}
		}
	}
}

func TestPackBitOrder(t *testing.T) {
	tests := []struct {
		name string
		row  int
		want byte
	}{
		{"top row", 0, 0x01},
		{"row 3", 3, 0x08},
		{"bottom row", 7, 0x80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := raster.NewMask(1, 8)
			m.Set(0, tt.row, true)
			got, err := Pack(m, 0, 1, 8)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Pack() = % X, want %02X", got, tt.want)
			}
		})
	}
}

func TestPackColumnMajorPages(t *testing.T) {
	m := raster.NewMask(2, 16)
	m.Set(0, 0, true)  // page 0, col 0, bit 0
	m.Set(1, 7, true)  // page 0, col 1, bit 7
	m.Set(0, 9, true)  // page 1, col 0, bit 1
	m.Set(1, 15, true) // page 1, col 1, bit 7

	got, err := Pack(m, 0, 2, 16)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0x01, 0x80, 0x02, 0x80}
	if fmt.Sprintf("% X", got) != fmt.Sprintf("% X", want) {
		t.Errorf("Pack() = % X, want % X", got, want)
	}
}

func TestPackColumnSpan(t *testing.T) {
	m := raster.NewMask(4, 8)
	for y := range 8 {
		m.Set(2, y, true)
	}

	got, err := Pack(m, 2, 2, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != 0xFF || got[1] != 0x00 {
		t.Errorf("Pack() = % X, want FF 00", got)
	}
}

func TestPackLength(t *testing.T) {
	for _, size := range [][2]int{{8, 8}, {20, 8}, {128, 64}, {5, 24}} {
		m := raster.NewMask(size[0], size[1])
		got, err := Pack(m, 0, size[0], size[1])
		if err != nil {
			t.Fatal(err)
		}
		if want := size[0] * size[1] / 8; len(got) != want {
			t.Errorf("len(Pack(%dx%d)) = %d, want %d", size[0], size[1], len(got), want)
		}
	}
}

func TestPackUnsupportedGeometry(t *testing.T) {
	tests := []struct {
		name                    string
		startCol, width, height int
	}{
		{"height 15", 0, 4, 15},
		{"height 0", 0, 4, 0},
		{"too wide", 2, 4, 8},
		{"too tall", 0, 4, 16},
		{"negative start", -1, 2, 8},
	}

	m := raster.NewMask(4, 8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Pack(m, tt.startCol, tt.width, tt.height)
			if !errors.Is(err, ErrUnsupportedGeometry) {
				t.Errorf("Pack() error = %v, want ErrUnsupportedGeometry", err)
			}
		})
	}
}

func TestPackUnpackMany(t *testing.T) {
	const testCaseCount = 30

	for i := range testCaseCount {
		m := aRandomMask()
		t.Run(fmt.Sprintf("test %v: %s", i, m), func(t *testing.T) {
			data, err := Pack(m, 0, m.Width(), m.Height())
			if err != nil {
				t.Fatal(err)
			}
			unpacked, err := Unpack(data, m.Width(), m.Height())
			if err != nil {
				t.Fatal(err)
			}
			assertMasksIdentical(t, m, unpacked)
		})
	}
}

func TestUnpackLengthMismatch(t *testing.T) {
	if _, err := Unpack([]byte{0x00}, 2, 8); !errors.Is(err, ErrUnsupportedGeometry) {
		t.Errorf("Unpack() error = %v, want ErrUnsupportedGeometry", err)
	}
}
