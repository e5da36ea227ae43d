// Package emit renders packed display data as a C header holding a single
// static byte array.
package emit

import (
	"bufio"
	"cmp"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

const (
	maxWrap = 16
	indent  = "  "
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var (
	ErrInvalidName  = errors.New("invalid array name")
	ErrMetaMismatch = errors.New("header metadata does not match data")
	ErrIOFailure    = errors.New("output write failed")
)

// Meta is the header block of an emitted array.
type Meta struct {
	Guard  string
	Name   string
	Width  int
	Height int

	// Font arrays also carry the first character code and the glyph count.
	Font      bool
	StartChar byte
	NumChars  int
}

// NewMeta derives the guard and array names from the output path.
func NewMeta(outPath string, width, height int) (Meta, error) {
	guard := GuardName(outPath)
	name, err := ArrayName(guard)
	if err != nil {
		return Meta{}, err
	}
	return Meta{
		Guard:  guard,
		Name:   name,
		Width:  width,
		Height: height,
	}, nil
}

// DataLen is the number of bytes the metadata describes.
func (m Meta) DataLen() int {
	n := m.Width * m.Height / 8
	if m.Font {
		n *= m.NumChars
	}
	return n
}

// GuardName turns an output file name into an include guard: myfont.h -> MYFONT_H.
func GuardName(outPath string) string {
	return strings.ReplaceAll(strings.ToUpper(filepath.Base(outPath)), ".", "_")
}

// ArrayName strips the last two characters (the _H suffix) off guard. Both
// must be C identifiers.
func ArrayName(guard string) (string, error) {
	if !identifier.MatchString(guard) {
		return "", fmt.Errorf("%w: guard %q is not a C identifier", ErrInvalidName, guard)
	}
	if len(guard) <= 2 {
		return "", fmt.Errorf("%w: guard %q leaves nothing after dropping its 2 character suffix", ErrInvalidName, guard)
	}
	return guard[:len(guard)-2], nil
}

// WrapWidth is the number of values per output line for rows of rowBytes bytes.
func WrapWidth(rowBytes int) int {
	if rowBytes > maxWrap {
		return maxWrap
	}
	return rowBytes
}

// Mark is a line comment written immediately before data[Offset].
type Mark struct {
	Offset  int
	Comment string
}

// Emit writes the complete header for data to w. Nothing is written when the
// metadata and data disagree.
func Emit(w io.Writer, meta Meta, data []byte, marks []Mark) error {
	if meta.Name == "" {
		return fmt.Errorf("%w: empty array name for guard %q", ErrInvalidName, meta.Guard)
	}
	if !identifier.MatchString(meta.Guard) || !identifier.MatchString(meta.Name) {
		return fmt.Errorf("%w: guard %q and name %q must be C identifiers", ErrInvalidName, meta.Guard, meta.Name)
	}
	if want := meta.DataLen(); want != len(data) {
		return fmt.Errorf("%w: header describes %d bytes, got %d", ErrMetaMismatch, want, len(data))
	}
	for _, m := range marks {
		if m.Offset < 0 || m.Offset >= len(data) {
			return fmt.Errorf("%w: comment %q at offset %d outside %d bytes", ErrMetaMismatch, m.Comment, m.Offset, len(data))
		}
	}
	marks = slices.SortedStableFunc(slices.Values(marks), func(a, b Mark) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	bw := bufio.NewWriter(w)
	writeHeader(bw, meta)
	writeBody(bw, data, marks, WrapWidth(meta.Width))
	fmt.Fprintf(bw, "};\n#endif // %s\n", meta.Guard)

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

func writeHeader(w *bufio.Writer, meta Meta) {
	fmt.Fprintf(w, "#ifndef %s\n#define %s\n\n", meta.Guard, meta.Guard)
	fmt.Fprintf(w, "static const byte %s[] = {\n", meta.Name)
	if meta.Font {
		fmt.Fprintf(w, "%s// width px, height px, startchar, numchars,\n", indent)
		fmt.Fprintf(w, "%s%d, %d, %s, %d,\n", indent, meta.Width, meta.Height, Hex(meta.StartChar), meta.NumChars)
		fmt.Fprintf(w, "\n%s// font data\n", indent)
	} else {
		fmt.Fprintf(w, "%s// width px, height px,\n", indent)
		fmt.Fprintf(w, "%s%d, %d,\n", indent, meta.Width, meta.Height)
		fmt.Fprintf(w, "\n%s// image data\n", indent)
	}
}

// writeBody lays out the values wrap per line. A comment always starts on a
// fresh line and restarts the line count.
func writeBody(w *bufio.Writer, data []byte, marks []Mark, wrap int) {
	wrap = max(wrap, 1)

	onLine := 0
	for i, b := range data {
		commented := len(marks) > 0 && marks[0].Offset == i
		switch {
		case i == 0:
		case commented || onLine == wrap:
			w.WriteString(",\n")
			onLine = 0
		default:
			w.WriteString(", ")
		}

		for len(marks) > 0 && marks[0].Offset == i {
			fmt.Fprintf(w, "%s// %s\n", indent, marks[0].Comment)
			marks = marks[1:]
		}

		if onLine == 0 {
			w.WriteString(indent)
		}
		w.WriteString(Hex(b))
		onLine++
	}

	if len(data) > 0 {
		w.WriteByte('\n')
	}
}

// Hex formats b as 0xHH.
func Hex(b byte) string {
	return fmt.Sprintf("0x%02X", b)
}
