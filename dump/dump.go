// Package dump renders byte buffers as hexdumps, paired hex diffs, word
// listings and C string literals for the inspection commands.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/narwhalsec/shil/common"
	"github.com/narwhalsec/shil/log"
)

const stringChunk = 16

// Config controls Hexdump layout. The zero value prints 16-byte rows with
// the offset ruler and the printable gutter.
type Config struct {
	Width    int  // bytes per row, 16 when zero
	NoHeader bool // suppress the offset ruler
	NoASCII  bool // suppress the printable gutter
}

// Hexdump writes data as rows of hex byte pairs with the row address on the
// left and the printable rendering on the right.
func Hexdump(w io.Writer, addr uint64, data []byte, cfg Config) {
	width := cfg.Width
	if width <= 0 {
		width = 16
	}
	if !cfg.NoHeader {
		fmt.Fprintf(w, "- offset -  %s", headerCols(width))
		if !cfg.NoASCII {
			fmt.Fprintf(w, "  %s", headerRuler(width))
		}
		fmt.Fprintln(w)
	}
	for off := 0; off < len(data); off += width {
		row := data[off:min(off+width, len(data))]
		fmt.Fprintf(w, "0x%08x  %s", addr+uint64(off), hexCols(row, width))
		if !cfg.NoASCII {
			fmt.Fprintf(w, "  %s", asciiCols(row))
		}
		fmt.Fprintln(w)
	}
}

// HexDiff writes a and b as paired 16-byte rows, a prefixed "-" and b
// prefixed "+", with bytes that differ from the other buffer in red.
func HexDiff(w io.Writer, addrA uint64, a []byte, addrB uint64, b []byte) {
	const width = 16
	n := max(len(a), len(b))
	log.Trace(log.DumpModule, "diff", "a", fmt.Sprintf("%#x", addrA), "b", fmt.Sprintf("%#x", addrB), "len", n)
	for off := 0; off < n; off += width {
		fmt.Fprintf(w, "- 0x%08x  %s  %s\n", addrA+uint64(off), diffCols(a, b, off, width), asciiColsAt(a, off, width))
		fmt.Fprintf(w, "+ 0x%08x  %s  %s\n", addrB+uint64(off), diffCols(b, a, off, width), asciiColsAt(b, off, width))
	}
}

// Words writes one word per line as zero-padded hex prefixed by its address.
// Trailing bytes short of a full word are dropped.
func Words(w io.Writer, addr uint64, data []byte, wordSize int, bigEndian bool) error {
	switch wordSize {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("unsupported word size %d", wordSize)
	}
	for off := 0; off+wordSize <= len(data); off += wordSize {
		v := readWord(data[off:off+wordSize], bigEndian)
		fmt.Fprintf(w, "0x%08x 0x%0*x\n", addr+uint64(off), wordSize*2, v)
	}
	return nil
}

// CString renders data as a C string literal definition, 16 bytes per line.
func CString(data []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "#define STRING_SIZE %d\n", len(data))
	sb.WriteString(`const char s[STRING_SIZE] = "`)
	for pos, b := range data {
		if pos > 0 && pos%stringChunk == 0 {
			sb.WriteString("\"\n                            \"")
		}
		fmt.Fprintf(&sb, "\\x%02x", b)
	}
	sb.WriteString(`";`)
	return sb.String()
}

func readWord(b []byte, bigEndian bool) uint64 {
	var v uint64
	if bigEndian {
		for _, c := range b {
			v = v<<8 | uint64(c)
		}
		return v
	}
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// hexCols lays out one row as byte pairs, padded with spaces out to width so
// the gutter stays aligned on the last row.
func hexCols(row []byte, width int) string {
	var sb strings.Builder
	for i := 0; i < width; i++ {
		if i > 0 && i%2 == 0 {
			sb.WriteByte(' ')
		}
		if i < len(row) {
			fmt.Fprintf(&sb, "%02x", row[i])
		} else {
			sb.WriteString("  ")
		}
	}
	return sb.String()
}

func diffCols(x, y []byte, off, width int) string {
	var sb strings.Builder
	for i := 0; i < width; i++ {
		if i > 0 && i%2 == 0 {
			sb.WriteByte(' ')
		}
		idx := off + i
		if idx >= len(x) {
			sb.WriteString("  ")
			continue
		}
		if idx >= len(y) || x[idx] != y[idx] {
			fmt.Fprintf(&sb, "%s%02x%s", common.ColorRed, x[idx], common.ColorReset)
		} else {
			fmt.Fprintf(&sb, "%02x", x[idx])
		}
	}
	return sb.String()
}

func asciiCols(row []byte) string {
	var sb strings.Builder
	for _, b := range row {
		if b >= 0x20 && b <= 0x7e {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func asciiColsAt(x []byte, off, width int) string {
	if off >= len(x) {
		return ""
	}
	return asciiCols(x[off:min(off+width, len(x))])
}

func headerCols(width int) string {
	var sb strings.Builder
	for i := 0; i < width; i++ {
		if i > 0 && i%2 == 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%2X", i&0xf)
	}
	return sb.String()
}

func headerRuler(width int) string {
	var sb strings.Builder
	for i := 0; i < width; i++ {
		fmt.Fprintf(&sb, "%X", i&0xf)
	}
	return sb.String()
}
