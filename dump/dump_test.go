package dump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/narwhalsec/shil/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexdump(t *testing.T) {
	var buf bytes.Buffer
	Hexdump(&buf, 0x8000, []byte("Hello, SuperH world!"), Config{})

	want := strings.Join([]string{
		"- offset -   0 1  2 3  4 5  6 7  8 9  A B  C D  E F  0123456789ABCDEF",
		"0x00008000  4865 6c6c 6f2c 2053 7570 6572 4820 776f  Hello, SuperH wo",
		"0x00008010  726c 6421" + strings.Repeat(" ", 30) + "  rld!",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestHexdumpOptions(t *testing.T) {
	var buf bytes.Buffer
	Hexdump(&buf, 0, []byte{0xde, 0xad, 0xbe, 0xef}, Config{Width: 4, NoHeader: true})
	assert.Equal(t, "0x00000000  dead beef  ....\n", buf.String())

	buf.Reset()
	Hexdump(&buf, 0, []byte{0x41, 0x42}, Config{Width: 2, NoHeader: true, NoASCII: true})
	assert.Equal(t, "0x00000000  4142\n", buf.String())

	buf.Reset()
	Hexdump(&buf, 0, []byte{0x41, 0x42}, Config{Width: 2, NoASCII: true})
	assert.Equal(t, "- offset -   0 1\n0x00000000  4142\n", buf.String())
}

func TestHexDiff(t *testing.T) {
	var buf bytes.Buffer
	a := []byte{0x69, 0x86, 0x28, 0x96}
	b := []byte{0x69, 0x87, 0x28, 0x96}
	HexDiff(&buf, 0x8000, a, 0x9000, b)

	pad := strings.Repeat(" ", 30)
	want := "- 0x00008000  69" + common.ColorRed + "86" + common.ColorReset + " 2896" + pad + "  i.(.\n" +
		"+ 0x00009000  69" + common.ColorRed + "87" + common.ColorReset + " 2896" + pad + "  i.(.\n"
	assert.Equal(t, want, buf.String())
}

func TestHexDiffLengthMismatch(t *testing.T) {
	var buf bytes.Buffer
	a := []byte{1, 2, 3}
	b := []byte{1, 2, 3, 4, 5}
	HexDiff(&buf, 0, a, 0, b)

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	// the shared bytes match, only b's two extra bytes are marked
	assert.Equal(t, 2, strings.Count(out, common.ColorRed))
	assert.NotContains(t, lines[0], common.ColorRed)
	assert.Contains(t, lines[1], common.ColorRed)
}

func TestWords(t *testing.T) {
	var buf bytes.Buffer
	data := []byte{0x12, 0x34, 0x56, 0x78, 0x9a}

	require.NoError(t, Words(&buf, 0, data, 2, true))
	assert.Equal(t, "0x00000000 0x1234\n0x00000002 0x5678\n", buf.String())

	buf.Reset()
	require.NoError(t, Words(&buf, 0, data, 2, false))
	assert.Equal(t, "0x00000000 0x3412\n0x00000002 0x7856\n", buf.String())

	buf.Reset()
	require.NoError(t, Words(&buf, 0x8000, data, 4, true))
	assert.Equal(t, "0x00008000 0x12345678\n", buf.String())

	assert.Error(t, Words(&buf, 0, data, 3, true))
}

func TestCString(t *testing.T) {
	got := CString([]byte("Hello, SuperH world!"))
	want := "#define STRING_SIZE 20\n" +
		`const char s[STRING_SIZE] = "\x48\x65\x6c\x6c\x6f\x2c\x20\x53\x75\x70\x65\x72\x48\x20\x77\x6f"` + "\n" +
		strings.Repeat(" ", 28) + `"\x72\x6c\x64\x21";`
	assert.Equal(t, want, got)

	assert.Equal(t, "#define STRING_SIZE 0\nconst char s[STRING_SIZE] = \"\";", CString(nil))
}
