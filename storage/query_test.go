package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeBasics(t *testing.T) {
	r := NewRange("mov.l @r8+, r9")
	assert.Equal(t, 14, r.Len())
	assert.Equal(t, "mov.l @r8+, r9", r.Str())

	sub := Range{S: r.S, From: 6, To: 10}
	assert.Equal(t, "@r8+", sub.Str())
	assert.Equal(t, "@r8+", sub.Dup())
	assert.Equal(t, 4, sub.Len())

	// inverted ranges are empty
	assert.Equal(t, 0, Range{S: r.S, From: 5, To: 2}.Len())
	assert.Equal(t, "", Range{S: r.S, From: 5, To: 2}.Str())
}

func TestRangeInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"42", 42},
		{"-17", -17},
		{"[3]", 3},
		{"12abc", 12},
		{"abc", 0},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NewRange(tc.in).Int(), "input %q", tc.in)
	}
}

func TestRangeFindCmp(t *testing.T) {
	r := NewRange("lift/deadbeef")
	assert.Equal(t, 4, r.Find('/'))
	assert.Equal(t, -1, r.Find('!'))

	a := Range{S: "xx_mov_yy", From: 3, To: 6}
	assert.Equal(t, 0, a.Cmp(NewRange("mov")))
	assert.NotEqual(t, 0, a.Cmp(NewRange("movl")))
	assert.NotEqual(t, 0, a.Cmp(NewRange("mvo")))
}

func TestRangeUnquote(t *testing.T) {
	assert.Equal(t, "mov", NewRange(`"mov"`).Unquote())
	assert.Equal(t, `say "hi"`, NewRange(`"say \"hi\""`).Unquote())
	assert.Equal(t, "a\nb", NewRange(`"a\nb"`).Unquote())
	assert.Equal(t, "A", NewRange(`"A"`).Unquote())
	assert.Equal(t, "42", NewRange("42").Unquote())
}

func TestQueryObjectPaths(t *testing.T) {
	doc := `{"insn":{"mnemonic":"mov.l","opcode":27014,"params":["@r8+","r9"]},"valid":true}`

	v, ok := Query(doc, "insn.mnemonic")
	require.True(t, ok)
	assert.Equal(t, `"mov.l"`, v.Str())
	assert.Equal(t, "mov.l", v.Unquote())

	v, ok = Query(doc, "insn.opcode")
	require.True(t, ok)
	assert.Equal(t, 27014, v.Int())

	v, ok = Query(doc, "insn.params.1")
	require.True(t, ok)
	assert.Equal(t, "r9", v.Unquote())

	v, ok = Query(doc, "valid")
	require.True(t, ok)
	assert.Equal(t, "true", v.Str())

	_, ok = Query(doc, "insn.missing")
	assert.False(t, ok)
	_, ok = Query(doc, "insn.params.2")
	assert.False(t, ok)
	_, ok = Query(doc, "insn.params.x")
	assert.False(t, ok)
	_, ok = Query(doc, "valid.deeper")
	assert.False(t, ok)
}

func TestQueryNestedDocuments(t *testing.T) {
	doc := `{
		"a": { "b": [ {"c": 1}, {"c": 2} ] },
		"s": "br,ace } ]",
		"n": null
	}`

	v, ok := Query(doc, "a.b.1.c")
	require.True(t, ok)
	assert.Equal(t, 2, v.Int())

	v, ok = Query(doc, "a.b.0")
	require.True(t, ok)
	assert.Equal(t, `{"c": 1}`, v.Str())

	v, ok = Query(doc, "s")
	require.True(t, ok)
	assert.Equal(t, "br,ace } ]", v.Unquote())

	v, ok = Query(doc, "n")
	require.True(t, ok)
	assert.Equal(t, "null", v.Str())

	whole, ok := Query(doc, "")
	require.True(t, ok)
	assert.Equal(t, byte('{'), whole.S[whole.From])
	assert.Equal(t, byte('}'), whole.S[whole.To-1])
}

func TestQueryMalformedInput(t *testing.T) {
	_, ok := Query("", "a")
	assert.False(t, ok)
	_, ok = Query("   ", "a")
	assert.False(t, ok)
	_, ok = Query(`{"a": `, "a")
	assert.False(t, ok)
	_, ok = Query(`{"a": "unterminated`, "a")
	assert.False(t, ok)
	_, ok = Query(`[1,2]`, "x")
	assert.False(t, ok)
	_, ok = Query(`{"a":1}`, "a..b")
	assert.False(t, ok)
}
