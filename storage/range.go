package storage

import (
	"strconv"
	"strings"
)

// Range marks a substring of a backing document by byte offsets. Query
// results are Ranges into the stored JSON text, so callers can slice values
// out of large documents without unmarshaling them.
type Range struct {
	S    string // backing text
	From int
	To   int
}

// NewRange covers the whole of s.
func NewRange(s string) Range {
	return Range{S: s, From: 0, To: len(s)}
}

// Len returns the number of bytes marked, zero when the range is inverted.
func (r Range) Len() int {
	if r.To > r.From {
		return r.To - r.From
	}
	return 0
}

// Str returns the marked substring.
func (r Range) Str() string {
	if r.Len() == 0 || r.To > len(r.S) {
		return ""
	}
	return r.S[r.From:r.To]
}

// Dup returns a copy of the marked substring detached from the backing text.
func (r Range) Dup() string {
	return strings.Clone(r.Str())
}

// Int parses the range as a decimal integer. A leading '[' is skipped, a
// leading '-' negates, and parsing stops at the first non-digit.
func (r Range) Int() int {
	i := r.From
	if i < r.To && i < len(r.S) && r.S[i] == '[' {
		i++
	}
	mul := 1
	if i < r.To && i < len(r.S) && r.S[i] == '-' {
		mul = -1
		i++
	}
	n := 0
	for ; i < r.To && i < len(r.S); i++ {
		ch := r.S[i]
		if ch < '0' || ch > '9' {
			break
		}
		n = n*10 + int(ch-'0')
	}
	return n * mul
}

// Find returns the absolute offset of the first ch inside the range, or -1
// when absent.
func (r Range) Find(ch byte) int {
	for i := r.From; i < r.To && i < len(r.S); i++ {
		if r.S[i] == ch {
			return i
		}
	}
	return -1
}

// Cmp orders two ranges by their marked text: 0 when equal, otherwise the
// sign of the byte comparison. Ranges of different length are never equal.
func (r Range) Cmp(o Range) int {
	if r.Len() != o.Len() {
		return 1
	}
	return strings.Compare(r.Str(), o.Str())
}

// Unquote strips the quotes from a range marking a JSON string and resolves
// its escapes. Non-string ranges come back unchanged.
func (r Range) Unquote() string {
	s := r.Str()
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	body := s[1 : len(s)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var out strings.Builder
	out.Grow(len(body))
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch != '\\' || i+1 >= len(body) {
			out.WriteByte(ch)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'u':
			if i+4 < len(body) {
				if v, err := strconv.ParseUint(body[i+1:i+5], 16, 32); err == nil {
					out.WriteRune(rune(v))
					i += 4
					continue
				}
			}
			out.WriteByte('u')
		default:
			out.WriteByte(body[i])
		}
	}
	return out.String()
}
