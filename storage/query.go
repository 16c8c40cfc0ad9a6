package storage

import (
	"strconv"
	"strings"
)

// Query resolves a dotted path through a JSON document without unmarshaling
// it. Path segments name object keys; when the current value is an array the
// segment must be a decimal element index. The returned Range marks the
// matched value inside doc. An empty path yields the whole document.
//
//	Query(`{"regs":{"r0":[1,2]}}`, "regs.r0.1")  ->  "2"
func Query(doc string, path string) (Range, bool) {
	cur := trimRange(NewRange(doc))
	if cur.Len() == 0 {
		return Range{}, false
	}
	if path == "" {
		return cur, true
	}
	for _, seg := range strings.Split(path, ".") {
		if seg == "" {
			return Range{}, false
		}
		var ok bool
		switch doc[cur.From] {
		case '{':
			cur, ok = objectField(cur, seg)
		case '[':
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return Range{}, false
			}
			cur, ok = arrayElem(cur, idx)
		default:
			return Range{}, false
		}
		if !ok {
			return Range{}, false
		}
		cur = trimRange(cur)
	}
	return cur, true
}

// objectField returns the range of the value stored under key in the object
// marked by r. Keys are compared raw, so escaped key text only matches its
// escaped form.
func objectField(r Range, key string) (Range, bool) {
	s, end := r.S, r.To
	i := skipSpace(s, r.From, end)
	if i >= end || s[i] != '{' {
		return Range{}, false
	}
	i++
	for {
		i = skipSpace(s, i, end)
		if i >= end || s[i] != '"' {
			return Range{}, false
		}
		keyEnd := scanString(s, i, end)
		if keyEnd < 0 {
			return Range{}, false
		}
		name := s[i+1 : keyEnd-1]
		i = skipSpace(s, keyEnd, end)
		if i >= end || s[i] != ':' {
			return Range{}, false
		}
		i = skipSpace(s, i+1, end)
		valEnd := scanValue(s, i, end)
		if valEnd < 0 {
			return Range{}, false
		}
		if name == key {
			return Range{S: s, From: i, To: valEnd}, true
		}
		i = skipSpace(s, valEnd, end)
		if i >= end || s[i] != ',' {
			return Range{}, false
		}
		i++
	}
}

// arrayElem returns the range of element idx in the array marked by r.
func arrayElem(r Range, idx int) (Range, bool) {
	if idx < 0 {
		return Range{}, false
	}
	s, end := r.S, r.To
	i := skipSpace(s, r.From, end)
	if i >= end || s[i] != '[' {
		return Range{}, false
	}
	i++
	for n := 0; ; n++ {
		i = skipSpace(s, i, end)
		if i >= end || s[i] == ']' {
			return Range{}, false
		}
		valEnd := scanValue(s, i, end)
		if valEnd < 0 {
			return Range{}, false
		}
		if n == idx {
			return Range{S: s, From: i, To: valEnd}, true
		}
		i = skipSpace(s, valEnd, end)
		if i >= end || s[i] != ',' {
			return Range{}, false
		}
		i++
	}
}

// scanValue returns the index just past the JSON value starting at s[i],
// or -1 on malformed input.
func scanValue(s string, i, end int) int {
	i = skipSpace(s, i, end)
	if i >= end {
		return -1
	}
	switch s[i] {
	case '"':
		return scanString(s, i, end)
	case '{', '[':
		depth := 0
		for i < end {
			switch s[i] {
			case '"':
				next := scanString(s, i, end)
				if next < 0 {
					return -1
				}
				i = next
				continue
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					return i + 1
				}
			}
			i++
		}
		return -1
	default:
		for i < end && strings.IndexByte(",]} \t\n\r", s[i]) < 0 {
			i++
		}
		return i
	}
}

// scanString returns the index just past the closing quote of the string
// starting at s[i] (which must be '"'), or -1 when unterminated.
func scanString(s string, i, end int) int {
	for i++; i < end; i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return -1
}

func skipSpace(s string, i, end int) int {
	for i < end {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

func trimRange(r Range) Range {
	from := skipSpace(r.S, r.From, r.To)
	to := r.To
	for to > from {
		switch r.S[to-1] {
		case ' ', '\t', '\n', '\r':
			to--
		default:
			return Range{S: r.S, From: from, To: to}
		}
	}
	return Range{S: r.S, From: from, To: to}
}
