package metrics

import (
	"unicode"
	"unicode/utf8"

	"github.com/ropekit/rope"
)

// Span is a byte-range descriptor inside a rope snapshot.
//
// Pos is the start byte offset, Len is the span length in bytes.
type Span struct {
	Pos uint64
	Len uint64
}

// Words scans [i,j) of the rope for whitespace-separated words and returns
// their spans in rope coordinates.
func Words(r rope.Rope, i, j uint64) ([]Span, error) {
	if i > uint64(r.Size()) || j > uint64(r.Size()) || j < i {
		return nil, rope.ErrIndexOutOfBounds
	}
	if i == j {
		return nil, nil
	}
	content, err := r.Report(int64(i), int64(j-i))
	if err != nil {
		return nil, err
	}
	return findWordSpans([]byte(content), i), nil
}

// WordCount returns the number of whitespace-separated words in the rope.
func WordCount(r rope.Rope) int {
	spans, err := Words(r, 0, uint64(r.Size()))
	if err != nil {
		return 0
	}
	return len(spans)
}

func findWordSpans(b []byte, base uint64) []Span {
	spans := make([]Span, 0, 8)
	for pos := 0; pos < len(b); {
		r, width := utf8.DecodeRune(b[pos:])
		if unicode.IsSpace(r) {
			pos += width
			continue
		}
		start := pos
		pos += width
		for pos < len(b) {
			r, width = utf8.DecodeRune(b[pos:])
			if unicode.IsSpace(r) {
				break
			}
			pos += width
		}
		spans = append(spans, Span{
			Pos: base + uint64(start),
			Len: uint64(pos - start),
		})
	}
	return spans
}
