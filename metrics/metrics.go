package metrics

import (
	"bufio"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"github.com/npillmayer/uax/uax14"

	"github.com/ropekit/rope"
)

var setupGraphemes sync.Once

// Lines returns the number of newline characters in the rope, counted
// segment-wise.
func Lines(r rope.Rope) int {
	cnt := 0
	_ = r.EachSegment(func(seg rope.Segment, _ int64) error {
		for _, c := range seg.Bytes() {
			if c == '\n' {
				cnt++
			}
		}
		return nil
	})
	return cnt
}

// Runes returns the number of UTF-8 code points in the rope, counted
// segment-wise.
func Runes(r rope.Rope) int {
	cnt := 0
	_ = r.EachSegment(func(seg rope.Segment, _ int64) error {
		cnt += utf8.RuneCount(seg.Bytes())
		return nil
	})
	return cnt
}

// Graphemes returns the number of grapheme clusters in the rope.
//
// Clusters may span leaf boundaries, so the rope content is materialized for
// the UAX#29 pass.
func Graphemes(r rope.Rope) int {
	if r.IsEmpty() {
		return 0
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	return grapheme.StringFromString(r.String()).Len()
}

// Width returns the fixed-width display width of the rope content in `en`
// units, following UAX#11. A nil context selects uax11.LatinContext.
func Width(r rope.Rope, context *uax11.Context) int {
	if r.IsEmpty() {
		return 0
	}
	if context == nil {
		context = uax11.LatinContext
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	return uax11.StringWidth(grapheme.StringFromString(r.String()), context)
}

// LineBreaks returns byte positions at which the rope content should be
// broken to fit lines of the given display width (first-fit).
//
// The result positions are ascending and exclusive of position 0. A nil
// context selects uax11.LatinContext.
func LineBreaks(r rope.Rope, linewidth int, context *uax11.Context) []uint64 {
	if r.IsEmpty() || linewidth <= 0 {
		return nil
	}
	if context == nil {
		context = uax11.LatinContext
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	linewrap := uax14.NewLineWrap()
	segmenter := segment.NewSegmenter(linewrap)
	segmenter.Init(bufio.NewReader(r.Reader()))
	spaceleft := linewidth
	breaks := make([]uint64, 0, 20)
	prevpos := 0
	linestart := true
	for segmenter.Next() {
		frag := string(segmenter.Bytes())
		gstr := grapheme.StringFromString(frag)
		fraglen := uax11.StringWidth(gstr, context)
		if fraglen >= spaceleft {
			if linestart { // fragment is too long for a line
				breaks = append(breaks, uint64(prevpos+len(frag)))
				spaceleft = linewidth
			} else { // fragment overshoots the line
				breaks = append(breaks, uint64(prevpos))
				spaceleft = linewidth - fraglen
			}
		} else {
			spaceleft -= fraglen
			linestart = false
		}
		prevpos += len(frag)
	}
	if spaceleft < linewidth { // a partial line remains
		breaks = append(breaks, uint64(r.Size()))
	}
	tracer().Debugf("metrics: %d line breaks for width %d", len(breaks), linewidth)
	return breaks
}
