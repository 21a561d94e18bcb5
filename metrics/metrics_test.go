package metrics

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/ropekit/rope"
)

func mustRope(t *testing.T, s string) rope.Rope {
	t.Helper()
	r, err := rope.FromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestLinesAndRunes(t *testing.T) {
	r := mustRope(t, "one\ntwo\nthree\n")
	if n := Lines(r); n != 3 {
		t.Errorf("Lines = %d, want 3", n)
	}
	if n := Runes(r); n != 14 {
		t.Errorf("Runes = %d, want 14", n)
	}
	multi := mustRope(t, "ä二𐌂")
	if n := Runes(multi); n != 3 {
		t.Errorf("Runes = %d, want 3", n)
	}
}

func TestGraphemes(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	r := mustRope(t, "hello")
	if n := Graphemes(r); n != 5 {
		t.Errorf("Graphemes = %d, want 5", n)
	}
	if n := Graphemes(rope.New()); n != 0 {
		t.Errorf("Graphemes(empty) = %d", n)
	}
}

func TestWidth(t *testing.T) {
	r := mustRope(t, "abc")
	if w := Width(r, nil); w != 3 {
		t.Errorf("Width = %d, want 3", w)
	}
	if w := Width(rope.New(), nil); w != 0 {
		t.Errorf("Width(empty) = %d", w)
	}
}

func TestWords(t *testing.T) {
	r := mustRope(t, "the quick  brown\nfox")
	spans, err := Words(r, 0, uint64(r.Size()))
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 4 {
		t.Fatalf("got %d spans: %+v", len(spans), spans)
	}
	if spans[0].Pos != 0 || spans[0].Len != 3 {
		t.Errorf("first span = %+v", spans[0])
	}
	if spans[3].Pos != 17 || spans[3].Len != 3 {
		t.Errorf("last span = %+v", spans[3])
	}
	if WordCount(r) != 4 {
		t.Errorf("WordCount = %d", WordCount(r))
	}
}

func TestLineBreaks(t *testing.T) {
	r := mustRope(t, "aaa bbb ccc ddd eee")
	breaks := LineBreaks(r, 8, nil)
	if len(breaks) == 0 {
		t.Fatalf("expected line breaks for narrow width")
	}
	last := uint64(0)
	for _, b := range breaks {
		if b < last || b > uint64(r.Size()) {
			t.Errorf("break positions must be ascending and in range: %v", breaks)
		}
		last = b
	}
}
