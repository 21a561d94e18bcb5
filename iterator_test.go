package rope

import (
	"testing"

	"github.com/ropekit/rope/text"
)

func fragmentedRope(t *testing.T, parts ...string) Rope {
	t.Helper()
	r := New()
	for _, p := range parts {
		if err := r.InsertView(r.Size(), text.ViewOfString(p)); err != nil {
			t.Fatal(err)
		}
	}
	return r
}

func TestIteratorForward(t *testing.T) {
	r := fragmentedRope(t, "Hel", "lo ", "Wor", "ld")
	want := "Hello World"
	it := r.Begin()
	for i := 0; i < len(want); i++ {
		if !it.Valid() {
			t.Fatalf("iterator invalid at %d", i)
		}
		if c := it.Byte(); c != want[i] {
			t.Fatalf("byte %d = %c, want %c", i, c, want[i])
		}
		it.Next()
	}
	if it.Valid() {
		t.Errorf("iterator valid past the end")
	}
	if !it.Equal(r.End()) {
		t.Errorf("iterator does not reach End")
	}
}

func TestIteratorBackward(t *testing.T) {
	r := fragmentedRope(t, "Hel", "lo ", "Wor", "ld")
	want := "Hello World"
	it := r.End()
	for i := len(want) - 1; i >= 0; i-- {
		it.Prev()
		if c := it.Byte(); c != want[i] {
			t.Fatalf("byte %d = %c, want %c", i, c, want[i])
		}
	}
	if !it.Equal(r.Begin()) {
		t.Errorf("iterator does not reach Begin")
	}
}

func TestIteratorRandomAccess(t *testing.T) {
	r := fragmentedRope(t, "Hel", "lo ", "Wor", "ld")
	want := "Hello World"
	it := r.Begin()
	for k := 0; k < len(want); k++ {
		if c := it.At(int64(k)); c != want[k] {
			t.Errorf("At(%d) = %c, want %c", k, c, want[k])
		}
	}
	jump := r.Begin()
	jump.Add(6)
	if c := jump.Byte(); c != 'W' {
		t.Errorf("after Add(6): %c, want W", c)
	}
	jump.Add(-2)
	if c := jump.Byte(); c != 'o' {
		t.Errorf("after Add(-2): %c, want o", c)
	}
	if d := jump.Sub(r.Begin()); d != 4 {
		t.Errorf("distance = %d, want 4", d)
	}
}

func TestIteratorPostIncrementEquivalence(t *testing.T) {
	r := fragmentedRope(t, "ab", "cd")
	it := r.Begin()
	copied := it
	it.Next()
	if copied.Byte() != 'a' || it.Byte() != 'b' {
		t.Errorf("copy-then-advance broken: %c / %c", copied.Byte(), it.Byte())
	}
	if !copied.Less(it) {
		t.Errorf("ordering broken")
	}
}

func TestIteratorAcrossRepeatedLeaf(t *testing.T) {
	r := New()
	if err := r.Insert(0, "xy"); err != nil {
		t.Fatal(err)
	}
	if err := r.InsertRepeated(1, text.Repeat(text.ViewOfString("ab"), 2)); err != nil {
		t.Fatal(err)
	}
	want := "xababy"
	got := make([]byte, 0, len(want))
	for it := r.Begin(); it.Valid(); it.Next() {
		got = append(got, it.Byte())
	}
	if string(got) != want {
		t.Errorf("iterated %q, want %q", got, want)
	}
}
