package rope

import (
	"math/rand"
	"strings"
	"testing"
)

func benchRope(b *testing.B, size int) Rope {
	b.Helper()
	r, err := FromBytes([]byte(strings.Repeat("0123456789abcdef", size/16+1)))
	if err != nil {
		b.Fatal(err)
	}
	return r
}

func BenchmarkInsertSequential(b *testing.B) {
	r := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := r.Insert(r.Size(), "fragment "); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInsertRandom(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	r := benchRope(b, 1<<16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		at := int64(rng.Intn(int(r.Size())))
		if err := r.Insert(at, "x"); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkByteAccess(b *testing.B) {
	rng := rand.New(rand.NewSource(2))
	r := benchRope(b, 1<<20)
	size := int(r.Size())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Byte(int64(rng.Intn(size))); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIterate(b *testing.B) {
	r := benchRope(b, 1<<16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for it := r.Begin(); it.Valid(); it.Next() {
			_ = it.Byte()
		}
	}
}

func BenchmarkEraseInsertRoundTrip(b *testing.B) {
	rng := rand.New(rand.NewSource(3))
	r := benchRope(b, 1<<18)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		at := int64(rng.Intn(int(r.Size()) - 64))
		if err := r.Erase(at, at+16); err != nil {
			b.Fatal(err)
		}
		if err := r.Insert(at, "0123456789abcdef"); err != nil {
			b.Fatal(err)
		}
	}
}
