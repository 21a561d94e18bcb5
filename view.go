package rope

import (
	"fmt"

	"github.com/ropekit/rope/utf8x"
)

// View is a half-open byte range [lo,hi) into a rope.
//
// A view borrows the rope; it is stable as long as the underlying rope is
// not mutated. Use-after-mutation is not detected beyond the boundary
// assertions of the accessors.
type View struct {
	r      *Rope
	lo, hi int64
}

// View creates a view of [lo,hi), validating that both boundaries lie on
// UTF-8 code-point boundaries.
func (r *Rope) View(lo, hi int64) (View, error) {
	if lo < 0 || hi < lo || hi > r.Size() {
		return View{}, ErrIndexOutOfBounds
	}
	v := View{r: r, lo: lo, hi: hi}
	if !utf8x.StartsEncoded(r.report(lo, min(lo+4, r.Size()))) {
		return View{}, fmt.Errorf("%w: view start bisects code point", ErrInvalidEncoding)
	}
	if !utf8x.EndsEncoded(r.report(max(hi-4, 0), hi)) {
		return View{}, fmt.Errorf("%w: view end bisects code point", ErrInvalidEncoding)
	}
	return v, nil
}

// ViewUnchecked creates a view of [lo,hi) without boundary validation.
func (r *Rope) ViewUnchecked(lo, hi int64) View {
	assert(0 <= lo && lo <= hi && hi <= r.Size(), "rope: view range out of bounds")
	return View{r: r, lo: lo, hi: hi}
}

// AllView returns a view spanning the whole rope.
func (r *Rope) AllView() View {
	return View{r: r, lo: 0, hi: r.Size()}
}

// Size returns the view length in bytes.
func (v View) Size() int64 { return v.hi - v.lo }

// IsEmpty reports whether the view has no bytes.
func (v View) IsEmpty() bool { return v.lo == v.hi }

// Byte returns the byte at view-local offset i.
func (v View) Byte(i int64) (byte, error) {
	if i < 0 || i >= v.Size() {
		return 0, ErrIndexOutOfBounds
	}
	return v.r.Byte(v.lo + i)
}

// Slice returns the sub-view [lo,hi) in view-local coordinates. Negative
// arguments count from the end.
func (v View) Slice(lo, hi int64) View {
	if lo < 0 {
		lo += v.Size()
	}
	if hi < 0 {
		hi += v.Size()
	}
	assert(0 <= lo && lo <= v.Size(), "rope: view slice start out of range")
	assert(lo <= hi && hi <= v.Size(), "rope: view slice end out of range")
	return View{r: v.r, lo: v.lo + lo, hi: v.lo + hi}
}

// Cut returns the prefix of length cut, or for negative cut the suffix of
// length -cut.
func (v View) Cut(cut int64) View {
	lo, hi := int64(0), cut
	if cut < 0 {
		lo = cut + v.Size()
		hi = v.Size()
	}
	return v.Slice(lo, hi)
}

// String materializes the viewed range.
func (v View) String() string {
	if v.r == nil {
		return ""
	}
	return string(v.r.report(v.lo, v.hi))
}

// owner returns the viewed rope, or an empty rope for the zero view.
func (v View) owner() Rope {
	if v.r == nil {
		return Rope{}
	}
	return *v.r
}

// Rope returns an owning rope for the viewed range.
func (v View) Rope() Rope {
	if v.IsEmpty() {
		return Rope{}
	}
	sub, err := v.r.Substr(v.lo, v.hi)
	assert(err == nil, "rope: view range must stay valid")
	return sub
}

// Compare orders views lexicographically on their byte content.
func (v View) Compare(other View) int {
	return compareStreams(
		newFragmentStream(v.owner(), v.lo, v.hi),
		newFragmentStream(other.owner(), other.lo, other.hi),
	)
}

// Equal reports byte equality with other.
func (v View) Equal(other View) bool {
	if v.Size() != other.Size() {
		return false
	}
	return v.Compare(other) == 0
}
