package text

// RepeatedView is a logical concatenation of count copies of a view.
//
// The repetition is lazy: no storage proportional to Size is held.
type RepeatedView struct {
	view  View
	count int
}

// Repeat creates a repeated view. Count must not be negative.
func Repeat(v View, count int) RepeatedView {
	assert(count >= 0, "text: negative repetition count")
	return RepeatedView{view: v, count: count}
}

// View returns the repeated view.
func (rv RepeatedView) View() View { return rv.view }

// Count returns the repetition count.
func (rv RepeatedView) Count() int { return rv.count }

// Size returns the logical length in bytes.
func (rv RepeatedView) Size() int { return rv.view.Size() * rv.count }

// IsEmpty reports whether the logical content has no bytes.
func (rv RepeatedView) IsEmpty() bool { return rv.Size() == 0 }

// Byte returns the byte at logical offset i.
func (rv RepeatedView) Byte(i int) byte {
	assert(0 <= i && i < rv.Size(), "text: repeated view offset out of range")
	return rv.view.data[i%rv.view.Size()]
}

// StripNull removes a trailing zero from the underlying view.
func (rv RepeatedView) StripNull() RepeatedView {
	if rv.view.NullTerminated() {
		return RepeatedView{view: rv.view.StripNull(), count: rv.count}
	}
	return rv
}

// Materialize expands the repetition into a fresh byte slice.
func (rv RepeatedView) Materialize() []byte {
	out := make([]byte, 0, rv.Size())
	for i := 0; i < rv.count; i++ {
		out = append(out, rv.view.data...)
	}
	return out
}

// MaterializeRange expands the logical range [lo,hi) into a fresh byte slice.
func (rv RepeatedView) MaterializeRange(lo, hi int) []byte {
	assert(0 <= lo && lo <= hi && hi <= rv.Size(), "text: repeated view range out of bounds")
	out := make([]byte, 0, hi-lo)
	n := rv.view.Size()
	for i := lo; i < hi; i++ {
		out = append(out, rv.view.data[i%n])
	}
	return out
}

// String materializes the repetition as a Go string.
func (rv RepeatedView) String() string {
	return string(rv.Materialize())
}
