package text

import (
	"bytes"
	"fmt"

	"github.com/ropekit/rope/utf8x"
)

// Text is an owned, growable, UTF-8 character buffer.
//
// The backing storage always reserves one byte past Size for a zero sentinel,
// so Size < Capacity whenever storage is allocated. A zero-value Text is a
// valid empty buffer.
type Text struct {
	data []byte // len(data) == Capacity; data[size] == 0 when allocated
	size int
}

// FromString creates a Text holding a copy of s.
//
// The input must be valid UTF-8.
func FromString(s string) (Text, error) {
	var t Text
	if err := t.InsertBytes(0, []byte(s)); err != nil {
		return Text{}, err
	}
	return t, nil
}

// FromView creates a Text holding a copy of the view's bytes.
func FromView(v View) (Text, error) {
	var t Text
	if err := t.Insert(0, v); err != nil {
		return Text{}, err
	}
	return t, nil
}

// FromRepeated creates a Text by materializing a repeated view.
func FromRepeated(rv RepeatedView) (Text, error) {
	var t Text
	if err := t.InsertRepeated(0, rv); err != nil {
		return Text{}, err
	}
	return t, nil
}

// Size returns the buffer length in bytes.
func (t *Text) Size() int { return t.size }

// Capacity returns the allocated storage size, including the sentinel byte.
func (t *Text) Capacity() int { return len(t.data) }

// IsEmpty reports whether the buffer has no bytes.
func (t *Text) IsEmpty() bool { return t.size == 0 }

// Available returns the number of content bytes that fit into the current
// storage without growing, keeping room for the sentinel.
func (t *Text) Available() int {
	if len(t.data) == 0 {
		return 0
	}
	return len(t.data) - 1 - t.size
}

// Byte returns the byte at offset i.
func (t *Text) Byte(i int) byte {
	assert(0 <= i && i < t.size, "text: byte offset out of range")
	return t.data[i]
}

// SetByte overwrites the byte at offset i.
//
// The caller is responsible for keeping the buffer well-formed; boundary
// validation happens on the structural entry points only.
func (t *Text) SetByte(i int, c byte) {
	assert(0 <= i && i < t.size, "text: byte offset out of range")
	t.data[i] = c
}

// Bytes returns the buffer content without the sentinel. The slice borrows
// the buffer and is invalidated by any mutation.
func (t *Text) Bytes() []byte {
	return t.data[:t.size]
}

// String returns a copy of the buffer content.
func (t *Text) String() string {
	return string(t.data[:t.size])
}

// AsView returns a view borrowing the whole buffer.
func (t *Text) AsView() View {
	return View{data: t.data[:t.size]}
}

// Slice returns a view of [lo,hi). Negative arguments count from the end.
func (t *Text) Slice(lo, hi int) View {
	return t.AsView().Slice(lo, hi)
}

// Clear resets the buffer to empty, keeping its storage.
func (t *Text) Clear() {
	t.size = 0
	if len(t.data) > 0 {
		t.data[0] = 0
	}
}

// Reserve grows the storage to hold at least n content bytes plus sentinel.
func (t *Text) Reserve(n int) {
	assert(n >= 0, "text: negative reserve")
	if n+1 <= len(t.data) {
		return
	}
	data := make([]byte, n+1)
	copy(data, t.data[:t.size])
	t.data = data
}

// ShrinkToFit reduces the storage to Size plus sentinel.
func (t *Text) ShrinkToFit() {
	if len(t.data) == 0 || len(t.data) == t.size+1 {
		return
	}
	data := make([]byte, t.size+1)
	copy(data, t.data[:t.size])
	t.data = data
}

// Insert inserts the view's bytes at offset at.
//
// A trailing zero byte on the view is stripped first. The insertion point
// must lie on a code-point boundary and the inserted bytes must be
// well-formed at both ends.
func (t *Text) Insert(at int, v View) error {
	if at < 0 || at > t.size {
		return ErrIndexOutOfBounds
	}
	v = v.StripNull()
	if v.IsEmpty() {
		return nil
	}
	if err := t.checkSeam(at, v.data); err != nil {
		return err
	}
	t.spliceIn(at, v.Size(), func(buf []byte) {
		copy(buf, v.data)
	})
	return nil
}

// InsertRepeated inserts count copies of a view at offset at.
func (t *Text) InsertRepeated(at int, rv RepeatedView) error {
	if at < 0 || at > t.size {
		return ErrIndexOutOfBounds
	}
	rv = rv.StripNull()
	if rv.Size() == 0 {
		return nil
	}
	if err := t.checkSeam(at, rv.view.data); err != nil {
		return err
	}
	t.spliceIn(at, rv.Size(), func(buf []byte) {
		for i := 0; i < rv.count; i++ {
			copy(buf[i*rv.view.Size():], rv.view.data)
		}
	})
	return nil
}

// InsertBytes inserts a byte sequence at offset at with the strong guarantee:
// the buffer is unchanged if validation fails.
//
// Unlike Insert, the whole sequence is validated, since it typically comes
// from an untrusted iterator-style source rather than from text already held
// in a rope.
func (t *Text) InsertBytes(at int, p []byte) error {
	if at < 0 || at > t.size {
		return ErrIndexOutOfBounds
	}
	if n := len(p); n > 0 && p[n-1] == 0 {
		p = p[:n-1]
	}
	if len(p) == 0 {
		return nil
	}
	if !utf8x.Encoded(p) {
		return fmt.Errorf("%w: inserted payload is not well-formed", ErrInvalidEncoding)
	}
	if at < t.size && !utf8x.StartsEncoded(t.data[at:t.size]) {
		return fmt.Errorf("%w: insertion point bisects code point", ErrInvalidEncoding)
	}
	// Stage into fresh storage so a failed allocation cannot leave the
	// buffer partially modified.
	staged := make([]byte, t.size+len(p)+1)
	n := copy(staged, t.data[:at])
	n += copy(staged[n:], p)
	n += copy(staged[n:], t.data[at:t.size])
	staged[n] = 0
	t.data = staged
	t.size = n
	return nil
}

// EraseRange removes the bytes in [lo,hi).
func (t *Text) EraseRange(lo, hi int) error {
	if lo < 0 || hi < lo || hi > t.size {
		return ErrIndexOutOfBounds
	}
	if lo == hi {
		return nil
	}
	if !utf8x.Boundary(t.data[:t.size], lo) || !utf8x.Boundary(t.data[:t.size], hi) {
		return fmt.Errorf("%w: erase range bisects code point", ErrInvalidEncoding)
	}
	copy(t.data[lo:], t.data[hi:t.size])
	t.size -= hi - lo
	t.data[t.size] = 0
	return nil
}

// EraseRangeUnchecked removes [lo,hi) without boundary validation.
//
// This is the unsafe erase used by structural rope edits that carry the
// breakage-ok encoding note; the caller takes over the well-formedness
// obligation.
func (t *Text) EraseRangeUnchecked(lo, hi int) {
	assert(0 <= lo && lo <= hi && hi <= t.size, "text: erase range out of bounds")
	if lo == hi {
		return
	}
	copy(t.data[lo:], t.data[hi:t.size])
	t.size -= hi - lo
	t.data[t.size] = 0
}

// Replace substitutes [lo,hi) with the view's bytes.
func (t *Text) Replace(lo, hi int, v View) error {
	if err := t.EraseRange(lo, hi); err != nil {
		return err
	}
	return t.Insert(lo, v)
}

// Resize sets the buffer length to n, filling new bytes with c.
//
// The fill byte must be ASCII and a truncation must end on a code-point
// boundary.
func (t *Text) Resize(n int, c byte) error {
	if n < 0 {
		return ErrIndexOutOfBounds
	}
	if c >= 0x80 {
		return fmt.Errorf("%w: fill byte is not ASCII", ErrInvalidEncoding)
	}
	if n < t.size && !utf8x.Boundary(t.data[:t.size], n) {
		return fmt.Errorf("%w: truncation bisects code point", ErrInvalidEncoding)
	}
	if n+1 > len(t.data) {
		t.reserveGrown(n)
	}
	for i := t.size; i < n; i++ {
		t.data[i] = c
	}
	t.size = n
	t.data[n] = 0
	return nil
}

// Compare orders buffers lexicographically on bytes.
func (t *Text) Compare(other *Text) int {
	return bytes.Compare(t.Bytes(), other.Bytes())
}

// Equal reports byte equality with other.
func (t *Text) Equal(other *Text) bool {
	return bytes.Equal(t.Bytes(), other.Bytes())
}

// checkSeam validates the insertion point and the payload's two ends.
func (t *Text) checkSeam(at int, payload []byte) error {
	if at < t.size && !utf8x.StartsEncoded(t.data[at:t.size]) {
		return fmt.Errorf("%w: insertion point bisects code point", ErrInvalidEncoding)
	}
	if !utf8x.StartsEncoded(payload) || !utf8x.EndsEncoded(payload) {
		return fmt.Errorf("%w: inserted payload is not well-formed", ErrInvalidEncoding)
	}
	return nil
}

// spliceIn opens a gap of delta bytes at offset at and lets fill write into it.
func (t *Text) spliceIn(at, delta int, fill func([]byte)) {
	assert(delta > 0, "text: splice without payload")
	if t.size+delta+1 > len(t.data) {
		t.reserveGrown(t.size + delta)
	}
	copy(t.data[at+delta:], t.data[at:t.size])
	fill(t.data[at : at+delta])
	t.size += delta
	t.data[t.size] = 0
}

// reserveGrown grows storage following the max(8, size)*3/2 policy until it
// holds n content bytes plus sentinel.
func (t *Text) reserveGrown(n int) {
	grown := t.size
	if grown < 8 {
		grown = 8
	}
	for grown < n {
		grown = grown / 2 * 3
	}
	data := make([]byte, grown+1)
	copy(data, t.data[:t.size])
	t.data = data
}
