package text

import "bytes"

// View is a non-owning slice of text owned elsewhere.
//
// Views are trivially copyable values. The borrowed bytes must remain alive
// and unmodified for as long as the view is used.
type View struct {
	data []byte
}

// NewView creates a view borrowing b.
func NewView(b []byte) View {
	return View{data: b}
}

// ViewOfString creates a view of a string's bytes.
//
// The conversion copies, so views of string literals are always safe to keep.
func ViewOfString(s string) View {
	return View{data: []byte(s)}
}

// Size returns the view length in bytes.
func (v View) Size() int { return len(v.data) }

// IsEmpty reports whether the view has no bytes.
func (v View) IsEmpty() bool { return len(v.data) == 0 }

// Byte returns the byte at offset i.
func (v View) Byte(i int) byte {
	assert(0 <= i && i < len(v.data), "text: view offset out of range")
	return v.data[i]
}

// Bytes returns the borrowed bytes without copying.
func (v View) Bytes() []byte { return v.data }

// String returns a copy of the view content.
func (v View) String() string { return string(v.data) }

// Slice returns the sub-view [lo,hi). Negative arguments count from the end.
func (v View) Slice(lo, hi int) View {
	if lo < 0 {
		lo += len(v.data)
	}
	if hi < 0 {
		hi += len(v.data)
	}
	assert(0 <= lo && lo <= len(v.data), "text: slice start out of range")
	assert(lo <= hi && hi <= len(v.data), "text: slice end out of range")
	return View{data: v.data[lo:hi]}
}

// Cut returns the prefix of length cut, or for negative cut the suffix of
// length -cut.
func (v View) Cut(cut int) View {
	lo, hi := 0, cut
	if cut < 0 {
		lo = cut + len(v.data)
		hi = len(v.data)
	}
	return v.Slice(lo, hi)
}

// NullTerminated reports whether the view is non-empty and ends in a zero byte.
func (v View) NullTerminated() bool {
	return len(v.data) > 0 && v.data[len(v.data)-1] == 0
}

// StripNull removes a single trailing zero byte, if present.
func (v View) StripNull() View {
	if v.NullTerminated() {
		return View{data: v.data[:len(v.data)-1]}
	}
	return v
}

// Compare orders views lexicographically on bytes.
func (v View) Compare(other View) int {
	return bytes.Compare(v.data, other.data)
}

// Equal reports byte equality with other.
func (v View) Equal(other View) bool {
	return bytes.Equal(v.data, other.data)
}
