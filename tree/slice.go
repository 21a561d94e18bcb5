package tree

import (
	"github.com/ropekit/rope/text"
)

// SliceLeaf returns a leaf logically representing leaf[lo..hi).
//
// The function consumes one reference to leaf and returns a node owning one
// reference; when the slice can be taken in place the same node is returned.
// Zero-copy is preferred: slicing a shared (or immutable-forced) text leaf
// yields a Ref aliasing the original buffer.
//
// Boundary well-formedness is the caller's concern; structural slicing never
// validates.
func SliceLeaf(leaf *Node, lo, hi int64, immutable bool) *Node {
	assert(leaf.IsLeaf(), "tree: slicing an interior node")
	assert(0 <= lo && lo <= hi && hi <= leaf.Size(), "tree: slice range out of bounds")
	if lo == 0 && hi == leaf.Size() {
		return leaf
	}
	switch leaf.kind {
	case TextLeaf:
		if !leaf.shared() && !immutable {
			leaf.text.EraseRangeUnchecked(int(hi), leaf.text.Size())
			leaf.text.EraseRangeUnchecked(0, int(lo))
			return leaf
		}
		out := NewRef(leaf, leaf.text.Slice(int(lo), int(hi)))
		leaf.decRef(true)
		return out
	case ViewLeaf:
		if !leaf.shared() && !immutable {
			leaf.view = leaf.view.Slice(int(lo), int(hi))
			return leaf
		}
		out := NewView(leaf.view.Slice(int(lo), int(hi)))
		leaf.decRef(true)
		return out
	case RepeatedLeaf:
		unit := int64(leaf.rep.View().Size())
		if unit > 0 && lo%unit == 0 && hi%unit == 0 {
			narrowed := text.Repeat(leaf.rep.View(), int((hi-lo)/unit))
			if !leaf.shared() && !immutable {
				leaf.rep = narrowed
				return leaf
			}
			out := NewRepeated(narrowed)
			leaf.decRef(true)
			return out
		}
		// Unaligned slices of a repetition materialize.
		t, err := text.FromString("")
		assert(err == nil, "tree: cannot allocate text buffer")
		err = t.InsertBytes(0, leaf.rep.MaterializeRange(int(lo), int(hi)))
		assert(err == nil, "tree: repeated leaf content must stay well-formed")
		out := NewText(t)
		leaf.decRef(true)
		return out
	case RefLeaf:
		if !leaf.shared() && !immutable {
			leaf.view = leaf.view.Slice(int(lo), int(hi))
			return leaf
		}
		out := NewRef(leaf.ref, leaf.view.Slice(int(lo), int(hi)))
		leaf.decRef(true)
		return out
	}
	assert(false, "tree: unhandled leaf kind")
	return nil
}

// ShareLeaf returns a fresh, exclusively owned leaf exposing the same
// content as leaf, without copying payload bytes: text leaves are wrapped in
// a Ref, the borrowed variants are duplicated cheaply. The argument's
// reference is not consumed.
func ShareLeaf(leaf *Node) *Node {
	switch leaf.kind {
	case TextLeaf:
		return NewRef(leaf, leaf.text.AsView())
	case ViewLeaf:
		return NewView(leaf.view)
	case RepeatedLeaf:
		return NewRepeated(leaf.rep)
	case RefLeaf:
		return NewRef(leaf.ref, leaf.view)
	}
	assert(false, "tree: sharing an interior node")
	return nil
}

// splitLeafPieces divides a leaf at interior offset at into two leaves.
//
// The pieces are sliced immutably so a text leaf is never destroyed while
// both halves need it; the original's tree reference is consumed.
func splitLeafPieces(leaf *Node, at int64) (*Node, *Node) {
	assert(0 < at && at < leaf.Size(), "tree: leaf split offset must be interior")
	// Both pieces slice the same original, so the first slice must not
	// consume it in place.
	leaf.incRef()
	left := SliceLeaf(leaf, 0, at, true)
	right := SliceLeaf(leaf, at, leaf.Size(), true)
	return left, right
}
