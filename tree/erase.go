package tree

import (
	"fmt"

	"github.com/ropekit/rope/utf8x"
)

// Erase removes the byte range [lo,hi) and returns the new root, which is
// nil when the whole content was erased.
//
// Under CheckEncoding both range ends must lie on code-point boundaries;
// EncodingBreakageOK skips the check for the documented-unsafe entry points.
// The root reference is consumed.
func Erase(root *Node, lo, hi int64, note EncodingNote) (*Node, error) {
	if root == nil || lo == hi {
		return root, nil
	}
	assert(0 <= lo && lo <= hi && hi <= root.Size(), "tree: erase range out of bounds")
	if note == CheckEncoding {
		if !boundaryAt(root, lo) || !boundaryAt(root, hi) {
			return root, fmt.Errorf("%w: erase range bisects code point", ErrInvalidEncoding)
		}
	}
	if root.IsLeaf() {
		return eraseAtLeafRoot(root, lo, hi), nil
	}
	root = write(&root)
	root = ensureLeafBoundary(root, lo)
	root = ensureLeafBoundary(root, hi)
	eraseCovered(root, lo, hi)
	root = normalizeRoot(root)
	if root == nil {
		return nil, nil
	}
	// Normalization may surface a shared child as the new root; relinking
	// needs an exclusive handle.
	root = write(&root)
	relinkRange(root, lo, lo)
	return root, nil
}

// eraseAtLeafRoot erases from a single-leaf tree, producing zero, one, or
// two remainder leaves.
func eraseAtLeafRoot(root *Node, lo, hi int64) *Node {
	size := root.Size()
	switch {
	case lo == 0 && hi == size:
		root.decRef(true)
		return nil
	case lo == 0:
		out := SliceLeaf(root, hi, size, false)
		out.prev, out.next = nil, nil
		return out
	case hi == size:
		out := SliceLeaf(root, 0, lo, false)
		out.prev, out.next = nil, nil
		return out
	default:
		root.incRef()
		left := SliceLeaf(root, 0, lo, true)
		right := SliceLeaf(root, hi, size, true)
		out := newInterior(left, right)
		left.prev, left.next = nil, right
		right.prev, right.next = left, nil
		return out
	}
}

// ensureLeafBoundary splits the leaf containing pos so that pos coincides
// with a leaf boundary. The root must be exclusive and interior.
func ensureLeafBoundary(root *Node, pos int64) *Node {
	if pos == 0 || pos == root.Size() {
		return root
	}
	if promoted := splitBoundaryRec(root, pos); promoted != nil {
		root = newInterior(root, promoted)
	}
	return root
}

func splitBoundaryRec(n *Node, pos int64) (promoted *Node) {
	assert(n.kind == Interior, "tree: boundary split descent hit a leaf")
	i, local := n.findChild(pos)
	child := n.child(i)
	if child.IsLeaf() {
		if local == 0 || local == child.Size() {
			return nil
		}
		left, right := splitLeafPieces(child, local)
		n.childStore[i] = left
		n.recomputeKeys(i)
		n.insertChildAt(i+1, right)
	} else {
		c := n.writeChild(i)
		childPromoted := splitBoundaryRec(c, local)
		n.recomputeKeys(i)
		if childPromoted != nil {
			n.insertChildAt(i+1, childPromoted)
		}
	}
	if n.overflowed() {
		return n.splitHalves()
	}
	return nil
}

// eraseCovered removes all leaves inside [lo,hi), which must align with leaf
// boundaries beneath n. Children are visited right to left so removals do
// not disturb the offsets still to be visited.
func eraseCovered(n *Node, lo, hi int64) {
	assert(n.kind == Interior, "tree: covered erase on a leaf")
	for i := int(n.n) - 1; i >= 0; i-- {
		start := n.offset(i)
		end := n.keyStore[i]
		if start >= hi {
			continue
		}
		if end <= lo {
			break
		}
		child := n.child(i)
		if lo <= start && end <= hi {
			n.removeChildAt(i)
			child.decRef(true)
			continue
		}
		assert(!child.IsLeaf(), "tree: partially covered leaf after boundary split")
		c := n.writeChild(i)
		eraseCovered(c, max(lo-start, 0), min(hi-start, end-start))
		if c.n == 0 {
			n.removeChildAt(i)
			c.decRef(false)
		} else {
			n.recomputeKeys(i)
		}
	}
	rebalanceChildren(n)
}

// rebalanceChildren repairs occupancy of underfull interior children using
// the borrow-left, borrow-right, merge-left, merge-right policy.
//
// Underflow between siblings of unlike shape (a leaf next to an interior
// node, as lazy concatenation can produce) is tolerated; the next structural
// operation through the region restores it.
func rebalanceChildren(n *Node) {
	i := 0
	for i < int(n.n) {
		c := n.child(i)
		if c.kind != Interior || int(c.n) >= MinChildren {
			i++
			continue
		}
		if !fixUnderfull(n, i) {
			i++
		}
	}
}

func fixUnderfull(n *Node, i int) bool {
	child := n.writeChild(i)
	if i > 0 && n.child(i-1).kind == Interior && int(n.child(i-1).n) > MinChildren {
		left := n.writeChild(i - 1)
		borrowed := left.child(int(left.n) - 1)
		left.removeChildAt(int(left.n) - 1)
		child.insertChildAt(0, borrowed)
		n.recomputeKeys(i - 1)
		return true
	}
	if i+1 < int(n.n) && n.child(i+1).kind == Interior && int(n.child(i+1).n) > MinChildren {
		right := n.writeChild(i + 1)
		borrowed := right.child(0)
		right.removeChildAt(0)
		child.insertChildAt(int(child.n), borrowed)
		n.recomputeKeys(i)
		return true
	}
	if i > 0 && n.child(i-1).kind == Interior && int(n.child(i-1).n)+int(child.n) <= MaxChildren {
		left := n.writeChild(i - 1)
		for j := 0; j < int(child.n); j++ {
			left.insertChildAt(int(left.n), child.child(j))
		}
		n.removeChildAt(i)
		n.recomputeKeys(i - 1)
		child.decRef(false)
		return true
	}
	if i+1 < int(n.n) && n.child(i+1).kind == Interior && int(n.child(i+1).n)+int(child.n) <= MaxChildren {
		right := n.writeChild(i + 1)
		for j := 0; j < int(right.n); j++ {
			child.insertChildAt(int(child.n), right.child(j))
		}
		n.removeChildAt(i + 1)
		n.recomputeKeys(i)
		right.decRef(false)
		return true
	}
	return false
}

// normalizeRoot collapses single-child root chains and empty roots.
func normalizeRoot(root *Node) *Node {
	for root != nil && root.kind == Interior {
		if root.n == 0 {
			root.decRef(false)
			return nil
		}
		if root.n > 1 {
			return root
		}
		child := root.child(0)
		root.decRef(false)
		root = child
	}
	return root
}

// boundaryAt reports whether pos lies on a code-point boundary of the tree
// content.
func boundaryAt(root *Node, pos int64) bool {
	if pos == 0 || pos == root.Size() {
		return true
	}
	return utf8x.LeadByte(FindChar(root, pos))
}
