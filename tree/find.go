package tree

// FoundLeaf is the result of a leaf search: the leaf containing the target
// offset, the leaf's start offset, and the interior path that was descended.
type FoundLeaf struct {
	Leaf  *Node
	Start int64
	Path  [MaxDepth]*Node
	Slot  [MaxDepth]int
	Depth int
}

// FindLeaf descends from root to the leaf containing byte offset pos.
//
// For pos equal to the tree size the rightmost leaf is found. The descent is
// read-only; no references are taken.
func FindLeaf(root *Node, pos int64, found *FoundLeaf) {
	assert(root != nil, "tree: find on empty tree")
	assert(0 <= pos && pos <= root.Size(), "tree: find offset out of bounds")
	found.Depth = 0
	n := root
	start := int64(0)
	for !n.IsLeaf() {
		assert(found.Depth < MaxDepth, "tree: descent exceeds maximum depth")
		i, _ := n.findChild(pos - start)
		found.Path[found.Depth] = n
		found.Slot[found.Depth] = i
		found.Depth++
		start += n.offset(i)
		n = n.child(i)
	}
	found.Leaf = n
	found.Start = start
}

// FindChar returns the byte at offset pos.
func FindChar(root *Node, pos int64) byte {
	assert(root != nil && pos < root.Size(), "tree: byte offset out of bounds")
	var found FoundLeaf
	FindLeaf(root, pos, &found)
	return found.Leaf.LeafByte(pos - found.Start)
}

// PathExclusive reports whether every node on the found path, and the leaf
// itself, is exclusively owned. Only then may an in-place leaf edit bypass
// the tree restructuring path without breaking sharing.
func (f *FoundLeaf) PathExclusive() bool {
	for i := 0; i < f.Depth; i++ {
		if f.Path[i].shared() {
			return false
		}
	}
	return !f.Leaf.shared()
}

// RefreshKeys re-derives the cumulative keys along the found path after an
// in-place leaf resize, bottom up.
func (f *FoundLeaf) RefreshKeys() {
	for d := f.Depth - 1; d >= 0; d-- {
		f.Path[d].recomputeKeys(f.Slot[d])
	}
}

// leftmostLeaf returns the first leaf of the subtree.
func leftmostLeaf(n *Node) *Node {
	for !n.IsLeaf() {
		n = n.child(0)
	}
	return n
}

// rightmostLeaf returns the last leaf of the subtree.
func rightmostLeaf(n *Node) *Node {
	for !n.IsLeaf() {
		n = n.child(int(n.n) - 1)
	}
	return n
}

// EachLeaf visits the leaves of the subtree in order, by descent. The walk
// is correct regardless of structural sharing. It stops early when f
// returns false.
func EachLeaf(root *Node, f func(leaf *Node, start int64) bool) {
	if root == nil {
		return
	}
	var walk func(n *Node, start int64) bool
	walk = func(n *Node, start int64) bool {
		if n.IsLeaf() {
			return f(n, start)
		}
		for i, c := range n.children() {
			if !walk(c, start+n.offset(i)) {
				return false
			}
		}
		return true
	}
	walk(root, 0)
}
