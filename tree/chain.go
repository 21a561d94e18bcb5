package tree

// The leaf chain threads all leaves of a tree in in-order sequence. Chain
// links are ordinary node fields: they may only be written on exclusively
// owned leaves. Neighbors are therefore located by offset descent and pulled
// through the write barrier before relinking, never followed through
// possibly stale pointers.

// exclusiveLeafAt descends from the exclusive root to the leaf containing
// pos, applying the write barrier at every step, and returns the (now
// exclusive) leaf.
func exclusiveLeafAt(root *Node, pos int64) *Node {
	assert(!root.shared(), "tree: exclusive descent requires an exclusive root")
	n := root
	for !n.IsLeaf() {
		i, local := n.findChild(pos)
		n = n.writeChild(i)
		pos = local
	}
	return n
}

// relinkRange rewrites the chain links for every seam touched by an edit of
// the byte range [lo,hi]: the seams between the leaves covering the range
// and, since boundary leaves may have been replaced by fresh pieces, the
// outer seams of those boundary leaves as well.
func relinkRange(root *Node, lo, hi int64) {
	if root == nil {
		return
	}
	if root.IsLeaf() {
		assert(!root.shared(), "tree: relink requires an exclusive root")
		root.prev, root.next = nil, nil
		return
	}
	lo = max(lo, 0)
	hi = min(hi, root.Size())
	// Widen to the full extent of the boundary leaves.
	var f FoundLeaf
	if lo > 0 {
		FindLeaf(root, lo-1, &f)
		lo = f.Start
	}
	if hi < root.Size() {
		FindLeaf(root, hi, &f)
		hi = f.Start + f.Leaf.Size()
	}
	var prev *Node
	if lo > 0 {
		prev = exclusiveLeafAt(root, lo-1)
	}
	pos := lo
	for pos < hi {
		leaf := exclusiveLeafAt(root, pos)
		leaf.prev = prev
		if prev != nil {
			prev.next = leaf
		}
		prev = leaf
		assert(leaf.Size() > 0, "tree: empty leaf in chain relink")
		pos += leaf.Size()
	}
	if prev == nil {
		return
	}
	if pos >= root.Size() {
		prev.next = nil
		return
	}
	right := exclusiveLeafAt(root, pos)
	prev.next = right
	right.prev = prev
}
