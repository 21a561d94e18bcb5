package tree

// Insert places leaf at byte offset at and returns the new root.
//
// The function consumes one reference to root and to leaf. The leaf must be
// non-empty; empty leaves are forbidden throughout the tree.
func Insert(root *Node, at int64, leaf *Node) *Node {
	assert(leaf.IsLeaf(), "tree: inserting a non-leaf node")
	assert(leaf.Size() > 0, "tree: inserting an empty leaf")
	if root == nil {
		assert(at == 0, "tree: insert offset out of bounds")
		if leaf.shared() {
			fresh := ShareLeaf(leaf)
			leaf.decRef(true)
			leaf = fresh
		}
		leaf.prev, leaf.next = nil, nil
		return leaf
	}
	assert(0 <= at && at <= root.Size(), "tree: insert offset out of bounds")
	size := leaf.Size()
	if root.IsLeaf() {
		root = insertAtLeafRoot(root, at, leaf)
	} else {
		root = write(&root)
		if promoted := insertRec(root, at, leaf); promoted != nil {
			root = newInterior(root, promoted)
		}
	}
	relinkRange(root, at, at+size)
	return root
}

// insertAtLeafRoot grows a single-leaf tree into a two- or three-leaf tree.
func insertAtLeafRoot(root *Node, at int64, leaf *Node) *Node {
	switch {
	case at == 0:
		return newInterior(leaf, root)
	case at == root.Size():
		return newInterior(root, leaf)
	default:
		left, right := splitLeafPieces(root, at)
		return newInterior(left, leaf, right)
	}
}

// insertRec descends to the leaf level and splices the new leaf in,
// propagating an overflow split back up as a promoted right sibling.
func insertRec(n *Node, at int64, leaf *Node) (promoted *Node) {
	assert(n.kind == Interior, "tree: insert descent hit a leaf")
	i, local := n.findChild(at)
	child := n.child(i)
	if child.IsLeaf() {
		switch {
		case local == 0:
			n.insertChildAt(i, leaf)
		case local == child.Size():
			n.insertChildAt(i+1, leaf)
		default:
			left, right := splitLeafPieces(child, local)
			n.childStore[i] = left
			n.recomputeKeys(i)
			n.insertChildAt(i+1, leaf)
			n.insertChildAt(i+2, right)
		}
	} else {
		c := n.writeChild(i)
		childPromoted := insertRec(c, local, leaf)
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

// Concat joins two trees into one, keeping both subtrees as they are under a
// fresh two-child root. Balance is restored lazily by later operations.
//
// Both arguments' references are consumed.
func Concat(left, right *Node) *Node {
	if left == nil {
		return right
	}
	if right == nil {
		return left
	}
	seam := left.Size()
	root := newInterior(left, right)
	relinkRange(root, seam, seam)
	return root
}

// Size returns the byte length of a possibly empty tree.
func Size(root *Node) int64 {
	if root == nil {
		return 0
	}
	return root.Size()
}
