package tree

import (
	"fmt"
	"sync/atomic"

	"github.com/ropekit/rope/utf8x"
)

// Refs returns the current reference count, for diagnostics.
func (n *Node) Refs() int32 {
	return atomic.LoadInt32(&n.refs)
}

// Children returns the live child slice of an interior node. The slice
// borrows node storage and must not be modified.
func (n *Node) Children() []*Node {
	assert(n.kind == Interior, "tree: children of a leaf")
	return n.children()
}

// Height returns the longest root-to-leaf path length, where 0 means empty
// and 1 means a single leaf. Lazily concatenated trees may be ragged, so the
// maximum over all paths is reported.
func Height(root *Node) int {
	if root == nil {
		return 0
	}
	if root.IsLeaf() {
		return 1
	}
	h := 0
	for _, c := range root.children() {
		if ch := Height(c); ch > h {
			h = ch
		}
	}
	return h + 1
}

// Bytes materializes the tree content into a fresh byte slice.
func Bytes(root *Node) []byte {
	out := make([]byte, 0, Size(root))
	EachLeaf(root, func(leaf *Node, _ int64) bool {
		if v, ok := leaf.LeafView(); ok {
			out = append(out, v.Bytes()...)
		} else {
			out = append(out, leaf.LeafRepeated().Materialize()...)
		}
		return true
	})
	return out
}

// Check verifies the structural invariants of a tree:
//
//   - interior nodes carry between 1 and MaxChildren children,
//   - keys are the cumulative sizes of the children,
//   - leaves are non-empty and contain no zero bytes,
//   - the concatenated content is well-formed UTF-8,
//   - when the tree owns all its nodes exclusively, the leaf chain threads
//     the leaves in in-order sequence.
//
// The occupancy lower bound is checked by CheckStrict, since lazily
// concatenated trees may be transiently underfull.
func Check(root *Node) error {
	if root == nil {
		return nil
	}
	if err := checkNode(root); err != nil {
		return err
	}
	content := Bytes(root)
	for _, c := range content {
		if c == 0 {
			return fmt.Errorf("%w: leaf payload contains zero byte", ErrInvariantViolated)
		}
	}
	if !utf8x.Encoded(content) {
		return fmt.Errorf("%w: content is not well-formed UTF-8", ErrInvariantViolated)
	}
	if treeExclusive(root) {
		if err := checkChain(root); err != nil {
			return err
		}
	}
	return nil
}

// CheckStrict additionally verifies the occupancy lower bound for non-root
// interior nodes.
func CheckStrict(root *Node) error {
	if err := Check(root); err != nil {
		return err
	}
	if root == nil || root.IsLeaf() {
		return nil
	}
	for _, c := range root.children() {
		if err := checkOccupancy(c); err != nil {
			return err
		}
	}
	return nil
}

func checkNode(n *Node) error {
	if n.IsLeaf() {
		if n.Size() < 1 {
			return fmt.Errorf("%w: empty leaf", ErrInvariantViolated)
		}
		if n.kind == RefLeaf && n.ref.kind != TextLeaf {
			return fmt.Errorf("%w: ref leaf does not point to a text leaf", ErrInvariantViolated)
		}
		return nil
	}
	if n.n < 1 || int(n.n) > MaxChildren {
		return fmt.Errorf("%w: interior node with %d children", ErrInvariantViolated, n.n)
	}
	acc := int64(0)
	for i, c := range n.children() {
		acc += c.Size()
		if n.keyStore[i] != acc {
			return fmt.Errorf("%w: key %d is %d, want cumulative %d",
				ErrInvariantViolated, i, n.keyStore[i], acc)
		}
		if err := checkNode(c); err != nil {
			return err
		}
	}
	return nil
}

func checkOccupancy(n *Node) error {
	if n.IsLeaf() {
		return nil
	}
	if int(n.n) < MinChildren {
		return fmt.Errorf("%w: non-root interior node with %d children",
			ErrInvariantViolated, n.n)
	}
	for _, c := range n.children() {
		if err := checkOccupancy(c); err != nil {
			return err
		}
	}
	return nil
}

func treeExclusive(n *Node) bool {
	if n.Refs() != 1 {
		return false
	}
	if n.IsLeaf() {
		return true
	}
	for _, c := range n.children() {
		if !treeExclusive(c) {
			return false
		}
	}
	return true
}

func checkChain(root *Node) error {
	var inorder []*Node
	EachLeaf(root, func(leaf *Node, _ int64) bool {
		inorder = append(inorder, leaf)
		return true
	})
	cur := leftmostLeaf(root)
	for i, want := range inorder {
		if cur != want {
			return fmt.Errorf("%w: leaf chain diverges from in-order at leaf %d",
				ErrInvariantViolated, i)
		}
		if i > 0 && cur.prev != inorder[i-1] {
			return fmt.Errorf("%w: leaf chain prev link broken at leaf %d",
				ErrInvariantViolated, i)
		}
		cur = cur.next
	}
	if cur != nil {
		return fmt.Errorf("%w: leaf chain continues past the last leaf", ErrInvariantViolated)
	}
	if first := leftmostLeaf(root); first.prev != nil {
		return fmt.Errorf("%w: first leaf has a prev link", ErrInvariantViolated)
	}
	return nil
}
