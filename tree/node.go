package tree

import (
	"github.com/ropekit/rope/text"
)

const (
	// MinChildren is the lower occupancy bound for non-root interior nodes.
	MinChildren = 4
	// MaxChildren is the interior fanout bound.
	MaxChildren = 8
	// MaxDepth bounds the explicit descent stacks used by the algorithms.
	MaxDepth = 24

	// overflowStorage leaves room for the transient overflow an insertion can
	// cause before split propagation repairs it (a leaf split plus the
	// inserted leaf add two children).
	overflowStorage = MaxChildren + 2
)

// Kind tags the node variants. Exactly one payload field group is active per
// kind; exhaustive switches over Kind keep the closed set checkable.
type Kind uint8

const (
	// Interior is a non-leaf node carrying children and cumulative keys.
	Interior Kind = iota
	// TextLeaf owns a mutable text buffer.
	TextLeaf
	// ViewLeaf borrows a region owned by the caller.
	ViewLeaf
	// RepeatedLeaf is a lazy repetition of a borrowed view.
	RepeatedLeaf
	// RefLeaf references a sub-range of another leaf's owned buffer.
	RefLeaf
)

// Node is a tree node: either an interior node or a leaf of one of the four
// payload variants.
//
// The refs field is the shared-ownership count maintained by incRef/decRef;
// all other fields require an exclusive handle (write barrier) to mutate.
type Node struct {
	refs int32
	kind Kind

	// interior storage: childStore[:n] and keyStore[:n] are live.
	// keyStore[i] is the cumulative size of children[0..i].
	n          uint8
	childStore [overflowStorage]*Node
	keyStore   [overflowStorage]int64

	// leaf chain in in-order sequence.
	prev, next *Node

	// leaf payloads, selected by kind.
	text  text.Text         // TextLeaf
	view  text.View         // ViewLeaf; RefLeaf sub-view into ref's buffer
	rep   text.RepeatedView // RepeatedLeaf
	ref   *Node             // RefLeaf counted reference to a TextLeaf
}

// IsLeaf reports whether the node is a leaf of any variant.
func (n *Node) IsLeaf() bool { return n.kind != Interior }

// Kind returns the node's variant tag.
func (n *Node) Kind() Kind { return n.kind }

// Size returns the node's logical byte count.
func (n *Node) Size() int64 {
	switch n.kind {
	case Interior:
		if n.n == 0 {
			return 0
		}
		return n.keyStore[n.n-1]
	case TextLeaf:
		return int64(n.text.Size())
	case ViewLeaf:
		return int64(n.view.Size())
	case RepeatedLeaf:
		return int64(n.rep.Size())
	case RefLeaf:
		return int64(n.view.Size())
	}
	assert(false, "tree: unhandled node kind")
	return 0
}

// --- Leaf constructors -----------------------------------------------------

// NewText creates a leaf owning buffer t.
func NewText(t text.Text) *Node {
	return &Node{refs: 1, kind: TextLeaf, text: t}
}

// NewView creates a leaf borrowing v. The caller keeps the viewed memory
// alive for the leaf's lifetime.
func NewView(v text.View) *Node {
	return &Node{refs: 1, kind: ViewLeaf, view: v}
}

// NewRepeated creates a leaf lazily repeating rv.
func NewRepeated(rv text.RepeatedView) *Node {
	return &Node{refs: 1, kind: RepeatedLeaf, rep: rv}
}

// NewRef creates a leaf exposing sub-view v of text leaf target without
// copying. The new leaf holds a strong reference to target.
func NewRef(target *Node, v text.View) *Node {
	assert(target.kind == TextLeaf, "tree: ref leaf must point to a text leaf")
	target.incRef()
	return &Node{refs: 1, kind: RefLeaf, ref: target, view: v}
}

// --- Leaf payload access ---------------------------------------------------

// LeafByte returns the byte at leaf-local offset i.
func (n *Node) LeafByte(i int64) byte {
	switch n.kind {
	case TextLeaf:
		return n.text.Byte(int(i))
	case ViewLeaf, RefLeaf:
		return n.view.Byte(int(i))
	case RepeatedLeaf:
		return n.rep.Byte(int(i))
	}
	assert(false, "tree: byte access on interior node")
	return 0
}

// LeafView returns a view of the leaf content for the contiguous variants
// and ok=false for a repeated leaf, whose content is not contiguous.
func (n *Node) LeafView() (text.View, bool) {
	switch n.kind {
	case TextLeaf:
		return n.text.AsView(), true
	case ViewLeaf, RefLeaf:
		return n.view, true
	case RepeatedLeaf:
		return text.View{}, false
	}
	assert(false, "tree: view access on interior node")
	return text.View{}, false
}

// LeafRepeated returns the repeated view of a repeated leaf.
func (n *Node) LeafRepeated() text.RepeatedView {
	assert(n.kind == RepeatedLeaf, "tree: repeated access on non-repeated leaf")
	return n.rep
}

// Text returns the owned buffer of a text leaf.
func (n *Node) Text() *text.Text {
	assert(n.kind == TextLeaf, "tree: text access on non-text leaf")
	return &n.text
}

// Next returns the right neighbor in the leaf chain.
func (n *Node) Next() *Node { return n.next }

// Prev returns the left neighbor in the leaf chain.
func (n *Node) Prev() *Node { return n.prev }

// --- Interior node helpers -------------------------------------------------

func newInterior(children ...*Node) *Node {
	assert(len(children) <= overflowStorage, "tree: too many children for interior node")
	n := &Node{refs: 1, kind: Interior}
	for _, c := range children {
		assert(c != nil, "tree: nil child in interior node")
		n.childStore[n.n] = c
		n.n++
	}
	n.recomputeKeys(0)
	return n
}

func (n *Node) children() []*Node {
	return n.childStore[:n.n]
}

func (n *Node) child(i int) *Node {
	assert(0 <= i && i < int(n.n), "tree: child index out of range")
	return n.childStore[i]
}

// offset returns the start offset of child i within the node.
func (n *Node) offset(i int) int64 {
	if i == 0 {
		return 0
	}
	return n.keyStore[i-1]
}

// recomputeKeys rebuilds cumulative keys from child position from on.
func (n *Node) recomputeKeys(from int) {
	acc := n.offset(from)
	for i := from; i < int(n.n); i++ {
		acc += n.childStore[i].Size()
		n.keyStore[i] = acc
	}
}

// findChild returns the smallest i with keys[i] > pos, together with the
// pos translated to child-local coordinates. For pos equal to the subtree
// size the last child is returned.
func (n *Node) findChild(pos int64) (int, int64) {
	assert(n.kind == Interior, "tree: findChild on leaf")
	assert(n.n > 0, "tree: findChild on empty interior node")
	for i := 0; i < int(n.n); i++ {
		if n.keyStore[i] > pos {
			return i, pos - n.offset(i)
		}
	}
	last := int(n.n) - 1
	return last, pos - n.offset(last)
}

// insertChildAt makes room at slot i and places child there.
func (n *Node) insertChildAt(i int, child *Node) {
	assert(int(n.n) < overflowStorage, "tree: interior node storage exhausted")
	assert(0 <= i && i <= int(n.n), "tree: child slot out of range")
	copy(n.childStore[i+1:n.n+1], n.childStore[i:n.n])
	n.childStore[i] = child
	n.n++
	n.recomputeKeys(i)
}

// removeChildAt removes the child at slot i without touching its refcount.
func (n *Node) removeChildAt(i int) {
	assert(0 <= i && i < int(n.n), "tree: child slot out of range")
	copy(n.childStore[i:n.n-1], n.childStore[i+1:n.n])
	n.n--
	n.childStore[n.n] = nil
	n.recomputeKeys(i)
}

// overflowed reports whether split propagation must divide this node.
func (n *Node) overflowed() bool {
	return int(n.n) > MaxChildren
}

// splitHalves divides an overflowed node into two interior nodes of roughly
// equal occupancy. The receiver's child references move; the receiver keeps
// the left half.
func (n *Node) splitHalves() *Node {
	assert(n.overflowed(), "tree: splitting a node that fits")
	mid := int(n.n) / 2
	right := newInterior(n.childStore[mid:n.n]...)
	for i := mid; i < int(n.n); i++ {
		n.childStore[i] = nil
	}
	n.n = uint8(mid)
	n.recomputeKeys(0)
	assert(int(n.n) >= MinChildren && right.n >= MinChildren,
		"tree: split halves violate occupancy bounds")
	return right
}
