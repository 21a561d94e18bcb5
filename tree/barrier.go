package tree

import (
	"sync/atomic"

	"github.com/ropekit/rope/text"
)

// IncRef acquires a shared reference to n. A nil receiver is a no-op so
// callers can bump optional roots unconditionally.
func (n *Node) IncRef() {
	if n != nil {
		n.incRef()
	}
}

// DecRef releases a reference to n, recursively releasing children and ref
// targets when the last reference drops.
func (n *Node) DecRef() {
	if n != nil {
		n.decRef(true)
	}
}

func (n *Node) incRef() {
	atomic.AddInt32(&n.refs, 1)
}

func (n *Node) decRef(recursive bool) {
	if atomic.AddInt32(&n.refs, -1) > 0 {
		return
	}
	if !recursive {
		return
	}
	switch n.kind {
	case Interior:
		for _, c := range n.children() {
			c.decRef(true)
		}
	case RefLeaf:
		n.ref.decRef(true)
	}
}

// shared reports whether more than one reference to n exists.
func (n *Node) shared() bool {
	return atomic.LoadInt32(&n.refs) > 1
}

// clone returns a deep copy of the node itself, shallow in its references:
// children and ref targets are shared and their refcounts incremented. A
// text leaf's buffer is copied, since both versions may mutate it.
func (n *Node) clone() *Node {
	c := &Node{refs: 1, kind: n.kind}
	switch n.kind {
	case Interior:
		c.n = n.n
		c.childStore = n.childStore
		c.keyStore = n.keyStore
		for _, child := range c.children() {
			child.incRef()
		}
	case TextLeaf:
		t, err := text.FromView(n.text.AsView())
		assert(err == nil, "tree: cloning a text leaf with ill-formed content")
		c.text = t
	case ViewLeaf:
		c.view = n.view
	case RepeatedLeaf:
		c.rep = n.rep
	case RefLeaf:
		c.ref = n.ref
		c.view = n.view
		c.ref.incRef()
	}
	c.prev = n.prev
	c.next = n.next
	return c
}

// write returns an exclusively owned version of *np, cloning the node when
// it is shared and rebinding the slot to the clone. The exclusive handle
// may be mutated freely until a reference to it escapes.
func write(np **Node) *Node {
	n := *np
	if !n.shared() {
		return n
	}
	c := n.clone()
	n.decRef(true)
	*np = c
	return c
}

// writeChild applies the write barrier to child slot i of an exclusive
// interior node.
func (n *Node) writeChild(i int) *Node {
	assert(n.kind == Interior, "tree: writeChild on leaf")
	assert(0 <= i && i < int(n.n), "tree: child slot out of range")
	return write(&n.childStore[i])
}
