/*
Package tree implements the rope's storage engine: a persistent B-tree with
bounded fanout whose interior nodes carry cumulative byte-length keys and
whose leaves hold variant string payloads.

Nodes are reference-counted. A node with a single reference is exclusively
owned and may be mutated in place; a shared node is cloned by the write
barrier before mutation, so unchanged subtrees stay shared between rope
versions (copy-on-write along the touched path only).

Leaves carry one of four payload variants:
  - an owned text buffer,
  - a borrowed view into caller memory,
  - a lazy repetition of a view,
  - a counted reference into another leaf's owned buffer.

All leaves of a tree are threaded into a doubly linked chain in in-order
sequence. Chain links obey the same write-barrier discipline as every other
node field: only exclusively owned leaves are relinked. The chain of a tree
is therefore exact whenever the tree owns its leaves exclusively; trees that
share leaves with a structurally mutated clone must traverse by descent
instead (the facade's segment walks do).

Mutating functions transfer ownership: they consume one reference to each
node argument and return nodes owning one reference.
*/
package tree

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
