package rope

import (
	"github.com/ropekit/rope/tree"
)

// Iterator is a bidirectional random-access cursor over rope bytes.
//
// The iterator carries an absolute byte offset plus a cached leaf hint; the
// cache is refreshed lazily on dereference and invalidated by random-access
// arithmetic. Iterators are invalidated by any mutation of their rope,
// including in-place text leaf edits; this is not detected at run time.
//
// Comparisons are defined only between iterators of the same rope.
type Iterator struct {
	r         *Rope
	n         int64
	leaf      *tree.Node
	leafStart int64
}

// Begin returns an iterator at offset 0.
func (r *Rope) Begin() Iterator {
	return Iterator{r: r}
}

// End returns an iterator one past the last byte.
func (r *Rope) End() Iterator {
	return Iterator{r: r, n: r.Size()}
}

// Iter returns an iterator at byte offset n.
func (r *Rope) Iter(n int64) Iterator {
	return Iterator{r: r, n: n}
}

// Pos returns the iterator's absolute byte offset.
func (it Iterator) Pos() int64 { return it.n }

// Valid reports whether the iterator dereferences a byte.
func (it Iterator) Valid() bool {
	return it.r != nil && 0 <= it.n && it.n < it.r.Size()
}

// Byte returns the byte under the iterator, refreshing the leaf cache when
// necessary.
func (it *Iterator) Byte() byte {
	assert(it.Valid(), "rope: dereferencing an iterator out of range")
	if !it.cacheLive() {
		var found tree.FoundLeaf
		tree.FindLeaf(it.r.root, it.n, &found)
		it.leaf = found.Leaf
		it.leafStart = found.Start
	}
	return it.leaf.LeafByte(it.n - it.leafStart)
}

// Next advances the iterator by one byte, sliding the leaf cache along the
// leaf chain when it crosses a leaf boundary.
//
// Chain links of a shared leaf may have been authored by another rope
// version, so the hop is only taken from an exclusively owned leaf; the
// cache is dropped otherwise and refilled by descent on the next read.
func (it *Iterator) Next() {
	it.n++
	if it.cacheLive() {
		return
	}
	if it.leaf != nil && it.n == it.leafStart+it.leaf.Size() && it.leaf.Refs() == 1 {
		it.leafStart += it.leaf.Size()
		it.leaf = it.leaf.Next()
		return
	}
	it.leaf = nil
}

// Prev moves the iterator back by one byte.
func (it *Iterator) Prev() {
	it.n--
	if it.cacheLive() {
		return
	}
	if it.leaf != nil && it.n == it.leafStart-1 && it.leaf.Refs() == 1 {
		it.leaf = it.leaf.Prev()
		if it.leaf != nil {
			it.leafStart -= it.leaf.Size()
		}
		return
	}
	it.leaf = nil
}

// Add moves the iterator by k bytes (negative k moves backward) and
// invalidates the leaf cache.
func (it *Iterator) Add(k int64) {
	it.n += k
	it.leaf = nil
}

// At returns the byte k positions away without moving the iterator.
func (it Iterator) At(k int64) byte {
	probe := it
	probe.Add(k)
	return probe.Byte()
}

// Sub returns the distance in bytes between two iterators of the same rope.
func (it Iterator) Sub(other Iterator) int64 {
	assert(it.r == other.r, "rope: comparing iterators of different ropes")
	return it.n - other.n
}

// Equal reports whether two iterators of the same rope address the same
// position.
func (it Iterator) Equal(other Iterator) bool {
	assert(it.r == other.r, "rope: comparing iterators of different ropes")
	return it.n == other.n
}

// Less orders two iterators of the same rope by position.
func (it Iterator) Less(other Iterator) bool {
	assert(it.r == other.r, "rope: comparing iterators of different ropes")
	return it.n < other.n
}

func (it *Iterator) cacheLive() bool {
	return it.leaf != nil && it.leafStart <= it.n && it.n < it.leafStart+it.leaf.Size()
}
