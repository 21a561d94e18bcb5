package rope

import (
	"bytes"

	"github.com/ropekit/rope/tree"
)

// fragmentStream yields the byte fragments of a rope range in order. A
// repeated segment is yielded unit by unit; only a part of it cut off a unit
// boundary by the range is materialized.
type fragmentStream struct {
	frags [][]byte
	reps  []repFragment
	order []int // positive: frags index+1; negative: reps index+1
	idx   int
	rep   repCursor
}

type repFragment struct {
	unit  []byte
	count int
}

type repCursor struct {
	active bool
	unit   []byte
	left   int
}

func newFragmentStream(r Rope, lo, hi int64) *fragmentStream {
	fs := &fragmentStream{}
	tree.EachLeaf(r.root, func(leaf *tree.Node, start int64) bool {
		end := start + leaf.Size()
		if end <= lo {
			return true
		}
		if start >= hi {
			return false
		}
		from := max(lo-start, 0)
		to := min(hi-start, leaf.Size())
		if v, ok := leaf.LeafView(); ok {
			fs.frags = append(fs.frags, v.Bytes()[from:to])
			fs.order = append(fs.order, len(fs.frags))
			return true
		}
		rv := leaf.LeafRepeated()
		unit := rv.View().Bytes()
		n := int64(len(unit))
		if from%n == 0 && to%n == 0 {
			fs.reps = append(fs.reps, repFragment{unit: unit, count: int((to - from) / n)})
			fs.order = append(fs.order, -len(fs.reps))
		} else {
			fs.frags = append(fs.frags, rv.MaterializeRange(int(from), int(to)))
			fs.order = append(fs.order, len(fs.frags))
		}
		return true
	})
	return fs
}

// next returns the next non-empty fragment, or nil at the end.
func (fs *fragmentStream) next() []byte {
	for {
		if fs.rep.active {
			if fs.rep.left > 0 {
				fs.rep.left--
				return fs.rep.unit
			}
			fs.rep.active = false
		}
		if fs.idx >= len(fs.order) {
			return nil
		}
		o := fs.order[fs.idx]
		fs.idx++
		if o > 0 {
			if f := fs.frags[o-1]; len(f) > 0 {
				return f
			}
			continue
		}
		rf := fs.reps[-o-1]
		fs.rep = repCursor{active: true, unit: rf.unit, left: rf.count}
	}
}

// compareSegments is a segment-aware lexicographic mismatch over two ropes.
func compareSegments(a, b Rope) int {
	return compareStreams(newFragmentStream(a, 0, a.Size()), newFragmentStream(b, 0, b.Size()))
}

func compareStreams(fa, fb *fragmentStream) int {
	ba, bb := fa.next(), fb.next()
	for {
		switch {
		case ba == nil && bb == nil:
			return 0
		case ba == nil:
			return -1
		case bb == nil:
			return 1
		}
		n := min(len(ba), len(bb))
		if c := bytes.Compare(ba[:n], bb[:n]); c != 0 {
			return c
		}
		ba, bb = ba[n:], bb[n:]
		if len(ba) == 0 {
			ba = fa.next()
		}
		if len(bb) == 0 {
			bb = fb.next()
		}
	}
}
