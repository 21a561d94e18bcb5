package rope

import (
	"errors"
	"fmt"
	"io"

	"github.com/ropekit/rope/text"
	"github.com/ropekit/rope/tree"
	"github.com/ropekit/rope/utf8x"
)

// TextInsertMax bounds how far an insertion may grow an existing text leaf
// in place when folding the payload in would allocate anyway.
const TextInsertMax = 512

// fragSize is the text leaf target size used by bulk ingestion.
const fragSize = 4096

// Rope stores immutable UTF-8 text fragments in a persistent B-tree.
//
// The zero value is the empty rope. Mutating methods have pointer receivers;
// all other versions of the rope (created with Clone) are unaffected by
// mutation.
type Rope struct {
	root *tree.Node
}

// New creates an empty rope.
func New() Rope {
	return Rope{}
}

// FromString creates a rope from a Go string.
//
// The input must be valid UTF-8; a trailing zero byte is stripped.
func FromString(s string) (Rope, error) {
	var r Rope
	if err := r.Insert(0, s); err != nil {
		return Rope{}, err
	}
	return r, nil
}

// FromView creates a rope borrowing the view's memory.
//
// The viewed bytes must stay alive and unmodified for the lifetime of the
// rope (and of every rope sharing the leaf). A trailing zero is stripped.
func FromView(v text.View) (Rope, error) {
	v = v.StripNull()
	if v.IsEmpty() {
		return Rope{}, nil
	}
	if !utf8x.Encoded(v.Bytes()) {
		return Rope{}, fmt.Errorf("%w: view content is not well-formed", ErrInvalidEncoding)
	}
	return Rope{root: tree.NewView(v)}, nil
}

// FromRepeated creates a rope lazily repeating a view.
func FromRepeated(rv text.RepeatedView) (Rope, error) {
	rv = rv.StripNull()
	if rv.IsEmpty() {
		return Rope{}, nil
	}
	if !utf8x.Encoded(rv.View().Bytes()) {
		return Rope{}, fmt.Errorf("%w: view content is not well-formed", ErrInvalidEncoding)
	}
	return Rope{root: tree.NewRepeated(rv)}, nil
}

// FromReader creates a rope from the contents of r, splitting the input
// into owned text leaves at code-point boundaries.
func FromReader(rd io.Reader) (Rope, error) {
	raw, err := io.ReadAll(rd)
	if err != nil {
		return Rope{}, err
	}
	return FromBytes(raw)
}

// FromBytes creates a rope holding a copy of p, fragmented into text leaves.
func FromBytes(p []byte) (Rope, error) {
	var r Rope
	for len(p) > 0 {
		n := len(p)
		if n > fragSize {
			n = fragSize
			for n > 0 && !utf8x.LeadByte(p[n]) {
				n--
			}
			if n == 0 {
				return Rope{}, fmt.Errorf("%w: input is not well-formed", ErrInvalidEncoding)
			}
		}
		var t text.Text
		if err := t.InsertBytes(0, p[:n]); err != nil {
			return Rope{}, translateErr(err)
		}
		if t.Size() > 0 {
			r.root = tree.Insert(r.root, r.Size(), tree.NewText(t))
		}
		p = p[n:]
	}
	return r, nil
}

// Clone returns a new version of the rope sharing the whole tree.
//
// Mutations to either version leave the other unchanged.
func (r *Rope) Clone() Rope {
	r.root.IncRef()
	return Rope{root: r.root}
}

// Release drops this version's tree reference. The rope becomes empty.
//
// Calling Release is optional — the garbage collector reclaims unreachable
// nodes either way — but it unmarks sharing, so surviving versions can
// mutate in place again.
func (r *Rope) Release() {
	r.root.DecRef()
	r.root = nil
}

// Clear empties the rope, dropping its tree reference.
func (r *Rope) Clear() {
	r.Release()
}

// Size returns the rope length in bytes.
func (r Rope) Size() int64 {
	return tree.Size(r.root)
}

// IsEmpty reports whether the rope has no bytes.
func (r Rope) IsEmpty() bool {
	return r.root == nil
}

// Byte returns the byte at offset n.
func (r Rope) Byte(n int64) (byte, error) {
	if n < 0 || n >= r.Size() {
		return 0, ErrIndexOutOfBounds
	}
	return tree.FindChar(r.root, n), nil
}

// String returns the complete rope as a Go string. This may be an expensive
// operation, as it collects all fragments into a single continuous string.
func (r Rope) String() string {
	return string(tree.Bytes(r.root))
}

// Insert inserts s at byte offset at.
func (r *Rope) Insert(at int64, s string) error {
	return r.insert(at, text.ViewOfString(s))
}

// InsertView inserts the view's bytes at byte offset at. The rope adopts
// the borrowed memory when no fast path applies, so the viewed bytes must
// outlive the rope.
func (r *Rope) InsertView(at int64, v text.View) error {
	if at < 0 || at > r.Size() {
		return ErrIndexOutOfBounds
	}
	v = v.StripNull()
	if v.IsEmpty() {
		return nil
	}
	if !utf8x.Encoded(v.Bytes()) {
		return fmt.Errorf("%w: inserted payload is not well-formed", ErrInvalidEncoding)
	}
	if r.root == nil {
		r.root = tree.NewView(v)
		return nil
	}
	if err := r.checkInsertionPoint(at); err != nil {
		return err
	}
	if found, ok := r.mutableInsertionLeaf(at, int64(v.Size()), false); ok {
		if err := found.Leaf.Text().Insert(int(at-found.Start), v); err != nil {
			return translateErr(err)
		}
		found.RefreshKeys()
		return nil
	}
	r.root = tree.Insert(r.root, at, tree.NewView(v))
	return nil
}

// InsertRepeated inserts count copies of a view at byte offset at, lazily.
func (r *Rope) InsertRepeated(at int64, rv text.RepeatedView) error {
	if at < 0 || at > r.Size() {
		return ErrIndexOutOfBounds
	}
	rv = rv.StripNull()
	if rv.IsEmpty() {
		return nil
	}
	if !utf8x.Encoded(rv.View().Bytes()) {
		return fmt.Errorf("%w: inserted payload is not well-formed", ErrInvalidEncoding)
	}
	if err := r.checkInsertionPoint(at); err != nil {
		return err
	}
	r.root = tree.Insert(r.root, at, tree.NewRepeated(rv))
	return nil
}

// InsertRope inserts the content of other at byte offset at. Leaves are
// shared, not copied.
func (r *Rope) InsertRope(at int64, other Rope) error {
	if at < 0 || at > r.Size() {
		return ErrIndexOutOfBounds
	}
	if other.IsEmpty() {
		return nil
	}
	if err := r.checkInsertionPoint(at); err != nil {
		return err
	}
	// Guard against self-insertion: hold an extra reference to the source
	// tree so erased-and-reinserted leaves cannot be reclaimed mid-way.
	src := other.root
	src.IncRef()
	defer src.DecRef()
	pos := at
	tree.EachLeaf(src, func(leaf *tree.Node, _ int64) bool {
		r.root = tree.Insert(r.root, pos, tree.ShareLeaf(leaf))
		pos += leaf.Size()
		return true
	})
	return nil
}

// Erase removes the byte range [lo,hi).
func (r *Rope) Erase(lo, hi int64) error {
	return r.erase(lo, hi, tree.CheckEncoding)
}

// EraseUnchecked removes [lo,hi) without UTF-8 boundary validation.
//
// This is the unsafe byte-level entry point; the caller takes over the
// well-formedness obligation.
func (r *Rope) EraseUnchecked(lo, hi int64) error {
	return r.erase(lo, hi, tree.EncodingBreakageOK)
}

func (r *Rope) erase(lo, hi int64, note tree.EncodingNote) error {
	if lo < 0 || hi < lo || hi > r.Size() {
		return ErrIndexOutOfBounds
	}
	if lo == hi {
		return nil
	}
	root, err := tree.Erase(r.root, lo, hi, note)
	if err != nil {
		return translateErr(err)
	}
	r.root = root
	return nil
}

// Replace substitutes [lo,hi) with s.
func (r *Rope) Replace(lo, hi int64, s string) error {
	if err := r.Erase(lo, hi); err != nil {
		return err
	}
	return r.Insert(lo, s)
}

// ReplaceView substitutes [lo,hi) with the content of a rope view. The view
// may reference the receiver itself.
func (r *Rope) ReplaceView(lo, hi int64, v View) error {
	payload := v.Rope()
	defer payload.Release()
	if err := r.Erase(lo, hi); err != nil {
		return err
	}
	return r.InsertRope(lo, payload)
}

// InsertRopeView inserts the content of a rope view at byte offset at. The
// view may reference the receiver itself.
func (r *Rope) InsertRopeView(at int64, v View) error {
	payload := v.Rope()
	defer payload.Release()
	return r.InsertRope(at, payload)
}

// Substr returns a new rope for the byte range [lo,hi).
//
// When the range lies within a single leaf the result references the leaf
// without copying; otherwise the prefix and suffix of a shared clone of the
// tree are erased.
func (r Rope) Substr(lo, hi int64) (Rope, error) {
	if lo < 0 || hi < lo || hi > r.Size() {
		return Rope{}, ErrIndexOutOfBounds
	}
	if lo == hi {
		return Rope{}, nil
	}
	if !r.boundary(lo) || !r.boundary(hi) {
		return Rope{}, fmt.Errorf("%w: substring bisects code point", ErrInvalidEncoding)
	}
	var found tree.FoundLeaf
	tree.FindLeaf(r.root, lo, &found)
	if hi <= found.Start+found.Leaf.Size() {
		found.Leaf.IncRef()
		piece := tree.SliceLeaf(found.Leaf, lo-found.Start, hi-found.Start, true)
		return Rope{root: tree.Insert(nil, 0, piece)}, nil
	}
	// Take an extra reference to the root, which will force a clone of the
	// interior nodes along the erased paths.
	root := r.root
	root.IncRef()
	root, err := tree.Erase(root, hi, r.Size(), tree.CheckEncoding)
	if err != nil {
		return Rope{}, translateErr(err)
	}
	root, err = tree.Erase(root, 0, lo, tree.CheckEncoding)
	if err != nil {
		return Rope{}, translateErr(err)
	}
	return Rope{root: root}, nil
}

// Concat concatenates ropes without copying their content.
func Concat(ropes ...Rope) Rope {
	var out Rope
	for _, r := range ropes {
		r.root.IncRef()
		out.root = tree.Concat(out.root, r.root)
	}
	return out
}

// Compare orders ropes lexicographically on their byte content.
func (r Rope) Compare(other Rope) int {
	return compareSegments(r, other)
}

// Equal reports byte equality with other.
func (r Rope) Equal(other Rope) bool {
	if r.Size() != other.Size() {
		return false
	}
	return r.Compare(other) == 0
}

// EachSegment visits all leaf segments in logical order.
//
// The callback receives each segment and its starting byte offset. Iteration
// stops at the first callback error and returns that error to the caller.
func (r Rope) EachSegment(f func(seg Segment, pos int64) error) error {
	var err error
	tree.EachLeaf(r.root, func(leaf *tree.Node, start int64) bool {
		err = f(Segment{leaf: leaf}, start)
		return err == nil
	})
	return err
}

// Height returns the height of the rope's tree, where 0 means empty and 1
// means a single leaf.
func (r Rope) Height() int {
	return tree.Height(r.root)
}

// Check verifies the structural invariants of the rope's tree. It is meant
// for tests and debugging.
func (r Rope) Check() error {
	return tree.Check(r.root)
}

// FragmentCount returns the number of leaves currently stored in the rope.
func (r Rope) FragmentCount() int {
	cnt := 0
	tree.EachLeaf(r.root, func(*tree.Node, int64) bool {
		cnt++
		return true
	})
	return cnt
}

// CheckedEncoding walks every segment and verifies that the rope content is
// well-formed UTF-8.
func (r Rope) CheckedEncoding() error {
	if !utf8x.Encoded(tree.Bytes(r.root)) {
		return ErrInvalidEncoding
	}
	return nil
}

// --- Internal ---------------------------------------------------------------

// insert is the owned-payload insertion path: the payload is copied, so the
// fast path may grow the target leaf up to TextInsertMax (the copy would
// have allocated anyway).
func (r *Rope) insert(at int64, v text.View) error {
	if at < 0 || at > r.Size() {
		return ErrIndexOutOfBounds
	}
	v = v.StripNull()
	if v.IsEmpty() {
		return nil
	}
	if !utf8x.StartsEncoded(v.Bytes()) || !utf8x.EndsEncoded(v.Bytes()) {
		return fmt.Errorf("%w: inserted payload is not well-formed", ErrInvalidEncoding)
	}
	if r.root == nil {
		t, err := text.FromView(v)
		if err != nil {
			return translateErr(err)
		}
		r.root = tree.NewText(t)
		return nil
	}
	if err := r.checkInsertionPoint(at); err != nil {
		return err
	}
	if found, ok := r.mutableInsertionLeaf(at, int64(v.Size()), true); ok {
		if err := found.Leaf.Text().Insert(int(at-found.Start), v); err != nil {
			return translateErr(err)
		}
		found.RefreshKeys()
		return nil
	}
	t, err := text.FromView(v)
	if err != nil {
		return translateErr(err)
	}
	r.root = tree.Insert(r.root, at, tree.NewText(t))
	return nil
}

// mutableInsertionLeaf locates a text leaf the payload can be folded into:
// the leaf containing at, when the whole path is exclusively owned and the
// grown size fits the leaf's storage (or stays under TextInsertMax when the
// insertion would allocate anyway).
func (r *Rope) mutableInsertionLeaf(at, size int64, wouldAllocate bool) (*tree.FoundLeaf, bool) {
	var found tree.FoundLeaf
	tree.FindLeaf(r.root, at, &found)
	if !found.PathExclusive() {
		return nil, false
	}
	if found.Leaf.Kind() != tree.TextLeaf {
		return nil, false
	}
	t := found.Leaf.Text()
	if int64(t.Available()) >= size {
		return &found, true
	}
	if wouldAllocate && int64(t.Size())+size <= TextInsertMax {
		return &found, true
	}
	return nil, false
}

// checkInsertionPoint verifies that at lies on a code-point boundary.
func (r *Rope) checkInsertionPoint(at int64) error {
	if !r.boundary(at) {
		return fmt.Errorf("%w: insertion point bisects code point", ErrInvalidEncoding)
	}
	return nil
}

func (r Rope) boundary(pos int64) bool {
	if pos == 0 || pos == r.Size() {
		return true
	}
	return utf8x.LeadByte(tree.FindChar(r.root, pos))
}

// report materializes the byte range [lo,hi) into a fresh slice.
func (r Rope) report(lo, hi int64) []byte {
	assert(0 <= lo && lo <= hi && hi <= r.Size(), "rope: report range out of bounds")
	out := make([]byte, 0, hi-lo)
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
			out = append(out, v.Bytes()[from:to]...)
		} else {
			out = append(out, leaf.LeafRepeated().MaterializeRange(int(from), int(to))...)
		}
		return true
	})
	return out
}

// translateErr maps text- and tree-level error kinds onto the rope API
// sentinels, keeping the underlying message.
func translateErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, text.ErrInvalidEncoding), errors.Is(err, tree.ErrInvalidEncoding):
		return fmt.Errorf("%w: %s", ErrInvalidEncoding, trimPrefix(err.Error()))
	case errors.Is(err, text.ErrIndexOutOfBounds), errors.Is(err, tree.ErrIndexOutOfBounds):
		return ErrIndexOutOfBounds
	}
	return err
}

func trimPrefix(msg string) string {
	for _, p := range []string{"text: invalid UTF-8 encoding: ", "tree: invalid UTF-8 encoding: "} {
		if len(msg) > len(p) && msg[:len(p)] == p {
			return msg[len(p):]
		}
	}
	return msg
}
