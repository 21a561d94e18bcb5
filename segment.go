package rope

import (
	"github.com/ropekit/rope/text"
	"github.com/ropekit/rope/tree"
)

// Segment is a read-only view of one rope leaf payload.
//
// It is the stable API surface for streaming and analytics code, so callers
// do not need to depend on tree internals.
type Segment struct {
	leaf *tree.Node
}

// SegmentKind names the payload variant of a segment.
type SegmentKind uint8

const (
	// TextSegment owns its bytes.
	TextSegment SegmentKind = iota
	// ViewSegment borrows caller memory.
	ViewSegment
	// RepeatedSegment is a lazy repetition.
	RepeatedSegment
	// RefSegment references another segment's owned bytes.
	RefSegment
)

// String returns the kind name.
func (k SegmentKind) String() string {
	switch k {
	case TextSegment:
		return "text"
	case ViewSegment:
		return "view"
	case RepeatedSegment:
		return "repeated"
	case RefSegment:
		return "ref"
	}
	return "unknown"
}

// Kind returns the segment's payload variant.
func (s Segment) Kind() SegmentKind {
	switch s.leaf.Kind() {
	case tree.TextLeaf:
		return TextSegment
	case tree.ViewLeaf:
		return ViewSegment
	case tree.RepeatedLeaf:
		return RepeatedSegment
	default:
		return RefSegment
	}
}

// Size returns the number of bytes in this segment.
func (s Segment) Size() int64 {
	return s.leaf.Size()
}

// IsRepeated reports whether the segment is a lazy repetition.
func (s Segment) IsRepeated() bool {
	return s.leaf.Kind() == tree.RepeatedLeaf
}

// View returns the contiguous segment content and ok=true, or ok=false for
// a repeated segment.
func (s Segment) View() (text.View, bool) {
	return s.leaf.LeafView()
}

// Repeated returns the repetition of a repeated segment.
func (s Segment) Repeated() text.RepeatedView {
	return s.leaf.LeafRepeated()
}

// Bytes materializes the segment content. For contiguous segments the
// returned slice borrows leaf storage.
func (s Segment) Bytes() []byte {
	if v, ok := s.leaf.LeafView(); ok {
		return v.Bytes()
	}
	return s.leaf.LeafRepeated().Materialize()
}

// String returns a copy of the segment content.
func (s Segment) String() string {
	return string(s.Bytes())
}
