package tree

import "errors"

var (
	// ErrIndexOutOfBounds signals an invalid byte offset.
	ErrIndexOutOfBounds = errors.New("tree: index out of bounds")
	// ErrInvalidEncoding signals that a structural edit would break UTF-8
	// well-formedness at a touched boundary.
	ErrInvalidEncoding = errors.New("tree: invalid UTF-8 encoding")
	// ErrInvariantViolated is returned by Check for a malformed tree.
	ErrInvariantViolated = errors.New("tree: invariant violated")
)

// EncodingNote selects between validated and unvalidated mutation paths.
//
// The default for every public entry point is CheckEncoding. EncodingBreakageOK
// exists for low-level byte-iterator interfaces that are documented as unsafe.
type EncodingNote uint8

const (
	// CheckEncoding validates UTF-8 at the boundaries touched by a mutation.
	CheckEncoding EncodingNote = iota
	// EncodingBreakageOK bypasses boundary validation.
	EncodingBreakageOK
)
