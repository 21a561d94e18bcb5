package text

import "errors"

var (
	// ErrInvalidEncoding signals that an operation would leave text that is
	// not well-formed UTF-8.
	ErrInvalidEncoding = errors.New("text: invalid UTF-8 encoding")
	// ErrIndexOutOfBounds signals a positional argument outside the valid range.
	ErrIndexOutOfBounds = errors.New("text: index out of bounds")
)
