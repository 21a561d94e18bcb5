/*
Package rope implements a persistent, immutable-by-default string data
structure tuned for editors and large textual buffers.

A rope stores UTF-8 text fragments in a balanced tree whose interior nodes
carry cumulative length keys. Indexed access, insertion, erasure and
substring all run in logarithmic time, and unchanged subtrees are shared
between rope versions (copy-on-write along the touched path).

A rope created by

	rope.New()

is a valid object and behaves like the empty string. Methods that take or
return positions use byte offsets.

Due to their internal structure ropes have performance characteristics
differing from Go strings or byte slices:

	Operation     |   Rope          |  String
	--------------+-----------------+--------
	Index         |   O(log n)      |   O(1)
	Substring     |   O(log n)      |   O(n)
	Iterate       |   O(n)          |   O(n)

	Concatenate   |   O(1)          |   O(n)
	Insert        |   O(log n)      |   O(n)
	Delete        |   O(log n)      |   O(n)

For use cases with many editing operations on large texts, ropes have stable
performance and space characteristics.

Sharing is explicit: use Clone to take a second version of a rope. Plain
struct assignment shares the underlying tree without registering the
reference and must not be combined with mutation.
*/
package rope

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Error is the error type for rope API conditions.
type Error string

func (e Error) Error() string {
	return string(e)
}

// ErrIndexOutOfBounds is flagged whenever a rope position is greater than
// the length of the rope.
const ErrIndexOutOfBounds = Error("index out of bounds")

// ErrInvalidEncoding is flagged whenever an operation would leave the rope
// not well-formed UTF-8.
const ErrInvalidEncoding = Error("invalid UTF-8 encoding")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = Error("illegal arguments")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
