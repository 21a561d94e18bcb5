/*
Package textfile provides API helpers to load UTF-8 text files as ropes.

Loading may happen asynchronously for large files: the file is read in
fragments, which are appended to the rope one after another (a fragment that
fits into the last text leaf is folded into it). Completion of fragments is
broadcast to subscribers, so clients such as editors can render the visible
part of a file before the whole file is in memory.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'rope'
func tracer() tracing.Trace {
	return tracing.Select("rope")
}
