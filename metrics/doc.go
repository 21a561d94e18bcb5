/*
Package metrics computes text metrics over ropes: line counts, word spans,
grapheme counts and fixed-width display widths.

Grapheme and width calculations delegate to the UAX algorithms; byte- and
rune-level counts are computed segment-wise without materializing the rope.
*/
package metrics

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'rope'
func tracer() tracing.Trace {
	return tracing.Select("rope")
}
