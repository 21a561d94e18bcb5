package rope

import (
	"fmt"
	"io"

	"github.com/ropekit/rope/tree"
)

// Rope2Dot outputs the internal structure of a rope in Graphviz DOT format
// (for debugging purposes).
func Rope2Dot(r Rope, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	ids := map[*tree.Node]int{}
	var nodelist, edgelist string
	var walk func(n *tree.Node, pos int64)
	walk = func(n *tree.Node, pos int64) {
		id := len(ids) + 1
		ids[n] = id
		if n.IsLeaf() {
			label := fmt.Sprintf("%d @%d\\n“%s”", n.Size(), pos, dotPreview(n))
			nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" style=filled fillcolor=grey92 shape=box];\n", id, label)
			return
		}
		nodelist += fmt.Sprintf("\"%d\" [label=\"%d\" style=filled fillcolor=lightblue];\n", id, n.Size())
		off := int64(0)
		for _, c := range n.Children() {
			walk(c, pos+off)
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", id, ids[c])
			off += c.Size()
		}
	}
	if r.root != nil {
		walk(r.root, 0)
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

// dotPreview shortens leaf content for a DOT label.
func dotPreview(n *tree.Node) string {
	s := Segment{leaf: n}.String()
	if rs := []rune(s); len(rs) > 8 {
		s = string(rs[:8]) + "…"
	}
	out := make([]rune, 0, len(s))
	for _, c := range s {
		switch c {
		case '\n':
			out = append(out, '␤')
		case '"', '\\':
			// drop characters that would break the DOT string
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
