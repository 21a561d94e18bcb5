/*
Package htmltext extracts the textual content of HTML documents into ropes.

It resembles the text produced by

	document.getElementById("myNode").innerText

in JavaScript (except that it cannot respect CSS styling suppressing the
visibility of a node's descendents). Text nodes are appended to the rope in
document order; the fragment organization of the resulting rope does not
follow the element hierarchy, since small appends are folded into the last
text leaf.
*/
package htmltext

import (
	"io"

	"golang.org/x/net/html"

	"github.com/ropekit/rope"
)

// InnerText creates a rope for the textual content of an HTML element and
// all its descendents.
func InnerText(n *html.Node) (rope.Rope, error) {
	if n == nil {
		return rope.Rope{}, rope.ErrIllegalArguments
	}
	var r rope.Rope
	if err := collectText(n, &r); err != nil {
		return rope.Rope{}, err
	}
	return r, nil
}

// FromHTML creates a rope from the textual content of an HTML fragment. It
// does no interpretation of layout and styling, but extracts the pure text.
func FromHTML(input io.Reader) (rope.Rope, error) {
	nodes, err := html.ParseFragment(input, nil)
	if err != nil {
		return rope.Rope{}, err
	}
	var r rope.Rope
	for _, n := range nodes {
		if err := collectText(n, &r); err != nil {
			return rope.Rope{}, err
		}
	}
	return r, nil
}

func collectText(n *html.Node, r *rope.Rope) error {
	if n.Type == html.TextNode && len(n.Data) > 0 {
		if err := r.Insert(r.Size(), n.Data); err != nil {
			return err
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := collectText(c, r); err != nil {
			return err
		}
	}
	return nil
}
