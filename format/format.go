/*
Package format renders ropes for console inspection: a colored per-segment
dump for debugging and width-aware plain printing.

Output honors the terminal width when one is attached; otherwise a default
width is used.
*/
package format

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ropekit/rope"
)

// DefaultLineWidth is used when no terminal width can be determined.
const DefaultLineWidth = 80

// LineWidth returns the width of the attached terminal, or DefaultLineWidth
// when stdout is not interactive.
func LineWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		w, _, err := term.GetSize(fd)
		if err == nil && w > 0 {
			return w
		}
	}
	return DefaultLineWidth
}

var (
	offsetStyle   = color.New(color.FgHiBlack)
	kindStyle     = color.New(color.FgCyan)
	contentStyle  = color.New(color.FgGreen)
	repeatedStyle = color.New(color.FgYellow)
)

// Dump writes one line per rope segment to w: offset, payload kind and a
// content preview. It is a debugging aid.
func Dump(w io.Writer, r rope.Rope) error {
	fmt.Fprintf(w, "rope: %d bytes in %d fragments, height %d\n",
		r.Size(), r.FragmentCount(), r.Height())
	return r.EachSegment(func(seg rope.Segment, pos int64) error {
		style := contentStyle
		if seg.Kind() == rope.RepeatedSegment {
			style = repeatedStyle
		}
		_, err := fmt.Fprintf(w, "%s %s %s\n",
			offsetStyle.Sprintf("@%-8d", pos),
			kindStyle.Sprintf("%-8s", seg.Kind()),
			style.Sprintf("%q", preview(seg.String())),
		)
		return err
	})
}

// Print writes the rope content to stdout, hard-wrapped at the terminal
// width.
func Print(r rope.Rope) error {
	return Fprint(os.Stdout, r, LineWidth())
}

// Fprint writes the rope content to w, hard-wrapped after width code points
// per line.
func Fprint(w io.Writer, r rope.Rope, width int) error {
	if width <= 0 {
		width = DefaultLineWidth
	}
	col := 0
	err := r.EachSegment(func(seg rope.Segment, _ int64) error {
		for _, c := range seg.String() {
			if c == '\n' {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
				col = 0
				continue
			}
			if col >= width {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
				col = 0
			}
			if _, err := io.WriteString(w, string(c)); err != nil {
				return err
			}
			col++
		}
		return nil
	})
	if err != nil {
		return err
	}
	if col > 0 {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

func preview(s string) string {
	rs := []rune(s)
	if len(rs) > 24 {
		return string(rs[:24]) + "…"
	}
	return s
}
