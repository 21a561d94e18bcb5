package rope

import (
	"bytes"
	"strings"
	"testing"
)

func TestRope2Dot(t *testing.T) {
	r := fragmentedRope(t, "Hel", "lo ", "World")
	var buf bytes.Buffer
	Rope2Dot(r, &buf)
	out := buf.String()
	if !strings.HasPrefix(out, "strict digraph {") {
		t.Errorf("missing digraph preamble: %q", out)
	}
	if !strings.Contains(out, "Hel") {
		t.Errorf("missing leaf label: %q", out)
	}
	if !strings.Contains(out, "->") {
		t.Errorf("missing edges: %q", out)
	}
}

func TestRope2DotEmpty(t *testing.T) {
	var buf bytes.Buffer
	Rope2Dot(New(), &buf)
	if !strings.Contains(buf.String(), "}") {
		t.Errorf("dump not closed: %q", buf.String())
	}
}
