package rope

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/ropekit/rope/text"
)

func TestWriteTo(t *testing.T) {
	r := fragmentedRope(t, "Hello ", "World")
	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if n != 11 || buf.String() != "Hello World" {
		t.Errorf("wrote %d bytes: %q", n, buf.String())
	}
}

func TestWriteToExpandsRepetition(t *testing.T) {
	r := New()
	if err := r.InsertRepeated(0, text.Repeat(text.ViewOfString("ab"), 3)); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "ababab" {
		t.Errorf("wrote %q", buf.String())
	}
}

func TestFormatPadding(t *testing.T) {
	r := mustRope(t, "abc")
	var buf bytes.Buffer
	if err := r.Format(&buf, 10, '.', false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != ".......abc" {
		t.Errorf("right-aligned = %q", buf.String())
	}
	buf.Reset()
	if err := r.Format(&buf, 10, '.', true); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "abc......." {
		t.Errorf("left-aligned = %q", buf.String())
	}
	buf.Reset()
	if err := r.Format(&buf, 2, '.', true); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "abc" {
		t.Errorf("narrow field = %q", buf.String())
	}
}

func TestFormatPaddingChunks(t *testing.T) {
	r := mustRope(t, "x")
	sink := &countingWriter{}
	if err := r.Format(sink, 26, ' ', false); err != nil {
		t.Fatal(err)
	}
	// 25 pad bytes in chunks of 8: 8+8+8+1 = 4 writes, plus 1 content write.
	if sink.writes != 5 {
		t.Errorf("writes = %d, want 5", sink.writes)
	}
	if sink.buf.String() != strings.Repeat(" ", 25)+"x" {
		t.Errorf("output = %q", sink.buf.String())
	}
}

type countingWriter struct {
	buf    bytes.Buffer
	writes int
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	cw.writes++
	return cw.buf.Write(p)
}

func TestReader(t *testing.T) {
	r := fragmentedRope(t, "Hello ", "World")
	got, err := io.ReadAll(r.Reader())
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "Hello World" {
		t.Errorf("read %q", got)
	}
	small := make([]byte, 4)
	rd := r.Reader()
	n, err := rd.Read(small)
	if err != nil || n != 4 || string(small) != "Hell" {
		t.Errorf("partial read %q (%d, %v)", small[:n], n, err)
	}
}

func TestFromReader(t *testing.T) {
	payload := strings.Repeat("chunked content ", 600) // crosses fragSize
	r, err := FromReader(strings.NewReader(payload))
	if err != nil {
		t.Fatal(err)
	}
	if r.String() != payload {
		t.Errorf("round trip through FromReader failed")
	}
	if r.FragmentCount() < 2 {
		t.Errorf("large input should fragment, got %d fragments", r.FragmentCount())
	}
	mustInvariants(t, r)
}
