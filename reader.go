package rope

import "io"

// Reader returns a reader for the bytes of the rope.
//
// The reader materializes fragments on demand and is invalidated by
// mutation of the rope, like an iterator.
func (r Rope) Reader() io.Reader {
	return &ropeReader{rope: r}
}

// Report materializes l bytes at offset i as a Go string.
func (r Rope) Report(i, l int64) (string, error) {
	if i < 0 || l < 0 || i+l > r.Size() {
		return "", ErrIndexOutOfBounds
	}
	return string(r.report(i, i+l)), nil
}

type ropeReader struct {
	rope   Rope
	cursor int64
}

func (rr *ropeReader) Read(p []byte) (int, error) {
	l := int64(len(p))
	if rr.cursor+l > rr.rope.Size() {
		l = rr.rope.Size() - rr.cursor
		if l == 0 {
			return 0, io.EOF
		}
	}
	n := copy(p, rr.rope.report(rr.cursor, rr.cursor+l))
	rr.cursor += int64(n)
	return n, nil
}
