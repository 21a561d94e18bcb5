package rope

import "io"

// WriteTo writes the rope content to w, segment by segment.
func (r Rope) WriteTo(w io.Writer) (int64, error) {
	var written int64
	err := r.EachSegment(func(seg Segment, _ int64) error {
		if v, ok := seg.View(); ok {
			n, err := w.Write(v.Bytes())
			written += int64(n)
			return err
		}
		rv := seg.Repeated()
		unit := rv.View().Bytes()
		for i := 0; i < rv.Count(); i++ {
			n, err := w.Write(unit)
			written += int64(n)
			if err != nil {
				return err
			}
		}
		return nil
	})
	return written, err
}

// padChunk is the unit in which padding is written, to amortize sink calls.
const padChunk = 8

// Format writes the rope to w inside a field of the given width, padded
// with fill. A negative width or a width not exceeding the rope size writes
// the bare content. leftAlign selects the padding side.
func (r Rope) Format(w io.Writer, width int, fill byte, leftAlign bool) error {
	padding := width - int(r.Size())
	if padding <= 0 {
		_, err := r.WriteTo(w)
		return err
	}
	if leftAlign {
		if _, err := r.WriteTo(w); err != nil {
			return err
		}
		return writePadding(w, fill, padding)
	}
	if err := writePadding(w, fill, padding); err != nil {
		return err
	}
	_, err := r.WriteTo(w)
	return err
}

func writePadding(w io.Writer, fill byte, n int) error {
	var chunk [padChunk]byte
	for i := range chunk {
		chunk[i] = fill
	}
	for n > 0 {
		k := min(n, padChunk)
		if _, err := w.Write(chunk[:k]); err != nil {
			return err
		}
		n -= k
	}
	return nil
}
