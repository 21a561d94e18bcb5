package textfile

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/guiguan/caster"
	"github.com/ropekit/rope"
)

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 102400
	oneMb     = 1048576
)

// Fragment describes one loaded file fragment, broadcast to subscribers of a
// Loading.
type Fragment struct {
	Pos int64 // start offset of the fragment within the file
	Len int64 // fragment length in bytes
}

// textFile represents an OS file which will be loaded as a rope.
type textFile struct {
	path      string         // file name
	info      os.FileInfo    // result from Stat(path)
	file      *os.File       // file handle
	cast      *caster.Caster // broadcaster for async file loading
	lastError error          // remember last I/O error
}

// Loading is a handle on an asynchronous file load.
//
// Reading starts on the first call to Subscribe, Done or Wait, so clients
// subscribing right after LoadAsync observe every fragment event.
type Loading struct {
	tf       *textFile
	done     chan struct{}
	fragSize int64
	once     sync.Once

	mu   sync.Mutex
	rope rope.Rope
	err  error
}

// Load reads a file, which must be a text file, and loads it as a rope.
// Clients may indicate a recommended fragment length; 0 lets Load pick a
// sensible default from the file size.
//
// Load is synchronous; use LoadAsync for background loading.
func Load(name string, fragSize int64) (rope.Rope, error) {
	ld, err := LoadAsync(name, fragSize)
	if err != nil {
		return rope.Rope{}, err
	}
	return ld.Wait()
}

// LoadAsync opens a file synchronously and starts loading its content in
// the background. Fragment completion is published to subscribers.
func LoadAsync(name string, fragSize int64) (*Loading, error) {
	tf, err := openFile(name)
	if err != nil {
		return nil, err
	}
	ld := &Loading{
		tf:       tf,
		done:     make(chan struct{}),
		fragSize: effectiveFragSize(tf.info.Size(), fragSize),
	}
	return ld, nil
}

func (ld *Loading) start() {
	ld.once.Do(func() {
		go ld.loadAllFragments(ld.fragSize)
	})
}

// Subscribe returns a channel of Fragment events. The channel is closed
// when loading finishes. The returned cancel function unsubscribes.
func (ld *Loading) Subscribe() (<-chan interface{}, func()) {
	ch, _ := ld.tf.cast.Sub(nil, 1)
	ld.start()
	return ch, func() { ld.tf.cast.Unsub(ch) }
}

// Done returns a channel closed when loading has finished.
func (ld *Loading) Done() <-chan struct{} {
	ld.start()
	return ld.done
}

// Wait blocks until loading has finished and returns the loaded rope.
func (ld *Loading) Wait() (rope.Rope, error) {
	ld.start()
	<-ld.done
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return ld.rope, ld.err
}

// openFile opens an OS file and collects some useful information on it,
// checking for error conditions.
func openFile(name string) (*textFile, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("file is not a regular file")
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	tf := &textFile{
		path: name,
		info: fi,
		file: file,
		cast: caster.New(nil), // we will broadcast messages when fragments are loaded
	}
	return tf, nil
}

// effectiveFragSize picks a fragment length from the file size unless the
// client provided a usable one.
func effectiveFragSize(fileSize, fragSize int64) int64 {
	// At least utf8.UTFMax, so a fragment always contains one whole rune
	// after a partial-suffix carry.
	if fragSize >= 4 && fragSize <= tenKb {
		return fragSize
	}
	switch {
	case fileSize < 64:
		return max(fileSize, 1)
	case fileSize < 1024:
		return 64
	case fileSize < tenKb:
		return 256
	case fileSize < hundredKb:
		return 512
	case fileSize < oneMb:
		return twoKb
	default:
		return sixKb
	}
}

// loadAllFragments reads the file fragment by fragment, appending each one
// to the rope and publishing its completion.
func (ld *Loading) loadAllFragments(fragSize int64) {
	tf := ld.tf
	defer func() {
		tf.cast.Close()
		_ = tf.file.Close()
		close(ld.done)
	}()
	var r rope.Rope
	size := tf.info.Size()
	buf := make([]byte, fragSize)
	var pos int64
	for pos < size {
		n := min(fragSize, size-pos)
		cnt, err := tf.file.ReadAt(buf[:n], pos)
		if err != nil && err != io.EOF {
			tf.lastError = fmt.Errorf("error loading text fragment: %w", err)
			break
		} else if int64(cnt) < n {
			tf.lastError = fmt.Errorf("not all bytes loaded for text fragment")
			break
		}
		// Fragments may end inside a multi-byte code point; carry the
		// partial suffix over into the next fragment.
		frag := buf[:cnt]
		carry := trailingPartial(frag)
		if carry > 0 && pos+n < size {
			frag = frag[:len(frag)-carry]
		}
		if err := r.Insert(r.Size(), string(frag)); err != nil {
			tf.lastError = fmt.Errorf("text fragment is not well-formed: %w", err)
			break
		}
		tracer().Debugf("textfile: loaded fragment [%d,%d)", pos, pos+int64(len(frag)))
		tf.cast.Pub(Fragment{Pos: pos, Len: int64(len(frag))})
		pos += int64(len(frag))
	}
	ld.mu.Lock()
	ld.rope = r
	ld.err = tf.lastError
	ld.mu.Unlock()
}

// trailingPartial returns the number of trailing bytes that form an
// incomplete UTF-8 code point, 0 if the fragment ends on a boundary.
func trailingPartial(b []byte) int {
	for i := 1; i <= 4 && i <= len(b); i++ {
		c := b[len(b)-i]
		if c < 0x80 {
			return 0
		}
		if c >= 0xC0 {
			// lead byte: complete when its sequence length equals i
			var n int
			switch {
			case c < 0xE0:
				n = 2
			case c < 0xF0:
				n = 3
			default:
				n = 4
			}
			if n == i {
				return 0
			}
			return i
		}
	}
	return 0
}
