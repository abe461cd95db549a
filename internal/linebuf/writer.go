// Package linebuf provides line-buffered IO utilities.
package linebuf

import (
	"bytes"
	"io"
	"log"
	"sync"
)

// Writer returns an io.Writer that splits its input on newlines,
// calling fn once for each line, including its trailing newline.
// Call done after the last write to flush a trailing partial line.
func Writer(fn func([]byte)) (_ io.Writer, done func()) {
	w := writer{writeLine: fn}
	return &w, w.flush
}

// Logger returns an io.Writer that prints each line to the logger
// with the given prefix and without the trailing newline.
// This is used to report the output of external commands.
func Logger(l *log.Logger, prefix string) (_ io.Writer, done func()) {
	return Writer(func(line []byte) {
		l.Printf("%s%s", prefix, bytes.TrimSuffix(line, _newline))
	})
}

var _newline = []byte{'\n'}

// writer is an io.Writer that feeds whole lines to a function.
type writer struct {
	writeLine func([]byte)

	// Holds buffered text for the next write or flush
	// if we haven't yet seen a newline.
	buff bytes.Buffer
	mu   sync.Mutex // guards buff
}

func (w *writer) Write(bs []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Partial lines are held in buff
	// until the rest of the line arrives.
	total := len(bs)
	for len(bs) > 0 {
		idx := bytes.IndexByte(bs, '\n')
		if idx < 0 {
			// No newline. Buffer it for later.
			w.buff.Write(bs)
			break
		}

		var line []byte
		line, bs = bs[:idx+1], bs[idx+1:]

		if w.buff.Len() == 0 {
			// Nothing buffered from a prior partial write.
			// This is the majority case.
			w.writeLine(line)
			continue
		}

		// There's a prior partial write. Join and flush.
		w.buff.Write(line)
		w.writeLine(w.buff.Bytes())
		w.buff.Reset()
	}
	return total, nil
}

// flush flushes buffered text, even if it doesn't end with a newline.
func (w *writer) flush() {
	if w.buff.Len() > 0 {
		w.writeLine(w.buff.Bytes())
	}
}
