package diag

import (
	"io"
	"os"
	"sync"
)

// WriterListener appends each line, newline-terminated, to an io.Writer.
type WriterListener struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterListener wraps w; a nil w defaults to os.Stderr.
func NewWriterListener(w io.Writer) *WriterListener {
	if w == nil {
		w = os.Stderr
	}
	return &WriterListener{w: w}
}

func (l *WriterListener) WriteLine(text string) error {
	b := make([]byte, 0, len(text)+1)
	b = append(b, text...)
	b = append(b, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := l.w.Write(b)
	return err
}

// Flush syncs the writer when it is a regular file.
func (l *WriterListener) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	f, ok := l.w.(*os.File)
	if !ok || f == os.Stdout || f == os.Stderr {
		return nil
	}
	return f.Sync()
}
