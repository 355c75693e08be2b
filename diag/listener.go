package diag

import (
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
)

// Listener receives trace lines. Implementations MUST be concurrency-safe.
type Listener interface {
	WriteLine(text string) error
}

// Flusher is implemented by listeners that buffer output.
type Flusher interface {
	Flush() error
}

// Collection is an ordered listener chain.
type Collection struct {
	// Lock-free reads via atomic.Value; synchronized updates via mu.
	// Stored value is []Listener and MUST be treated as immutable by readers.
	listeners atomic.Value // holds []Listener
	mu        sync.Mutex
}

// NewCollection returns a chain holding ls in order.
func NewCollection(ls ...Listener) *Collection {
	c := &Collection{}
	cur := make([]Listener, 0, len(ls))
	for _, l := range ls {
		if l != nil {
			cur = append(cur, l)
		}
	}
	c.listeners.Store(cur)
	return c
}

// Snapshot returns the current listeners. The slice must not be modified.
func (c *Collection) Snapshot() []Listener {
	v := c.listeners.Load()
	if v == nil {
		return nil
	}
	return v.([]Listener)
}

func (c *Collection) Len() int { return len(c.Snapshot()) }

// Add appends l to the chain. A nil listener is ignored.
func (c *Collection) Add(l Listener) {
	if l == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.Snapshot()
	next := make([]Listener, 0, len(cur)+1)
	next = append(next, cur...)
	next = append(next, l)
	c.listeners.Store(next)
}

// Remove drops the first occurrence of l and reports whether it was present.
func (c *Collection) Remove(l Listener) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	cur := c.Snapshot()
	for i := range cur {
		if cur[i] == l {
			next := make([]Listener, 0, len(cur)-1)
			next = append(next, cur[:i]...)
			next = append(next, cur[i+1:]...)
			c.listeners.Store(next)
			return true
		}
	}
	return false
}

// Clear removes every listener.
func (c *Collection) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners.Store([]Listener{})
}

// WriteLine hands text to every listener in order. A failing listener does
// not stop the others; all failures are returned combined.
func (c *Collection) WriteLine(text string) error {
	var err error
	for _, l := range c.Snapshot() {
		err = multierr.Append(err, l.WriteLine(text))
	}
	return err
}

// Flush flushes every listener that implements Flusher.
func (c *Collection) Flush() error {
	var err error
	for _, l := range c.Snapshot() {
		if f, ok := l.(Flusher); ok {
			err = multierr.Append(err, f.Flush())
		}
	}
	return err
}

var std = NewCollection(NewRuntimeListener(DefaultCategory))

// Default returns the process-wide collection.
func Default() *Collection { return std }

// WriteLine writes text to the process-wide collection.
func WriteLine(text string) error { return std.WriteLine(text) }
