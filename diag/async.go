package diag

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
)

// DropPolicy controls behavior when the async queue is full.
type DropPolicy uint8

const (
	DropNewest DropPolicy = iota // fast, no producer stall (default)
	DropOldest                   // discard oldest line to make room
	Block                        // producer blocks until space available
)

// ParseDropPolicy maps "drop_newest", "drop_oldest" and "block".
func ParseDropPolicy(s string) (DropPolicy, error) {
	switch s {
	case "", "drop_newest":
		return DropNewest, nil
	case "drop_oldest":
		return DropOldest, nil
	case "block":
		return Block, nil
	default:
		return 0, errors.Errorf("diag: unknown drop policy %q", s)
	}
}

// ErrorHandler receives failures of the wrapped listener.
type ErrorHandler func(error)

func defaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "xtrace diag error: %v\n", err) }

var (
	ErrQueueFull = errors.New("diag: async queue full, dropping trace line")
	ErrClosed    = errors.New("diag: async listener closed")
)

// AsyncOptions configures an AsyncListener.
type AsyncOptions struct {
	QueueSize    int // defaults to 1024 when <= 0
	Policy       DropPolicy
	ErrorHandler ErrorHandler
}

// Stats is a point-in-time counters snapshot.
type Stats struct {
	Written uint64
	Dropped uint64
	Errors  uint64
}

// AsyncListener moves writes of a slow listener onto one background goroutine.
// WriteLine only enqueues; failures of the wrapped listener are reported to
// the ErrorHandler.
type AsyncListener struct {
	next    Listener
	opts    AsyncOptions
	queue   chan string
	wg      sync.WaitGroup
	mu      sync.RWMutex // guards queue sends against close
	stopped atomic.Bool

	written atomic.Uint64
	dropped atomic.Uint64
	errs    atomic.Uint64
}

// NewAsyncListener starts the background writer for next.
func NewAsyncListener(next Listener, opts AsyncOptions) *AsyncListener {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 1024
	}
	if opts.ErrorHandler == nil {
		opts.ErrorHandler = defaultErrorHandler
	}
	a := &AsyncListener{
		next:  next,
		opts:  opts,
		queue: make(chan string, opts.QueueSize),
	}
	a.wg.Add(1)
	go a.process()
	return a
}

func (a *AsyncListener) WriteLine(text string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.stopped.Load() {
		return ErrClosed
	}
	select {
	case a.queue <- text:
		return nil
	default:
	}
	switch a.opts.Policy {
	case DropOldest:
		// Steal one from the queue to make room.
		select {
		case <-a.queue:
			a.dropped.Add(1)
		default:
		}
		select {
		case a.queue <- text:
			return nil
		default:
			a.dropped.Add(1)
			return ErrQueueFull
		}
	case Block:
		a.queue <- text
		return nil
	default:
		a.dropped.Add(1)
		return ErrQueueFull
	}
}

// Flush is a no-op for queued lines; it flushes the wrapped listener.
func (a *AsyncListener) Flush() error {
	if f, ok := a.next.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

// Close stops accepting lines and waits until every queued line is written.
func (a *AsyncListener) Close() error {
	a.mu.Lock()
	if a.stopped.Swap(true) {
		a.mu.Unlock()
		return nil
	}
	close(a.queue)
	a.mu.Unlock()
	a.wg.Wait()
	return nil
}

// Stats returns a snapshot of internal counters.
func (a *AsyncListener) Stats() Stats {
	return Stats{
		Written: a.written.Load(),
		Dropped: a.dropped.Load(),
		Errors:  a.errs.Load(),
	}
}

func (a *AsyncListener) process() {
	defer a.wg.Done()
	for text := range a.queue {
		if err := a.next.WriteLine(text); err != nil {
			a.errs.Add(1)
			a.opts.ErrorHandler(err)
			continue
		}
		a.written.Add(1)
	}
}
