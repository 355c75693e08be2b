package diag

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v3"
)

// RetryOptions configures a RetryListener.
type RetryOptions struct {
	MaxRetries      uint64        // retries after the first attempt; defaults to 3
	InitialInterval time.Duration // defaults to 10ms
	MaxElapsedTime  time.Duration // defaults to 1s
}

// RetryListener retries failed writes to the wrapped listener with
// exponential backoff. ErrClosed is never retried.
type RetryListener struct {
	next Listener
	opts RetryOptions
}

var (
	_ Listener = (*RetryListener)(nil)
	_ Flusher  = (*RetryListener)(nil)
)

func NewRetryListener(next Listener, opts RetryOptions) *RetryListener {
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 10 * time.Millisecond
	}
	if opts.MaxElapsedTime <= 0 {
		opts.MaxElapsedTime = time.Second
	}
	return &RetryListener{next: next, opts: opts}
}

func (r *RetryListener) WriteLine(text string) error {
	return backoff.Retry(func() error {
		err := r.next.WriteLine(text)
		if errors.Is(err, ErrClosed) {
			return backoff.Permanent(err)
		}
		return err
	}, r.backOff())
}

func (r *RetryListener) Flush() error {
	if f, ok := r.next.(Flusher); ok {
		return f.Flush()
	}
	return nil
}

func (r *RetryListener) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.opts.InitialInterval
	b.MaxElapsedTime = r.opts.MaxElapsedTime
	return backoff.WithMaxRetries(b, r.opts.MaxRetries)
}
