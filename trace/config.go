package trace

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/config"
	"github.com/trickstertwo/xtrace/diag"
	"github.com/trickstertwo/xtrace/serializer"
)

// NewFromConfig builds a Destination from a validated config. When cfg lists
// listeners the destination writes to its own listener chain instead of the
// process-wide one; Close releases the files and goroutines it opened.
func NewFromConfig(cfg config.Config) (*Destination, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := serializerFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	d, err := New(s)
	if err != nil {
		return nil, err
	}
	if len(cfg.Listeners) == 0 {
		return d, nil
	}

	ls := make([]diag.Listener, 0, len(cfg.Listeners))
	for _, lc := range cfg.Listeners {
		l, closer, err := listenerFromConfig(lc)
		if err != nil {
			_ = d.Close()
			return nil, err
		}
		if closer != nil {
			d.closers = append(d.closers, closer)
		}
		ls = append(ls, l)
	}

	var out diag.Listener = listenerChain(ls, cfg.Retries)
	if cfg.Async {
		policy, err := diag.ParseDropPolicy(cfg.DropPolicy)
		if err != nil {
			_ = d.Close()
			return nil, err
		}
		async := diag.NewAsyncListener(out, diag.AsyncOptions{QueueSize: cfg.QueueSize, Policy: policy})
		// Drain the queue before files are closed.
		d.closers = append([]io.Closer{async}, d.closers...)
		out = async
	}
	d.ResetFacade(NewFacade(diag.NewCollection(out)))
	return d, nil
}

// listenerChain wraps each listener in its own retry when retries > 0, so a
// flaky listener never replays lines to the others.
func listenerChain(ls []diag.Listener, retries uint64) *diag.Collection {
	chain := diag.NewCollection()
	for _, l := range ls {
		if retries > 0 {
			l = diag.NewRetryListener(l, diag.RetryOptions{MaxRetries: retries})
		}
		chain.Add(l)
	}
	return chain
}

func serializerFromConfig(cfg config.Config) (xtrace.Serializer, error) {
	var opts []serializer.TemplateOption
	if cfg.DateLayout != "" {
		opts = append(opts, serializer.WithDateLayout(cfg.DateLayout))
	}
	switch cfg.Serializer {
	case config.SerializerJSON:
		return serializer.NewJSON(), nil
	case config.SerializerExtended:
		e, err := serializer.NewExtended(cfg.Template, opts...)
		if err != nil {
			return nil, err
		}
		return e, nil
	default:
		tpl := cfg.Template
		if tpl == "" {
			tpl = serializer.DefaultTemplate
		}
		t, err := serializer.NewTemplate(tpl, opts...)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
}

func listenerFromConfig(lc config.ListenerConfig) (diag.Listener, io.Closer, error) {
	switch lc.Type {
	case config.ListenerRuntime:
		return diag.NewRuntimeListener(lc.Category), nil, nil
	case config.ListenerStdout:
		return diag.NewWriterListener(os.Stdout), nil, nil
	case config.ListenerStderr:
		return diag.NewWriterListener(os.Stderr), nil, nil
	case config.ListenerFile:
		f, err := os.OpenFile(lc.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "trace: open listener file %s", lc.Path)
		}
		return diag.NewWriterListener(f), f, nil
	default:
		return nil, nil, errors.Errorf("trace: unknown listener type %q", lc.Type)
	}
}

// Close releases resources opened by NewFromConfig. Destinations built
// otherwise own nothing and Close is a no-op.
func (d *Destination) Close() error {
	var err error
	for _, c := range d.closers {
		err = multierr.Append(err, c.Close())
	}
	d.closers = nil
	return err
}
