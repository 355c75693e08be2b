package xtrace

import "sync/atomic"

// defaultDestinationFactory is set by a destination package (e.g. trace) in
// its init() to avoid import cycles. Default() uses this to build a logger.
var defaultDestinationFactory atomic.Pointer[func() Destination]

// RegisterDefaultDestinationFactory registers the constructor used by xtrace.Default().
// Destination packages should call this from init() to avoid import cycles.
// Example (in package trace):
//
//	func init() {
//	  xtrace.RegisterDefaultDestinationFactory(func() xtrace.Destination {
//	    return NewDefault()
//	  })
//	}
func RegisterDefaultDestinationFactory(f func() Destination) {
	defaultDestinationFactory.Store(&f)
}

// Default creates a logger with a single all-logs group holding the
// registered default destination. Side import github.com/trickstertwo/xtrace/trace
// to register the trace destination. Panics if no factory is registered.
func Default() *Logger {
	f := defaultDestinationFactory.Load()
	if f == nil || *f == nil {
		panic("xtrace: no default destination registered. Import xtrace/trace or call xtrace.RegisterDefaultDestinationFactory")
	}
	l, err := NewBuilder().ForAllLogs().CustomDestination((*f)()).BuildLogger()
	if err != nil {
		panic(err)
	}
	return l
}

// New creates a default logger (via Default()) and sets it as global.
// It returns the global logger for convenience.
func New() *Logger {
	l := Default()
	SetGlobal(l)
	return l
}

// UseDestination sets a logger writing every record to d as the global logger.
// It builds the logger, sets it as global, and returns it.
func UseDestination(d Destination, observers ...Observer) (*Logger, error) {
	b := NewBuilder()
	for _, o := range observers {
		b.AddObserver(o)
	}
	l, err := b.ForAllLogs().CustomDestination(d).BuildLogger()
	if err != nil {
		return nil, err
	}
	SetGlobal(l)
	return l, nil
}
