package xtrace

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
	"go.uber.org/multierr"
)

type Logger struct {
	groups     []*Group
	clock      xclock.Clock
	onError    ErrorHandler
	baseFields []Field

	// Observers: lock-free reads via atomic.Value; synchronized updates via obsMu.
	// Stored value is []Observer and MUST be treated as immutable by readers.
	observers atomic.Value // holds []Observer
	obsMu     sync.Mutex
}

// Factory: internal constructor.
func newLogger(cfg Config) *Logger {
	l := &Logger{
		clock:   cfg.Clock,
		onError: cfg.ErrorHandler,
	}
	if l.onError == nil {
		l.onError = defaultErrorHandler
	}
	l.groups = make([]*Group, 0, len(cfg.Groups))
	for _, g := range cfg.Groups {
		cp := &Group{Name: g.Name, Rule: g.Rule}
		cp.Destinations = append([]Destination(nil), g.Destinations...)
		l.groups = append(l.groups, cp)
	}
	if len(cfg.Observers) > 0 {
		obs := make([]Observer, len(cfg.Observers))
		copy(obs, cfg.Observers)
		l.observers.Store(obs)
	} else {
		l.observers.Store(([]Observer)(nil))
	}
	return l
}

// Facade: global access (Singleton + Facade).
var global atomic.Pointer[Logger]

// SetGlobal sets the global Logger (Singleton setter).
func SetGlobal(l *Logger) { global.Store(l) }

// L returns the global Logger; panic if unset to surface misconfig early.
func L() *Logger {
	l := global.Load()
	if l == nil {
		panic("xtrace: global logger not set. Build one and call xtrace.SetGlobal(...)")
	}
	return l
}

// Entry points returning fluent builders. context names the component that logs.

func (l *Logger) Success(context string) *Event  { return getEvent(l, LogTypeSuccess, context) }
func (l *Logger) Info(context string) *Event     { return getEvent(l, LogTypeInfo, context) }
func (l *Logger) Event(context string) *Event    { return getEvent(l, LogTypeEvent, context) }
func (l *Logger) Warning(context string) *Event  { return getEvent(l, LogTypeWarning, context) }
func (l *Logger) Failure(context string) *Event  { return getEvent(l, LogTypeFailure, context) }
func (l *Logger) Error(context string) *Event    { return getEvent(l, LogTypeError, context) }
func (l *Logger) Critical(context string) *Event { return getEvent(l, LogTypeCritical, context) }

// WithType starts a record whose type is only known at run time.
func (l *Logger) WithType(typ LogType, context string) *Event { return getEvent(l, typ, context) }

// Log builds and dispatches one record synchronously and returns its ID.
func (l *Logger) Log(context string, typ LogType, description string, fields ...Field) string {
	r := l.record(typ, context, "", description, fields)
	l.dispatch(r)
	return r.ID
}

// With returns a child logger with bound fields.
func (l *Logger) With(fs ...Field) *Logger {
	child := &Logger{
		groups:     l.groups,
		clock:      l.clock,
		onError:    l.onError,
		baseFields: append(copyFields(nil, l.baseFields), fs...),
	}
	// Inherit a snapshot of observers.
	child.observers.Store(l.snapshotObservers())
	return child
}

func (l *Logger) snapshotObservers() []Observer {
	v := l.observers.Load()
	if v == nil {
		return nil
	}
	cur := v.([]Observer)
	if len(cur) == 0 {
		return nil
	}
	out := make([]Observer, len(cur))
	copy(out, cur)
	return out
}

func (l *Logger) AddObserver(o Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	cur := l.snapshotObservers()
	cur = append(cur, o)
	l.observers.Store(cur)
}

// Groups returns the logger's groups. The slice must not be modified.
func (l *Logger) Groups() []*Group { return l.groups }

// Destinations returns every destination of every group, in configuration order.
func (l *Logger) Destinations() []Destination {
	var out []Destination
	for _, g := range l.groups {
		out = append(out, g.Destinations...)
	}
	return out
}

// Dispatch routes a batch to each group's destinations with Send. Each
// destination receives only the records its group accepts, in input order.
func (l *Logger) Dispatch(records []Record) error {
	var err error
	for _, g := range l.groups {
		batch := g.filter(records)
		if len(batch) == 0 {
			continue
		}
		for _, d := range g.Destinations {
			err = multierr.Append(err, d.Send(batch))
		}
	}
	l.notify(records)
	return err
}

// DispatchContext is Dispatch with SendContext. A done ctx is reported once
// without calling any destination.
func (l *Logger) DispatchContext(ctx context.Context, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var err error
	for _, g := range l.groups {
		batch := g.filter(records)
		if len(batch) == 0 {
			continue
		}
		for _, d := range g.Destinations {
			err = multierr.Append(err, d.SendContext(ctx, batch))
		}
	}
	l.notify(records)
	return err
}

func (g *Group) filter(records []Record) []Record {
	if g.Rule == nil {
		return records
	}
	var out []Record
	for i := range records {
		if g.accepts(records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

func (l *Logger) now() time.Time {
	if l.clock != nil {
		return l.clock.Now()
	}
	return xclock.Now()
}

func (l *Logger) record(typ LogType, context, source, description string, evFields []Field) Record {
	merged := make([]Field, 0, len(l.baseFields)+len(evFields))
	merged = append(merged, l.baseFields...)
	merged = append(merged, evFields...)

	r := NewRecord(typ, context, description, merged...)
	r.Source = source
	// Single authoritative timestamp per record.
	r.At = l.now()
	return r
}

func (l *Logger) dispatch(r Record) {
	if err := l.Dispatch([]Record{r}); err != nil {
		l.onError(err)
	}
}

func (l *Logger) notify(records []Record) {
	v := l.observers.Load()
	if v == nil {
		return
	}
	obs := v.([]Observer)
	for _, r := range records {
		for _, o := range obs {
			o.OnLog(r)
		}
	}
}
