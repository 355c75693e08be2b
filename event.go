package xtrace

import (
	"context"
	"sync"
	"time"
)

// Event is a fluent builder (Builder pattern) for a single record.
// API: logger.Info("billing").Str("invoice", id).Dur("took", d).Msg("invoice sent")
type Event struct {
	l       *Logger
	typ     LogType
	context string
	source  string
	fields  []Field
}

var eventPool = sync.Pool{
	New: func() any { return &Event{fields: make([]Field, 0, 8)} },
}

func getEvent(l *Logger, typ LogType, context string) *Event {
	ev := eventPool.Get().(*Event)
	ev.l = l
	ev.typ = typ
	ev.context = context
	ev.source = ""
	ev.fields = ev.fields[:0]
	return ev
}

func (e *Event) putBack() {
	// allow GC of large backing arrays by capping
	if cap(e.fields) > 128 {
		e.fields = make([]Field, 0, 8)
	}
	e.l = nil
	e.typ = 0
	e.context = ""
	e.source = ""
	eventPool.Put(e)
}

// Source sets the record's source, e.g. the calling function.
func (e *Event) Source(s string) *Event {
	e.source = s
	return e
}

// Field builders (zerolog-style)

func (e *Event) Str(k, v string) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindString, Str: v})
	return e
}

func (e *Event) Int(k string, v int) *Event { return e.Int64(k, int64(v)) }

func (e *Event) Int64(k string, v int64) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindInt64, Int64: v})
	return e
}

func (e *Event) Uint64(k string, v uint64) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindUint64, Uint64: v})
	return e
}

func (e *Event) Float64(k string, v float64) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindFloat64, Float64: v})
	return e
}

func (e *Event) Bool(k string, v bool) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindBool, Bool: v})
	return e
}

func (e *Event) Dur(k string, v time.Duration) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindDuration, Dur: v})
	return e
}

func (e *Event) Time(k string, v time.Time) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindTime, Time: v})
	return e
}

func (e *Event) Bytes(k string, v []byte) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindBytes, Bytes: v})
	return e
}

func (e *Event) Err(err error) *Event {
	if err == nil {
		return e
	}
	e.fields = append(e.fields, Field{K: "error", Kind: KindError, Err: err})
	return e
}

func (e *Event) Any(k string, v any) *Event {
	e.fields = append(e.fields, Field{K: k, Kind: KindAny, Any: v})
	return e
}

// Msg terminates the builder, dispatches the record synchronously and
// returns its ID. Destination failures go to the Logger's ErrorHandler.
func (e *Event) Msg(description string) string {
	r := e.l.record(e.typ, e.context, e.source, description, e.fields)
	e.l.dispatch(r)
	e.putBack()
	return r.ID
}

// MsgContext terminates the builder and dispatches with SendContext,
// returning the record ID and any destination failure.
func (e *Event) MsgContext(ctx context.Context, description string) (string, error) {
	l := e.l
	r := l.record(e.typ, e.context, e.source, description, e.fields)
	e.putBack()
	return r.ID, l.DispatchContext(ctx, []Record{r})
}
