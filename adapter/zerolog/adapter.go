package zerologadapter

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xtrace"
)

// Destination forwards records to rs/zerolog.
//
// Optimizations:
//   - Pre-binds fields in With() by creating a child zerolog.Logger.
//   - Fast pre-check using GetLevel() to avoid allocating a zerolog.Event
//     when the level is disabled.
type Destination struct {
	l zerolog.Logger
}

var _ xtrace.Destination = (*Destination)(nil)

func New(l zerolog.Logger) *Destination {
	return &Destination{l: l}
}

// With returns a child destination with fs bound onto a child zerolog.Logger.
func (d *Destination) With(fs ...xtrace.Field) *Destination {
	child := *d
	if len(fs) == 0 {
		return &child
	}
	ctx := d.l.With()
	for i := range fs {
		ctx = appendCtxField(ctx, &fs[i])
	}
	child.l = ctx.Logger()
	return &child
}

// Send writes every record.
func (d *Destination) Send(records []xtrace.Record) error {
	for i := range records {
		d.write(&records[i])
	}
	return nil
}

// SendContext is Send that stops with ctx.Err() once ctx is done.
func (d *Destination) SendContext(ctx context.Context, records []xtrace.Record) error {
	for i := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.write(&records[i])
	}
	return nil
}

func (d *Destination) String() string { return "zerologadapter.Destination" }

func (d *Destination) write(r *xtrace.Record) {
	zlvl := mapLevel(r.Type)
	if zlvl < d.l.GetLevel() {
		return
	}

	ev := d.l.WithLevel(zlvl)
	// A string keeps RFC3339Nano precision without touching zerolog globals.
	ev.Str("ts", r.At.UTC().Format(time.RFC3339Nano)).
		Str("id", r.ID).
		Str("type", r.Type.String()).
		Str("context", r.Context)
	if r.Source != "" {
		ev.Str("source", r.Source)
	}
	for i := range r.Fields {
		appendEventField(ev, &r.Fields[i])
	}
	ev.Msg(r.Description)
}

// mapLevel converts a LogType to a zerolog.Level. Critical is written at
// error level; zerolog's Fatal would exit the process.
func mapLevel(t xtrace.LogType) zerolog.Level {
	switch {
	case t < xtrace.LogTypeInfo:
		return zerolog.DebugLevel
	case t < xtrace.LogTypeWarning:
		return zerolog.InfoLevel
	case t < xtrace.LogTypeError:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func appendEventField(e *zerolog.Event, f *xtrace.Field) {
	switch f.Kind {
	case xtrace.KindString:
		e.Str(f.K, f.Str)
	case xtrace.KindInt64:
		e.Int64(f.K, f.Int64)
	case xtrace.KindUint64:
		e.Uint64(f.K, f.Uint64)
	case xtrace.KindFloat64:
		e.Float64(f.K, f.Float64)
	case xtrace.KindBool:
		e.Bool(f.K, f.Bool)
	case xtrace.KindDuration:
		e.Dur(f.K, f.Dur)
	case xtrace.KindTime:
		e.Time(f.K, f.Time)
	case xtrace.KindError:
		if f.Err != nil {
			if f.K == "" || f.K == "error" {
				e.Err(f.Err)
			} else {
				e.AnErr(f.K, f.Err)
			}
		}
	case xtrace.KindBytes:
		e.Bytes(f.K, f.Bytes)
	case xtrace.KindAny:
		e.Interface(f.K, f.Any)
	default:
		e.Interface(f.K, nil)
	}
}

// appendCtxField binds a field to a zerolog.Context (used by With).
func appendCtxField(ctx zerolog.Context, f *xtrace.Field) zerolog.Context {
	switch f.Kind {
	case xtrace.KindString:
		return ctx.Str(f.K, f.Str)
	case xtrace.KindInt64:
		return ctx.Int64(f.K, f.Int64)
	case xtrace.KindUint64:
		return ctx.Uint64(f.K, f.Uint64)
	case xtrace.KindFloat64:
		return ctx.Float64(f.K, f.Float64)
	case xtrace.KindBool:
		return ctx.Bool(f.K, f.Bool)
	case xtrace.KindDuration:
		return ctx.Dur(f.K, f.Dur)
	case xtrace.KindTime:
		return ctx.Time(f.K, f.Time)
	case xtrace.KindError:
		if f.Err == nil {
			return ctx
		}
		if f.K == "" || f.K == "error" {
			return ctx.Err(f.Err)
		}
		return ctx.Str(f.K, f.Err.Error())
	case xtrace.KindBytes:
		return ctx.Bytes(f.K, f.Bytes)
	case xtrace.KindAny:
		return ctx.Interface(f.K, f.Any)
	default:
		return ctx.Interface(f.K, nil)
	}
}
