package slogadapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/trickstertwo/xtrace"
)

// Destination forwards records to a *slog.Logger. It builds slog.Attrs
// directly and uses LogAttrs. Record types keep their numeric severity, so
// LogTypeWarning is slog.LevelWarn and LogTypeEvent is INFO+2.
type Destination struct {
	l     *slog.Logger
	bound []xtrace.Field
	tsKey string
}

var _ xtrace.Destination = (*Destination)(nil)

func New(l *slog.Logger) *Destination {
	return NewWithTimestampKey(l, "ts")
}

// NewWithTimestampKey lets callers override the timestamp attribute key (default "ts").
func NewWithTimestampKey(l *slog.Logger, tsKey string) *Destination {
	if l == nil {
		l = slog.Default()
	}
	if tsKey == "" {
		tsKey = "ts"
	}
	return &Destination{l: l, tsKey: tsKey}
}

func (d *Destination) With(fs ...xtrace.Field) *Destination {
	child := *d
	child.bound = append(append([]xtrace.Field(nil), d.bound...), fs...)
	return &child
}

// Send writes every record.
func (d *Destination) Send(records []xtrace.Record) error {
	return d.SendContext(context.Background(), records)
}

// SendContext writes records, passing ctx to the handler, and stops with
// ctx.Err() once ctx is done.
func (d *Destination) SendContext(ctx context.Context, records []xtrace.Record) error {
	for i := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.write(ctx, &records[i])
	}
	return nil
}

func (d *Destination) String() string { return "slogadapter.Destination" }

func (d *Destination) write(ctx context.Context, r *xtrace.Record) {
	level := r.Type.SlogLevel()
	if !d.l.Enabled(ctx, level) {
		return
	}
	attrs := make([]slog.Attr, 0, 5+len(d.bound)+len(r.Fields))
	attrs = append(attrs,
		slog.String(d.tsKey, r.At.UTC().Format(time.RFC3339Nano)),
		slog.String("id", r.ID),
		slog.String("type", r.Type.String()),
		slog.String("context", r.Context),
	)
	if r.Source != "" {
		attrs = append(attrs, slog.String("source", r.Source))
	}
	for i := range d.bound {
		attrs = append(attrs, toAttr(d.bound[i]))
	}
	for i := range r.Fields {
		attrs = append(attrs, toAttr(r.Fields[i]))
	}
	d.l.LogAttrs(ctx, level, r.Description, attrs...)
}

func toAttr(f xtrace.Field) slog.Attr {
	switch f.Kind {
	case xtrace.KindString:
		return slog.String(f.K, f.Str)
	case xtrace.KindInt64:
		return slog.Int64(f.K, f.Int64)
	case xtrace.KindUint64:
		return slog.Uint64(f.K, f.Uint64)
	case xtrace.KindFloat64:
		return slog.Float64(f.K, f.Float64)
	case xtrace.KindBool:
		return slog.Bool(f.K, f.Bool)
	case xtrace.KindDuration:
		return slog.Duration(f.K, f.Dur)
	case xtrace.KindTime:
		return slog.Time(f.K, f.Time)
	case xtrace.KindError:
		if f.Err == nil {
			return slog.Any(f.K, nil)
		}
		return slog.String(f.K, f.Err.Error())
	case xtrace.KindBytes:
		return slog.Any(f.K, f.Bytes)
	case xtrace.KindAny:
		return slog.Any(f.K, f.Any)
	default:
		return slog.Any(f.K, nil)
	}
}
