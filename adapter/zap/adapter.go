package zapadapter

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xtrace"
)

// Destination forwards records to go.uber.org/zap.
//
// Optimizations:
//   - Pre-binds fields in With() by creating a child zap.Logger with those
//     fields attached, eliminating per-record bound-field loops.
//   - Uses Logger.Check(level, msg) to avoid building fields when disabled.
//   - Guarantees RFC3339Nano "ts" precision by writing it as a string field.
type Destination struct {
	l     *zap.Logger
	tsKey string // timestamp field key; default "ts"
}

var _ xtrace.Destination = (*Destination)(nil)

// New creates a destination for the provided zap logger.
func New(l *zap.Logger) *Destination {
	return NewWithTimestampKey(l, "ts")
}

// NewWithTimestampKey lets callers override the timestamp field key (default "ts").
func NewWithTimestampKey(l *zap.Logger, tsKey string) *Destination {
	if l == nil {
		l = zap.NewNop()
	}
	if tsKey == "" {
		tsKey = "ts"
	}
	return &Destination{l: l, tsKey: tsKey}
}

// With returns a child destination with fs bound onto a child zap.Logger.
func (d *Destination) With(fs ...xtrace.Field) *Destination {
	child := *d
	if len(fs) > 0 {
		child.l = d.l.With(convertFields(fs)...)
	}
	return &child
}

// Send writes every record. Encoding failures are reported by zap to its
// ErrorOutput, so Send itself never fails.
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

// Sync flushes the underlying zap core.
func (d *Destination) Sync() error { return d.l.Sync() }

func (d *Destination) String() string { return "zapadapter.Destination" }

func (d *Destination) write(r *xtrace.Record) {
	ce := d.l.Check(toZapLevel(r.Type), r.Description)
	if ce == nil {
		return
	}

	zfs := make([]zap.Field, 0, 5+len(r.Fields))
	zfs = append(zfs,
		zap.String(d.tsKey, r.At.UTC().Format(time.RFC3339Nano)),
		zap.String("id", r.ID),
		zap.String("type", r.Type.String()),
		zap.String("context", r.Context),
	)
	if r.Source != "" {
		zfs = append(zfs, zap.String("source", r.Source))
	}
	for i := range r.Fields {
		zfs = append(zfs, toZapField(&r.Fields[i]))
	}
	ce.Write(zfs...)
}

// toZapLevel maps a LogType onto zap's levels. Critical maps to Error to
// avoid Fatal/DPanic exits in library code.
func toZapLevel(t xtrace.LogType) zapcore.Level {
	switch {
	case t < xtrace.LogTypeInfo:
		return zapcore.DebugLevel
	case t < xtrace.LogTypeWarning:
		return zapcore.InfoLevel
	case t < xtrace.LogTypeError:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

func convertFields(fs []xtrace.Field) []zap.Field {
	out := make([]zap.Field, len(fs))
	for i := range fs {
		out[i] = toZapField(&fs[i])
	}
	return out
}

func toZapField(f *xtrace.Field) zap.Field {
	switch f.Kind {
	case xtrace.KindString:
		return zap.String(f.K, f.Str)
	case xtrace.KindInt64:
		return zap.Int64(f.K, f.Int64)
	case xtrace.KindUint64:
		return zap.Uint64(f.K, f.Uint64)
	case xtrace.KindFloat64:
		return zap.Float64(f.K, f.Float64)
	case xtrace.KindBool:
		return zap.Bool(f.K, f.Bool)
	case xtrace.KindDuration:
		return zap.Duration(f.K, f.Dur)
	case xtrace.KindTime:
		return zap.Time(f.K, f.Time)
	case xtrace.KindError:
		if f.Err == nil {
			return zap.Skip()
		}
		if f.K == "" || f.K == "error" {
			return zap.Error(f.Err)
		}
		return zap.NamedError(f.K, f.Err)
	case xtrace.KindBytes:
		return zap.ByteString(f.K, f.Bytes)
	case xtrace.KindAny:
		return zap.Any(f.K, f.Any)
	default:
		return zap.Skip()
	}
}
