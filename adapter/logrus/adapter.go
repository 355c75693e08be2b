package logrusadapter

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/trickstertwo/xtrace"
)

// Destination forwards records to a logrus logger. The record timestamp
// becomes the entry time and its fields become logrus.Fields.
type Destination struct {
	e *logrus.Entry
}

var _ xtrace.Destination = (*Destination)(nil)

// New creates a destination for l; nil means logrus.StandardLogger().
func New(l *logrus.Logger) *Destination {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Destination{e: logrus.NewEntry(l)}
}

// With returns a child destination with fs bound to every entry.
func (d *Destination) With(fs ...xtrace.Field) *Destination {
	if len(fs) == 0 {
		child := *d
		return &child
	}
	return &Destination{e: d.e.WithFields(toFields(fs))}
}

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

func (d *Destination) String() string { return "logrusadapter.Destination" }

func (d *Destination) write(r *xtrace.Record) {
	lvl := toLogrusLevel(r.Type)
	if !d.e.Logger.IsLevelEnabled(lvl) {
		return
	}
	fields := toFields(r.Fields)
	d.setHeader(fields, "id", r.ID)
	d.setHeader(fields, "type", r.Type.String())
	d.setHeader(fields, "context", r.Context)
	if r.Source != "" {
		d.setHeader(fields, "source", r.Source)
	}
	d.e.WithFields(fields).WithTime(r.At).Log(lvl, r.Description)
}

// setHeader stores a record header under k. A user field (record or bound)
// already named k moves to "fields."+k, the way logrus itself resolves
// clashes with its time, msg and level keys.
func (d *Destination) setHeader(fields logrus.Fields, k string, v any) {
	if uv, ok := fields[k]; ok {
		fields["fields."+k] = uv
	} else if uv, ok := d.e.Data[k]; ok {
		fields["fields."+k] = uv
	}
	fields[k] = v
}

// toLogrusLevel maps a LogType onto logrus levels. Critical is written at
// error level; logrus Fatal and Panic would exit or unwind.
func toLogrusLevel(t xtrace.LogType) logrus.Level {
	switch {
	case t < xtrace.LogTypeInfo:
		return logrus.DebugLevel
	case t < xtrace.LogTypeWarning:
		return logrus.InfoLevel
	case t < xtrace.LogTypeError:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

func toFields(fs []xtrace.Field) logrus.Fields {
	out := make(logrus.Fields, len(fs)+4)
	for i := range fs {
		f := &fs[i]
		if f.Kind == xtrace.KindError {
			if f.Err == nil {
				continue
			}
			k := f.K
			if k == "" {
				k = logrus.ErrorKey
			}
			out[k] = f.Err
			continue
		}
		out[f.K] = f.Value()
	}
	return out
}
