package serializer

import (
	"bytes"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xtrace"
)

// JSON renders a record as one line of JSON using zerolog's encoder:
//
//	{"id":"…","date":"…","type":"Info","context":"…","source":"…","description":"…","data":{…}}
//
// Empty source and data are omitted.
type JSON struct{}

var _ xtrace.Serializer = (*JSON)(nil)

func NewJSON() *JSON { return &JSON{} }

func (*JSON) Serialize(r xtrace.Record) (string, error) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf)
	ev := zl.Log().
		Str("id", r.ID).
		Str("date", r.At.UTC().Format(time.RFC3339Nano)).
		Str("type", r.Type.String()).
		Str("context", r.Context)
	if r.Source != "" {
		ev.Str("source", r.Source)
	}
	ev.Str("description", r.Description)
	if len(r.Fields) > 0 {
		data := zerolog.Dict()
		for i := range r.Fields {
			appendEventField(data, &r.Fields[i])
		}
		ev.Dict("data", data)
	}
	ev.Send()
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func (*JSON) String() string { return "serializer.JSON" }

// appendEventField writes an xtrace.Field to a zerolog.Event.
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
		e.Str(f.K, f.Dur.String())
	case xtrace.KindTime:
		e.Str(f.K, f.Time.UTC().Format(time.RFC3339Nano))
	case xtrace.KindError:
		if f.Err != nil {
			e.Str(f.K, f.Err.Error())
		}
	case xtrace.KindBytes:
		e.Bytes(f.K, f.Bytes)
	case xtrace.KindAny:
		e.Interface(f.K, f.Any)
	default:
		// Keep a placeholder to preserve shape
		e.Interface(f.K, nil)
	}
}
