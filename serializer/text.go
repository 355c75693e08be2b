package serializer

import (
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/trickstertwo/xtrace"
)

const digits = "0123456789abcdef"

var (
	textTrue      = []byte("true")
	textFalse     = []byte("false")
	textNull      = []byte("null")
	textLenPrefix = []byte("len:")
)

// appendTextFields renders fields as space separated key=value pairs.
func appendTextFields(buf *buffer, fields []xtrace.Field) {
	for i := range fields {
		if i > 0 {
			buf.writeByte(' ')
		}
		buf.writeString(fields[i].K)
		buf.writeByte('=')
		appendTextValue(buf, &fields[i])
	}
}

func appendTextValue(buf *buffer, f *xtrace.Field) {
	switch f.Kind {
	case xtrace.KindString:
		appendTextString(buf, f.Str)
	case xtrace.KindInt64:
		buf.b = strconv.AppendInt(buf.b, f.Int64, 10)
	case xtrace.KindUint64:
		buf.b = strconv.AppendUint(buf.b, f.Uint64, 10)
	case xtrace.KindFloat64:
		appendFloat64(buf, f.Float64)
	case xtrace.KindBool:
		if f.Bool {
			buf.writeBytes(textTrue)
		} else {
			buf.writeBytes(textFalse)
		}
	case xtrace.KindDuration:
		buf.writeString(f.Dur.String())
	case xtrace.KindTime:
		buf.b = f.Time.AppendFormat(buf.b, time.RFC3339Nano)
	case xtrace.KindError:
		if f.Err != nil {
			appendQuoted(buf, f.Err.Error())
		} else {
			buf.writeBytes(textNull)
		}
	case xtrace.KindBytes:
		buf.writeBytes(textLenPrefix)
		buf.b = strconv.AppendInt(buf.b, int64(len(f.Bytes)), 10)
	case xtrace.KindAny:
		appendTextAny(buf, f.Any)
	default:
		buf.writeBytes(textNull)
	}
}

func appendTextAny(buf *buffer, v any) {
	if v == nil {
		buf.writeBytes(textNull)
		return
	}
	switch vv := v.(type) {
	case string:
		appendTextString(buf, vv)
	case []byte:
		buf.writeBytes(textLenPrefix)
		buf.b = strconv.AppendInt(buf.b, int64(len(vv)), 10)
	case bool:
		if vv {
			buf.writeBytes(textTrue)
		} else {
			buf.writeBytes(textFalse)
		}
	case int:
		buf.b = strconv.AppendInt(buf.b, int64(vv), 10)
	case int64:
		buf.b = strconv.AppendInt(buf.b, vv, 10)
	case uint64:
		buf.b = strconv.AppendUint(buf.b, vv, 10)
	case float64:
		appendFloat64(buf, vv)
	case time.Time:
		buf.b = vv.AppendFormat(buf.b, time.RFC3339Nano)
	case time.Duration:
		buf.writeString(vv.String())
	case error:
		appendQuoted(buf, vv.Error())
	case interface{ String() string }:
		appendTextString(buf, vv.String())
	default:
		// Minimal overhead "unknown" marker
		buf.writeString("unknown")
	}
}

func appendFloat64(buf *buffer, f float64) {
	switch {
	case math.IsNaN(f):
		buf.writeString("NaN")
	case math.IsInf(f, 1):
		buf.writeString("+Inf")
	case math.IsInf(f, -1):
		buf.writeString("-Inf")
	default:
		buf.b = strconv.AppendFloat(buf.b, f, 'g', -1, 64)
	}
}

// appendTextString quotes s only when it contains spaces, quotes or control bytes.
func appendTextString(buf *buffer, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c <= 0x1F || c == ' ' || c == '"' {
			appendQuoted(buf, s)
			return
		}
	}
	buf.writeString(s)
}

func appendQuoted(buf *buffer, s string) {
	buf.writeByte('"')
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c != '\\' && c != '"' && c < 0x80 {
			i++
			continue
		}
		if c < 0x80 {
			if start < i {
				buf.writeString(s[start:i])
			}
			switch c {
			case '\\', '"':
				buf.writeByte('\\')
				buf.writeByte(c)
			case '\n':
				buf.writeString(`\n`)
			case '\r':
				buf.writeString(`\r`)
			case '\t':
				buf.writeString(`\t`)
			default:
				buf.writeString(`\u00`)
				buf.writeByte(digits[c>>4])
				buf.writeByte(digits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			if start < i {
				buf.writeString(s[start:i])
			}
			buf.writeString(`\ufffd`)
			i++
			start = i
			continue
		}
		i += size
	}
	if start < len(s) {
		buf.writeString(s[start:])
	}
	buf.writeByte('"')
}
