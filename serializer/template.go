package serializer

import (
	"fmt"
	"strings"
	"time"

	"github.com/trickstertwo/xtrace"
)

// DefaultTemplate is used when no template is given.
const DefaultTemplate = "[$LogDate]-[$LogType]-[$Description]-[From: $Context]-[Src: $Source]-[Id: $LogId]"

// DefaultDateLayout formats $LogDate when the template does not say otherwise.
const DefaultDateLayout = time.DateTime

type placeholder uint8

const (
	phLiteral placeholder = iota
	phLogID
	phContext
	phSource
	phLogType
	phDescription
	phLogDate
	phLogData
	phField // extended only, requires an argument
)

var placeholderNames = map[string]placeholder{
	"LogId":       phLogID,
	"Context":     phContext,
	"Source":      phSource,
	"LogType":     phLogType,
	"Description": phDescription,
	"LogDate":     phLogDate,
	"LogData":     phLogData,
	"Field":       phField,
}

type segment struct {
	ph  placeholder
	lit string // literal text, or the argument of a parameterised placeholder
}

// parseTemplate splits tpl into literals and placeholders. Unknown $Names are
// kept verbatim. With args, "$Name(arg)" passes arg to the placeholder.
func parseTemplate(tpl string, args bool) []segment {
	var segs []segment
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{lit: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(tpl); {
		if tpl[i] != '$' {
			lit.WriteByte(tpl[i])
			i++
			continue
		}
		j := i + 1
		for j < len(tpl) && isLetter(tpl[j]) {
			j++
		}
		ph, ok := placeholderNames[tpl[i+1:j]]
		if !ok || (ph == phField && !args) {
			lit.WriteString(tpl[i:j])
			i = j
			continue
		}
		seg := segment{ph: ph}
		if args && j < len(tpl) && tpl[j] == '(' {
			if end := strings.IndexByte(tpl[j:], ')'); end > 0 {
				seg.lit = tpl[j+1 : j+end]
				j += end + 1
			}
		}
		if ph == phField && seg.lit == "" {
			lit.WriteString(tpl[i:j])
			i = j
			continue
		}
		flush()
		segs = append(segs, seg)
		i = j
	}
	flush()
	return segs
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func render(segs []segment, r xtrace.Record, dateLayout string) string {
	buf := getBuf()
	defer putBuf(buf)
	for _, s := range segs {
		switch s.ph {
		case phLiteral:
			buf.writeString(s.lit)
		case phLogID:
			buf.writeString(r.ID)
		case phContext:
			buf.writeString(r.Context)
		case phSource:
			buf.writeString(r.Source)
		case phLogType:
			buf.writeString(r.Type.String())
		case phDescription:
			buf.writeString(r.Description)
		case phLogDate:
			layout := dateLayout
			if s.lit != "" {
				layout = s.lit
			}
			buf.b = r.At.AppendFormat(buf.b, layout)
		case phLogData:
			appendTextFields(buf, r.Fields)
		case phField:
			if f, ok := r.Field(s.lit); ok {
				appendTextValue(buf, &f)
			}
		}
	}
	return string(buf.b)
}

// TemplateOption customises a Template or an Extended serializer.
type TemplateOption func(*templateOptions)

type templateOptions struct {
	dateLayout string
}

// WithDateLayout sets the time layout used by $LogDate.
func WithDateLayout(layout string) TemplateOption {
	return func(o *templateOptions) {
		if layout != "" {
			o.dateLayout = layout
		}
	}
}

func applyTemplateOptions(opts []TemplateOption) templateOptions {
	o := templateOptions{dateLayout: DefaultDateLayout}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Template renders records through a text template with $Placeholders:
// $LogId, $Context, $Source, $LogType, $Description, $LogDate and $LogData.
type Template struct {
	template   string
	dateLayout string
	segs       []segment
}

var _ xtrace.Serializer = (*Template)(nil)

// NewTemplate compiles tpl. An empty template is rejected.
func NewTemplate(tpl string, opts ...TemplateOption) (*Template, error) {
	if tpl == "" {
		return nil, xtrace.NilArgument("template")
	}
	o := applyTemplateOptions(opts)
	return &Template{
		template:   tpl,
		dateLayout: o.dateLayout,
		segs:       parseTemplate(tpl, false),
	}, nil
}

// NewDefaultTemplate returns a Template using DefaultTemplate.
func NewDefaultTemplate() *Template {
	t, _ := NewTemplate(DefaultTemplate)
	return t
}

// Template returns the source template.
func (t *Template) Template() string { return t.template }

func (t *Template) Serialize(r xtrace.Record) (string, error) {
	return render(t.segs, r, t.dateLayout), nil
}

func (t *Template) String() string {
	return fmt.Sprintf("serializer.Template{template: %q}", t.template)
}

// Extended is a Template whose placeholders take an argument in parentheses:
// $LogDate(layout) formats the date with a Go time layout and $Field(key)
// renders the value of a single attached field.
type Extended struct {
	template   string
	dateLayout string
	segs       []segment
}

var _ xtrace.Serializer = (*Extended)(nil)

// NewExtended compiles tpl. An empty template is rejected.
func NewExtended(tpl string, opts ...TemplateOption) (*Extended, error) {
	if tpl == "" {
		return nil, xtrace.NilArgument("template")
	}
	o := applyTemplateOptions(opts)
	return &Extended{
		template:   tpl,
		dateLayout: o.dateLayout,
		segs:       parseTemplate(tpl, true),
	}, nil
}

func (e *Extended) Template() string { return e.template }

func (e *Extended) Serialize(r xtrace.Record) (string, error) {
	return render(e.segs, r, e.dateLayout), nil
}

func (e *Extended) String() string {
	return fmt.Sprintf("serializer.Extended{template: %q}", e.template)
}
