package serializer

import "github.com/trickstertwo/xtrace"

// GeneratorFunc produces the text of a record.
type GeneratorFunc func(r xtrace.Record) string

// Func adapts a GeneratorFunc to xtrace.Serializer.
type Func struct {
	fn GeneratorFunc
}

var _ xtrace.Serializer = (*Func)(nil)

func NewFunc(fn GeneratorFunc) (*Func, error) {
	if fn == nil {
		return nil, xtrace.NilArgument("generator function")
	}
	return &Func{fn: fn}, nil
}

func (f *Func) GeneratorFunc() GeneratorFunc { return f.fn }

func (f *Func) Serialize(r xtrace.Record) (string, error) { return f.fn(r), nil }

func (f *Func) String() string { return "serializer.Func" }
