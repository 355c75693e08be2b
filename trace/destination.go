package trace

import (
	"context"
	"fmt"
	"io"

	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/serializer"
)

// Destination writes each record, rendered by its serializer, as one line
// through its Facade. Its serializer is fixed at construction; the facade
// can be swapped with ResetFacade.
type Destination struct {
	serializer xtrace.Serializer
	facade     Facade
	closers    []io.Closer
}

var _ xtrace.Destination = (*Destination)(nil)

// New returns a Destination using s and the default facade.
func New(s xtrace.Serializer) (*Destination, error) {
	return NewFromSpec(UseSerializer(s))
}

// NewDefault returns a Destination using a Template with serializer.DefaultTemplate.
func NewDefault() *Destination {
	d, _ := NewFromSpec(DefaultSerializer())
	return d
}

// NewWithTemplate returns a Destination using a Template compiled from tpl.
func NewWithTemplate(tpl string) (*Destination, error) {
	return NewFromSpec(UseTemplate(tpl))
}

// NewWithFunc returns a Destination using a Func serializer wrapping fn.
func NewWithFunc(fn serializer.GeneratorFunc) (*Destination, error) {
	return NewFromSpec(UseFunc(fn))
}

// NewFromSpec returns a Destination whose serializer is resolved from spec.
func NewFromSpec(spec SerializerSpec) (*Destination, error) {
	s, err := ResolveSerializer(spec)
	if err != nil {
		return nil, err
	}
	return &Destination{serializer: s, facade: DefaultFacade()}, nil
}

func (d *Destination) Serializer() xtrace.Serializer { return d.serializer }

func (d *Destination) Facade() Facade { return d.facade }

// ResetFacade redirects output to f. A nil facade is ignored.
func (d *Destination) ResetFacade(f Facade) {
	if f == nil {
		return
	}
	d.facade = f
}

// Send serializes and writes records in order. The first failure aborts the
// rest of the batch.
func (d *Destination) Send(records []xtrace.Record) error {
	for i := range records {
		text, err := d.serializer.Serialize(records[i])
		if err != nil {
			return err
		}
		if err := d.facade.WriteLine(text); err != nil {
			return err
		}
	}
	return nil
}

// SendContext is Send through Facade.WriteLineContext. It fails with
// ctx.Err() before serializing anything when ctx is already done; later
// cancellation is detected by the facade on the next write. Writes are
// strictly sequential, so output order matches input order. A serializer
// returning empty text fails the batch.
func (d *Destination) SendContext(ctx context.Context, records []xtrace.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for i := range records {
		text, err := d.serializer.Serialize(records[i])
		if err != nil {
			return err
		}
		if err := d.facade.WriteLineContext(ctx, text); err != nil {
			return err
		}
	}
	return nil
}

func (d *Destination) String() string {
	return fmt.Sprintf("trace.Destination{serializer: %s}", d.serializer)
}
