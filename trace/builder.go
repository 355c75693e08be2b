package trace

import (
	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/serializer"
)

// Builder configures a Destination and adds it to a log group.
// The serializer can be chosen at most once. Misuse is recorded as the
// builder's error and reported to the parent by Add, so BuildLogger fails
// before any record is logged.
type Builder struct {
	parent     xtrace.DestinationsBuilder
	serializer xtrace.Serializer
	err        error
}

// NewBuilder starts configuring a Destination for parent.
func NewBuilder(parent xtrace.DestinationsBuilder) *Builder {
	return &Builder{parent: parent}
}

// Trace starts configuring a Destination for parent.
func Trace(parent xtrace.DestinationsBuilder) *Builder { return NewBuilder(parent) }

func (b *Builder) Parent() xtrace.DestinationsBuilder { return b.parent }

// Serializer returns the chosen serializer; after Add it is the one the
// destination was built with.
func (b *Builder) Serializer() xtrace.Serializer { return b.serializer }

// Err returns the first configuration error.
func (b *Builder) Err() error { return b.err }

// WithSerializer chooses s as the serializer.
func (b *Builder) WithSerializer(s xtrace.Serializer) *Builder {
	if b.err != nil {
		return b
	}
	if b.serializer != nil {
		b.err = xtrace.InvalidOperation("trace: serializer has already been set")
		return b
	}
	if s == nil {
		b.err = xtrace.NilArgument("serializer")
		return b
	}
	b.serializer = s
	return b
}

// WithTemplate chooses a serializer.Template compiled from tpl.
func (b *Builder) WithTemplate(tpl string) *Builder {
	t, err := serializer.NewTemplate(tpl)
	if err != nil {
		return b.fail(err)
	}
	return b.WithSerializer(t)
}

// WithExtendedTemplate chooses a serializer.Extended compiled from tpl.
func (b *Builder) WithExtendedTemplate(tpl string) *Builder {
	e, err := serializer.NewExtended(tpl)
	if err != nil {
		return b.fail(err)
	}
	return b.WithSerializer(e)
}

// WithJSON chooses a serializer.JSON.
func (b *Builder) WithJSON() *Builder {
	return b.WithSerializer(serializer.NewJSON())
}

// WithFunc chooses a serializer.Func wrapping fn.
func (b *Builder) WithFunc(fn serializer.GeneratorFunc) *Builder {
	f, err := serializer.NewFunc(fn)
	if err != nil {
		return b.fail(err)
	}
	return b.WithSerializer(f)
}

// Add builds the Destination, defaulting to a Template with
// serializer.DefaultTemplate, registers it with the parent and returns the
// parent. With a recorded error nothing is registered and the error is
// handed to the parent instead.
func (b *Builder) Add() xtrace.DestinationsBuilder {
	if b.err != nil {
		return b.parent.Fail(b.err)
	}
	if b.serializer == nil {
		b.serializer = serializer.NewDefaultTemplate()
	}
	d, err := New(b.serializer)
	if err != nil {
		return b.parent.Fail(err)
	}
	return b.parent.CustomDestination(d)
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}
