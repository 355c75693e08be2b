package trace

import (
	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/serializer"
)

// SerializerKind tags the variant held by a SerializerSpec.
type SerializerKind uint8

const (
	KindDefault SerializerKind = iota
	KindSerializer
	KindTemplate
	KindFunc
)

// SerializerSpec says how a Destination obtains its serializer. Build one
// with DefaultSerializer, UseSerializer, UseTemplate or UseFunc.
type SerializerSpec struct {
	Kind       SerializerKind
	Serializer xtrace.Serializer
	Template   string
	Func       serializer.GeneratorFunc
}

// DefaultSerializer selects a Template with serializer.DefaultTemplate.
func DefaultSerializer() SerializerSpec { return SerializerSpec{Kind: KindDefault} }

// UseSerializer selects s as is.
func UseSerializer(s xtrace.Serializer) SerializerSpec {
	return SerializerSpec{Kind: KindSerializer, Serializer: s}
}

// UseTemplate selects a Template compiled from tpl.
func UseTemplate(tpl string) SerializerSpec {
	return SerializerSpec{Kind: KindTemplate, Template: tpl}
}

// UseFunc selects a Func wrapping fn.
func UseFunc(fn serializer.GeneratorFunc) SerializerSpec {
	return SerializerSpec{Kind: KindFunc, Func: fn}
}

// ResolveSerializer constructs the serializer spec describes.
func ResolveSerializer(spec SerializerSpec) (xtrace.Serializer, error) {
	switch spec.Kind {
	case KindDefault:
		return serializer.NewDefaultTemplate(), nil
	case KindSerializer:
		if spec.Serializer == nil {
			return nil, xtrace.NilArgument("serializer")
		}
		return spec.Serializer, nil
	case KindTemplate:
		t, err := serializer.NewTemplate(spec.Template)
		if err != nil {
			return nil, err
		}
		return t, nil
	case KindFunc:
		f, err := serializer.NewFunc(spec.Func)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, xtrace.InvalidOperation("unknown serializer kind %d", spec.Kind)
	}
}
