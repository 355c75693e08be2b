package trace

import (
	"context"

	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/diag"
)

// Facade is the output device a Destination writes through.
//
// WriteLine accepts an empty text and writes an empty line. WriteLineContext
// rejects an empty text with xtrace.ErrNilArgument, then fails with ctx.Err()
// without writing when ctx is already done.
type Facade interface {
	WriteLine(text string) error
	WriteLineContext(ctx context.Context, text string) error
}

type traceFacade struct {
	listeners *diag.Collection
}

// NewFacade returns a Facade writing to listeners; nil means diag.Default().
func NewFacade(listeners *diag.Collection) Facade {
	return &traceFacade{listeners: listeners}
}

// DefaultFacade returns a Facade writing to the process-wide trace channel.
func DefaultFacade() Facade { return &traceFacade{} }

func (f *traceFacade) collection() *diag.Collection {
	if f.listeners == nil {
		return diag.Default()
	}
	return f.listeners
}

func (f *traceFacade) WriteLine(text string) error {
	return f.collection().WriteLine(text)
}

func (f *traceFacade) WriteLineContext(ctx context.Context, text string) error {
	if text == "" {
		return xtrace.NilArgument("text")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.collection().WriteLine(text)
}
