package xtrace

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

var (
	// ErrNilArgument reports a required argument that was nil or empty.
	ErrNilArgument = errors.New("xtrace: required argument is missing")

	// ErrInvalidOperation reports a call that is not valid in the current
	// state, such as setting a builder's serializer twice.
	ErrInvalidOperation = errors.New("xtrace: invalid operation")

	// ErrNoDestinations is returned by Build when no group has a destination.
	ErrNoDestinations = errors.New("xtrace: no destinations configured")
)

// NilArgument wraps ErrNilArgument with the name of the offending argument.
func NilArgument(name string) error {
	return errors.Wrap(ErrNilArgument, name)
}

// InvalidOperation wraps ErrInvalidOperation with a description of the misuse.
func InvalidOperation(format string, args ...any) error {
	return errors.Wrapf(ErrInvalidOperation, format, args...)
}

// ErrorHandler receives failures the Logger cannot return to a caller.
type ErrorHandler func(error)

func defaultErrorHandler(err error) { fmt.Fprintf(os.Stderr, "xtrace error: %v\n", err) }
