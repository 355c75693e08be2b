package diag

import (
	"context"
	"runtime/trace"
)

// DefaultCategory is the category of lines recorded by the default RuntimeListener.
const DefaultCategory = "xtrace"

// RuntimeListener records lines as user log events of the Go execution
// tracer. Lines are dropped when no trace is being collected.
type RuntimeListener struct {
	category string
}

func NewRuntimeListener(category string) *RuntimeListener {
	if category == "" {
		category = DefaultCategory
	}
	return &RuntimeListener{category: category}
}

func (l *RuntimeListener) Category() string { return l.category }

func (l *RuntimeListener) WriteLine(text string) error {
	if !trace.IsEnabled() {
		return nil
	}
	trace.Log(context.Background(), l.category, text)
	return nil
}
