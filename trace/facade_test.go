package trace

import (
	"context"
	"errors"
	"testing"

	"github.com/trickstertwo/xtrace"
	"github.com/trickstertwo/xtrace/diag"
)

func newListenedFacade() (Facade, *recordingListener) {
	l := &recordingListener{}
	return NewFacade(diag.NewCollection(l)), l
}

func TestFacade_WriteLineInvokesListenerOnce(t *testing.T) {
	t.Parallel()

	f, l := newListenedFacade()
	if err := f.WriteLine("some text"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	if got := l.Lines(); len(got) != 1 || got[0] != "some text" {
		t.Fatalf("listener lines: %q", got)
	}
}

func TestFacade_WriteLineToleratesEmptyText(t *testing.T) {
	t.Parallel()

	f, l := newListenedFacade()
	if err := f.WriteLine(""); err != nil {
		t.Fatalf("WriteLine(\"\"): %v", err)
	}
	if got := l.Lines(); len(got) != 1 || got[0] != "" {
		t.Fatalf("listener lines: %q", got)
	}
}

func TestFacade_WriteLineContextInvokesListenerOnce(t *testing.T) {
	t.Parallel()

	f, l := newListenedFacade()
	if err := f.WriteLineContext(context.Background(), "some text"); err != nil {
		t.Fatalf("WriteLineContext: %v", err)
	}
	if got := l.Lines(); len(got) != 1 || got[0] != "some text" {
		t.Fatalf("listener lines: %q", got)
	}
}

func TestFacade_WriteLineContextCancelledNeverWrites(t *testing.T) {
	t.Parallel()

	f, l := newListenedFacade()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.WriteLineContext(ctx, "some text")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if errors.Is(err, xtrace.ErrNilArgument) {
		t.Fatal("cancellation conflated with argument error")
	}
	if got := l.Lines(); len(got) != 0 {
		t.Fatalf("listener was called: %q", got)
	}
}

func TestFacade_WriteLineContextRejectsEmptyText(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	for name, ctx := range map[string]context.Context{"live": context.Background(), "cancelled": cancelled} {
		t.Run(name, func(t *testing.T) {
			f, l := newListenedFacade()
			if err := f.WriteLineContext(ctx, ""); !errors.Is(err, xtrace.ErrNilArgument) {
				t.Fatalf("expected ErrNilArgument, got %v", err)
			}
			if got := l.Lines(); len(got) != 0 {
				t.Fatalf("listener was called: %q", got)
			}
		})
	}
}

// Mutates the process-wide chain; not parallel.
func TestDefaultFacade_WritesToProcessChain(t *testing.T) {
	l := &recordingListener{}
	diag.Default().Add(l)
	t.Cleanup(func() { diag.Default().Remove(l) })

	if err := DefaultFacade().WriteLine("to the process"); err != nil {
		t.Fatalf("WriteLine: %v", err)
	}
	if got := l.Lines(); len(got) != 1 || got[0] != "to the process" {
		t.Fatalf("listener lines: %q", got)
	}
}
