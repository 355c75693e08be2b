package trace

import (
	"context"
	"fmt"
	"sync"

	"github.com/trickstertwo/xtrace"
)

// fakeFacade records the calls made to each Facade method.
type fakeFacade struct {
	mu        sync.Mutex
	lines     []string
	ctxLines  []string
	ctxs      []context.Context
	err       error
	failAfter int // fail once this many writes succeeded; 0 disables
}

func (f *fakeFacade) WriteLine(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil && len(f.lines) >= f.failAfter {
		return f.err
	}
	f.lines = append(f.lines, text)
	return nil
}

func (f *fakeFacade) WriteLineContext(ctx context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil && len(f.ctxLines) >= f.failAfter {
		return f.err
	}
	f.ctxLines = append(f.ctxLines, text)
	f.ctxs = append(f.ctxs, ctx)
	return nil
}

func (f *fakeFacade) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.lines...)
}

func (f *fakeFacade) CtxLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ctxLines...)
}

// stubSerializer returns fn(r) and counts its calls.
type stubSerializer struct {
	mu          sync.Mutex
	fn          func(r xtrace.Record) (string, error)
	calls       int
	stringCalls int
	desc        string
}

func returning(text string) *stubSerializer {
	return &stubSerializer{fn: func(xtrace.Record) (string, error) { return text, nil }}
}

func describing(r xtrace.Record) (string, error) { return r.Description, nil }

func (s *stubSerializer) Serialize(r xtrace.Record) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.fn(r)
}

func (s *stubSerializer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stringCalls++
	if s.desc != "" {
		return s.desc
	}
	return "stubSerializer"
}

func (s *stubSerializer) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// recordingListener is a diag.Listener that captures lines.
type recordingListener struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingListener) WriteLine(text string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, text)
	return nil
}

func (l *recordingListener) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// fakeParent is a DestinationsBuilder recording what destination builders hand it.
type fakeParent struct {
	destinations []xtrace.Destination
	failures     []error
}

func (p *fakeParent) CustomDestination(d xtrace.Destination) xtrace.DestinationsBuilder {
	p.destinations = append(p.destinations, d)
	return p
}

func (p *fakeParent) Fail(err error) xtrace.DestinationsBuilder {
	p.failures = append(p.failures, err)
	return p
}

func (p *fakeParent) BuildLogger() (*xtrace.Logger, error) {
	return nil, fmt.Errorf("fakeParent cannot build loggers")
}

func recordsWithDescriptions(descs ...string) []xtrace.Record {
	out := make([]xtrace.Record, len(descs))
	for i, d := range descs {
		out[i] = xtrace.NewRecord(xtrace.LogTypeInfo, "ctx", d)
	}
	return out
}
