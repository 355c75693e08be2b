package xtrace

// Observer is notified for each record the Logger dispatches (Observer pattern).
// Implementations MUST be concurrency-safe.
type Observer interface {
	OnLog(r Record)
}

// ObserverFunc adapter.
type ObserverFunc func(Record)

func (f ObserverFunc) OnLog(r Record) { f(r) }
