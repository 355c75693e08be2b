// Package diag is the process trace channel: an ordered, process-wide chain
// of listeners that receive plain text lines.
//
// WriteLine fans a line out to every listener of the Default collection.
// The chain starts with a RuntimeListener, which records lines as user log
// events of the Go execution tracer (runtime/trace). Add a WriterListener,
// one of the logging-backend adapters, or an AsyncListener to route trace
// lines elsewhere; Clear removes them all.
package diag
