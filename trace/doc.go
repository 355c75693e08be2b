// Package trace is an xtrace destination that writes every record, rendered
// by a serializer, as one line on the process trace channel (package diag).
//
// Construct a Destination directly:
//
//	d := trace.NewDefault()
//	d, err := trace.NewWithTemplate("$LogType: $Description")
//
// or add one to a logger configuration with the fluent builder:
//
//	logger, err := trace.Trace(xtrace.NewBuilder().ForAllLogs()).
//		WithJSON().
//		Add().
//		BuildLogger()
//
// Importing the package registers NewDefault as xtrace's default destination.
package trace
