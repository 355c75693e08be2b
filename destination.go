package xtrace

import "context"

// Serializer renders a record as a line of text (Strategy).
// String describes the serializer for diagnostics.
type Serializer interface {
	Serialize(r Record) (string, error)
	String() string
}

// Destination is an output the Logger hands records to.
// Send writes a batch synchronously. SendContext honours ctx and must fail
// with ctx.Err() without side effects when ctx is already done.
type Destination interface {
	Send(records []Record) error
	SendContext(ctx context.Context, records []Record) error
}

// DestinationsBuilder collects the destinations of one log group. Destination
// builders register their product with CustomDestination and report
// configuration mistakes with Fail; both return the receiver so the fluent
// chain can continue to BuildLogger.
type DestinationsBuilder interface {
	CustomDestination(d Destination) DestinationsBuilder
	Fail(err error) DestinationsBuilder
	BuildLogger() (*Logger, error)
}
