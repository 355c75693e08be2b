package xtrace

import (
	"time"

	"github.com/google/uuid"
)

// Record is a single log entry as handed to destinations. Destinations and
// serializers must treat it as read-only.
type Record struct {
	ID          string
	At          time.Time
	Type        LogType
	Context     string
	Source      string
	Description string
	Fields      []Field
}

// NewRecord stamps a record with a fresh random ID. At is left to the caller
// so that a Logger can use its single authoritative timestamp.
func NewRecord(typ LogType, context, description string, fields ...Field) Record {
	return Record{
		ID:          uuid.NewString(),
		Type:        typ,
		Context:     context,
		Description: description,
		Fields:      fields,
	}
}

// Field returns the last field with key k.
func (r Record) Field(k string) (Field, bool) {
	for i := len(r.Fields) - 1; i >= 0; i-- {
		if r.Fields[i].K == k {
			return r.Fields[i], true
		}
	}
	return Field{}, false
}
