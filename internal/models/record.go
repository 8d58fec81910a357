// Package models contains domain types for the NetLens traffic analytics backend.
package models

import "github.com/google/uuid"

// RecordID is the opaque identifier the store assigns to a log record.
// It is never compared or sorted by business logic; it only exists to be
// carried through a request and stringified at the serialization boundary.
type RecordID struct {
	id uuid.UUID
}

// NewRecordID returns a freshly generated record identifier.
func NewRecordID() RecordID {
	return RecordID{id: uuid.New()}
}

// ParseRecordID parses the string form produced by String.
func ParseRecordID(s string) (RecordID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return RecordID{}, err
	}
	return RecordID{id: id}, nil
}

// String returns the transport-safe form of the identifier.
func (r RecordID) String() string {
	return r.id.String()
}

// IsZero reports whether the identifier is unset.
func (r RecordID) IsZero() bool {
	return r.id == uuid.Nil
}

// Log record field names as they appear in the collection. These match the
// column headers of the Wireshark CSV export the importer consumes.
const (
	FieldNo          = "No."
	FieldTime        = "Time"
	FieldSource      = "Source"
	FieldDestination = "Destination"
	FieldProtocol    = "Protocol"
	FieldLength      = "Length"
	FieldInfo        = "Info"
)

// LogRecord is one observed network event on the write path. Records are
// immutable once stored.
type LogRecord struct {
	ID          RecordID
	No          int64
	Time        string
	Source      string
	Destination string
	Protocol    string
	Length      int64
	Info        string
}

// Document is a log record as read back from the store: the assigned
// identifier plus a field-name to value mapping. Fields that were NULL in
// the store are absent from the map, so each document carries its own
// schema.
type Document struct {
	ID     RecordID
	Fields map[string]any
}

// Document converts a write-side record into its read-side form.
func (r LogRecord) Document() Document {
	return Document{
		ID: r.ID,
		Fields: map[string]any{
			FieldNo:          r.No,
			FieldTime:        r.Time,
			FieldSource:      r.Source,
			FieldDestination: r.Destination,
			FieldProtocol:    r.Protocol,
			FieldLength:      r.Length,
			FieldInfo:        r.Info,
		},
	}
}
