package analytics

import "github.com/netlens/backend/internal/models"

// IDField is the key the serializer writes the stringified record
// identifier under.
const IDField = "id"

// SerializeDocument converts a snapshot row into a transport-safe mapping:
// the opaque store identifier becomes its string form and every other
// field passes through unchanged. Serializing an already-serialized row is
// a no-op, so rows that round-trip through the store keep their original
// identifier string.
func SerializeDocument(doc models.Document) map[string]any {
	out := make(map[string]any, len(doc.Fields)+1)
	for k, v := range doc.Fields {
		out[k] = v
	}
	if _, done := out[IDField].(string); !done && !doc.ID.IsZero() {
		out[IDField] = doc.ID.String()
	}
	return out
}
